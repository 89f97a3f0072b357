// pkg/deploy/errors.go
package deploy

import "errors"

// Sentinel errors for common deployment failures.
var (
	// ErrCanceled indicates the operation was abandoned because the
	// session entered its cancelling state.
	ErrCanceled = errors.New("deployment canceled")

	// ErrTargetNotFound indicates a referenced target name is not configured.
	ErrTargetNotFound = errors.New("target not found")

	// ErrNoPlugins indicates no registered backend matches a target's type.
	ErrNoPlugins = errors.New("no matching deploy plugins")

	// ErrNoFiles indicates a deployment was requested with an empty file list.
	ErrNoFiles = errors.New("no files to deploy")
)
