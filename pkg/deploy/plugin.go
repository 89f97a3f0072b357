// pkg/deploy/plugin.go
// Package deploy implements the generic multi-file deployment pipeline:
// sequential queue execution, per-deploy context lifecycle, cooperative
// cancellation, and the plugin contract every target backend implements.
package deploy

import (
	"context"

	"github.com/deployo/deployo/pkg/config"
)

// Info describes a deployment backend.
type Info struct {
	// Type is the target type this backend serves. A target selects its
	// backends by matching Target.Type against this value; an empty Type
	// matches every target.
	Type string

	// Description is a human-readable summary of what the backend does.
	Description string

	// APIVersion is the plugin API generation the backend was built for.
	// Checked against the supported constraint at registration time.
	APIVersion string
}

// BeforeFileEvent is fired before a single file is dispatched to a backend.
type BeforeFileEvent struct {
	File        string
	Destination string // human-readable destination label
	Target      *config.Target
}

// FileResult reports the outcome of one file within a workspace deployment.
type FileResult struct {
	File     string
	Err      error
	Canceled bool
}

// Result is the aggregate outcome of a deployment unit of work. Err carries
// the first fatal error only; per-file errors are reported individually
// through FileResult and never abort the queue.
type Result struct {
	Target    *config.Target
	File      string // set for single-file deployments
	Err       error
	Canceled  bool
	Attempted int // files dispatched before completion or cancellation
}

// FileOptions carries the callbacks for a single-file deployment.
type FileOptions struct {
	OnBeforeDeploy func(BeforeFileEvent)
	OnCompleted    func(Result)
}

// WorkspaceOptions carries the callbacks for a workspace deployment.
type WorkspaceOptions struct {
	OnBeforeDeployFile func(BeforeFileEvent)
	OnFileCompleted    func(FileResult)
	OnCompleted        func(Result)
}

// Plugin is the capability surface of a deployment backend. Implementations
// are obtained through the adapters in this package rather than written by
// hand, so every backend shares identical sequencing, cancellation, and
// teardown behavior.
type Plugin interface {
	// Info returns descriptive metadata about the backend.
	Info() Info

	// DeployFile deploys a single file to the target. The returned error
	// mirrors the Err field of the completion event.
	DeployFile(ctx context.Context, sess *Session, file string, target *config.Target, opts FileOptions) error

	// DeployWorkspace deploys an ordered list of files to the target,
	// strictly one file at a time. Exactly one OnCompleted fires per call.
	// The returned Result is never nil; the error is the fatal error, if
	// any (per-file failures are not fatal).
	DeployWorkspace(ctx context.Context, sess *Session, files []string, target *config.Target, opts WorkspaceOptions) (*Result, error)
}
