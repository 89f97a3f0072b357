// pkg/deployexec/errors.go
package deployexec

import (
	"errors"

	"github.com/deployo/deployo/pkg/deploy"
)

// Error codes for deployment failures used by the CLI suggestion system.
const (
	errorCodeUnknownTarget = "UNKNOWN_TARGET"
	errorCodeNoPlugins     = "NO_MATCHING_PLUGINS"
	errorCodeNoFiles       = "NO_FILES"
	errorCodeDeployFailure = "DEPLOY_FAILURE"
)

// ErrorCode resolves a deployment error into a CLI error code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, deploy.ErrTargetNotFound):
		return errorCodeUnknownTarget
	case errors.Is(err, deploy.ErrNoPlugins):
		return errorCodeNoPlugins
	case errors.Is(err, deploy.ErrNoFiles):
		return errorCodeNoFiles
	}

	return errorCodeDeployFailure
}

// ExitCode maps deployment errors to CLI exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch ErrorCode(err) {
	case errorCodeUnknownTarget,
		errorCodeNoPlugins,
		errorCodeNoFiles:
		return 2
	default:
		return 1
	}
}

// Suggestions provides CLI hints for deployment errors.
func Suggestions(err error) []string {
	if err == nil {
		return nil
	}

	switch ErrorCode(err) {
	case errorCodeUnknownTarget:
		return []string{
			"List configured targets:    deployo targets",
			"Pick one:                   deployo deploy --target <name> <files...>",
		}
	case errorCodeNoPlugins:
		return []string{
			"List available plugins:     deployo plugins",
			"Check the target's `type:` field in your config file",
		}
	case errorCodeNoFiles:
		return []string{
			"Pass at least one file:     deployo deploy --target <name> src/main.go",
		}
	default:
		return []string{
			"Retry with verbose logs:    deployo deploy --target <name> <files...> --debug",
		}
	}
}
