// pkg/open/open.go
// Package open launches the platform's default handler for a file. Opening
// is best-effort: callers log failures instead of surfacing them, since the
// artifact itself was already produced.
package open

import (
	"fmt"
	"os/exec"
	"runtime"
)

// command is swapped out in tests.
var command = func(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

// File asks the operating system to open the given path with its default
// application. The handler process is started, not awaited.
func File(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = command("open", path)
	case "windows":
		cmd = command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
