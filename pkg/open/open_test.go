// pkg/open/open_test.go
package open

import (
	"os/exec"
	"testing"
)

func TestFileStartsPlatformHandler(t *testing.T) {
	old := command
	defer func() { command = old }()

	var gotArgs []string
	command = func(name string, args ...string) *exec.Cmd {
		gotArgs = append([]string{name}, args...)
		// "true" exists on every supported CI platform and exits cleanly.
		return exec.Command("true")
	}

	if err := File("/tmp/artifact.zip"); err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if len(gotArgs) == 0 {
		t.Fatal("expected a handler command to be constructed")
	}
	if gotArgs[len(gotArgs)-1] != "/tmp/artifact.zip" {
		t.Fatalf("expected path as last argument, got %v", gotArgs)
	}
}

func TestFileReportsStartFailure(t *testing.T) {
	old := command
	defer func() { command = old }()

	command = func(name string, args ...string) *exec.Cmd {
		return exec.Command("/nonexistent/handler-binary")
	}

	if err := File("/tmp/artifact.zip"); err == nil {
		t.Fatal("expected error when handler cannot start")
	}
}
