package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	root, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if root != wd {
		t.Fatalf("expected %q, got %q", wd, root)
	}
}

func TestResolveRejectsFiles(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Resolve(file); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestResolveMissingRoot(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestRelInsideRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a", "b.txt")

	if got := Rel(root, file); got != filepath.Join("a", "b.txt") {
		t.Fatalf("expected relative path, got %q", got)
	}
}

func TestRelOutsideRootFallsBackToAbsolute(t *testing.T) {
	root := t.TempDir()
	other := filepath.Join(t.TempDir(), "c.txt")

	if got := Rel(root, other); got != other {
		t.Fatalf("expected absolute fallback %q, got %q", other, got)
	}
}

func TestResolveDir(t *testing.T) {
	root := "/work/project"

	if got := ResolveDir(root, ""); got != root {
		t.Fatalf("empty dir should resolve to root, got %q", got)
	}
	if got := ResolveDir(root, "out"); got != filepath.Join(root, "out") {
		t.Fatalf("relative dir should join root, got %q", got)
	}
	if got := ResolveDir(root, "/abs/out"); got != "/abs/out" {
		t.Fatalf("absolute dir should pass through, got %q", got)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = WithContext(ctx, "/tmp/ws")

	root, ok := FromContext(ctx)
	if !ok || root != "/tmp/ws" {
		t.Fatalf("expected workspace root /tmp/ws, got %q", root)
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("expected missing workspace root from empty context")
	}
}
