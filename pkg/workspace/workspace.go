package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve returns the absolute deployment root. An empty root resolves to the
// current working directory, relative roots are made absolute.
func Resolve(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve workspace path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return "", fmt.Errorf("stat workspace root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace root %q is not a directory", absRoot)
	}

	return absRoot, nil
}

// Rel computes the path of file relative to the workspace root. When the file
// lies outside the root, or relativization fails, the absolute path of the
// file is returned instead so callers always get a usable name.
func Rel(root, file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	if root == "" {
		return abs
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs
	}
	return rel
}

// ResolveDir resolves a target-supplied directory against the workspace root.
// An empty dir resolves to the root itself, relative dirs are joined to it.
func ResolveDir(root, dir string) string {
	if dir == "" {
		return root
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

type ctxKey string

const workspaceRootKey ctxKey = "workspace.root"

// WithContext stores the resolved workspace root on the provided context.
func WithContext(ctx context.Context, root string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, workspaceRootKey, root)
}

// FromContext extracts the workspace root from context.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	val := ctx.Value(workspaceRootKey)
	if root, ok := val.(string); ok && root != "" {
		return root, true
	}
	return "", false
}
