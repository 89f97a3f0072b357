// pkg/backends/localdir/localdir.go
// Package localdir implements the simplest deployment backend: copying each
// workspace file into a target directory, preserving relative paths.
package localdir

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deployo/deployo/pkg/config"
	"github.com/deployo/deployo/pkg/deploy"
	"github.com/deployo/deployo/pkg/workspace"
)

// TargetType is the target type served by this backend.
const TargetType = "local"

// ErrDestinationExists indicates the destination file exists and the target
// forbids overwriting.
var ErrDestinationExists = errors.New("destination file already exists")

func init() {
	deploy.Register(TargetType, func() (deploy.Plugin, error) {
		return New(), nil
	})
}

// Backend copies files one at a time; it needs no per-deploy context.
type Backend struct{}

// New returns the local-directory plugin.
func New() deploy.Plugin {
	return deploy.NewPlugin(&Backend{})
}

// Info implements deploy.SingleFileBackend.
func (b *Backend) Info() deploy.Info {
	return deploy.Info{
		Type:        TargetType,
		Description: "copies workspace files into a local directory",
		APIVersion:  "1.0.0",
	}
}

// DeployFile copies one file under the target directory, creating parent
// directories as needed. Overwriting is allowed unless the target sets the
// overwrite option to false.
func (b *Backend) DeployFile(ctx context.Context, sess *deploy.Session, file string, target *config.Target, opts deploy.FileOptions) error {
	dir := workspace.ResolveDir(sess.Root(), target.Dir)

	rel := workspace.Rel(sess.Root(), file)
	if filepath.IsAbs(rel) {
		// File lies outside the workspace root; keep its basename only.
		rel = filepath.Base(rel)
	}
	dest := filepath.Join(dir, rel)

	if opts.OnBeforeDeploy != nil {
		opts.OnBeforeDeploy(deploy.BeforeFileEvent{
			File:        file,
			Destination: dest,
			Target:      target,
		})
	}

	if !target.OptionBool("overwrite", true) {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s: %w", dest, ErrDestinationExists)
		}
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	sess.Log().Debug().Str("file", file).Str("dest", dest).Msg("file copied")
	return nil
}
