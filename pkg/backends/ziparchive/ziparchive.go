// pkg/backends/ziparchive/ziparchive.go
// Package ziparchive implements the ZIP deployment backend: files are
// collected into an in-memory archive during the workspace deployment and
// written to the target directory as a single compressed artifact at
// teardown.
package ziparchive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deployo/deployo/pkg/archive"
	"github.com/deployo/deployo/pkg/config"
	"github.com/deployo/deployo/pkg/deploy"
	"github.com/deployo/deployo/pkg/workspace"
)

// TargetType is the target type served by this backend.
const TargetType = "zip"

func init() {
	deploy.Register(TargetType, func() (deploy.Plugin, error) {
		return New(), nil
	})
}

// ArchiveSink receives the finished archive at teardown. The production sink
// writes it into the target directory; tests substitute their own.
type ArchiveSink interface {
	DeployArchive(ctx context.Context, sess *deploy.Session, builder *archive.Builder, target *config.Target, startedAt time.Time) error
}

// Backend is the context-based ZIP backend. Its per-deploy context is an
// archive builder; the destroy step hands the builder to the sink.
type Backend struct {
	sink ArchiveSink
}

// New returns the ZIP plugin backed by the filesystem sink.
func New() deploy.Plugin {
	return NewWithSink(&DirectorySink{})
}

// NewWithSink returns the ZIP plugin with a custom archive sink.
func NewWithSink(sink ArchiveSink) deploy.Plugin {
	return deploy.NewContextPlugin[*archive.Builder](&Backend{sink: sink})
}

// Info implements deploy.ContextBackend.
func (b *Backend) Info() deploy.Info {
	return deploy.Info{
		Type:        TargetType,
		Description: "packages workspace files into a compressed ZIP archive",
		APIVersion:  "1.0.0",
	}
}

// CreateContext allocates a fresh empty archive builder. Creation itself
// cannot fail; the destroy step serializes the archive and delegates to the
// sink. The output filename is stamped from the moment the deploy started.
func (b *Backend) CreateContext(ctx context.Context, sess *deploy.Session, target *config.Target, files []string) (*archive.Builder, deploy.DestroyFunc, error) {
	builder := archive.NewBuilder()
	startedAt := time.Now()

	destroy := func(ctx context.Context) error {
		return b.sink.DeployArchive(ctx, sess, builder, target, startedAt)
	}
	return builder, destroy, nil
}

// DeployFileWithContext reads the file and stores it in the archive under
// its workspace-relative name. Read failures fail this file only; the queue
// advances.
func (b *Backend) DeployFileWithContext(ctx context.Context, sess *deploy.Session, builder *archive.Builder, file string, target *config.Target, opts deploy.FileOptions) error {
	name := EntryName(sess.Root(), file)

	if opts.OnBeforeDeploy != nil {
		opts.OnBeforeDeploy(deploy.BeforeFileEvent{
			File:        file,
			Destination: name,
			Target:      target,
		})
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	return builder.Add(name, data)
}

// EntryName computes the archive entry name for a file: its path relative to
// the workspace root (absolute path when relativization fails), slash
// separated, with all leading separators stripped so no entry is anchored
// outside the archive root.
func EntryName(root, file string) string {
	name := filepath.ToSlash(workspace.Rel(root, file))
	name = strings.TrimLeft(name, "/")
	// Windows drive-letter absolutes survive ToSlash; strip the anchor too.
	if vol := filepath.VolumeName(filepath.FromSlash(name)); vol != "" {
		name = strings.TrimLeft(name[len(vol):], "/")
	}
	return name
}
