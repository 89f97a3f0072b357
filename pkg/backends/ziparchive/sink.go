// pkg/backends/ziparchive/sink.go
package ziparchive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/deployo/deployo/pkg/archive"
	"github.com/deployo/deployo/pkg/config"
	"github.com/deployo/deployo/pkg/deploy"
	"github.com/deployo/deployo/pkg/open"
	"github.com/deployo/deployo/pkg/workspace"
)

// Sentinel errors for archive sink failures.
var (
	// ErrNotADirectory indicates the resolved target path exists but is
	// not a directory.
	ErrNotADirectory = errors.New("target path is not a directory")

	// ErrOutputExists indicates the output archive filename is already
	// taken; the sink never overwrites.
	ErrOutputExists = errors.New("output archive already exists")
)

// lockFileName guards the collision check plus write against concurrent
// deployo processes targeting the same directory.
const lockFileName = ".deployo.lock"

// DirectorySink writes the finished archive into the target's directory,
// resolved against the workspace root. The output filename is deterministic
// per run: workspace_<YYYYMMDD>_<HHmmss>.zip from the deploy start time.
type DirectorySink struct{}

// DeployArchive runs the sink state machine: ensure the target directory
// exists (creating it recursively if absent), verify it is a directory,
// refuse filename collisions, serialize with DEFLATE, write, and optionally
// open the result. Every step's failure is terminal except the optional
// open, which is logged only.
func (s *DirectorySink) DeployArchive(ctx context.Context, sess *deploy.Session, builder *archive.Builder, target *config.Target, startedAt time.Time) error {
	dir := workspace.ResolveDir(sess.Root(), target.Dir)

	info, err := os.Stat(dir)
	switch {
	case err != nil && os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create target directory %s: %w", dir, err)
		}
	case err != nil:
		return fmt.Errorf("stat target directory %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("%s: %w", dir, ErrNotADirectory)
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock target directory %s: %w", dir, err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			sess.Log().Warn().Err(err).Str("dir", dir).Msg("failed to release target directory lock")
		}
	}()

	outPath := filepath.Join(dir, OutputName(startedAt))
	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("%s: %w", outPath, ErrOutputExists)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat output file %s: %w", outPath, err)
	}

	blob, err := builder.Bytes()
	if err != nil {
		return fmt.Errorf("serialize archive: %w", err)
	}
	if err := os.WriteFile(outPath, blob, 0o640); err != nil {
		return fmt.Errorf("write archive %s: %w", outPath, err)
	}

	sess.Log().Info().
		Str("target", target.Name).
		Str("archive", outPath).
		Int("entries", builder.Len()).
		Msg("archive written")

	if target.OptionBool("open", false) {
		// Best-effort: the archive was already written successfully.
		if err := open.File(outPath); err != nil {
			sess.Log().Warn().Err(err).Str("archive", outPath).Msg("failed to open archive")
		}
	}
	return nil
}

// OutputName returns the deterministic archive filename for a deploy that
// started at the given time.
func OutputName(startedAt time.Time) string {
	return fmt.Sprintf("workspace_%s.zip", startedAt.Format("20060102_150405"))
}
