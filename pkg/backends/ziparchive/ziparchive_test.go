package ziparchive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deployo/deployo/pkg/archive"
	"github.com/deployo/deployo/pkg/config"
	"github.com/deployo/deployo/pkg/deploy"
)

// captureSink records the builder handed over at teardown instead of writing
// to disk.
type captureSink struct {
	calls   int
	builder *archive.Builder
	err     error
}

func (s *captureSink) DeployArchive(ctx context.Context, sess *deploy.Session, builder *archive.Builder, target *config.Target, startedAt time.Time) error {
	s.calls++
	s.builder = builder
	return s.err
}

func writeWorkspaceFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestEntryName(t *testing.T) {
	tests := []struct {
		name string
		root string
		file string
		want string
	}{
		{"inside root", "/ws", "/ws/src/main.go", "src/main.go"},
		{"root file", "/ws", "/ws/README.md", "README.md"},
		{"outside root keeps absolute minus anchor", "/ws", "/etc/hosts", "etc/hosts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntryName(tt.root, tt.file))
		})
	}
}

func TestOutputName(t *testing.T) {
	startedAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	assert.Equal(t, "workspace_20260314_150926.zip", OutputName(startedAt))
}

func TestDeployWorkspaceCollectsFilesIntoArchive(t *testing.T) {
	root := t.TempDir()
	a := writeWorkspaceFile(t, root, "a.txt", "alpha")
	b := writeWorkspaceFile(t, root, "sub/b.txt", "beta")

	sink := &captureSink{}
	plugin := NewWithSink(sink)
	sess := deploy.NewSession(root, nil, nil, zerolog.Nop())

	var destinations []string
	res, err := plugin.DeployWorkspace(context.Background(), sess, []string{a, b},
		&config.Target{Name: "release", Type: TargetType},
		deploy.WorkspaceOptions{
			OnBeforeDeployFile: func(ev deploy.BeforeFileEvent) {
				destinations = append(destinations, ev.Destination)
			},
		})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempted)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, destinations)

	require.Equal(t, 1, sink.calls, "the sink receives the archive exactly once")
	require.NotNil(t, sink.builder)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, sink.builder.Names())
}

func TestDeployWorkspaceUnreadableFileFailsThatFileOnly(t *testing.T) {
	root := t.TempDir()
	a := writeWorkspaceFile(t, root, "a.txt", "alpha")
	missing := filepath.Join(root, "missing.txt")
	c := writeWorkspaceFile(t, root, "c.txt", "gamma")

	sink := &captureSink{}
	plugin := NewWithSink(sink)
	sess := deploy.NewSession(root, nil, nil, zerolog.Nop())

	var failed []string
	res, err := plugin.DeployWorkspace(context.Background(), sess, []string{a, missing, c},
		&config.Target{Name: "release", Type: TargetType},
		deploy.WorkspaceOptions{
			OnFileCompleted: func(fr deploy.FileResult) {
				if fr.Err != nil {
					failed = append(failed, fr.File)
				}
			},
		})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Attempted)
	assert.Equal(t, []string{missing}, failed)
	require.Equal(t, 1, sink.calls)
	assert.Equal(t, []string{"a.txt", "c.txt"}, sink.builder.Names(), "the failed file is absent from the archive")
}

func TestDeployWorkspaceSinkErrorDoesNotChangeOutcome(t *testing.T) {
	root := t.TempDir()
	a := writeWorkspaceFile(t, root, "a.txt", "alpha")

	sink := &captureSink{err: errors.New("disk full")}
	plugin := NewWithSink(sink)
	sess := deploy.NewSession(root, nil, nil, zerolog.Nop())

	res, err := plugin.DeployWorkspace(context.Background(), sess, []string{a},
		&config.Target{Name: "release", Type: TargetType}, deploy.WorkspaceOptions{})

	require.NoError(t, err, "teardown errors are logged, not surfaced")
	assert.NoError(t, res.Err)
	assert.Equal(t, 1, res.Attempted)
	assert.Equal(t, 1, sink.calls)
}

func TestDirectorySinkWritesArchive(t *testing.T) {
	root := t.TempDir()
	sess := deploy.NewSession(root, nil, nil, zerolog.Nop())

	builder := archive.NewBuilder()
	require.NoError(t, builder.Add("a.txt", []byte("alpha")))

	startedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	target := &config.Target{Name: "release", Type: TargetType, Dir: "out/nested"}

	sink := &DirectorySink{}
	require.NoError(t, sink.DeployArchive(context.Background(), sess, builder, target, startedAt))

	outPath := filepath.Join(root, "out", "nested", "workspace_20260102_030405.zip")
	blob, err := os.ReadFile(outPath)
	require.NoError(t, err, "target directory is created recursively")

	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "a.txt", zr.File[0].Name)
}

func TestDirectorySinkRefusesExistingOutput(t *testing.T) {
	root := t.TempDir()
	sess := deploy.NewSession(root, nil, nil, zerolog.Nop())

	startedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	existing := filepath.Join(root, OutputName(startedAt))
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o640))

	sink := &DirectorySink{}
	err := sink.DeployArchive(context.Background(), sess, archive.NewBuilder(),
		&config.Target{Name: "release", Type: TargetType}, startedAt)

	require.ErrorIs(t, err, ErrOutputExists)

	blob, readErr := os.ReadFile(existing)
	require.NoError(t, readErr)
	assert.Equal(t, "old", string(blob), "the existing archive is never overwritten")
}

func TestDirectorySinkRejectsNonDirectoryTarget(t *testing.T) {
	root := t.TempDir()
	sess := deploy.NewSession(root, nil, nil, zerolog.Nop())

	blocker := filepath.Join(root, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o640))

	sink := &DirectorySink{}
	err := sink.DeployArchive(context.Background(), sess, archive.NewBuilder(),
		&config.Target{Name: "release", Type: TargetType, Dir: "out"}, time.Now())

	assert.ErrorIs(t, err, ErrNotADirectory)
}
