// pkg/deploy/adapters.go
package deploy

import (
	"context"

	"github.com/deployo/deployo/pkg/config"
)

// SingleFileBackend is the minimal capability a stateless backend implements:
// how to push one file to a target. NewPlugin turns it into a full Plugin by
// adding the shared workspace queue semantics.
type SingleFileBackend interface {
	Info() Info
	DeployFile(ctx context.Context, sess *Session, file string, target *config.Target, opts FileOptions) error
}

// ContextBackend is implemented by backends that need a stateful per-deploy
// resource (an open connection, an in-memory archive) created once, used for
// every file, and explicitly torn down. NewContextPlugin binds it to the
// shared queue runner, which guarantees the single-teardown invariant.
type ContextBackend[C any] interface {
	Info() Info

	// CreateContext allocates the backend context for one workspace
	// deployment. The returned DestroyFunc may be nil when nothing needs
	// finalizing.
	CreateContext(ctx context.Context, sess *Session, target *config.Target, files []string) (C, DestroyFunc, error)

	// DeployFileWithContext pushes one file through the open context.
	DeployFileWithContext(ctx context.Context, sess *Session, bc C, file string, target *config.Target, opts FileOptions) error
}

// NewPlugin wraps a single-file backend into a Plugin whose DeployWorkspace
// drains a FIFO queue one file at a time.
func NewPlugin(backend SingleFileBackend) Plugin {
	return &singleFilePlugin{backend: backend}
}

type singleFilePlugin struct {
	backend SingleFileBackend
}

func (p *singleFilePlugin) Info() Info { return p.backend.Info() }

func (p *singleFilePlugin) DeployFile(ctx context.Context, sess *Session, file string, target *config.Target, opts FileOptions) error {
	if cancelRequested(ctx, sess) {
		if opts.OnCompleted != nil {
			opts.OnCompleted(Result{Target: target, File: file, Canceled: true})
		}
		return ErrCanceled
	}

	err := p.backend.DeployFile(ctx, sess, file, target, opts)
	if opts.OnCompleted != nil {
		opts.OnCompleted(Result{Target: target, File: file, Err: err, Attempted: 1})
	}
	return err
}

func (p *singleFilePlugin) DeployWorkspace(ctx context.Context, sess *Session, files []string, target *config.Target, opts WorkspaceOptions) (*Result, error) {
	return runQueue(ctx, sess, files, target, opts, lifecycle[struct{}]{
		runOne: func(ctx context.Context, sess *Session, _ struct{}, file string, target *config.Target, fileOpts FileOptions) error {
			return p.backend.DeployFile(ctx, sess, file, target, fileOpts)
		},
	})
}

// NewContextPlugin wraps a context backend into a Plugin. The workspace
// deployment creates the context up front, funnels every file through it,
// and tears it down exactly once before completion; single-file deployment
// goes through a one-element workspace so the context lifecycle still holds.
func NewContextPlugin[C any](backend ContextBackend[C]) Plugin {
	return &contextPlugin[C]{backend: backend}
}

type contextPlugin[C any] struct {
	backend ContextBackend[C]
}

func (p *contextPlugin[C]) Info() Info { return p.backend.Info() }

func (p *contextPlugin[C]) DeployFile(ctx context.Context, sess *Session, file string, target *config.Target, opts FileOptions) error {
	return DeployFileViaWorkspace(ctx, p, sess, file, target, opts)
}

func (p *contextPlugin[C]) DeployWorkspace(ctx context.Context, sess *Session, files []string, target *config.Target, opts WorkspaceOptions) (*Result, error) {
	return runQueue(ctx, sess, files, target, opts, lifecycle[C]{
		create: p.backend.CreateContext,
		runOne: p.backend.DeployFileWithContext,
	})
}

// DeployFileViaWorkspace implements single-file deployment on top of a
// workspace-oriented plugin by deploying a one-element list and translating
// workspace-level events into file-level ones. Used by backends whose
// natural unit of work is the whole set.
func DeployFileViaWorkspace(ctx context.Context, p Plugin, sess *Session, file string, target *config.Target, opts FileOptions) error {
	var (
		fileErr      error
		fileCanceled bool
	)

	res, err := p.DeployWorkspace(ctx, sess, []string{file}, target, WorkspaceOptions{
		OnBeforeDeployFile: opts.OnBeforeDeploy,
		OnFileCompleted: func(fr FileResult) {
			fileErr = fr.Err
			fileCanceled = fr.Canceled
		},
		OnCompleted: func(r Result) {
			if opts.OnCompleted == nil {
				return
			}
			r.File = file
			if r.Err == nil {
				r.Err = fileErr
			}
			opts.OnCompleted(r)
		},
	})
	if err != nil {
		return err
	}
	if fileErr != nil {
		return fileErr
	}
	if res.Canceled || fileCanceled {
		return ErrCanceled
	}
	return nil
}
