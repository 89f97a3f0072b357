// pkg/deploy/runner.go
package deploy

import (
	"context"
	"fmt"

	"github.com/deployo/deployo/pkg/config"
)

// DestroyFunc finalizes and disposes a backend's per-deploy context. The
// queue runner invokes it at most once per successful context creation,
// after the last file operation and before the completion callback.
type DestroyFunc func(ctx context.Context) error

// lifecycle is the capability object the queue runner executes for one
// backend: an optional context create step, a mandatory per-file step, and
// the destroy step returned by create. Backends are bound to the runner
// through the adapters in adapters.go.
type lifecycle[C any] struct {
	// create allocates the backend context. nil for stateless backends.
	create func(ctx context.Context, sess *Session, target *config.Target, files []string) (C, DestroyFunc, error)

	// runOne pushes a single file to the target.
	runOne func(ctx context.Context, sess *Session, bc C, file string, target *config.Target, opts FileOptions) error
}

// runQueue drains the file list front to back against one target, one file
// in flight at a time. Cancellation is polled before the first file and
// after each completed file; it is cooperative and never interrupts an
// in-flight operation. Per-file errors are reported through OnFileCompleted
// and do not stop the queue. Exactly one OnCompleted fires per call.
func runQueue[C any](ctx context.Context, sess *Session, files []string, target *config.Target, opts WorkspaceOptions, lc lifecycle[C]) (*Result, error) {
	res := &Result{Target: target}

	completed := func() {
		if opts.OnCompleted != nil {
			opts.OnCompleted(*res)
		}
	}

	if cancelRequested(ctx, sess) {
		res.Canceled = true
		completed()
		return res, nil
	}

	var (
		bc      C
		destroy DestroyFunc
	)
	if lc.create != nil {
		var err error
		bc, destroy, err = lc.create(ctx, sess, target, files)
		if err != nil {
			// No context, nothing to tear down, no files attempted.
			res.Err = fmt.Errorf("create deploy context: %w", err)
			completed()
			return res, res.Err
		}
	}

	queue := make([]string, len(files))
	copy(queue, files)

	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]

		res.Attempted++
		err := dispatchOne(ctx, sess, bc, file, target, opts, lc)

		canceled := cancelRequested(ctx, sess)
		if opts.OnFileCompleted != nil {
			opts.OnFileCompleted(FileResult{File: file, Err: err, Canceled: canceled})
		}
		if err != nil {
			sess.Log().Warn().Err(err).Str("file", file).Str("target", target.Name).Msg("file deployment failed")
		}
		if canceled {
			// Discard the remaining queue; no further files are started.
			res.Canceled = true
			break
		}
	}

	teardown(ctx, sess, target, destroy)
	completed()
	return res, nil
}

// dispatchOne runs the per-file step, converting a panicking backend into
// that file's failure so the queue still advances.
func dispatchOne[C any](ctx context.Context, sess *Session, bc C, file string, target *config.Target, opts WorkspaceOptions, lc lifecycle[C]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("deploy plugin panic: %v", r)
		}
	}()

	fileOpts := FileOptions{}
	if opts.OnBeforeDeployFile != nil {
		fileOpts.OnBeforeDeploy = opts.OnBeforeDeployFile
	}
	return lc.runOne(ctx, sess, bc, file, target, fileOpts)
}

// teardown disposes the backend context. Destroy-time errors are logged and
// never surface as the operation's error: by the time teardown runs, the
// outcome of the deployment is already fixed.
func teardown(ctx context.Context, sess *Session, target *config.Target, destroy DestroyFunc) {
	if destroy == nil {
		return
	}
	if err := destroy(ctx); err != nil {
		sess.Log().Error().Err(err).Str("target", target.Name).Msg("deploy context teardown failed")
	}
}

// cancelRequested reports cooperative cancellation from either the session
// flag or the Go context.
func cancelRequested(ctx context.Context, sess *Session) bool {
	if sess.IsCancelling() {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
