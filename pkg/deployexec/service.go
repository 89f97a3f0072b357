// pkg/deployexec/service.go
// Package deployexec orchestrates deployments for the CLI: it builds the
// session, resolves the requested target and its plugins, runs them in
// sequence, and fans progress out to an optional sink.
package deployexec

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/deployo/deployo/pkg/config"
	"github.com/deployo/deployo/pkg/deploy"
	"github.com/deployo/deployo/pkg/workspace"
)

// ProgressSink receives progress notifications during a deployment.
type ProgressSink interface {
	OnEvent(ProgressEvent)
}

// ProgressEvent is a single progress notification.
type ProgressEvent struct {
	Phase       string // "resolve", "deploy", "file"
	Target      string
	File        string
	Destination string
	Status      string // "start", "completed", "failed", "canceled"
	Message     string
	Timestamp   time.Time
}

// Params carries the inputs of one deployment run.
type Params struct {
	TargetName string
	Files      []string
}

// Result aggregates the outcome of one deployment run.
type Result struct {
	Status  string // "completed", "failed", "canceled"
	Target  string
	Plugins []deploy.Result    // one aggregate result per plugin invoked
	Files   []deploy.FileResult // per-file outcomes across all plugins
}

// Service runs deployments against the configured targets.
type Service struct {
	pluginsFactory func() ([]deploy.Plugin, error)
	progressSink   ProgressSink
}

// NewService builds a Service with default dependencies.
func NewService() *Service {
	return &Service{
		pluginsFactory: deploy.InstantiateAll,
	}
}

// WithProgressSink attaches a sink to receive progress notifications.
func (s *Service) WithProgressSink(sink ProgressSink) *Service {
	s.progressSink = sink
	return s
}

// WithPluginsFactory overrides plugin construction for testing.
func (s *Service) WithPluginsFactory(factory func() ([]deploy.Plugin, error)) *Service {
	s.pluginsFactory = factory
	return s
}

// Run deploys the given files to the named target, invoking every matching
// plugin in registration order, strictly sequentially. A plugin's fatal
// error fails the run but later plugins are still attempted; cancellation
// ends the run immediately.
func (s *Service) Run(ctx context.Context, cfg config.Config, params Params) (*Result, error) {
	if len(params.Files) == 0 {
		return nil, deploy.ErrNoFiles
	}
	if params.TargetName == "" {
		return nil, fmt.Errorf("%w: no target name given", deploy.ErrTargetNotFound)
	}

	root, err := workspace.Resolve(cfg.Deploy.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}

	plugins, err := s.pluginsFactory()
	if err != nil {
		return nil, fmt.Errorf("instantiate plugins: %w", err)
	}

	sess := deploy.NewSession(root, cfg.Targets, plugins, log.Logger)

	target, ok := sess.FindTarget(params.TargetName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", deploy.ErrTargetNotFound, params.TargetName)
	}

	matched := sess.PluginsFor(target)
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: target %q has type %q", deploy.ErrNoPlugins, target.Name, target.Type)
	}
	s.emit(ProgressEvent{Phase: "resolve", Target: target.Name, Status: "completed",
		Message: fmt.Sprintf("plugins=%d files=%d", len(matched), len(params.Files))})

	res := &Result{Target: target.Name}
	var firstErr error

	for _, plugin := range matched {
		s.emit(ProgressEvent{Phase: "deploy", Target: target.Name, Status: "start"})

		pluginRes, err := plugin.DeployWorkspace(ctx, sess, params.Files, target, deploy.WorkspaceOptions{
			OnBeforeDeployFile: func(ev deploy.BeforeFileEvent) {
				s.emit(ProgressEvent{Phase: "file", Target: target.Name, File: ev.File,
					Destination: ev.Destination, Status: "start"})
			},
			OnFileCompleted: func(fr deploy.FileResult) {
				res.Files = append(res.Files, fr)
				s.emit(ProgressEvent{Phase: "file", Target: target.Name, File: fr.File,
					Status: fileStatus(fr), Message: errMessage(fr.Err)})
			},
		})
		if pluginRes == nil {
			pluginRes = &deploy.Result{Target: target}
		}
		res.Plugins = append(res.Plugins, *pluginRes)

		switch {
		case err != nil:
			if firstErr == nil {
				firstErr = err
			}
			s.emit(ProgressEvent{Phase: "deploy", Target: target.Name, Status: "failed", Message: err.Error()})
		case pluginRes.Canceled:
			res.Status = "canceled"
			s.emit(ProgressEvent{Phase: "deploy", Target: target.Name, Status: "canceled"})
			return res, nil
		default:
			s.emit(ProgressEvent{Phase: "deploy", Target: target.Name, Status: "completed"})
		}
	}

	res.Status = statusFromError(firstErr)
	return res, firstErr
}

func statusFromError(err error) string {
	if err != nil {
		return "failed"
	}
	return "completed"
}

func fileStatus(fr deploy.FileResult) string {
	switch {
	case fr.Canceled:
		return "canceled"
	case fr.Err != nil:
		return "failed"
	default:
		return "completed"
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (s *Service) emit(ev ProgressEvent) {
	if s.progressSink == nil {
		return
	}
	ev.Timestamp = time.Now()
	s.progressSink.OnEvent(ev)
}
