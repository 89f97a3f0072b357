// pkg/backends/batch/batch.go
// Package batch implements multi-target fan-out: one file list deployed
// across several named targets and their plugins, strictly sequentially.
package batch

import (
	"context"

	"github.com/deployo/deployo/pkg/config"
	"github.com/deployo/deployo/pkg/deploy"
)

// TargetType is the target type served by this backend.
const TargetType = "batch"

func init() {
	deploy.Register(TargetType, func() (deploy.Plugin, error) {
		return New(), nil
	})
}

// TargetWithPlugins pairs a resolved target with the ordered plugins
// applicable to it. Constructed transiently per invocation.
type TargetWithPlugins struct {
	Target  *config.Target
	Plugins []deploy.Plugin
}

// Plugin fans a workspace deployment out across the targets named by the
// batch target's `targets:` list.
type Plugin struct{}

// New returns the batch fan-out plugin.
func New() deploy.Plugin {
	return &Plugin{}
}

// Info implements deploy.Plugin.
func (p *Plugin) Info() deploy.Info {
	return deploy.Info{
		Type:        TargetType,
		Description: "deploys the same files to several targets in sequence",
		APIVersion:  "1.0.0",
	}
}

// DeployFile deploys a single file through the fan-out by way of a
// one-element workspace deployment.
func (p *Plugin) DeployFile(ctx context.Context, sess *deploy.Session, file string, target *config.Target, opts deploy.FileOptions) error {
	return deploy.DeployFileViaWorkspace(ctx, p, sess, file, target, opts)
}

// DeployWorkspace iterates the resolved targets strictly sequentially, and
// within each target its matching plugins strictly sequentially, invoking
// every plugin's DeployWorkspace with the full file list. A plugin's
// reported error does not halt the fan-out; cancellation, checked before
// each target and before each plugin, abandons everything that remains.
func (p *Plugin) DeployWorkspace(ctx context.Context, sess *deploy.Session, files []string, target *config.Target, opts deploy.WorkspaceOptions) (*deploy.Result, error) {
	res := &deploy.Result{Target: target}

	completed := func() {
		if opts.OnCompleted != nil {
			opts.OnCompleted(*res)
		}
	}

	if canceled(ctx, sess) {
		res.Canceled = true
		completed()
		return res, nil
	}

	resolved := p.ResolveTargets(sess, target)

fanout:
	for _, twp := range resolved {
		if canceled(ctx, sess) {
			res.Canceled = true
			break
		}

		for _, plugin := range twp.Plugins {
			if canceled(ctx, sess) {
				res.Canceled = true
				break fanout
			}

			subRes, err := plugin.DeployWorkspace(ctx, sess, files, twp.Target, p.forwardOptions(twp.Target, opts))
			if subRes == nil {
				subRes = &deploy.Result{}
			}
			res.Attempted += subRes.Attempted

			// Best-effort across targets: a plugin's failure is logged
			// and the fan-out advances.
			if err != nil {
				sess.Log().Warn().Err(err).Str("target", twp.Target.Name).Msg("plugin deployment failed")
			} else if subRes.Err != nil {
				sess.Log().Warn().Err(subRes.Err).Str("target", twp.Target.Name).Msg("plugin deployment failed")
			}
			if subRes.Canceled {
				res.Canceled = true
				break fanout
			}
		}
	}

	completed()
	return res, nil
}

// ResolveTargets maps the batch target's name list onto concrete targets and
// their matching plugins. A self-reference would recurse forever, so it is
// warned about and dropped; unresolved names are warned about and skipped.
func (p *Plugin) ResolveTargets(sess *deploy.Session, target *config.Target) []TargetWithPlugins {
	var resolved []TargetWithPlugins
	for _, name := range target.Targets {
		if name == target.Name {
			sess.Log().Warn().Str("target", name).Msg("batch target references itself; dropping")
			continue
		}

		other, ok := sess.FindTarget(name)
		if !ok {
			sess.Log().Warn().Str("target", name).Msg("batch target references unknown target; skipping")
			continue
		}

		plugins := sess.PluginsFor(other)
		if len(plugins) == 0 {
			sess.Log().Warn().Str("target", name).Str("type", other.Type).Msg("no plugins match batch member target; skipping")
			continue
		}

		resolved = append(resolved, TargetWithPlugins{Target: other, Plugins: plugins})
	}
	return resolved
}

// forwardOptions relabels before-deploy destinations with the member
// target's name so multi-target output stays distinguishable, and forwards
// per-file completions unchanged. The member's own completion event is
// dropped; the fan-out reports a single aggregate completion.
func (p *Plugin) forwardOptions(member *config.Target, opts deploy.WorkspaceOptions) deploy.WorkspaceOptions {
	return deploy.WorkspaceOptions{
		OnBeforeDeployFile: func(ev deploy.BeforeFileEvent) {
			if opts.OnBeforeDeployFile == nil {
				return
			}
			ev.Destination = "[" + member.Name + "] " + ev.Destination
			opts.OnBeforeDeployFile(ev)
		},
		OnFileCompleted: opts.OnFileCompleted,
	}
}

func canceled(ctx context.Context, sess *deploy.Session) bool {
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
