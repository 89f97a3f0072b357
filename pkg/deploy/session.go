// pkg/deploy/session.go
package deploy

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deployo/deployo/pkg/config"
)

// Session is the read-only handle a deployment runs against: the configured
// targets, the instantiated plugins, the workspace root, and the cooperative
// cancellation flag. It is created by the caller that initiates a deploy and
// threaded explicitly through every call; the pipeline never owns it.
type Session struct {
	id         string
	root       string // workspace root files are relativized against
	targets    []config.Target
	plugins    []Plugin
	logger     zerolog.Logger
	cancelling atomic.Bool
}

// NewSession builds a session over the given targets and plugins. root is the
// workspace root used for relative-path computation.
func NewSession(root string, targets []config.Target, plugins []Plugin, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		root:    root,
		targets: targets,
		plugins: plugins,
		logger:  logger.With().Str("session", id[:8]).Logger(),
	}
}

// ID returns the unique identifier of this deploy session.
func (s *Session) ID() string { return s.id }

// Root returns the workspace root for this session.
func (s *Session) Root() string { return s.root }

// Targets returns the configured deployment targets.
func (s *Session) Targets() []config.Target { return s.targets }

// Plugins returns all instantiated plugins.
func (s *Session) Plugins() []Plugin { return s.plugins }

// PluginsFor returns the plugins applicable to the given target, in
// registration order. A plugin matches when its Info().Type equals the
// target's type, or when it declares the empty wildcard type.
func (s *Session) PluginsFor(target *config.Target) []Plugin {
	var matched []Plugin
	for _, p := range s.plugins {
		t := p.Info().Type
		if t == "" || t == target.Type {
			matched = append(matched, p)
		}
	}
	return matched
}

// FindTarget looks up a configured target by name.
func (s *Session) FindTarget(name string) (*config.Target, bool) {
	return config.FindTarget(s.targets, name)
}

// Cancel flips the session into its cancelling state. Cancellation is
// cooperative: in-flight file operations finish, no new ones start.
func (s *Session) Cancel() { s.cancelling.Store(true) }

// IsCancelling reports whether cancellation has been requested.
func (s *Session) IsCancelling() bool { return s.cancelling.Load() }

// Log returns the session logger.
func (s *Session) Log() *zerolog.Logger { return &s.logger }
