package deploy

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deployo/deployo/pkg/config"
)

func TestNewSession(t *testing.T) {
	targets := []config.Target{{Name: "dist", Type: "local"}}
	sess := NewSession("/ws", targets, nil, zerolog.Nop())

	assert.NotEmpty(t, sess.ID())
	assert.Equal(t, "/ws", sess.Root())
	assert.Equal(t, targets, sess.Targets())
	assert.False(t, sess.IsCancelling())

	other := NewSession("/ws", targets, nil, zerolog.Nop())
	assert.NotEqual(t, sess.ID(), other.ID())
}

func TestSessionCancel(t *testing.T) {
	sess := newTestSession(t, nil)
	require.False(t, sess.IsCancelling())
	sess.Cancel()
	assert.True(t, sess.IsCancelling())
	sess.Cancel() // idempotent
	assert.True(t, sess.IsCancelling())
}

func TestSessionFindTarget(t *testing.T) {
	sess := newTestSession(t, []config.Target{
		{Name: "dist", Type: "local"},
		{Name: "release", Type: "zip"},
	})

	target, ok := sess.FindTarget("release")
	require.True(t, ok)
	assert.Equal(t, "zip", target.Type)

	_, ok = sess.FindTarget("missing")
	assert.False(t, ok)
}

func TestSessionPluginsFor(t *testing.T) {
	local := NewPlugin(&fakeBackend{info: Info{Type: "local", APIVersion: "1.0.0"}})
	zip := NewPlugin(&fakeBackend{info: Info{Type: "zip", APIVersion: "1.0.0"}})
	wildcard := NewPlugin(&fakeBackend{info: Info{Type: "", APIVersion: "1.0.0"}})

	sess := NewSession("/ws", nil, []Plugin{local, zip, wildcard}, zerolog.Nop())

	matched := sess.PluginsFor(&config.Target{Name: "dist", Type: "local"})
	require.Len(t, matched, 2, "type match plus the wildcard")
	assert.Same(t, local, matched[0])
	assert.Same(t, wildcard, matched[1])

	matched = sess.PluginsFor(&config.Target{Name: "x", Type: "unknown"})
	require.Len(t, matched, 1)
	assert.Same(t, wildcard, matched[0])
}
