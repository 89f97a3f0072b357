package appctx

import (
	"context"
	"testing"

	"github.com/deployo/deployo/pkg/config"
)

func TestWithConfigRoundTrip(t *testing.T) {
	mgr := config.NewManager()
	ctx := WithConfig(context.Background(), mgr)

	got, ok := Config(ctx)
	if !ok || got != mgr {
		t.Fatalf("expected stored manager back, got %v (ok=%v)", got, ok)
	}
}

func TestConfigMissing(t *testing.T) {
	if _, ok := Config(context.Background()); ok {
		t.Fatal("expected no manager on empty context")
	}
}

func TestConfigNilContext(t *testing.T) {
	//nolint:staticcheck
	if _, ok := Config(nil); ok {
		t.Fatal("expected no manager on nil context")
	}
}
