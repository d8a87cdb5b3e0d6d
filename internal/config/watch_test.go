package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatchDeliversReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Default().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Watch(ctx, path, zap.NewNop())
	require.NoError(t, err)

	cfg := Default()
	cfg.UI.Theme = "dark"
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-updates:
		require.Equal(t, "dark", got.UI.Theme)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered after config write")
	}
}

func TestWatchSkipsMalformedEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Default().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Watch(ctx, path, zap.NewNop())
	require.NoError(t, err)

	// A broken edit is logged and skipped; the next good write still lands.
	require.NoError(t, os.WriteFile(path, []byte("api: [broken"), 0o644))
	cfg := Default()
	cfg.UI.Theme = "light"
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-updates:
		require.Equal(t, "light", got.UI.Theme)
	case <-time.After(3 * time.Second):
		t.Fatal("good write after a malformed one was not delivered")
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Default().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	updates, err := Watch(ctx, path, zap.NewNop())
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-updates:
		require.False(t, ok, "channel should be closed, not delivering")
	case <-time.After(3 * time.Second):
		t.Fatal("updates channel not closed after cancel")
	}
}
