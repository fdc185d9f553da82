package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunValidation(t *testing.T) {
	err := Watcher{Path: "config.yaml"}.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply is nil")

	err = Watcher{Apply: func() error { return nil }}.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is empty")
}

func TestRunAppliesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("before"), 0o600))

	applied := make(chan struct{}, 1)
	watcher := Watcher{
		Path:     path,
		Debounce: 50 * time.Millisecond,
		Apply: func() error {
			select {
			case applied <- struct{}{}:
			default:
			}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("after"), 0o600))

	select {
	case <-applied:
	case <-time.After(3 * time.Second):
		t.Fatal("apply was not called after config change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("config"), 0o600))

	applied := make(chan struct{}, 1)
	watcher := Watcher{
		Path:     path,
		Debounce: 50 * time.Millisecond,
		Apply: func() error {
			select {
			case applied <- struct{}{}:
			default:
			}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))

	select {
	case <-applied:
		t.Fatal("apply was called for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
