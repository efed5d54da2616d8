package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blightcli/internal/shared/testutil"
)

func TestWatcher_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	logger, logs := testutil.NewLogCapture(t)
	w, err := New(dir, []string{"train.csv", "latlons.csv"}, 50*time.Millisecond, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) error {
			changes <- changed
			return errors.New("handler errors do not stop the watcher")
		})
	}()

	train := filepath.Join(dir, "train.csv")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(train, []byte("ticket_id\n1\n"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case changed := <-changes:
		assert.Equal(t, []string{train}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	latlons := filepath.Join(dir, "latlons.csv")
	require.NoError(t, os.WriteFile(latlons, []byte("address,lat,lon\n"), 0644))
	select {
	case changed := <-changes:
		assert.Equal(t, []string{latlons}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher stopped after a failing handler")
	}

	failed := testutil.AssertLogged(t, logs, slog.LevelError, "Change handler failed")
	assert.Equal(t, "watch", failed.Attrs["component"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), nil, 0, nil)
	assert.Error(t, err)
}
