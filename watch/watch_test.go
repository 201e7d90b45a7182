package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devcompass/compass-cli/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// waitFor drains ch until want shows up. A truncate and the following write
// can be reported separately.
func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "response.md")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- watch.File(ctx, path, 50*time.Millisecond, func(content string) {
			changes <- content
		})
	}()

	waitFor(t, changes, "first")

	require.NoError(t, os.WriteFile(path, []byte("second"), 0644))
	waitFor(t, changes, "second")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileMissing(t *testing.T) {
	defer goleak.VerifyNone(t)

	err := watch.File(context.Background(), filepath.Join(t.TempDir(), "missing.md"), watch.DefaultDebounce, func(string) {
		t.Fatal("unexpected change")
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
