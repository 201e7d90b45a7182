package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.New(filepath.Join(t.TempDir(), "compass", "history.json"))
}

func TestStore(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("EmptyStoreReadsEmpty", func(t *testing.T) {
		s := newStore(t)
		entries, err := s.Entries()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
	t.Run("RoundTrip", func(t *testing.T) {
		s := newStore(t)
		parsed := codeblock.Classify("Here is the fix:\n```python\nprint(1)\n```")
		want := &storage.Entry{
			ID:        "entry-1",
			Kind:      storage.KindFix,
			Model:     "gemini-2.0-flash",
			Prompt:    "print 1",
			Response:  "Here is the fix:\n```python\nprint(1)\n```",
			Parsed:    &parsed,
			CreatedAt: base,
		}
		require.NoError(t, s.Add(want))

		got, err := s.ByID("entry-1")
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("entry mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("EntriesNewestFirst", func(t *testing.T) {
		s := newStore(t)
		for i, id := range []string{"a", "b", "c"} {
			require.NoError(t, s.Add(&storage.Entry{
				ID:        id,
				Kind:      storage.KindChat,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}

		entries, err := s.Entries()
		require.NoError(t, err)
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []string{"c", "b", "a"}, ids)
	})
	t.Run("AddReplacesSameID", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Add(&storage.Entry{ID: "x", Prompt: "a long first prompt"}))
		require.NoError(t, s.Add(&storage.Entry{ID: "x", Prompt: "short"}))

		store, err := s.Read()
		require.NoError(t, err)
		require.Len(t, store, 1)
		assert.Equal(t, "short", store["x"].Prompt)
	})
	t.Run("MissingID", func(t *testing.T) {
		s := newStore(t)
		_, err := s.ByID("nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
	t.Run("RejectsEntryWithoutID", func(t *testing.T) {
		s := newStore(t)
		assert.Error(t, s.Add(&storage.Entry{}))
	})
	t.Run("CorruptFile", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
		require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0600))
		_, err := s.Read()
		assert.Error(t, err)
	})
}
