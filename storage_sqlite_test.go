package spiderkit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := OpenSQLiteStorage(filepath.Join(t.TempDir(), "spider.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStorage_PutAndLoad(t *testing.T) {
	s := newTestSQLite(t)

	require.NoError(t, s.Put(NewObject("page", map[string]any{"url": "a", "words": float64(10)})))
	require.NoError(t, s.Put(NewObject("page", map[string]any{"url": "b", "words": float64(20)})))
	require.NoError(t, s.Put(NewObject("image", map[string]any{"url": "c"})))

	pages, err := s.Objects("page")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.True(t, pages[0].Equal(NewObject("page", map[string]any{"url": "a", "words": float64(10)})),
		"attribute mapping must round-trip through the database")
	url, err := pages[1].Get("url")
	require.NoError(t, err)
	assert.Equal(t, "b", url, "insertion order preserved")

	none, err := s.Objects("unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStorage_CountByKind(t *testing.T) {
	s := newTestSQLite(t)

	require.NoError(t, s.Put(NewObject("page", map[string]any{"url": "a"})))
	require.NoError(t, s.Put(NewObject("page", map[string]any{"url": "b"})))
	require.NoError(t, s.Put(NewObject("image", map[string]any{"url": "c"})))

	counts, err := s.CountByKind()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"page": 2, "image": 1}, counts)
}
