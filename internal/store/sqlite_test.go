package store

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlainJulien/portfolio/internal/theme"
)

func openTemp(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestVisitorStore_LoadMissing(t *testing.T) {
	s, _ := openTemp(t)

	_, err := s.ForVisitor("v1").Load(theme.StorageKey)
	assert.ErrorIs(t, err, theme.ErrNotFound)
}

func TestVisitorStore_SaveOverwritesAndIsolatesVisitors(t *testing.T) {
	s, _ := openTemp(t)
	a := s.ForVisitor("a")
	b := s.ForVisitor("b")

	require.NoError(t, a.Save(theme.StorageKey, "dark"))
	require.NoError(t, a.Save(theme.StorageKey, "light"))
	require.NoError(t, b.Save(theme.StorageKey, "system"))

	got, err := a.Load(theme.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "light", got)

	got, err = b.Load(theme.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "system", got)
}

func TestPreferenceSurvivesReopen(t *testing.T) {
	s, path := openTemp(t)
	quiet := theme.WithLogger(log.New(io.Discard, "", 0))

	c := theme.NewController(s.ForVisitor("v1"), theme.NewSignal(false), quiet)
	c.Initialize()
	require.NoError(t, c.SetPreference(theme.Dark))
	c.Close()
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	restarted := theme.NewController(reopened.ForVisitor("v1"), theme.NewSignal(false), quiet)
	assert.Equal(t, theme.Dark, restarted.Initialize())
	assert.True(t, restarted.IsDark())
}

func TestPreferenceCounts(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.ForVisitor("a").Save(theme.StorageKey, "dark"))
	require.NoError(t, s.ForVisitor("b").Save(theme.StorageKey, "dark"))
	require.NoError(t, s.ForVisitor("c").Save(theme.StorageKey, "light"))
	require.NoError(t, s.ForVisitor("c").Save("other-v1", "ignored"))

	counts, err := s.PreferenceCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Visitors)
	assert.Equal(t, int64(2), counts.ByTheme["dark"])
	assert.Equal(t, int64(1), counts.ByTheme["light"])
	assert.Equal(t, int64(0), counts.ByTheme["system"])
}

func TestPrune(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.ForVisitor("a").Save(theme.StorageKey, "dark"))

	removed, err := s.Prune(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = s.Prune(context.Background(), -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = s.ForVisitor("a").Load(theme.StorageKey)
	assert.ErrorIs(t, err, theme.ErrNotFound)
}

func TestClosedDatabaseSurfacesErrors(t *testing.T) {
	s, _ := openTemp(t)
	v := s.ForVisitor("a")
	require.NoError(t, s.Close())

	assert.Error(t, v.Save(theme.StorageKey, "dark"))
	_, err := v.Load(theme.StorageKey)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, theme.ErrNotFound)
}
