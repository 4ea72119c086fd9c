package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlainJulien/portfolio/internal/theme"
)

func memoryStores() func(string) theme.Store {
	stores := make(map[string]theme.Store)
	return func(id string) theme.Store {
		if _, ok := stores[id]; !ok {
			stores[id] = theme.NewMemoryStore()
		}
		return stores[id]
	}
}

func TestSessions_GetReusesController(t *testing.T) {
	s := newSessions(memoryStores(), time.Minute)
	defer s.closeAll()

	first := s.get("v1")
	require.NoError(t, first.ctrl.SetPreference(theme.Dark))

	assert.Same(t, first, s.get("v1"))
	assert.NotSame(t, first, s.get("v2"))
	assert.Equal(t, 2, s.Len())
}

func TestSessions_EvictIdleReloadsFromStore(t *testing.T) {
	s := newSessions(memoryStores(), time.Minute)
	defer s.closeAll()

	old := s.get("v1")
	require.NoError(t, old.ctrl.SetPreference(theme.Dark))

	assert.Zero(t, s.evictIdle(time.Now()))
	assert.Equal(t, 1, s.evictIdle(time.Now().Add(2*time.Minute)))
	assert.Zero(t, s.Len())

	fresh := s.get("v1")
	assert.NotSame(t, old, fresh)
	assert.Equal(t, theme.Dark, fresh.ctrl.Preference())
}

func TestSessions_StreamPinsUntilReleased(t *testing.T) {
	s := newSessions(memoryStores(), time.Minute)
	defer s.closeAll()

	_, release := s.stream("v1")
	later := time.Now().Add(time.Hour)
	assert.Zero(t, s.evictIdle(later))

	release()
	release()
	assert.Equal(t, 1, s.evictIdle(later))
}

func TestSessions_RunClosesEverythingOnShutdown(t *testing.T) {
	s := newSessions(memoryStores(), time.Minute)
	sess := s.get("v1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
	assert.Zero(t, s.Len())

	sess.signal.Set(true)
	assert.False(t, sess.ctrl.IsDark())
}

func TestSessions_RunToleratesTinyTTL(t *testing.T) {
	s := newSessions(memoryStores(), time.Nanosecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}
