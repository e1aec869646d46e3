package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/testutil"
)

type memStore struct {
	mu      sync.Mutex
	saved   map[int]zone.Model
	deleted []int
	fail    bool
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[int]zone.Model)}
}

func (s *memStore) Save(_ context.Context, m zone.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return testutil.ErrSimulated
	}
	s.saved[m.ID] = m
	return nil
}

func (s *memStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *memStore) savedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func writerModel(id int) zone.Model {
	return zone.Model{ID: id, Name: "Z", UseCase: zone.UseCaseFlag, Circle: &zone.CircleData{Radius: 5}}
}

func TestZoneWriterEnqueueNeverBlocks(t *testing.T) {
	w := NewZoneWriter(newMemStore(), 2)

	assert.True(t, w.Enqueue(writerModel(1)))
	assert.True(t, w.EnqueueDelete(2))

	done := make(chan bool)
	go func() { done <- w.Enqueue(writerModel(3)) }()
	select {
	case ok := <-done:
		assert.False(t, ok, "full queue drops the write")
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked")
	}
	assert.Equal(t, 2, w.Pending())
}

func TestZoneWriterRun(t *testing.T) {
	store := newMemStore()
	w := NewZoneWriter(store, 16)

	stop := testutil.StartLoop(t, w.Run)

	m := writerModel(1)
	require.True(t, w.Enqueue(m))
	require.True(t, w.Enqueue(writerModel(2)))
	require.True(t, w.EnqueueDelete(2))

	require.Eventually(t, func() bool { return w.Written() == 3 }, time.Second, time.Millisecond)

	require.NoError(t, stop())

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, map[int]zone.Model{1: m}, store.saved)
	assert.Equal(t, []int{2}, store.deleted)
}

func TestZoneWriterCopiesModel(t *testing.T) {
	store := newMemStore()
	w := NewZoneWriter(store, 4)

	m := writerModel(1)
	require.True(t, w.Enqueue(m))
	m.Circle.Radius = 99

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))

	assert.Equal(t, 5.0, store.saved[1].Circle.Radius)
}

func TestZoneWriterDrainsOnShutdown(t *testing.T) {
	store := newMemStore()
	w := NewZoneWriter(store, 8)
	for id := 1; id <= 5; id++ {
		require.True(t, w.Enqueue(writerModel(id)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))

	assert.Equal(t, 5, store.savedCount())
	assert.Zero(t, w.Pending())
}

func TestZoneWriterCountsFailures(t *testing.T) {
	store := newMemStore()
	store.fail = true
	w := NewZoneWriter(store, 4)
	require.True(t, w.Enqueue(writerModel(1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))

	assert.Equal(t, int64(1), w.Failed())
	assert.Zero(t, w.Written())
}
