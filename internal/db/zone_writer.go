package db

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/frontline/internal/game/zone"
)

// ZoneStore is what ZoneWriter persists through. *ZoneRepository implements it.
type ZoneStore interface {
	Save(ctx context.Context, m zone.Model) error
	Delete(ctx context.Context, id int) error
}

// drainTimeout bounds how long Run keeps flushing after shutdown.
const drainTimeout = 5 * time.Second

type zoneOp struct {
	model  zone.Model
	delete bool
}

// ZoneWriter persists zone authoring changes off the tick goroutine.
// Enqueue never blocks; when the queue is full the write is dropped and
// reported to the caller.
type ZoneWriter struct {
	store   ZoneStore
	queue   chan zoneOp
	written atomic.Int64
	failed  atomic.Int64
}

// NewZoneWriter creates a writer with a queue of the given capacity.
func NewZoneWriter(store ZoneStore, capacity int) *ZoneWriter {
	if capacity <= 0 {
		capacity = 64
	}
	return &ZoneWriter{
		store: store,
		queue: make(chan zoneOp, capacity),
	}
}

// Enqueue schedules a save. Returns false if the queue is full.
func (w *ZoneWriter) Enqueue(m zone.Model) bool {
	return w.push(zoneOp{model: m.Clone()})
}

// EnqueueDelete schedules a delete. Returns false if the queue is full.
func (w *ZoneWriter) EnqueueDelete(id int) bool {
	return w.push(zoneOp{model: zone.Model{ID: id}, delete: true})
}

func (w *ZoneWriter) push(op zoneOp) bool {
	select {
	case w.queue <- op:
		return true
	default:
		slog.Warn("zone write queue full, dropping", "zone", op.model.ID, "delete", op.delete)
		return false
	}
}

// Pending returns the number of queued writes.
func (w *ZoneWriter) Pending() int { return len(w.queue) }

// Written returns how many writes succeeded.
func (w *ZoneWriter) Written() int64 { return w.written.Load() }

// Failed returns how many writes failed.
func (w *ZoneWriter) Failed() int64 { return w.failed.Load() }

// Run writes queued changes until ctx is canceled, then flushes what is
// left within drainTimeout.
func (w *ZoneWriter) Run(ctx context.Context) error {
	slog.Info("zone writer started", "capacity", cap(w.queue))

	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			slog.Info("zone writer stopped", "written", w.Written(), "failed", w.Failed())
			return nil
		case op := <-w.queue:
			w.apply(ctx, op)
		}
	}
}

func (w *ZoneWriter) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	for {
		select {
		case op := <-w.queue:
			w.apply(ctx, op)
		default:
			return
		}
	}
}

func (w *ZoneWriter) apply(ctx context.Context, op zoneOp) {
	var err error
	if op.delete {
		err = w.store.Delete(ctx, op.model.ID)
	} else {
		err = w.store.Save(ctx, op.model)
	}
	if err != nil {
		w.failed.Add(1)
		slog.Error("zone write failed", "zone", op.model.ID, "delete", op.delete, "error", err)
		return
	}
	w.written.Add(1)
	slog.Debug("zone written", "zone", op.model.ID, "delete", op.delete)
}
