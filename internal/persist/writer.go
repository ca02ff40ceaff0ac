package persist

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/podium/internal/state"
)

// Writer queues committed snapshots for persistence. Observe never blocks;
// when several snapshots arrive before a Flush only the newest one is
// written. The caller drives writes by calling Flush after Ready fires.
type Writer struct {
	backend Backend
	key     string
	logger  *zap.Logger

	mu      sync.Mutex
	pending *state.Snapshot
	wake    chan struct{}

	writeMu sync.Mutex
	written uint64
}

// NewWriter returns a Writer for SnapshotKey.
func NewWriter(backend Backend, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		backend: backend,
		key:     SnapshotKey,
		logger:  logger,
		wake:    make(chan struct{}, 1),
	}
}

// Observe queues a snapshot for writing. It matches state.Observer.
func (w *Writer) Observe(snap state.Snapshot) {
	w.mu.Lock()
	if w.pending == nil || snap.Version > w.pending.Version {
		w.pending = &snap
	}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Ready is signalled after Observe queues a snapshot. The signal is
// coalesced: one receive may cover several snapshots.
func (w *Writer) Ready() <-chan struct{} {
	return w.wake
}

// Flush synchronously writes the queued snapshot, if any.
func (w *Writer) Flush(ctx context.Context) error {
	return w.writePending(ctx)
}

// Written returns the version of the last snapshot written successfully.
func (w *Writer) Written() uint64 {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	return w.written
}

func (w *Writer) writePending(ctx context.Context) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	snap := w.pending
	w.pending = nil
	w.mu.Unlock()

	if snap == nil || (w.written != 0 && snap.Version <= w.written) {
		return nil
	}

	payload, err := Encode(snap.Data)
	if err == nil {
		err = w.backend.Set(ctx, w.key, payload)
	}
	if err != nil {
		w.logger.Error("persist snapshot failed",
			zap.Uint64("version", snap.Version),
			zap.Error(err))
		w.requeue(snap)
		return err
	}

	w.written = snap.Version
	w.logger.Debug("snapshot persisted",
		zap.Uint64("version", snap.Version),
		zap.Int("bytes", len(payload)))
	return nil
}

// requeue puts a failed snapshot back unless a newer one arrived meanwhile.
func (w *Writer) requeue(snap *state.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		w.pending = snap
	}
}
