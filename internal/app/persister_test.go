package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/podium/internal/draw"
	"github.com/five82/podium/internal/persist"
	"github.com/five82/podium/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 80; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

// flakyBackend fails the first n writes.
type flakyBackend struct {
	*persist.MemoryBackend
	mu    sync.Mutex
	fails int
}

func (f *flakyBackend) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	if f.fails > 0 {
		f.fails--
		f.mu.Unlock()
		return errors.New("disk full")
	}
	f.mu.Unlock()
	return f.MemoryBackend.Set(ctx, key, value)
}

func TestStartPersister_WritesInBackground(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := persist.NewWriter(persist.NewMemoryBackend(), nil)
	store := state.New(draw.NewAppData([]int{1}))
	store.Subscribe(w.Observe)

	done := StartPersister(ctx, w, 10*time.Millisecond, nil)

	_, err := store.AddTopic(1, draw.TopicFields{Title: "a"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return w.Written() == 1 }, wait, tick)

	cancel()
	<-done
}

func TestStartPersister_RetriesFailedWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &flakyBackend{MemoryBackend: persist.NewMemoryBackend(), fails: 2}
	w := persist.NewWriter(backend, nil)
	store := state.New(draw.NewAppData([]int{1}))
	store.Subscribe(w.Observe)

	done := StartPersister(ctx, w, 5*time.Millisecond, nil)

	_, err := store.AddTopic(1, draw.TopicFields{Title: "a"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return w.Written() == 1 }, wait, tick)

	cancel()
	<-done
	assert.Zero(t, backend.fails)
}

const (
	wait = 2 * time.Second
	tick = 5 * time.Millisecond
)
