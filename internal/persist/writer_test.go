package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/podium/internal/draw"
	"github.com/five82/podium/internal/state"
)

type recordingBackend struct {
	*MemoryBackend
	mu   sync.Mutex
	sets int
	fail error
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{MemoryBackend: NewMemoryBackend()}
}

func (r *recordingBackend) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	r.sets++
	fail := r.fail
	r.mu.Unlock()
	if fail != nil {
		return fail
	}
	return r.MemoryBackend.Set(ctx, key, value)
}

func (r *recordingBackend) setCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets
}

func TestWriter_FlushWritesLatestOnly(t *testing.T) {
	ctx := context.Background()
	b := newRecordingBackend()
	w := NewWriter(b, nil)
	store := state.New(draw.NewAppData([]int{1}))
	store.Subscribe(w.Observe)

	for _, title := range []string{"a", "b", "c"} {
		_, err := store.AddTopic(1, draw.TopicFields{Title: title})
		require.NoError(t, err)
	}
	require.NoError(t, w.Flush(ctx))

	assert.Equal(t, 1, b.setCount(), "queued snapshots coalesce")
	assert.Equal(t, uint64(3), w.Written())

	got := Load(ctx, b, []int{1}, nil)
	assert.Len(t, got[1].Slots[0].Topics, 3)

	require.NoError(t, w.Flush(ctx))
	assert.Equal(t, 1, b.setCount(), "nothing queued")
}

func TestWriter_IgnoresOlderSnapshots(t *testing.T) {
	b := newRecordingBackend()
	w := NewWriter(b, nil)
	w.Observe(state.Snapshot{Data: draw.NewAppData([]int{1}), Version: 5})
	w.Observe(state.Snapshot{Data: draw.NewAppData([]int{2}), Version: 4})
	require.NoError(t, w.Flush(context.Background()))

	got, err := b.Get(context.Background(), SnapshotKey)
	require.NoError(t, err)
	data, err := Decode(got)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, data.DayIDs())
}

func TestWriter_FailureIsRetriedOnFlush(t *testing.T) {
	ctx := context.Background()
	b := newRecordingBackend()
	b.fail = errors.New("read-only")
	w := NewWriter(b, nil)

	w.Observe(state.Snapshot{Data: draw.NewAppData([]int{1}), Version: 1})
	require.Error(t, w.Flush(ctx))
	assert.Zero(t, w.Written())

	b.mu.Lock()
	b.fail = nil
	b.mu.Unlock()
	require.NoError(t, w.Flush(ctx))
	assert.Equal(t, uint64(1), w.Written())
}

func TestWriter_ReadySignalsQueuedSnapshot(t *testing.T) {
	w := NewWriter(newRecordingBackend(), nil)
	store := state.New(draw.NewAppData([]int{1}))
	store.Subscribe(w.Observe)

	for _, title := range []string{"a", "b"} {
		_, err := store.AddTopic(1, draw.TopicFields{Title: title})
		require.NoError(t, err)
	}

	select {
	case <-w.Ready():
	case <-time.After(time.Second):
		t.Fatal("Ready was not signalled")
	}
	select {
	case <-w.Ready():
		t.Fatal("Ready signals should coalesce")
	default:
	}

	require.NoError(t, w.Flush(context.Background()))
	assert.Equal(t, uint64(2), w.Written())
}
