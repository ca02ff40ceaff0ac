package draw

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns the same index.
type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

// countingSource records how often it was consulted.
type countingSource struct{ calls int }

func (c *countingSource) IntN(n int) int {
	c.calls++
	return n - 1
}

func slotWith(ids ...string) Slot {
	s := NewSlot(1, "test")
	for i := len(ids) - 1; i >= 0; i-- {
		s.Topics = append([]Topic{{ID: ids[i], Title: "T-" + ids[i]}}, s.Topics...)
	}
	return s
}

func TestPick_EmptyAndSingleton(t *testing.T) {
	src := &countingSource{}

	_, ok := Pick(nil, src)
	assert.False(t, ok)

	got, ok := Pick([]Topic{{ID: "only"}}, src)
	require.True(t, ok)
	assert.Equal(t, "only", got.ID)
	assert.Zero(t, src.calls, "singleton pick needs no randomness")
}

func TestPick_OneCallUniformIndex(t *testing.T) {
	topics := []Topic{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	src := &countingSource{}

	got, ok := Pick(topics, src)
	require.True(t, ok)
	assert.Equal(t, "c", got.ID)
	assert.Equal(t, 1, src.calls)
}

func TestPick_RoughlyUniform(t *testing.T) {
	topics := []Topic{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	rng := rand.New(rand.NewPCG(7, 11))
	counts := map[string]int{}
	const rounds = 40000
	for range rounds {
		got, _ := Pick(topics, rng)
		counts[got.ID]++
	}
	for _, tp := range topics {
		share := float64(counts[tp.ID]) / rounds
		assert.InDelta(t, 0.25, share, 0.02, "topic %s share", tp.ID)
	}
}

func TestDraw_TwoTopicsThenUndo(t *testing.T) {
	s := slotWith("a", "b")
	before := s.clone()

	got, err := s.Draw(fixedSource(1))
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, "b", s.LastDrawnID)

	a, _ := s.Find("a")
	b, _ := s.Find("b")
	assert.False(t, a.IsUsed)
	assert.True(t, b.IsUsed)

	undone, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", undone.ID)
	assert.Equal(t, before, s, "draw then undo restores the slot")
}

func TestDraw_SingleTopicAlwaysSelected(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		s := slotWith("solo")
		got, err := s.Draw(rand.New(rand.NewPCG(seed, seed)))
		require.NoError(t, err)
		assert.Equal(t, "solo", got.ID)
	}
}

func TestDraw_EmptySlotRejected(t *testing.T) {
	s := NewSlot(3, "empty")
	before := s.clone()

	_, err := s.Draw(fixedSource(0))
	require.ErrorIs(t, err, ErrNoTopicsAvailable)
	assert.Equal(t, before, s)
}

func TestDraw_ExhaustsAfterN(t *testing.T) {
	s := slotWith("a", "b", "c", "d", "e")
	rng := rand.New(rand.NewPCG(1, 2))
	seen := map[string]bool{}

	for i := 0; i < 5; i++ {
		usedBefore := s.UsedCount()
		got, err := s.Draw(rng)
		require.NoError(t, err)
		assert.False(t, seen[got.ID], "topic %s drawn twice", got.ID)
		seen[got.ID] = true
		assert.Equal(t, usedBefore+1, s.UsedCount())
		assert.Len(t, s.Topics, 5)
	}
	assert.Empty(t, s.Available())

	before := s.clone()
	_, err := s.Draw(rng)
	require.ErrorIs(t, err, ErrNoTopicsAvailable)
	assert.Equal(t, before, s)
}

func TestUndo_NoPendingDrawIsNoop(t *testing.T) {
	s := slotWith("a")
	before := s.clone()

	_, ok := s.Undo()
	assert.False(t, ok)
	assert.Equal(t, before, s)
}

func TestUndo_OnlyOneStep(t *testing.T) {
	s := slotWith("a", "b")
	_, err := s.Draw(fixedSource(0))
	require.NoError(t, err)
	_, err = s.Draw(fixedSource(0))
	require.NoError(t, err)

	_, ok := s.Undo()
	require.True(t, ok)
	_, ok = s.Undo()
	assert.False(t, ok, "second undo has no target")
	assert.Equal(t, 1, s.UsedCount())
}

func TestReset_Idempotent(t *testing.T) {
	s := slotWith("a", "b", "c")
	_, _ = s.Draw(fixedSource(0))
	_, _ = s.Draw(fixedSource(0))

	s.Reset()
	once := s.clone()
	s.Reset()

	assert.Equal(t, once, s)
	assert.Zero(t, s.UsedCount())
	assert.Empty(t, s.LastDrawnID)
}

func TestRemoveTopic_ClearsLastDrawn(t *testing.T) {
	s := slotWith("a", "b")
	got, err := s.Draw(fixedSource(0))
	require.NoError(t, err)

	require.True(t, s.RemoveTopic(got.ID))
	assert.Empty(t, s.LastDrawnID)
	_, ok := s.LastDrawn()
	assert.False(t, ok)

	_, ok = s.Undo()
	assert.False(t, ok)
}

func TestLastDrawn_StalePointerIgnored(t *testing.T) {
	s := slotWith("a")
	s.LastDrawnID = "ghost"
	_, ok := s.LastDrawn()
	assert.False(t, ok)

	s.LastDrawnID = "a" // present but unused
	_, ok = s.LastDrawn()
	assert.False(t, ok)

	_, ok = s.Undo()
	assert.False(t, ok)
	assert.Empty(t, s.LastDrawnID)
}
