package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/podium/internal/draw"
)

type firstSource struct{}

func (firstSource) IntN(int) int { return 0 }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(draw.NewAppData([]int{1, 2}), WithSource(firstSource{}))
}

func activeSlot(t *testing.T, s *Store, dayID int) draw.Slot {
	t.Helper()
	d, ok := s.Snapshot().Day(dayID)
	require.True(t, ok)
	return d.Active()
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddTopic(1, draw.TopicFields{Title: "a"})
	require.NoError(t, err)

	snap := s.Snapshot()
	d := snap.Data[1]
	d.Slots[0].Topics[0].Title = "mutated"

	assert.Equal(t, "a", activeSlot(t, s, 1).Topics[0].Title)
}

func TestStore_NewCopiesInput(t *testing.T) {
	data := draw.NewAppData([]int{1})
	s := New(data)
	d := data[1]
	d.Slots[0].Name = "outside"
	data[1] = d

	assert.Equal(t, "Slot 1", activeSlot(t, s, 1).Name)
}

func TestStore_ObserversSeeCommittedSnapshots(t *testing.T) {
	s := newTestStore(t)
	var seen []Snapshot
	s.Subscribe(func(snap Snapshot) { seen = append(seen, snap) })

	_, err := s.AddTopic(1, draw.TopicFields{Title: "a"})
	require.NoError(t, err)
	_, err = s.Draw(1)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, uint64(1), seen[0].Version)
	assert.Equal(t, uint64(2), seen[1].Version)
	assert.Len(t, seen[0].Data[1].Slots[0].Topics, 1)
	assert.True(t, seen[1].Data[1].Slots[0].Topics[0].IsUsed)
}

func TestStore_RejectedTransitionDoesNotCommit(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	s.Subscribe(func(Snapshot) { calls++ })
	before := s.Snapshot()

	_, err := s.Draw(1)
	require.ErrorIs(t, err, draw.ErrNoTopicsAvailable)
	_, err = s.RemoveSlot(1, 0)
	require.ErrorIs(t, err, draw.ErrLastSlot)
	require.NoError(t, s.UpdateTopic(1, "missing", draw.FieldTitle, "x"))
	_, ok, err := s.Undo(1)
	require.NoError(t, err)
	assert.False(t, ok)

	after := s.Snapshot()
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.Data, after.Data)
	assert.Zero(t, calls)
}

func TestStore_UnknownDay(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddTopic(9, draw.TopicFields{})
	assert.ErrorIs(t, err, draw.ErrUnknownDay)
	_, err = s.AddSlot(9)
	assert.ErrorIs(t, err, draw.ErrUnknownDay)
	assert.False(t, s.DrawPending(9))
}

func TestStore_DayWithoutSlotsIsRejected(t *testing.T) {
	s := New(draw.AppData{1: {ID: 1}})

	_, err := s.AddTopic(1, draw.TopicFields{Title: "a"})
	assert.ErrorIs(t, err, draw.ErrSlotIndex)
	_, err = s.Draw(1)
	assert.ErrorIs(t, err, draw.ErrSlotIndex)
	_, _, err = s.Undo(1)
	assert.ErrorIs(t, err, draw.ErrSlotIndex)
	assert.ErrorIs(t, s.Reset(1), draw.ErrSlotIndex)
	assert.False(t, s.DrawPending(1))

	added, err := s.AddSlot(1)
	require.NoError(t, err)
	_, err = s.AddTopic(1, draw.TopicFields{Title: "a"})
	require.NoError(t, err)
	assert.Len(t, activeSlot(t, s, 1).Topics, 1)
	assert.Equal(t, added.ID, activeSlot(t, s, 1).ID)
}

func TestStore_DrawPendingGuard(t *testing.T) {
	s := newTestStore(t)
	_, err := s.BulkAdd(1, []draw.TopicFields{{Title: "a"}, {Title: "b"}})
	require.NoError(t, err)

	first, err := s.Draw(1)
	require.NoError(t, err)
	assert.True(t, s.DrawPending(1))

	_, err = s.Draw(1)
	require.ErrorIs(t, err, ErrDrawPending)
	_, _, err = s.Undo(1)
	require.ErrorIs(t, err, ErrDrawPending)
	require.ErrorIs(t, s.Reset(1), ErrDrawPending)
	assert.Equal(t, 1, activeSlot(t, s, 1).UsedCount(), "rejected draw must not mark a second topic")

	// Other days are independent.
	_, err = s.AddTopic(2, draw.TopicFields{Title: "c"})
	require.NoError(t, err)
	_, err = s.Draw(2)
	require.NoError(t, err)

	s.Reveal(1, activeSlot(t, s, 1).ID)
	assert.False(t, s.DrawPending(1))

	last, ok := activeSlot(t, s, 1).LastDrawn()
	require.True(t, ok)
	assert.Equal(t, first.ID, last.ID)

	_, err = s.Draw(1)
	require.NoError(t, err)
}

func TestStore_DrawUndoRoundTrip(t *testing.T) {
	s := newTestStore(t)
	_, err := s.BulkAdd(1, []draw.TopicFields{{Title: "X"}, {Title: "Y"}})
	require.NoError(t, err)
	before := activeSlot(t, s, 1)

	picked, err := s.Draw(1)
	require.NoError(t, err)
	s.Reveal(1, before.ID)
	assert.Equal(t, picked.ID, activeSlot(t, s, 1).LastDrawnID)

	undone, ok, err := s.Undo(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, picked.ID, undone.ID)
	assert.Equal(t, before, activeSlot(t, s, 1))
}

func TestStore_SwitchingSlotsKeepsLastResult(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddTopic(1, draw.TopicFields{Title: "a"})
	require.NoError(t, err)
	picked, err := s.Draw(1)
	require.NoError(t, err)
	first := activeSlot(t, s, 1)
	s.Reveal(1, first.ID)

	_, err = s.AddSlot(1)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, activeSlot(t, s, 1).ID)

	require.NoError(t, s.SetActiveSlot(1, 0))
	last, ok := activeSlot(t, s, 1).LastDrawn()
	require.True(t, ok)
	assert.Equal(t, picked.ID, last.ID)
}

func TestStore_RemoveSlotClearsPending(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddSlot(1)
	require.NoError(t, err)
	_, err = s.AddTopic(1, draw.TopicFields{Title: "a"})
	require.NoError(t, err)
	_, err = s.Draw(1)
	require.NoError(t, err)
	require.True(t, s.DrawPending(1))

	removed, err := s.RemoveSlot(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Slot 2", removed.Name)
	assert.False(t, s.DrawPending(1))
	assert.Empty(t, s.pending)
}

func TestStore_RenameSlot(t *testing.T) {
	s := newTestStore(t)
	id := activeSlot(t, s, 2).ID
	require.NoError(t, s.RenameSlot(2, id, "Semis"))
	assert.Equal(t, "Semis", activeSlot(t, s, 2).Name)
	assert.ErrorIs(t, s.RenameSlot(2, 1000, "x"), draw.ErrSlotNotFound)
}

func TestStore_ResetClearsEverything(t *testing.T) {
	s := newTestStore(t)
	_, err := s.BulkAdd(1, []draw.TopicFields{{Title: "a"}, {Title: "b"}})
	require.NoError(t, err)
	_, err = s.Draw(1)
	require.NoError(t, err)
	s.Reveal(1, activeSlot(t, s, 1).ID)

	require.NoError(t, s.Reset(1))
	slot := activeSlot(t, s, 1)
	assert.Zero(t, slot.UsedCount())
	assert.Empty(t, slot.LastDrawnID)
}
