package state

import (
	"fmt"

	"github.com/five82/podium/internal/draw"
)

// AddTopic prepends a topic to the day's active slot.
func (s *Store) AddTopic(dayID int, f draw.TopicFields) (draw.Topic, error) {
	var added draw.Topic
	err := s.apply(dayID, func(day *draw.Day) (bool, error) {
		added = day.ActiveSlotPtr().AddTopic(f)
		return true, nil
	})
	return added, err
}

// BulkAdd prepends a batch of topics to the day's active slot.
func (s *Store) BulkAdd(dayID int, fields []draw.TopicFields) ([]draw.Topic, error) {
	var added []draw.Topic
	err := s.apply(dayID, func(day *draw.Day) (bool, error) {
		added = day.ActiveSlotPtr().BulkAdd(fields)
		return len(added) > 0, nil
	})
	return added, err
}

// UpdateTopic edits one field of a topic in the day's active slot. A missing
// topic is not an error.
func (s *Store) UpdateTopic(dayID int, topicID string, field draw.Field, value string) error {
	return s.apply(dayID, func(day *draw.Day) (bool, error) {
		return day.ActiveSlotPtr().UpdateTopic(topicID, field, value), nil
	})
}

// RemoveTopic deletes a topic from the day's active slot.
func (s *Store) RemoveTopic(dayID int, topicID string) error {
	return s.apply(dayID, func(day *draw.Day) (bool, error) {
		return day.ActiveSlotPtr().RemoveTopic(topicID), nil
	})
}

// Draw commits a draw on the day's active slot and marks the slot as
// awaiting its reveal. Further draws, undos and resets of that slot are
// rejected with ErrDrawPending until Reveal is called.
func (s *Store) Draw(dayID int) (draw.Topic, error) {
	var picked draw.Topic
	err := s.apply(dayID, func(day *draw.Day) (bool, error) {
		slot := day.ActiveSlotPtr()
		ref := slotRef{dayID, slot.ID}
		if _, busy := s.pending[ref]; busy {
			return false, ErrDrawPending
		}
		t, err := slot.Draw(s.rng)
		if err != nil {
			return false, err
		}
		picked = t
		s.pending[ref] = struct{}{}
		return true, nil
	})
	return picked, err
}

// Reveal ends the pending state of a slot after its result has been shown.
func (s *Store) Reveal(dayID, slotID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, slotRef{dayID, slotID})
}

// Undo reverts the last draw of the day's active slot. It reports false when
// there was nothing to undo.
func (s *Store) Undo(dayID int) (draw.Topic, bool, error) {
	var (
		undone draw.Topic
		ok     bool
	)
	err := s.apply(dayID, func(day *draw.Day) (bool, error) {
		slot := day.ActiveSlotPtr()
		if _, busy := s.pending[slotRef{dayID, slot.ID}]; busy {
			return false, ErrDrawPending
		}
		stale := slot.LastDrawnID != ""
		undone, ok = slot.Undo()
		return ok || stale, nil
	})
	return undone, ok, err
}

// Reset returns every topic of the day's active slot to the pool.
func (s *Store) Reset(dayID int) error {
	return s.apply(dayID, func(day *draw.Day) (bool, error) {
		slot := day.ActiveSlotPtr()
		if _, busy := s.pending[slotRef{dayID, slot.ID}]; busy {
			return false, ErrDrawPending
		}
		slot.Reset()
		return true, nil
	})
}

// SetActiveSlot switches the active slot of a day.
func (s *Store) SetActiveSlot(dayID, index int) error {
	return s.apply(dayID, func(day *draw.Day) (bool, error) {
		if day.ActiveSlot == index && index >= 0 && index < len(day.Slots) {
			return false, nil
		}
		return true, day.SetActiveSlot(index)
	})
}

// AddSlot appends an empty slot to a day and activates it.
func (s *Store) AddSlot(dayID int) (draw.Slot, error) {
	var added draw.Slot
	err := s.commit(func(next draw.AppData) (bool, error) {
		slot, err := next.AddSlot(dayID)
		if err != nil {
			return false, err
		}
		added = slot
		return true, nil
	})
	return added, err
}

// RemoveSlot deletes the slot at index from a day.
func (s *Store) RemoveSlot(dayID, index int) (draw.Slot, error) {
	var removed draw.Slot
	err := s.apply(dayID, func(day *draw.Day) (bool, error) {
		slot, err := day.RemoveSlot(index)
		if err != nil {
			return false, err
		}
		removed = slot
		delete(s.pending, slotRef{dayID, slot.ID})
		return true, nil
	})
	return removed, err
}

// RenameSlot renames a slot of a day by id.
func (s *Store) RenameSlot(dayID, slotID int, name string) error {
	return s.apply(dayID, func(day *draw.Day) (bool, error) {
		if err := day.RenameSlot(slotID, name); err != nil {
			return false, fmt.Errorf("rename slot: %w", err)
		}
		return true, nil
	})
}
