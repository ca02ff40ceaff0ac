package draw

import (
	"fmt"
	"sort"
)

// DefaultSlotName labels the n-th slot of a day (1-based).
func DefaultSlotName(n int) string {
	return fmt.Sprintf("Slot %d", n)
}

// NewSlot returns an empty slot.
func NewSlot(id int, name string) Slot {
	if name == "" {
		name = DefaultSlotName(id + 1)
	}
	return Slot{ID: id, Name: name, Topics: []Topic{}}
}

// NewAppData builds the default hierarchy: one day per id, each holding a
// single empty slot. Slot ids are unique across days.
func NewAppData(dayIDs []int) AppData {
	data := make(AppData, len(dayIDs))
	for i, id := range dayIDs {
		data[id] = Day{ID: id, Slots: []Slot{NewSlot(i, DefaultSlotName(1))}}
	}
	return data
}

// DayIDs returns the day ids in ascending order.
func (a AppData) DayIDs() []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ActiveSlotPtr returns the active slot for in-place mutation.
func (d *Day) ActiveSlotPtr() *Slot {
	if len(d.Slots) == 0 {
		return nil
	}
	if d.ActiveSlot < 0 || d.ActiveSlot >= len(d.Slots) {
		d.ActiveSlot = len(d.Slots) - 1
	}
	return &d.Slots[d.ActiveSlot]
}

// Active returns a copy of the active slot.
func (d Day) Active() Slot {
	if p := d.ActiveSlotPtr(); p != nil {
		return *p
	}
	return Slot{}
}

// SlotByID returns the index of the slot with the given id, or -1.
func (d Day) SlotByID(id int) int {
	for i, s := range d.Slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// SetActiveSlot switches the active slot. Slot contents are untouched.
func (d *Day) SetActiveSlot(index int) error {
	if index < 0 || index >= len(d.Slots) {
		return fmt.Errorf("%w: %d of %d", ErrSlotIndex, index, len(d.Slots))
	}
	d.ActiveSlot = index
	return nil
}

// RemoveSlot deletes the slot at index. The only slot of a day cannot be
// removed. The active slot stays the same slot when possible; when the
// active slot itself is removed the index stays put, clamped to the end.
func (d *Day) RemoveSlot(index int) (Slot, error) {
	if index < 0 || index >= len(d.Slots) {
		return Slot{}, fmt.Errorf("%w: %d of %d", ErrSlotIndex, index, len(d.Slots))
	}
	if len(d.Slots) <= 1 {
		return Slot{}, ErrLastSlot
	}
	removed := d.Slots[index]
	d.Slots = append(d.Slots[:index:index], d.Slots[index+1:]...)
	switch {
	case index < d.ActiveSlot:
		d.ActiveSlot--
	case d.ActiveSlot >= len(d.Slots):
		d.ActiveSlot = len(d.Slots) - 1
	}
	return removed, nil
}

// RenameSlot sets the display name of the slot with the given id.
func (d *Day) RenameSlot(slotID int, name string) error {
	i := d.SlotByID(slotID)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrSlotNotFound, slotID)
	}
	d.Slots[i].Name = name
	return nil
}

// AddSlot appends an empty slot to the day, names it after its position and
// makes it active.
func (a AppData) AddSlot(dayID int) (Slot, error) {
	d, ok := a[dayID]
	if !ok {
		return Slot{}, fmt.Errorf("%w: %d", ErrUnknownDay, dayID)
	}
	s := NewSlot(a.nextSlotID(), DefaultSlotName(len(d.Slots)+1))
	d.Slots = append(d.Slots, s)
	d.ActiveSlot = len(d.Slots) - 1
	a[dayID] = d
	return s, nil
}

func (a AppData) nextSlotID() int {
	next := 0
	for _, d := range a {
		for _, s := range d.Slots {
			if s.ID >= next {
				next = s.ID + 1
			}
		}
	}
	return next
}

// Normalize repairs a hierarchy read from untrusted storage so that every
// invariant holds: only the configured days exist, each day has at least one
// slot and a valid active index, slot ids are unique, and stale or duplicate
// topic references are dropped.
func (a AppData) Normalize(dayIDs []int) AppData {
	out := make(AppData, len(dayIDs))
	seenSlots := make(map[int]bool)
	for _, id := range dayIDs {
		d, ok := a[id]
		if !ok {
			continue
		}
		d = d.clone()
		d.ID = id
		for i := range d.Slots {
			s := &d.Slots[i]
			if seenSlots[s.ID] {
				s.ID = -1
			}
			seenSlots[s.ID] = true
			s.Topics = dedupeTopics(s.Topics)
			if _, live := s.LastDrawn(); !live {
				s.LastDrawnID = ""
			}
		}
		out[id] = d
	}
	for _, id := range dayIDs {
		d, ok := out[id]
		if !ok {
			d = Day{ID: id}
		}
		for i := range d.Slots {
			if d.Slots[i].ID < 0 {
				d.Slots[i].ID = out.nextSlotID()
			}
		}
		if len(d.Slots) == 0 {
			d.Slots = []Slot{NewSlot(out.nextSlotID(), DefaultSlotName(1))}
		}
		if d.ActiveSlot < 0 || d.ActiveSlot >= len(d.Slots) {
			d.ActiveSlot = 0
		}
		out[id] = d
	}
	return out
}

func dedupeTopics(topics []Topic) []Topic {
	out := make([]Topic, 0, len(topics))
	seen := make(map[string]bool, len(topics))
	for _, t := range topics {
		if t.ID == "" {
			t.ID = newTopicID()
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
