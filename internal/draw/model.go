package draw

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by draw transitions. Every rejection leaves the
// receiver unchanged.
var (
	ErrNoTopicsAvailable = errors.New("no topics available")
	ErrLastSlot          = errors.New("a day must keep at least one slot")
	ErrSlotIndex         = errors.New("slot index out of range")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrUnknownDay        = errors.New("unknown day")
)

// Topic is one debate prompt with two opposing positions.
type Topic struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	SideA  string `json:"sideA"`
	SideB  string `json:"sideB"`
	IsUsed bool   `json:"isUsed"`
}

// TopicFields are the editable fields of a new topic.
type TopicFields struct {
	Title string
	SideA string
	SideB string
}

// Field names one editable text field of a Topic.
type Field int

const (
	FieldTitle Field = iota
	FieldSideA
	FieldSideB
)

// String returns the field's wire name.
func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldSideA:
		return "sideA"
	case FieldSideB:
		return "sideB"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ParseField maps a wire or short name onto a Field.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "title":
		return FieldTitle, nil
	case "sidea", "side_a", "a":
		return FieldSideA, nil
	case "sideb", "side_b", "b":
		return FieldSideB, nil
	}
	return 0, fmt.Errorf("unknown topic field %q", name)
}

// Slot is an independently drawable collection of topics. Topics are kept
// newest first. LastDrawnID is empty when there is nothing to undo.
type Slot struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Topics      []Topic `json:"topics"`
	LastDrawnID string  `json:"lastDrawnId"`
}

// Day groups slots and tracks which one is active by index.
type Day struct {
	ID         int    `json:"id"`
	ActiveSlot int    `json:"activeSlotId"`
	Slots      []Slot `json:"slots"`
}

// AppData maps day ids onto days. The key set is fixed by configuration.
type AppData map[int]Day

// Source is the randomness used by the draw engine. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

func (s Slot) clone() Slot {
	out := s
	if s.Topics != nil {
		out.Topics = make([]Topic, len(s.Topics))
		copy(out.Topics, s.Topics)
	}
	return out
}

func (d Day) clone() Day {
	out := d
	if d.Slots != nil {
		out.Slots = make([]Slot, len(d.Slots))
		for i, s := range d.Slots {
			out.Slots[i] = s.clone()
		}
	}
	return out
}

// Clone returns a deep copy. Mutating the copy never affects the receiver.
func (a AppData) Clone() AppData {
	if a == nil {
		return nil
	}
	out := make(AppData, len(a))
	for id, d := range a {
		out[id] = d.clone()
	}
	return out
}
