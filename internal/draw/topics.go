package draw

import "github.com/google/uuid"

// newTopicID is swapped in tests that need predictable ids.
var newTopicID = uuid.NewString

// AddTopic prepends a new unused topic and returns it.
func (s *Slot) AddTopic(f TopicFields) Topic {
	t := Topic{ID: newTopicID(), Title: f.Title, SideA: f.SideA, SideB: f.SideB}
	s.Topics = append([]Topic{t}, s.Topics...)
	return t
}

// BulkAdd prepends a batch of topics, keeping the batch in the given order at
// the head of the list.
func (s *Slot) BulkAdd(fields []TopicFields) []Topic {
	if len(fields) == 0 {
		return nil
	}
	added := make([]Topic, len(fields))
	for i, f := range fields {
		added[i] = Topic{ID: newTopicID(), Title: f.Title, SideA: f.SideA, SideB: f.SideB}
	}
	topics := make([]Topic, 0, len(added)+len(s.Topics))
	topics = append(topics, added...)
	s.Topics = append(topics, s.Topics...)
	out := make([]Topic, len(added))
	copy(out, added)
	return out
}

// UpdateTopic replaces one field of the matching topic. Unknown ids are
// ignored and report false.
func (s *Slot) UpdateTopic(id string, field Field, value string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	switch field {
	case FieldTitle:
		s.Topics[i].Title = value
	case FieldSideA:
		s.Topics[i].SideA = value
	case FieldSideB:
		s.Topics[i].SideB = value
	default:
		return false
	}
	return true
}

// RemoveTopic deletes the matching topic whatever its used state. Removing
// the last drawn topic clears LastDrawnID in the same step.
func (s *Slot) RemoveTopic(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.Topics = append(s.Topics[:i:i], s.Topics[i+1:]...)
	if s.LastDrawnID == id {
		s.LastDrawnID = ""
	}
	return true
}

// Find returns the topic with the given id.
func (s Slot) Find(id string) (Topic, bool) {
	if i := s.index(id); i >= 0 {
		return s.Topics[i], true
	}
	return Topic{}, false
}

// Available returns the unused topics in list order.
func (s Slot) Available() []Topic {
	var out []Topic
	for _, t := range s.Topics {
		if !t.IsUsed {
			out = append(out, t)
		}
	}
	return out
}

// UsedCount reports how many topics have been drawn.
func (s Slot) UsedCount() int {
	n := 0
	for _, t := range s.Topics {
		if t.IsUsed {
			n++
		}
	}
	return n
}

// LastDrawn resolves LastDrawnID. A pointer to a missing or unused topic is
// stale and reads as no last draw.
func (s Slot) LastDrawn() (Topic, bool) {
	if s.LastDrawnID == "" {
		return Topic{}, false
	}
	t, ok := s.Find(s.LastDrawnID)
	if !ok || !t.IsUsed {
		return Topic{}, false
	}
	return t, true
}

func (s Slot) index(id string) int {
	for i, t := range s.Topics {
		if t.ID == id {
			return i
		}
	}
	return -1
}
