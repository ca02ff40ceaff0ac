package draw

// Pick selects one topic uniformly from available with a single call to src.
// It reports false when available is empty.
func Pick(available []Topic, src Source) (Topic, bool) {
	switch len(available) {
	case 0:
		return Topic{}, false
	case 1:
		return available[0], true
	}
	i := src.IntN(len(available))
	if i < 0 || i >= len(available) {
		i = 0
	}
	return available[i], true
}

// Draw picks an unused topic, marks it used and records it as the undo
// target. An empty slot or one with every topic used is rejected with
// ErrNoTopicsAvailable and left unchanged.
func (s *Slot) Draw(src Source) (Topic, error) {
	picked, ok := Pick(s.Available(), src)
	if !ok {
		return Topic{}, ErrNoTopicsAvailable
	}
	i := s.index(picked.ID)
	s.Topics[i].IsUsed = true
	s.LastDrawnID = picked.ID
	return s.Topics[i], nil
}

// Undo reverts the most recent draw. Without a live pointer it does nothing
// and reports false.
func (s *Slot) Undo() (Topic, bool) {
	last, ok := s.LastDrawn()
	s.LastDrawnID = ""
	if !ok {
		return Topic{}, false
	}
	i := s.index(last.ID)
	s.Topics[i].IsUsed = false
	return s.Topics[i], true
}

// Reset returns every topic to the pool and clears the undo target.
func (s *Slot) Reset() {
	for i := range s.Topics {
		s.Topics[i].IsUsed = false
	}
	s.LastDrawnID = ""
}
