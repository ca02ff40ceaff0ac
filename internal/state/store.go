package state

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/five82/podium/internal/draw"
)

// ErrDrawPending rejects a draw, undo or reset while the slot's previous
// draw has not been revealed yet.
var ErrDrawPending = errors.New("draw already in progress")

// Snapshot is a consistent, private copy of the hierarchy.
type Snapshot struct {
	Data      draw.AppData
	Version   uint64
	UpdatedAt time.Time
}

// Day returns a day from the snapshot.
func (s Snapshot) Day(id int) (draw.Day, bool) {
	d, ok := s.Data[id]
	return d, ok
}

// Observer is notified after each committed change.
type Observer func(Snapshot)

// Store owns the application hierarchy. Every mutation runs against a clone
// which replaces the current data only when the transition succeeds.
type Store struct {
	mu        sync.RWMutex
	data      draw.AppData
	version   uint64
	updatedAt time.Time
	rng       draw.Source
	pending   map[slotRef]struct{}

	obsMu     sync.Mutex
	observers []Observer
}

type slotRef struct {
	day  int
	slot int
}

// Option customises a Store.
type Option func(*Store)

// WithSource sets the randomness used by Draw.
func WithSource(src draw.Source) Option {
	return func(s *Store) {
		if src != nil {
			s.rng = src
		}
	}
}

// New returns a Store holding a private copy of data.
func New(data draw.AppData, opts ...Option) *Store {
	s := &Store{
		data:      data.Clone(),
		updatedAt: time.Now(),
		rng:       globalSource{},
		pending:   make(map[slotRef]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Data: s.data.Clone(), Version: s.version, UpdatedAt: s.updatedAt}
}

// Subscribe registers an observer for committed changes.
func (s *Store) Subscribe(o Observer) {
	if o == nil {
		return
	}
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

// DrawPending reports whether the active slot of dayID awaits a reveal.
func (s *Store) DrawPending(dayID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[dayID]
	if !ok {
		return false
	}
	_, pending := s.pending[slotRef{dayID, d.Active().ID}]
	return pending
}

// apply runs fn against a clone of one day; see commit. A day without
// slots is rejected so fn can rely on ActiveSlotPtr.
func (s *Store) apply(dayID int, fn func(day *draw.Day) (changed bool, err error)) error {
	return s.commit(func(next draw.AppData) (bool, error) {
		day, ok := next[dayID]
		if !ok {
			return false, fmt.Errorf("%w: %d", draw.ErrUnknownDay, dayID)
		}
		if len(day.Slots) == 0 {
			return false, fmt.Errorf("%w: day %d has no slots", draw.ErrSlotIndex, dayID)
		}
		changed, err := fn(&day)
		if err != nil || !changed {
			return false, err
		}
		next[dayID] = day
		return true, nil
	})
}

// commit runs fn against a clone of the hierarchy while holding the write
// lock and installs the clone when fn succeeds. changed=false skips the
// commit and observers are not called.
func (s *Store) commit(fn func(next draw.AppData) (changed bool, err error)) error {
	s.mu.Lock()
	next := s.data.Clone()
	changed, err := fn(next)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	s.data = next
	s.version++
	s.updatedAt = time.Now()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

func (s *Store) notify(snap Snapshot) {
	s.obsMu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

// globalSource draws from the process-wide math/rand/v2 generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }
