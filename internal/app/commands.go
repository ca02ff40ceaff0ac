package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/five82/podium/internal/draw"
	"github.com/five82/podium/internal/exchange"
)

// Drawn is the result of a headless draw.
type Drawn struct {
	Day   string
	Slot  string
	Topic draw.Topic
}

// Draw draws one topic from the day's active slot and reveals it at once.
func (s *Session) Draw(dayID int) (Drawn, error) {
	t, err := s.Store.Draw(dayID)
	if err != nil {
		return Drawn{}, fmt.Errorf("draw day %d: %w", dayID, err)
	}
	d, _ := s.Store.Snapshot().Day(dayID)
	slot := d.Active()
	s.Store.Reveal(dayID, slot.ID)

	s.Logger.Info("topic drawn",
		zap.Int("day", dayID),
		zap.Int("slot", slot.ID),
		zap.String("topic", t.ID))
	return Drawn{Day: s.Config.DayLabel(dayID), Slot: slot.Name, Topic: t}, nil
}

// Export writes one slot of a day as YAML. A negative slot index selects the
// active slot.
func (s *Session) Export(w io.Writer, dayID, slotIdx int) error {
	d, ok := s.Store.Snapshot().Day(dayID)
	if !ok {
		return fmt.Errorf("export: %w: %d", draw.ErrUnknownDay, dayID)
	}
	if slotIdx < 0 {
		slotIdx = d.ActiveSlot
	}
	if slotIdx >= len(d.Slots) {
		return fmt.Errorf("export: %w: %d", draw.ErrSlotIndex, slotIdx)
	}
	return exchange.Export(w, d.Slots[slotIdx])
}

// Import adds the topics of a YAML document to the day's active slot and
// returns how many were added.
func (s *Session) Import(r io.Reader, dayID int) (int, error) {
	fields, err := exchange.Import(r)
	if err != nil {
		return 0, err
	}
	added, err := s.Store.BulkAdd(dayID, fields)
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	s.Logger.Info("topics imported", zap.Int("day", dayID), zap.Int("count", len(added)))
	return len(added), nil
}
