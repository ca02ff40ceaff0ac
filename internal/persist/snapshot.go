package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/podium/internal/draw"
)

// SnapshotKey is the storage key of the hierarchy snapshot.
const SnapshotKey = "debate_draw_data_v3"

// ErrCorrupt wraps snapshot payloads that do not decode.
var ErrCorrupt = errors.New("corrupt snapshot")

// Encode serializes the hierarchy.
func Encode(data draw.AppData) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// Decode parses a stored snapshot. The result is not normalized.
func Decode(b []byte) (draw.AppData, error) {
	var data draw.AppData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: empty document", ErrCorrupt)
	}
	return data, nil
}

// Load reads the snapshot from backend. Any failure falls back to the
// default hierarchy for dayIDs; a loaded snapshot is always normalized.
func Load(ctx context.Context, backend Backend, dayIDs []int, logger *zap.Logger) draw.AppData {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw, err := backend.Get(ctx, SnapshotKey)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Info("no saved snapshot, starting fresh", zap.String("key", SnapshotKey))
		return draw.NewAppData(dayIDs)
	case err != nil:
		logger.Warn("read snapshot failed, starting fresh", zap.Error(err))
		return draw.NewAppData(dayIDs)
	}

	data, err := Decode(raw)
	if err != nil {
		logger.Warn("snapshot unreadable, starting fresh", zap.Error(err), zap.Int("bytes", len(raw)))
		return draw.NewAppData(dayIDs)
	}
	logger.Debug("snapshot loaded", zap.Int("days", len(data)), zap.Int("bytes", len(raw)))
	return data.Normalize(dayIDs)
}
