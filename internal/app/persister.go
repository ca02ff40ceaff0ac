package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/podium/internal/persist"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// StartPersister launches a background goroutine that flushes the writer
// whenever a snapshot is queued. Failed writes are retried with exponential
// backoff. It returns immediately; the returned channel closes once the
// goroutine has exited after ctx is cancelled.
func StartPersister(ctx context.Context, w *persist.Writer, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)

		failures := 0
		var retry <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.Ready():
			case <-retry:
			}

			if err := w.Flush(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				wait := calculateBackoff(failures, interval)
				logger.Warn("snapshot write failed, retrying",
					zap.Int("failures", failures),
					zap.Duration("retry_in", wait))
				retry = time.After(wait)
				continue
			}
			failures = 0
			retry = nil
		}
	}()
	return done
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
