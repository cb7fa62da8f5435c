// Package capture runs the periodic activity capture loop.
package capture

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/model"
)

// DefaultInterval is the time between capture cycles.
const DefaultInterval = 5 * time.Second

// ErrInvalidInterval is returned by Run for a non-positive interval.
var ErrInvalidInterval = errors.New("capture interval must be positive")

// Source produces one activity observation per call.
type Source interface {
	Capture(ctx context.Context) (source, content string, err error)
}

// Ingester stores captured observations.
type Ingester interface {
	Ingest(ctx context.Context, source, content string) (*model.MemoryEntry, error)
}

// MockSource stands in for screen or audio capture.
type MockSource struct {
	Now func() time.Time
}

// Capture reports that the user is viewing code at the current wall-clock time.
func (m MockSource) Capture(ctx context.Context) (string, string, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return model.SourceSystemMonitor,
		fmt.Sprintf("User is viewing code in VS Code at %s", now().Format("15:04:05")),
		nil
}

// Loop ingests one observation from Source every Interval.
type Loop struct {
	Store    Ingester
	Source   Source
	Interval time.Duration
	Logger   *zap.Logger
}

// Run captures immediately and then once per interval until ctx is done.
// Cancellation is the normal way to stop and yields a nil error. Failures of
// a single cycle are logged and do not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	if l.Interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, l.Interval)
	}
	src := l.Source
	if src == nil {
		src = MockSource{}
	}
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}

	session := ulid.MustNew(ulid.Timestamp(time.Now()), rand.New(rand.NewSource(time.Now().UnixNano())))
	log = log.With(zap.String("session", session.String()))
	log.Info("capture loop started", zap.Duration("interval", l.Interval))

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	cycles := 0
	for {
		if l.cycle(ctx, src, log) {
			cycles++
		}

		select {
		case <-ctx.Done():
			log.Info("capture loop stopped", zap.Int("captured", cycles))
			return nil
		case <-ticker.C:
		}
	}
}

// cycle performs one capture and reports whether an entry was stored.
func (l *Loop) cycle(ctx context.Context, src Source, log *zap.Logger) bool {
	if ctx.Err() != nil {
		return false
	}
	label, content, err := src.Capture(ctx)
	if err != nil {
		log.Warn("capture failed", zap.Error(err))
		return false
	}
	e, err := l.Store.Ingest(ctx, label, content)
	if err != nil {
		log.Error("ingest failed", zap.String("source", label), zap.Error(err))
		return false
	}
	log.Debug("captured", zap.Int64("id", e.ID))
	return true
}
