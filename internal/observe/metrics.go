// Package observe holds the OpenTelemetry instruments recorded by the game.
//
// A package-level default instance ([Default]) is bound to the global meter
// provider; tests should use [NewMetrics] with their own
// [metric.MeterProvider] to avoid cross-test pollution. Every Record method
// is safe to call on a nil *Metrics.
package observe

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/vovakirdan/tui-dungeon"

// Metrics holds all metric instruments for the game.
type Metrics struct {
	// RoomTransitions counts completed room swaps. Attributes: from, to.
	RoomTransitions metric.Int64Counter

	// ItemsCollected counts picked up items. Attribute: kind.
	ItemsCollected metric.Int64Counter

	// PhaseChanges counts phase entries. Attribute: phase.
	PhaseChanges metric.Int64Counter

	// PersistenceErrors counts failed saves and loads. Attribute: op.
	PersistenceErrors metric.Int64Counter

	// TickDuration tracks the wall time spent in one game step.
	TickDuration metric.Float64Histogram

	// ActiveSessions tracks live SSH sessions.
	ActiveSessions metric.Int64UpDownCounter
}

// tickBuckets are histogram boundaries in seconds around a 60 Hz frame.
var tickBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0167, 0.033, 0.1,
}

// NewMetrics creates every instrument on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.RoomTransitions, err = m.Int64Counter("dungeon.room.transitions",
		metric.WithDescription("Completed room transitions by source and destination room."),
	); err != nil {
		return nil, err
	}
	if met.ItemsCollected, err = m.Int64Counter("dungeon.items.collected",
		metric.WithDescription("Items picked up by kind."),
	); err != nil {
		return nil, err
	}
	if met.PhaseChanges, err = m.Int64Counter("dungeon.phase.changes",
		metric.WithDescription("Phase entries of the game state machine."),
	); err != nil {
		return nil, err
	}
	if met.PersistenceErrors, err = m.Int64Counter("dungeon.persistence.errors",
		metric.WithDescription("Failed save and load operations."),
	); err != nil {
		return nil, err
	}
	if met.TickDuration, err = m.Float64Histogram("dungeon.tick.duration",
		metric.WithDescription("Time spent advancing one frame."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(tickBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("dungeon.sessions.active",
		metric.WithDescription("Number of connected SSH players."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the metrics bound to the global meter provider.
func Default() *Metrics {
	defaultOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordTransition counts a room swap.
func (m *Metrics) RecordTransition(ctx context.Context, from, to int) {
	if m == nil {
		return
	}
	m.RoomTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", strconv.Itoa(from)),
		attribute.String("to", strconv.Itoa(to)),
	))
}

// RecordItem counts a collected item.
func (m *Metrics) RecordItem(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.ItemsCollected.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordPhase counts entering a phase.
func (m *Metrics) RecordPhase(ctx context.Context, phase string) {
	if m == nil {
		return
	}
	m.PhaseChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("phase", phase)))
}

// RecordPersistenceError counts a failed save or load.
func (m *Metrics) RecordPersistenceError(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.PersistenceErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// RecordTick records how long one step took.
func (m *Metrics) RecordTick(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.TickDuration.Record(ctx, d.Seconds())
}

// SessionStarted and SessionEnded track connected players.
func (m *Metrics) SessionStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, 1)
}

func (m *Metrics) SessionEnded(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, -1)
}
