package observe

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumFor returns the counter value of the data point carrying key=value.
func sumFor(t *testing.T, rm metricdata.ResourceMetrics, name, key, value string) int64 {
	t.Helper()
	met := findMetric(rm, name)
	if met == nil {
		t.Fatalf("metric %q not found", name)
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %q is not a sum", name)
	}
	for _, dp := range sum.DataPoints {
		if key == "" {
			return dp.Value
		}
		for _, kv := range dp.Attributes.ToSlice() {
			if string(kv.Key) == key && kv.Value.AsString() == value {
				return dp.Value
			}
		}
	}
	return 0
}

func TestCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordTransition(ctx, 1, 2)
	m.RecordTransition(ctx, 1, 2)
	m.RecordTransition(ctx, 2, 3)
	m.RecordItem(ctx, "coin")
	m.RecordItem(ctx, "chest")
	m.RecordPhase(ctx, "Playing")
	m.RecordPersistenceError(ctx, "save")

	rm := collect(t, reader)

	tests := []struct {
		name     string
		metric   string
		key      string
		value    string
		expected int64
	}{
		{"transition to 2", "dungeon.room.transitions", "to", "2", 2},
		{"transition to 3", "dungeon.room.transitions", "to", "3", 1},
		{"coins", "dungeon.items.collected", "kind", "coin", 1},
		{"chests", "dungeon.items.collected", "kind", "chest", 1},
		{"playing", "dungeon.phase.changes", "phase", "Playing", 1},
		{"save errors", "dungeon.persistence.errors", "op", "save", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sumFor(t, rm, tc.metric, tc.key, tc.value); got != tc.expected {
				t.Errorf("%s{%s=%s} = %d, expected %d", tc.metric, tc.key, tc.value, got, tc.expected)
			}
		})
	}
}

func TestTickHistogram(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordTick(ctx, 2*time.Millisecond)
	m.RecordTick(ctx, 20*time.Millisecond)

	met := findMetric(collect(t, reader), "dungeon.tick.duration")
	if met == nil {
		t.Fatal("tick histogram not found")
	}
	hist, ok := met.Data.(metricdata.Histogram[float64])
	if !ok || len(hist.DataPoints) == 0 {
		t.Fatal("tick metric is not a populated histogram")
	}
	if got := hist.DataPoints[0].Count; got != 2 {
		t.Errorf("sample count = %d, expected 2", got)
	}
}

func TestActiveSessions(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.SessionStarted(ctx)
	m.SessionStarted(ctx)
	m.SessionEnded(ctx)

	if got := sumFor(t, collect(t, reader), "dungeon.sessions.active", "", ""); got != 1 {
		t.Errorf("active sessions = %d, expected 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordTransition(ctx, 1, 2)
	m.RecordItem(ctx, "coin")
	m.RecordPhase(ctx, "Menu")
	m.RecordPersistenceError(ctx, "load")
	m.RecordTick(ctx, time.Millisecond)
	m.SessionStarted(ctx)
	m.SessionEnded(ctx)
}

func TestDefaultIsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
}
