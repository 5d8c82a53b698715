package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"rewardpoints/core/events"
)

// PointsMetrics exposes Prometheus collectors for the points engine.
type PointsMetrics struct {
	operations     *prometheus.CounterVec
	pointsAwarded  prometheus.Counter
	pointsRedeemed prometheus.Counter
	paused         prometheus.Gauge
}

var (
	pointsOnce     sync.Once
	pointsRegistry *PointsMetrics
)

// Points returns the process-wide engine metrics, registering the collectors
// on first use.
func Points() *PointsMetrics {
	pointsOnce.Do(func() {
		pointsRegistry = &PointsMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "points_operations_total",
				Help: "Count of engine operations by method and outcome.",
			}, []string{"method", "outcome"}),
			pointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "points_awarded_total",
				Help: "Total points accrued across all users and merchants.",
			}),
			pointsRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "points_redeemed_total",
				Help: "Total points consumed across all users and merchants.",
			}),
			paused: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "points_paused",
				Help: "Whether value-bearing operations are currently suspended.",
			}),
		}
		prometheus.MustRegister(
			pointsRegistry.operations,
			pointsRegistry.pointsAwarded,
			pointsRegistry.pointsRedeemed,
			pointsRegistry.paused,
		)
	})
	return pointsRegistry
}

// ObserveOperation records the outcome of an engine call.
func (m *PointsMetrics) ObserveOperation(method, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(method, outcome).Inc()
}

// Emit implements events.Emitter so the metrics receive engine events
// alongside the event log.
func (m *PointsMetrics) Emit(e events.Event) {
	if m == nil || e == nil {
		return
	}
	switch evt := e.(type) {
	case events.UserRewarded:
		m.pointsAwarded.Add(float64(evt.Amount))
	case events.PointsRedeemed:
		m.pointsRedeemed.Add(float64(evt.Amount))
	case events.Paused:
		m.paused.Set(1)
	case events.Unpaused:
		m.paused.Set(0)
	}
}
