package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"socialgraph/backend/internal/network"
	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Prometheus Metrics
// ============================================================================

// Recorder implements network.Recorder on top of Prometheus collectors
type Recorder struct {
	mutationsTotal     *prometheus.CounterVec
	separationsTotal   *prometheus.CounterVec
	separationDuration prometheus.Histogram
	separationVisited  prometheus.Histogram
}

var _ network.Recorder = (*Recorder)(nil)

// NewRecorder registers the collectors with reg. A nil reg uses the default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		// mutationsTotal counts mutations by operation and result
		mutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socialgraph_mutations_total",
			Help: "Total graph mutations by operation and result",
		}, []string{"operation", "result"}),

		// separationsTotal counts separation queries by outcome
		separationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socialgraph_separations_total",
			Help: "Total degree-of-separation queries by outcome",
		}, []string{"outcome"}),

		separationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "socialgraph_separation_duration_seconds",
			Help:    "Degree-of-separation search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),

		separationVisited: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "socialgraph_separation_visited_people",
			Help:    "People dequeued per degree-of-separation search",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
	}
}

// ObserveMutation implements network.Recorder
func (r *Recorder) ObserveMutation(op string, err error) {
	r.mutationsTotal.WithLabelValues(op, result(err)).Inc()
}

// ObserveSeparation implements network.Recorder
func (r *Recorder) ObserveSeparation(outcome network.Outcome, visited int, elapsed time.Duration) {
	r.separationsTotal.WithLabelValues(outcome.String()).Inc()
	r.separationDuration.Observe(elapsed.Seconds())
	r.separationVisited.Observe(float64(visited))
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case apperrors.IsAlreadyExists(err):
		return "already_exists"
	case apperrors.IsNotFound(err):
		return "not_found"
	case apperrors.IsErrorType(err, apperrors.ErrorTypeContext):
		return "cancelled"
	default:
		return "invalid"
	}
}
