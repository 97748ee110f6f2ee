package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/golf-club-recommender/internal/club"
)

// Metrics holds the Prometheus collectors for recommendations and wind lookups.
type Metrics struct {
	Recommendations  *prometheus.CounterVec // labels: outcome={ok,invalid_input,unresolved_heading,empty_table,error}
	AdjustedDistance prometheus.Histogram
	ClubsSelected    *prometheus.CounterVec // labels: club
	WindFetches      *prometheus.CounterVec // labels: provider, outcome={success,error}
	ShotLogErrors    prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Recommendations,
		m.AdjustedDistance,
		m.ClubsSelected,
		m.WindFetches,
		m.ShotLogErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "club_recommender",
			Name:      "recommendations_total",
			Help:      "Recommendation requests by outcome.",
		}, []string{"outcome"}),
		AdjustedDistance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "club_recommender",
			Name:      "adjusted_distance_yards",
			Help:      "Adjusted shot distance of successful recommendations.",
			Buckets:   []float64{25, 50, 75, 100, 125, 150, 175, 200, 225, 250, 300},
		}),
		ClubsSelected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "club_recommender",
			Name:      "clubs_selected_total",
			Help:      "Recommended clubs by id.",
		}, []string{"club"}),
		WindFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "club_recommender",
			Name:      "wind_fetches_total",
			Help:      "Weather provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ShotLogErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "club_recommender",
			Name:      "shot_log_errors_total",
			Help:      "Shot log appends that failed.",
		}),
	}
}

// ObserveRecommendation records the outcome of one Recommend call.
func (m *Metrics) ObserveRecommendation(rec club.Recommendation, err error) {
	if err != nil {
		m.Recommendations.WithLabelValues(outcome(err)).Inc()
		return
	}
	m.Recommendations.WithLabelValues("ok").Inc()
	m.AdjustedDistance.Observe(rec.AdjustedDistance)
	m.ClubsSelected.WithLabelValues(rec.Club.ID).Inc()
}

// ObserveFetch implements weather.FetchRecorder.
func (m *Metrics) ObserveFetch(provider string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.WindFetches.WithLabelValues(provider, result).Inc()
}

func outcome(err error) string {
	var ce *club.Error
	if errors.As(err, &ce) {
		return ce.Kind.String()
	}
	return "error"
}
