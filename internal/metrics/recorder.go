package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts planner activity on its own prometheus registry.
type Recorder struct {
	registry        *prometheus.Registry
	mutations       *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
}

// NewRecorder registers the planner counters on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weekly_menu",
			Name:      "mutations_total",
			Help:      "Committed mutations by store and operation.",
		}, []string{"store", "op"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weekly_menu",
			Name:      "rejections_total",
			Help:      "Operations left without effect, by operation and reason.",
		}, []string{"op", "reason"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weekly_menu",
			Name:      "persist_failures_total",
			Help:      "Snapshots that could not be saved, by key.",
		}, []string{"key"}),
	}
	r.registry.MustRegister(r.mutations, r.rejections, r.persistFailures)
	return r
}

// Mutation counts a committed change.
func (r *Recorder) Mutation(store, op string) {
	r.mutations.WithLabelValues(store, op).Inc()
}

// Rejection counts an operation that left state unchanged.
func (r *Recorder) Rejection(op, reason string) {
	r.rejections.WithLabelValues(op, reason).Inc()
}

// PersistFailure counts a snapshot save that failed.
func (r *Recorder) PersistFailure(key string) {
	r.persistFailures.WithLabelValues(key).Inc()
}

// Handler exposes the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Totals sums each counter family across its labels.
type Totals struct {
	Mutations       int
	Rejections      int
	PersistFailures int
}

// Totals gathers the current counter values.
func (r *Recorder) Totals() (Totals, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return Totals{}, err
	}

	var t Totals
	for _, mf := range families {
		var sum float64
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		switch mf.GetName() {
		case "weekly_menu_mutations_total":
			t.Mutations = int(sum)
		case "weekly_menu_rejections_total":
			t.Rejections = int(sum)
		case "weekly_menu_persist_failures_total":
			t.PersistFailures = int(sum)
		}
	}
	return t, nil
}
