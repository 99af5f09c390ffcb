package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AssignmentsTotal counts applications transitioned to ASSIGNED,
	// labelled by mode: manual or bulk.
	AssignmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gracehub",
		Name:      "card_assignments_total",
		Help:      "Applications transitioned to ASSIGNED, by assignment mode.",
	}, []string{"mode"})

	// BulkGroupFailures counts groups skipped during bulk assignment due to
	// store errors.
	BulkGroupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gracehub",
		Name:      "card_bulk_assign_group_failures_total",
		Help:      "Groups skipped during bulk assignment because of store errors.",
	})

	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gracehub",
		Name:      "card_applications_submitted_total",
		Help:      "Bible card applications submitted.",
	})

	DeliveriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gracehub",
		Name:      "card_deliveries_total",
		Help:      "Applications transitioned to DELIVERED.",
	})

	VisitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gracehub",
		Name:      "card_visits_recorded_total",
		Help:      "Visit counter increments recorded.",
	})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
