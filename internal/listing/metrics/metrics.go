package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the listing-domain Prometheus counters.
type Metrics struct {
	ListingsCreated prometheus.Counter
	ListingsUpdated prometheus.Counter
	ListingsDeleted prometheus.Counter
}

// New registers the listing counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ListingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "provision_listings_created_total",
			Help: "Total number of listings created",
		}),
		ListingsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "provision_listings_updated_total",
			Help: "Total number of listings updated",
		}),
		ListingsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "provision_listings_deleted_total",
			Help: "Total number of listings deleted",
		}),
	}
}
