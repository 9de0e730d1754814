package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ListingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carbon_exchange",
		Name:      "listings_created_total",
		Help:      "Listings successfully created.",
	})
	PurchasesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carbon_exchange",
		Name:      "purchases_completed_total",
		Help:      "Purchases that produced a transaction.",
	})
	PurchaseConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carbon_exchange",
		Name:      "purchase_conflicts_total",
		Help:      "Purchase attempts that lost the status compare-and-set.",
	})
)
