package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_bot_commands_total",
			Help: "Total prefix commands handled",
		},
		[]string{"command"},
	)

	InteractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_bot_interactions_total",
			Help: "Total component interactions handled",
		},
		[]string{"component"},
	)

	RatingsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "review_bot_ratings_submitted_total",
			Help: "Total completed rating submissions",
		},
	)

	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_bot_store_errors_total",
			Help: "Total storage failures by operation",
		},
		[]string{"op"},
	)
)

func Init() {
	prometheus.MustRegister(CommandsTotal)
	prometheus.MustRegister(InteractionsTotal)
	prometheus.MustRegister(RatingsSubmitted)
	prometheus.MustRegister(StoreErrors)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
