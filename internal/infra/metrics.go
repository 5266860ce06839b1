package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business counters exposed on /metrics.
var (
	ProductionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sklad_productions_total",
		Help: "Completed production transactions.",
	})
	WriteoffsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sklad_writeoffs_total",
		Help: "Completed write-off transactions.",
	})
	AlertEmailsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sklad_alert_emails_total",
		Help: "Low-stock alert emails sent.",
	})
)
