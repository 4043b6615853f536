package server

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lapwise",
		Subsystem: "webhook",
		Name:      "events_received_total",
		Help:      "Webhook events received from Strava, by aspect type.",
	}, []string{"aspect_type"})

	eventsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lapwise",
		Subsystem: "webhook",
		Name:      "events_processed_total",
		Help:      "Activity events analyzed successfully.",
	})

	eventsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lapwise",
		Subsystem: "webhook",
		Name:      "events_failed_total",
		Help:      "Activity events whose analysis failed.",
	})
)

func init() {
	prometheus.MustRegister(eventsReceived, eventsProcessed, eventsFailed)
}
