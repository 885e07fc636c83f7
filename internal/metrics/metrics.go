package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Inbound metrics
	EventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_received_total",
			Help: "Total number of host events received, by inbound source",
		},
		[]string{"source"},
	)

	EventsFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_filtered_total",
			Help: "Total number of events dropped by the subscription mask",
		},
		[]string{"category"},
	)

	// Pipeline metrics
	EventsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_events_submitted_total",
			Help: "Total number of events handed to the delivery queue",
		},
	)

	EventsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_events_discarded_total",
			Help: "Total number of events discarded because the relay was not running",
		},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_queue_depth",
			Help: "Current depth of the delivery queue",
		},
	)

	// Delivery metrics
	EventsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_events_delivered_total",
			Help: "Total number of events successfully posted to the backend",
		},
	)

	EventsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_events_failed_total",
			Help: "Total number of events lost to delivery failures",
		},
	)

	DeliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relay_delivery_duration_seconds",
			Help:    "Duration of backend POST requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	DeliveryLag = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relay_delivery_lag_seconds",
			Help:    "Time between event arrival and delivery attempt in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
