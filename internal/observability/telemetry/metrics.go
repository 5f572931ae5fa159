package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aria_commands_total",
		Help: "Total commands processed, by intent and status",
	}, []string{"intent", "status"})

	CommandLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aria_command_latency_seconds",
		Help:    "Command processing latency",
		Buckets: prometheus.DefBuckets,
	})

	PendingDialogues = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aria_pending_dialogues",
		Help: "Dialogues currently waiting on a follow-up answer",
	})

	PipelineQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aria_pipeline_queue_depth",
		Help: "Commands queued and not yet processed",
	})

	PipelineTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aria_pipeline_timeouts_total",
		Help: "Commands that hit the processing deadline",
	})

	// Infrastructure metrics
	CollaboratorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aria_collaborator_requests_total",
		Help: "Outbound collaborator calls, by service and outcome",
	}, []string{"service", "outcome"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aria_database_latency_seconds",
		Help:    "Database query latency",
		Buckets: prometheus.DefBuckets,
	})
)
