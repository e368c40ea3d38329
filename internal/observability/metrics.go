// Package observability provides metrics and tracing for the portal.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOpLatency records store operation latency by operation and key.
	StoreOpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "placement_store_op_latency_seconds",
		Help:    "Store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "key"})

	// StoreErrors counts store failures by operation and key.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_store_errors_total",
		Help: "Total number of store errors",
	}, []string{"operation", "key"})

	// ResumeUploads counts resume uploads by outcome.
	ResumeUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_resume_uploads_total",
		Help: "Total number of resume uploads by outcome",
	}, []string{"outcome"})

	// ApplicationsCreated counts applications submitted through the portal.
	ApplicationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "placement_applications_created_total",
		Help: "Total number of applications submitted",
	})

	// ApplicationStatusChanges counts status transitions by new status.
	ApplicationStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_application_status_changes_total",
		Help: "Total number of application status changes",
	}, []string{"status"})
)
