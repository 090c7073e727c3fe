package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cakeflow_design_sessions_created_total",
		Help: "Total number of kiosk design handoff sessions created.",
	})

	SessionsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cakeflow_design_sessions_completed_total",
		Help: "Total number of design sessions completed from a phone editor.",
	})

	SessionsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cakeflow_design_sessions_expired_total",
		Help: "Total number of design sessions that expired before completion.",
	})

	RequestsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cakeflow_cake_requests_created_total",
		Help: "Total number of draft cake requests created.",
	})

	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cakeflow_status_transitions_total",
		Help: "Total number of successful cake request status transitions.",
	},
		[]string{"to_status"},
	)

	QuotesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cakeflow_quotes_issued_total",
		Help: "Total number of quotes issued by admins.",
	})

	ReceiptsUploadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cakeflow_payment_receipts_uploaded_total",
		Help: "Total number of payment receipts uploaded.",
	})

	ReceiptsVerifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cakeflow_payment_receipts_verified_total",
		Help: "Total number of payment receipts verified, by outcome.",
	},
		[]string{"outcome"},
	)

	PickupsScheduledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cakeflow_pickups_scheduled_total",
		Help: "Total number of pickups scheduled.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cakeflow_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cakeflow_design_sessions_active",
		Help: "Current number of active design sessions.",
	})
)
