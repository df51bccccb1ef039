package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrichain_logins_total",
		Help: "Number of logins by role",
	}, []string{"role"})

	LogoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrichain_logouts_total",
		Help: "Number of logouts",
	})

	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrichain_scans_total",
		Help: "Number of recorded QR scans by source",
	}, []string{"source"})

	QRCodesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrichain_qr_codes_generated_total",
		Help: "Number of QR codes rendered",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agrichain_http_request_duration_seconds",
		Help:    "Duration of API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// Scan sources
const (
	SourceFrame     = "frame"
	SourceSimulated = "simulated"
	SourceConsumer  = "consumer"
)
