// Package metrics implements Prometheus metrics for the capture pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesCaptured counts frames delivered by the source.
	FramesCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strix_frames_captured_total",
		Help: "Total number of frames read from the capture source",
	})

	// DecodeErrors counts malformed frames, by failing layer.
	DecodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strix_decode_errors_total",
		Help: "Total number of frames dropped due to decode errors",
	}, []string{"layer"})

	// ExchangesCompleted counts resolved ARP and completed echo exchanges.
	ExchangesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strix_exchanges_completed_total",
		Help: "Total number of correlated request/reply exchanges",
	}, []string{"protocol"})

	// ExchangesLost counts exchanges that timed out without a reply.
	ExchangesLost = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strix_exchanges_lost_total",
		Help: "Total number of exchanges expired without a reply",
	}, []string{"protocol"})

	// OrphanReplies counts replies with no matching pending request.
	OrphanReplies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strix_orphan_replies_total",
		Help: "Total number of unsolicited replies observed",
	})
)
