package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesPropagatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maskflow_frames_propagated_total",
		Help: "Total number of frames a mask was propagated to, by strategy",
	}, []string{"strategy"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maskflow_stage_duration_seconds",
		Help:    "Duration of per-frame pipeline stages",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"stage"})

	TrackingLostTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maskflow_tracking_lost_total",
		Help: "Total number of frames where sparse tracking fell back to the last box",
	})

	InferenceFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maskflow_inference_failures_total",
		Help: "Total number of frames where neural flow inference failed",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "maskflow_active_sessions",
		Help: "Number of currently active propagation sessions",
	})
)
