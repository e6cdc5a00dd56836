package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VoiceCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicegw_voice_commands_total",
		Help: "Voice pipeline runs by resolved intent and outcome",
	}, []string{"intent", "status"})

	PipelineLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voicegw_pipeline_latency_seconds",
		Help:    "End-to-end voice pipeline latency",
		Buckets: prometheus.DefBuckets,
	})

	TranscriptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicegw_transcriptions_total",
		Help: "Speech-to-text calls by outcome",
	}, []string{"status"})

	SynthesesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicegw_syntheses_total",
		Help: "Text-to-speech calls by outcome",
	}, []string{"status"})

	FunctionCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicegw_function_calls_total",
		Help: "Named function executions by function and outcome",
	}, []string{"function", "status"})

	RealtimeSessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicegw_realtime_sessions_total",
		Help: "Realtime session bootstrap requests",
	})
)
