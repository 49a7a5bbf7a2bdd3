package metrics

import "github.com/prometheus/client_golang/prometheus"

// RelayMetrics exposes counters/histograms for the streaming relay.
type RelayMetrics struct {
	eventsTotal      *prometheus.CounterVec
	resolutionsTotal *prometheus.CounterVec
	frameErrorsTotal prometheus.Counter
	streamLatency    *prometheus.HistogramVec
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medvoy",
			Subsystem: "relay",
			Name:      "client_events_total",
			Help:      "Total events emitted to downstream clients",
		}, []string{"type"}),
		resolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medvoy",
			Subsystem: "relay",
			Name:      "tool_resolutions_total",
			Help:      "Tool call resolutions by tool and outcome",
		}, []string{"tool", "outcome"}),
		frameErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "medvoy",
			Subsystem: "relay",
			Name:      "frame_parse_errors_total",
			Help:      "SSE frames dropped because their payload failed to parse",
		}),
		streamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medvoy",
			Subsystem: "relay",
			Name:      "stream_latency_seconds",
			Help:      "End-to-end latency of one relay run",
			Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55},
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.eventsTotal, m.resolutionsTotal, m.frameErrorsTotal, m.streamLatency)
	return m
}

func (m *RelayMetrics) ObserveEvent(eventType string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(eventType).Inc()
}

func (m *RelayMetrics) ObserveResolution(tool, outcome string) {
	if m == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(tool, outcome).Inc()
}

func (m *RelayMetrics) ObserveFrameError() {
	if m == nil {
		return
	}
	m.frameErrorsTotal.Inc()
}

func (m *RelayMetrics) ObserveStreamLatency(status string, seconds float64) {
	if m == nil {
		return
	}
	m.streamLatency.WithLabelValues(status).Observe(seconds)
}

// CapabilityMetrics tracks calls into the capability endpoints.
type CapabilityMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewCapabilityMetrics(reg prometheus.Registerer) *CapabilityMetrics {
	m := &CapabilityMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medvoy",
			Subsystem: "capability",
			Name:      "requests_total",
			Help:      "Total capability endpoint requests",
		}, []string{"capability", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medvoy",
			Subsystem: "capability",
			Name:      "request_latency_seconds",
			Help:      "Latency of capability endpoint handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"capability"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

func (m *CapabilityMetrics) ObserveRequest(capability, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(capability, status).Inc()
}

func (m *CapabilityMetrics) ObserveLatency(capability string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(capability).Observe(seconds)
}
