package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "fractal"

// RenderMetrics collects per-frame Prometheus metrics on a private registry.
// It satisfies render.Observer.
type RenderMetrics struct {
	registry *prometheus.Registry

	frameDuration *prometheus.HistogramVec
	framesTotal   *prometheus.CounterVec
	pixelsTotal   *prometheus.CounterVec
	workers       prometheus.Gauge
}

// NewRenderMetrics creates the collectors and registers them together with
// the Go runtime and heap collectors.
func NewRenderMetrics() *RenderMetrics {
	reg := prometheus.NewRegistry()
	m := &RenderMetrics{
		registry: reg,
		frameDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Wall time to render one frame.",
			// 1ms to ~4s; 16.7ms is the 60 FPS budget.
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 13),
		}, []string{"strategy"}),
		framesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered, by strategy and result.",
		}, []string{"strategy", "result"}),
		pixelsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pixels_total",
			Help:      "Pixels produced by successful frames.",
		}, []string{"strategy"}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "render_workers",
			Help:      "Row bands per frame in the most recent render.",
		}),
	}

	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Heap bytes in use when metrics were gathered.",
	}, func() float64 { return float64(ReadMemory().HeapAlloc) })

	reg.MustRegister(
		m.frameDuration,
		m.framesTotal,
		m.pixelsTotal,
		m.workers,
		heap,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveFrame records one frame.
func (m *RenderMetrics) ObserveFrame(strategy string, workers int, elapsed time.Duration, pixels int, err error) {
	m.workers.Set(float64(workers))
	if err != nil {
		m.framesTotal.WithLabelValues(strategy, "error").Inc()
		return
	}
	m.framesTotal.WithLabelValues(strategy, "ok").Inc()
	m.frameDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	m.pixelsTotal.WithLabelValues(strategy).Add(float64(pixels))
}

// Registry exposes the underlying registry.
func (m *RenderMetrics) Registry() *prometheus.Registry { return m.registry }

// Write gathers every metric and writes it in the Prometheus text format.
func (m *RenderMetrics) Write(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// FrameCount returns the number of frames recorded for strategy with the
// given result ("ok" or "error").
func (m *RenderMetrics) FrameCount(strategy, result string) uint64 {
	families, err := m.registry.Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		if mf.GetName() != namespace+"_frames_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["strategy"] == strategy && labels["result"] == result {
				return uint64(metric.GetCounter().GetValue())
			}
		}
	}
	return 0
}

// FormatFPS renders a frame duration as frames per second.
func FormatFPS(elapsed time.Duration) string {
	if elapsed <= 0 {
		return "∞"
	}
	return strconv.FormatFloat(float64(time.Second)/float64(elapsed), 'f', 1, 64)
}
