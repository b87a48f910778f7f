package renderer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports render statistics to Prometheus
type Metrics struct {
	rendersTotal   prometheus.Counter
	renderDuration prometheus.Histogram
	raysTotal      *prometheus.CounterVec
	pixelsTotal    prometheus.Counter
}

// NewMetrics registers the render metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "raytracer_renders_total",
			Help: "Total completed renders",
		}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "raytracer_render_duration_seconds",
			Help:    "Render duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		}),
		raysTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "raytracer_rays_total",
			Help: "Total rays by kind",
		}, []string{"kind"}),
		pixelsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "raytracer_pixels_total",
			Help: "Total rendered pixels",
		}),
	}
}

// Observe records a finished render
func (m *Metrics) Observe(r Result) {
	m.rendersTotal.Inc()
	m.renderDuration.Observe(r.Duration.Seconds())
	m.pixelsTotal.Add(float64(r.Bounds.Dx() * r.Bounds.Dy()))

	c := r.Counters
	m.raysTotal.WithLabelValues("initial").Add(float64(c.InitialRays))
	m.raysTotal.WithLabelValues("raycast").Add(float64(c.Raycasts))
	m.raysTotal.WithLabelValues("backtrace").Add(float64(c.Backtraces))
	m.raysTotal.WithLabelValues("reflection").Add(float64(c.Reflections))
	m.raysTotal.WithLabelValues("inner_reflection").Add(float64(c.InnerReflections))
	m.raysTotal.WithLabelValues("refraction").Add(float64(c.Refractions))
	m.raysTotal.WithLabelValues("overwhite").Add(float64(c.Overwhites))
}
