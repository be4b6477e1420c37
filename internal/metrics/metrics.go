// Package metrics exposes Prometheus counters for page traffic and view
// state changes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/folio/internal/store"
)

// Collector holds all Prometheus metrics for the site. Each Collector has
// its own registry so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	ScrollEvaluations prometheus.Counter
	SectionChanges    *prometheus.CounterVec
	ThemeToggles      *prometheus.CounterVec
	ContentMutations  *prometheus.CounterVec
	ContactMessages   *prometheus.CounterVec
}

// NewCollector creates and registers the metrics under namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ScrollEvaluations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scroll_evaluations_total",
				Help:      "Scroll reports evaluated by the section tracker",
			},
		),
		SectionChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "section_changes_total",
				Help:      "Active section changes, by section entered",
			},
			[]string{"section"},
		),
		ThemeToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "theme_toggles_total",
				Help:      "Theme toggles, by resulting theme",
			},
			[]string{"theme"},
		),
		ContentMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "content_mutations_total",
				Help:      "Applied content mutations, by operation",
			},
			[]string{"op"},
		),
		ContactMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contact_messages_total",
				Help:      "Contact form submissions, by outcome",
			},
			[]string{"outcome"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.ScrollEvaluations,
		c.SectionChanges,
		c.ThemeToggles,
		c.ContentMutations,
		c.ContactMessages,
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Source is anything that reports store changes: a Store or a set of Views.
type Source interface {
	Subscribe(store.Listener) (cancel func())
}

// Observe counts every change src reports. Use the returned function to
// stop.
func (c *Collector) Observe(src Source) (cancel func()) {
	return src.Subscribe(func(ch store.Change) {
		switch ch.Kind {
		case store.ChangeSection:
			c.SectionChanges.WithLabelValues(ch.Section).Inc()
		case store.ChangeTheme:
			c.ThemeToggles.WithLabelValues(string(ch.Theme)).Inc()
		case store.ChangeContent:
			c.ContentMutations.WithLabelValues(string(ch.Op)).Inc()
		}
	})
}

// Middleware records request counts and latency by matched route.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.HTTPRequests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
