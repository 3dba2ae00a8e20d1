// Package metrics implements the tools.StatsClient interface on top of a
// Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twitsprout/tools"
)

// Metric names recorded by the service.
const (
	HTTPRequestDuration  = "http_request_duration_seconds"
	HTTPFaults           = "http_faults_total"
	StoreDuration        = "store_operation_duration_seconds"
	CascadedPhotoDeletes = "cascaded_photo_deletes_total"
)

// labelNames holds the label names for the known metrics. tools.StatsClient
// only passes label values, so the names have to be fixed up front. Unknown
// metrics get positional names.
var labelNames = map[string][]string{
	HTTPRequestDuration:  {"code", "route"},
	HTTPFaults:           {"op", "code"},
	StoreDuration:        {"backend", "op", "status"},
	CascadedPhotoDeletes: {},
}

// Client records counters, gauges and histograms in a Prometheus registry.
type Client struct {
	namespace string
	reg       *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

var _ tools.StatsClient = (*Client)(nil)

// New returns a Client registering its metrics under the namespace in a
// fresh registry that also carries the Go and process collectors.
func New(namespace string) *Client {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Client{
		namespace:  namespace,
		reg:        reg,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// Registry returns the underlying registry.
func (c *Client) Registry() *prometheus.Registry {
	return c.reg
}

// Count increments the named counter.
func (c *Client) Count(name string, incBy float64, labels []string) {
	c.mu.Lock()
	vec, ok := c.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      name,
			Help:      name,
		}, names(name, len(labels)))
		c.reg.MustRegister(vec)
		c.counters[name] = vec
	}
	c.mu.Unlock()
	vec.WithLabelValues(labels...).Add(incBy)
}

// Gauge sets the named gauge.
func (c *Client) Gauge(name string, value float64, labels []string) {
	c.mu.Lock()
	vec, ok := c.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      name,
			Help:      name,
		}, names(name, len(labels)))
		c.reg.MustRegister(vec)
		c.gauges[name] = vec
	}
	c.mu.Unlock()
	vec.WithLabelValues(labels...).Set(value)
}

// Histogram observes a value in the named histogram.
func (c *Client) Histogram(name string, value float64, labels []string) {
	c.mu.Lock()
	vec, ok := c.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.namespace,
			Name:      name,
			Help:      name,
			Buckets:   prometheus.DefBuckets,
		}, names(name, len(labels)))
		c.reg.MustRegister(vec)
		c.histograms[name] = vec
	}
	c.mu.Unlock()
	vec.WithLabelValues(labels...).Observe(value)
}

// Handler exposes the registry in the Prometheus text format.
func (c *Client) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

func names(metric string, n int) []string {
	if ns, ok := labelNames[metric]; ok && len(ns) == n {
		return ns
	}
	ns := make([]string, n)
	for i := range ns {
		ns[i] = "label" + strconv.Itoa(i)
	}
	return ns
}

// Nop is a StatsClient that records nothing.
var Nop tools.StatsClient = nop{}

type nop struct{}

func (nop) Count(string, float64, []string)     {}
func (nop) Gauge(string, float64, []string)     {}
func (nop) Histogram(string, float64, []string) {}
func (nop) Handler() http.Handler               { return http.NotFoundHandler() }
