package metrics

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusReporter reports metrics to prometheus.
//	vectors are created on first use, their label names are the sorted tag
//	keys of that first report and must stay the same afterwards
type PrometheusReporter struct {
	namespace string
	registry  *prometheus.Registry

	mu        sync.Mutex
	counters  map[string]*prometheus.CounterVec
	gauges    map[string]*prometheus.GaugeVec
	summaries map[string]*prometheus.SummaryVec
}

// NewPrometheusReporter with its own registry
func NewPrometheusReporter(namespace string) *PrometheusReporter {
	return &PrometheusReporter{
		namespace: namespace,
		registry:  prometheus.NewRegistry(),
		counters:  make(map[string]*prometheus.CounterVec),
		gauges:    make(map[string]*prometheus.GaugeVec),
		summaries: make(map[string]*prometheus.SummaryVec),
	}
}

// Registry the metrics are registered to
func (p *PrometheusReporter) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the prometheus text format
func (p *PrometheusReporter) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func labelNames(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for k := range tags {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func metricHelp(metric string) string {
	return strings.Replace(metric, "_", " ", -1)
}

// ReportCount adds count to the counter
func (p *PrometheusReporter) ReportCount(metric string, tags map[string]string, count float64) error {
	p.mu.Lock()
	vec, ok := p.counters[metric]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      metric,
			Help:      metricHelp(metric),
		}, labelNames(tags))
		if err := p.registry.Register(vec); err != nil {
			p.mu.Unlock()
			return errors.Wrapf(err, "register counter %s", metric)
		}
		p.counters[metric] = vec
	}
	p.mu.Unlock()

	c, err := vec.GetMetricWith(tags)
	if err != nil {
		return errors.Wrapf(err, "counter %s", metric)
	}
	c.Add(count)
	return nil
}

// ReportGauge sets the gauge to value
func (p *PrometheusReporter) ReportGauge(metric string, tags map[string]string, value float64) error {
	p.mu.Lock()
	vec, ok := p.gauges[metric]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      metric,
			Help:      metricHelp(metric),
		}, labelNames(tags))
		if err := p.registry.Register(vec); err != nil {
			p.mu.Unlock()
			return errors.Wrapf(err, "register gauge %s", metric)
		}
		p.gauges[metric] = vec
	}
	p.mu.Unlock()

	g, err := vec.GetMetricWith(tags)
	if err != nil {
		return errors.Wrapf(err, "gauge %s", metric)
	}
	g.Set(value)
	return nil
}

// ReportSummary observes value
func (p *PrometheusReporter) ReportSummary(metric string, tags map[string]string, value float64) error {
	p.mu.Lock()
	vec, ok := p.summaries[metric]
	if !ok {
		vec = prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace:  p.namespace,
			Name:       metric,
			Help:       metricHelp(metric),
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, labelNames(tags))
		if err := p.registry.Register(vec); err != nil {
			p.mu.Unlock()
			return errors.Wrapf(err, "register summary %s", metric)
		}
		p.summaries[metric] = vec
	}
	p.mu.Unlock()

	o, err := vec.GetMetricWith(tags)
	if err != nil {
		return errors.Wrapf(err, "summary %s", metric)
	}
	o.Observe(value)
	return nil
}
