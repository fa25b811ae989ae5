package metrics

import (
	"fmt"
	"sort"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/pkg/errors"
)

// Client is the subset of the datadog statsd client the reporter uses
type Client interface {
	Count(name string, value int64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
}

// StatsdReporter sends metrics to a dogstatsd agent
type StatsdReporter struct {
	client     Client
	rate       float64
	serverType string
}

// NewStatsdReporter dials the agent at address
func NewStatsdReporter(address, prefix, serverType string, rate float64) (*StatsdReporter, error) {
	c, err := statsd.New(address, statsd.WithNamespace(prefix))
	if err != nil {
		return nil, errors.Wrapf(err, "statsd client %s", address)
	}
	return NewStatsdReporterWithClient(c, serverType, rate), nil
}

// NewStatsdReporterWithClient wraps an existing client
func NewStatsdReporterWithClient(c Client, serverType string, rate float64) *StatsdReporter {
	if rate <= 0 || rate > 1 {
		rate = 1
	}
	return &StatsdReporter{
		client:     c,
		rate:       rate,
		serverType: serverType,
	}
}

func (s *StatsdReporter) tags(tags map[string]string) []string {
	out := make([]string, 0, len(tags)+1)
	if s.serverType != "" {
		out = append(out, fmt.Sprintf("type:%s", s.serverType))
	}
	for k, v := range tags {
		out = append(out, fmt.Sprintf("%s:%s", k, v))
	}
	sort.Strings(out)
	return out
}

// ReportCount sends a count
func (s *StatsdReporter) ReportCount(metric string, tags map[string]string, count float64) error {
	return s.client.Count(metric, int64(count), s.tags(tags), s.rate)
}

// ReportGauge sends a gauge
func (s *StatsdReporter) ReportGauge(metric string, tags map[string]string, value float64) error {
	return s.client.Gauge(metric, value, s.tags(tags), s.rate)
}

// ReportSummary sends a histogram sample
func (s *StatsdReporter) ReportSummary(metric string, tags map[string]string, value float64) error {
	return s.client.Histogram(metric, value, s.tags(tags), s.rate)
}
