// Package metrics reports index and simulation statistics to a monitoring
// backend.
package metrics

//go:generate mockgen -destination=mocks/reporter.go -package=mocks github.com/tutumagi/sweepaoi/metrics Reporter

// Reporter interface
type Reporter interface {
	ReportCount(metric string, tags map[string]string, count float64) error
	ReportSummary(metric string, tags map[string]string, value float64) error
	ReportGauge(metric string, tags map[string]string, value float64) error
}

// Reporters fans every report out to a list of reporters, the first error is
// returned after all of them ran
type Reporters []Reporter

// ReportCount to all reporters
func (rs Reporters) ReportCount(metric string, tags map[string]string, count float64) error {
	var first error
	for _, r := range rs {
		if err := r.ReportCount(metric, tags, count); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ReportSummary to all reporters
func (rs Reporters) ReportSummary(metric string, tags map[string]string, value float64) error {
	var first error
	for _, r := range rs {
		if err := r.ReportSummary(metric, tags, value); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ReportGauge to all reporters
func (rs Reporters) ReportGauge(metric string, tags map[string]string, value float64) error {
	var first error
	for _, r := range rs {
		if err := r.ReportGauge(metric, tags, value); err != nil && first == nil {
			first = err
		}
	}
	return first
}
