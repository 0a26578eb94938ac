package report

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chromedp/ngdp"
)

// Metrics collects step and run metrics of scenario runs, to be exported as a
// node exporter textfile.
type Metrics struct {
	reg   *prometheus.Registry
	steps *prometheus.HistogramVec
	runs  *prometheus.CounterVec
}

// NewMetrics creates the metrics on their own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		steps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ngdp",
			Name:      "step_duration_seconds",
			Help:      "Duration of scenario steps.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"scenario", "step", "result"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ngdp",
			Name:      "runs_total",
			Help:      "Scenario runs by result.",
		}, []string{"scenario", "result"}),
	}
	m.reg.MustRegister(m.steps, m.runs)
	return m
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// StepListener returns a step listener observing the steps of scenario.
func (m *Metrics) StepListener(scenario string) func(ngdp.StepEvent) {
	return func(ev ngdp.StepEvent) {
		if !ev.Done {
			return
		}
		m.steps.WithLabelValues(scenario, ev.Name, result(ev.Err)).Observe(ev.Duration.Seconds())
	}
}

// ObserveRun counts a finished run of scenario.
func (m *Metrics) ObserveRun(scenario string, err error) {
	m.runs.WithLabelValues(scenario, result(err)).Inc()
}

// WriteTextfile writes the metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
