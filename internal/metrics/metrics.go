// Package metrics records filter run statistics in a private Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "articlecurator"

// Collector implements filter.Recorder.
type Collector struct {
	registry     *prometheus.Registry
	received     prometheus.Counter
	dropped      *prometheus.CounterVec
	duplicates   prometheus.Counter
	selected     prometheus.Counter
	runDuration  prometheus.Histogram
	runsComplete prometheus.Counter
}

// NewCollector registers the filter metrics on a fresh registry.
func NewCollector() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "articles_received_total",
			Help:      "Raw articles handed to the filter.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "articles_dropped_total",
			Help:      "Articles rejected, by the stage that rejected them.",
		}, []string{"stage"}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "duplicates_removed_total",
			Help:      "Articles removed as URL or title duplicates.",
		}),
		selected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "articles_selected_total",
			Help:      "Articles returned after ranking and truncation.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "run_duration_seconds",
			Help:      "Wall time of one filter run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		runsComplete: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "runs_total",
			Help:      "Completed filter runs.",
		}),
	}

	for _, collector := range []prometheus.Collector{
		c.received, c.dropped, c.duplicates, c.selected, c.runDuration, c.runsComplete,
	} {
		if err := c.registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Collector) ObserveReceived(count int) {
	c.received.Add(float64(count))
}

func (c *Collector) ObserveDropped(stage string, count int) {
	c.dropped.WithLabelValues(stage).Add(float64(count))
}

func (c *Collector) ObserveDuplicates(count int) {
	c.duplicates.Add(float64(count))
}

func (c *Collector) ObserveSelected(count int) {
	c.selected.Add(float64(count))
}

func (c *Collector) ObserveRun(duration time.Duration) {
	c.runDuration.Observe(duration.Seconds())
	c.runsComplete.Inc()
}

// WriteTextfile dumps the current values in the node_exporter textfile format,
// which suits one-shot CLI runs that have no scrape endpoint.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
