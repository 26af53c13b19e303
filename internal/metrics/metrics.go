// Package metrics collects Prometheus metrics for a generation run.
//
// The CLI is a one-shot process, so metrics are not served over HTTP. With
// --metrics-file they are written in the node_exporter textfile format at the
// end of the run, which lets CI jobs that scaffold projects track file counts
// and stage durations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "create_webapp"

// Config configures the recorder.
type Config struct {
	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels
}

// Option configures the recorder.
type Option func(*Config)

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// Recorder holds the metrics of one run in a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	filesWritten   *prometheus.CounterVec
	bytesWritten   prometheus.Counter
	foldersEnsured prometheus.Counter
	stageDuration  *prometheus.HistogramVec
	stepsTotal     *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New(opts ...Option) *Recorder {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		filesWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "files_written_total",
			Help:        "Number of project files written, by content source",
			ConstLabels: cfg.ConstLabels,
		}, []string{"source"}),

		bytesWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "bytes_written_total",
			Help:        "Number of bytes written to project files",
			ConstLabels: cfg.ConstLabels,
		}),

		foldersEnsured: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "folders_ensured_total",
			Help:        "Number of skeleton folders ensured",
			ConstLabels: cfg.ConstLabels,
		}),

		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   Namespace,
			Name:        "stage_duration_seconds",
			Help:        "Duration of each pipeline stage in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"stage"}),

		stepsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "provision_steps_total",
			Help:        "Provisioning steps by name and outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"step", "status"}),
	}
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// FileWritten records one written file.
func (r *Recorder) FileWritten(source string, size int) {
	if r == nil {
		return
	}
	r.filesWritten.WithLabelValues(source).Inc()
	r.bytesWritten.Add(float64(size))
}

// FoldersEnsured records n ensured folders.
func (r *Recorder) FoldersEnsured(n int) {
	if r == nil {
		return
	}
	r.foldersEnsured.Add(float64(n))
}

// ObserveStage records how long a pipeline stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// StepFinished records the outcome of a provisioning step.
func (r *Recorder) StepFinished(step, status string) {
	if r == nil {
		return
	}
	r.stepsTotal.WithLabelValues(step, status).Inc()
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
