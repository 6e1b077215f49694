// Package telemetry configures structured logging and exposes Prometheus
// instrumentation for the reasoning pipeline's phase timings and table
// sizes. Nothing here is on the hot path of normalize/rbox/reasoner/abox
// themselves — those packages take a plain logrus.FieldLogger and never
// import this package directly; Configure and NewMetrics are called once,
// by the root Reasoner façade and cmd/elreasoner's root command.
package telemetry

import (
	"runtime"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Options control Configure's behavior. The zero value is the default:
// the standard Logrus logger, UTC timestamps, no caller info.
type Options struct {
	// Logger is configured in place. Nil means logrus.StandardLogger().
	Logger *logrus.Logger
	// ReportCaller enables file:line annotations on every log entry.
	ReportCaller bool
}

// Configure sets up Logrus the way every elreasoner entry point wants it:
// UTC timestamps, a deterministic text formatter, and (optionally)
// caller file/line with the module's own source prefix stripped off so
// log lines don't repeat an absolute build path. Safe to call more than
// once; not safe to call concurrently with a different Options value.
func Configure(opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.SetReportCaller(opts.ReportCaller)
	logger.AddHook(utcHook{})
	if opts.ReportCaller {
		logger.AddHook(newFilenameHook())
	}
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z",
	})
}

type utcHook struct{}

func (utcHook) Levels() []logrus.Level { return logrus.AllLevels }

func (utcHook) Fire(e *logrus.Entry) error {
	e.Time = e.Time.UTC()
	return nil
}

// filenameHook strips this repository's own source root off caller file
// paths, the way eBay's debuglog package does for its own tree.
type filenameHook struct {
	prefix string
}

func newFilenameHook() filenameHook {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filenameHook{}
	}
	const localPath = "internal/telemetry/telemetry.go"
	if !strings.HasSuffix(file, localPath) {
		return filenameHook{}
	}
	return filenameHook{prefix: file[:len(file)-len(localPath)]}
}

func (filenameHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h filenameHook) Fire(e *logrus.Entry) error {
	if e.HasCaller() {
		e.Caller.File = strings.TrimPrefix(e.Caller.File, h.prefix)
	}
	return nil
}

// Metrics is the set of Prometheus collectors the reasoner façade updates
// at the end of each construction phase. It is registered against its own
// Registry rather than the global default registry, so a caller can embed
// a Reasoner's metrics into a larger process's own /metrics endpoint (or
// spin up several reasoners in-process in tests) without collector
// name collisions.
type Metrics struct {
	Registry *prometheus.Registry

	PhaseDuration *prometheus.HistogramVec
	TBoxSize      prometheus.Gauge
	ABoxSize      prometheus.Gauge
	RBoxSize      prometheus.Gauge
}

// NewMetrics registers and returns a fresh Metrics set.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "elreasoner",
			Name:      "phase_duration_seconds",
			Help:      "Duration of each reasoning pipeline phase (normalize, rbox, classify, saturate).",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),
		TBoxSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "elreasoner",
			Name:      "tbox_statements",
			Help:      "Number of TBox statements in the normalized ontology.",
		}),
		ABoxSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "elreasoner",
			Name:      "abox_statements",
			Help:      "Number of ABox statements in the normalized ontology.",
		}),
		RBoxSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "elreasoner",
			Name:      "rbox_statements",
			Help:      "Number of RBox statements in the normalized ontology.",
		}),
	}
	reg.MustRegister(m.PhaseDuration, m.TBoxSize, m.ABoxSize, m.RBoxSize)
	return m
}

// ObservePhase records how long a named construction phase took. Safe for
// concurrent use: the underlying registry guarantees concurrent-safe
// Gather() and Observe() calls even while a single reasoning pipeline runs
// to completion on its own goroutine.
func (m *Metrics) ObservePhase(phase string, seconds float64) {
	m.PhaseDuration.WithLabelValues(phase).Observe(seconds)
}
