// Package elreasoner is an OWL 2 EL-profile description-logic reasoner:
// TBox/RBox normalization, completion-rule subsumption classification, and
// ABox saturation, fronted by a small BGP query engine. NewReasoner runs
// the full construction pipeline once; the returned Reasoner's accessors
// are read-only.
package elreasoner

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/nodeadmin/elreasoner/abox"
	"github.com/nodeadmin/elreasoner/internal/telemetry"
	"github.com/nodeadmin/elreasoner/normalize"
	"github.com/nodeadmin/elreasoner/ontology"
	"github.com/nodeadmin/elreasoner/query"
	"github.com/nodeadmin/elreasoner/rbox"
	"github.com/nodeadmin/elreasoner/reasoner"
)

// Reasoner is a saturated ontology: a normalized TBox/RBox, a classified
// subsumption hierarchy, and a saturated ABox, all built once by
// NewReasoner and never mutated afterward (§5's single-writer,
// build-then-read-only model).
type Reasoner struct {
	arena      *ontology.Arena
	hierarchy  *rbox.Hierarchy
	classifier *reasoner.Reasoner
	saturation *abox.Saturation
	metrics    *telemetry.Metrics
	timings    Timings
}

type buildOptions struct {
	logger     logrus.FieldLogger
	registerer prometheus.Registerer
	cfg        *Config
}

// Option configures NewReasoner.
type Option func(*buildOptions)

// WithLogger sets the logger passed through to reasoner.Classify for
// --verbose-style construction diagnostics. Defaults to
// logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *buildOptions) { o.logger = l }
}

// WithMetricsRegisterer registers the reasoner's phase-duration histogram
// and TBox/ABox/RBox size gauges into reg, in addition to their own
// internal registry. A nil reg (the default) means "don't instrument
// anything external" — Timings is always populated regardless, since
// that costs nothing beyond a handful of time.Since calls.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *buildOptions) { o.registerer = reg }
}

// WithConfig applies cfg's Limits (e.g. MaxNormalizeSteps) to the
// construction pipeline.
func WithConfig(cfg *Config) Option {
	return func(o *buildOptions) { o.cfg = cfg }
}

// NewReasoner runs normalize -> rbox.Build -> reasoner.Classify ->
// abox.Saturate against ont in sequence and returns the resulting
// Reasoner. ont is never mutated; normalize.Normalize hands back an
// independent, cloned-arena ontology that the rest of the pipeline
// operates on.
func NewReasoner(ont *ontology.Ontology, opts ...Option) (*Reasoner, error) {
	o := &buildOptions{
		logger: logrus.StandardLogger(),
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}

	metrics := telemetry.NewMetrics()
	if o.registerer != nil && o.cfg.Telemetry.MetricsEnabled {
		o.registerer.MustRegister(metrics.PhaseDuration, metrics.TBoxSize, metrics.ABoxSize, metrics.RBoxSize)
	}

	timings := newTimings()

	t0 := time.Now()
	normalized, err := normalize.NormalizeWithLimit(ont, o.cfg.Limits.MaxNormalizeSteps)
	if err != nil {
		return nil, &NormalizationInvariantViolationError{Phase: "normalize", Err: err}
	}
	timings.Normalize = time.Since(t0)
	metrics.ObservePhase("normalize", timings.Normalize.Seconds())

	t0 = time.Now()
	hierarchy := rbox.Build(normalized)
	timings.RBoxBuild = time.Since(t0)
	metrics.ObservePhase("rbox", timings.RBoxBuild.Seconds())

	t0 = time.Now()
	classifier := reasoner.Classify(normalized, hierarchy, reasoner.WithLogger(o.logger))
	timings.Classify = time.Since(t0)
	metrics.ObservePhase("classify", timings.Classify.Seconds())

	t0 = time.Now()
	saturation := abox.Saturate(normalized, classifier, hierarchy)
	timings.Saturate = time.Since(t0)
	metrics.ObservePhase("saturate", timings.Saturate.Seconds())

	metrics.TBoxSize.Set(float64(normalized.TBoxSize()))
	metrics.ABoxSize.Set(float64(normalized.ABoxSize()))
	metrics.RBoxSize.Set(float64(normalized.RBoxSize()))

	return &Reasoner{
		arena:      normalized.Arena,
		hierarchy:  hierarchy,
		classifier: classifier,
		saturation: saturation,
		metrics:    metrics,
		timings:    timings,
	}, nil
}

// Close is a no-op reserved for forward compatibility (e.g. a future
// on-disk cache). Call sites that defer r.Close() today need no change if
// a future version gives it real work to do.
func (r *Reasoner) Close() error { return nil }

// IsSubclass reports whether a is subsumed by b, per the completion-rule
// classification. Either IRI must name a class present in the source
// ontology (not one minted during normalization), or IsSubclass returns
// an *UnknownClassError.
func (r *Reasoner) IsSubclass(a, b string) (bool, error) {
	ea, ok := r.resolveOriginalClass(a)
	if !ok {
		return false, &UnknownClassError{IRI: a}
	}
	eb, ok := r.resolveOriginalClass(b)
	if !ok {
		return false, &UnknownClassError{IRI: b}
	}
	return r.classifier.IsSubsumedBy(ea, eb), nil
}

// IsSubproperty reports whether object property a is subsumed by b in the
// role hierarchy. Either IRI must name an object property present in the
// source ontology, or IsSubproperty returns an *UnknownPropertyError.
func (r *Reasoner) IsSubproperty(a, b string) (bool, error) {
	ea, ok := r.resolveOriginalProperty(a)
	if !ok {
		return false, &UnknownPropertyError{IRI: a}
	}
	eb, ok := r.resolveOriginalProperty(b)
	if !ok {
		return false, &UnknownPropertyError{IRI: b}
	}
	for _, s := range r.hierarchy.SubsumersOf(ea) {
		if s == eb {
			return true, nil
		}
	}
	return false, nil
}

// ClassSubsumers returns the IRIs of every class that subsumes the class
// named iri, excluding auxiliary classes minted during normalization.
func (r *Reasoner) ClassSubsumers(iri string) ([]string, error) {
	e, ok := r.resolveOriginalClass(iri)
	if !ok {
		return nil, &UnknownClassError{IRI: iri}
	}
	return r.visibleIRIs(r.classifier.Subsumers(e)), nil
}

// ObjectPropertySubsumers returns the IRIs of every object property that
// subsumes the property named iri in the role hierarchy.
func (r *Reasoner) ObjectPropertySubsumers(iri string) ([]string, error) {
	e, ok := r.resolveOriginalProperty(iri)
	if !ok {
		return nil, &UnknownPropertyError{IRI: iri}
	}
	return r.visibleIRIs(r.hierarchy.SubsumersOf(e)), nil
}

// SaturatedABox returns the fully saturated class/property assertion
// tables computed during construction.
func (r *Reasoner) SaturatedABox() *abox.Saturation { return r.saturation }

// Arena exposes the normalized ontology's entity arena, for callers (such
// as internal/export) that need to turn a SaturatedABox's Entity handles
// back into IRI strings. It is the normalized arena, not the caller's
// original *ontology.Ontology's — the two agree on every entity the
// original ontology interned, but only the normalized arena also knows
// about entities minted during normalization.
func (r *Reasoner) Arena() *ontology.Arena { return r.arena }

// Timings reports how long each construction phase took.
func (r *Reasoner) Timings() Timings { return r.timings }

// AnswerQuery evaluates q against the saturated ABox.
func (r *Reasoner) AnswerQuery(ctx context.Context, q *query.Query) ([]query.Row, error) {
	return query.Evaluate(ctx, r.saturation, r.arena, q)
}

func (r *Reasoner) resolveOriginalClass(iri string) (ontology.Entity, bool) {
	e, ok := r.arena.Lookup(ontology.Class, iri)
	if !ok || r.arena.IsAuxiliary(e) {
		return ontology.Entity{}, false
	}
	return e, true
}

func (r *Reasoner) resolveOriginalProperty(iri string) (ontology.Entity, bool) {
	e, ok := r.arena.Lookup(ontology.ObjectProperty, iri)
	if !ok || r.arena.IsAuxiliary(e) {
		return ontology.Entity{}, false
	}
	return e, true
}

func (r *Reasoner) visibleIRIs(entities []ontology.Entity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		if r.arena.IsAuxiliary(e) {
			continue
		}
		out = append(out, r.arena.IRI(e))
	}
	return out
}
