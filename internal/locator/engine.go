// Package locator synthesizes CSS selectors and path expressions that
// re-identify a node of a markup tree.
//
// The engine is stateless between calls: every invocation classifies the
// element, generates candidates against the supplied scope and returns.
// Ambiguity is never an error; a locator that is not unique is returned
// with Unique=false and callers decide how to flag it.
package locator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"locator-inspector/internal/config"
	"locator-inspector/internal/entity"
	"locator-inspector/internal/ports"
	"locator-inspector/pkg/logg"
	"locator-inspector/pkg/tracing"
)

const (
	engineName   = "LocatorEngine"
	engineTracer = "locator.engine"
)

type Engine struct {
	thresholds Thresholds
	logger     *zap.Logger
	tracer     trace.Tracer
}

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func NewEngine(params Params) *Engine {
	return New(ThresholdsFromConfig(params.Config.EngineConfig), params.Logger)
}

func New(thresholds Thresholds, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		thresholds: thresholds,
		logger:     logger.With(zap.String(logg.Layer, engineName)),
		tracer:     otel.Tracer(engineTracer),
	}
}

func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

func (e *Engine) Classify(el ports.Element) entity.Category {
	return e.thresholds.Classify(el)
}

// Selector returns the CSS selector for el, validated against scope.
func (e *Engine) Selector(ctx context.Context, el ports.Element, scope ports.Scope) entity.Selection {
	s := newSynthesis(e.thresholds, scope)

	return s.selector(el, e.Classify(el))
}

// Path returns the path expression for el; scope is only used to test text uniqueness.
func (e *Engine) Path(ctx context.Context, el ports.Element, scope ports.Scope) string {
	s := newSynthesis(e.thresholds, scope)

	return s.path(el, e.Classify(el))
}

// Generate computes both locators for el within scope.
func (e *Engine) Generate(ctx context.Context, el ports.Element, scope ports.Scope) entity.LocatorResult {
	const op = "Generate"
	logger := e.logger.With(zap.String(logg.Operation, op))

	category := e.Classify(el)

	_, step := tracing.StartSpan(ctx, e.tracer, logger, op,
		attribute.String("tag", el.Tag()),
		attribute.String("category", string(category)))
	defer step.End(nil)

	s := newSynthesis(e.thresholds, scope)

	selection := s.selector(el, category)
	path := s.path(el, category)

	step.SetAttributes(
		attribute.Int("oracle_queries", s.o.queries),
		attribute.Int("matches", selection.Matches),
	)

	if !selection.Unique {
		step.Warn("No unique selector found",
			attribute.String(logg.Selector, selection.Selector),
			attribute.Int("matches", selection.Matches),
			attribute.String(logg.Category, string(category)))
	}

	logger.Debug("Locators generated",
		zap.String(logg.Category, string(category)),
		zap.String(logg.Selector, selection.Selector),
		zap.String(logg.Path, path),
		zap.Int("matches", selection.Matches))

	return entity.LocatorResult{
		Selector:        selection.Selector,
		Path:            path,
		Category:        category,
		SelectorMatches: selection.Matches,
		Unique:          selection.Unique,
		SelectorQuality: RateSelector(selection.Selector),
		PathQuality:     RatePath(path),
	}
}

// Compose wraps a result with its context chain.
func (e *Engine) Compose(base entity.LocatorResult, chain entity.ContextChain) entity.CompositeLocator {
	return Compose(base, chain)
}
