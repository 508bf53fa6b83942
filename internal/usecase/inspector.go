package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"locator-inspector/internal/config"
	"locator-inspector/internal/dom"
	"locator-inspector/internal/entity"
	"locator-inspector/internal/ports"
	"locator-inspector/pkg/apperr"
	"locator-inspector/pkg/logg"
	"locator-inspector/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	inspectorServiceName = "InspectorService"
	inspectorTracer      = "usecase.inspector"
)

// scope is one queryable document of a snapshot: the top-level page or
// a frame or shadow root reachable from it.
type scope struct {
	hierarchy string
	doc       *dom.Document
	oracle    ports.Scope
	// boundaries is set for offline sub-scopes; the chain selectors are
	// synthesized on demand in each boundary's parent document.
	boundaries []dom.Boundary
	// chain is set for live frames, whose chain comes from the browser.
	chain entity.ContextChain
}

type session struct {
	snapshot entity.Snapshot
	root     scope
	scopes   []scope
}

type InspectorService struct {
	config  *config.Config
	logger  *zap.Logger
	tracer  trace.Tracer
	engine  ports.LocatorEngine
	browser ports.BrowserManager
	now     func() time.Time

	mu      sync.RWMutex
	current *session
}

type InspectorServiceParams struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Engine  ports.LocatorEngine
	Browser ports.BrowserManager
}

func NewInspectorService(params InspectorServiceParams) *InspectorService {
	return &InspectorService{
		config:  params.Config,
		logger:  params.Logger.With(zap.String(logg.Layer, inspectorServiceName)),
		tracer:  otel.Tracer(inspectorTracer),
		engine:  params.Engine,
		browser: params.Browser,
		now:     time.Now,
	}
}

// LoadHTML parses an offline snapshot and makes it the current one.
func (s *InspectorService) LoadHTML(ctx context.Context, source string, r io.Reader) (snapshot *entity.Snapshot, err error) {
	const op = "LoadHTML"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Source, source))

	_, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String(logg.Source, source))
	defer func() {
		step.End(err)
	}()

	if r == nil {
		return nil, apperr.InvalidReqError(op, "reader", errors.New("nil reader"))
	}

	doc, err := dom.Parse(r)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeParseFailed, err, map[string]any{
			apperr.MetaReason: "parse_failed",
			apperr.MetaStage:  apperr.StageSnapshot,
			apperr.MetaSource: source,
		})
	}

	subscopes, err := doc.Subscopes()
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeParseFailed, err, map[string]any{
			apperr.MetaReason: "subscope_parse_failed",
			apperr.MetaStage:  apperr.StageSnapshot,
			apperr.MetaSource: source,
		})
	}

	sess := &session{
		snapshot: entity.Snapshot{
			ID:       uuid.New(),
			Source:   source,
			Title:    doc.Title(),
			LoadedAt: s.now(),
		},
		root: scope{doc: doc, oracle: doc},
	}

	for _, sub := range subscopes {
		sess.scopes = append(sess.scopes, scope{
			hierarchy:  sub.Hierarchy(),
			doc:        sub.Doc,
			oracle:     sub.Doc,
			boundaries: sub.Chain,
		})
	}

	return s.install(logger, sess), nil
}

// Open navigates the live browser to url, launching it first if needed,
// and snapshots the resulting page.
func (s *InspectorService) Open(ctx context.Context, url string) (snapshot *entity.Snapshot, err error) {
	const op = "Open"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String(logg.URL, url))
	defer func() {
		step.End(err)
	}()

	if strings.TrimSpace(url) == "" {
		return nil, apperr.InvalidReqError(op, "url", errors.New("url cannot be empty"))
	}

	if s.browser == nil {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeUnavailable, "browser_not_configured")
	}

	if !s.browser.IsReady() {
		step.AddEvent("launching browser")

		if err := s.browser.Launch(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.browser.Navigate(ctx, url); err != nil {
		return nil, err
	}

	page, err := s.browser.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := dom.ParseString(page.HTML)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeParseFailed, err, map[string]any{
			apperr.MetaReason: "parse_failed",
			apperr.MetaStage:  apperr.StageSnapshot,
			apperr.MetaURL:    url,
		})
	}

	sess := &session{
		snapshot: entity.Snapshot{
			ID:       uuid.New(),
			Source:   page.URL,
			Title:    page.Title,
			Live:     true,
			LoadedAt: s.now(),
		},
		root: scope{doc: doc, oracle: oracleOr(page.Scope, doc)},
	}

	for _, frame := range page.Frames {
		frameDoc, err := dom.ParseString(frame.HTML)
		if err != nil {
			logger.Warn("Skipping unparsable frame", zap.String(logg.Scope, hierarchyOf(frame.Chain)), zap.Error(err))

			continue
		}

		sess.scopes = append(sess.scopes, scope{
			hierarchy: hierarchyOf(frame.Chain),
			doc:       frameDoc,
			oracle:    oracleOr(frame.Scope, frameDoc),
			chain:     frame.Chain,
		})
	}

	return s.install(logger, sess), nil
}

func (s *InspectorService) install(logger *zap.Logger, sess *session) *entity.Snapshot {
	for _, sc := range sess.scopes {
		sess.snapshot.Scopes = append(sess.snapshot.Scopes, sc.hierarchy)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	logger.Info("Snapshot loaded",
		zap.String(logg.SnapshotID, sess.snapshot.ID.String()),
		zap.String("title", sess.snapshot.Title),
		zap.Int("scopes", len(sess.scopes)))

	snapshot := sess.snapshot

	return &snapshot
}

// Inspect resolves req.Target in the current snapshot and produces its locators
// according to the activation state.
func (s *InspectorService) Inspect(ctx context.Context, req entity.InspectRequest) (inspection *entity.Inspection, err error) {
	const op = "Inspect"
	logger := s.logger.With(zap.String(logg.Operation, op),
		zap.String(logg.Selector, req.Target),
		zap.String(logg.Scope, req.Scope))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.String("target", req.Target),
		attribute.String(logg.Scope, req.Scope),
		attribute.String("trigger", string(req.Activation.Trigger)))
	defer func() {
		step.End(err)
	}()

	copyAction, passThrough, err := decideCopy(op, req.Activation)
	if err != nil {
		return nil, err
	}

	sess, err := s.session(op)
	if err != nil {
		return nil, err
	}

	inspection = &entity.Inspection{
		SnapshotID:  sess.snapshot.ID,
		Trigger:     triggerOf(req.Activation),
		Copy:        copyAction,
		PassThrough: passThrough,
	}

	if passThrough {
		step.AddEvent("pass-through click")

		return inspection, nil
	}

	if strings.TrimSpace(req.Target) == "" {
		return nil, apperr.InvalidReqError(op, "target", errors.New("target cannot be empty"))
	}

	sc, err := sess.lookup(op, req.Scope)
	if err != nil {
		return nil, err
	}

	el, found, err := sc.doc.First(req.Target)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInvalidArgument, err, map[string]any{
			apperr.MetaReason:   "invalid_target",
			apperr.MetaStage:    apperr.StageResolve,
			apperr.MetaSelector: req.Target,
		})
	}
	if !found {
		return nil, apperr.Wrap(op, apperr.CodeNotFound, fmt.Errorf("no element matches %q", req.Target), map[string]any{
			apperr.MetaReason:   "target_not_found",
			apperr.MetaStage:    apperr.StageResolve,
			apperr.MetaSelector: req.Target,
			apperr.MetaScope:    req.Scope,
		})
	}

	base := s.engine.Generate(ctx, el, sc.oracle)
	inspection.Locator = s.engine.Compose(base, s.chainOf(ctx, sc))

	logger.Info("Element inspected",
		zap.String(logg.SnapshotID, sess.snapshot.ID.String()),
		zap.String(logg.Category, string(base.Category)),
		zap.String("css", base.Selector),
		zap.String(logg.Path, base.Path),
		zap.Bool("unique", base.Unique),
		zap.String("copy", string(copyAction)))

	return inspection, nil
}

// Scopes lists the hierarchy names of the sub-scopes of the current snapshot.
func (s *InspectorService) Scopes() ([]string, error) {
	const op = "Scopes"

	sess, err := s.session(op)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), sess.snapshot.Scopes...), nil
}

// Current returns the current snapshot, if any.
func (s *InspectorService) Current() (*entity.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, false
	}

	snapshot := s.current.snapshot

	return &snapshot, true
}

func (s *InspectorService) session(op string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, apperr.Wrap(op, apperr.CodeNoSnapshot, errors.New("nothing loaded"), map[string]any{
			apperr.MetaReason: "no_snapshot",
			apperr.MetaStage:  apperr.StagePreparation,
		})
	}

	return s.current, nil
}

// chainOf builds the context chain of sc. Offline boundary selectors are
// synthesized by the engine inside the boundary's parent document.
func (s *InspectorService) chainOf(ctx context.Context, sc scope) entity.ContextChain {
	if sc.chain != nil {
		return sc.chain
	}

	chain := make(entity.ContextChain, 0, len(sc.boundaries))
	for _, b := range sc.boundaries {
		host := s.engine.Generate(ctx, b.Host, b.Parent)
		chain = append(chain, entity.ContextFrame{
			Kind:     b.Kind,
			Name:     b.Name,
			Selector: host.Selector,
		})
	}

	return chain
}

func (sess *session) lookup(op, hierarchy string) (scope, error) {
	if hierarchy == "" {
		return sess.root, nil
	}

	for _, sc := range sess.scopes {
		if sc.hierarchy == hierarchy {
			return sc, nil
		}
	}

	return scope{}, apperr.Wrap(op, apperr.CodeNotFound, fmt.Errorf("unknown scope %q", hierarchy), map[string]any{
		apperr.MetaReason: "scope_not_found",
		apperr.MetaStage:  apperr.StageResolve,
		apperr.MetaScope:  hierarchy,
	})
}

// decideCopy maps the activation state to what the caller should copy.
// A plain click is not intercepted and yields passThrough.
func decideCopy(op string, a entity.Activation) (action entity.CopyAction, passThrough bool, err error) {
	if !a.Active {
		return "", false, apperr.WrapErrorWithReason(op, apperr.CodeInspectorInactive, "inspector_inactive")
	}

	switch triggerOf(a) {
	case entity.TriggerHover:
		return entity.CopyNone, false, nil
	case entity.TriggerClick:
		switch {
		case a.Modifiers.Ctrl:
			return entity.CopySelector, false, nil
		case a.Modifiers.Alt:
			return entity.CopyPath, false, nil
		case a.Modifiers.Shift:
			return entity.CopyBoth, false, nil
		}

		return entity.CopyNone, true, nil
	case entity.TriggerContext:
		if a.Modifiers.Ctrl {
			return entity.CopySelector, false, nil
		}

		return entity.CopyPath, false, nil
	}

	return "", false, apperr.InvalidReqError(op, "trigger", fmt.Errorf("unknown trigger %q", a.Trigger))
}

func triggerOf(a entity.Activation) entity.Trigger {
	if a.Trigger == "" {
		return entity.TriggerHover
	}

	return a.Trigger
}

func hierarchyOf(chain entity.ContextChain) string {
	names := make([]string, 0, len(chain))
	for _, frame := range chain {
		names = append(names, frame.Name)
	}

	return strings.Join(names, " > ")
}

func oracleOr(live ports.Scope, doc *dom.Document) ports.Scope {
	if live != nil {
		return live
	}

	return doc
}
