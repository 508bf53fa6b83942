package browser

import (
	"locator-inspector/internal/ports"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// liveScope answers uniqueness queries by evaluating them inside a running frame.
type liveScope struct {
	frame  playwright.Frame
	logger *zap.Logger
}

var _ ports.Scope = (*liveScope)(nil)

func newLiveScope(frame playwright.Frame, logger *zap.Logger) *liveScope {
	return &liveScope{frame: frame, logger: logger}
}

func (s *liveScope) Count(selector string) int {
	return s.evaluate(countSelectorScript, selector)
}

func (s *liveScope) CountPath(expr string) int {
	return s.evaluate(countPathScript, expr)
}

func (s *liveScope) evaluate(script, arg string) int {
	if s.frame == nil || s.frame.IsDetached() {
		return 0
	}

	result, err := s.frame.Evaluate(script, arg)
	if err != nil {
		s.logger.Debug("Live count failed", zap.String("expr", arg), zap.Error(err))

		return 0
	}

	return int(getFloat(result))
}
