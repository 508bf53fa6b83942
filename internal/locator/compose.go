package locator

import (
	"strconv"
	"strings"

	"locator-inspector/internal/entity"
)

// Compose annotates base with the context chain leading to its scope.
// Base locators stay scope-local; Compose only formats, it never queries.
func Compose(base entity.LocatorResult, chain entity.ContextChain) entity.CompositeLocator {
	composite := entity.CompositeLocator{LocatorResult: base}
	if len(chain) == 0 {
		return composite
	}

	composite.Chain = append(entity.ContextChain(nil), chain...)

	selectors := make([]string, 0, len(chain))
	names := make([]string, 0, len(chain))
	var frameSteps []string

	for _, frame := range chain {
		selectors = append(selectors, frameSelector(frame))
		names = append(names, frame.Name)

		if frame.Kind == entity.FrameKindFrame {
			if frame.Name != "" {
				frameSteps = append(frameSteps, "//iframe[@name="+xpathLiteral(frame.Name)+"]")
			} else {
				frameSteps = append(frameSteps, "//iframe")
			}
		}
	}

	composite.ScopePath = strings.Join(selectors, " ")
	composite.Hierarchy = strings.Join(names, " > ")
	composite.FrameXPath = strings.Join(frameSteps, "")
	composite.Snippets = entity.Snippets{
		Selenium:   seleniumSnippet(chain, base.Selector),
		Playwright: playwrightSnippet(chain, base.Selector),
		Cypress:    cypressSnippet(chain, base.Selector),
	}

	return composite
}

func frameSelector(frame entity.ContextFrame) string {
	if frame.Selector != "" {
		return frame.Selector
	}

	if frame.Kind == entity.FrameKindFrame && frame.Name != "" {
		return "iframe" + attrSelector("name", frame.Name)
	}

	return frame.Name
}

// quote wraps s in single quotes for embedding in JS or Python source.
func quote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}

// seleniumSnippet switches into each frame in turn, descending through
// shadow roots by their hosts, then finds the element.
func seleniumSnippet(chain entity.ContextChain, selector string) string {
	var steps []string
	scope := "driver"
	roots := 0

	for _, frame := range chain {
		find := scope + ".find_element(By.CSS_SELECTOR, " + quote(frameSelector(frame)) + ")"

		switch frame.Kind {
		case entity.FrameKindShadow:
			roots++
			next := "root" + strconv.Itoa(roots)
			steps = append(steps, next+" = "+find+".shadow_root")
			scope = next
		default:
			steps = append(steps, "driver.switch_to.frame("+find+")")
			scope = "driver"
		}
	}

	steps = append(steps, "element = "+scope+".find_element(By.CSS_SELECTOR, "+quote(selector)+")")

	return strings.Join(steps, "; ")
}

// playwrightSnippet chains frame locators; Playwright locators pierce open shadow roots.
func playwrightSnippet(chain entity.ContextChain, selector string) string {
	var b strings.Builder
	b.WriteString("page")

	for _, frame := range chain {
		switch frame.Kind {
		case entity.FrameKindShadow:
			b.WriteString(".locator(" + quote(frameSelector(frame)) + ")")
		default:
			b.WriteString(".frameLocator(" + quote(frameSelector(frame)) + ")")
		}
	}

	b.WriteString(".locator(" + quote(selector) + ")")

	return b.String()
}

func cypressSnippet(chain entity.ContextChain, selector string) string {
	var b strings.Builder
	b.WriteString("cy")

	for i, frame := range chain {
		sel := quote(frameSelector(frame))

		switch {
		case frame.Kind == entity.FrameKindShadow && i == 0:
			b.WriteString(".get(" + sel + ").shadow()")
		case frame.Kind == entity.FrameKindShadow:
			b.WriteString(".find(" + sel + ").shadow()")
		case i == 0:
			b.WriteString(".iframe(" + sel + ")")
		default:
			b.WriteString(".find(" + sel + ").its('0.contentDocument.body').then(cy.wrap)")
		}
	}

	b.WriteString(".find(" + quote(selector) + ")")

	return b.String()
}
