package locator

import (
	"strings"
	"unicode/utf8"

	"locator-inspector/internal/entity"
	"locator-inspector/internal/ports"
)

var textTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"span": true, "div": true, "article": true, "section": true,
	"header": true, "footer": true, "main": true,
}

// Classify maps el to its category using the default thresholds.
func Classify(el ports.Element) entity.Category {
	return DefaultThresholds().Classify(el)
}

func (t Thresholds) Classify(el ports.Element) entity.Category {
	tag := el.Tag()

	switch {
	case tag == "input" || tag == "textarea":
		return entity.CategoryInput
	case tag == "button":
		return entity.CategoryButton
	case tag == "a":
		return entity.CategoryLink
	case tag == "select":
		return entity.CategorySelect
	case t.isText(el):
		return entity.CategoryText
	}

	return entity.CategoryGeneric
}

func (t Thresholds) isText(el ports.Element) bool {
	if !textTags[el.Tag()] {
		return false
	}

	if utf8.RuneCountInString(strings.TrimSpace(el.TextContent())) <= t.TextMinLength {
		return false
	}

	return countInteractive(el, t.TextMaxInteractive+1) <= t.TextMaxInteractive
}

func isInteractive(el ports.Element) bool {
	switch el.Tag() {
	case "input", "button", "select", "textarea":
		return true
	case "a":
		_, ok := el.Attr("href")

		return ok
	}

	return false
}

// countInteractive counts interactive descendants of el, stopping once limit is reached.
func countInteractive(el ports.Element, limit int) int {
	count := 0
	stack := el.Children()

	for len(stack) > 0 && count < limit {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if isInteractive(n) {
			count++
		}
		stack = append(stack, n.Children()...)
	}

	return count
}

func hasInteractiveDescendant(el ports.Element) bool {
	return countInteractive(el, 1) > 0
}
