package locator

import (
	"strings"

	"locator-inspector/internal/ports"
)

// directText is the trimmed text owned by el itself, ignoring descendants.
func directText(el ports.Element) string {
	return strings.TrimSpace(el.DirectText())
}

// effectiveText picks the text that best identifies el:
// its own text, else the text of its only text-bearing plain child,
// else the rendered text, else the raw aggregate text.
func effectiveText(el ports.Element) string {
	if text := directText(el); text != "" {
		return text
	}

	var single string
	carriers := 0
	for _, child := range el.Children() {
		text := strings.TrimSpace(child.TextContent())
		if text == "" || hasInteractiveDescendant(child) {
			continue
		}
		carriers++
		single = text
	}

	if carriers == 1 {
		return single
	}

	if text := strings.TrimSpace(el.VisibleText()); text != "" {
		return text
	}

	return strings.TrimSpace(el.TextContent())
}
