package locator

import (
	"strconv"
	"strings"

	"locator-inspector/internal/ports"
)

var semanticKeywords = []string{
	"nav", "navigation", "navbar", "menu", "sidebar", "header", "footer",
	"form", "modal", "dialog", "popup", "dropdown", "toolbar", "panel",
	"section", "container", "wrapper", "content", "main", "aside",
	"card", "item", "list", "table", "row", "column", "grid",
}

// testIDAttributes are checked in order; the first present one identifies the element.
var testIDAttributes = []string{"data-testid", "data-test-id", "data-test", "data-qa", "data-cy"}

func semanticClasses(el ports.Element) []string {
	var out []string
	for _, class := range el.Classes() {
		lower := strings.ToLower(class)
		for _, keyword := range semanticKeywords {
			if strings.Contains(lower, keyword) {
				out = append(out, class)
				break
			}
		}
	}

	return out
}

func testID(el ports.Element) (name, value string, ok bool) {
	for _, attr := range testIDAttributes {
		if v, present := el.Attr(attr); present && v != "" {
			return attr, v, true
		}
	}

	return "", "", false
}

func testIDSelector(el ports.Element) string {
	name, value, ok := testID(el)
	if !ok {
		return ""
	}

	return attrSelector(name, value)
}

func nonEmptyAttr(el ports.Element, name string) string {
	v, _ := el.Attr(name)

	return v
}

// parentFragment describes an ancestor by its most meaningful trait, or "" when it has none.
func parentFragment(el ports.Element) string {
	if id := nonEmptyAttr(el, "id"); id != "" {
		return "#" + cssIdent(id)
	}

	if classes := semanticClasses(el); len(classes) > 0 {
		return "." + cssIdent(classes[0])
	}

	if role := nonEmptyAttr(el, "role"); role != "" {
		return attrSelector("role", role)
	}

	return testIDSelector(el)
}

// sameTagPosition returns the 1-based index of el among its same-tag siblings
// and the number of such siblings.
func sameTagPosition(el ports.Element) (index, total int) {
	parent := el.Parent()
	if parent == nil {
		return 1, 1
	}

	tag := el.Tag()
	for _, sibling := range parent.Children() {
		if sibling.Tag() != tag {
			continue
		}
		total++
		if sibling == el {
			index = total
		}
	}

	if index == 0 {
		return 1, total
	}

	return index, total
}

// positionalFragment is the tag alone, or tag:nth-child(k) when same-tag siblings exist.
func positionalFragment(el ports.Element) string {
	index, total := sameTagPosition(el)
	if total <= 1 {
		return el.Tag()
	}

	return el.Tag() + ":nth-child(" + strconv.Itoa(index) + ")"
}

func atScopeTop(el ports.Element) bool {
	return el == nil || el.Tag() == "body" || el.Tag() == "html"
}

// escalate prefixes base with ancestor context until the oracle reports a unique match.
// Semantic ancestors are tried first; positional ancestors are the last resort.
// When neither strategy resolves the ambiguity, the semantic chain is returned as is.
func (s *synthesis) escalate(el ports.Element, base string) string {
	chain := base
	adjacent := true

	cur := el.Parent()
	for depth := 0; depth < s.t.SemanticDepth && !atScopeTop(cur); depth++ {
		if fragment := parentFragment(cur); fragment != "" {
			if adjacent {
				chain = fragment + " > " + chain
			} else {
				chain = fragment + " " + chain
			}
			adjacent = true

			if s.o.unique(chain) {
				return chain
			}
		} else {
			adjacent = false
		}

		cur = cur.Parent()
	}

	if s.o.unique(chain) {
		return chain
	}

	if positional, ok := s.escalatePositional(el, base); ok {
		return positional
	}

	return chain
}

func (s *synthesis) escalatePositional(el ports.Element, base string) (string, bool) {
	chain := base

	cur := el.Parent()
	for depth := 0; depth < s.t.PositionalDepth && !atScopeTop(cur); depth++ {
		chain = positionalFragment(cur) + " > " + chain
		if s.o.unique(chain) {
			return chain, true
		}

		cur = cur.Parent()
	}

	return "", false
}
