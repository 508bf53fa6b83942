package locator

import (
	"strconv"
	"strings"

	"locator-inspector/internal/entity"
	"locator-inspector/internal/ports"
)

func exactText(tag, text string) string {
	return "//" + tag + `[text()="` + text + `"]`
}

func containsText(tag, text string) string {
	return "//" + tag + `[contains(text(),"` + text + `")]`
}

func attrPath(tag, name, value string) string {
	return "//" + tag + "[@" + name + "=" + xpathLiteral(value) + "]"
}

// path builds the path expression for el. It never fails: when no text or
// attribute rule applies, the positional path from the scope root is returned.
func (s *synthesis) path(el ports.Element, category entity.Category) string {
	tag := el.Tag()

	switch category {
	case entity.CategoryText, entity.CategoryButton, entity.CategoryLink:
		if expr := s.textPath(el, category); expr != "" {
			return expr
		}
	}

	if category == entity.CategoryInput {
		if placeholder := strings.TrimSpace(nonEmptyAttr(el, "placeholder")); placeholder != "" {
			return attrPath(tag, "placeholder", nonEmptyAttr(el, "placeholder"))
		}
		if name := nonEmptyAttr(el, "name"); name != "" {
			return attrPath(tag, "name", name)
		}
		if id := nonEmptyAttr(el, "id"); id != "" {
			return attrPath(tag, "id", id)
		}
	} else {
		if id := nonEmptyAttr(el, "id"); id != "" {
			return attrPath(tag, "id", id)
		}
		if name := nonEmptyAttr(el, "name"); name != "" {
			return attrPath(tag, "name", name)
		}
	}

	if name, value, ok := testID(el); ok {
		return attrPath(tag, name, value)
	}

	if class := nonEmptyAttr(el, "class"); strings.TrimSpace(class) != "" {
		return attrPath(tag, "class", class)
	}

	if typ := nonEmptyAttr(el, "type"); typ != "" {
		return attrPath(tag, "type", typ)
	}

	if category == entity.CategoryLink {
		if href := nonEmptyAttr(el, "href"); href != "" && !isScriptURL(href) {
			return attrPath(tag, "href", href)
		}
	}

	return positionalPath(el)
}

// textPath applies the text rules; "" means they did not resolve a locator.
func (s *synthesis) textPath(el ports.Element, category entity.Category) string {
	text := effectiveText(el)
	if text == "" {
		return ""
	}

	tag := el.Tag()
	length := runeLen(collapseSpace(text))

	if category == entity.CategoryText {
		switch {
		case length <= s.t.ExactTextMaxLength && s.o.countPath(exactText(tag, normalizeText(text))) == 1:
			return exactText(tag, normalizeText(text))
		case length > s.t.ExactTextMaxLength:
			return containsText(tag, textEscaper.Replace(prefix(collapseSpace(text), s.t.LongTextPrefix)))
		default:
			return containsText(tag, normalizeText(text))
		}
	}

	if direct := directText(el); direct != "" {
		switch {
		case category == entity.CategoryButton:
			return exactText(tag, normalizeText(direct))
		case runeLen(collapseSpace(direct)) < s.t.LinkTextMaxLength:
			return containsText(tag, normalizeText(direct))
		}

		return ""
	}

	if length <= s.t.NestedTextMaxLength {
		return containsText(tag, normalizeText(text))
	}

	return containsText(tag, textEscaper.Replace(prefix(collapseSpace(text), s.t.NestedTextPrefix)))
}

// positionalPath is the absolute tag path from the scope root to el,
// with a 1-based index on steps that have same-tag siblings.
func positionalPath(el ports.Element) string {
	var steps []string
	for cur := el; cur != nil; cur = cur.Parent() {
		step := cur.Tag()
		if index, total := sameTagPosition(cur); total > 1 {
			step += "[" + strconv.Itoa(index) + "]"
		}
		steps = append(steps, step)
	}

	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	return "/" + strings.Join(steps, "/")
}

func isScriptURL(href string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "javascript:")
}
