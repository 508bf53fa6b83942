package locator

import (
	"strings"

	"locator-inspector/internal/entity"
	"locator-inspector/internal/ports"
)

// synthesis carries the per-invocation state: thresholds and the memoizing oracle.
type synthesis struct {
	t Thresholds
	o *oracle
}

func newSynthesis(t Thresholds, scope ports.Scope) *synthesis {
	return &synthesis{t: t, o: newOracle(scope)}
}

// candidates is an ordered, lazily evaluated list of selector attempts.
type candidates struct {
	s    *synthesis
	el   ports.Element
	gens []func() string
}

// probe adds short as a candidate; when short is not unique the candidate
// becomes the escalation of qualified.
func (c *candidates) probe(short, qualified string) {
	if short == "" {
		return
	}

	c.gens = append(c.gens, func() string {
		if c.s.o.unique(short) {
			return short
		}

		return c.s.escalate(c.el, qualified)
	})
}

func (c *candidates) exact(sel string) {
	if sel == "" {
		return
	}

	c.gens = append(c.gens, func() string { return sel })
}

// classOrSemantic adds the element's first unique class or, lacking one,
// its first semantic class qualified by tag and escalated.
func (c *candidates) classOrSemantic(withSemantic bool) {
	c.gens = append(c.gens, func() string {
		if class := c.s.uniqueClass(c.el); class != "" {
			return "." + cssIdent(class)
		}

		if !withSemantic {
			return ""
		}

		semantic := semanticClasses(c.el)
		if len(semantic) == 0 {
			return ""
		}

		base := c.el.Tag() + "." + cssIdent(semantic[0])
		if c.s.o.unique(base) {
			return base
		}

		return c.s.escalate(c.el, base)
	})
}

func (c *candidates) testID() {
	if sel := testIDSelector(c.el); sel != "" {
		c.probe(sel, sel)
	}
}

func (c *candidates) attr(name string) {
	if v := nonEmptyAttr(c.el, name); v != "" {
		sel := attrSelector(name, v)
		c.probe(sel, sel)
	}
}

func (c *candidates) id() {
	if id := nonEmptyAttr(c.el, "id"); id != "" {
		sel := "#" + cssIdent(id)
		c.probe(sel, sel)
	}
}

func (c *candidates) name() {
	if name := nonEmptyAttr(c.el, "name"); name != "" {
		sel := attrSelector("name", name)
		c.probe(sel, c.el.Tag()+sel)
	}
}

// pick evaluates the candidates in order and returns the first unique one.
// Without a unique hit the first candidate (or a positional fragment) is
// returned as a soft failure, with its real match count.
func (c *candidates) pick() entity.Selection {
	var first string
	seen := make(map[string]bool, len(c.gens))

	for _, gen := range c.gens {
		sel := gen()
		if sel == "" || seen[sel] {
			continue
		}
		seen[sel] = true

		if first == "" {
			first = sel
		}

		if n := c.s.o.count(sel); n == 1 {
			return entity.Selection{Selector: sel, Matches: n, Unique: true}
		}
	}

	if first == "" {
		first = positionalFragment(c.el)
	}

	n := c.s.o.count(first)

	return entity.Selection{Selector: first, Matches: n, Unique: n == 1}
}

func (s *synthesis) uniqueClass(el ports.Element) string {
	for _, class := range el.Classes() {
		if s.o.unique("." + cssIdent(class)) {
			return class
		}
	}

	return ""
}

// selector synthesizes the CSS selector for el according to its category.
func (s *synthesis) selector(el ports.Element, category entity.Category) entity.Selection {
	c := &candidates{s: s, el: el}
	tag := el.Tag()

	switch category {
	case entity.CategoryInput:
		if placeholder := nonEmptyAttr(el, "placeholder"); strings.TrimSpace(placeholder) != "" {
			sel := attrSelector("placeholder", placeholder)
			c.probe(sel, tag+sel)
		}
		c.id()
		c.name()
		c.classOrSemantic(false)
		if typ := nonEmptyAttr(el, "type"); typ != "" {
			typed := tag + attrSelector("type", typ)
			c.probe(typed, typed)
			if _, required := el.Attr("required"); required {
				c.probe(typed+"[required]", typed+"[required]")
			}
			if maxLength := nonEmptyAttr(el, "maxlength"); isPositive(maxLength) {
				sel := typed + attrSelector("maxlength", maxLength)
				c.probe(sel, sel)
			}
		}
		c.testID()
		c.attr("aria-label")

	case entity.CategoryButton:
		c.id()
		c.name()
		if typ := nonEmptyAttr(el, "type"); typ != "" {
			typed := tag + attrSelector("type", typ)
			c.probe(typed, typed)
		}
		c.classOrSemantic(true)
		if value := nonEmptyAttr(el, "value"); value != "" && tag == "input" {
			sel := tag + attrSelector("value", value)
			c.probe(sel, sel)
		}
		c.testID()
		c.attr("aria-label")

	case entity.CategoryLink:
		c.id()
		if href, ok := el.Attr("href"); ok && href != "" && !isScriptURL(href) {
			sel := attrSelector("href", href)
			c.probe(sel, tag+sel)
		}
		c.classOrSemantic(true)
		c.testID()
		c.attr("aria-label")
		c.attr("title")

	case entity.CategorySelect:
		c.id()
		c.name()
		c.classOrSemantic(false)
		if _, multiple := el.Attr("multiple"); multiple {
			c.probe(tag+"[multiple]", tag+"[multiple]")
		}
		c.testID()

	case entity.CategoryText:
		if strings.TrimSpace(el.TextContent()) != "" {
			c.id()
			c.testID()
			c.classOrSemantic(false)
			if combined := combinedAttrSelector(el); combined != "" {
				c.probe(combined, combined)
			}
			if classes := el.Classes(); len(classes) > 0 {
				sel := tag + classList(classes)
				c.probe(sel, sel)
			}
		}
		if len(c.gens) == 0 {
			c.exact(positionalFragment(el))
		}

	default:
		c.id()
		c.classOrSemantic(true)
		if combined := combinedAttrSelector(el); combined != "" {
			c.probe(combined, combined)
		}
		c.exact(positionalFragment(el))
	}

	return c.pick()
}

// combinedAttrSelector joins the element's descriptive attributes onto its tag,
// or returns "" when it has none.
func combinedAttrSelector(el ports.Element) string {
	names := append([]string{"type", "role"}, testIDAttributes...)
	names = append(names, "aria-label", "title")

	var b strings.Builder
	for _, name := range names {
		if v, ok := el.Attr(name); ok {
			b.WriteString(attrSelector(name, v))
		}
	}

	if b.Len() == 0 {
		return ""
	}

	return el.Tag() + b.String()
}

func classList(classes []string) string {
	var b strings.Builder
	for _, class := range classes {
		b.WriteByte('.')
		b.WriteString(cssIdent(class))
	}

	return b.String()
}

func isPositive(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return strings.TrimLeft(s, "0") != ""
}
