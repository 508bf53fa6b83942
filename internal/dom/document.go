// Package dom adapts golang.org/x/net/html trees to the locator engine.
//
// A Document is one queryable scope: a parsed page, an iframe srcdoc or a
// declarative shadow root. Match counts never cross scope boundaries, the same
// way querySelectorAll does not reach into shadow trees or child frames.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the node the scope is anchored at.
func (d *Document) Root() *html.Node {
	return d.root
}

// Wrap returns the Element view of n within this scope.
func (d *Document) Wrap(n *html.Node) Element {
	return Element{node: n, scope: d.root}
}

// Count implements the CSS uniqueness oracle.
func (d *Document) Count(selector string) (count int) {
	defer func() {
		if recover() != nil {
			count = 0
		}
	}()

	sel, err := cascadia.Compile(selector)
	if err != nil {
		return 0
	}

	return len(d.filter(sel.MatchAll(d.root)))
}

// CountPath implements the XPath uniqueness oracle.
func (d *Document) CountPath(expr string) (count int) {
	defer func() {
		if recover() != nil {
			count = 0
		}
	}()

	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return 0
	}

	return len(d.filter(nodes))
}

// Query returns the in-scope elements matching a CSS selector, in document order.
func (d *Document) Query(selector string) ([]Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}

	return d.wrapAll(d.filter(sel.MatchAll(d.root))), nil
}

// QueryPath returns the in-scope elements matching an XPath expression.
func (d *Document) QueryPath(expr string) ([]Element, error) {
	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("compile path %q: %w", expr, err)
	}

	return d.wrapAll(d.filter(nodes)), nil
}

// First returns the first element matching selector.
func (d *Document) First(selector string) (Element, bool, error) {
	elements, err := d.Query(selector)
	if err != nil {
		return Element{}, false, err
	}

	if len(elements) == 0 {
		return Element{}, false, nil
	}

	return elements[0], true, nil
}

func (d *Document) Title() string {
	elements, err := d.Query("title")
	if err != nil || len(elements) == 0 {
		return ""
	}

	return strings.TrimSpace(elements[0].TextContent())
}

func (d *Document) wrapAll(nodes []*html.Node) []Element {
	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		elements = append(elements, d.Wrap(n))
	}

	return elements
}

func (d *Document) filter(nodes []*html.Node) []*html.Node {
	kept := nodes[:0:0]
	for _, n := range nodes {
		if d.contains(n) {
			kept = append(kept, n)
		}
	}

	return kept
}

// contains reports whether n belongs to this scope. Nested shadow roots and
// the inert content of any template are outside it.
func (d *Document) contains(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return p != n
		}
		if isShadowRoot(p) {
			return false
		}
		if p != n && p.Type == html.ElementNode && p.DataAtom == atom.Template {
			return false
		}
	}

	return false
}

func isShadowRoot(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Template {
		return false
	}

	for _, a := range n.Attr {
		if a.Key == "shadowrootmode" || a.Key == "shadowroot" {
			return true
		}
	}

	return false
}
