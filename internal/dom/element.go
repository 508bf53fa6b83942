package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"locator-inspector/internal/ports"
)

// Element is a read-only handle on an element node within one scope.
// Two Elements are equal when they refer to the same node in the same scope.
type Element struct {
	node  *html.Node
	scope *html.Node
}

var _ ports.Element = Element{}

func (e Element) Node() *html.Node {
	return e.node
}

func (e Element) Tag() string {
	return strings.ToLower(e.node.Data)
}

func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}

	return "", false
}

func (e Element) Classes() []string {
	class, _ := e.Attr("class")

	return strings.Fields(class)
}

func (e Element) DirectText() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}

	return b.String()
}

func (e Element) TextContent() string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				b.WriteString(c.Data)
			case c.Type == html.ElementNode && c.DataAtom != atom.Template:
				walk(c)
			}
		}
	}
	walk(e.node)

	return b.String()
}

func (e Element) VisibleText() string {
	if hidden(e.node) {
		return ""
	}

	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if hidden(c) {
					continue
				}
				if c.DataAtom == atom.Br {
					b.WriteByte('\n')
					continue
				}
				block := isBlock(c)
				if block {
					b.WriteByte('\n')
				}
				walk(c)
				if block {
					b.WriteByte('\n')
				}
			}
		}
	}
	walk(e.node)

	return b.String()
}

func (e Element) Parent() ports.Element {
	p := e.node.Parent
	if p == nil || p == e.scope || p.Type != html.ElementNode {
		return nil
	}

	return Element{node: p, scope: e.scope}
}

// Children skips template elements; their content is not part of the tree.
func (e Element) Children() []ports.Element {
	var children []ports.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom == atom.Template {
			continue
		}
		children = append(children, Element{node: c, scope: e.scope})
	}

	return children
}

func hidden(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Head, atom.Title:
		return true
	}

	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}

	return false
}

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Nav: true,
	atom.Aside: true, atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Table: true, atom.Tr: true, atom.Form: true, atom.Fieldset: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

func isBlock(n *html.Node) bool {
	return blockAtoms[n.DataAtom]
}
