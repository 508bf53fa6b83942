package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"locator-inspector/internal/entity"
)

// Boundary is an embedding element (iframe or shadow host) seen from its parent scope.
type Boundary struct {
	Kind   entity.FrameKind
	Name   string
	Host   Element
	Parent *Document
}

// Subscope is a document reachable through one or more boundaries.
// Chain is root-first: Chain[0] lives in the top-level document.
type Subscope struct {
	Chain []Boundary
	Doc   *Document
}

// Hierarchy names the subscope by its boundary names, outermost first.
func (s Subscope) Hierarchy() string {
	names := make([]string, 0, len(s.Chain))
	for _, b := range s.Chain {
		names = append(names, b.Name)
	}

	return strings.Join(names, " > ")
}

// Subscopes discovers the iframe srcdoc documents and declarative shadow roots
// reachable from d, nested ones included, in document order.
func (d *Document) Subscopes() ([]Subscope, error) {
	var out []Subscope

	type pending struct {
		doc   *Document
		chain []Boundary
	}

	queue := []pending{{doc: d}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		frames, shadows := 0, 0
		for _, n := range cur.doc.boundaryNodes() {
			var (
				b   Boundary
				sub *Document
			)

			if n.DataAtom == atom.Iframe {
				frames++
				srcdoc, _ := cur.doc.Wrap(n).Attr("srcdoc")

				parsed, err := ParseString(srcdoc)
				if err != nil {
					return nil, fmt.Errorf("parse srcdoc of frame %d: %w", frames, err)
				}

				b = Boundary{Kind: entity.FrameKindFrame, Name: boundaryName(cur.doc.Wrap(n), "frame", frames), Host: cur.doc.Wrap(n), Parent: cur.doc}
				sub = parsed
			} else {
				shadows++
				b = Boundary{Kind: entity.FrameKindShadow, Name: boundaryName(cur.doc.Wrap(n), "shadow", shadows), Host: cur.doc.Wrap(n), Parent: cur.doc}
				sub = &Document{root: shadowRootOf(n)}
			}

			chain := make([]Boundary, len(cur.chain), len(cur.chain)+1)
			copy(chain, cur.chain)
			chain = append(chain, b)

			out = append(out, Subscope{Chain: chain, Doc: sub})
			queue = append(queue, pending{doc: sub, chain: chain})
		}
	}

	return out, nil
}

// boundaryNodes lists in-scope iframes with srcdoc and shadow hosts.
func (d *Document) boundaryNodes() []*html.Node {
	var nodes []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || c.DataAtom == atom.Template {
				continue
			}
			if c.DataAtom == atom.Iframe {
				if _, ok := d.Wrap(c).Attr("srcdoc"); ok {
					nodes = append(nodes, c)
				}
			} else if shadowRootOf(c) != nil {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	walk(d.root)

	return nodes
}

func shadowRootOf(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isShadowRoot(c) {
			return c
		}
	}

	return nil
}

func boundaryName(host Element, kind string, ordinal int) string {
	if name, ok := host.Attr("name"); ok && name != "" {
		return name
	}
	if id, ok := host.Attr("id"); ok && id != "" {
		return id
	}

	return fmt.Sprintf("%s-%s-%d", host.Tag(), kind, ordinal)
}
