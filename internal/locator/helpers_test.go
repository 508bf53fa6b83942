package locator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"locator-inspector/internal/dom"
)

func parse(t *testing.T, body string) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString("<!DOCTYPE html><html><head></head><body>" + body + "</body></html>")
	require.NoError(t, err)

	return doc
}

// find returns the element selected by sel, which must match exactly once.
func find(t *testing.T, doc *dom.Document, sel string) dom.Element {
	t.Helper()

	elements, err := doc.Query(sel)
	require.NoError(t, err)
	require.Len(t, elements, 1, "fixture selector %q must be unique", sel)

	return elements[0]
}

// nth returns the i-th (0-based) element matched by sel.
func nth(t *testing.T, doc *dom.Document, sel string, i int) dom.Element {
	t.Helper()

	elements, err := doc.Query(sel)
	require.NoError(t, err)
	require.Greater(t, len(elements), i)

	return elements[i]
}
