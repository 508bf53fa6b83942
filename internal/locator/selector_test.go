package locator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locator-inspector/internal/dom"
	"locator-inspector/internal/entity"
)

func selectorFor(t *testing.T, doc *dom.Document, el dom.Element) entity.Selection {
	t.Helper()

	s := newSynthesis(DefaultThresholds(), doc)

	return s.selector(el, Classify(el))
}

func TestSelector_UniqueID(t *testing.T) {
	doc := parse(t, `<div><input id="email" class="x"></div><input class="x">`)

	got := selectorFor(t, doc, find(t, doc, "#email"))

	assert.Equal(t, "#email", got.Selector)
	assert.True(t, got.Unique)
	assert.Equal(t, 1, doc.Count(got.Selector))
}

func TestSelector_IgnoresTemplateContent(t *testing.T) {
	doc := parse(t, `<template><button id="save">Draft</button></template><button id="save">Save</button>`)

	got := selectorFor(t, doc, find(t, doc, "#save"))

	assert.Equal(t, "#save", got.Selector)
	assert.True(t, got.Unique)
	assert.Equal(t, 1, got.Matches)
}

func TestSelector_Cases(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		target func(t *testing.T, doc *dom.Document) dom.Element
		want   string
	}{
		{
			name: "input placeholder",
			body: `<input placeholder="Email address" name="email">`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return find(t, doc, "input")
			},
			want: `[placeholder="Email address"]`,
		},
		{
			name: "ambiguous placeholder escalates to ancestor id",
			body: `<form id="login"><input placeholder="Email"></form><form id="signup"><input placeholder="Email"></form>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return find(t, doc, "#login input")
			},
			want: `#login > input[placeholder="Email"]`,
		},
		{
			name: "duplicate id escalates",
			body: `<section id="a"><input id="dup"></section><section id="b"><input id="dup"></section>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return find(t, doc, "#b input")
			},
			want: `#b > #dup`,
		},
		{
			name: "button type",
			body: `<button type="submit">Go</button><button type="button">Cancel</button>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "button", 0)
			},
			want: `button[type="submit"]`,
		},
		{
			name: "button semantic class with escalation",
			body: `<div class="modal-footer"><button class="btn-item">OK</button></div>` +
				`<div class="sidebar"><button class="btn-item">OK</button></div>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "button", 0)
			},
			want: `.modal-footer > button.btn-item`,
		},
		{
			name: "link href",
			body: `<a href="/about">About</a><a href="/contact">Contact</a>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "a", 0)
			},
			want: `[href="/about"]`,
		},
		{
			name: "link title when href is a script",
			body: `<a href="javascript:void(0)" title="Open menu">=</a><a href="javascript:void(0)">x</a>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "a", 0)
			},
			want: `[title="Open menu"]`,
		},
		{
			name: "select name",
			body: `<select name="country"></select><select name="city" multiple></select>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "select", 0)
			},
			want: `[name="country"]`,
		},
		{
			name: "select multiple",
			body: `<select class="pick"></select><select class="pick" multiple></select>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "select", 1)
			},
			want: `select[multiple]`,
		},
		{
			name: "text unique class",
			body: `<p class="intro lead">Welcome to the site</p><p class="lead">Other text here</p>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "p", 0)
			},
			want: `.intro`,
		},
		{
			name: "text test id",
			body: `<div data-testid="total">Total: 42</div><div>Total: 43</div>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "div", 0)
			},
			want: `[data-testid="total"]`,
		},
		{
			name: "text full class list",
			body: `<p class="note small">First note here</p><p class="note">Second note</p><p class="small">Third</p>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "p", 0)
			},
			want: `p.note.small`,
		},
		{
			name: "generic combined attributes",
			body: `<div role="banner"></div><div role="region" aria-label="Stats"></div><div role="region"></div>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return nth(t, doc, "div", 1)
			},
			want: `div[role="region"][aria-label="Stats"]`,
		},
		{
			name: "escaped identifier",
			body: `<div id="1st item"></div>`,
			target: func(t *testing.T, doc *dom.Document) dom.Element {
				return find(t, doc, "div")
			},
			want: `#\31 st\ item`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.body)
			got := selectorFor(t, doc, tt.target(t, doc))

			assert.Equal(t, tt.want, got.Selector)
			assert.True(t, got.Unique)
			assert.Equal(t, 1, doc.Count(got.Selector))
		})
	}
}

func TestSelector_PositionalEscalation(t *testing.T) {
	doc := parse(t, `<div><p><input name="q"></p><p><input name="q"></p></div>`)

	got := selectorFor(t, doc, nth(t, doc, "input", 0))

	assert.Equal(t, `p:nth-child(1) > input[name="q"]`, got.Selector)
	assert.True(t, got.Unique)
}

func TestSelector_SoftFailure(t *testing.T) {
	doc := parse(t, `<ul><li><span class="tag">x</span></li><li><span class="tag">y</span></li></ul>`)

	got := selectorFor(t, doc, nth(t, doc, "span", 0))

	assert.False(t, got.Unique)
	assert.Equal(t, "span", got.Selector)
	assert.Equal(t, 2, got.Matches)
	assert.Equal(t, got.Matches, doc.Count(got.Selector))
}

func TestSelector_EscalationDepthBound(t *testing.T) {
	nested := `<div class="list"><div class="list"><div class="list"><div class="list"><span class="item">a</span></div></div></div></div>`
	doc := parse(t, nested+nested)

	got := selectorFor(t, doc, nth(t, doc, "span", 0))

	require.False(t, got.Unique)
	assert.Equal(t, `.list > .list > .list > span.item`, got.Selector)
	assert.LessOrEqual(t, strings.Count(got.Selector, " > "), DefaultThresholds().SemanticDepth)
}

func TestSelector_SkippedAncestorUsesDescendantCombinator(t *testing.T) {
	doc := parse(t, `<nav id="top"><div><input name="q"></div></nav><div><div><input name="q"></div></div>`)

	got := selectorFor(t, doc, nth(t, doc, "input", 0))

	assert.Equal(t, `#top input[name="q"]`, got.Selector)
	assert.True(t, got.Unique)
}

func TestSelector_InvalidScopeIsNotUnique(t *testing.T) {
	doc := parse(t, `<input id="email">`)
	el := find(t, doc, "#email")

	s := newSynthesis(DefaultThresholds(), brokenScope{})
	got := s.selector(el, Classify(el))

	assert.False(t, got.Unique)
	assert.Equal(t, "#email", got.Selector)
	assert.Zero(t, got.Matches)
}

// brokenScope stands in for a torn-down document: every query fails.
type brokenScope struct{}

func (brokenScope) Count(string) int     { return 0 }
func (brokenScope) CountPath(string) int { return 0 }
