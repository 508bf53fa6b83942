package locator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"locator-inspector/internal/config"
	"locator-inspector/internal/entity"
)

func TestEngine_Generate(t *testing.T) {
	doc := parse(t, `<form id="login"><input placeholder="Email"><button type="submit">Sign in</button></form>`+
		`<form id="signup"><input placeholder="Email"></form>`)
	engine := New(DefaultThresholds(), zap.NewNop())

	got := engine.Generate(context.Background(), find(t, doc, "#login input"), doc)

	assert.Equal(t, entity.CategoryInput, got.Category)
	assert.Equal(t, `#login > input[placeholder="Email"]`, got.Selector)
	assert.Equal(t, `//input[@placeholder="Email"]`, got.Path)
	assert.True(t, got.Unique)
	assert.Equal(t, 1, got.SelectorMatches)
	assert.Equal(t, entity.RatingExcellent, got.SelectorQuality.Rating)
	assert.Equal(t, entity.RatingExcellent, got.PathQuality.Rating)

	button := engine.Generate(context.Background(), find(t, doc, "button"), doc)

	assert.Equal(t, entity.CategoryButton, button.Category)
	assert.Equal(t, `button[type="submit"]`, button.Selector)
	assert.Equal(t, `//button[text()="Sign in"]`, button.Path)
}

func TestEngine_GenerateIsDeterministic(t *testing.T) {
	doc := parse(t, `<div class="card"><p>Hello there</p></div><div class="card"><p>Hello there</p></div>`)
	engine := New(DefaultThresholds(), nil)
	el := nth(t, doc, "p", 1)

	first := engine.Generate(context.Background(), el, doc)
	second := engine.Generate(context.Background(), el, doc)

	assert.Equal(t, first, second)
}

func TestEngine_SoftFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	engine := New(DefaultThresholds(), zap.New(core))
	doc := parse(t, `<ul><li><span class="tag">x</span></li><li><span class="tag">y</span></li></ul>`)

	got := engine.Generate(context.Background(), nth(t, doc, "span", 1), doc)

	assert.False(t, got.Unique)
	assert.Equal(t, 2, got.SelectorMatches)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "No unique selector found", entry.Message)
	assert.Equal(t, "span", entry.ContextMap()["selector"])
}

func TestEngine_SelectorAndPath(t *testing.T) {
	doc := parse(t, `<a href="/about">About us</a>`)
	engine := New(DefaultThresholds(), nil)
	el := find(t, doc, "a")

	assert.Equal(t, `[href="/about"]`, engine.Selector(context.Background(), el, doc).Selector)
	assert.Equal(t, `//a[contains(text(),"About us")]`, engine.Path(context.Background(), el, doc))
}

func TestNewEngine_UsesConfiguredThresholds(t *testing.T) {
	conf := &config.Config{EngineConfig: &config.EngineConfig{
		TextMinLength:       10,
		TextMaxInteractive:  0,
		ExactTextMaxLength:  50,
		LongTextPrefix:      30,
		LinkTextMaxLength:   50,
		NestedTextMaxLength: 30,
		NestedTextPrefix:    20,
		SemanticDepth:       1,
		PositionalDepth:     1,
	}}
	engine := NewEngine(Params{Config: conf, Logger: zap.NewNop()})
	doc := parse(t, `<p>Short</p>`)

	assert.Equal(t, 10, engine.Thresholds().TextMinLength)
	assert.Equal(t, entity.CategoryGeneric, engine.Classify(find(t, doc, "p")))
}

func TestEngine_ReturnedSelectorsAreValidated(t *testing.T) {
	doc := parse(t, `
<header class="site-header"><nav><a href="/">Home</a><a href="/shop">Shop</a><a href="/shop">Shop</a></nav></header>
<main>
	<section class="card"><h2>Plans</h2><p>Choose the plan that fits you best</p><button>Buy</button></section>
	<section class="card"><h2>Plans</h2><p>Choose the plan that fits you best</p><button>Buy</button></section>
	<form><input type="text" required><input type="text"><select multiple></select><textarea></textarea></form>
	<ul><li><span>a</span></li><li><span>a</span></li></ul>
</main>`)
	engine := New(DefaultThresholds(), nil)

	all, err := doc.Query("body *")
	require.NoError(t, err)

	for _, el := range all {
		got := engine.Generate(context.Background(), el, doc)
		count := doc.Count(got.Selector)

		assert.Equal(t, got.SelectorMatches, count, got.Selector)
		if got.Unique {
			assert.Equal(t, 1, count, got.Selector)
		} else {
			assert.NotEqual(t, 1, count, got.Selector)
		}
		assert.NotEmpty(t, got.Path)
	}
}
