package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"locator-inspector/internal/entity"
)

func TestCompose_EmptyChain(t *testing.T) {
	base := entity.LocatorResult{Selector: "#email", Path: `//input[@id="email"]`, Unique: true}

	got := Compose(base, nil)

	assert.Equal(t, base, got.LocatorResult)
	assert.False(t, got.InScope())
	assert.Empty(t, got.ScopePath)
	assert.Empty(t, got.Hierarchy)
	assert.Empty(t, got.Snippets.Selenium)
}

func TestCompose_NestedFrames(t *testing.T) {
	base := entity.LocatorResult{Selector: "#pay", Path: `//button[text()="Pay"]`, Unique: true}
	chain := entity.ContextChain{
		{Kind: entity.FrameKindFrame, Name: "outer", Selector: "#outer"},
		{Kind: entity.FrameKindFrame, Name: "inner"},
	}

	got := Compose(base, chain)

	assert.Equal(t, base, got.LocatorResult)
	assert.True(t, got.InScope())
	assert.Equal(t, chain, got.Chain)
	assert.Equal(t, `#outer iframe[name="inner"]`, got.ScopePath)
	assert.Equal(t, "outer > inner", got.Hierarchy)
	assert.Equal(t, `//iframe[@name="outer"]//iframe[@name="inner"]`, got.FrameXPath)
	assert.Equal(t,
		`driver.switch_to.frame(driver.find_element(By.CSS_SELECTOR, '#outer')); `+
			`driver.switch_to.frame(driver.find_element(By.CSS_SELECTOR, 'iframe[name="inner"]')); `+
			`element = driver.find_element(By.CSS_SELECTOR, '#pay')`,
		got.Snippets.Selenium)
	assert.Equal(t,
		`page.frameLocator('#outer').frameLocator('iframe[name="inner"]').locator('#pay')`,
		got.Snippets.Playwright)
	assert.Equal(t,
		`cy.iframe('#outer').find('iframe[name="inner"]').its('0.contentDocument.body').then(cy.wrap).find('#pay')`,
		got.Snippets.Cypress)
}

func TestCompose_ShadowInsideFrame(t *testing.T) {
	base := entity.LocatorResult{Selector: `[name="card"]`}
	chain := entity.ContextChain{
		{Kind: entity.FrameKindFrame, Name: "checkout", Selector: `iframe[name="checkout"]`},
		{Kind: entity.FrameKindShadow, Name: "card-input", Selector: "#card-input"},
	}

	got := Compose(base, chain)

	assert.Equal(t, `iframe[name="checkout"] #card-input`, got.ScopePath)
	assert.Equal(t, "checkout > card-input", got.Hierarchy)
	assert.Equal(t, `//iframe[@name="checkout"]`, got.FrameXPath)
	assert.Equal(t,
		`driver.switch_to.frame(driver.find_element(By.CSS_SELECTOR, 'iframe[name="checkout"]')); `+
			`root1 = driver.find_element(By.CSS_SELECTOR, '#card-input').shadow_root; `+
			`element = root1.find_element(By.CSS_SELECTOR, '[name="card"]')`,
		got.Snippets.Selenium)
	assert.Equal(t,
		`page.frameLocator('iframe[name="checkout"]').locator('#card-input').locator('[name="card"]')`,
		got.Snippets.Playwright)
	assert.Equal(t,
		`cy.iframe('iframe[name="checkout"]').find('#card-input').shadow().find('[name="card"]')`,
		got.Snippets.Cypress)
}

func TestCompose_QuotesAreEscapedInSnippets(t *testing.T) {
	chain := entity.ContextChain{{Kind: entity.FrameKindShadow, Name: "host", Selector: "#host"}}

	got := Compose(entity.LocatorResult{Selector: `[title="it's"]`}, chain)

	assert.Equal(t, `page.locator('#host').locator('[title="it\'s"]')`, got.Snippets.Playwright)
	assert.Empty(t, got.FrameXPath)
}
