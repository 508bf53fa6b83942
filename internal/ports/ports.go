package ports

import (
	"context"

	"locator-inspector/internal/entity"
)

// Element is the read-only view of a markup node the locator engine works with.
// Implementations must be comparable: two values describing the same node are equal.
type Element interface {
	// Tag returns the lower-case tag name.
	Tag() string
	// Attr returns the attribute value and whether the attribute is present.
	Attr(name string) (string, bool)
	Classes() []string
	// DirectText concatenates the text nodes that are immediate children.
	DirectText() string
	// TextContent concatenates all descendant text.
	TextContent() string
	// VisibleText approximates rendered text: hidden subtrees are skipped.
	VisibleText() string
	// Parent returns nil at the root of the element's scope.
	Parent() Element
	Children() []Element
}

// Scope answers match-count queries against one document or sub-document.
// A malformed expression or a torn-down scope yields 0, never a panic.
type Scope interface {
	Count(selector string) int
	CountPath(expr string) int
}

// LocatorEngine produces scope-local locators and composes them with their context chain.
type LocatorEngine interface {
	Generate(ctx context.Context, el Element, scope Scope) entity.LocatorResult
	Compose(base entity.LocatorResult, chain entity.ContextChain) entity.CompositeLocator
}

type BrowserManager interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	Snapshot(ctx context.Context) (*PageSnapshot, error)
	IsReady() bool
}

// PageSnapshot is the serialized content of a live page and its frames.
type PageSnapshot struct {
	URL    string
	Title  string
	HTML   string
	Scope  Scope
	Frames []FrameSnapshot
}

// FrameSnapshot is a child frame of a live page; Chain leads from the page to the frame.
type FrameSnapshot struct {
	Chain entity.ContextChain
	HTML  string
	Scope Scope
}
