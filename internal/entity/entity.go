package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is the semantic class of an element; it selects the locator heuristics.
type Category string

const (
	CategoryInput   Category = "input"
	CategoryButton  Category = "button"
	CategoryLink    Category = "link"
	CategorySelect  Category = "select"
	CategoryText    Category = "text"
	CategoryGeneric Category = "generic"
)

// Selection is a CSS selector together with its match count in the scope it was generated for.
type Selection struct {
	Selector string
	Matches  int
	Unique   bool
}

// LocatorResult holds the two independently computed identifiers of one node.
// It is only valid for the tree snapshot it was computed from.
type LocatorResult struct {
	Selector        string
	Path            string
	Category        Category
	SelectorMatches int
	Unique          bool
	SelectorQuality Quality
	PathQuality     Quality
}

type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)

// Quality is an advisory rating of a locator's robustness.
type Quality struct {
	Rating Rating
	Reason string
}

func (q Quality) String() string {
	if q.Rating == "" {
		return ""
	}

	return string(q.Rating) + " (" + q.Reason + ")"
}

type FrameKind string

const (
	FrameKindFrame  FrameKind = "frame"
	FrameKindShadow FrameKind = "shadow"
)

// ContextFrame is one embedding boundary: an iframe element or a shadow host.
// Selector locates the boundary element inside its own parent scope.
type ContextFrame struct {
	Kind     FrameKind `json:"kind"`
	Name     string    `json:"name"`
	Selector string    `json:"selector"`
}

// ContextChain lists embedding boundaries root-first: index 0 is the outermost.
type ContextChain []ContextFrame

// Snippets are ready-made expressions for common automation frameworks.
type Snippets struct {
	Selenium   string
	Playwright string
	Cypress    string
}

// CompositeLocator is a LocatorResult annotated with the way to reach its scope.
type CompositeLocator struct {
	LocatorResult
	Chain      ContextChain
	ScopePath  string
	Hierarchy  string
	FrameXPath string
	Snippets   Snippets
}

// InScope reports whether the locator lives in an embedded scope.
func (c CompositeLocator) InScope() bool {
	return len(c.Chain) > 0
}

type Trigger string

const (
	TriggerHover   Trigger = "hover"
	TriggerClick   Trigger = "click"
	TriggerContext Trigger = "context"
)

type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
}

func (m Modifiers) Any() bool {
	return m.Ctrl || m.Alt || m.Shift
}

// Activation is the caller-side toggle and input state for one inspection request.
type Activation struct {
	Active    bool
	Trigger   Trigger
	Modifiers Modifiers
}

type CopyAction string

const (
	CopyNone     CopyAction = "none"
	CopySelector CopyAction = "selector"
	CopyPath     CopyAction = "path"
	CopyBoth     CopyAction = "both"
)

// Snapshot describes a loaded document the inspector can query.
type Snapshot struct {
	ID       uuid.UUID
	Source   string
	Title    string
	Live     bool
	Scopes   []string
	LoadedAt time.Time
}

// InspectRequest identifies the element to inspect inside the current snapshot.
// Target is a CSS query; Scope optionally names a sub-scope by its hierarchy.
type InspectRequest struct {
	Target     string
	Scope      string
	Activation Activation
}

// Inspection is the outcome of one inspection request. A pass-through click
// carries no locator; the page handles the click itself.
type Inspection struct {
	SnapshotID  uuid.UUID
	Trigger     Trigger
	Copy        CopyAction
	PassThrough bool
	Locator     CompositeLocator
}
