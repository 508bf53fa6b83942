package locator

import "locator-inspector/internal/ports"

// oracle memoizes match counts for the duration of one invocation.
type oracle struct {
	scope   ports.Scope
	css     map[string]int
	paths   map[string]int
	queries int
}

func newOracle(scope ports.Scope) *oracle {
	return &oracle{
		scope: scope,
		css:   make(map[string]int),
		paths: make(map[string]int),
	}
}

func (o *oracle) count(selector string) int {
	if selector == "" || o.scope == nil {
		return 0
	}

	if n, ok := o.css[selector]; ok {
		return n
	}

	o.queries++
	n := o.scope.Count(selector)
	o.css[selector] = n

	return n
}

func (o *oracle) unique(selector string) bool {
	return o.count(selector) == 1
}

func (o *oracle) countPath(expr string) int {
	if expr == "" || o.scope == nil {
		return 0
	}

	if n, ok := o.paths[expr]; ok {
		return n
	}

	o.queries++
	n := o.scope.CountPath(expr)
	o.paths[expr] = n

	return n
}
