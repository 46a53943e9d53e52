package matcher

import (
	"fmt"
	"sync"
)

// Registry holds path matchers in evaluation order. The first matcher that
// recognizes a path wins. Thread-safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	matchers []PathMatcher
}

// NewRegistry creates an empty matcher registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry returns a registry holding the module matchers in their
// fixed order: article, author, category, archive.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, m := range []PathMatcher{
		NewArticleMatcher(),
		NewAuthorMatcher(),
		NewCategoryMatcher(),
		NewArchiveMatcher(),
	} {
		// Names are distinct, registration cannot fail.
		_ = registry.Register(m)
	}
	return registry
}

// Register appends a matcher to the evaluation order.
// Returns an error if the matcher is nil, has an empty name, or a matcher
// with the same name is already registered.
func (r *Registry) Register(m PathMatcher) error {
	if m == nil {
		return fmt.Errorf("path matcher cannot be nil")
	}
	name := m.Name()
	if name == "" {
		return fmt.Errorf("path matcher name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.matchers {
		if existing.Name() == name {
			return fmt.Errorf("path matcher %q already registered", name)
		}
	}
	r.matchers = append(r.matchers, m)
	return nil
}

// List returns the matcher names in evaluation order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.matchers))
	for i, m := range r.matchers {
		names[i] = m.Name()
	}
	return names
}

// Matchers returns a copy of the matchers in evaluation order.
func (r *Registry) Matchers() []PathMatcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]PathMatcher, len(r.matchers))
	copy(result, r.matchers)
	return result
}

// First returns the first match in evaluation order that accept takes.
// A declined match moves evaluation on to the next matcher. A nil accept
// takes every match.
func (r *Registry) First(path string, accept func(PathMatcher, Match) bool) (Match, PathMatcher, bool) {
	for _, m := range r.Matchers() {
		match, ok := m.Match(path)
		if !ok {
			continue
		}
		if accept == nil || accept(m, match) {
			return match, m, true
		}
	}
	return Match{}, nil, false
}
