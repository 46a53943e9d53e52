// Package types provides the core domain types shared by the URL rewriting packages.
package types

import "strconv"

// PageID identifies a host page (a "tab" in host terminology).
type PageID int

// NoPagePath is the page id the host reports when the request carried no
// page path segment, so the page could not be identified from the URL.
const NoPagePath PageID = -1

// IsNoPagePath returns true if the id is the no-page-path sentinel.
func (p PageID) IsNoPagePath() bool {
	return p == NoPagePath
}

// Valid returns true for ids that name a real page.
func (p PageID) Valid() bool {
	return p > 0
}

// String returns the decimal form of the id.
func (p PageID) String() string {
	return strconv.Itoa(int(p))
}

// PortalID identifies a host portal (site).
type PortalID int

// ScopeID names a configuration scope: either a concrete page or the default
// scope. The host encodes the default scope as page -1, which collides with
// NoPagePath; ScopeID keeps the two meanings apart.
type ScopeID struct {
	Page    PageID
	Default bool
}

// DefaultScope is the mandatory fallback scope.
var DefaultScope = ScopeID{Page: -1, Default: true}

// PageScope returns the scope for a specific page.
// Non-positive ids map to the default scope.
func PageScope(page PageID) ScopeID {
	if !page.Valid() {
		return DefaultScope
	}
	return ScopeID{Page: page}
}

// String returns "default" or the page id.
func (s ScopeID) String() string {
	if s.Default {
		return "default"
	}
	return s.Page.String()
}
