// Package index builds and caches the two lookup tables behind friendly
// URLs: path to query string for incoming requests, and entity key to path
// for outgoing links and legacy redirects.
package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// Scope identifies the page a snapshot was built for. OptionsKey separates
// snapshots composed under different friendly URL options.
type Scope struct {
	Portal     types.PortalID
	Page       types.PageID
	OptionsKey string
}

// String returns "portal/page".
func (s Scope) String() string {
	return fmt.Sprintf("%d/%s", s.Portal, s.Page)
}

// Snapshot is an immutable pair of lookup tables for one scope. It is never
// modified after Build returns, so readers need no locking.
type Snapshot struct {
	Scope   Scope
	BuiltAt time.Time

	// paths maps lower-cased friendly paths to query fragments.
	paths map[string]string
	// entities maps entity keys to friendly paths.
	entities map[types.EntityKey]string
}

func newSnapshot(scope Scope) *Snapshot {
	return &Snapshot{
		Scope:    scope,
		paths:    make(map[string]string),
		entities: make(map[types.EntityKey]string),
	}
}

// Query returns the query fragment for an exact friendly path.
// Matching is case-insensitive.
func (s *Snapshot) Query(path string) (string, bool) {
	query, ok := s.paths[strings.ToLower(strings.Trim(path, "/"))]
	return query, ok
}

// FriendlyPath returns the friendly path recorded for key.
func (s *Snapshot) FriendlyPath(key types.EntityKey) (string, bool) {
	path, ok := s.entities[key]
	return path, ok
}

// LongestPrefix finds the longest leading run of segments that is a known
// friendly path. It returns the query fragment and the index of the last
// consumed segment; segments after it are left for the caller.
func (s *Snapshot) LongestPrefix(segments []string) (string, int, bool) {
	for n := len(segments); n > 0; n-- {
		key := strings.ToLower(strings.Join(segments[:n], "/"))
		if query, ok := s.paths[key]; ok {
			return query, n - 1, true
		}
	}
	return "", -1, false
}

// Len returns the number of friendly paths.
func (s *Snapshot) Len() int {
	return len(s.paths)
}

// Entries returns the friendly paths keyed by entity key, sorted by path.
func (s *Snapshot) Entries() []Entry {
	entries := make([]Entry, 0, len(s.entities))
	for key, path := range s.entities {
		query, _ := s.Query(path)
		entries = append(entries, Entry{Key: key, Path: path, Query: query})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// Entry is one row of a snapshot listing.
type Entry struct {
	Key   types.EntityKey
	Path  string
	Query string
}

// add records path for key. A path already taken by another entity gets the
// entity id appended, so path keys stay unique. It returns the path stored.
func (s *Snapshot) add(key types.EntityKey, path, query, separator string, id int) string {
	if s.taken(path) {
		base := fmt.Sprintf("%s%s%d", path, separator, id)
		path = base
		for n := 2; s.taken(path); n++ {
			path = fmt.Sprintf("%s%s%d", base, separator, n)
		}
	}
	s.paths[strings.ToLower(path)] = query
	s.entities[key] = path
	return path
}

func (s *Snapshot) taken(path string) bool {
	_, exists := s.paths[strings.ToLower(path)]
	return exists
}

// alias records an additional entity key for an existing path.
func (s *Snapshot) alias(key types.EntityKey, path string) {
	s.entities[key] = path
}
