// Package matcher recognizes the module's raw item URLs inside host
// generated paths and the friendly archive dates inside incoming paths.
package matcher

import (
	"regexp"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// PathMatcher recognizes one kind of raw module path.
// Implementations must be safe for concurrent use.
type PathMatcher interface {
	// Name returns the matcher name (e.g., "article").
	Name() string

	// Kind returns the entity kind this matcher produces.
	Kind() types.EntityKind

	// Match finds the first occurrence of the pattern in path.
	// The bool is false when the path does not carry the pattern or the
	// captured values are out of range.
	Match(path string) (Match, bool)
}

// Match is a recognized span of a raw path.
type Match struct {
	Reference types.EntityReference

	// Start and End delimit the matched span in the path, including the
	// optional leading slash.
	Start int
	End   int

	// LeadingSlash reports whether the span began with '/'.
	LeadingSlash bool
}

// Replace returns path with the matched span replaced by fragment.
func (m Match) Replace(path, fragment string) string {
	return path[:m.Start] + fragment + path[m.End:]
}

var (
	editPathPattern    = regexp.MustCompile(`(?i)(^|/)(mid|moduleId)/\d+/?`)
	foreignPathPattern = regexp.MustCompile(`(?i)(articleType/[^/]+)|(ctl/[^/]+/(mid|moduleid)/\d)`)
)

// IsEditPath reports whether path addresses a module edit control.
// Such paths are permission based and are never rewritten.
func IsEditPath(path string) bool {
	return editPathPattern.MatchString(path)
}

// IsRawModulePath reports whether an incoming path still carries raw module
// parameters or a control path, in which case the host resolves it unaided.
func IsRawModulePath(path string) bool {
	return foreignPathPattern.MatchString(path)
}

// submatch returns the named group value of a FindStringSubmatchIndex
// result, or "" when the group did not participate.
func submatch(re *regexp.Regexp, path string, loc []int, name string) string {
	index := re.SubexpIndex(name)
	if index < 0 || loc[2*index] < 0 {
		return ""
	}
	return path[loc[2*index]:loc[2*index+1]]
}

func newMatch(path string, loc []int, ref types.EntityReference) Match {
	return Match{
		Reference:    ref,
		Start:        loc[0],
		End:          loc[1],
		LeadingSlash: loc[1] > loc[0] && path[loc[0]] == '/',
	}
}
