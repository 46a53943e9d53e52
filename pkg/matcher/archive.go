package matcher

import (
	"strings"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// ParseArchiveSegments recognizes a friendly archive date at the start of an
// incoming segment sequence: a four digit year segment optionally followed
// by a one or two digit month segment, e.g. ["2023", "07", ...].
//
// It returns the date and the number of segments it consumed (1 or 2).
// A month segment that is out of range is left unconsumed and the date
// covers the whole year. Years must be later than types.MinArchiveYear.
func ParseArchiveSegments(segments []string) (types.ArchiveDate, int, bool) {
	if len(segments) == 0 || !isDigits(segments[0], 4, 4) {
		return types.ArchiveDate{}, 0, false
	}
	date, ok := types.ParseArchiveDate(segments[0], "")
	if !ok {
		return types.ArchiveDate{}, 0, false
	}
	if len(segments) > 1 && isDigits(segments[1], 1, 2) {
		if withMonth, ok := types.ParseArchiveDate(segments[0], segments[1]); ok {
			return withMonth, 2, true
		}
	}
	return date, 1, true
}

// SplitPath splits a slash separated path into non-empty segments.
func SplitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}

func isDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
