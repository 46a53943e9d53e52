// Package slug turns titles and names into single path segments.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
)

// stripMarks removes combining marks so "Café" becomes "Cafe".
func stripMarks(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if result, _, err := transform.String(t, s); err == nil {
		return result
	}
	return s
}

// CleanNameForURL converts name into a path segment using the host's
// friendly URL options:
//  1. Combining marks are stripped.
//  2. Illegal characters, '/' and whitespace runs become one word separator.
//  3. Leading and trailing separators are trimmed.
//  4. The result is lower-cased when ForceLowerCase is set.
//  5. The result is cut to MaxLength runes, never ending on a separator.
//
// An empty result means the name had no usable characters.
func CleanNameForURL(name string, friendly options.FriendlyURLOptions) string {
	separator := friendly.WordSeparator
	illegal := friendly.IllegalChars
	if illegal == "" {
		illegal = options.DefaultIllegalChars
	}

	var b strings.Builder
	b.Grow(len(name))

	pendingSeparator := false
	for _, r := range stripMarks(name) {
		switch {
		case unicode.IsSpace(r), r == '/', strings.ContainsRune(illegal, r),
			separator != "" && strings.ContainsRune(separator, r):
			pendingSeparator = b.Len() > 0
		case unicode.IsControl(r):
			// dropped
		default:
			if pendingSeparator {
				b.WriteString(separator)
				pendingSeparator = false
			}
			b.WriteRune(r)
		}
	}

	result := b.String()
	if friendly.ForceLowerCase {
		result = strings.ToLower(result)
	}
	if friendly.MaxLength > 0 && utf8.RuneCountInString(result) > friendly.MaxLength {
		result = truncateRunes(result, friendly.MaxLength)
		if separator != "" {
			result = strings.TrimSuffix(result, separator)
		}
	}
	return result
}

// Join builds a relative path from slugs, skipping empty ones.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "/")
}

func truncateRunes(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
