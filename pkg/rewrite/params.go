package rewrite

import "strings"

// ParameterComposer turns the path segments left over after a friendly
// match into query parameters.
type ParameterComposer interface {
	// QueryFromParameters renders segments after index skipUpTo.
	QueryFromParameters(segments []string, skipUpTo int) string
}

// PairComposer reads leftover segments as key/value pairs and renders them
// as "&key=value". A trailing key without a value renders as "&key=".
type PairComposer struct{}

// QueryFromParameters implements ParameterComposer.
func (PairComposer) QueryFromParameters(segments []string, skipUpTo int) string {
	start := skipUpTo + 1
	if start < 0 {
		start = 0
	}
	if start >= len(segments) {
		return ""
	}

	var b strings.Builder
	rest := segments[start:]
	for i := 0; i < len(rest); i += 2 {
		if rest[i] == "" {
			continue
		}
		b.WriteByte('&')
		b.WriteString(rest[i])
		b.WriteByte('=')
		if i+1 < len(rest) {
			b.WriteString(rest[i+1])
		}
	}
	return b.String()
}
