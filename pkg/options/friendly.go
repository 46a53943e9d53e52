package options

// DefaultIllegalChars are stripped from slugs before word separation.
const DefaultIllegalChars = `<>/\?:&=+|%#"*'.,;!@$^()[]{}~` + "`"

// FriendlyURLOptions are the host-wide rewriting options active for a request.
// The provider receives a copy on every call and never retains it.
type FriendlyURLOptions struct {
	// WordSeparator replaces whitespace and punctuation runs in slugs.
	WordSeparator string `yaml:"word_separator" json:"word_separator"`

	// MaxLength truncates each slug; zero means no limit.
	MaxLength int `yaml:"max_length" json:"max_length"`

	// PageExtension is appended to absolute redirect targets built without a
	// page path, e.g. ".aspx". Empty when the host uses extensionless URLs.
	PageExtension string `yaml:"page_extension" json:"page_extension"`

	// ForceLowerCase lower-cases composed slugs.
	ForceLowerCase bool `yaml:"force_lower_case" json:"force_lower_case"`

	// IllegalChars are removed from titles before slugging.
	IllegalChars string `yaml:"illegal_chars" json:"illegal_chars"`
}

// DefaultFriendlyURLOptions returns the options a stock host install uses.
func DefaultFriendlyURLOptions() FriendlyURLOptions {
	return FriendlyURLOptions{
		WordSeparator:  "-",
		MaxLength:      200,
		ForceLowerCase: true,
		IllegalChars:   DefaultIllegalChars,
	}
}
