package options

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// Provider attribute names, as stored in the host's provider settings.
const (
	AttrIgnoreRedirectRegex = "ignoreRedirectRegex"
	AttrNoPagePathTabID     = "noDnnPagePathTabId"
	AttrURLPath             = "urlPath"
	AttrRedirectURLs        = "redirectUrls"
	AttrStartingArticleID   = "startingArticleId"
	AttrArticleURLStyle     = "articleUrlStyle"
	AttrArticleURLSource    = "articleUrlSource"
	AttrPageURLStyle        = "pageUrlStyle"
	AttrAuthorURLStyle      = "authorUrlStyle"
	AttrCategoryURLStyle    = "categoryUrlStyle"
)

// styleAttributes lists the per-scope style attributes in a stable order.
var styleAttributes = []string{
	AttrArticleURLStyle,
	AttrArticleURLSource,
	AttrPageURLStyle,
	AttrAuthorURLStyle,
	AttrCategoryURLStyle,
}

// Configuration is the provider configuration for one portal. It is built
// once from the host attribute set and never modified; a settings change
// produces a new Configuration.
type Configuration struct {
	noPagePathPage    types.PageID
	urlPath           string
	redirectURLs      bool
	startingArticleID int
	ignoreRedirect    *regexp.Regexp
	ignoreRedirectRaw string

	rawStyles map[string]string
	scopes    map[types.ScopeID]TabURLOptions
	warnings  []string
}

// NewConfiguration builds a Configuration from the host attribute set.
// Attribute names are matched case-insensitively and absent attributes take
// their disabled/empty/-1 defaults. Unparseable values are reported through
// Warnings; only an invalid ignoreRedirectRegex is an error.
func NewConfiguration(attributes map[string]string) (*Configuration, error) {
	attrs := make(map[string]string, len(attributes))
	for key, value := range attributes {
		attrs[strings.ToLower(key)] = strings.TrimSpace(value)
	}
	get := func(name string) string {
		return attrs[strings.ToLower(name)]
	}

	config := &Configuration{
		noPagePathPage: types.NoPagePath,
		urlPath:        strings.Trim(get(AttrURLPath), "/"),
		rawStyles:      make(map[string]string, len(styleAttributes)),
		scopes:         make(map[types.ScopeID]TabURLOptions),
	}

	if raw := get(AttrNoPagePathTabID); raw != "" {
		pageID, err := cast.ToIntE(raw)
		if err != nil {
			config.warnf("%s: %q is not a page id", AttrNoPagePathTabID, raw)
		} else if pageID > 0 {
			config.noPagePathPage = types.PageID(pageID)
		}
	}

	if raw := get(AttrRedirectURLs); raw != "" {
		enabled, err := cast.ToBoolE(raw)
		if err != nil {
			config.warnf("%s: %q is not a boolean", AttrRedirectURLs, raw)
		}
		config.redirectURLs = enabled
	}

	if raw := get(AttrStartingArticleID); raw != "" {
		startingID, err := cast.ToIntE(raw)
		if err != nil {
			config.warnf("%s: %q is not an article id", AttrStartingArticleID, raw)
		} else {
			config.startingArticleID = startingID
		}
	}

	if raw := get(AttrIgnoreRedirectRegex); raw != "" {
		compiled, err := regexp.Compile("(?i)" + raw)
		if err != nil {
			return nil, fmt.Errorf("compiling %s %q: %w", AttrIgnoreRedirectRegex, raw, err)
		}
		config.ignoreRedirect = compiled
		config.ignoreRedirectRaw = raw
	}

	scoped := make(map[string]map[types.ScopeID]string, len(styleAttributes))
	for _, name := range styleAttributes {
		raw := get(name)
		config.rawStyles[name] = raw
		scoped[name] = config.parseScopedSetting(name, raw)
	}

	defaults := DefaultTabURLOptions()
	defaults.StartingArticleID = config.startingArticleID
	config.applyStyles(&defaults, scoped)
	config.scopes[types.DefaultScope] = defaults

	for _, scope := range pageScopes(scoped) {
		tabOptions := defaults
		tabOptions.Scope = scope
		config.applyStyles(&tabOptions, scoped)
		config.scopes[scope] = tabOptions
	}

	return config, nil
}

// MustNewConfiguration is like NewConfiguration but panics on error.
// Intended for tests and static setups.
func MustNewConfiguration(attributes map[string]string) *Configuration {
	config, err := NewConfiguration(attributes)
	if err != nil {
		panic(err)
	}
	return config
}

// Resolve returns the TabURLOptions in force for pageID. An exact page scope
// wins; the no-page-path sentinel resolves to the configured path-less page
// when it has its own scope; everything else falls back to the default scope.
func (c *Configuration) Resolve(pageID types.PageID) TabURLOptions {
	if pageID.Valid() {
		if tabOptions, ok := c.scopes[types.PageScope(pageID)]; ok {
			return tabOptions
		}
	}
	if pageID.IsNoPagePath() && c.noPagePathPage.Valid() {
		if tabOptions, ok := c.scopes[types.PageScope(c.noPagePathPage)]; ok {
			return tabOptions
		}
	}
	return c.scopes[types.DefaultScope]
}

// Scopes returns the configured scopes, default scope first then by page id.
func (c *Configuration) Scopes() []types.ScopeID {
	result := make([]types.ScopeID, 0, len(c.scopes))
	for scope := range c.scopes {
		result = append(result, scope)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Default != result[j].Default {
			return result[i].Default
		}
		return result[i].Page < result[j].Page
	})
	return result
}

// NoPagePathPage returns the page served without a page path, or
// types.NoPagePath when none is configured.
func (c *Configuration) NoPagePathPage() types.PageID {
	return c.noPagePathPage
}

// IsNoPagePathPage reports whether pageID is the configured path-less page.
func (c *Configuration) IsNoPagePathPage(pageID types.PageID) bool {
	return c.noPagePathPage.Valid() && pageID == c.noPagePathPage
}

// SubstitutePage maps the no-page-path sentinel to the configured path-less
// page. Other ids are returned unchanged.
func (c *Configuration) SubstitutePage(pageID types.PageID) types.PageID {
	if pageID.IsNoPagePath() && c.noPagePathPage.Valid() {
		return c.noPagePathPage
	}
	return pageID
}

// URLPath returns the optional prefix for composed article paths.
func (c *Configuration) URLPath() string {
	return c.urlPath
}

// RedirectURLs reports whether legacy URLs should be redirected.
func (c *Configuration) RedirectURLs() bool {
	return c.redirectURLs
}

// StartingArticleID returns the first article id eligible for redirects.
func (c *Configuration) StartingArticleID() int {
	return c.startingArticleID
}

// IgnoreRedirect reports whether requestURL matches ignoreRedirectRegex.
func (c *Configuration) IgnoreRedirect(requestURL string) bool {
	return c.ignoreRedirect != nil && c.ignoreRedirect.MatchString(requestURL)
}

// Warnings returns the problems found while reading the attributes.
func (c *Configuration) Warnings() []string {
	result := make([]string, len(c.warnings))
	copy(result, c.warnings)
	return result
}

// PortalSettings returns the attribute set that reproduces this
// configuration when written back to the host. Empty values are omitted.
func (c *Configuration) PortalSettings() map[string]string {
	settings := map[string]string{
		AttrRedirectURLs:      strconv.FormatBool(c.redirectURLs),
		AttrStartingArticleID: strconv.Itoa(c.startingArticleID),
	}
	if c.urlPath != "" {
		settings[AttrURLPath] = c.urlPath
	}
	if c.noPagePathPage.Valid() {
		settings[AttrNoPagePathTabID] = c.noPagePathPage.String()
	}
	if c.ignoreRedirectRaw != "" {
		settings[AttrIgnoreRedirectRegex] = c.ignoreRedirectRaw
	}
	for _, name := range styleAttributes {
		if raw := c.rawStyles[name]; raw != "" {
			settings[name] = raw
		}
	}
	return settings
}

// parseScopedSetting splits a style attribute into per-scope values.
// Accepted forms: "Style" (default scope) or "54:Style;-1:Style" with
// ';' or ',' between entries and ':' or '=' between id and style.
func (c *Configuration) parseScopedSetting(name, raw string) map[types.ScopeID]string {
	result := make(map[types.ScopeID]string)
	entries := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' })
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		separator := strings.IndexAny(entry, ":=")
		if separator < 0 {
			result[types.DefaultScope] = entry
			continue
		}
		rawID := strings.TrimSpace(entry[:separator])
		value := strings.TrimSpace(entry[separator+1:])
		pageID, err := cast.ToIntE(rawID)
		switch {
		case err != nil:
			c.warnf("%s: %q is not a page id", name, rawID)
		case pageID == -1:
			result[types.DefaultScope] = value
		case pageID > 0:
			result[types.PageScope(types.PageID(pageID))] = value
		default:
			c.warnf("%s: page id %d is not valid", name, pageID)
		}
	}
	return result
}

// applyStyles overlays the values configured for tabOptions.Scope.
func (c *Configuration) applyStyles(tabOptions *TabURLOptions, scoped map[string]map[types.ScopeID]string) {
	scope := tabOptions.Scope
	if raw, ok := scoped[AttrArticleURLStyle][scope]; ok {
		if style, known := ParseArticleURLStyle(raw); known {
			tabOptions.ArticleURLStyle = style
		} else {
			c.unknownStyle(AttrArticleURLStyle, raw, scope, string(tabOptions.ArticleURLStyle))
		}
	}
	if raw, ok := scoped[AttrArticleURLSource][scope]; ok {
		if source, known := ParseArticleURLSource(raw); known {
			tabOptions.ArticleURLSource = source
		} else {
			c.unknownStyle(AttrArticleURLSource, raw, scope, string(tabOptions.ArticleURLSource))
		}
	}
	if raw, ok := scoped[AttrPageURLStyle][scope]; ok {
		if style, known := ParsePageURLStyle(raw); known {
			tabOptions.PageURLStyle = style
		} else {
			c.unknownStyle(AttrPageURLStyle, raw, scope, string(tabOptions.PageURLStyle))
		}
	}
	if raw, ok := scoped[AttrAuthorURLStyle][scope]; ok {
		if style, known := ParseAuthorURLStyle(raw); known {
			tabOptions.AuthorURLStyle = style
		} else {
			c.unknownStyle(AttrAuthorURLStyle, raw, scope, string(tabOptions.AuthorURLStyle))
		}
	}
	if raw, ok := scoped[AttrCategoryURLStyle][scope]; ok {
		if style, known := ParseCategoryURLStyle(raw); known {
			tabOptions.CategoryURLStyle = style
		} else {
			c.unknownStyle(AttrCategoryURLStyle, raw, scope, string(tabOptions.CategoryURLStyle))
		}
	}
}

func (c *Configuration) unknownStyle(name, raw string, scope types.ScopeID, kept string) {
	c.warnf("%s: unknown style %q for scope %s, keeping %s", name, raw, scope, kept)
}

func (c *Configuration) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// pageScopes returns every page scope named by any style attribute, sorted.
func pageScopes(scoped map[string]map[types.ScopeID]string) []types.ScopeID {
	seen := make(map[types.ScopeID]bool)
	var result []types.ScopeID
	for _, name := range styleAttributes {
		for scope := range scoped[name] {
			if scope.Default || seen[scope] {
				continue
			}
			seen[scope] = true
			result = append(result, scope)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Page < result[j].Page })
	return result
}
