// Package options holds the configuration that drives URL composition:
// per-page style choices, the global friendly URL options supplied by the
// host, and the immutable provider configuration with its scope resolver.
package options

import "strings"

// ArticleURLStyle selects how article paths are composed.
type ArticleURLStyle string

const (
	// ArticleTitleStyle renders "<title-slug>".
	ArticleTitleStyle ArticleURLStyle = "TitleStyle"
	// ArticleBlogStyle renders "<yyyy>/<mm>/<dd>/<title-slug>" from the publish date.
	ArticleBlogStyle ArticleURLStyle = "BlogStyle"
	// ArticleIDStyle renders "article/<id>" and needs no article data.
	ArticleIDStyle ArticleURLStyle = "IdStyle"
)

// ArticleURLSource selects which article field feeds the title slug.
type ArticleURLSource string

const (
	ArticleSourceTitle    ArticleURLSource = "TitleField"
	ArticleSourceSEOTitle ArticleURLSource = "SeoTitleField"
)

// PageURLStyle selects how the pages of a multi-page article are composed.
type PageURLStyle string

const (
	// PageTitleStyle renders "<article path>/<page-title-slug>".
	PageTitleStyle PageURLStyle = "TitleStyle"
	// PageNumberStyle renders "<article path>/page-<n>".
	PageNumberStyle PageURLStyle = "NumberStyle"
)

// AuthorURLStyle selects how author paths are composed.
type AuthorURLStyle string

const (
	AuthorDisplayNameStyle AuthorURLStyle = "DisplayName"
	AuthorUserNameStyle    AuthorURLStyle = "UserName"
	AuthorIDStyle          AuthorURLStyle = "IdStyle"
)

// CategoryURLStyle selects how category paths are composed.
type CategoryURLStyle string

const (
	CategoryNameStyle      CategoryURLStyle = "CategoryName"
	CategoryHierarchyStyle CategoryURLStyle = "CategoryHierarchy"
	CategoryIDStyle        CategoryURLStyle = "IdStyle"
)

var (
	articleStyles  = []ArticleURLStyle{ArticleTitleStyle, ArticleBlogStyle, ArticleIDStyle}
	articleSources = []ArticleURLSource{ArticleSourceTitle, ArticleSourceSEOTitle}
	pageStyles     = []PageURLStyle{PageTitleStyle, PageNumberStyle}
	authorStyles   = []AuthorURLStyle{AuthorDisplayNameStyle, AuthorUserNameStyle, AuthorIDStyle}
	categoryStyles = []CategoryURLStyle{CategoryNameStyle, CategoryHierarchyStyle, CategoryIDStyle}
)

// lookupStyle finds the canonical spelling of raw among known, ignoring case.
func lookupStyle[S ~string](raw string, known []S) (S, bool) {
	raw = strings.TrimSpace(raw)
	for _, candidate := range known {
		if strings.EqualFold(string(candidate), raw) {
			return candidate, true
		}
	}
	var zero S
	return zero, false
}

// ParseArticleURLStyle returns the style named by raw.
func ParseArticleURLStyle(raw string) (ArticleURLStyle, bool) {
	return lookupStyle(raw, articleStyles)
}

// ParseArticleURLSource returns the source named by raw.
func ParseArticleURLSource(raw string) (ArticleURLSource, bool) {
	return lookupStyle(raw, articleSources)
}

// ParsePageURLStyle returns the style named by raw.
func ParsePageURLStyle(raw string) (PageURLStyle, bool) {
	return lookupStyle(raw, pageStyles)
}

// ParseAuthorURLStyle returns the style named by raw.
func ParseAuthorURLStyle(raw string) (AuthorURLStyle, bool) {
	return lookupStyle(raw, authorStyles)
}

// ParseCategoryURLStyle returns the style named by raw.
func ParseCategoryURLStyle(raw string) (CategoryURLStyle, bool) {
	return lookupStyle(raw, categoryStyles)
}
