package matcher

import (
	"regexp"
	"strconv"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// ArticleMatcher recognizes article view paths:
//   - "articleType/ArticleView/articleId/123"
//   - "/id/123"
//
// either optionally followed by "/PageId/<n>" and then "/categoryId/<n>".
type ArticleMatcher struct {
	pattern *regexp.Regexp
}

// NewArticleMatcher creates an article matcher with its compiled pattern.
func NewArticleMatcher() *ArticleMatcher {
	return &ArticleMatcher{
		pattern: regexp.MustCompile(`(?i)(?:/?articleType/ArticleView/articleId/|/id/)(?P<artid>\d+)(?:/PageId/(?P<pageid>\d+))?(?:/categoryId/(?P<catid>\d+))?`),
	}
}

func (m *ArticleMatcher) Name() string           { return "article" }
func (m *ArticleMatcher) Kind() types.EntityKind { return types.EntityArticle }

// Match implements PathMatcher.
func (m *ArticleMatcher) Match(path string) (Match, bool) {
	loc := m.pattern.FindStringSubmatchIndex(path)
	if loc == nil {
		return Match{}, false
	}
	articleID, ok := positiveID(submatch(m.pattern, path, loc, "artid"))
	if !ok {
		return Match{}, false
	}
	ref := types.EntityReference{Kind: types.EntityArticle, ID: articleID}
	if raw := submatch(m.pattern, path, loc, "pageid"); raw != "" {
		ref.ArticlePageID, _ = positiveID(raw)
	}
	if raw := submatch(m.pattern, path, loc, "catid"); raw != "" {
		ref.CategoryID, _ = positiveID(raw)
	}
	return newMatch(path, loc, ref), true
}

// AuthorMatcher recognizes "articleType/AuthorView/authorId/<id>".
type AuthorMatcher struct {
	pattern *regexp.Regexp
}

// NewAuthorMatcher creates an author matcher with its compiled pattern.
func NewAuthorMatcher() *AuthorMatcher {
	return &AuthorMatcher{
		pattern: regexp.MustCompile(`(?i)/?articleType/AuthorView/authorId/(?P<authid>\d+)`),
	}
}

func (m *AuthorMatcher) Name() string           { return "author" }
func (m *AuthorMatcher) Kind() types.EntityKind { return types.EntityAuthor }

// Match implements PathMatcher.
func (m *AuthorMatcher) Match(path string) (Match, bool) {
	return matchSingleID(m.pattern, path, "authid", types.EntityAuthor)
}

// CategoryMatcher recognizes "articleType/CategoryView/categoryId/<id>".
type CategoryMatcher struct {
	pattern *regexp.Regexp
}

// NewCategoryMatcher creates a category matcher with its compiled pattern.
func NewCategoryMatcher() *CategoryMatcher {
	return &CategoryMatcher{
		pattern: regexp.MustCompile(`(?i)/?articleType/CategoryView/categoryId/(?P<catid>\d+)`),
	}
}

func (m *CategoryMatcher) Name() string           { return "category" }
func (m *CategoryMatcher) Kind() types.EntityKind { return types.EntityCategory }

// Match implements PathMatcher.
func (m *CategoryMatcher) Match(path string) (Match, bool) {
	return matchSingleID(m.pattern, path, "catid", types.EntityCategory)
}

// ArchiveMatcher recognizes "articleType/ArchiveView" followed by a year and
// an optional month, labelled "/year/<yyyy>" and "/month/<mm>" in either
// order. A path without a valid year is not matched.
type ArchiveMatcher struct {
	pattern *regexp.Regexp
}

// NewArchiveMatcher creates an archive matcher with its compiled pattern.
func NewArchiveMatcher() *ArchiveMatcher {
	return &ArchiveMatcher{
		// The year-first branch is listed first: alternation prefers the
		// leftmost branch, and the second branch can match partially.
		pattern: regexp.MustCompile(`(?i)/?articleType/ArchiveView(?:/year/(?P<yyyy1>\d+)/month/(?P<mm1>\d+)|(?:/month/(?P<mm2>\d+))?(?:/year/(?P<yyyy2>\d+))?)`),
	}
}

func (m *ArchiveMatcher) Name() string           { return "archive" }
func (m *ArchiveMatcher) Kind() types.EntityKind { return types.EntityArchive }

// Match implements PathMatcher.
func (m *ArchiveMatcher) Match(path string) (Match, bool) {
	loc := m.pattern.FindStringSubmatchIndex(path)
	if loc == nil {
		return Match{}, false
	}
	rawYear := submatch(m.pattern, path, loc, "yyyy1")
	rawMonth := submatch(m.pattern, path, loc, "mm1")
	if rawYear == "" {
		rawYear = submatch(m.pattern, path, loc, "yyyy2")
		rawMonth = submatch(m.pattern, path, loc, "mm2")
	}
	if rawYear == "" {
		return Match{}, false
	}
	date, ok := types.ParseArchiveDate(rawYear, rawMonth)
	if !ok {
		return Match{}, false
	}
	ref := types.EntityReference{Kind: types.EntityArchive, Archive: date}
	return newMatch(path, loc, ref), true
}

func matchSingleID(re *regexp.Regexp, path, group string, kind types.EntityKind) (Match, bool) {
	loc := re.FindStringSubmatchIndex(path)
	if loc == nil {
		return Match{}, false
	}
	id, ok := positiveID(submatch(re, path, loc, group))
	if !ok {
		return Match{}, false
	}
	return newMatch(path, loc, types.EntityReference{Kind: kind, ID: id}), true
}

// positiveID parses a host id. Ids overflowing int or below 1 are rejected.
func positiveID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
