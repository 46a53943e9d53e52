// Package legacy recognizes the query strings of pre-friendly article URLs
// so they can be redirected permanently to their friendly form.
package legacy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// Classification values, lower-cased as they appear in articleType.
const (
	TypeArticle  = "articleview"
	TypeID       = "id"
	TypeCategory = "categoryview"
	TypeArchive  = "archiveview"
	TypeAuthor   = "authorview"
)

// Request is a recognized legacy query.
type Request struct {
	// Type is the lower-cased articleType, or "id" for a bare id parameter.
	// Empty when the query could not be classified.
	Type string

	IDName string
	ID     int

	RawYear  string
	RawMonth string

	// PageName is "PageId" or "CurrentPage" as written; Page its value.
	PageName string
	Page     int
}

// HasPage reports whether a page parameter was present.
func (r Request) HasPage() bool {
	return r.PageName != ""
}

// Target is where a legacy request should go: either an entity key to look
// up in the entity index or a ready friendly path.
type Target struct {
	Kind         types.EntityKind
	Key          types.EntityKey
	FriendlyPath string
	// PagePath is appended to the resolved friendly path, e.g. "PageId/3".
	PagePath string
}

// Matcher parses legacy query strings. Safe for concurrent use.
type Matcher struct {
	pattern *regexp.Regexp
}

// NewMatcher creates a matcher with its compiled pattern.
func NewMatcher() *Matcher {
	return &Matcher{
		pattern: regexp.MustCompile(`(?i)(?:&articleType=(?P<type>[^&]+))?(?:&(?P<idname>[a-z]*Id)=(?P<id>\d+)|(?:&month=(?P<mm>\d{1,2}))?&year=(?P<yyyy>\d{4})(?:&month=(?P<mm2>\d{1,2}))?)(?:&(?P<pgname>PageId|CurrentPage)=(?P<pg>\d+))?`),
	}
}

// RenderQuery turns a raw query string into "&k=v&k2=v2" form so every
// parameter, the first included, is introduced by '&'. The page parameter
// ("tabid") is dropped because the page is resolved separately and would
// otherwise shadow the article parameters.
func RenderQuery(rawQuery string) string {
	var b strings.Builder
	for _, pair := range strings.Split(strings.TrimPrefix(rawQuery, "?"), "&") {
		if pair == "" {
			continue
		}
		name, _, _ := strings.Cut(pair, "=")
		if strings.EqualFold(name, "tabid") {
			continue
		}
		b.WriteByte('&')
		b.WriteString(pair)
	}
	return b.String()
}

// Match parses a raw query string.
func (m *Matcher) Match(rawQuery string) (Request, bool) {
	rendered := RenderQuery(rawQuery)
	groups := m.pattern.FindStringSubmatch(rendered)
	if groups == nil {
		return Request{}, false
	}
	get := func(name string) string {
		return groups[m.pattern.SubexpIndex(name)]
	}

	request := Request{
		IDName:   get("idname"),
		RawYear:  get("yyyy"),
		RawMonth: get("mm"),
		PageName: get("pgname"),
	}
	if request.RawMonth == "" {
		request.RawMonth = get("mm2")
	}
	if raw := get("id"); raw != "" {
		request.ID, _ = strconv.Atoi(raw)
	}
	if raw := get("pg"); raw != "" {
		request.Page, _ = strconv.Atoi(raw)
	}

	switch articleType := get("type"); {
	case articleType != "":
		request.Type = strings.ToLower(articleType)
	case strings.EqualFold(request.IDName, "id"):
		request.Type = TypeID
	}
	return request, true
}

// Resolve maps a request to its redirect target.
//
// Article requests carrying a page parameter map to the page key and the
// article id is ignored. Otherwise article ids below startingArticleID are
// not mapped. Archive requests resolve to a friendly date path directly;
// out-of-range dates are not mapped.
func Resolve(request Request, startingArticleID int) (Target, bool) {
	var pagePath string
	if request.HasPage() {
		pagePath = request.PageName + "/" + strconv.Itoa(request.Page)
	}

	switch request.Type {
	case TypeArticle, TypeID:
		if request.HasPage() {
			return Target{Kind: types.EntityPage, Key: types.PageKey(request.Page)}, true
		}
		if request.IDName == "" || request.ID < startingArticleID {
			return Target{}, false
		}
		return Target{Kind: types.EntityArticle, Key: types.ArticleKey(request.ID)}, true

	case TypeCategory:
		if request.IDName == "" {
			return Target{}, false
		}
		return Target{Kind: types.EntityCategory, Key: types.CategoryKey(request.ID), PagePath: pagePath}, true

	case TypeAuthor:
		if request.IDName == "" {
			return Target{}, false
		}
		return Target{Kind: types.EntityAuthor, Key: types.AuthorKey(request.ID), PagePath: pagePath}, true

	case TypeArchive:
		if request.RawYear == "" {
			return Target{}, false
		}
		date, ok := types.ParseArchiveDate(request.RawYear, request.RawMonth)
		if !ok {
			return Target{}, false
		}
		return Target{Kind: types.EntityArchive, FriendlyPath: date.Fragment(), PagePath: pagePath}, true

	default:
		return Target{}, false
	}
}
