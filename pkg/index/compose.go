package index

import (
	"fmt"
	"strconv"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/catalog"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/slug"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// Composer builds friendly paths for one page scope. Paths are relative
// (no leading slash) and prefixed with the configured URL path, except for
// archive paths which must stay recognizable as dates.
type Composer struct {
	Tab      options.TabURLOptions
	Friendly options.FriendlyURLOptions
	URLPath  string
}

// NewComposer returns the composer for tab under config.
func NewComposer(config *options.Configuration, tab options.TabURLOptions, friendly options.FriendlyURLOptions) Composer {
	return Composer{Tab: tab, Friendly: friendly, URLPath: config.URLPath()}
}

// ArticleIDPath returns "article/<id>".
func (c Composer) ArticleIDPath(articleID int) string {
	return slug.Join(c.URLPath, "article", strconv.Itoa(articleID))
}

// CategoryIDPath returns "category/<id>".
func (c Composer) CategoryIDPath(categoryID int) string {
	return slug.Join(c.URLPath, "category", strconv.Itoa(categoryID))
}

// AuthorIDPath returns "author/<id>".
func (c Composer) AuthorIDPath(authorID int) string {
	return slug.Join(c.URLPath, "author", strconv.Itoa(authorID))
}

// ArchivePath returns "yyyy" or "yyyy/mm".
func (c Composer) ArchivePath(date types.ArchiveDate) string {
	return date.Fragment()
}

// Article composes the path of an article per ArticleURLStyle and
// ArticleURLSource. Titles that clean to nothing fall back to the id form.
func (c Composer) Article(article catalog.Article) string {
	if c.Tab.ArticleURLStyle == options.ArticleIDStyle {
		return c.ArticleIDPath(article.ID)
	}
	titleSlug := c.clean(article.SourceTitle(c.Tab.ArticleURLSource == options.ArticleSourceSEOTitle))
	if titleSlug == "" {
		return c.ArticleIDPath(article.ID)
	}
	if c.Tab.ArticleURLStyle == options.ArticleBlogStyle && !article.PublishDate.IsZero() {
		published := article.PublishDate
		return slug.Join(c.URLPath,
			fmt.Sprintf("%04d", published.Year()),
			fmt.Sprintf("%02d", int(published.Month())),
			fmt.Sprintf("%02d", published.Day()),
			titleSlug)
	}
	return slug.Join(c.URLPath, titleSlug)
}

// Page composes the path of one page of a multi-page article below
// articlePath, per PageURLStyle.
func (c Composer) Page(articlePath string, page catalog.ArticlePage) string {
	numbered := slug.Join(articlePath, "page-"+strconv.Itoa(page.Number))
	if c.Tab.PageURLStyle == options.PageNumberStyle {
		return numbered
	}
	pageSlug := c.clean(page.Title)
	if pageSlug == "" {
		return numbered
	}
	return slug.Join(articlePath, pageSlug)
}

// Category composes the path of a category per CategoryURLStyle. The full
// category list is needed for the hierarchy style.
func (c Composer) Category(category catalog.Category, all []catalog.Category) string {
	switch c.Tab.CategoryURLStyle {
	case options.CategoryIDStyle:
		return c.CategoryIDPath(category.ID)
	case options.CategoryHierarchyStyle:
		parts := []string{c.URLPath, "category"}
		for _, name := range catalog.CategoryAncestry(all, category.ID) {
			nameSlug := c.clean(name)
			if nameSlug == "" {
				return c.CategoryIDPath(category.ID)
			}
			parts = append(parts, nameSlug)
		}
		if len(parts) == 2 {
			return c.CategoryIDPath(category.ID)
		}
		return slug.Join(parts...)
	default:
		nameSlug := c.clean(category.Name)
		if nameSlug == "" {
			return c.CategoryIDPath(category.ID)
		}
		return slug.Join(c.URLPath, "category", nameSlug)
	}
}

// Author composes the path of an author per AuthorURLStyle.
func (c Composer) Author(author catalog.Author) string {
	var name string
	switch c.Tab.AuthorURLStyle {
	case options.AuthorIDStyle:
		return c.AuthorIDPath(author.ID)
	case options.AuthorUserNameStyle:
		name = author.UserName
	default:
		name = author.DisplayName
	}
	nameSlug := c.clean(name)
	if nameSlug == "" {
		return c.AuthorIDPath(author.ID)
	}
	return slug.Join(c.URLPath, "author", nameSlug)
}

func (c Composer) clean(name string) string {
	return slug.CleanNameForURL(name, c.Friendly)
}

// OptionsKey condenses the friendly URL options that affect composed paths.
func OptionsKey(friendly options.FriendlyURLOptions) string {
	return fmt.Sprintf("%q|%d|%t|%q", friendly.WordSeparator, friendly.MaxLength, friendly.ForceLowerCase, friendly.IllegalChars)
}

// TabPrefix returns "?tabid=<id>" for the path-less page and "" otherwise.
// Rewritten URLs of the path-less page carry no page path, so the query has
// to name the page itself.
func TabPrefix(config *options.Configuration, pageID types.PageID) string {
	if config.IsNoPagePathPage(pageID) {
		return "?tabid=" + pageID.String()
	}
	return ""
}

// ItemQuery returns the query fragment that displays ref, e.g.
// "&articleType=ArticleView&articleId=123".
func ItemQuery(ref types.EntityReference) string {
	articleType := "&articleType=" + ref.Kind.ArticleType()
	switch ref.Kind {
	case types.EntityArticle, types.EntityPage:
		query := articleType + "&articleId=" + strconv.Itoa(ref.ID)
		if ref.ArticlePageID > 0 {
			query += "&PageId=" + strconv.Itoa(ref.ArticlePageID)
		}
		return query
	case types.EntityCategory:
		return articleType + "&categoryId=" + strconv.Itoa(ref.ID)
	case types.EntityAuthor:
		return articleType + "&authorId=" + strconv.Itoa(ref.ID)
	case types.EntityArchive:
		query := articleType + "&year=" + strconv.Itoa(ref.Archive.Year)
		if ref.Archive.HasMonth() {
			query += "&month=" + strconv.Itoa(ref.Archive.Month)
		}
		return query
	default:
		return ""
	}
}
