// Package catalog describes the content the provider composes friendly paths
// for, and the host page services it depends on.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// ErrPageNotFound is returned when a page id is unknown to the host.
var ErrPageNotFound = errors.New("catalog: page not found")

// Article is a published article.
type Article struct {
	ID          int            `yaml:"id" json:"id"`
	PortalID    types.PortalID `yaml:"portal_id" json:"portal_id"`
	PageID      types.PageID   `yaml:"page_id" json:"page_id"`
	Title       string         `yaml:"title" json:"title"`
	SEOTitle    string         `yaml:"seo_title,omitempty" json:"seo_title,omitempty"`
	PublishDate time.Time      `yaml:"publish_date" json:"publish_date"`
	Pages       []ArticlePage  `yaml:"pages,omitempty" json:"pages,omitempty"`
}

// ArticlePage is one page of a multi-page article. ID is the host-wide page
// record id; Number is the 1-based position inside the article.
type ArticlePage struct {
	ID     int    `yaml:"id" json:"id"`
	Number int    `yaml:"number" json:"number"`
	Title  string `yaml:"title" json:"title"`
}

// Category is an article category; ParentID is zero for top-level categories.
type Category struct {
	ID       int            `yaml:"id" json:"id"`
	PortalID types.PortalID `yaml:"portal_id" json:"portal_id"`
	ParentID int            `yaml:"parent_id,omitempty" json:"parent_id,omitempty"`
	Name     string         `yaml:"name" json:"name"`
}

// Author is a user who has written articles.
type Author struct {
	ID          int            `yaml:"id" json:"id"`
	PortalID    types.PortalID `yaml:"portal_id" json:"portal_id"`
	DisplayName string         `yaml:"display_name" json:"display_name"`
	UserName    string         `yaml:"user_name" json:"user_name"`
}

// Catalog lists the entities that get friendly paths.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// Articles returns the articles shown on pageID. Implementations that do
	// not track pages return every article of the portal.
	Articles(ctx context.Context, portalID types.PortalID, pageID types.PageID) ([]Article, error)

	// Categories returns the categories of the portal.
	Categories(ctx context.Context, portalID types.PortalID, pageID types.PageID) ([]Category, error)

	// Authors returns the authors of the portal.
	Authors(ctx context.Context, portalID types.PortalID, pageID types.PageID) ([]Author, error)
}

// PageService answers questions about host pages.
type PageService interface {
	// HasModule reports whether the articles module is installed on pageID.
	HasModule(ctx context.Context, pageID types.PageID) (bool, error)

	// NavigateURL returns the absolute URL of friendlyPath below pageID on
	// the given portal alias.
	NavigateURL(ctx context.Context, pageID types.PageID, alias, friendlyPath string) (string, error)
}

// SourceTitle returns the title to slug for an article: the SEO title when
// useSEO is set and the article has one, otherwise the title.
func (a Article) SourceTitle(useSEO bool) string {
	if useSEO && a.SEOTitle != "" {
		return a.SEOTitle
	}
	return a.Title
}

// CategoryAncestry returns the names from the root category down to id.
// Cycles and missing parents end the walk.
func CategoryAncestry(categories []Category, id int) []string {
	byID := make(map[int]Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	var names []string
	visited := make(map[int]bool)
	for current, ok := byID[id]; ok && !visited[current.ID]; current, ok = byID[current.ParentID] {
		visited[current.ID] = true
		names = append([]string{current.Name}, names...)
	}
	return names
}
