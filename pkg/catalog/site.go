package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/slug"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// Page is a host page.
type Page struct {
	ID       types.PageID   `yaml:"id" json:"id"`
	PortalID types.PortalID `yaml:"portal_id" json:"portal_id"`
	// Path is the page path, e.g. "news" or "about/press".
	Path string `yaml:"path" json:"path"`
	// HasModule marks pages with the articles module installed.
	HasModule bool `yaml:"has_module" json:"has_module"`
}

// SiteDocument is the on-disk form of a Site.
type SiteDocument struct {
	// Scheme used by NavigateURL; "https" when empty.
	Scheme     string     `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	Pages      []Page     `yaml:"pages" json:"pages"`
	Articles   []Article  `yaml:"articles" json:"articles"`
	Categories []Category `yaml:"categories" json:"categories"`
	Authors    []Author   `yaml:"authors" json:"authors"`
}

// Site is an in-memory host holding pages and the article catalog.
// It implements Catalog and PageService and is read-only after NewSite.
type Site struct {
	doc   SiteDocument
	pages map[types.PageID]Page
}

// NewSite indexes doc. Duplicate page ids are an error.
func NewSite(doc SiteDocument) (*Site, error) {
	site := &Site{
		doc:   doc,
		pages: make(map[types.PageID]Page, len(doc.Pages)),
	}
	if site.doc.Scheme == "" {
		site.doc.Scheme = "https"
	}
	for _, page := range doc.Pages {
		if !page.ID.Valid() {
			return nil, fmt.Errorf("page id %d is not valid", page.ID)
		}
		if _, exists := site.pages[page.ID]; exists {
			return nil, fmt.Errorf("page %d defined twice", page.ID)
		}
		site.pages[page.ID] = page
	}
	return site, nil
}

// LoadSite reads a site document from a YAML (.yaml, .yml) or JSON with
// comments (.json, .jsonc) file.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var doc SiteDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported site file extension %q", filepath.Ext(path))
	}

	site, err := NewSite(doc)
	if err != nil {
		return nil, fmt.Errorf("loading site %s: %w", path, err)
	}
	return site, nil
}

// Page returns the page with the given id.
func (s *Site) Page(pageID types.PageID) (Page, bool) {
	page, ok := s.pages[pageID]
	return page, ok
}

// Articles implements Catalog. Articles without a page id are listed on
// every page of their portal.
func (s *Site) Articles(ctx context.Context, portalID types.PortalID, pageID types.PageID) ([]Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result []Article
	for _, article := range s.doc.Articles {
		if article.PortalID != portalID {
			continue
		}
		if article.PageID.Valid() && pageID.Valid() && article.PageID != pageID {
			continue
		}
		result = append(result, article)
	}
	return result, nil
}

// Categories implements Catalog.
func (s *Site) Categories(ctx context.Context, portalID types.PortalID, _ types.PageID) ([]Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result []Category
	for _, category := range s.doc.Categories {
		if category.PortalID == portalID {
			result = append(result, category)
		}
	}
	return result, nil
}

// Authors implements Catalog.
func (s *Site) Authors(ctx context.Context, portalID types.PortalID, _ types.PageID) ([]Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result []Author
	for _, author := range s.doc.Authors {
		if author.PortalID == portalID {
			result = append(result, author)
		}
	}
	return result, nil
}

// HasModule implements PageService.
func (s *Site) HasModule(ctx context.Context, pageID types.PageID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	page, ok := s.pages[pageID]
	if !ok {
		return false, fmt.Errorf("page %d: %w", pageID, ErrPageNotFound)
	}
	return page.HasModule, nil
}

// NavigateURL implements PageService: scheme://alias/<page path>/<friendly path>.
func (s *Site) NavigateURL(ctx context.Context, pageID types.PageID, alias, friendlyPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	page, ok := s.pages[pageID]
	if !ok {
		return "", fmt.Errorf("page %d: %w", pageID, ErrPageNotFound)
	}
	return fmt.Sprintf("%s://%s/%s", s.doc.Scheme, strings.Trim(alias, "/"), slug.Join(page.Path, friendlyPath)), nil
}
