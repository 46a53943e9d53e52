package index

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/catalog"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// Builder turns catalog listings into snapshots.
type Builder struct {
	catalog catalog.Catalog
	now     func() time.Time
}

// NewBuilder creates a builder reading from c.
func NewBuilder(c catalog.Catalog) *Builder {
	return &Builder{catalog: c, now: time.Now}
}

// Build lists the scope's articles, categories and authors concurrently and
// composes every friendly path with composer. tabPrefix is prepended to
// every query fragment (see TabPrefix).
func (b *Builder) Build(ctx context.Context, scope Scope, composer Composer, tabPrefix string) (*Snapshot, error) {
	var (
		articles   []catalog.Article
		categories []catalog.Category
		authors    []catalog.Author
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		articles, err = b.catalog.Articles(groupCtx, scope.Portal, scope.Page)
		if err != nil {
			return fmt.Errorf("listing articles: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		categories, err = b.catalog.Categories(groupCtx, scope.Portal, scope.Page)
		if err != nil {
			return fmt.Errorf("listing categories: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		authors, err = b.catalog.Authors(groupCtx, scope.Portal, scope.Page)
		if err != nil {
			return fmt.Errorf("listing authors: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("building index for %s: %w", scope, err)
	}

	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })

	separator := composer.Friendly.WordSeparator
	if separator == "" {
		separator = "-"
	}

	snapshot := newSnapshot(scope)
	for _, article := range articles {
		ref := types.EntityReference{Kind: types.EntityArticle, ID: article.ID}
		articlePath := snapshot.add(ref.Key(), composer.Article(article), tabPrefix+ItemQuery(ref), separator, article.ID)

		pages := append([]catalog.ArticlePage(nil), article.Pages...)
		sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
		for _, page := range pages {
			if page.ID < 1 {
				continue
			}
			pageRef := types.EntityReference{Kind: types.EntityPage, ID: article.ID, ArticlePageID: page.ID}
			if page.Number <= 1 {
				// The first page is the article itself.
				snapshot.alias(pageRef.Key(), articlePath)
				continue
			}
			snapshot.add(pageRef.Key(), composer.Page(articlePath, page), tabPrefix+ItemQuery(pageRef), separator, page.ID)
		}
	}
	for _, category := range categories {
		ref := types.EntityReference{Kind: types.EntityCategory, ID: category.ID}
		snapshot.add(ref.Key(), composer.Category(category, categories), tabPrefix+ItemQuery(ref), separator, category.ID)
	}
	for _, author := range authors {
		ref := types.EntityReference{Kind: types.EntityAuthor, ID: author.ID}
		snapshot.add(ref.Key(), composer.Author(author), tabPrefix+ItemQuery(ref), separator, author.ID)
	}

	snapshot.BuiltAt = b.now()
	return snapshot, nil
}
