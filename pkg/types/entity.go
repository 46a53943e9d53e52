package types

import (
	"fmt"
	"strconv"
)

// EntityKind classifies the content item a friendly path points at.
type EntityKind string

const (
	EntityArticle  EntityKind = "article"
	EntityPage     EntityKind = "page"
	EntityCategory EntityKind = "category"
	EntityAuthor   EntityKind = "author"
	EntityArchive  EntityKind = "archive"
)

// Tag returns the single character prefix used in entity keys.
// Tags are unique per kind so keys never collide across kinds.
func (k EntityKind) Tag() string {
	switch k {
	case EntityArticle:
		return "a"
	case EntityPage:
		return "p"
	case EntityCategory:
		return "c"
	case EntityAuthor:
		return "u"
	case EntityArchive:
		return "y"
	default:
		return ""
	}
}

// ArticleType returns the articleType query value for the kind.
func (k EntityKind) ArticleType() string {
	switch k {
	case EntityArticle, EntityPage:
		return "ArticleView"
	case EntityCategory:
		return "CategoryView"
	case EntityAuthor:
		return "AuthorView"
	case EntityArchive:
		return "ArchiveView"
	default:
		return ""
	}
}

// EntityKey is the short, type-tagged key used by the entity index,
// e.g. "a123" for article 123 or "y2023/07" for an archive month.
type EntityKey string

// ArticleKey returns the key for an article.
func ArticleKey(articleID int) EntityKey {
	return EntityKey(EntityArticle.Tag() + strconv.Itoa(articleID))
}

// PageKey returns the key for a page of a multi-page article.
func PageKey(articlePageID int) EntityKey {
	return EntityKey(EntityPage.Tag() + strconv.Itoa(articlePageID))
}

// CategoryKey returns the key for a category.
func CategoryKey(categoryID int) EntityKey {
	return EntityKey(EntityCategory.Tag() + strconv.Itoa(categoryID))
}

// AuthorKey returns the key for an author.
func AuthorKey(authorID int) EntityKey {
	return EntityKey(EntityAuthor.Tag() + strconv.Itoa(authorID))
}

// ArchiveKey returns the key for an archive listing.
func ArchiveKey(date ArchiveDate) EntityKey {
	return EntityKey(EntityArchive.Tag() + date.Fragment())
}

// EntityReference is a parsed pointer to a content item.
// Optional qualifiers use zero for "absent"; host ids start at 1.
type EntityReference struct {
	Kind EntityKind

	// ID is the article, category or author id. Unused for archives.
	ID int

	// Article qualifiers.
	ArticlePageID int
	CategoryID    int

	// Archive qualifier.
	Archive ArchiveDate
}

// Key returns the entity index key for the reference.
// An article carrying a page qualifier is keyed by its page.
func (r EntityReference) Key() EntityKey {
	switch r.Kind {
	case EntityArticle:
		if r.ArticlePageID > 0 {
			return PageKey(r.ArticlePageID)
		}
		return ArticleKey(r.ID)
	case EntityPage:
		return PageKey(r.ArticlePageID)
	case EntityCategory:
		return CategoryKey(r.ID)
	case EntityAuthor:
		return AuthorKey(r.ID)
	case EntityArchive:
		return ArchiveKey(r.Archive)
	default:
		return ""
	}
}

// String returns a compact human-readable form of the reference.
func (r EntityReference) String() string {
	switch r.Kind {
	case EntityArchive:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Archive.Fragment())
	case EntityArticle:
		s := fmt.Sprintf("%s(%d", r.Kind, r.ID)
		if r.ArticlePageID > 0 {
			s += fmt.Sprintf(" page=%d", r.ArticlePageID)
		}
		if r.CategoryID > 0 {
			s += fmt.Sprintf(" category=%d", r.CategoryID)
		}
		return s + ")"
	default:
		return fmt.Sprintf("%s(%d)", r.Kind, r.ID)
	}
}
