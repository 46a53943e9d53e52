package types

import "testing"

func TestEntityKeys(t *testing.T) {
	cases := []struct {
		name     string
		ref      EntityReference
		expected EntityKey
	}{
		{"article", EntityReference{Kind: EntityArticle, ID: 123}, "a123"},
		{"article_with_page", EntityReference{Kind: EntityArticle, ID: 123, ArticlePageID: 3}, "p3"},
		{"article_with_category_only", EntityReference{Kind: EntityArticle, ID: 123, CategoryID: 9}, "a123"},
		{"category", EntityReference{Kind: EntityCategory, ID: 9}, "c9"},
		{"author", EntityReference{Kind: EntityAuthor, ID: 4}, "u4"},
		{"archive_month", EntityReference{Kind: EntityArchive, Archive: ArchiveDate{Year: 2023, Month: 7}}, "y2023/07"},
		{"archive_year", EntityReference{Kind: EntityArchive, Archive: ArchiveDate{Year: 2023}}, "y2023"},
		{"unknown", EntityReference{Kind: "widget", ID: 1}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ref.Key(); got != tc.expected {
				t.Errorf("Key() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestEntityTagsAreDistinct(t *testing.T) {
	kinds := []EntityKind{EntityArticle, EntityPage, EntityCategory, EntityAuthor, EntityArchive}
	seen := make(map[string]EntityKind)
	for _, kind := range kinds {
		tag := kind.Tag()
		if len(tag) != 1 {
			t.Errorf("%s tag %q is not one character", kind, tag)
		}
		if other, exists := seen[tag]; exists {
			t.Errorf("%s and %s share tag %q", kind, other, tag)
		}
		seen[tag] = kind
	}
}

func TestEntityReferenceString(t *testing.T) {
	ref := EntityReference{Kind: EntityArticle, ID: 5, ArticlePageID: 2, CategoryID: 7}
	if got := ref.String(); got != "article(5 page=2 category=7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPageScope(t *testing.T) {
	if PageScope(NoPagePath) != DefaultScope {
		t.Error("PageScope(NoPagePath) should be the default scope")
	}
	if PageScope(0) != DefaultScope {
		t.Error("PageScope(0) should be the default scope")
	}
	scope := PageScope(54)
	if scope.Default || scope.Page != 54 || scope.String() != "54" {
		t.Errorf("PageScope(54) = %+v", scope)
	}
	if DefaultScope.String() != "default" {
		t.Errorf("DefaultScope.String() = %q", DefaultScope.String())
	}
	// The sentinel page and the default scope share -1 but must stay distinct.
	if (ScopeID{Page: NoPagePath}) == DefaultScope {
		t.Error("page -1 scope must not equal the default scope")
	}
}
