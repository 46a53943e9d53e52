package index

import (
	"context"
	"errors"
	"testing"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/catalog"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// stubCatalog is a test double implementing catalog.Catalog.
type stubCatalog struct {
	articles   []catalog.Article
	categories []catalog.Category
	authors    []catalog.Author
	err        error
}

func (s *stubCatalog) Articles(ctx context.Context, _ types.PortalID, _ types.PageID) ([]catalog.Article, error) {
	return s.articles, s.err
}
func (s *stubCatalog) Categories(ctx context.Context, _ types.PortalID, _ types.PageID) ([]catalog.Category, error) {
	return s.categories, nil
}
func (s *stubCatalog) Authors(ctx context.Context, _ types.PortalID, _ types.PageID) ([]catalog.Author, error) {
	return s.authors, nil
}

func buildTestSnapshot(t *testing.T, tabPrefix string) *Snapshot {
	t.Helper()
	stub := &stubCatalog{
		articles: []catalog.Article{
			{ID: 123, Title: "Hello World", Pages: []catalog.ArticlePage{
				{ID: 3, Number: 2, Title: "Part Two"},
				{ID: 2, Number: 1, Title: "Intro"},
			}},
			{ID: 124, Title: "Hello World"},
		},
		categories: []catalog.Category{{ID: 4, Name: "Sport"}},
		authors:    []catalog.Author{{ID: 7, DisplayName: "Jo Bloggs"}},
	}
	snapshot, err := NewBuilder(stub).Build(context.Background(), Scope{Page: 54}, testComposer(nil), tabPrefix)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return snapshot
}

func TestBuilderBuild(t *testing.T) {
	snapshot := buildTestSnapshot(t, "")

	cases := []struct {
		key           types.EntityKey
		expectedPath  string
		expectedQuery string
	}{
		{"a123", "hello-world", "&articleType=ArticleView&articleId=123"},
		{"a124", "hello-world-124", "&articleType=ArticleView&articleId=124"},
		{"p2", "hello-world", "&articleType=ArticleView&articleId=123"},
		{"p3", "hello-world/part-two", "&articleType=ArticleView&articleId=123&PageId=3"},
		{"c4", "category/sport", "&articleType=CategoryView&categoryId=4"},
		{"u7", "author/jo-bloggs", "&articleType=AuthorView&authorId=7"},
	}

	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			path, ok := snapshot.FriendlyPath(tc.key)
			if !ok || path != tc.expectedPath {
				t.Fatalf("FriendlyPath(%q) = %q, %v; want %q", tc.key, path, ok, tc.expectedPath)
			}
			query, ok := snapshot.Query(path)
			if !ok || query != tc.expectedQuery {
				t.Errorf("Query(%q) = %q, %v; want %q", path, query, ok, tc.expectedQuery)
			}
		})
	}

	if snapshot.Len() != 5 {
		t.Errorf("Len() = %d, want 5", snapshot.Len())
	}
	if snapshot.BuiltAt.IsZero() {
		t.Error("BuiltAt not set")
	}
	if len(snapshot.Entries()) != 6 {
		t.Errorf("Entries() = %d, want 6", len(snapshot.Entries()))
	}
}

func TestBuilderTabPrefix(t *testing.T) {
	snapshot := buildTestSnapshot(t, "?tabid=54")
	query, _ := snapshot.Query("category/sport")
	if query != "?tabid=54&articleType=CategoryView&categoryId=4" {
		t.Errorf("Query() = %q", query)
	}
}

func TestBuilderPropagatesListingErrors(t *testing.T) {
	listingErr := errors.New("database down")
	_, err := NewBuilder(&stubCatalog{err: listingErr}).Build(context.Background(), Scope{Page: 1}, testComposer(nil), "")
	if !errors.Is(err, listingErr) {
		t.Errorf("Build() error = %v, want wrapped listing error", err)
	}
}

func TestSnapshotQueryIsCaseInsensitive(t *testing.T) {
	snapshot := buildTestSnapshot(t, "")
	if _, ok := snapshot.Query("/Hello-World/"); !ok {
		t.Error("Query() should ignore case and surrounding slashes")
	}
}

func TestSnapshotLongestPrefix(t *testing.T) {
	snapshot := newSnapshot(Scope{Page: 1})
	snapshot.add("c1", "news/sports", "&short", "-", 1)
	snapshot.add("c2", "news/sports/2024", "&long", "-", 2)

	cases := []struct {
		name          string
		segments      []string
		expectedQuery string
		expectedSkip  int
		expectedOK    bool
	}{
		{name: "longer_key_wins", segments: []string{"news", "sports", "2024", "extra"}, expectedQuery: "&long", expectedSkip: 2, expectedOK: true},
		{name: "exact_short", segments: []string{"News", "Sports"}, expectedQuery: "&short", expectedSkip: 1, expectedOK: true},
		{name: "short_with_remainder", segments: []string{"news", "sports", "2023"}, expectedQuery: "&short", expectedSkip: 1, expectedOK: true},
		{name: "miss", segments: []string{"weather"}, expectedSkip: -1},
		{name: "empty", segments: nil, expectedSkip: -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, skip, ok := snapshot.LongestPrefix(tc.segments)
			if ok != tc.expectedOK || query != tc.expectedQuery || skip != tc.expectedSkip {
				t.Errorf("LongestPrefix(%q) = (%q, %d, %v), want (%q, %d, %v)",
					tc.segments, query, skip, ok, tc.expectedQuery, tc.expectedSkip, tc.expectedOK)
			}
		})
	}
}

func TestSnapshotCollisionSuffixes(t *testing.T) {
	snapshot := newSnapshot(Scope{Page: 1})
	first := snapshot.add("a1", "title", "&q1", "-", 1)
	second := snapshot.add("a2", "title", "&q2", "-", 2)
	third := snapshot.add("a3", "title-2", "&q3", "-", 3)
	fourth := snapshot.add("a2x", "title", "&q4", "-", 2)

	if first != "title" || second != "title-2" || third != "title-2-3" || fourth != "title-2-2" {
		t.Errorf("paths = %q %q %q %q", first, second, third, fourth)
	}
	if snapshot.Len() != 4 {
		t.Errorf("Len() = %d, want 4", snapshot.Len())
	}
}
