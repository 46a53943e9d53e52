package matcher

import (
	"testing"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

func TestArticleMatcher(t *testing.T) {
	articleMatcher := NewArticleMatcher()

	cases := []struct {
		name          string
		path          string
		expectedRef   types.EntityReference
		expectedSpan  string
		expectedMatch bool
	}{
		{
			name:          "article_view",
			path:          "tabid/54/articleType/ArticleView/articleId/123/default.aspx",
			expectedRef:   types.EntityReference{Kind: types.EntityArticle, ID: 123},
			expectedSpan:  "/articleType/ArticleView/articleId/123",
			expectedMatch: true,
		},
		{
			name:          "short_id_form",
			path:          "/id/77",
			expectedRef:   types.EntityReference{Kind: types.EntityArticle, ID: 77},
			expectedSpan:  "/id/77",
			expectedMatch: true,
		},
		{
			name:          "with_page_and_category",
			path:          "articleType/ArticleView/articleId/5/PageId/9/categoryId/3",
			expectedRef:   types.EntityReference{Kind: types.EntityArticle, ID: 5, ArticlePageID: 9, CategoryID: 3},
			expectedSpan:  "articleType/ArticleView/articleId/5/PageId/9/categoryId/3",
			expectedMatch: true,
		},
		{
			name:          "case_insensitive",
			path:          "/ARTICLETYPE/articleview/ARTICLEID/8",
			expectedRef:   types.EntityReference{Kind: types.EntityArticle, ID: 8},
			expectedSpan:  "/ARTICLETYPE/articleview/ARTICLEID/8",
			expectedMatch: true,
		},
		{name: "tabid_is_not_id", path: "/tabid/54/default.aspx"},
		{name: "zero_id", path: "/id/0"},
		{name: "category_view", path: "articleType/CategoryView/categoryId/3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match, ok := articleMatcher.Match(tc.path)
			if ok != tc.expectedMatch {
				t.Fatalf("Match(%q) ok = %v, want %v", tc.path, ok, tc.expectedMatch)
			}
			if !ok {
				return
			}
			if match.Reference != tc.expectedRef {
				t.Errorf("Reference = %+v, want %+v", match.Reference, tc.expectedRef)
			}
			if span := tc.path[match.Start:match.End]; span != tc.expectedSpan {
				t.Errorf("span = %q, want %q", span, tc.expectedSpan)
			}
		})
	}
}

func TestAuthorAndCategoryMatchers(t *testing.T) {
	authorMatch, ok := NewAuthorMatcher().Match("tabid/54/articleType/AuthorView/authorId/4")
	if !ok || authorMatch.Reference != (types.EntityReference{Kind: types.EntityAuthor, ID: 4}) {
		t.Errorf("author Match = %+v, %v", authorMatch, ok)
	}
	if !authorMatch.LeadingSlash {
		t.Error("author match should include the leading slash")
	}

	categoryMatch, ok := NewCategoryMatcher().Match("articleType/CategoryView/categoryId/12")
	if !ok || categoryMatch.Reference != (types.EntityReference{Kind: types.EntityCategory, ID: 12}) {
		t.Errorf("category Match = %+v, %v", categoryMatch, ok)
	}
	if categoryMatch.LeadingSlash {
		t.Error("category match has no leading slash")
	}

	if _, ok := NewCategoryMatcher().Match("articleType/AuthorView/authorId/4"); ok {
		t.Error("category matcher matched an author path")
	}
}

func TestArchiveMatcher(t *testing.T) {
	archiveMatcher := NewArchiveMatcher()

	cases := []struct {
		name          string
		path          string
		expected      types.ArchiveDate
		expectedMatch bool
	}{
		{name: "month_then_year", path: "/articleType/ArchiveView/month/7/year/2023", expected: types.ArchiveDate{Year: 2023, Month: 7}, expectedMatch: true},
		{name: "year_then_month", path: "/articleType/ArchiveView/year/2023/month/7", expected: types.ArchiveDate{Year: 2023, Month: 7}, expectedMatch: true},
		{name: "year_only", path: "articleType/ArchiveView/year/2023", expected: types.ArchiveDate{Year: 2023}, expectedMatch: true},
		{name: "no_year", path: "articleType/ArchiveView/month/7"},
		{name: "bare", path: "articleType/ArchiveView"},
		{name: "year_1753", path: "articleType/ArchiveView/year/1753"},
		{name: "year_1754", path: "articleType/ArchiveView/year/1754", expected: types.ArchiveDate{Year: 1754}, expectedMatch: true},
		{name: "month_13", path: "articleType/ArchiveView/month/13/year/2023"},
		{name: "month_12", path: "articleType/ArchiveView/month/12/year/2023", expected: types.ArchiveDate{Year: 2023, Month: 12}, expectedMatch: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match, ok := archiveMatcher.Match(tc.path)
			if ok != tc.expectedMatch {
				t.Fatalf("Match(%q) ok = %v, want %v", tc.path, ok, tc.expectedMatch)
			}
			if ok && match.Reference.Archive != tc.expected {
				t.Errorf("Archive = %+v, want %+v", match.Reference.Archive, tc.expected)
			}
		})
	}
}

func TestArchiveMatcherSpanCoversDate(t *testing.T) {
	path := "tabid/54/articleType/ArchiveView/year/2023/month/07/default.aspx"
	match, ok := NewArchiveMatcher().Match(path)
	if !ok {
		t.Fatal("expected match")
	}
	if got := match.Replace(path, "/2023/07"); got != "tabid/54/2023/07/default.aspx" {
		t.Errorf("Replace() = %q", got)
	}
}

func TestIsEditPath(t *testing.T) {
	cases := map[string]bool{
		"tabid/54/ctl/Edit/mid/371/articleId/5": true,
		"moduleId/12":                           true,
		"tabid/54/moduleid/12/":                 true,
		"tabid/54/articleType/ArticleView/articleId/5": false,
		"tabid/54/amid/12":                      false,
	}
	for path, expected := range cases {
		if got := IsEditPath(path); got != expected {
			t.Errorf("IsEditPath(%q) = %v, want %v", path, got, expected)
		}
	}
}

func TestIsRawModulePath(t *testing.T) {
	cases := map[string]bool{
		"articleType/ArticleView/articleId/5": true,
		"ctl/edit/mid/371":                    true,
		"news/my-title":                       false,
		"2023/07":                             false,
	}
	for path, expected := range cases {
		if got := IsRawModulePath(path); got != expected {
			t.Errorf("IsRawModulePath(%q) = %v, want %v", path, got, expected)
		}
	}
}

func TestParseArchiveSegments(t *testing.T) {
	cases := []struct {
		name             string
		segments         []string
		expected         types.ArchiveDate
		expectedConsumed int
		expectedOK       bool
	}{
		{name: "year_month", segments: []string{"2023", "07"}, expected: types.ArchiveDate{Year: 2023, Month: 7}, expectedConsumed: 2, expectedOK: true},
		{name: "year_only", segments: []string{"2023"}, expected: types.ArchiveDate{Year: 2023}, expectedConsumed: 1, expectedOK: true},
		{name: "year_then_words", segments: []string{"2023", "summer"}, expected: types.ArchiveDate{Year: 2023}, expectedConsumed: 1, expectedOK: true},
		{name: "month_13_left_over", segments: []string{"2023", "13"}, expected: types.ArchiveDate{Year: 2023}, expectedConsumed: 1, expectedOK: true},
		{name: "month_12", segments: []string{"2023", "12"}, expected: types.ArchiveDate{Year: 2023, Month: 12}, expectedConsumed: 2, expectedOK: true},
		{name: "three_digit_month", segments: []string{"2023", "123"}, expected: types.ArchiveDate{Year: 2023}, expectedConsumed: 1, expectedOK: true},
		{name: "year_1753", segments: []string{"1753"}},
		{name: "year_1754", segments: []string{"1754"}, expected: types.ArchiveDate{Year: 1754}, expectedConsumed: 1, expectedOK: true},
		{name: "five_digits", segments: []string{"20231"}},
		{name: "not_leading", segments: []string{"news", "2023"}},
		{name: "labelled_year", segments: []string{"year", "2023"}},
		{name: "empty", segments: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			date, consumed, ok := ParseArchiveSegments(tc.segments)
			if ok != tc.expectedOK {
				t.Fatalf("ok = %v, want %v", ok, tc.expectedOK)
			}
			if date != tc.expected || consumed != tc.expectedConsumed {
				t.Errorf("got (%+v, %d), want (%+v, %d)", date, consumed, tc.expected, tc.expectedConsumed)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	got := SplitPath("/news//2023/07/")
	if len(got) != 3 || got[0] != "news" || got[2] != "07" {
		t.Errorf("SplitPath() = %q", got)
	}
}
