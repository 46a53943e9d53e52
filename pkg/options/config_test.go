package options

import (
	"strings"
	"testing"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

func TestNewConfigurationDefaults(t *testing.T) {
	config, err := NewConfiguration(nil)
	if err != nil {
		t.Fatalf("NewConfiguration(nil) error = %v", err)
	}

	if config.NoPagePathPage() != types.NoPagePath {
		t.Errorf("NoPagePathPage() = %d, want %d", config.NoPagePathPage(), types.NoPagePath)
	}
	if config.RedirectURLs() {
		t.Error("RedirectURLs() = true, want false")
	}
	if config.StartingArticleID() != 0 {
		t.Errorf("StartingArticleID() = %d, want 0", config.StartingArticleID())
	}

	defaults := config.Resolve(types.PageID(54))
	if !defaults.Scope.Default {
		t.Errorf("Resolve(54).Scope = %v, want default scope", defaults.Scope)
	}
	if defaults.ArticleURLStyle != ArticleTitleStyle {
		t.Errorf("ArticleURLStyle = %q, want %q", defaults.ArticleURLStyle, ArticleTitleStyle)
	}
	if len(config.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want none", config.Warnings())
	}
}

func TestNewConfigurationAttributes(t *testing.T) {
	config, err := NewConfiguration(map[string]string{
		"noDnnPagePathTabId": "77",
		"RedirectUrls":       "True",
		"startingArticleId":  "100",
		"urlPath":            "/news/",
	})
	if err != nil {
		t.Fatalf("NewConfiguration() error = %v", err)
	}

	if config.NoPagePathPage() != 77 {
		t.Errorf("NoPagePathPage() = %d, want 77", config.NoPagePathPage())
	}
	if !config.IsNoPagePathPage(77) {
		t.Error("IsNoPagePathPage(77) = false, want true")
	}
	if config.IsNoPagePathPage(types.NoPagePath) {
		t.Error("IsNoPagePathPage(-1) = true, want false")
	}
	if !config.RedirectURLs() {
		t.Error("RedirectURLs() = false, want true")
	}
	if config.StartingArticleID() != 100 {
		t.Errorf("StartingArticleID() = %d, want 100", config.StartingArticleID())
	}
	if config.URLPath() != "news" {
		t.Errorf("URLPath() = %q, want %q", config.URLPath(), "news")
	}
	if got := config.Resolve(types.PageID(1)).StartingArticleID; got != 100 {
		t.Errorf("Resolve(1).StartingArticleID = %d, want 100", got)
	}
}

func TestNewConfigurationScopedStyles(t *testing.T) {
	config := MustNewConfiguration(map[string]string{
		"articleUrlStyle":  "54:BlogStyle;-1:IdStyle",
		"categoryUrlStyle": "60=CategoryHierarchy, CategoryName",
		"authorUrlStyle":   "username",
	})

	cases := []struct {
		name             string
		page             types.PageID
		expectedScope    types.ScopeID
		expectedArticle  ArticleURLStyle
		expectedCategory CategoryURLStyle
	}{
		{
			name:             "page_with_article_style",
			page:             54,
			expectedScope:    types.PageScope(54),
			expectedArticle:  ArticleBlogStyle,
			expectedCategory: CategoryNameStyle,
		},
		{
			name:             "page_with_category_style_inherits_article_default",
			page:             60,
			expectedScope:    types.PageScope(60),
			expectedArticle:  ArticleIDStyle,
			expectedCategory: CategoryHierarchyStyle,
		},
		{
			name:             "unconfigured_page",
			page:             99,
			expectedScope:    types.DefaultScope,
			expectedArticle:  ArticleIDStyle,
			expectedCategory: CategoryNameStyle,
		},
		{
			name:             "no_page_path_without_path_less_page",
			page:             types.NoPagePath,
			expectedScope:    types.DefaultScope,
			expectedArticle:  ArticleIDStyle,
			expectedCategory: CategoryNameStyle,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tabOptions := config.Resolve(tc.page)
			if tabOptions.Scope != tc.expectedScope {
				t.Errorf("Scope: got %v, want %v", tabOptions.Scope, tc.expectedScope)
			}
			if tabOptions.ArticleURLStyle != tc.expectedArticle {
				t.Errorf("ArticleURLStyle: got %q, want %q", tabOptions.ArticleURLStyle, tc.expectedArticle)
			}
			if tabOptions.CategoryURLStyle != tc.expectedCategory {
				t.Errorf("CategoryURLStyle: got %q, want %q", tabOptions.CategoryURLStyle, tc.expectedCategory)
			}
			if tabOptions.AuthorURLStyle != AuthorUserNameStyle {
				t.Errorf("AuthorURLStyle: got %q, want %q", tabOptions.AuthorURLStyle, AuthorUserNameStyle)
			}
		})
	}

	scopes := config.Scopes()
	if len(scopes) != 3 || !scopes[0].Default || scopes[1].Page != 54 || scopes[2].Page != 60 {
		t.Errorf("Scopes() = %v, want [default 54 60]", scopes)
	}
}

func TestResolveNoPagePathUsesPathLessPage(t *testing.T) {
	config := MustNewConfiguration(map[string]string{
		"noDnnPagePathTabId": "54",
		"articleUrlStyle":    "54:BlogStyle",
	})

	tabOptions := config.Resolve(types.NoPagePath)
	if tabOptions.Scope != types.PageScope(54) {
		t.Errorf("Resolve(-1).Scope = %v, want page 54", tabOptions.Scope)
	}
	if tabOptions.ArticleURLStyle != ArticleBlogStyle {
		t.Errorf("Resolve(-1).ArticleURLStyle = %q, want %q", tabOptions.ArticleURLStyle, ArticleBlogStyle)
	}
	if config.SubstitutePage(types.NoPagePath) != 54 {
		t.Errorf("SubstitutePage(-1) = %d, want 54", config.SubstitutePage(types.NoPagePath))
	}
	if config.SubstitutePage(12) != 12 {
		t.Errorf("SubstitutePage(12) = %d, want 12", config.SubstitutePage(12))
	}
}

func TestResolveNoPagePathFallsBackToDefault(t *testing.T) {
	// The path-less page has no scope of its own.
	config := MustNewConfiguration(map[string]string{
		"noDnnPagePathTabId": "54",
		"articleUrlStyle":    "BlogStyle",
	})

	tabOptions := config.Resolve(types.NoPagePath)
	if !tabOptions.Scope.Default {
		t.Errorf("Resolve(-1).Scope = %v, want default", tabOptions.Scope)
	}
	if tabOptions.ArticleURLStyle != ArticleBlogStyle {
		t.Errorf("ArticleURLStyle = %q, want %q", tabOptions.ArticleURLStyle, ArticleBlogStyle)
	}
}

func TestNewConfigurationWarnings(t *testing.T) {
	config := MustNewConfiguration(map[string]string{
		"articleUrlStyle":   "FancyStyle;abc:BlogStyle;0:TitleStyle",
		"startingArticleId": "many",
		"redirectUrls":      "perhaps",
	})

	warnings := config.Warnings()
	if len(warnings) != 5 {
		t.Fatalf("Warnings() = %d entries, want 5: %v", len(warnings), warnings)
	}
	if !strings.Contains(strings.Join(warnings, "\n"), `unknown style "FancyStyle"`) {
		t.Errorf("Warnings() missing unknown style entry: %v", warnings)
	}
	if config.Resolve(1).ArticleURLStyle != ArticleTitleStyle {
		t.Errorf("unknown style should keep default, got %q", config.Resolve(1).ArticleURLStyle)
	}
}

func TestNewConfigurationInvalidIgnoreRegex(t *testing.T) {
	if _, err := NewConfiguration(map[string]string{"ignoreRedirectRegex": "[broken"}); err == nil {
		t.Error("NewConfiguration() with invalid regex should return error")
	}
}

func TestIgnoreRedirect(t *testing.T) {
	config := MustNewConfiguration(map[string]string{"ignoreRedirectRegex": `/print\.aspx`})
	if !config.IgnoreRedirect("https://example.com/News/Print.aspx?articleId=5") {
		t.Error("IgnoreRedirect() should match case-insensitively")
	}
	if config.IgnoreRedirect("https://example.com/News/default.aspx?articleId=5") {
		t.Error("IgnoreRedirect() matched an unrelated URL")
	}
}

func TestPortalSettingsRoundTrip(t *testing.T) {
	attributes := map[string]string{
		"noDnnPagePathTabId": "54",
		"redirectUrls":       "true",
		"startingArticleId":  "12",
		"urlPath":            "news",
		"articleUrlStyle":    "54:BlogStyle",
		"authorUrlStyle":     "UserName",
	}
	config := MustNewConfiguration(attributes)

	settings := config.PortalSettings()
	if _, ok := settings[AttrCategoryURLStyle]; ok {
		t.Error("PortalSettings() should omit empty style attributes")
	}

	rebuilt := MustNewConfiguration(settings)
	if rebuilt.NoPagePathPage() != 54 || !rebuilt.RedirectURLs() || rebuilt.StartingArticleID() != 12 {
		t.Errorf("rebuilt configuration differs: page=%d redirect=%v start=%d",
			rebuilt.NoPagePathPage(), rebuilt.RedirectURLs(), rebuilt.StartingArticleID())
	}
	if rebuilt.Resolve(54).ArticleURLStyle != ArticleBlogStyle {
		t.Errorf("rebuilt Resolve(54).ArticleURLStyle = %q", rebuilt.Resolve(54).ArticleURLStyle)
	}
}
