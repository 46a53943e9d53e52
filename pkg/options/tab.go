package options

import "github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"

// TabURLOptions is the style configuration in force for one page scope.
// Values are copied out of the Configuration and never shared mutably.
type TabURLOptions struct {
	Scope             types.ScopeID
	StartingArticleID int
	ArticleURLStyle   ArticleURLStyle
	ArticleURLSource  ArticleURLSource
	PageURLStyle      PageURLStyle
	AuthorURLStyle    AuthorURLStyle
	CategoryURLStyle  CategoryURLStyle
}

// DefaultTabURLOptions returns the built-in defaults for the default scope.
func DefaultTabURLOptions() TabURLOptions {
	return TabURLOptions{
		Scope:            types.DefaultScope,
		ArticleURLStyle:  ArticleTitleStyle,
		ArticleURLSource: ArticleSourceTitle,
		PageURLStyle:     PageTitleStyle,
		AuthorURLStyle:   AuthorDisplayNameStyle,
		CategoryURLStyle: CategoryNameStyle,
	}
}
