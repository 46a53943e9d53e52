package rewrite

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/index"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/matcher"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// FriendlyURLRequest is one outgoing URL the host wants made friendly.
type FriendlyURLRequest struct {
	PageID   types.PageID
	PortalID types.PortalID
	// Path is the raw path produced by the host after its page path, e.g.
	// "articleType/ArticleView/articleId/123".
	Path           string
	Options        options.FriendlyURLOptions
	CultureCode    string
	EndingPageName string
}

// FriendlyURLResult is the outcome of ChangeFriendlyURL.
type FriendlyURLResult struct {
	Path           string
	EndingPageName string
	// UsePagePath is false when the page path must be left out of the URL.
	UsePagePath bool
	// Matcher names the matcher that rewrote the path; empty when unchanged.
	Matcher  string
	Messages []string
}

// Changed reports whether the path was rewritten.
func (r FriendlyURLResult) Changed() bool {
	return r.Matcher != ""
}

// ChangeFriendlyURL rewrites the first recognized raw module path inside
// request.Path into its friendly form. Edit control paths and paths no
// matcher can compose are returned unchanged.
func (p *Provider) ChangeFriendlyURL(ctx context.Context, request FriendlyURLRequest) FriendlyURLResult {
	result := FriendlyURLResult{
		Path:           request.Path,
		EndingPageName: request.EndingPageName,
		UsePagePath:    true,
	}
	if matcher.IsEditPath(request.Path) {
		return result
	}

	state := p.state.Load()
	var fragment string
	match, pathMatcher, ok := p.matchers.First(request.Path, func(candidate matcher.PathMatcher, match matcher.Match) bool {
		composed, ok := p.composeFragment(ctx, state, request, match.Reference)
		if !ok {
			result.Messages = append(result.Messages,
				fmt.Sprintf("%s matched %s but no friendly path is available", candidate.Name(), match.Reference))
			return false
		}
		fragment = composed
		return true
	})
	if !ok {
		return result
	}

	if match.LeadingSlash {
		fragment = "/" + fragment
	}
	rewritten := match.Replace(request.Path, fragment)
	result.Path = "/" + strings.TrimLeft(rewritten, "/")
	result.EndingPageName = ""
	result.UsePagePath = !state.config.IsNoPagePathPage(request.PageID)
	result.Matcher = pathMatcher.Name()
	result.Messages = append(result.Messages,
		fmt.Sprintf("%s rewritten by %s matcher: %s", match.Reference, pathMatcher.Name(), result.Path))

	p.metrics.rewrites.WithLabelValues(pathMatcher.Name()).Inc()
	p.logger.Debug("friendly url composed",
		zap.String("matcher", pathMatcher.Name()),
		zap.String("kind", string(pathMatcher.Kind())),
		zap.String("from", request.Path),
		zap.String("to", result.Path),
		zap.Stringer("page", request.PageID))
	return result
}

// composeFragment returns the friendly path for ref. Entity paths come from
// the page's index; when the entity is missing or the index is unavailable,
// id style paths are composed directly and other styles decline.
func (p *Provider) composeFragment(ctx context.Context, state *providerState, request FriendlyURLRequest, ref types.EntityReference) (string, bool) {
	config := state.config
	tab := config.Resolve(request.PageID)
	composer := index.NewComposer(config, tab, request.Options)

	if ref.Kind == types.EntityArchive {
		return composer.ArchivePath(ref.Archive), true
	}

	snapshot, err := p.snapshot(ctx, state, request.PortalID, request.PageID, request.Options)
	if err == nil {
		if path, ok := snapshot.FriendlyPath(ref.Key()); ok {
			return path, true
		}
	}

	switch ref.Kind {
	case types.EntityArticle:
		if ref.ArticlePageID == 0 && tab.ArticleURLStyle == options.ArticleIDStyle {
			return composer.ArticleIDPath(ref.ID), true
		}
	case types.EntityCategory:
		if tab.CategoryURLStyle == options.CategoryIDStyle {
			return composer.CategoryIDPath(ref.ID), true
		}
	case types.EntityAuthor:
		if tab.AuthorURLStyle == options.AuthorIDStyle {
			return composer.AuthorIDPath(ref.ID), true
		}
	}
	return "", false
}
