package rewrite

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/legacy"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// RedirectRequest is an incoming request that may use a legacy URL.
type RedirectRequest struct {
	PageID   types.PageID
	PortalID types.PortalID
	// Alias is the portal alias the request came in on, e.g. "example.com".
	Alias string
	// RequestURL is the full original request URL.
	RequestURL *url.URL
	// RawQuery overrides RequestURL.RawQuery when set. Parameter order matters.
	RawQuery string
	Options  options.FriendlyURLOptions
}

// RedirectResult is the outcome of CheckForRedirect.
type RedirectResult struct {
	Redirect bool
	// Location is the absolute URL to redirect to permanently.
	Location string
	Messages []string
}

// CheckForRedirect decides whether a legacy query string URL should be
// redirected permanently to its friendly form.
func (p *Provider) CheckForRedirect(ctx context.Context, request RedirectRequest) RedirectResult {
	var result RedirectResult

	state := p.state.Load()
	config := state.config
	if !config.RedirectURLs() {
		return result
	}

	rawQuery := request.RawQuery
	requestURL := ""
	if request.RequestURL != nil {
		requestURL = request.RequestURL.String()
		if rawQuery == "" {
			rawQuery = request.RequestURL.RawQuery
		}
	}
	if config.IgnoreRedirect(requestURL) {
		result.Messages = append(result.Messages, "redirect suppressed by ignore pattern: "+requestURL)
		return result
	}

	legacyRequest, ok := p.legacy.Match(rawQuery)
	if !ok {
		return result
	}
	pageID := config.SubstitutePage(request.PageID)
	target, ok := legacy.Resolve(legacyRequest, config.Resolve(pageID).StartingArticleID)
	if !ok {
		return result
	}
	result.Messages = append(result.Messages, fmt.Sprintf("identified as legacy %s url", target.Kind))

	friendlyPath := target.FriendlyPath
	if target.Key != "" {
		snapshot, err := p.snapshot(ctx, state, request.PortalID, pageID, request.Options)
		if err != nil {
			result.Messages = append(result.Messages, "friendly url index unavailable: "+err.Error())
			return result
		}
		friendlyPath, _ = snapshot.FriendlyPath(target.Key)
	}
	if friendlyPath == "" {
		return result
	}
	if target.PagePath != "" {
		friendlyPath += "/" + target.PagePath
	}

	location, err := p.redirectLocation(ctx, config, request, pageID, friendlyPath)
	if err != nil {
		p.logger.Warn("redirect location failed",
			zap.Stringer("page", pageID),
			zap.String("friendly_path", friendlyPath),
			zap.Error(err))
		return result
	}
	if location == "" {
		return result
	}

	result.Redirect = true
	result.Location = location
	result.Messages = append(result.Messages, "redirecting to "+location)
	p.metrics.redirects.WithLabelValues(string(target.Kind)).Inc()
	p.logger.Debug("legacy url redirected",
		zap.String("query", rawQuery),
		zap.String("location", location))
	return result
}

// redirectLocation composes the absolute target. The path-less page has no
// page URL to build on, so its target is assembled from the alias.
func (p *Provider) redirectLocation(ctx context.Context, config *options.Configuration, request RedirectRequest, pageID types.PageID, friendlyPath string) (string, error) {
	if config.IsNoPagePathPage(pageID) {
		scheme := "http"
		if request.RequestURL != nil && request.RequestURL.Scheme != "" {
			scheme = request.RequestURL.Scheme
		}
		return fmt.Sprintf("%s://%s/%s%s", scheme, strings.Trim(request.Alias, "/"), friendlyPath, request.Options.PageExtension), nil
	}
	if p.pages == nil {
		return "", fmt.Errorf("no page service configured")
	}
	return p.pages.NavigateURL(ctx, pageID, request.Alias, friendlyPath)
}
