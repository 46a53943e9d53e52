package rewrite

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/index"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/matcher"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// QueryStringRequest is an incoming friendly path to resolve.
type QueryStringRequest struct {
	// Segments is the request path after the page path, split on '/'.
	Segments []string
	// PageID is the page the host identified, or types.NoPagePath.
	PageID      types.PageID
	PortalID    types.PortalID
	Options     options.FriendlyURLOptions
	CultureCode string
	Alias       string
}

// QueryStringResult is the outcome of TransformFriendlyURLToQueryString.
type QueryStringResult struct {
	// Query is the query fragment to rewrite to; empty when nothing matched.
	Query string
	// Status is always http.StatusOK; redirects are decided by CheckForRedirect.
	Status int
	// Location is always empty.
	Location string
	// Outcome is "exact", "prefix", "archive" or "miss"; empty when the
	// path was not considered.
	Outcome  string
	Messages []string
}

// TransformFriendlyURLToQueryString resolves a friendly path to the query
// string the module understands. The longest leading run of segments that
// is a known friendly path wins; otherwise a leading year (and month) is
// read as an archive. Segments after the match are appended as generic
// parameters.
func (p *Provider) TransformFriendlyURLToQueryString(ctx context.Context, request QueryStringRequest) QueryStringResult {
	result := QueryStringResult{Status: http.StatusOK}

	path := strings.Join(request.Segments, "/")
	if len(request.Segments) == 0 || matcher.IsRawModulePath(path) {
		return result
	}

	state := p.state.Load()
	config := state.config
	pageID := request.PageID
	if pageID.IsNoPagePath() {
		pageID = config.SubstitutePage(pageID)
		result.Messages = append(result.Messages, fmt.Sprintf("site root match, using page %s", pageID))
	}

	query, skipUpTo := "", -1
	snapshot, err := p.snapshot(ctx, state, request.PortalID, pageID, request.Options)
	if err != nil {
		result.Messages = append(result.Messages, "friendly url index unavailable: "+err.Error())
	} else if matched, skip, ok := snapshot.LongestPrefix(request.Segments); ok {
		query, skipUpTo = matched, skip
		result.Outcome = outcomePrefix
		if skip == len(request.Segments)-1 {
			result.Outcome = outcomeExact
		}
		result.Messages = append(result.Messages,
			fmt.Sprintf("item matched: %s (path %s)", strings.Join(request.Segments[:skip+1], "/"), path))
	}

	if skipUpTo < 0 {
		if archiveQuery, consumed, ok := p.archiveQuery(ctx, config, pageID, request.Segments); ok {
			query, skipUpTo = archiveQuery, consumed-1
			result.Outcome = outcomeArchive
			result.Messages = append(result.Messages, "archive matched: "+path)
		}
	}

	if skipUpTo < 0 {
		result.Outcome = outcomeMiss
		p.metrics.lookups.WithLabelValues(outcomeMiss).Inc()
		return result
	}

	result.Query = query + p.params.QueryFromParameters(request.Segments, skipUpTo)
	p.metrics.lookups.WithLabelValues(result.Outcome).Inc()
	p.logger.Debug("friendly url resolved",
		zap.String("path", path),
		zap.String("query", result.Query),
		zap.String("outcome", result.Outcome),
		zap.Stringer("page", pageID))
	return result
}

// archiveQuery reads a leading year[/month] as an archive listing. It is
// only accepted on pages that host the module.
func (p *Provider) archiveQuery(ctx context.Context, config *options.Configuration, pageID types.PageID, segments []string) (string, int, bool) {
	date, consumed, ok := matcher.ParseArchiveSegments(segments)
	if !ok {
		return "", 0, false
	}
	if p.pages == nil || !pageID.Valid() {
		return "", 0, false
	}
	hasModule, err := p.pages.HasModule(ctx, pageID)
	if err != nil {
		p.logger.Warn("module lookup failed", zap.Stringer("page", pageID), zap.Error(err))
		return "", 0, false
	}
	if !hasModule {
		return "", 0, false
	}
	ref := types.EntityReference{Kind: types.EntityArchive, Archive: date}
	return index.TabPrefix(config, pageID) + index.ItemQuery(ref), consumed, true
}
