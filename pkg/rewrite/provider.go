// Package rewrite is the friendly URL provider for the articles module.
// It rewrites the module's raw item paths into friendly paths, resolves
// incoming friendly paths back to query strings, and redirects legacy
// query string URLs to their friendly form.
//
// Every entry point fails soft: a value that cannot be parsed or an index
// that cannot be built leaves the URL unchanged. Collaborator errors are
// logged and never returned.
package rewrite

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/catalog"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/index"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/legacy"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/logging"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/matcher"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// Provider implements the three URL operations over an immutable
// Configuration. It is safe for concurrent use; Reconfigure swaps the
// configuration atomically.
type Provider struct {
	state         atomic.Pointer[providerState]
	reconfigureMu sync.Mutex

	catalog  catalog.Catalog
	pages    catalog.PageService
	builder  *index.Builder
	cache    *index.Cache
	matchers *matcher.Registry
	legacy   *legacy.Matcher
	params   ParameterComposer

	cacheTTL time.Duration
	logger   *zap.Logger
	metrics  *Metrics
}

// providerState pairs a configuration with the index cache generation it
// was published under. Snapshots built from config are only cached while
// generation is current.
type providerState struct {
	config     *options.Configuration
	generation uint64
}

// ProviderOption configures a provider.
type ProviderOption func(*Provider)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) ProviderOption {
	return func(p *Provider) {
		p.logger = logging.OrNop(logger)
	}
}

// WithMetrics sets the metrics collectors.
func WithMetrics(metrics *Metrics) ProviderOption {
	return func(p *Provider) {
		if metrics != nil {
			p.metrics = metrics
		}
	}
}

// WithCacheTTL expires index snapshots after d. Zero keeps them until the
// configuration changes.
func WithCacheTTL(d time.Duration) ProviderOption {
	return func(p *Provider) {
		p.cacheTTL = d
	}
}

// WithParameterComposer replaces the PairComposer used for leftover segments.
func WithParameterComposer(composer ParameterComposer) ProviderOption {
	return func(p *Provider) {
		if composer != nil {
			p.params = composer
		}
	}
}

// WithMatchers replaces the default matcher registry.
func WithMatchers(registry *matcher.Registry) ProviderOption {
	return func(p *Provider) {
		if registry != nil {
			p.matchers = registry
		}
	}
}

// NewProvider creates a provider. config must not be nil.
func NewProvider(config *options.Configuration, entities catalog.Catalog, pages catalog.PageService, opts ...ProviderOption) *Provider {
	p := &Provider{
		catalog:  entities,
		pages:    pages,
		builder:  index.NewBuilder(entities),
		matchers: matcher.NewDefaultRegistry(),
		legacy:   legacy.NewMatcher(),
		params:   PairComposer{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		p.metrics = NewMetrics(nil)
	}
	p.cache = index.NewCache(p.cacheTTL)
	p.state.Store(&providerState{config: config, generation: p.cache.Generation()})

	for _, warning := range config.Warnings() {
		p.logger.Warn("provider setting ignored", zap.String("detail", warning))
	}
	p.logger.Debug("provider ready", zap.Strings("matchers", p.matchers.List()))
	return p
}

// Configuration returns the configuration currently in force.
func (p *Provider) Configuration() *options.Configuration {
	return p.state.Load().config
}

// Reconfigure publishes a new configuration and discards every cached
// index snapshot. Calls already running finish with the configuration they
// started with.
func (p *Provider) Reconfigure(config *options.Configuration) {
	if config == nil {
		return
	}
	p.reconfigureMu.Lock()
	generation := p.cache.Invalidate()
	p.state.Store(&providerState{config: config, generation: generation})
	p.reconfigureMu.Unlock()

	for _, warning := range config.Warnings() {
		p.logger.Warn("provider setting ignored", zap.String("detail", warning))
	}
	p.logger.Info("provider reconfigured",
		zap.Int("scopes", len(config.Scopes())),
		zap.Uint64("generation", generation))
}

// PortalSettings returns the attribute set to persist for the portal.
func (p *Provider) PortalSettings() map[string]string {
	return p.Configuration().PortalSettings()
}

// AlwaysUsesPagePath reports whether every URL keeps its page path, which
// is the case unless a path-less page is configured.
func (p *Provider) AlwaysUsesPagePath() bool {
	return !p.Configuration().NoPagePathPage().Valid()
}

// Snapshot returns the index snapshot for a page, building it if needed.
func (p *Provider) Snapshot(ctx context.Context, portalID types.PortalID, pageID types.PageID, friendly options.FriendlyURLOptions) (*index.Snapshot, error) {
	return p.snapshot(ctx, p.state.Load(), portalID, pageID, friendly)
}

func (p *Provider) snapshot(ctx context.Context, state *providerState, portalID types.PortalID, pageID types.PageID, friendly options.FriendlyURLOptions) (*index.Snapshot, error) {
	config := state.config
	scope := index.Scope{Portal: portalID, Page: pageID, OptionsKey: index.OptionsKey(friendly)}
	composer := index.NewComposer(config, config.Resolve(pageID), friendly)
	tabPrefix := index.TabPrefix(config, pageID)

	snapshot, cached, err := p.cache.Get(ctx, scope, state.generation, func(ctx context.Context) (*index.Snapshot, error) {
		start := time.Now()
		snapshot, err := p.builder.Build(ctx, scope, composer, tabPrefix)
		p.metrics.observeBuild(time.Since(start), err)
		if err == nil {
			p.logger.Debug("index built",
				zap.Stringer("scope", scope),
				zap.Int("paths", snapshot.Len()),
				zap.Int("cached_scopes", p.cache.Len()),
				zap.Duration("elapsed", time.Since(start)))
		}
		return snapshot, err
	})
	if err != nil {
		p.logger.Warn("index unavailable", zap.Stringer("scope", scope), zap.Error(err))
		return nil, err
	}
	if cached {
		p.logger.Debug("index cache hit", zap.Stringer("scope", scope))
	}
	return snapshot, nil
}
