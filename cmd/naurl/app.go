package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/catalog"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/logging"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/rewrite"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/settings"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// app is the wired provider behind every command.
type app struct {
	config       cliConfig
	logger       *zap.Logger
	site         *catalog.Site
	provider     *rewrite.Provider
	registry     *prometheus.Registry
	portal       types.PortalID
	settingsPath string
}

func newApp(cmd *cobra.Command) (*app, error) {
	config, err := loadCLIConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(config.LogLevel, config.LogFormat)
	if err != nil {
		return nil, err
	}

	site, err := catalog.LoadSite(config.Site)
	if err != nil {
		return nil, err
	}

	settingsPath := config.Settings
	if settingsPath == "" {
		settingsPath, err = settings.Find(filepath.Dir(config.Site))
		if err != nil && !errors.Is(err, settings.ErrNoSettingsFile) {
			return nil, err
		}
	}

	providerConfig := options.MustNewConfiguration(nil)
	var portal types.PortalID
	if settingsPath != "" {
		loaded, err := settings.Load(settingsPath)
		if err != nil {
			return nil, err
		}
		if providerConfig, err = loaded.Configuration(); err != nil {
			return nil, fmt.Errorf("%s: %w", settingsPath, err)
		}
		portal = loaded.Portal
		logger.Debug("settings loaded", zap.String("path", settingsPath), zap.String("fingerprint", loaded.Fingerprint))
	} else {
		logger.Info("no settings file, using defaults", zap.String("site", config.Site))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	provider := rewrite.NewProvider(providerConfig, site, site,
		rewrite.WithLogger(logger),
		rewrite.WithMetrics(rewrite.NewMetrics(registry)),
		rewrite.WithCacheTTL(config.CacheTTL))

	return &app{
		config:       config,
		logger:       logger,
		site:         site,
		provider:     provider,
		registry:     registry,
		portal:       portal,
		settingsPath: settingsPath,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
