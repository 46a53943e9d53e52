package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
)

// envPrefix namespaces environment overrides, e.g. NAURL_SITE.
const envPrefix = "NAURL"

// cliConfig holds the settings shared by every command. Values come from
// flags, NAURL_* environment variables and an optional config file, in
// that order of precedence.
type cliConfig struct {
	Site      string        `mapstructure:"site"`
	Settings  string        `mapstructure:"settings"`
	Alias     string        `mapstructure:"alias"`
	LogLevel  string        `mapstructure:"log-level"`
	LogFormat string        `mapstructure:"log-format"`
	CacheTTL  time.Duration `mapstructure:"cache-ttl"`

	WordSeparator string `mapstructure:"word-separator"`
	MaxLength     int    `mapstructure:"max-length"`
	LowerCase     bool   `mapstructure:"lower-case"`
	PageExtension string `mapstructure:"page-extension"`
	IllegalChars  string `mapstructure:"illegal-chars"`

	Listen string `mapstructure:"listen"`
}

// friendlyOptions returns the slug options the host would pass per request.
func (c cliConfig) friendlyOptions() options.FriendlyURLOptions {
	return options.FriendlyURLOptions{
		WordSeparator:  c.WordSeparator,
		MaxLength:      c.MaxLength,
		ForceLowerCase: c.LowerCase,
		PageExtension:  c.PageExtension,
		IllegalChars:   c.IllegalChars,
	}
}

// addGlobalFlags registers the flags every command understands.
func addGlobalFlags(cmd *cobra.Command) {
	defaults := options.DefaultFriendlyURLOptions()
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file (yaml, json or toml)")
	flags.String("site", "site.yaml", "Site catalog file (yaml, json or jsonc)")
	flags.String("settings", "", "Provider settings file; searched next to the site file when empty")
	flags.String("alias", "localhost", "Portal alias used for absolute URLs")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
	flags.Duration("cache-ttl", 0, "Expire index snapshots after this long (0 keeps them until settings change)")
	flags.String("word-separator", defaults.WordSeparator, "Separator between slug words")
	flags.Int("max-length", defaults.MaxLength, "Maximum slug length (0 for no limit)")
	flags.Bool("lower-case", defaults.ForceLowerCase, "Lower-case composed slugs")
	flags.String("page-extension", defaults.PageExtension, "Extension appended to path-less redirect targets")
	flags.String("illegal-chars", defaults.IllegalChars, "Characters removed from slugs")
}

// loadCLIConfig resolves the command configuration.
func loadCLIConfig(cmd *cobra.Command) (cliConfig, error) {
	reader := viper.New()
	reader.SetEnvPrefix(envPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	reader.AutomaticEnv()

	if err := reader.BindPFlags(cmd.Flags()); err != nil {
		return cliConfig{}, fmt.Errorf("binding flags: %w", err)
	}

	if configFile := reader.GetString("config"); configFile != "" {
		reader.SetConfigFile(configFile)
		if err := reader.ReadInConfig(); err != nil {
			return cliConfig{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var config cliConfig
	if err := reader.Unmarshal(&config); err != nil {
		return cliConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if config.Site == "" {
		return cliConfig{}, errors.New("--site is required")
	}
	return config, nil
}
