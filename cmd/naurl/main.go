package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "naurl",
		Short: "Friendly URL provider for news articles",
		Long: `naurl rewrites the raw article, category, author and archive URLs of a
news articles module into friendly paths, resolves friendly paths back to
module query strings and redirects legacy query string URLs.

The site catalog (pages, articles, categories, authors) is read from a YAML
or JSON file; provider settings from a settings file next to it.

Example:
  naurl friendly --site site.yaml --page 54 articleType/ArticleView/articleId/123
  naurl resolve --site site.yaml --page 54 my-first-article
  naurl serve --site site.yaml --listen :8080`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(friendlyCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(redirectCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
