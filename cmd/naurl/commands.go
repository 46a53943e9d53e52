package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/rewrite"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/settings"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", int(types.NoPagePath), "Page id the URL belongs to (-1 for a URL without page path)")
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	cmd.Flags().BoolP("verbose", "v", false, "Print diagnostic messages")
}

func pageFlag(cmd *cobra.Command) types.PageID {
	page, _ := cmd.Flags().GetInt("page")
	return types.PageID(page)
}

func printMessages(cmd *cobra.Command, messages []string) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		return
	}
	for _, message := range messages {
		fmt.Printf("  - %s\n", message)
	}
}

func friendlyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friendly <raw-path>",
		Short: "Rewrite a raw module path into its friendly form",
		Long: `Rewrite a raw module path into its friendly form.

Example:
  naurl friendly --page 54 articleType/ArticleView/articleId/123
  naurl friendly --page 54 articleType/ArchiveView/year/2023/month/07`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			result := a.provider.ChangeFriendlyURL(context.Background(), rewrite.FriendlyURLRequest{
				PageID:   pageFlag(cmd),
				PortalID: a.portal,
				Path:     args[0],
				Options:  a.config.friendlyOptions(),
			})

			if format, _ := cmd.Flags().GetString("format"); format == "json" {
				return printJSON(result)
			}
			if !result.Changed() {
				fmt.Printf("%s (unchanged)\n", result.Path)
			} else {
				fmt.Printf("%s (matcher: %s, page path: %t)\n", result.Path, result.Matcher, result.UsePagePath)
			}
			printMessages(cmd, result.Messages)
			return nil
		},
	}
	addPageFlags(cmd)
	return cmd
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <friendly-path>",
		Short: "Resolve a friendly path to the module query string",
		Long: `Resolve a friendly path to the module query string.

Example:
  naurl resolve --page 54 my-first-article
  naurl resolve --page 54 2023/07`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			result := a.provider.TransformFriendlyURLToQueryString(context.Background(), rewrite.QueryStringRequest{
				Segments: strings.Split(strings.Trim(args[0], "/"), "/"),
				PageID:   pageFlag(cmd),
				PortalID: a.portal,
				Options:  a.config.friendlyOptions(),
				Alias:    a.config.Alias,
			})

			if format, _ := cmd.Flags().GetString("format"); format == "json" {
				return printJSON(result)
			}
			if result.Query == "" {
				fmt.Printf("no match (%s)\n", result.Outcome)
			} else {
				fmt.Printf("%s (%s)\n", result.Query, result.Outcome)
			}
			printMessages(cmd, result.Messages)
			return nil
		},
	}
	addPageFlags(cmd)
	return cmd
}

func redirectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redirect <request-url>",
		Short: "Check whether a legacy URL should be redirected",
		Long: `Check whether a legacy query string URL should be redirected to its
friendly form.

Example:
  naurl redirect --page 54 "http://localhost/default.aspx?articleType=ArticleView&articleId=123"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			requestURL, err := url.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parsing request url: %w", err)
			}
			alias := a.config.Alias
			if requestURL.Host != "" {
				alias = requestURL.Host
			}

			result := a.provider.CheckForRedirect(context.Background(), rewrite.RedirectRequest{
				PageID:     pageFlag(cmd),
				PortalID:   a.portal,
				Alias:      alias,
				RequestURL: requestURL,
				Options:    a.config.friendlyOptions(),
			})

			if format, _ := cmd.Flags().GetString("format"); format == "json" {
				return printJSON(result)
			}
			if result.Redirect {
				fmt.Printf("301 %s\n", result.Location)
			} else {
				fmt.Println("no redirect")
			}
			printMessages(cmd, result.Messages)
			return nil
		},
	}
	addPageFlags(cmd)
	return cmd
}

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "List the friendly paths of a page",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			page := a.provider.Configuration().SubstitutePage(pageFlag(cmd))
			snapshot, err := a.provider.Snapshot(context.Background(), a.portal, page, a.config.friendlyOptions())
			if err != nil {
				return err
			}
			entries := snapshot.Entries()

			if format, _ := cmd.Flags().GetString("format"); format == "json" {
				return printJSON(entries)
			}
			fmt.Printf("Page %s: %d friendly paths\n\n", page, snapshot.Len())
			for _, entry := range entries {
				fmt.Printf("  %-40s %-8s %s\n", entry.Path, entry.Key, entry.Query)
			}
			return nil
		},
	}
	addPageFlags(cmd)
	return cmd
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the effective provider settings",
		Long: `Show the effective provider settings as a settings file, followed by
any values that were ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			config := a.provider.Configuration()
			data, err := settings.Marshal(a.portal, a.provider.PortalSettings())
			if err != nil {
				return err
			}

			if a.settingsPath != "" {
				fmt.Printf("# %s\n", a.settingsPath)
			}
			fmt.Print(string(data))

			if scopes := config.Scopes(); len(scopes) > 1 {
				fmt.Println("\n# scopes")
				for _, scope := range scopes {
					tab := config.Resolve(scope.Page)
					if scope.Default {
						tab = config.Resolve(types.PageID(0))
					}
					fmt.Printf("#   %-8s article=%s page=%s author=%s category=%s\n",
						scope, tab.ArticleURLStyle, tab.PageURLStyle, tab.AuthorURLStyle, tab.CategoryURLStyle)
				}
			}
			if warnings := config.Warnings(); len(warnings) > 0 {
				fmt.Println("\n# ignored")
				for _, warning := range warnings {
					fmt.Printf("#   %s\n", warning)
				}
			}
			return nil
		},
	}
	return cmd
}
