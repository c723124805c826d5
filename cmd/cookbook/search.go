package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"hearthside/cookbook/pkg/cli"
	"hearthside/cookbook/pkg/index"
)

var searchFlags struct {
	indexPath string
	tag       string
	group     string
	limit     int
	format    string
}

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search a recipe index",
	Long: `Search a recipe index previously written with --index.

Terms are matched case-insensitively against recipe titles and tags;
every term must match. Tag and group filters require exact labels.

Examples:
  # Title and tag search
  cookbook search --index recipes.db pumpkin soup

  # All recipes carrying a tag
  cookbook search --index recipes.db --tag vegetarian

  # JSON output for scripting
  cookbook search --index recipes.db --format json soup`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchFlags.indexPath, "index", "", "SQLite index file (required)")
	searchCmd.Flags().StringVar(&searchFlags.tag, "tag", "", "filter by tag")
	searchCmd.Flags().StringVar(&searchFlags.group, "group", "", "filter by group label")
	searchCmd.Flags().IntVar(&searchFlags.limit, "limit", 0, "max results (default 50)")
	searchCmd.Flags().StringVar(&searchFlags.format, "format", "text", "output format: text, json")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchFlags.indexPath == "" {
		return fmt.Errorf("--index must be specified")
	}
	if _, err := os.Stat(searchFlags.indexPath); err != nil {
		return fmt.Errorf("index %s not found (write one with --index first)", searchFlags.indexPath)
	}

	cfg := index.DefaultSQLiteConfig()
	cfg.Path = searchFlags.indexPath
	store, err := index.NewSQLiteStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer store.Close()

	query := index.Query{
		Terms: args,
		Tag:   searchFlags.tag,
		Group: searchFlags.group,
		Limit: searchFlags.limit,
	}

	entries, err := store.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, map[string]interface{}{
			"count":   len(entries),
			"results": entries,
		})
	}
	return outputSearchText(os.Stdout, entries)
}

func outputSearchText(w io.Writer, entries []*index.Entry) error {
	fmt.Fprintf(w, "Total results: %d\n", len(entries))
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No recipes found.")
		return nil
	}

	for i, entry := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "Title: %s\n", entry.Title)
		fmt.Fprintf(w, "Path: %s\n", entry.Path)
		if len(entry.Tags) > 0 {
			fmt.Fprintf(w, "Tags: %s\n", strings.Join(entry.Tags, ", "))
		}
		if len(entry.Groups) > 0 {
			fmt.Fprintf(w, "Groups: %s\n", strings.Join(entry.Groups, ", "))
		}
		fmt.Fprintf(w, "Ingredients: %d, Steps: %d\n", entry.Ingredients, entry.Steps)
	}

	return nil
}
