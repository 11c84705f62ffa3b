// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/wiki-search/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the SQLite article store (ingest, retrieve, export)",
	Long: `Store keeps article collections in a local SQLite database under
<data-dir>/index/articles.db. Use subcommands to ingest a collection, query
it, or export it.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a collection into the store",
	Long: `Ingest reads a collection (the built-in sample, --data, or --data-url)
and replaces the named dataset with it. An unchanged collection is skipped.`,
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	records, source, err := loadRecords(ctx, cfg.Search)
	if err != nil {
		return err
	}
	logLoaded(source, len(records))

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.Ingest(ctx, "", source, records, os.Stdout)
	if err != nil {
		return err
	}
	logger.Debug("ingest finished",
		zap.String("dataset", summary.Dataset),
		zap.Int("articles", summary.Articles),
		zap.Int("removed", summary.Removed),
		zap.Bool("skipped", summary.Skipped),
	)
	return nil
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the store with full-text search and filters",
	Long: `Retrieve searches stored articles by full-text query over titles and
keywords, by exact keyword, by author, by maximum length, or a combination.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --keyword, --author, or --max-length")
	}

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No articles found")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-45s  %-20s  %-10s  %8s  %s\n",
		"#", "Title", "Author", "Timestamp", "Length", "Keywords")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-45s  %-20s  %-10d  %8d  %s\n",
			i+1, truncate(r.Title, 45), truncate(r.Author, 20), r.Timestamp, r.Length,
			truncate(strings.Join(r.Keywords, ","), 20))
	}

	fmt.Fprintf(os.Stdout, "\n%d articles\n", len(results))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored articles to YAML or JSON",
	Long: `Export writes the dataset (or a filtered subset) to
<data-dir>/index/export.yaml or export.json. The file can be searched again
with --data.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = st.ExportYAML(context.Background(), opts)
	case "json":
		path, err = st.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	keyword, _ := cmd.Flags().GetString("keyword")
	author, _ := cmd.Flags().GetString("author")
	maxLength, _ := cmd.Flags().GetInt("max-length")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:      queryText,
		Keyword:    keyword,
		Author:     author,
		MaxLength:  maxLength,
		MaxResults: limit,
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("data-dir", "data", "base directory for the store (contains index/)")
	storeCmd.PersistentFlags().String("dataset", "wiki", "dataset name")

	addSourceFlags(storeIngestCmd)

	for _, c := range []*cobra.Command{storeRetrieveCmd, storeExportCmd} {
		c.Flags().String("query", "", "full-text query over titles and keywords")
		c.Flags().String("keyword", "", "filter by keyword")
		c.Flags().String("author", "", "filter by author (case-sensitive)")
		c.Flags().Int("max-length", 0, "filter by maximum article length (0 = no limit)")
	}
	storeRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeRetrieveCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
