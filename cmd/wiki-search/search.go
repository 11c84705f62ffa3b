// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wiki-search/internal/search"
	"github.com/pdiddy/wiki-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search articles by keyword, optionally refined by an advanced option",
	Long: `Search looks up a keyword (case-insensitive) in the keyword index and
applies an advanced option to the matching titles:

  1. info       author, timestamp, and length of each article
  2. length     keep articles at or below --value bytes
  3. timestamp  title and timestamp of each article
  4. author     report whether --value wrote one of the articles
  5. keyword    append the results of searching --value
  6. none       the matching titles only (default)

Without a keyword argument the search is asked for interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	if loadPath, _ := cmd.Flags().GetString("load"); loadPath != "" {
		return showQueryFile(cmd, loadPath)
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var (
		articles []types.Article
		source   string
	)
	if fromStore, _ := cmd.Flags().GetBool("from-store"); fromStore {
		articles, source, err = loadStoredRecords(ctx, cfg.Store)
	} else {
		articles, source, err = loadRecords(ctx, cfg.Search)
	}
	if err != nil {
		return err
	}
	logLoaded(source, len(articles))

	searcher := search.New(articles)

	var req search.Request
	interactive := len(args) == 0
	if interactive {
		req, err = askRequest(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	} else {
		req, err = requestFromFlags(cmd, args[0])
		if err != nil {
			return err
		}
	}
	if req.IsEmpty() {
		return fmt.Errorf("keyword is empty: provide a keyword to search for")
	}

	res, err := searcher.Run(req)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := search.WriteQueryFile(savePath, source, req, res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved search to %s\n", savePath)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(res, os.Stdout)
	}
	if interactive {
		fmt.Println()
	}
	search.FormatText(res, os.Stdout)
	return nil
}

// askRequest prompts for the search on r and w. Input that ends early is
// reported as a cancelled search.
func askRequest(r io.Reader, w io.Writer) (search.Request, error) {
	req, err := search.NewPrompter(r, w).Ask()
	if search.IsEOF(err) {
		return req, fmt.Errorf("search cancelled: input ended before all answers were given")
	}
	return req, err
}

func requestFromFlags(cmd *cobra.Command, keyword string) (search.Request, error) {
	optionText, _ := cmd.Flags().GetString("option")
	value, _ := cmd.Flags().GetString("value")

	opt, err := search.ParseOption(optionText)
	if err != nil {
		return search.Request{}, err
	}
	if opt.NeedsValue() && strings.TrimSpace(value) == "" {
		return search.Request{}, fmt.Errorf("option %s requires --value", opt)
	}
	return search.Request{Keyword: keyword, Option: opt, Value: value}, nil
}

func showQueryFile(cmd *cobra.Command, path string) error {
	qf, err := search.ReadQueryFile(path)
	if err != nil {
		return err
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(qf.Result, os.Stdout)
	}
	fmt.Fprintf(os.Stderr, "Search for %q saved %s from %s\n",
		qf.Query.Keyword, qf.Summary.Timestamp.Format("2006-01-02 15:04:05"), qf.Summary.Source)
	search.FormatText(qf.Result, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().String("option", "none", "advanced option: 1-6 or info, length, timestamp, author, keyword, none")
	searchCmd.Flags().String("value", "", "parameter for the option: max length, author, or second keyword")
	searchCmd.Flags().Bool("json", false, "output the result as JSON")
	searchCmd.Flags().Bool("from-store", false, "search the dataset held in the SQLite store")
	searchCmd.Flags().String("data-dir", "data", "store base directory (with --from-store)")
	searchCmd.Flags().String("dataset", "wiki", "store dataset name (with --from-store)")
	searchCmd.Flags().String("save", "", "save the search and its result to a YAML file")
	searchCmd.Flags().String("load", "", "show a search saved with --save instead of searching")
	addSourceFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}
