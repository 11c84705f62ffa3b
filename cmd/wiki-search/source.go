// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/wiki-search/internal/store"
	"github.com/pdiddy/wiki-search/internal/wiki"
	"github.com/pdiddy/wiki-search/pkg/types"
)

const builtinSource = "built-in"

// addSourceFlags registers the flags that pick a collection.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", "", "YAML or JSON collection file (default: built-in sample)")
	cmd.Flags().String("data-url", "", "URL serving a YAML or JSON collection")
}

// commandConfig reads the config and applies the command's flag overrides.
func commandConfig(cmd *cobra.Command) (types.Config, error) {
	cfg, err := readConfig(viper.GetViper())
	if err != nil {
		return cfg, err
	}
	if f := cmd.Flags().Lookup("data"); f != nil && f.Changed {
		cfg.Search.DataFile = f.Value.String()
	}
	if f := cmd.Flags().Lookup("data-url"); f != nil && f.Changed {
		cfg.Search.DataURL = f.Value.String()
	}
	if f := cmd.Flags().Lookup("data-dir"); f != nil && f.Changed {
		cfg.Store.DataDir = f.Value.String()
	}
	if f := cmd.Flags().Lookup("dataset"); f != nil && f.Changed {
		cfg.Store.Dataset = f.Value.String()
	}
	return cfg, nil
}

// loadRecords returns the collection selected by cfg and a label naming
// where it came from. A URL wins over a file, which wins over the sample.
func loadRecords(ctx context.Context, cfg types.SearchConfig) ([]types.Article, string, error) {
	switch {
	case cfg.DataURL != "":
		client := &http.Client{Timeout: cfg.Timeout}
		records, err := wiki.Fetch(ctx, client, cfg.DataURL, cfg.HTTPConfig, logger)
		if err != nil {
			return nil, "", err
		}
		return records, cfg.DataURL, nil
	case cfg.DataFile != "":
		records, err := wiki.LoadFile(cfg.DataFile)
		if err != nil {
			return nil, "", err
		}
		return records, cfg.DataFile, nil
	default:
		return wiki.ArticleMetadata(), builtinSource, nil
	}
}

// loadStoredRecords reads a dataset back from the SQLite store.
func loadStoredRecords(ctx context.Context, cfg types.StoreConfig) ([]types.Article, string, error) {
	st, err := store.NewStore(cfg)
	if err != nil {
		return nil, "", err
	}
	defer st.Close()

	records, err := st.Records(ctx, "")
	if err != nil {
		return nil, "", err
	}
	return records, fmt.Sprintf("store:%s", st.Dataset()), nil
}

func logLoaded(source string, n int) {
	logger.Debug("loaded collection", zap.String("source", source), zap.Int("articles", n))
}
