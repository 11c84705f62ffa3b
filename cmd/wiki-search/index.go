// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wiki-search/internal/index"
	"github.com/pdiddy/wiki-search/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Print the title and keyword indices built from a collection",
	Long: `Index builds the title-to-info and keyword-to-titles indices from the
selected collection and prints them as YAML or JSON.`,
	RunE: runIndex,
}

// indexDump is the printed form of the two indices.
type indexDump struct {
	Titles   types.TitleInfo    `json:"titles,omitempty" yaml:"titles,omitempty"`
	Keywords types.KeywordIndex `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	which, _ := cmd.Flags().GetString("which")
	format, _ := cmd.Flags().GetString("format")

	records, source, err := loadRecords(context.Background(), cfg.Search)
	if err != nil {
		return err
	}
	logLoaded(source, len(records))

	var dump indexDump
	switch which {
	case "titles":
		dump.Titles = index.TitleToInfo(records)
	case "keywords":
		dump.Keywords = index.KeywordToTitles(records)
	case "both", "":
		dump.Titles = index.TitleToInfo(records)
		dump.Keywords = index.KeywordToTitles(records)
	default:
		return fmt.Errorf("unsupported index %q: use titles, keywords, or both", which)
	}
	return writeIndex(dump, format, os.Stdout)
}

func writeIndex(dump indexDump, format string, w io.Writer) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func init() {
	indexCmd.Flags().String("which", "both", "index to print: titles, keywords, or both")
	indexCmd.Flags().String("format", "yaml", "output format: yaml or json")
	addSourceFlags(indexCmd)

	rootCmd.AddCommand(indexCmd)
}
