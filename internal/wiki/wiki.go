// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wiki supplies article metadata collections. The built-in sample of
// Wikipedia articles is embedded in the binary; other collections can be read
// from a YAML or JSON file or downloaded over HTTP.
package wiki

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wiki-search/internal/httputil"
	"github.com/pdiddy/wiki-search/internal/index"
	"github.com/pdiddy/wiki-search/pkg/types"
)

//go:embed articles.yaml
var sampleYAML []byte

// Format identifies the encoding of a collection.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// maxBody caps the size of a downloaded collection.
const maxBody = 32 << 20

// ErrInvalidRecord reports a record that cannot be indexed.
var ErrInvalidRecord = errors.New("invalid article record")

// ArticleMetadata returns a fresh copy of the built-in sample collection.
func ArticleMetadata() []types.Article {
	records, err := Decode(sampleYAML, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("wiki: embedded collection is corrupt: %v", err))
	}
	return records
}

// TitleToInfoMap returns the title index of the built-in collection.
func TitleToInfoMap() types.TitleInfo {
	return index.TitleToInfo(ArticleMetadata())
}

// KeywordToTitlesMap returns the keyword index of the built-in collection.
func KeywordToTitlesMap() types.KeywordIndex {
	return index.KeywordToTitles(ArticleMetadata())
}

// Decode parses a collection encoded as format and validates it.
func Decode(data []byte, format Format) ([]types.Article, error) {
	var records []types.Article
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing YAML collection: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing JSON collection: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported collection format %q", format)
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Validate rejects records with an empty title or a negative length.
func Validate(records []types.Article) error {
	for i, r := range records {
		if strings.TrimSpace(r.Title) == "" {
			return fmt.Errorf("record %d: empty title: %w", i, ErrInvalidRecord)
		}
		if r.Length < 0 {
			return fmt.Errorf("record %d (%s): negative length %d: %w", i, r.Title, r.Length, ErrInvalidRecord)
		}
	}
	return nil
}

// LoadFile reads a collection from a .yaml, .yml, or .json file.
func LoadFile(p string) ([]types.Article, error) {
	format, err := formatFromExt(filepath.Ext(p))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", p, err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}
	return Decode(data, format)
}

// Fetch downloads a collection from url. The format comes from the response
// Content-Type, falling back to the URL path extension, then YAML.
func Fetch(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig, log *zap.Logger) ([]types.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries, log)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	format := formatFromContentType(resp.Header.Get("Content-Type"))
	if format == "" {
		if f, err := formatFromExt(path.Ext(req.URL.Path)); err == nil {
			format = f
		} else {
			format = FormatYAML
		}
	}
	return Decode(data, format)
}

func formatFromExt(ext string) (Format, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported collection extension %q: use .yaml, .yml, or .json", ext)
	}
}

func formatFromContentType(ct string) Format {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch {
	case mt == "application/json" || strings.HasSuffix(mt, "+json"):
		return FormatJSON
	case strings.Contains(mt, "yaml"):
		return FormatYAML
	}
	return ""
}
