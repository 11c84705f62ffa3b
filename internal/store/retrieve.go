// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/wiki-search/pkg/types"
)

// QueryOptions holds parameters for store queries.
type QueryOptions struct {
	// Dataset selects the collection. Empty uses the store default.
	Dataset string

	// Query is a full-text search over titles and keywords.
	Query string

	// Keyword keeps articles listing this keyword. It is lower-cased and
	// matched exactly, like a basic search.
	Keyword string

	// Author keeps articles by this author (case-sensitive).
	Author string

	// MaxLength keeps articles at or below this length. Zero means no limit.
	MaxLength int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Keyword == "" && q.Author == "" && q.MaxLength == 0
}

// QueryResult is a stored article with its position in the dataset.
type QueryResult struct {
	types.Article
	Dataset  string `json:"dataset" yaml:"dataset"`
	Position int    `json:"position" yaml:"position"`
}

// Retrieve queries the store with an optional full-text query and
// structured filters. Full-text results are ranked by relevance; others
// keep dataset order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}
	dataset := opts.Dataset
	if dataset == "" {
		dataset = s.dataset
	}

	terms := strings.Fields(opts.Query)
	var (
		qb        strings.Builder
		args      []any
		useFTS    = len(terms) > 0 && s.fts
		textQuery = len(terms) > 0 && !s.fts
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.title, a.author, a.timestamp, a.length, a.keywords, a.position
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			WHERE articles_fts MATCH ? AND a.dataset = ?`)
		args = append(args, ftsQuery(terms), dataset)
	} else {
		qb.WriteString(
			`SELECT a.title, a.author, a.timestamp, a.length, a.keywords, a.position
			FROM articles a
			WHERE a.dataset = ?`)
		args = append(args, dataset)
	}

	if textQuery {
		for _, term := range terms {
			qb.WriteString(` AND (a.title LIKE ? OR a.keywords_text LIKE ?)`)
			pattern := "%" + term + "%"
			args = append(args, pattern, pattern)
		}
	}

	if opts.Keyword != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(a.keywords) WHERE value = ?)`)
		args = append(args, strings.ToLower(opts.Keyword))
	}

	if opts.Author != "" {
		qb.WriteString(` AND a.author = ?`)
		args = append(args, opts.Author)
	}

	if opts.MaxLength > 0 {
		qb.WriteString(` AND a.length <= ?`)
		args = append(args, opts.MaxLength)
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.position`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		qr := QueryResult{Dataset: dataset}
		a, err := scanArticle(rows, &qr.Position)
		if err != nil {
			return nil, err
		}
		qr.Article = a
		results = append(results, qr)
	}

	return results, rows.Err()
}

// ftsQuery quotes each term as an FTS5 string so punctuation in titles
// ("dog-faced", "(ghost)") is tokenized instead of parsed as query syntax.
// Adjacent strings are ANDed, matching the LIKE fallback.
func ftsQuery(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}
