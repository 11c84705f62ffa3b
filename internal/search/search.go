// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search answers keyword queries against the title and keyword
// indices and applies the advanced follow-up operations: article details,
// length filter, timestamp projection, favorite-author check, and a second
// keyword search appended to the first.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/wiki-search/internal/index"
	"github.com/pdiddy/wiki-search/pkg/types"
)

// ErrUnknownTitle is returned when a title has no entry in the title index.
var ErrUnknownTitle = errors.New("unknown title")

// Searcher holds the read-only indices that queries run against.
type Searcher struct {
	info     types.TitleInfo
	keywords types.KeywordIndex
}

// New builds both indices from records.
func New(records []types.Article) *Searcher {
	return NewFromIndex(index.TitleToInfo(records), index.KeywordToTitles(records))
}

// NewFromIndex wraps indices that were built elsewhere.
func NewFromIndex(info types.TitleInfo, keywords types.KeywordIndex) *Searcher {
	return &Searcher{info: info, keywords: keywords}
}

// TitleDetails pairs a title with its info. Slices of it keep title order.
type TitleDetails struct {
	Title string `json:"title" yaml:"title"`

	types.ArticleInfo `yaml:",inline"`
}

// TitleTimestamp pairs a title with its timestamp.
type TitleTimestamp struct {
	Title     string `json:"title" yaml:"title"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// Search returns the titles listed under keyword. The query is lower-cased
// before the exact lookup; index keys are used as stored. A miss returns an
// empty slice.
func (s *Searcher) Search(keyword string) []string {
	titles := s.keywords[strings.ToLower(keyword)]
	out := make([]string, len(titles))
	copy(out, titles)
	return out
}

func (s *Searcher) lookup(title string) (types.ArticleInfo, error) {
	info, ok := s.info[title]
	if !ok {
		return types.ArticleInfo{}, fmt.Errorf("%w: %q", ErrUnknownTitle, title)
	}
	return info, nil
}

// ArticleInfo returns the author, timestamp, and length of each title.
// Repeated titles appear once, at their first position.
func (s *Searcher) ArticleInfo(titles []string) ([]TitleDetails, error) {
	seen := make(map[string]bool, len(titles))
	out := make([]TitleDetails, 0, len(titles))
	for _, t := range titles {
		info, err := s.lookup(t)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, TitleDetails{Title: t, ArticleInfo: info})
	}
	return out, nil
}

// ArticleLength keeps the titles whose length is at most maxLength.
func (s *Searcher) ArticleLength(maxLength int, titles []string) ([]string, error) {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		info, err := s.lookup(t)
		if err != nil {
			return nil, err
		}
		if info.Length <= maxLength {
			out = append(out, t)
		}
	}
	return out, nil
}

// TitleTimestamp maps each title to its timestamp. Repeated titles appear
// once, at their first position.
func (s *Searcher) TitleTimestamp(titles []string) ([]TitleTimestamp, error) {
	seen := make(map[string]bool, len(titles))
	out := make([]TitleTimestamp, 0, len(titles))
	for _, t := range titles {
		info, err := s.lookup(t)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, TitleTimestamp{Title: t, Timestamp: info.Timestamp})
	}
	return out, nil
}

// FavoriteAuthor reports whether author wrote any of titles. The comparison
// is case-sensitive. Titles are checked in order and the first match wins.
func (s *Searcher) FavoriteAuthor(author string, titles []string) (bool, error) {
	for _, t := range titles {
		info, err := s.lookup(t)
		if err != nil {
			return false, err
		}
		if info.Author == author {
			return true, nil
		}
	}
	return false, nil
}

// MultipleKeywords returns titles followed by the results of searching
// keyword. Duplicates are kept and titles is not modified.
func (s *Searcher) MultipleKeywords(keyword string, titles []string) []string {
	more := s.Search(keyword)
	out := make([]string, 0, len(titles)+len(more))
	out = append(out, titles...)
	return append(out, more...)
}
