// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Request is one basic search plus its advanced option.
type Request struct {
	Keyword string
	Option  Option

	// Value is the option parameter: a maximum length for OptionLength,
	// an author for OptionAuthor, a keyword for OptionKeyword.
	Value string
}

// IsEmpty reports whether the request has no keyword.
func (r Request) IsEmpty() bool {
	return strings.TrimSpace(r.Keyword) == ""
}

// Result is the outcome of a Request. Exactly one of Titles, Details, and
// Timestamps is set, depending on the option.
type Result struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Option  Option `json:"option" yaml:"option"`

	Titles     []string         `json:"titles,omitempty" yaml:"titles,omitempty"`
	Details    []TitleDetails   `json:"details,omitempty" yaml:"details,omitempty"`
	Timestamps []TitleTimestamp `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`

	// FavoriteAuthor and HasFavorite are set for OptionAuthor.
	FavoriteAuthor string `json:"favorite_author,omitempty" yaml:"favorite_author,omitempty"`
	HasFavorite    bool   `json:"has_favorite,omitempty" yaml:"has_favorite,omitempty"`
}

// Empty reports whether the result holds no articles.
func (r Result) Empty() bool {
	switch r.Option {
	case OptionInfo:
		return len(r.Details) == 0
	case OptionTimestamp:
		return len(r.Timestamps) == 0
	default:
		return len(r.Titles) == 0
	}
}

// Run performs the basic search for req.Keyword and applies req.Option.
// An Option of zero is treated as OptionNone.
func (s *Searcher) Run(req Request) (Result, error) {
	if req.Option == 0 {
		req.Option = OptionNone
	}
	if !req.Option.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownOption, int(req.Option))
	}

	res := Result{Keyword: req.Keyword, Option: req.Option}
	articles := s.Search(req.Keyword)

	var err error
	switch req.Option {
	case OptionInfo:
		res.Details, err = s.ArticleInfo(articles)
	case OptionLength:
		maxLength, perr := strconv.Atoi(strings.TrimSpace(req.Value))
		if perr != nil {
			return Result{}, fmt.Errorf("parsing maximum length %q: %w", req.Value, perr)
		}
		res.Titles, err = s.ArticleLength(maxLength, articles)
	case OptionTimestamp:
		res.Timestamps, err = s.TitleTimestamp(articles)
	case OptionAuthor:
		res.Titles = articles
		res.FavoriteAuthor = req.Value
		res.HasFavorite, err = s.FavoriteAuthor(req.Value, articles)
	case OptionKeyword:
		res.Titles = s.MultipleKeywords(req.Value, articles)
	case OptionNone:
		res.Titles = articles
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
