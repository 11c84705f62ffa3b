// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds the two lookup structures the search operations run
// against: title to article info, and keyword to titles.
package index

import "github.com/pdiddy/wiki-search/pkg/types"

// TitleToInfo maps each record's title to its author, timestamp, and length.
// When two records share a title the later one wins.
func TitleToInfo(records []types.Article) types.TitleInfo {
	info := make(types.TitleInfo, len(records))
	for _, r := range records {
		info[r.Title] = r.Info()
	}
	return info
}

// KeywordToTitles maps each keyword to the titles of the records listing it.
// Titles keep record order. A keyword listed twice by one record yields that
// title twice.
func KeywordToTitles(records []types.Article) types.KeywordIndex {
	idx := make(types.KeywordIndex)
	for _, r := range records {
		for _, kw := range r.Keywords {
			idx[kw] = append(idx[kw], r.Title)
		}
	}
	return idx
}
