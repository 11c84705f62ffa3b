// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for wiki-search.
// Article is the raw metadata record supplied by a data source; ArticleInfo,
// TitleInfo, and KeywordIndex are the lookup structures built from it.
package types

// Article holds the metadata for one article in the collection.
type Article struct {
	// Title identifies the article. Titles are expected to be unique; when
	// they are not, later records win in TitleInfo.
	Title string `json:"title" yaml:"title"`

	// Author is the last editor recorded for the article.
	Author string `json:"author" yaml:"author"`

	// Timestamp is the Unix time of the last edit.
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`

	// Length is the article length in bytes.
	Length int `json:"length" yaml:"length"`

	// Keywords lists the search terms that lead to this article.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// ArticleInfo is the per-title summary stored in TitleInfo.
type ArticleInfo struct {
	Author    string `json:"author" yaml:"author"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	Length    int    `json:"length" yaml:"length"`
}

// Info returns the ArticleInfo view of a record.
func (a Article) Info() ArticleInfo {
	return ArticleInfo{Author: a.Author, Timestamp: a.Timestamp, Length: a.Length}
}

// TitleInfo maps an article title to its author, timestamp, and length.
type TitleInfo map[string]ArticleInfo

// KeywordIndex maps a keyword to the titles listing it, in record order.
type KeywordIndex map[string][]string
