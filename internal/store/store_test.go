// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wiki-search/internal/wiki"
	"github.com/pdiddy/wiki-search/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(types.StoreConfig{DataDir: dir, MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func ingestWiki(t *testing.T, s *Store) {
	t.Helper()
	var out bytes.Buffer
	summary, err := s.Ingest(context.Background(), "", "built-in", wiki.ArticleMetadata(), &out)
	require.NoError(t, err)
	require.Equal(t, 49, summary.Articles)
}

func titles(results []QueryResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Title
	}
	return out
}

// --- schema ---

func TestNewStoreCreatesDatabase(t *testing.T) {
	s, dir := testStore(t)
	assert.FileExists(t, filepath.Join(dir, indexDir, dbFile))
	assert.Equal(t, "wiki", s.Dataset())
	assert.Equal(t, 20, s.maxResults)
}

func TestNewStoreReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := types.StoreConfig{DataDir: dir, Dataset: "sample"}

	s1, err := NewStore(cfg)
	require.NoError(t, err)
	_, err = s1.Ingest(context.Background(), "", "built-in", wiki.ArticleMetadata(), &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewStore(cfg)
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.Records(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, records, 49)
}

// --- ingest ---

func TestIngestRoundTrip(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	records, err := s.Records(context.Background(), "wiki")
	require.NoError(t, err)
	assert.Equal(t, wiki.ArticleMetadata(), records)
}

func TestIngestSkipsUnchanged(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	var out bytes.Buffer
	summary, err := s.Ingest(context.Background(), "wiki", "built-in", wiki.ArticleMetadata(), &out)
	require.NoError(t, err)
	assert.True(t, summary.Skipped)
	assert.Contains(t, out.String(), "skipped wiki")
}

func TestIngestReplacesChanged(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	smaller := wiki.ArticleMetadata()[:3]
	var out bytes.Buffer
	summary, err := s.Ingest(context.Background(), "wiki", "built-in", smaller, &out)
	require.NoError(t, err)
	assert.False(t, summary.Skipped)
	assert.Equal(t, 3, summary.Articles)
	assert.Equal(t, 49, summary.Removed)
	assert.Contains(t, out.String(), "updated wiki")

	records, err := s.Records(context.Background(), "wiki")
	require.NoError(t, err)
	assert.Equal(t, smaller, records)
}

func TestIngestSeparateDatasets(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	other := []types.Article{{Title: "an article title", Author: "andrea", Timestamp: 1234567890, Length: 103, Keywords: []string{"words"}}}
	_, err := s.Ingest(context.Background(), "fake", "test", other, &bytes.Buffer{})
	require.NoError(t, err)

	records, err := s.Records(context.Background(), "fake")
	require.NoError(t, err)
	assert.Equal(t, other, records)

	records, err = s.Records(context.Background(), "wiki")
	require.NoError(t, err)
	assert.Len(t, records, 49)
}

func TestRecordsUnknownDataset(t *testing.T) {
	s, _ := testStore(t)
	_, err := s.Records(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestIngestCancelledContext(t *testing.T) {
	s, _ := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Ingest(ctx, "", "built-in", wiki.ArticleMetadata(), &bytes.Buffer{})
	require.Error(t, err)
}

// --- retrieve ---

func TestRetrieveFilters(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{
			name: "keyword",
			opts: QueryOptions{Keyword: "Dog"},
			want: []string{"Black dog (ghost)", "Mexican dog-faced bat", "Dalmatian (dog)", "Guide dog", "Sun dog"},
		},
		{
			name: "keyword and max length",
			opts: QueryOptions{Keyword: "dog", MaxLength: 8000},
			want: []string{"Mexican dog-faced bat", "Guide dog"},
		},
		{
			name: "author",
			opts: QueryOptions{Author: "Jafeluv"},
			want: []string{"1986 in music", "1962 in country music", "1996 in music"},
		},
		{
			name: "author is case-sensitive",
			opts: QueryOptions{Author: "jafeluv"},
			want: []string{},
		},
		{
			name: "max results",
			opts: QueryOptions{Keyword: "music", MaxResults: 2},
			want: []string{"List of Canadian musicians", "French pop music"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Retrieve(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(results))
		})
	}
}

func TestRetrieveFullText(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	results, err := s.Retrieve(context.Background(), QueryOptions{Query: "soccer"})
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"Spain national beach soccer team", "Will Johnson (soccer)", "Steven Cohen (soccer)"},
		titles(results))

	results, err = s.Retrieve(context.Background(), QueryOptions{Query: "travel"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Thug outlaw69", results[0].Author)
	assert.Equal(t, 34, results[0].Position)
	assert.Equal(t, "wiki", results[0].Dataset)
}

func TestRetrievePunctuatedQuery(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	tests := []struct {
		query string
		want  []string
	}{
		{"dog-faced", []string{"Mexican dog-faced bat"}},
		{"dog (ghost)", []string{"Black dog (ghost)"}},
		{"Dog-Faced bat", []string{"Mexican dog-faced bat"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := s.Retrieve(context.Background(), QueryOptions{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(results))
		})
	}

	for _, q := range []string{"C#", `say "hi"`, "a*b OR", "NEAR(x"} {
		_, err := s.Retrieve(context.Background(), QueryOptions{Query: q})
		assert.NoError(t, err, q)
	}
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"dog-faced"`, ftsQuery([]string{"dog-faced"}))
	assert.Equal(t, `"dog" "(ghost)"`, ftsQuery([]string{"dog", "(ghost)"}))
	assert.Equal(t, `"say" """hi"""`, ftsQuery([]string{"say", `"hi"`}))
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{}.IsEmpty())
	assert.True(t, QueryOptions{Dataset: "wiki", MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{Keyword: "dog"}.IsEmpty())
	assert.False(t, QueryOptions{MaxLength: 10}.IsEmpty())
}

// --- FTS availability ---

func countTriggers(t *testing.T, s *Store) int {
	t.Helper()
	n, err := s.triggerCount()
	require.NoError(t, err)
	return n
}

func TestDisableFTSFallsBackToLike(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	require.NoError(t, s.disableFTS())
	assert.False(t, s.fts)
	assert.Equal(t, 0, countTriggers(t, s))

	smaller := wiki.ArticleMetadata()[:5]
	_, err := s.Ingest(context.Background(), "wiki", "built-in", smaller, &bytes.Buffer{})
	require.NoError(t, err)

	results, err := s.Retrieve(context.Background(), QueryOptions{Query: "dog-faced"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mexican dog-faced bat"}, titles(results))
}

func TestReopenRestoresFTSSync(t *testing.T) {
	dir := t.TempDir()
	cfg := types.StoreConfig{DataDir: dir}

	s1, err := NewStore(cfg)
	require.NoError(t, err)
	ingestWiki(t, s1)
	require.NoError(t, s1.disableFTS())
	_, err = s1.Ingest(context.Background(), "", "built-in", wiki.ArticleMetadata()[:5], &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewStore(cfg)
	require.NoError(t, err)
	defer s2.Close()
	if s2.fts {
		assert.Equal(t, 3, countTriggers(t, s2))
	}

	results, err := s2.Retrieve(context.Background(), QueryOptions{Query: "dog"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Black dog (ghost)", "Mexican dog-faced bat"}, titles(results))

	ingestWiki(t, s2)
	results, err = s2.Retrieve(context.Background(), QueryOptions{Query: "travel"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Time travel"}, titles(results))
}

func TestIsMissingModule(t *testing.T) {
	assert.True(t, isMissingModule(errors.New("no such module: fts5")))
	assert.False(t, isMissingModule(errors.New("no such table: articles")))
	assert.False(t, isMissingModule(nil))
}

// --- export ---

func TestExportYAMLLoadsAsCollection(t *testing.T) {
	s, _ := testStore(t)
	ingestWiki(t, s)

	path, err := s.ExportYAML(context.Background(), QueryOptions{Keyword: "school"})
	require.NoError(t, err)

	records, err := wiki.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Edogawa, Tokyo", records[0].Title)
}

func TestExportJSON(t *testing.T) {
	s, dir := testStore(t)
	ingestWiki(t, s)

	path, err := s.ExportJSON(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, indexDir, "export.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n"))

	records, err := wiki.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 49)
}
