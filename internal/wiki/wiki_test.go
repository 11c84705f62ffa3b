// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wiki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wiki-search/internal/httputil"
	"github.com/pdiddy/wiki-search/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 0
}

func TestArticleMetadata(t *testing.T) {
	records := ArticleMetadata()
	require.Len(t, records, 49)
	assert.Equal(t, types.Article{
		Title:     "Time travel",
		Author:    "Thug outlaw69",
		Timestamp: 1140826049,
		Length:    35170,
		Keywords:  []string{"time", "travel", "physics", "fiction"},
	}, records[34])

	// Each call returns an independent copy.
	records[0].Title = "changed"
	assert.Equal(t, "List of Canadian musicians", ArticleMetadata()[0].Title)
}

func TestKeywordToTitlesMap(t *testing.T) {
	idx := KeywordToTitlesMap()
	tests := []struct {
		keyword string
		want    []string
	}{
		{"dog", []string{"Black dog (ghost)", "Mexican dog-faced bat", "Dalmatian (dog)", "Guide dog", "Sun dog"}},
		{"travel", []string{"Time travel"}},
		{"programming", []string{"C Sharp (programming language)", "Python (programming language)", "Lua (programming language)",
			"Covariance and contravariance (computer science)", "Personal computer", "Ruby (programming language)"}},
		{"soccer", []string{"Spain national beach soccer team", "Will Johnson (soccer)", "Steven Cohen (soccer)"}},
		{"photo", []string{"Digital photography"}},
		{"school", []string{"Edogawa, Tokyo", "Fisk University", "Annie (musical)", "Alex Turner (musician)"}},
		{"place", []string{"2009 in music", "List of dystopian music, TV programs, and games", "2006 in music", "2007 in music", "2008 in music"}},
		{"dance", []string{"List of Canadian musicians", "2009 in music", "Old-time music", "1936 in music", "Indian classical music"}},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, idx[tt.keyword])
		})
	}
	assert.Len(t, idx["music"], 30)
}

func TestTitleToInfoMap(t *testing.T) {
	info := TitleToInfoMap()
	require.Len(t, info, 49)
	assert.Equal(t, types.ArticleInfo{Author: "J. Spencer", Timestamp: 1207793294, Length: 26582}, info["Dalmatian (dog)"])
	assert.Equal(t, types.ArticleInfo{Author: "SE KinG", Timestamp: 1235133583, Length: 69451}, info["2009 in music"])
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		want    int
		errMsg  string
		invalid bool
	}{
		{"yaml", "- title: a\n  author: x\n  timestamp: 1\n  length: 2\n  keywords: [k]\n", FormatYAML, 1, "", false},
		{"json", `[{"title":"a","author":"x","timestamp":1,"length":2,"keywords":["k"]}]`, FormatJSON, 1, "", false},
		{"empty yaml", "", FormatYAML, 0, "", false},
		{"bad yaml", "- title: [", FormatYAML, 0, "parsing YAML", false},
		{"bad json", "{", FormatJSON, 0, "parsing JSON", false},
		{"unknown format", "[]", Format("toml"), 0, "unsupported collection format", false},
		{"empty title", "- title: \"\"\n", FormatYAML, 0, "empty title", true},
		{"negative length", "- title: a\n  length: -1\n", FormatYAML, 0, "negative length", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data), tt.format)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				if tt.invalid {
					assert.ErrorIs(t, err, ErrInvalidRecord)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	records := []types.Article{
		{Title: "an article title", Author: "abhi", Timestamp: 12345678, Length: 103, Keywords: []string{"my", "name"}},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)

	jsonPath := filepath.Join(dir, "articles.json")
	require.NoError(t, os.WriteFile(jsonPath, data, 0o644))

	got, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	_, err = LoadFile(filepath.Join(dir, "articles.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported collection extension")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading collection")
}

func TestFetch(t *testing.T) {
	body := `[{"title":"Guide dog","author":"Sarranduin","timestamp":1165601603,"length":7339,"keywords":["dog"]}]`
	var attempts int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		assert.Equal(t, "wiki-search/test", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/throttled":
			if attempts == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write([]byte(body))
		case "/articles.json":
			w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	cfg := types.HTTPConfig{UserAgent: "wiki-search/test", MaxRetries: 2}

	got, err := Fetch(context.Background(), ts.Client(), ts.URL+"/throttled", cfg, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Guide dog", got[0].Title)
	assert.Equal(t, 2, attempts)

	got, err = Fetch(context.Background(), ts.Client(), ts.URL+"/articles.json", cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 7339, got[0].Length)

	_, err = Fetch(context.Background(), ts.Client(), ts.URL+"/missing", cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
