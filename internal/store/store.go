// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists article collections in a local SQLite database so
// the indices can be rebuilt without the original data source, and supports
// full-text and structured queries over the stored articles.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wiki-search/pkg/types"
)

const (
	indexDir       = "index"
	dbFile         = "articles.db"
	defaultDataset = "wiki"
)

// Store manages the article SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	dataset    string
	maxResults int

	// fts is false when the SQLite build lacks FTS5; text queries then fall
	// back to LIKE matching.
	fts bool
}

// NewStore opens or creates the database at dataDir/index/articles.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	dataset := cfg.Dataset
	if dataset == "" {
		dataset = defaultDataset
	}

	s := &Store{
		db:         db,
		dataDir:    cfg.DataDir,
		dataset:    dataset,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dataset returns the default dataset name.
func (s *Store) Dataset() string {
	return s.dataset
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			name TEXT PRIMARY KEY,
			source TEXT,
			checksum TEXT,
			article_count INTEGER,
			ingested_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			dataset TEXT NOT NULL REFERENCES datasets(name),
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			author TEXT,
			timestamp INTEGER,
			length INTEGER,
			keywords TEXT,
			keywords_text TEXT,
			UNIQUE(dataset, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(dataset, title)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(dataset, author)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		_, err := s.db.Exec(
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, keywords_text, content=articles, content_rowid=rowid)`,
		)
		if isMissingModule(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("creating FTS table: %w", err)
		}
		return s.enableFTS()
	}

	// The table may come from a build with FTS5 while this one lacks it.
	if _, err := s.db.Exec(`SELECT 1 FROM articles_fts LIMIT 0`); err != nil {
		if isMissingModule(err) {
			return s.disableFTS()
		}
		return fmt.Errorf("checking FTS table: %w", err)
	}
	return s.enableFTS()
}

var ftsTriggers = []string{
	`CREATE TRIGGER IF NOT EXISTS articles_ai AFTER INSERT ON articles BEGIN
		INSERT INTO articles_fts(rowid, title, keywords_text) VALUES (new.rowid, new.title, new.keywords_text);
	END`,
	`CREATE TRIGGER IF NOT EXISTS articles_ad AFTER DELETE ON articles BEGIN
		INSERT INTO articles_fts(articles_fts, rowid, title, keywords_text) VALUES('delete', old.rowid, old.title, old.keywords_text);
	END`,
	`CREATE TRIGGER IF NOT EXISTS articles_au AFTER UPDATE ON articles BEGIN
		INSERT INTO articles_fts(articles_fts, rowid, title, keywords_text) VALUES('delete', old.rowid, old.title, old.keywords_text);
		INSERT INTO articles_fts(rowid, title, keywords_text) VALUES (new.rowid, new.title, new.keywords_text);
	END`,
}

// enableFTS installs the sync triggers. When any were missing, rows written
// without them are reindexed.
func (s *Store) enableFTS() error {
	n, err := s.triggerCount()
	if err != nil {
		return err
	}
	for _, stmt := range ftsTriggers {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	if n < len(ftsTriggers) {
		if _, err := s.db.Exec(`INSERT INTO articles_fts(articles_fts) VALUES('rebuild')`); err != nil {
			return fmt.Errorf("rebuilding FTS index: %w", err)
		}
	}
	s.fts = true
	return nil
}

// disableFTS drops the sync triggers so writes no longer touch the FTS
// table; text queries use LIKE.
func (s *Store) disableFTS() error {
	for _, name := range []string{"articles_ai", "articles_ad", "articles_au"} {
		if _, err := s.db.Exec(`DROP TRIGGER IF EXISTS ` + name); err != nil {
			return fmt.Errorf("dropping trigger %s: %w", name, err)
		}
	}
	s.fts = false
	return nil
}

func (s *Store) triggerCount() (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='trigger' AND name IN ('articles_ai', 'articles_ad', 'articles_au')`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("checking FTS triggers: %w", err)
	}
	return n, nil
}

// isMissingModule reports whether err means this SQLite build lacks FTS5.
func isMissingModule(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such module")
}

// IngestSummary holds the outcome of one Ingest call.
type IngestSummary struct {
	Dataset  string
	Articles int
	Removed  int
	Skipped  bool
}

// Ingest replaces the stored records of dataset with records. If the stored
// copy has the same checksum the dataset is left untouched and the summary
// reports Skipped. An empty dataset selects the store default. Progress
// lines are written to w.
func (s *Store) Ingest(ctx context.Context, dataset, source string, records []types.Article, w io.Writer) (IngestSummary, error) {
	if dataset == "" {
		dataset = s.dataset
	}
	summary := IngestSummary{Dataset: dataset}

	sum, err := checksum(records)
	if err != nil {
		return summary, err
	}

	var stored string
	err = s.db.QueryRowContext(ctx,
		`SELECT checksum FROM datasets WHERE name = ?`, dataset,
	).Scan(&stored)
	if err != nil && err != sql.ErrNoRows {
		return summary, fmt.Errorf("looking up dataset %s: %w", dataset, err)
	}
	if err == nil && stored == sum {
		fmt.Fprintf(w, "skipped %s (unchanged, %d articles)\n", dataset, len(records))
		summary.Skipped = true
		summary.Articles = len(records)
		return summary, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE dataset = ?`, dataset)
	if err != nil {
		return summary, fmt.Errorf("deleting old articles: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		summary.Removed = int(n)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO datasets (name, source, checksum, article_count, ingested_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			source=excluded.source, checksum=excluded.checksum,
			article_count=excluded.article_count, ingested_at=excluded.ingested_at`,
		dataset, source, sum, len(records), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return summary, fmt.Errorf("upserting dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (dataset, position, title, author, timestamp, length, keywords, keywords_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		keywordsJSON, err := json.Marshal(r.Keywords)
		if err != nil {
			return summary, fmt.Errorf("encoding keywords of %q: %w", r.Title, err)
		}
		_, err = stmt.ExecContext(ctx,
			dataset, i, r.Title, r.Author, r.Timestamp, r.Length,
			string(keywordsJSON), strings.Join(r.Keywords, " "),
		)
		if err != nil {
			return summary, fmt.Errorf("inserting article %q: %w", r.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing dataset %s: %w", dataset, err)
	}

	summary.Articles = len(records)
	if summary.Removed > 0 {
		fmt.Fprintf(w, "updated %s (%d articles, %d replaced)\n", dataset, summary.Articles, summary.Removed)
	} else {
		fmt.Fprintf(w, "indexed %s (%d articles)\n", dataset, summary.Articles)
	}
	return summary, nil
}

// Records returns the stored records of dataset in their original order.
// An empty dataset selects the store default.
func (s *Store) Records(ctx context.Context, dataset string) ([]types.Article, error) {
	if dataset == "" {
		dataset = s.dataset
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT article_count FROM datasets WHERE name = ?`, dataset,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dataset %s not found: run store ingest first", dataset)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up dataset %s: %w", dataset, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, author, timestamp, length, keywords
		 FROM articles WHERE dataset = ? ORDER BY position`, dataset)
	if err != nil {
		return nil, fmt.Errorf("reading articles: %w", err)
	}
	defer rows.Close()

	records := make([]types.Article, 0, count)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner, extra ...any) (types.Article, error) {
	var (
		a            types.Article
		author       sql.NullString
		keywordsJSON sql.NullString
	)
	dest := append([]any{&a.Title, &author, &a.Timestamp, &a.Length, &keywordsJSON}, extra...)
	if err := row.Scan(dest...); err != nil {
		return a, fmt.Errorf("scanning row: %w", err)
	}
	a.Author = author.String
	if keywordsJSON.Valid {
		if err := json.Unmarshal([]byte(keywordsJSON.String), &a.Keywords); err != nil {
			return a, fmt.Errorf("decoding keywords of %q: %w", a.Title, err)
		}
	}
	return a, nil
}

func checksum(records []types.Article) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
