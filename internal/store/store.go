// Package store persists URL fingerprints and scan history in a single-file
// SQLite database. The store is the scanner's dedup memory: a write failure
// here is fatal, because losing fingerprints silently would re-alert every
// known document on the next run.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/payroll-radar/internal/types"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	url TEXT PRIMARY KEY,
	url_hash TEXT UNIQUE NOT NULL,
	jurisdiction TEXT NOT NULL,
	agency TEXT,
	title TEXT,
	doc_id TEXT,
	date_found TEXT,
	date_published TEXT,
	relevance_score REAL,
	category TEXT,
	ai_summary TEXT,
	is_relevant INTEGER DEFAULT 0,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(url_hash);
CREATE INDEX IF NOT EXISTS idx_documents_jurisdiction ON documents(jurisdiction);
CREATE INDEX IF NOT EXISTS idx_documents_relevant ON documents(is_relevant);

CREATE TABLE IF NOT EXISTS scan_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT,
	scan_date TEXT,
	docs_found INTEGER,
	docs_relevant INTEGER,
	duration_seconds REAL
);
`

// Fingerprint returns the dedup key for a URL: the hex sha256 of the full
// URL string. Hashing bounds key size and gives uniform index distribution.
func Fingerprint(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// IsNew reports whether a URL has never been processed.
func (s *Store) IsNew(url string) (bool, error) {
	var one int
	err := s.conn.QueryRow(
		`SELECT 1 FROM documents WHERE url_hash = ?`, Fingerprint(url),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("fingerprint lookup failed: %w", err)
	}
	return false, nil
}

// FilterNew returns the subset of urls not yet in the store, preserving
// input order. One query covers the whole batch.
func (s *Store) FilterNew(urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	hashes := make([]string, 0, len(urls))
	args := make([]any, 0, len(urls))
	for _, u := range urls {
		h := Fingerprint(u)
		hashes = append(hashes, h)
		args = append(args, h)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	rows, err := s.conn.Query(
		`SELECT url_hash FROM documents WHERE url_hash IN (`+placeholders+`)`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("bulk fingerprint lookup failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	known := make(map[string]bool, len(urls))
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("bulk fingerprint scan failed: %w", err)
		}
		known[h] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bulk fingerprint lookup failed: %w", err)
	}

	var fresh []string
	for i, u := range urls {
		if !known[hashes[i]] {
			fresh = append(fresh, u)
		}
	}
	return fresh, nil
}

// SaveDocument persists a processed document. Re-saving the same URL
// replaces the previous row, so replaying a scan never fails on the key.
func (s *Store) SaveDocument(doc types.Document) error {
	relevant := 0
	if doc.Relevant {
		relevant = 1
	}

	_, err := s.conn.Exec(`
		INSERT OR REPLACE INTO documents
		(url, url_hash, jurisdiction, agency, title, doc_id, date_found,
		 date_published, relevance_score, category, ai_summary, is_relevant)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.URL, Fingerprint(doc.URL), doc.Jurisdiction, doc.Agency,
		doc.Title, doc.DocID, doc.DiscoveredAt.UTC().Format(time.RFC3339),
		doc.Published, doc.Score, string(doc.Category), doc.Summary, relevant,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.URL, err)
	}
	return nil
}

// LogScan appends a scan_log row for a completed pass.
func (s *Store) LogScan(stats types.ScanStats) error {
	_, err := s.conn.Exec(`
		INSERT INTO scan_log (run_id, scan_date, docs_found, docs_relevant, duration_seconds)
		VALUES (?, ?, ?, ?, ?)`,
		stats.RunID, time.Now().UTC().Format(time.RFC3339),
		stats.New, stats.Relevant, stats.Duration.Seconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to log scan: %w", err)
	}
	return nil
}

// RecentDocuments returns the most recently discovered documents, newest
// first. When relevantOnly is set, only classifier-approved rows are
// returned.
func (s *Store) RecentDocuments(limit int, relevantOnly bool) ([]types.Document, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT url, jurisdiction, agency, title, doc_id, date_found,
		       date_published, relevance_score, category, ai_summary, is_relevant
		FROM documents`
	if relevantOnly {
		query += ` WHERE is_relevant = 1`
	}
	query += ` ORDER BY created_at DESC LIMIT ?`

	rows, err := s.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []types.Document
	for rows.Next() {
		var (
			doc       types.Document
			docID     sql.NullString
			found     sql.NullString
			published sql.NullString
			category  sql.NullString
			summary   sql.NullString
			relevant  int
		)
		if err := rows.Scan(&doc.URL, &doc.Jurisdiction, &doc.Agency, &doc.Title,
			&docID, &found, &published, &doc.Score, &category, &summary, &relevant); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		doc.DocID = docID.String
		doc.Published = published.String
		doc.Category = types.Category(category.String)
		doc.Summary = summary.String
		doc.Relevant = relevant == 1
		if found.Valid {
			if t, err := time.Parse(time.RFC3339, found.String); err == nil {
				doc.DiscoveredAt = t
			}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document rows: %w", err)
	}
	return docs, nil
}
