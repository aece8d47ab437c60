package articledb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Article is one scraped news article with its validity label.
// Authors and Tags are comma-separated, matching the scraper output.
type Article struct {
	ID          string
	Title       string
	Authors     string
	PublishDate string
	URL         string
	Text        string
	Tags        string
	Label       int // 1 = valid, 0 = fake
}

// Store provides access to the article corpus in SQLite.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn and bootstraps the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	authors      TEXT NOT NULL DEFAULT '',
	publish_date TEXT NOT NULL DEFAULT '',
	url          TEXT NOT NULL,
	text         TEXT NOT NULL,
	tags         TEXT NOT NULL DEFAULT '',
	label        INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS articles_url ON articles (url);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Insert stores one article, assigning an id when absent.
func (s *Store) Insert(ctx context.Context, a Article) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (id, title, authors, publish_date, url, text, tags, label)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Authors, a.PublishDate, a.URL, a.Text, a.Tags, a.Label)
	if err != nil {
		return fmt.Errorf("insert article %s: %w", a.URL, err)
	}
	return nil
}

// List returns all articles ordered by insertion id.
func (s *Store) List(ctx context.Context) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, authors, publish_date, url, text, tags, label
		 FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Authors, &a.PublishDate, &a.URL, &a.Text, &a.Tags, &a.Label); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

// Count returns the number of stored articles.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error { return s.db.Close() }
