package devblog

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/luisacerv/devblog/posts"
)

// Store is an SQLite archive of documents. Archived articles join the
// registry at startup with a loader that reads the body back from the
// database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    spoiler TEXT NOT NULL,
    meta BLOB,
    body TEXT NOT NULL,
    imported_at TEXT NOT NULL
);
`)
	return err
}

// SaveDocument upserts an entry's descriptor together with its document.
// Tags are normalized to lowercase.
func (s *Store) SaveDocument(e posts.Entry, doc posts.Document) error {
	var meta []byte
	if len(doc.Meta) > 0 {
		var err error
		if meta, err = msgpack.Marshal(doc.Meta); err != nil {
			return fmt.Errorf("encode meta for %s: %w", e.Slug, err)
		}
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO documents (slug, title, date, tags, spoiler, meta, body, imported_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Slug, e.Title, e.DateString(), formatTags(e.Tags), e.Spoiler, meta, doc.Body,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Entries returns every archived entry ordered by date descending. Their
// Content loaders read from this store.
func (s *Store) Entries() ([]posts.Entry, error) {
	rows, err := s.db.Query(`SELECT slug, title, date, tags, spoiler FROM documents ORDER BY date DESC, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []posts.Entry
	for rows.Next() {
		var slug, title, date, tags, spoiler string
		if err := rows.Scan(&slug, &title, &date, &tags, &spoiler); err != nil {
			return nil, err
		}
		e := posts.Entry{
			Slug:    slug,
			Title:   title,
			Tags:    ParseTags(tags),
			Spoiler: spoiler,
			Content: s.Loader(slug),
		}
		if date != "" {
			if e.Date, err = time.Parse("2006-01-02", date); err != nil {
				return nil, fmt.Errorf("archived %s: bad date %q: %w", slug, date, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Loader returns a loader that reads the archived document for slug.
func (s *Store) Loader(slug string) posts.Loader {
	return posts.LoaderFunc(func(ctx context.Context) (posts.Document, error) {
		return s.LoadDocument(ctx, slug)
	})
}

// LoadDocument reads one archived document. It returns an error wrapping
// posts.ErrNotFound when slug is not archived.
func (s *Store) LoadDocument(ctx context.Context, slug string) (posts.Document, error) {
	var meta []byte
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT meta, body FROM documents WHERE slug = ?`, slug).Scan(&meta, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return posts.Document{}, fmt.Errorf("archive %s: %w", slug, posts.ErrNotFound)
	}
	if err != nil {
		return posts.Document{}, err
	}

	doc := posts.Document{Slug: slug, Body: body}
	if len(meta) > 0 {
		if doc.Meta, err = decodeMeta(meta); err != nil {
			return posts.Document{}, fmt.Errorf("decode meta for %s: %w", slug, err)
		}
	}
	return doc, nil
}

// decodeMeta reverses msgpack.Marshal of a front matter map. msgpack stores
// integers in the smallest width that fits, so they are read back loosely
// and narrowed to int, the type the YAML decoder produces.
func decodeMeta(b []byte) (map[string]any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.UseLooseInterfaceDecoding(true)
	var meta map[string]any
	if err := dec.Decode(&meta); err != nil {
		return nil, err
	}
	for k, v := range meta {
		meta[k] = normalizeMetaValue(v)
	}
	return meta, nil
}

func normalizeMetaValue(v any) any {
	switch t := v.(type) {
	case int64:
		if t >= math.MinInt && t <= math.MaxInt {
			return int(t)
		}
	case uint64:
		if t <= math.MaxInt {
			return int(t)
		}
	case map[string]any:
		for k, x := range t {
			t[k] = normalizeMetaValue(x)
		}
	case []any:
		for i, x := range t {
			t[i] = normalizeMetaValue(x)
		}
	}
	return v
}

// DeleteDocument removes a document by slug.
func (s *Store) DeleteDocument(slug string) error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE slug = ?`, slug)
	return err
}

// Import loads every entry's document and archives it. It stops at the
// first failure and reports how many entries were saved before it.
func (s *Store) Import(ctx context.Context, entries []posts.Entry) (int, error) {
	n := 0
	for _, e := range entries {
		doc, err := e.Load(ctx).Await(ctx)
		if err != nil {
			return n, err
		}
		if err := s.SaveDocument(e, doc); err != nil {
			return n, fmt.Errorf("save %s: %w", e.Slug, err)
		}
		n++
	}
	return n, nil
}

func formatTags(tags []string) string {
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			normalized = append(normalized, t)
		}
	}
	return "," + strings.Join(normalized, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
