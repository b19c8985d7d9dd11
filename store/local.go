package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Local is the durable document store, one SQLite table per collection with
// the record body held as JSON. Read-modify-write operations (Update, Upsert)
// run inside immediate transactions so the read and write halves cannot
// interleave with another writer on the same record.
type Local struct {
	db *sql.DB
}

var _ Backend = (*Local)(nil)

// OpenLocal opens (and on first run provisions) the database at path.
// Provisioning is idempotent; opening an already-provisioned database is
// safe.
func OpenLocal(path string) (*Local, error) {
	if path == "" {
		return nil, fmt.Errorf("open local store: no database path: %w", ErrStorageUnavailable)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("open local store: %w: %w", ErrStorageUnavailable, err)
	}

	// _txlock=immediate takes the write lock at BEGIN, so our
	// read-modify-write transactions serialize instead of failing at commit.
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// WAL lets readers proceed while a write transaction is open
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &Local{db: db}
	if err := s.provision(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Local) provision() error {
	for _, col := range Collections {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		)`, col.Table)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("provision %s: %w", col.Name, err)
		}

		for _, field := range col.Indexes {
			idx := fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (json_extract(doc, '$.%s'))",
				col.Table, snakeCase(field), col.Table, field,
			)
			if _, err := s.db.Exec(idx); err != nil {
				return fmt.Errorf("provision index on %s.%s: %w", col.Name, field, err)
			}
		}
	}
	return nil
}

func (s *Local) Close() error {
	return s.db.Close()
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// FindUnique returns the record matching the collection's lookup key, or nil
// when absent. Singleton collections resolve by their singleton field, which
// is not the primary key and so requires a scan; everything else resolves by
// id directly.
func (s *Local) FindUnique(ctx context.Context, collection string, where Where) (Document, error) {
	col, err := collectionFor(collection)
	if err != nil {
		return nil, err
	}
	return findUnique(ctx, s.db, col, where)
}

func findUnique(ctx context.Context, q querier, col Collection, where Where) (Document, error) {
	if col.SingletonKey != "" {
		if want, ok := where[col.SingletonKey]; ok {
			return scanForField(ctx, q, col, col.SingletonKey, want)
		}
	}

	id, ok := where["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("findUnique %s: where must carry an id", col.Name)
	}

	return getByID(ctx, q, col, id)
}

func getByID(ctx context.Context, q querier, col Collection, id string) (Document, error) {
	var raw string
	err := q.QueryRowContext(ctx,
		fmt.Sprintf("SELECT doc FROM %s WHERE id = ?", col.Table), id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("findUnique %s: %w", col.Name, err)
	}
	return decodeDoc(col, raw)
}

func scanForField(ctx context.Context, q querier, col Collection, field string, want any) (Document, error) {
	rows, err := q.QueryContext(ctx,
		fmt.Sprintf("SELECT doc FROM %s ORDER BY rowid", col.Table),
	)
	if err != nil {
		return nil, fmt.Errorf("findUnique %s: %w", col.Name, err)
	}
	defer rows.Close()

	target := normalizeValue(want)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("findUnique %s: %w", col.Name, err)
		}
		doc, err := decodeDoc(col, raw)
		if err != nil {
			return nil, err
		}
		if matches(doc, Where{field: target}) {
			return doc, nil
		}
	}
	return nil, rows.Err()
}

// FindMany returns the collection in insertion order, narrowed by the
// conjunctive equality filter and optionally re-sorted by a single field.
func (s *Local) FindMany(ctx context.Context, collection string, opts FindOptions) ([]Document, error) {
	col, err := collectionFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT doc FROM %s", col.Table)
	var args []any
	// Push the owner filter down to SQL where an index exists; the full
	// filter is re-applied in Go below either way.
	if userID, ok := opts.Where["userId"].(string); ok && col.hasIndex("userId") {
		query += " WHERE json_extract(doc, '$.userId') = ?"
		args = append(args, userID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("findMany %s: %w", col.Name, err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("findMany %s: %w", col.Name, err)
		}
		doc, err := decodeDoc(col, raw)
		if err != nil {
			return nil, err
		}
		if len(opts.Where) == 0 || matches(doc, opts.Where) {
			docs = append(docs, doc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("findMany %s: %w", col.Name, err)
	}

	sortDocs(docs, opts.OrderBy)
	return docs, nil
}

// Create persists a new record, generating its id and stamping timestamps
// unless the caller supplied them. A caller-supplied id that already exists
// fails with ErrDuplicateKey.
func (s *Local) Create(ctx context.Context, collection string, data Document) (Document, error) {
	col, err := collectionFor(collection)
	if err != nil {
		return nil, err
	}

	doc := normalizeDoc(data)
	if _, ok := doc.id(); !ok {
		doc["id"] = NewID()
	}
	stamp(doc, time.Now())

	if err := insertDoc(ctx, s.db, col, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func insertDoc(ctx context.Context, q querier, col Collection, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("create %s: %w", col.Name, err)
	}

	id, _ := doc.id()
	_, err = q.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, doc) VALUES (?, ?)", col.Table),
		id, string(raw),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("create %s id %s: %w", col.Name, id, ErrDuplicateKey)
		}
		return fmt.Errorf("create %s: %w", col.Name, err)
	}
	return nil
}

// Update merges patch over the existing record (shallow merge, nested values
// replaced wholesale), bumps updatedAt and persists. The read and write
// happen inside one immediate transaction.
func (s *Local) Update(ctx context.Context, collection string, id string, patch Document) (Document, error) {
	col, err := collectionFor(collection)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", col.Name, err)
	}
	defer tx.Rollback()

	existing, err := getByID(ctx, tx, col, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("update %s id %s: %w", col.Name, id, ErrNotFound)
	}

	merged, err := applyPatch(ctx, tx, col, existing, patch)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update %s: %w", col.Name, err)
	}
	return merged, nil
}

func applyPatch(ctx context.Context, q querier, col Collection, existing, patch Document) (Document, error) {
	merged := mergePatch(existing, normalizeDoc(patch))
	touch(merged, time.Now())

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", col.Name, err)
	}
	id, _ := merged.id()
	if _, err := q.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET doc = ? WHERE id = ?", col.Table),
		string(raw), id,
	); err != nil {
		return nil, fmt.Errorf("update %s: %w", col.Name, err)
	}
	return merged, nil
}

// Delete removes the record and acknowledges with the id. Deleting an id
// that does not exist is not an error.
func (s *Local) Delete(ctx context.Context, collection string, id string) (string, error) {
	col, err := collectionFor(collection)
	if err != nil {
		return "", err
	}

	if _, err := s.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", col.Table), id,
	); err != nil {
		return "", fmt.Errorf("delete %s: %w", col.Name, err)
	}
	return id, nil
}

// Upsert probes for an existing record with where. When found, the update
// payload is merged onto it under the found record's own id (where may name a
// secondary key). When absent, where's key fields are merged into the create
// payload so the new record satisfies the probe that missed. Probe and write
// share one immediate transaction, so at most one record ever exists per
// distinct lookup key.
func (s *Local) Upsert(ctx context.Context, collection string, where Where, create, update Document) (Document, error) {
	col, err := collectionFor(collection)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("upsert %s: %w", col.Name, err)
	}
	defer tx.Rollback()

	existing, err := findUnique(ctx, tx, col, where)
	if err != nil {
		return nil, err
	}

	var result Document
	if existing != nil {
		result, err = applyPatch(ctx, tx, col, existing, update)
		if err != nil {
			return nil, err
		}
	} else {
		doc := normalizeDoc(create)
		for k, v := range where {
			doc[k] = normalizeValue(v)
		}
		if _, ok := doc.id(); !ok {
			doc["id"] = NewID()
		}
		stamp(doc, time.Now())
		if err := insertDoc(ctx, tx, col, doc); err != nil {
			return nil, err
		}
		result = doc
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("upsert %s: %w", col.Name, err)
	}
	return result, nil
}

func decodeDoc(col Collection, raw string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", col.Name, err)
	}
	return doc, nil
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
