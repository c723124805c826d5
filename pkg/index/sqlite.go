package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig contains configuration for the SQLite index backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "cookbook-index.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db         *sql.DB
	config     *SQLiteConfig
	insertStmt *sql.Stmt
	countStmt  *sql.Stmt
	closeOnce  sync.Once
	logger     *slog.Logger
}

// NewSQLiteStore opens (creating if necessary) the index database at the
// configured path and verifies its schema version.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = 5 * time.Second
	}

	logger := slog.Default().With("component", "index.sqlite")

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		config.Path, int(config.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("index opened", "path", config.Path)
	return s, nil
}

// initialize creates the schema and verifies its version.
func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertStmt, err = s.db.Prepare(`
		INSERT INTO recipes (id, title, path, image, tags, labels, ingredients, steps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return NewStorageError("sqlite", "prepare_insert", err)
	}

	s.countStmt, err = s.db.Prepare(`SELECT COUNT(*) FROM recipes`)
	if err != nil {
		return NewStorageError("sqlite", "prepare_count", err)
	}
	return nil
}

// Rebuild implements Store. The old catalog and the new entries swap in
// one transaction, so readers never observe a half-built index.
func (s *SQLiteStore) Rebuild(ctx context.Context, entries []*Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM recipes"); err != nil {
		return NewStorageError("sqlite", "clear", err)
	}

	insert := tx.StmtContext(ctx, s.insertStmt)
	for _, e := range entries {
		tags, err := encodeList(e.Tags)
		if err != nil {
			return NewStorageError("sqlite", "encode_tags", err)
		}
		labels, err := encodeList(e.Groups)
		if err != nil {
			return NewStorageError("sqlite", "encode_groups", err)
		}
		_, err = insert.ExecContext(ctx,
			e.ID, e.Title, e.Path, e.Image, tags, labels, e.Ingredients, e.Steps)
		if err != nil {
			return NewStorageError("sqlite", "insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "commit", err)
	}

	s.logger.Info("index rebuilt", "entries", len(entries))
	return nil
}

// Search implements Store.
func (s *SQLiteStore) Search(ctx context.Context, query Query) ([]*Entry, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT id, title, path, image, tags, labels, ingredients, steps FROM recipes"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY title COLLATE NOCASE"

	limit := DefaultLimit
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "search", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry, err := scanRow(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "search", err)
	}
	return entries, nil
}

// Count implements Store.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.countStmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close implements Store. It is safe to call more than once.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.insertStmt != nil {
			s.insertStmt.Close()
		}
		if s.countStmt != nil {
			s.countStmt.Close()
		}
		err = s.db.Close()
	})
	if err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	return nil
}

// buildWhereClause builds a SQL WHERE clause from the query filters.
// Terms match the title or the tags list; tag and group filters match a
// JSON-encoded element exactly.
func buildWhereClause(query Query) (string, []any) {
	var conditions []string
	var args []any

	for _, term := range query.Terms {
		pattern := "%" + strings.ToLower(term) + "%"
		conditions = append(conditions, "(lower(title) LIKE ? OR lower(tags) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if query.Tag != "" {
		conditions = append(conditions, "tags LIKE ?")
		args = append(args, `%"`+query.Tag+`"%`)
	}
	if query.Group != "" {
		conditions = append(conditions, "labels LIKE ?")
		args = append(args, `%"`+query.Group+`"%`)
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans a database row into an Entry.
func scanRow(rows *sql.Rows) (*Entry, error) {
	var e Entry
	var tags, labels string
	if err := rows.Scan(&e.ID, &e.Title, &e.Path, &e.Image, &tags, &labels, &e.Ingredients, &e.Steps); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if err := json.Unmarshal([]byte(labels), &e.Groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	return &e, nil
}

// encodeList JSON-encodes a string list, normalizing nil to an empty
// list so the LIKE-based filters always see valid JSON.
func encodeList(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
