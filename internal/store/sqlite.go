package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"modernc.org/sqlite"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/model"
)

// DefaultPath is the database file used when no path is configured.
const DefaultPath = "chronolog.db"

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func init() {
	// fold lowercases with Unicode rules; SQLite's lower() only handles ASCII.
	err := sqlite.RegisterDeterministicScalarFunction("fold", 1,
		func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return strings.ToLower(v), nil
			case []byte:
				return strings.ToLower(string(v)), nil
			case nil:
				return nil, nil
			default:
				return strings.ToLower(fmt.Sprint(v)), nil
			}
		})
	if err != nil {
		panic(fmt.Sprintf("register fold: %v", err))
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  *zap.Logger
	now  func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used by the store.
func WithLogger(l *zap.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = DefaultPath
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, storageErr("open", err)
	}
	// No idle connections: each call acquires a connection and hands it back closed.
	db.SetMaxIdleConns(0)

	s := &SQLiteStore{
		db:   db,
		path: dbPath,
		log:  zap.NewNop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, storageErr("migrate", err)
	}

	s.log.Debug("store opened", zap.String("path", dbPath))
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		source    TEXT NOT NULL,
		content   TEXT NOT NULL,
		metadata  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_timestamp ON memories(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_memories_source ON memories(source);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Ingest appends one entry and returns it with its assigned id.
func (s *SQLiteStore) Ingest(ctx context.Context, source, content string) (*model.MemoryEntry, error) {
	now := s.now().UTC()
	meta := model.DefaultMetadata()
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO memories (timestamp, source, content, metadata) VALUES (?, ?, ?, ?)`,
		now.Format(timeLayout), source, content, string(metaJSON))
	if err != nil {
		return nil, storageErr("ingest", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageErr("ingest", err)
	}

	s.log.Info("ingested entry", zap.Int64("id", id), zap.String("source", source))

	return &model.MemoryEntry{
		ID:        id,
		Timestamp: now,
		Source:    source,
		Content:   content,
		Metadata:  meta,
	}, nil
}

// Get returns the entry with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*model.MemoryEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, timestamp, source, content, metadata FROM memories WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, storageErr("get", err)
	}
	return &e, nil
}

// List returns entries newest first.
func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.MemoryEntry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, timestamp, source, content, metadata FROM memories`
	var args []interface{}
	if p.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, p.Source)
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit)

	entries, err := s.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list", err)
	}
	return entries, nil
}

func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args ...interface{}) ([]model.MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.MemoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (model.MemoryEntry, error) {
	var e model.MemoryEntry
	var ts, meta string

	if err := row.Scan(&e.ID, &ts, &e.Source, &e.Content, &meta); err != nil {
		return e, err
	}

	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return e, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	e.Timestamp = t
	if err := json.Unmarshal([]byte(meta), &e.Metadata); err != nil {
		return e, fmt.Errorf("decode metadata for entry %d: %w", e.ID, err)
	}
	return e, nil
}
