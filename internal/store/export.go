package store

import (
	"context"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/model"
)

// Export returns all entries in insertion order, optionally filtered by source.
func (s *SQLiteStore) Export(ctx context.Context, source string) ([]model.MemoryEntry, error) {
	query := `SELECT id, timestamp, source, content, metadata FROM memories`
	var args []interface{}
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY id`

	entries, err := s.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, storageErr("export", err)
	}
	return entries, nil
}

// Import ingests entries from an export. Each one gets a fresh id and
// timestamp, since timestamps are only ever set at insertion.
func (s *SQLiteStore) Import(ctx context.Context, entries []model.MemoryEntry) (int, error) {
	imported := 0
	for _, e := range entries {
		if _, err := s.Ingest(ctx, e.Source, e.Content); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
