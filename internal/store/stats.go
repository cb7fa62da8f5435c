package store

import (
	"context"
	"database/sql"
	"os"
	"time"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string        `json:"db_path"`
	DBSizeBytes  int64         `json:"db_size_bytes"`
	TotalEntries int           `json:"total_entries"`
	Oldest       *time.Time    `json:"oldest,omitempty"`
	Newest       *time.Time    `json:"newest,omitempty"`
	Sources      []SourceStats `json:"sources"`
}

// SourceStats holds per-source counts.
type SourceStats struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path, Sources: []SourceStats{}}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	var oldest, newest sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(timestamp), MAX(timestamp) FROM memories`).
		Scan(&st.TotalEntries, &oldest, &newest)
	if err != nil {
		return nil, storageErr("stats", err)
	}
	if oldest.Valid {
		t, _ := time.Parse(timeLayout, oldest.String)
		st.Oldest = &t
	}
	if newest.Valid {
		t, _ := time.Parse(timeLayout, newest.String)
		st.Newest = &t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, COUNT(*) AS cnt
		FROM memories
		GROUP BY source ORDER BY cnt DESC, source`)
	if err != nil {
		return nil, storageErr("stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var src SourceStats
		if err := rows.Scan(&src.Source, &src.Count); err != nil {
			return nil, storageErr("stats", err)
		}
		st.Sources = append(st.Sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("stats", err)
	}

	return st, nil
}
