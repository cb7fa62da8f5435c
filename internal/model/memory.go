// Package model defines the core memory data types.
package model

import "time"

// MemoryEntry is one stored record of ingested text.
type MemoryEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata"`
}

// Metadata is the key-value marker stored alongside each entry.
type Metadata struct {
	Indexed bool `json:"indexed"`
}

// DefaultMetadata returns the marker attached to every ingested entry.
func DefaultMetadata() Metadata {
	return Metadata{Indexed: true}
}

// Well-known sources.
const (
	SourceManual        = "manual"
	SourceSystemMonitor = "system_monitor"
)
