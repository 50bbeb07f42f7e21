package storage

import (
	"time"

	"github.com/google/uuid"

	"httplatencies/internal/export"
)

// HistoryItem is one persisted run.
type HistoryItem struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Report    export.Report `json:"report"`
}

// NewHistoryItem wraps rep with a fresh id.
func NewHistoryItem(rep export.Report) HistoryItem {
	return HistoryItem{
		ID:        uuid.New().String(),
		Timestamp: rep.Timestamp,
		Report:    rep,
	}
}

// key orders items by time first so a cursor walk is chronological.
func (i HistoryItem) key() []byte {
	return []byte(i.Timestamp.UTC().Format("20060102T150405.000000000Z") + "_" + i.ID)
}
