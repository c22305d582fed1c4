package state

import (
	"time"

	"rtop/internal/collector"
	"rtop/internal/engine"
)

// AppState holds the current snapshot of the system and the UI position.
type AppState struct {
	Stats      *collector.RawStats
	Results    []engine.CheckResult
	Overall    string
	LastUpdate time.Time
	Err        error
	Flash      string

	Page  int
	Focus int
}

// Loaded reports whether at least one fast collection has arrived.
func (s AppState) Loaded() bool {
	return !s.LastUpdate.IsZero()
}
