// Package store persists examklar state to the data directory: the decks
// snapshot, the planner snapshot, and the global TOML config. Every file
// carries a schema version that is validated strictly on load.
package store

import (
	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/model"
)

// DeckSnapshotStore handles decks snapshot persistence.
type DeckSnapshotStore interface {
	Load() ([]deck.Wire, error)
	Save(ws []deck.Wire) error
	Exists() bool
}

// PlannerStore handles planner snapshot persistence.
type PlannerStore interface {
	Load() (*PlannerState, error)
	Save(state *PlannerState) error
	Exists() bool
}

// GlobalStore handles global config persistence.
type GlobalStore interface {
	Load() (*model.GlobalConfig, error)
	Save(cfg *model.GlobalConfig) error
	EnsureExists() error
}
