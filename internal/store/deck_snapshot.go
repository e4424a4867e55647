package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/examklar/examklar/internal/config"
	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/version"
)

// decksSnapshot is the on-disk shape of decks.json.
type decksSnapshot struct {
	Schema string      `json:"schema"`
	Decks  []deck.Wire `json:"decks"`
}

// FileDeckSnapshotStore implements DeckSnapshotStore using the filesystem.
type FileDeckSnapshotStore struct {
	paths *config.Paths
}

// NewDeckSnapshotStore creates a new decks snapshot store.
func NewDeckSnapshotStore(paths *config.Paths) *FileDeckSnapshotStore {
	return &FileDeckSnapshotStore{paths: paths}
}

// Load reads the decks snapshot from disk. A missing file is not an
// error; it yields an empty collection.
func (s *FileDeckSnapshotStore) Load() ([]deck.Wire, error) {
	path := s.paths.DecksPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []deck.Wire{}, nil
		}
		return nil, fmt.Errorf("failed to read decks snapshot: %w", err)
	}

	var snap decksSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid decks snapshot: %w", err)
	}

	// Strict version validation
	if snap.Schema == "" {
		return nil, version.MissingDecksSchema(path)
	}
	if snap.Schema != version.CurrentDecksSchema() {
		return nil, version.InvalidDecksSchema(path, snap.Schema)
	}

	if snap.Decks == nil {
		snap.Decks = []deck.Wire{}
	}
	return snap.Decks, nil
}

// Save writes the decks snapshot to disk, stamping the current schema
// version. The write goes through a temp file and rename so a crash never
// leaves a half-written snapshot.
func (s *FileDeckSnapshotStore) Save(ws []deck.Wire) error {
	if ws == nil {
		ws = []deck.Wire{}
	}
	snap := decksSnapshot{
		Schema: version.CurrentDecksSchema(),
		Decks:  ws,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal decks snapshot: %w", err)
	}

	return writeFileAtomic(s.paths.DecksPath(), data)
}

// Exists reports whether the decks snapshot file is present.
func (s *FileDeckSnapshotStore) Exists() bool {
	_, err := os.Stat(s.paths.DecksPath())
	return err == nil
}

// writeFileAtomic writes data to path via a temp file in the same
// directory followed by a rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
