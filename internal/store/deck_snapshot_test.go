package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/examklar/examklar/internal/config"
	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/model"
)

func deckInputForTest() model.DeckInput {
	return model.DeckInput{
		SubjectID: "math-101",
		Name:      "Algebra",
		Cards: []model.CardInput{
			{Front: "a", Back: "1", Difficulty: model.DifficultyEasy, Tags: []string{"t"}},
		},
	}
}

func setupSnapshotStore(t *testing.T) (*FileDeckSnapshotStore, *config.Paths) {
	t.Helper()
	dir := t.TempDir()
	paths := config.NewPaths(filepath.Join(dir, ".examklar"))
	return NewDeckSnapshotStore(paths), paths
}

func TestDeckSnapshot_LoadMissingFile(t *testing.T) {
	s, _ := setupSnapshotStore(t)

	ws, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ws) != 0 {
		t.Errorf("expected empty collection, got %d decks", len(ws))
	}
	if s.Exists() {
		t.Error("Exists should report false before any save")
	}
}

func TestDeckSnapshot_SaveAndLoad(t *testing.T) {
	s, _ := setupSnapshotStore(t)

	ws := []deck.Wire{
		{
			ID:        "d_abc",
			SubjectID: "math-101",
			Name:      "Algebra",
			Cards: []deck.CardWire{
				{ID: "c_abc", Front: "a", Back: "1", Difficulty: "easy", Tags: []string{"t"}},
			},
		},
	}
	if err := s.Save(ws); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists() {
		t.Error("Exists should report true after save")
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "d_abc" || got[0].Name != "Algebra" {
		t.Errorf("loaded snapshot wrong: %+v", got)
	}
	if len(got[0].Cards) != 1 || got[0].Cards[0].Front != "a" {
		t.Errorf("loaded cards wrong: %+v", got[0].Cards)
	}
}

func TestDeckSnapshot_StampsSchema(t *testing.T) {
	s, paths := setupSnapshotStore(t)

	if err := s.Save([]deck.Wire{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(paths.DecksPath())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if raw["schema"] != "decks/1" {
		t.Errorf("schema: got %v, want decks/1", raw["schema"])
	}
}

func TestDeckSnapshot_MissingSchema(t *testing.T) {
	s, paths := setupSnapshotStore(t)

	if err := os.MkdirAll(paths.DataDir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.DecksPath(), []byte(`{"decks":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(); err == nil {
		t.Error("expected error for snapshot without schema")
	}
}

func TestDeckSnapshot_UnsupportedSchema(t *testing.T) {
	s, paths := setupSnapshotStore(t)

	if err := os.MkdirAll(paths.DataDir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.DecksPath(), []byte(`{"schema":"decks/99","decks":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(); err == nil {
		t.Error("expected error for unsupported schema version")
	}
}

func TestDeckSnapshot_RoundTripThroughStore(t *testing.T) {
	s, _ := setupSnapshotStore(t)

	live := deck.NewStore()
	live.CreateDeck(deckInputForTest())

	if err := s.Save(live.Snapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ws, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	restored := deck.NewStore()
	restored.Restore(ws)

	if restored.Len() != 1 {
		t.Fatalf("expected 1 deck after restore, got %d", restored.Len())
	}
	orig := live.GetDecks()[0]
	got := restored.GetDeckByID(orig.ID)
	if got == nil {
		t.Fatal("deck ID not preserved through persistence")
	}
	if got.Name != orig.Name || len(got.Cards) != len(orig.Cards) {
		t.Error("deck contents lost through persistence")
	}
}
