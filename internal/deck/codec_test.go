package deck

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/model"
)

func TestExportDeck(t *testing.T) {
	s := NewStore()
	deck := s.CreateDeck(model.DeckInput{
		SubjectID:   "math-101",
		Name:        "Algebra Basics",
		Description: "Linear equations",
		Cards: []model.CardInput{
			{Front: "2x = 10, x = ?", Back: "5", Difficulty: model.DifficultyEasy, Tags: []string{"algebra"}},
		},
	})

	out := s.ExportDeck(deck.ID)
	if out == "" {
		t.Fatal("expected JSON output")
	}

	var w Wire
	if err := json.Unmarshal([]byte(out), &w); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if w.ID != deck.ID || w.SubjectID != "math-101" || w.Name != "Algebra Basics" {
		t.Errorf("exported deck fields wrong: %+v", w)
	}
	if len(w.Cards) != 1 || w.Cards[0].Front != "2x = 10, x = ?" {
		t.Errorf("exported cards wrong: %+v", w.Cards)
	}
	if w.Cards[0].Difficulty != "easy" {
		t.Errorf("difficulty: got %q", w.Cards[0].Difficulty)
	}
	if _, err := time.Parse(time.RFC3339, w.CreatedAt); err != nil {
		t.Errorf("createdAt is not ISO-8601: %q", w.CreatedAt)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("export should be indented")
	}
	if !strings.Contains(out, `"subjectId"`) {
		t.Error("export should use camelCase field names")
	}
}

func TestExportDeck_UnknownDeck(t *testing.T) {
	s := NewStore()
	if out := s.ExportDeck("d_missing"); out != "" {
		t.Errorf("expected empty string, got %q", out)
	}
}

func TestValidateDeckData(t *testing.T) {
	valid := map[string]any{
		"name":      "Algebra",
		"subjectId": "math-101",
		"cards":     []any{},
	}

	tests := []struct {
		name string
		data any
		want bool
	}{
		{"nil", nil, false},
		{"string", "not a deck", false},
		{"empty object", map[string]any{}, false},
		{"name only", map[string]any{"name": "x"}, false},
		{"empty name", map[string]any{"name": "", "subjectId": "s", "cards": []any{}}, false},
		{"numeric name", map[string]any{"name": 42.0, "subjectId": "s", "cards": []any{}}, false},
		{"missing subjectId", map[string]any{"name": "x", "cards": []any{}}, false},
		{"cards not array", map[string]any{"name": "x", "subjectId": "s", "cards": "nope"}, false},
		{"minimal valid", valid, true},
		{"card missing front", map[string]any{"name": "x", "subjectId": "s", "cards": []any{
			map[string]any{"back": "b", "difficulty": "easy", "tags": []any{}},
		}}, false},
		{"card bad difficulty", map[string]any{"name": "x", "subjectId": "s", "cards": []any{
			map[string]any{"front": "f", "back": "b", "difficulty": "impossible", "tags": []any{}},
		}}, false},
		{"card tags not array", map[string]any{"name": "x", "subjectId": "s", "cards": []any{
			map[string]any{"front": "f", "back": "b", "difficulty": "easy", "tags": "algebra"},
		}}, false},
		{"full valid card", map[string]any{"name": "x", "subjectId": "s", "cards": []any{
			map[string]any{"front": "f", "back": "b", "difficulty": "hard", "tags": []any{"a"}},
		}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateDeckData(tc.data); got != tc.want {
				t.Errorf("ValidateDeckData(%v) = %v, want %v", tc.data, got, tc.want)
			}
		})
	}
}

func TestImportDeck(t *testing.T) {
	s := NewStore()

	doc := `{
		"id": "d_original",
		"subjectId": "math-101",
		"name": "Imported Algebra",
		"description": "From a friend",
		"cards": [
			{
				"id": "c_original",
				"front": "What is 2+2?",
				"back": "4",
				"difficulty": "easy",
				"tags": ["arithmetic"],
				"lastReviewed": "2026-08-01T10:00:00Z",
				"nextReview": "2026-08-15T10:00:00Z"
			}
		]
	}`

	deck, err := s.ImportDeck(doc)
	if err != nil {
		t.Fatalf("ImportDeck failed: %v", err)
	}
	if deck.ID == "d_original" || deck.ID == "" {
		t.Errorf("imported deck must get a fresh ID, got %q", deck.ID)
	}
	if deck.Name != "Imported Algebra" || deck.SubjectID != "math-101" || deck.Description != "From a friend" {
		t.Errorf("deck fields wrong: %+v", deck)
	}
	if len(deck.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(deck.Cards))
	}
	c := deck.Cards[0]
	if c.ID == "c_original" || c.ID == "" {
		t.Errorf("imported card must get a fresh ID, got %q", c.ID)
	}
	if c.Front != "What is 2+2?" || c.Back != "4" || c.Difficulty != model.DifficultyEasy {
		t.Errorf("card fields wrong: %+v", c)
	}
	if len(c.Tags) != 1 || c.Tags[0] != "arithmetic" {
		t.Errorf("tags wrong: %v", c.Tags)
	}
	want := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	if !c.NextReview.Equal(want) {
		t.Errorf("nextReview: got %v, want %v", c.NextReview, want)
	}

	if s.GetDeckByID(deck.ID) == nil {
		t.Error("imported deck not in collection")
	}
}

func TestImportDeck_DatesDefaultToNow(t *testing.T) {
	s := NewStore()

	before := time.Now()
	deck, err := s.ImportDeck(`{"subjectId":"s","name":"n","cards":[
		{"front":"f","back":"b","difficulty":"medium","tags":[]}
	]}`)
	if err != nil {
		t.Fatalf("ImportDeck failed: %v", err)
	}
	after := time.Now()

	c := deck.Cards[0]
	if c.NextReview.Before(before) || c.NextReview.After(after) {
		t.Errorf("nextReview should default to import time, got %v", c.NextReview)
	}
	if c.LastReviewed.Before(before) || c.LastReviewed.After(after) {
		t.Errorf("lastReviewed should default to import time, got %v", c.LastReviewed)
	}
}

func TestImportDeck_ReviewCounters(t *testing.T) {
	s := NewStore()

	deck, err := s.ImportDeck(`{"subjectId":"s","name":"n","cards":[
		{"front":"f","back":"b","difficulty":"easy","tags":[],
			"correctStreak":3,"correctTotal":8,"totalReviews":10},
		{"front":"f2","back":"b2","difficulty":"easy","tags":[],
			"correctStreak":-1,"correctTotal":"lots","totalReviews":null}
	]}`)
	if err != nil {
		t.Fatalf("ImportDeck failed: %v", err)
	}

	c := deck.Cards[0]
	if c.CorrectStreak != 3 || c.CorrectTotal != 8 || c.TotalReviews != 10 {
		t.Errorf("counters not imported: %+v", c)
	}

	// Negative or mistyped counters reset to zero rather than rejecting
	// the document.
	c = deck.Cards[1]
	if c.CorrectStreak != 0 || c.CorrectTotal != 0 || c.TotalReviews != 0 {
		t.Errorf("bad counters should import as zero: %+v", c)
	}
}

func TestImportDeck_MalformedJSON(t *testing.T) {
	s := NewStore()

	_, err := s.ImportDeck(`{"name": "broken`)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !errors.IsMalformedImport(err) {
		t.Errorf("expected malformed-import error, got: %v", err)
	}
	if errors.IsSchemaInvalid(err) {
		t.Error("malformed and schema errors must be distinguishable")
	}
	if s.Len() != 0 {
		t.Error("failed import must not change the collection")
	}
}

func TestImportDeck_SchemaInvalid(t *testing.T) {
	s := NewStore()

	_, err := s.ImportDeck(`{"name": "x", "subjectId": "s", "cards": "nope"}`)
	if err == nil {
		t.Fatal("expected error for schema-invalid document")
	}
	if !errors.IsSchemaInvalid(err) {
		t.Errorf("expected schema-invalid error, got: %v", err)
	}
	if errors.IsMalformedImport(err) {
		t.Error("schema and malformed errors must be distinguishable")
	}
	if s.Len() != 0 {
		t.Error("failed import must not change the collection")
	}
}

func TestImportDeck_AllOrNothing(t *testing.T) {
	s := NewStore()

	// Second card is invalid, so the whole document is rejected.
	_, err := s.ImportDeck(`{"subjectId":"s","name":"n","cards":[
		{"front":"f","back":"b","difficulty":"easy","tags":[]},
		{"front":"f2","difficulty":"easy","tags":[]}
	]}`)
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Len() != 0 {
		t.Error("partial import leaked into the collection")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := NewStore()
	deck := s.CreateDeck(model.DeckInput{
		SubjectID: "math-101",
		Name:      "Round Trip",
		Cards: []model.CardInput{
			{Front: "a", Back: "1", Difficulty: model.DifficultyEasy, Tags: []string{"t1"},
				CorrectStreak: 2, CorrectTotal: 5, TotalReviews: 7},
			{Front: "b", Back: "2", Difficulty: model.DifficultyHard, Tags: []string{"t2"}},
		},
	})

	imported, err := s.ImportDeck(s.ExportDeck(deck.ID))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if imported.ID == deck.ID {
		t.Error("round-tripped deck must have a new ID")
	}
	if imported.Name != deck.Name || imported.SubjectID != deck.SubjectID {
		t.Error("deck fields lost in round trip")
	}
	if len(imported.Cards) != len(deck.Cards) {
		t.Fatalf("card count changed: got %d", len(imported.Cards))
	}
	for i := range deck.Cards {
		if imported.Cards[i].Front != deck.Cards[i].Front ||
			imported.Cards[i].Back != deck.Cards[i].Back ||
			imported.Cards[i].Difficulty != deck.Cards[i].Difficulty {
			t.Errorf("card %d content changed in round trip", i)
		}
	}
	c := imported.Cards[0]
	if c.CorrectStreak != 2 || c.CorrectTotal != 5 || c.TotalReviews != 7 {
		t.Errorf("review counters lost in round trip: %+v", c)
	}
	m := s.PerformanceMetrics(imported.ID)
	if m.TotalReviews != 7 {
		t.Errorf("imported deck metrics should see review history, got %+v", m)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 decks after round trip, got %d", s.Len())
	}
}

func TestImportDeck_EmitsEvent(t *testing.T) {
	s := NewStore()
	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	deck, err := s.ImportDeck(`{"subjectId":"s","name":"n","cards":[]}`)
	if err != nil {
		t.Fatalf("ImportDeck failed: %v", err)
	}
	if len(events) != 1 || events[0].Type != EventDeckImported || events[0].DeckID != deck.ID {
		t.Errorf("expected one deck_imported event, got %+v", events)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := NewStore()
	deck := s.CreateDeck(model.DeckInput{
		SubjectID: "math-101",
		Name:      "Persisted",
		Cards: []model.CardInput{
			{Front: "a", Back: "1", Difficulty: model.DifficultyMedium, Tags: []string{"t"},
				CorrectStreak: 2, CorrectTotal: 5, TotalReviews: 7},
		},
	})

	snap := s.Snapshot()

	fresh := NewStore()
	fresh.Restore(snap)

	got := fresh.GetDeckByID(deck.ID)
	if got == nil {
		t.Fatal("restored store missing deck")
	}
	if got.Name != deck.Name || got.SubjectID != deck.SubjectID {
		t.Error("deck fields lost across snapshot/restore")
	}
	if len(got.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(got.Cards))
	}
	c := got.Cards[0]
	if c.ID != deck.Cards[0].ID {
		t.Error("card IDs must be preserved across snapshot/restore")
	}
	if c.CorrectStreak != 2 || c.CorrectTotal != 5 || c.TotalReviews != 7 {
		t.Errorf("review counters lost: %+v", c)
	}
}
