package resolver

import (
	"testing"

	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/model"
)

func seedCardDeck(t *testing.T) (*deck.Store, *model.Deck) {
	t.Helper()
	decks := deck.NewStore()
	d := decks.CreateDeck(model.DeckInput{
		SubjectID: "s",
		Name:      "Algebra",
		Cards: []model.CardInput{
			{Front: "What is a polynomial?", Back: "x", Difficulty: model.DifficultyEasy},
			{Front: "What is a matrix?", Back: "y", Difficulty: model.DifficultyMedium},
		},
	})
	return decks, d
}

func TestCardResolver_ByID(t *testing.T) {
	decks, d := seedCardDeck(t)
	r := NewCardResolver(decks)

	got, err := r.Resolve(d.ID, d.Cards[1].ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != d.Cards[1].ID {
		t.Errorf("resolved wrong card: %s", got.ID)
	}
}

func TestCardResolver_ByFrontPrefix(t *testing.T) {
	decks, d := seedCardDeck(t)
	r := NewCardResolver(decks)

	got, err := r.Resolve(d.ID, "what is a poly")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != d.Cards[0].ID {
		t.Errorf("resolved wrong card: %s", got.ID)
	}
}

func TestCardResolver_AmbiguousPrefix(t *testing.T) {
	decks, d := seedCardDeck(t)
	r := NewCardResolver(decks)

	if _, err := r.Resolve(d.ID, "what is a"); !errors.IsValidationError(err) {
		t.Errorf("expected validation error for ambiguous prefix, got: %v", err)
	}
}

func TestCardResolver_NotFound(t *testing.T) {
	decks, d := seedCardDeck(t)
	r := NewCardResolver(decks)

	if _, err := r.Resolve(d.ID, "nonexistent"); !errors.IsNotFound(err) {
		t.Errorf("expected not-found, got: %v", err)
	}
	if _, err := r.Resolve("d_missing", "anything"); !errors.IsNotFound(err) {
		t.Errorf("expected not-found for unknown deck, got: %v", err)
	}
}
