package deck

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/id"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/util"
)

// ExportDeck serializes the deck as pretty-printed JSON suitable for
// sharing. Returns "" if the deck doesn't exist.
func (s *Store) ExportDeck(deckID string) string {
	d := s.GetDeckByID(deckID)
	if d == nil {
		return ""
	}
	data, err := json.MarshalIndent(ToWire(d), "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// ValidateDeckData reports whether the decoded JSON value has the shape of
// an importable deck.
func ValidateDeckData(data any) bool {
	return validateDeck(data) == nil
}

// validateDeck checks the structural requirements of an importable deck:
// name and subjectId must be strings (name non-empty), cards must be an
// array, and every card needs string front/back plus a known difficulty.
// Extra fields are ignored; optional fields of the wrong type are ignored
// too, only the required shape is enforced.
func validateDeck(data any) error {
	obj, ok := data.(map[string]any)
	if !ok {
		return errors.SchemaInvalid("deck must be a JSON object")
	}
	name, ok := obj["name"].(string)
	if !ok || name == "" {
		return errors.SchemaInvalid("name must be a non-empty string")
	}
	if _, ok := obj["subjectId"].(string); !ok {
		return errors.SchemaInvalid("subjectId must be a string")
	}
	cards, ok := obj["cards"].([]any)
	if !ok {
		return errors.SchemaInvalid("cards must be an array")
	}
	for i, raw := range cards {
		card, ok := raw.(map[string]any)
		if !ok {
			return errors.SchemaInvalid(fmt.Sprintf("card %d must be a JSON object", i))
		}
		if _, ok := card["front"].(string); !ok {
			return errors.SchemaInvalid(fmt.Sprintf("card %d front must be a string", i))
		}
		if _, ok := card["back"].(string); !ok {
			return errors.SchemaInvalid(fmt.Sprintf("card %d back must be a string", i))
		}
		diff, ok := card["difficulty"].(string)
		if !ok || !model.Difficulty(diff).Valid() {
			return errors.SchemaInvalid(fmt.Sprintf("card %d difficulty must be easy, medium or hard", i))
		}
		if _, ok := card["tags"].([]any); !ok {
			return errors.SchemaInvalid(fmt.Sprintf("card %d tags must be an array", i))
		}
	}
	return nil
}

// ImportDeck parses the JSON document, validates its shape, and adds the
// deck to the collection with fresh IDs and a fresh creation timestamp.
// The whole import is all-or-nothing: on any error the collection is
// untouched. Unparseable input yields a MalformedImportError; parseable
// input with the wrong shape yields a SchemaInvalidError.
func (s *Store) ImportDeck(jsonData string) (*model.Deck, error) {
	var raw any
	if err := json.Unmarshal([]byte(jsonData), &raw); err != nil {
		return nil, errors.MalformedImport(err)
	}
	if err := validateDeck(raw); err != nil {
		return nil, err
	}

	obj := raw.(map[string]any)
	now := time.Now()
	deck := &model.Deck{
		ID:        id.Generate(id.Deck),
		SubjectID: obj["subjectId"].(string),
		Name:      obj["name"].(string),
		CreatedAt: now,
	}
	if desc, ok := obj["description"].(string); ok {
		deck.Description = desc
	}

	cards := obj["cards"].([]any)
	deck.Cards = make([]model.Card, 0, len(cards))
	for _, raw := range cards {
		deck.Cards = append(deck.Cards, importCard(raw.(map[string]any), now))
	}

	s.mu.Lock()
	s.decks = append(s.decks, deck)
	s.mu.Unlock()

	s.notify(Event{Type: EventDeckImported, DeckID: deck.ID})
	return deck.Clone(), nil
}

// importCard builds a card from a validated import object. Review dates
// are taken from the document when parseable and default to now otherwise,
// so imported cards without scheduling state come up due immediately.
// Review counters survive the import when present, so a shared deck keeps
// its accuracy history.
func importCard(obj map[string]any, now time.Time) model.Card {
	c := model.Card{
		ID:           id.Generate(id.Card),
		Front:        obj["front"].(string),
		Back:         obj["back"].(string),
		Difficulty:   model.Difficulty(obj["difficulty"].(string)),
		Tags:         []string{},
		LastReviewed: now,
		NextReview:   now,
		CreatedAt:    now,
	}
	for _, t := range obj["tags"].([]any) {
		if tag, ok := t.(string); ok {
			c.Tags = append(c.Tags, tag)
		}
	}
	if raw, ok := obj["lastReviewed"].(string); ok {
		if t, ok := util.ParseISO(raw); ok {
			c.LastReviewed = t
		}
	}
	if raw, ok := obj["nextReview"].(string); ok {
		if t, ok := util.ParseISO(raw); ok {
			c.NextReview = t
		}
	}
	c.CorrectStreak = importCounter(obj, "correctStreak")
	c.CorrectTotal = importCounter(obj, "correctTotal")
	c.TotalReviews = importCounter(obj, "totalReviews")
	return c
}

// importCounter reads a non-negative integer counter from an import
// object, treating missing, mistyped, or negative values as zero.
func importCounter(obj map[string]any, key string) int {
	n, ok := obj[key].(float64)
	if !ok || n < 0 {
		return 0
	}
	return int(n)
}
