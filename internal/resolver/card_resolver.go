package resolver

import (
	"strings"

	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/model"
)

// CardResolver handles card resolution within a deck.
type CardResolver struct {
	decks *deck.Store
}

// NewCardResolver creates a new card resolver.
func NewCardResolver(decks *deck.Store) *CardResolver {
	return &CardResolver{decks: decks}
}

// Resolve finds a card in the deck by ID, or by unique case-insensitive
// prefix of its front text.
func (r *CardResolver) Resolve(deckID, idOrFront string) (*model.Card, error) {
	d := r.decks.GetDeckByID(deckID)
	if d == nil {
		return nil, errors.DeckNotFound(deckID)
	}

	if i := d.CardIndex(idOrFront); i >= 0 {
		card := d.Cards[i]
		return &card, nil
	}

	var match *model.Card
	needle := strings.ToLower(idOrFront)
	for i := range d.Cards {
		if strings.HasPrefix(strings.ToLower(d.Cards[i].Front), needle) {
			if match != nil {
				// Two cards share the prefix; refuse to guess.
				return nil, errors.InvalidField("card", "front text matches multiple cards, use the card ID")
			}
			card := d.Cards[i]
			match = &card
		}
	}
	if match == nil {
		return nil, errors.CardNotFound(idOrFront)
	}
	return match, nil
}
