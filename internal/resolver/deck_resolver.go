// Package resolver turns user-supplied identifiers into concrete records.
// Users rarely type IDs; they type deck names or card fronts, sometimes
// ambiguously, so resolution can fall back to an interactive prompt.
package resolver

import (
	"fmt"
	"strings"

	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/prompt"
)

// DeckResolver handles deck ID and name resolution.
type DeckResolver struct {
	decks    *deck.Store
	prompter prompt.Prompter
}

// NewDeckResolver creates a new deck resolver.
func NewDeckResolver(decks *deck.Store, prompter prompt.Prompter) *DeckResolver {
	if prompter == nil {
		prompter = &prompt.NoopPrompter{}
	}
	return &DeckResolver{decks: decks, prompter: prompter}
}

// Resolve finds a deck by ID or name. Exact ID match wins; otherwise the
// name is matched case-insensitively. Multiple name matches trigger an
// interactive selection, which fails in non-interactive mode.
func (r *DeckResolver) Resolve(idOrName string) (*model.Deck, error) {
	if d := r.decks.GetDeckByID(idOrName); d != nil {
		return d, nil
	}

	var matches []*model.Deck
	for _, d := range r.decks.GetDecks() {
		if strings.EqualFold(d.Name, idOrName) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.DeckNotFound(idOrName)
	case 1:
		return matches[0], nil
	}

	// Ambiguous name; let the user pick by ID.
	options := make([]string, len(matches))
	for i, d := range matches {
		options[i] = fmt.Sprintf("%s (%s, %d cards)", d.Name, d.ID, len(d.Cards))
	}
	chosen, err := r.prompter.Select(fmt.Sprintf("Multiple decks named %q:", idOrName), options)
	if err != nil {
		return nil, fmt.Errorf("deck name %q is ambiguous: %w", idOrName, err)
	}
	for i, opt := range options {
		if opt == chosen {
			return matches[i], nil
		}
	}
	return nil, errors.DeckNotFound(idOrName)
}
