package deck

import (
	"sort"
	"time"

	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/util"
)

// DeckFilter selects decks. Zero-valued criteria are ignored; when both
// are set they combine with logical AND.
type DeckFilter struct {
	Search    string // case-insensitive substring match on name or description
	SubjectID string // exact match
}

// SortBy names a deck sort key.
type SortBy string

const (
	SortByName    SortBy = "name"
	SortByCreated SortBy = "created"
	SortByCards   SortBy = "cards"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// DeckSort describes a deck ordering.
type DeckSort struct {
	By    SortBy
	Order SortOrder
}

// CardFilter selects cards within a deck. Zero-valued criteria are ignored.
type CardFilter struct {
	Difficulty model.Difficulty // exact match
	Tags       []string         // match if the card has at least one of these
	DueOnly    bool             // only cards due at or before now
}

// FilterDecks returns the decks matching the filter, preserving collection
// order.
func (s *Store) FilterDecks(f DeckFilter) []*model.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Deck{}
	for _, d := range s.decks {
		if f.Search != "" &&
			!util.ContainsFold(d.Name, f.Search) &&
			!util.ContainsFold(d.Description, f.Search) {
			continue
		}
		if f.SubjectID != "" && d.SubjectID != f.SubjectID {
			continue
		}
		out = append(out, d.Clone())
	}
	return out
}

// SortDecks returns a new ordering of the full collection. The underlying
// collection order is never touched.
func (s *Store) SortDecks(opts DeckSort) []*model.Deck {
	s.mu.RLock()
	decks := s.cloneAllLocked()
	s.mu.RUnlock()

	s.OrderDecks(decks, opts)
	return decks
}

// OrderDecks sorts the given slice in place with the store's collator.
// Lets callers compose filtering with sorting: filter first, then order
// the result.
func (s *Store) OrderDecks(decks []*model.Deck, opts DeckSort) {
	less := s.deckLess(opts.By)
	sort.SliceStable(decks, func(i, j int) bool {
		if opts.Order == Desc {
			i, j = j, i
		}
		return less(decks[i], decks[j])
	})
}

// deckLess returns the base (ascending) comparator for a sort key.
// Unknown keys fall back to name, like sorting always has.
func (s *Store) deckLess(by SortBy) func(a, b *model.Deck) bool {
	switch by {
	case SortByCreated:
		return func(a, b *model.Deck) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByCards:
		return func(a, b *model.Deck) bool { return len(a.Cards) < len(b.Cards) }
	default:
		return func(a, b *model.Deck) bool { return s.collator.CompareString(a.Name, b.Name) < 0 }
	}
}

// FilterCards returns the cards in the deck matching the filter, in deck
// order. An unknown deck yields an empty slice.
func (s *Store) FilterCards(deckID string, f CardFilter) []model.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(deckID)
	if i < 0 {
		return []model.Card{}
	}

	now := time.Now()
	out := []model.Card{}
	for j := range s.decks[i].Cards {
		c := &s.decks[i].Cards[j]
		if f.Difficulty != "" && c.Difficulty != f.Difficulty {
			continue
		}
		if len(f.Tags) > 0 && !c.HasAnyTag(f.Tags) {
			continue
		}
		if f.DueOnly && !c.DueAt(now) {
			continue
		}
		out = append(out, c.Clone())
	}
	return out
}

// CardsDueForReview flattens all decks and returns every card whose next
// review is at or before now.
func (s *Store) CardsDueForReview() []model.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	out := []model.Card{}
	for _, d := range s.decks {
		for j := range d.Cards {
			if d.Cards[j].DueAt(now) {
				out = append(out, d.Cards[j].Clone())
			}
		}
	}
	return out
}

// DeckForCard returns the ID of the deck containing the card, or "".
func (s *Store) DeckForCard(cardID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.decks {
		if d.CardIndex(cardID) >= 0 {
			return d.ID
		}
	}
	return ""
}
