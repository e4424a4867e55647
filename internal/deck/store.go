// Package deck implements the in-memory flashcard deck collection: CRUD,
// card management, querying, statistics, and the deck import/export codec.
//
// The store owns its collection outright. Mutations are copy-on-write at
// the deck level: a deck value is never edited in place, it is cloned,
// changed, and swapped into the collection under the write lock. Readers
// therefore always observe a consistent snapshot, never a half-updated
// deck. Query methods return clones; callers cannot reach the internal
// state through returned values.
package deck

import (
	"sync"
	"time"

	"github.com/examklar/examklar/internal/id"
	"github.com/examklar/examklar/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// EventType identifies what kind of mutation an Event describes.
type EventType string

const (
	EventDeckCreated  EventType = "deck_created"
	EventDeckUpdated  EventType = "deck_updated"
	EventDeckDeleted  EventType = "deck_deleted"
	EventDeckImported EventType = "deck_imported"
	EventCardAdded    EventType = "card_added"
	EventCardUpdated  EventType = "card_updated"
	EventCardRemoved  EventType = "card_removed"
	EventCardMoved    EventType = "card_moved"
)

// Event is emitted to subscribers after every successful mutation.
type Event struct {
	Type   EventType `json:"type"`
	DeckID string    `json:"deck_id,omitempty"`
	CardID string    `json:"card_id,omitempty"`
}

// Store holds the deck collection.
type Store struct {
	mu       sync.RWMutex
	decks    []*model.Deck
	collator *collate.Collator

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLocale sets the locale used for deck name collation. Unrecognized
// tags fall back to the undetermined locale.
func WithLocale(tag string) Option {
	return func(s *Store) {
		s.collator = collate.New(language.Make(tag))
	}
}

// NewStore creates an empty deck store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		collator: collate.New(language.English),
		subs:     make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a callback invoked after each mutation. The returned
// function removes the subscription. Callbacks run synchronously on the
// mutating goroutine, after the collection swap, outside the store lock.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, key)
	}
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// CreateDeck adds a new deck with a fresh ID and creation timestamp and
// returns it. Cards in the input get fresh IDs too. Duplicate names are
// allowed.
func (s *Store) CreateDeck(input model.DeckInput) *model.Deck {
	now := time.Now()
	deck := &model.Deck{
		ID:          id.Generate(id.Deck),
		SubjectID:   input.SubjectID,
		Name:        input.Name,
		Description: input.Description,
		Cards:       make([]model.Card, 0, len(input.Cards)),
		CreatedAt:   now,
	}
	for _, ci := range input.Cards {
		deck.Cards = append(deck.Cards, newCard(ci, now))
	}

	s.mu.Lock()
	s.decks = append(s.decks, deck)
	s.mu.Unlock()

	s.notify(Event{Type: EventDeckCreated, DeckID: deck.ID})
	return deck.Clone()
}

// newCard builds a card from input, assigning ID and creation timestamp.
// A zero NextReview means the card is due immediately.
func newCard(input model.CardInput, now time.Time) model.Card {
	next := input.NextReview
	if next.IsZero() {
		next = now
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Card{
		ID:            id.Generate(id.Card),
		Front:         input.Front,
		Back:          input.Back,
		Difficulty:    input.Difficulty,
		Tags:          tags,
		LastReviewed:  input.LastReviewed,
		NextReview:    next,
		CorrectStreak: input.CorrectStreak,
		CorrectTotal:  input.CorrectTotal,
		TotalReviews:  input.TotalReviews,
		CreatedAt:     now,
	}
}

// UpdateDeck merges the patch into the matching deck. Unknown IDs are a
// silent no-op.
func (s *Store) UpdateDeck(deckID string, patch model.DeckPatch) {
	s.mu.Lock()
	i := s.indexOf(deckID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	deck := s.decks[i].Clone()
	if patch.Name != nil {
		deck.Name = *patch.Name
	}
	if patch.Description != nil {
		deck.Description = *patch.Description
	}
	s.decks[i] = deck
	s.mu.Unlock()

	s.notify(Event{Type: EventDeckUpdated, DeckID: deckID})
}

// DeleteDeck removes the deck and all of its cards. Unknown IDs are a
// silent no-op.
func (s *Store) DeleteDeck(deckID string) {
	s.mu.Lock()
	i := s.indexOf(deckID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.decks = append(s.decks[:i:i], s.decks[i+1:]...)
	s.mu.Unlock()

	s.notify(Event{Type: EventDeckDeleted, DeckID: deckID})
}

// GetDeckByID returns a copy of the deck, or nil if it doesn't exist.
func (s *Store) GetDeckByID(deckID string) *model.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(deckID); i >= 0 {
		return s.decks[i].Clone()
	}
	return nil
}

// GetDecksBySubject returns all decks for the subject, in collection order.
func (s *Store) GetDecksBySubject(subjectID string) []*model.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*model.Deck{}
	for _, d := range s.decks {
		if d.SubjectID == subjectID {
			out = append(out, d.Clone())
		}
	}
	return out
}

// GetDecks returns the full collection in insertion order.
func (s *Store) GetDecks() []*model.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneAllLocked()
}

// Len returns the number of decks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.decks)
}

// AddCardToDeck appends a new card to the deck and returns it. Returns nil
// without changing anything if the deck doesn't exist.
func (s *Store) AddCardToDeck(deckID string, input model.CardInput) *model.Card {
	now := time.Now()
	card := newCard(input, now)

	s.mu.Lock()
	i := s.indexOf(deckID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	deck := s.decks[i].Clone()
	deck.Cards = append(deck.Cards, card)
	s.decks[i] = deck
	s.mu.Unlock()

	s.notify(Event{Type: EventCardAdded, DeckID: deckID, CardID: card.ID})
	out := card.Clone()
	return &out
}

// UpdateCardInDeck merges the patch into the matching card only;
// unspecified fields are unchanged. Unknown deck or card IDs are a silent
// no-op.
func (s *Store) UpdateCardInDeck(deckID, cardID string, patch model.CardPatch) {
	s.mu.Lock()
	i := s.indexOf(deckID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	j := s.decks[i].CardIndex(cardID)
	if j < 0 {
		s.mu.Unlock()
		return
	}
	deck := s.decks[i].Clone()
	applyCardPatch(&deck.Cards[j], patch)
	s.decks[i] = deck
	s.mu.Unlock()

	s.notify(Event{Type: EventCardUpdated, DeckID: deckID, CardID: cardID})
}

func applyCardPatch(c *model.Card, patch model.CardPatch) {
	if patch.Front != nil {
		c.Front = *patch.Front
	}
	if patch.Back != nil {
		c.Back = *patch.Back
	}
	if patch.Difficulty != nil {
		c.Difficulty = *patch.Difficulty
	}
	if patch.Tags != nil {
		tags := make([]string, len(*patch.Tags))
		copy(tags, *patch.Tags)
		c.Tags = tags
	}
	if patch.LastReviewed != nil {
		c.LastReviewed = *patch.LastReviewed
	}
	if patch.NextReview != nil {
		c.NextReview = *patch.NextReview
	}
	if patch.CorrectStreak != nil {
		c.CorrectStreak = *patch.CorrectStreak
	}
	if patch.CorrectTotal != nil {
		c.CorrectTotal = *patch.CorrectTotal
	}
	if patch.TotalReviews != nil {
		c.TotalReviews = *patch.TotalReviews
	}
}

// RemoveCardFromDeck removes the card. Unknown deck or card IDs are a
// silent no-op.
func (s *Store) RemoveCardFromDeck(deckID, cardID string) {
	s.mu.Lock()
	i := s.indexOf(deckID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	j := s.decks[i].CardIndex(cardID)
	if j < 0 {
		s.mu.Unlock()
		return
	}
	deck := s.decks[i].Clone()
	deck.Cards = append(deck.Cards[:j:j], deck.Cards[j+1:]...)
	s.decks[i] = deck
	s.mu.Unlock()

	s.notify(Event{Type: EventCardRemoved, DeckID: deckID, CardID: cardID})
}

// MoveCardBetweenDecks atomically removes the card from the source deck
// and appends it, same ID and all, to the target deck. If the card is not
// in the source deck, or either deck is missing, neither deck changes.
// Moving a card onto its own deck is a no-op.
func (s *Store) MoveCardBetweenDecks(cardID, fromDeckID, toDeckID string) {
	if fromDeckID == toDeckID {
		return
	}

	s.mu.Lock()
	fi := s.indexOf(fromDeckID)
	ti := s.indexOf(toDeckID)
	if fi < 0 || ti < 0 {
		s.mu.Unlock()
		return
	}
	ci := s.decks[fi].CardIndex(cardID)
	if ci < 0 {
		s.mu.Unlock()
		return
	}

	from := s.decks[fi].Clone()
	to := s.decks[ti].Clone()
	card := from.Cards[ci]
	from.Cards = append(from.Cards[:ci:ci], from.Cards[ci+1:]...)
	to.Cards = append(to.Cards, card)

	// Both decks swap in the same critical section so no reader ever sees
	// the card in zero or two decks.
	s.decks[fi] = from
	s.decks[ti] = to
	s.mu.Unlock()

	s.notify(Event{Type: EventCardMoved, DeckID: toDeckID, CardID: cardID})
}

// indexOf returns the position of the deck with the given ID, or -1.
// Caller must hold the lock.
func (s *Store) indexOf(deckID string) int {
	for i, d := range s.decks {
		if d.ID == deckID {
			return i
		}
	}
	return -1
}

// cloneAllLocked copies the collection. Caller must hold at least the
// read lock.
func (s *Store) cloneAllLocked() []*model.Deck {
	out := make([]*model.Deck, len(s.decks))
	for i, d := range s.decks {
		out[i] = d.Clone()
	}
	return out
}
