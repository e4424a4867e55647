package model

import "time"

// Difficulty rates how hard a flashcard is to answer.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Deck is a named collection of flashcards belonging to a subject.
// Decks are only mutated through the deck store; every mutation replaces
// the deck value rather than editing it in place.
type Deck struct {
	ID          string
	SubjectID   string
	Name        string
	Description string
	Cards       []Card
	CreatedAt   time.Time
}

// Card is a single front/back flashcard with spaced-repetition state.
// CorrectStreak is the current run of consecutive correct answers;
// CorrectTotal is the cumulative number of correct answers. The review
// flow maintains both, the deck store only reads them.
type Card struct {
	ID            string
	Front         string
	Back          string
	Difficulty    Difficulty
	Tags          []string
	LastReviewed  time.Time
	NextReview    time.Time
	CorrectStreak int
	CorrectTotal  int
	TotalReviews  int
	CreatedAt     time.Time
}

// DueAt reports whether the card is due for review at the given time.
// A card whose NextReview equals t exactly is due.
func (c *Card) DueAt(t time.Time) bool {
	return !c.NextReview.After(t)
}

// HasAnyTag reports whether the card carries at least one of the given tags.
func (c *Card) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range c.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the card (tags included).
func (c *Card) Clone() Card {
	out := *c
	if c.Tags != nil {
		out.Tags = make([]string, len(c.Tags))
		copy(out.Tags, c.Tags)
	}
	return out
}

// Clone returns a deep copy of the deck and its cards.
func (d *Deck) Clone() *Deck {
	out := *d
	out.Cards = make([]Card, len(d.Cards))
	for i := range d.Cards {
		out.Cards[i] = d.Cards[i].Clone()
	}
	return &out
}

// CardIndex returns the position of the card with the given ID, or -1.
func (d *Deck) CardIndex(cardID string) int {
	for i := range d.Cards {
		if d.Cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

// DeckInput carries the caller-supplied fields for creating a deck.
// IDs and creation timestamps are always assigned by the store.
type DeckInput struct {
	SubjectID   string
	Name        string
	Description string
	Cards       []CardInput
}

// CardInput carries the caller-supplied fields for creating a card.
type CardInput struct {
	Front         string
	Back          string
	Difficulty    Difficulty
	Tags          []string
	LastReviewed  time.Time
	NextReview    time.Time
	CorrectStreak int
	CorrectTotal  int
	TotalReviews  int
}

// DeckPatch is a partial update to a deck. Nil fields are left unchanged.
type DeckPatch struct {
	Name        *string
	Description *string
}

// CardPatch is a partial update to a card. Nil fields are left unchanged.
type CardPatch struct {
	Front         *string
	Back          *string
	Difficulty    *Difficulty
	Tags          *[]string
	LastReviewed  *time.Time
	NextReview    *time.Time
	CorrectStreak *int
	CorrectTotal  *int
	TotalReviews  *int
}
