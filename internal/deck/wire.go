package deck

import (
	"time"

	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/util"
)

// Wire is the JSON representation of a deck, used both for user-facing
// export/import and for the persisted snapshot. Dates are ISO-8601
// strings; the in-memory model only sees time.Time. Conversion happens
// here and nowhere else.
type Wire struct {
	ID          string     `json:"id,omitempty"`
	SubjectID   string     `json:"subjectId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cards       []CardWire `json:"cards"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}

// CardWire is the JSON representation of a card.
type CardWire struct {
	ID            string   `json:"id,omitempty"`
	Front         string   `json:"front"`
	Back          string   `json:"back"`
	Difficulty    string   `json:"difficulty"`
	Tags          []string `json:"tags"`
	LastReviewed  string   `json:"lastReviewed,omitempty"`
	NextReview    string   `json:"nextReview,omitempty"`
	CorrectStreak int      `json:"correctStreak,omitempty"`
	CorrectTotal  int      `json:"correctTotal,omitempty"`
	TotalReviews  int      `json:"totalReviews,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// ToWire converts a deck to its wire representation.
func ToWire(d *model.Deck) Wire {
	w := Wire{
		ID:          d.ID,
		SubjectID:   d.SubjectID,
		Name:        d.Name,
		Description: d.Description,
		Cards:       make([]CardWire, len(d.Cards)),
		CreatedAt:   util.FormatISO(d.CreatedAt),
	}
	for i := range d.Cards {
		w.Cards[i] = CardToWire(&d.Cards[i])
	}
	return w
}

// CardToWire converts a single card to its wire representation.
func CardToWire(c *model.Card) CardWire {
	w := CardWire{
		ID:            c.ID,
		Front:         c.Front,
		Back:          c.Back,
		Difficulty:    string(c.Difficulty),
		Tags:          c.Tags,
		CorrectStreak: c.CorrectStreak,
		CorrectTotal:  c.CorrectTotal,
		TotalReviews:  c.TotalReviews,
	}
	if w.Tags == nil {
		w.Tags = []string{}
	}
	if !c.LastReviewed.IsZero() {
		w.LastReviewed = util.FormatISO(c.LastReviewed)
	}
	if !c.NextReview.IsZero() {
		w.NextReview = util.FormatISO(c.NextReview)
	}
	if !c.CreatedAt.IsZero() {
		w.CreatedAt = util.FormatISO(c.CreatedAt)
	}
	return w
}

// FromWire rehydrates a deck from its wire representation, preserving IDs
// and timestamps. Used by the snapshot store on load; import goes through
// Store.ImportDeck instead, which regenerates identities.
func FromWire(w Wire) *model.Deck {
	d := &model.Deck{
		ID:          w.ID,
		SubjectID:   w.SubjectID,
		Name:        w.Name,
		Description: w.Description,
		Cards:       make([]model.Card, len(w.Cards)),
	}
	if t, ok := util.ParseISO(w.CreatedAt); ok {
		d.CreatedAt = t
	} else {
		d.CreatedAt = time.Now()
	}
	for i, cw := range w.Cards {
		d.Cards[i] = cardFromWire(cw)
	}
	return d
}

func cardFromWire(w CardWire) model.Card {
	now := time.Now()
	c := model.Card{
		ID:            w.ID,
		Front:         w.Front,
		Back:          w.Back,
		Difficulty:    model.Difficulty(w.Difficulty),
		Tags:          w.Tags,
		CorrectStreak: w.CorrectStreak,
		CorrectTotal:  w.CorrectTotal,
		TotalReviews:  w.TotalReviews,
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if t, ok := util.ParseISO(w.LastReviewed); ok {
		c.LastReviewed = t
	}
	if t, ok := util.ParseISO(w.NextReview); ok {
		c.NextReview = t
	} else {
		c.NextReview = now
	}
	if t, ok := util.ParseISO(w.CreatedAt); ok {
		c.CreatedAt = t
	} else {
		c.CreatedAt = now
	}
	return c
}

// Snapshot converts the whole collection to wire form for persistence.
func (s *Store) Snapshot() []Wire {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Wire, len(s.decks))
	for i, d := range s.decks {
		out[i] = ToWire(d)
	}
	return out
}

// Restore replaces the collection with the rehydrated snapshot. Meant for
// cold start, before any subscribers are attached; it emits no events.
func (s *Store) Restore(ws []Wire) {
	decks := make([]*model.Deck, len(ws))
	for i, w := range ws {
		decks[i] = FromWire(w)
	}
	s.mu.Lock()
	s.decks = decks
	s.mu.Unlock()
}
