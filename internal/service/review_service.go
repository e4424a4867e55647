package service

import (
	"time"

	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/history"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/srs"
)

// ReviewService applies review results to cards: scheduling, counters,
// and the history log.
type ReviewService struct {
	decks   *deck.Store
	params  *srs.Params
	history *history.DB
}

// NewReviewService creates a new review service. The history database may
// be nil, in which case reviews are not logged.
func NewReviewService(decks *deck.Store, params *srs.Params, hist *history.DB) *ReviewService {
	if params == nil {
		params = srs.DefaultParams()
	}
	return &ReviewService{decks: decks, params: params, history: hist}
}

// ReviewResult describes what a recorded review did to the card.
type ReviewResult struct {
	Card       model.Card
	DeckID     string
	NextReview time.Time
	Correct    bool
}

// RecordReview applies a graded review to the card: reschedules it, bumps
// the counters, and appends to the history log. Unlike deck mutations, an
// unknown card here is a real error; grading a card that doesn't exist
// means the caller's state is stale.
func (s *ReviewService) RecordReview(cardID string, grade srs.Grade) (*ReviewResult, error) {
	if !grade.Valid() {
		return nil, errors.InvalidField("grade", "must be between 1 (again) and 4 (easy)")
	}

	deckID := s.decks.DeckForCard(cardID)
	if deckID == "" {
		return nil, errors.CardNotFound(cardID)
	}
	d := s.decks.GetDeckByID(deckID)
	card := d.Cards[d.CardIndex(cardID)]

	now := time.Now()
	outcome := s.params.Review(&card, grade, now)

	correctTotal := card.CorrectTotal
	if grade.Correct() {
		correctTotal++
	}
	totalReviews := card.TotalReviews + 1

	s.decks.UpdateCardInDeck(deckID, cardID, model.CardPatch{
		LastReviewed:  &now,
		NextReview:    &outcome.NextReview,
		CorrectStreak: &outcome.CorrectStreak,
		CorrectTotal:  &correctTotal,
		TotalReviews:  &totalReviews,
	})

	// The log is best-effort; a failed insert must not undo the review.
	if s.history != nil {
		_ = s.history.Insert(history.Review{
			CardID:     cardID,
			DeckID:     deckID,
			Grade:      int(grade),
			Correct:    grade.Correct(),
			ReviewedAt: now,
		})
	}

	updated := s.decks.GetDeckByID(deckID)
	result := &ReviewResult{
		Card:       updated.Cards[updated.CardIndex(cardID)],
		DeckID:     deckID,
		NextReview: outcome.NextReview,
		Correct:    grade.Correct(),
	}
	return result, nil
}

// DueCards returns every card currently due, flattened across decks.
func (s *ReviewService) DueCards() []model.Card {
	return s.decks.CardsDueForReview()
}

// DueCardsInDeck returns the due cards of one deck.
func (s *ReviewService) DueCardsInDeck(deckID string) []model.Card {
	return s.decks.FilterCards(deckID, deck.CardFilter{DueOnly: true})
}
