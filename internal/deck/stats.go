package deck

import (
	"math"
	"time"

	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/util"
)

// Distribution counts cards per difficulty level.
type Distribution struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Stats summarizes the whole collection. Every number is derived from the
// current collection on each call; nothing is cached or persisted
// independently.
type Stats struct {
	TotalDecks             int          `json:"totalDecks"`
	TotalCards             int          `json:"totalCards"`
	CardsDueForReview      int          `json:"cardsDueForReview"`
	DifficultyDistribution Distribution `json:"difficultyDistribution"`
	StudyStreak            int          `json:"studyStreak"`
}

// PerformanceMetrics summarizes review accuracy for one deck.
type PerformanceMetrics struct {
	DeckID          string     `json:"deckId"`
	TotalReviews    int        `json:"totalReviews"`
	AverageAccuracy float64    `json:"averageAccuracy"`
	MasteryLevel    float64    `json:"masteryLevel"`
	LastStudied     *time.Time `json:"lastStudied,omitempty"`
}

// Stats derives collection-wide numbers. The study streak counts
// consecutive calendar days, ending today or yesterday, on which at least
// one card was reviewed.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	st := Stats{TotalDecks: len(s.decks)}
	reviewDays := map[time.Time]bool{}

	for _, d := range s.decks {
		st.TotalCards += len(d.Cards)
		for j := range d.Cards {
			c := &d.Cards[j]
			if c.DueAt(now) {
				st.CardsDueForReview++
			}
			switch c.Difficulty {
			case model.DifficultyEasy:
				st.DifficultyDistribution.Easy++
			case model.DifficultyMedium:
				st.DifficultyDistribution.Medium++
			case model.DifficultyHard:
				st.DifficultyDistribution.Hard++
			}
			if !c.LastReviewed.IsZero() {
				reviewDays[util.StartOfDay(c.LastReviewed.In(now.Location()))] = true
			}
		}
	}

	st.StudyStreak = streakFrom(reviewDays, now)
	return st
}

// streakFrom walks backwards from today counting consecutive review days.
// A streak that ended yesterday still counts; one that ended earlier is 0.
func streakFrom(days map[time.Time]bool, now time.Time) int {
	day := util.StartOfDay(now)
	if !days[day] {
		day = day.AddDate(0, 0, -1)
		if !days[day] {
			return 0
		}
	}
	streak := 0
	for days[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// PerformanceMetrics derives review metrics for one deck. An unknown deck
// yields zero-valued metrics. Accuracy is cumulative correct answers over
// total reviews; LastStudied is nil until some card has been reviewed.
func (s *Store) PerformanceMetrics(deckID string) PerformanceMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := PerformanceMetrics{DeckID: deckID}
	i := s.indexOf(deckID)
	if i < 0 {
		return m
	}

	correct := 0
	var last time.Time
	for j := range s.decks[i].Cards {
		c := &s.decks[i].Cards[j]
		m.TotalReviews += c.TotalReviews
		correct += c.CorrectTotal
		if c.LastReviewed.After(last) {
			last = c.LastReviewed
		}
	}

	if m.TotalReviews > 0 {
		m.AverageAccuracy = float64(correct) / float64(m.TotalReviews) * 100
	}
	m.MasteryLevel = math.Min(m.AverageAccuracy, 100)
	if !last.IsZero() {
		m.LastStudied = &last
	}
	return m
}
