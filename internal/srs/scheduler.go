// Package srs schedules flashcard reviews. The interval grows with the
// card's correct streak and shrinks with its difficulty; a failed review
// sends the card back to the start.
package srs

import (
	"math"
	"time"

	"github.com/examklar/examklar/internal/model"
)

// Grade is the user's response to a card review.
type Grade int

const (
	Again Grade = 1
	Hard  Grade = 2
	Good  Grade = 3
	Easy  Grade = 4
)

// Valid reports whether g is a known grade.
func (g Grade) Valid() bool {
	return g >= Again && g <= Easy
}

// Correct reports whether the grade counts as a correct answer.
func (g Grade) Correct() bool {
	return g != Again
}

// Params holds the scheduling parameters.
type Params struct {
	BaseInterval time.Duration // interval after the first correct answer
	GrowthFactor float64       // per-streak multiplier for Good answers
	HardFactor   float64       // dampens growth when the answer was Hard
	EasyFactor   float64       // boosts growth when the answer was Easy
	MaxInterval  time.Duration // cap on any single interval
}

// DefaultParams provides a set of sensible default parameters.
func DefaultParams() *Params {
	return &Params{
		BaseInterval: 24 * time.Hour,
		GrowthFactor: 2.5,
		HardFactor:   0.6,
		EasyFactor:   1.3,
		MaxInterval:  120 * 24 * time.Hour,
	}
}

// difficultyWeight shortens intervals for harder cards.
func difficultyWeight(d model.Difficulty) float64 {
	switch d {
	case model.DifficultyHard:
		return 0.7
	case model.DifficultyMedium:
		return 0.85
	default:
		return 1.0
	}
}

// Outcome is the scheduling result of a single review.
type Outcome struct {
	NextReview    time.Time
	CorrectStreak int
}

// Review computes the card's next review time and new streak for a grade.
// Again resets the streak and brings the card back in ten minutes. Correct
// answers grow the interval exponentially with the streak, scaled by the
// grade and the card's difficulty.
func (p *Params) Review(card *model.Card, grade Grade, now time.Time) Outcome {
	if grade == Again {
		return Outcome{
			NextReview:    now.Add(10 * time.Minute),
			CorrectStreak: 0,
		}
	}

	streak := card.CorrectStreak + 1
	interval := float64(p.BaseInterval) * math.Pow(p.GrowthFactor, float64(streak-1))
	interval *= difficultyWeight(card.Difficulty)

	switch grade {
	case Hard:
		interval *= p.HardFactor
	case Easy:
		interval *= p.EasyFactor
	}

	d := time.Duration(interval)
	if d > p.MaxInterval {
		d = p.MaxInterval
	}
	if d < time.Hour {
		d = time.Hour
	}

	return Outcome{
		NextReview:    now.Add(d),
		CorrectStreak: streak,
	}
}
