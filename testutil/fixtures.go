// Package testutil provides shared fixtures for tests.
package testutil

import (
	"time"

	"github.com/examklar/examklar/internal/model"
)

// DueCardInput returns a card input whose review is already due.
func DueCardInput(front string) model.CardInput {
	return model.CardInput{
		Front:      front,
		Back:       "answer",
		Difficulty: model.DifficultyMedium,
		NextReview: time.Now().Add(-time.Hour),
	}
}
