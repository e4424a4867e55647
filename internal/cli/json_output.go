package cli

import (
	"encoding/json"
	"fmt"

	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/model"
)

// DeckOutput wraps a single deck for JSON output.
type DeckOutput struct {
	Deck deck.Wire `json:"deck"`
}

// NewDeckOutput creates a DeckOutput from a model.Deck.
func NewDeckOutput(d *model.Deck) DeckOutput {
	return DeckOutput{Deck: deck.ToWire(d)}
}

// DeckListOutput wraps a list of decks for JSON output.
type DeckListOutput struct {
	Decks []deck.Wire `json:"decks"`
}

// NewDeckListOutput creates a DeckListOutput from decks.
// Always returns an empty array (not null) when there are no decks.
func NewDeckListOutput(decks []*model.Deck) DeckListOutput {
	result := make([]deck.Wire, 0, len(decks))
	for _, d := range decks {
		result = append(result, deck.ToWire(d))
	}
	return DeckListOutput{Decks: result}
}

// CardOutput wraps a single card for JSON output.
type CardOutput struct {
	Card deck.CardWire `json:"card"`
}

// NewCardOutput creates a CardOutput from a model.Card.
func NewCardOutput(c *model.Card) CardOutput {
	return CardOutput{Card: deck.CardToWire(c)}
}

// ReviewOutput wraps one graded review for JSON output.
type ReviewOutput struct {
	CardID     string `json:"cardId"`
	DeckID     string `json:"deckId"`
	Correct    bool   `json:"correct"`
	NextReview string `json:"nextReview"`
}

// StatsOutput wraps collection statistics for JSON output.
type StatsOutput struct {
	Stats deck.Stats `json:"stats"`
}

// MetricsOutput wraps per-deck performance metrics for JSON output.
type MetricsOutput struct {
	Metrics deck.PerformanceMetrics `json:"metrics"`
}

// QuizListOutput wraps a list of quizzes for JSON output.
type QuizListOutput struct {
	Quizzes []model.Quiz `json:"quizzes"`
}

// NewQuizListOutput creates a QuizListOutput from quizzes.
// Always returns an empty array (not null) when there are no quizzes.
func NewQuizListOutput(quizzes []model.Quiz) QuizListOutput {
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return QuizListOutput{Quizzes: quizzes}
}

// QuizResultOutput wraps a graded quiz attempt for JSON output.
type QuizResultOutput struct {
	Result model.QuizResult `json:"result"`
}

// OnboardOutput wraps onboarding results for JSON output.
type OnboardOutput struct {
	SubjectID string   `json:"subjectId"`
	Subject   string   `json:"subject"`
	DeckIDs   []string `json:"deckIds"`
	QuizIDs   []string `json:"quizIds"`
	PlanID    string   `json:"planId"`
	Sessions  int      `json:"sessions"`
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
