package model

import "time"

// Quiz is a multiple-choice assessment for a subject.
type Quiz struct {
	ID           string         `json:"id"`
	SubjectID    string         `json:"subjectId"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Questions    []QuizQuestion `json:"questions"`
	TimeLimit    time.Duration  `json:"timeLimit"`
	PassingScore int            `json:"passingScore"` // percentage required to pass
	CreatedAt    time.Time      `json:"createdAt"`
}

// QuizQuestion is a single multiple-choice question.
// CorrectAnswer is the index into Options.
type QuizQuestion struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
	Points        int        `json:"points"`
}

// QuizAnswer records one answered question.
type QuizAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer int    `json:"selectedAnswer"`
	Correct        bool   `json:"correct"`
}

// QuizResult is the graded outcome of a quiz attempt.
type QuizResult struct {
	QuizID         string       `json:"quizId"`
	Score          int          `json:"score"` // percentage
	TotalQuestions int          `json:"totalQuestions"`
	CorrectAnswers int          `json:"correctAnswers"`
	Passed         bool         `json:"passed"`
	Answers        []QuizAnswer `json:"answers"`
	CompletedAt    time.Time    `json:"completedAt"`
}
