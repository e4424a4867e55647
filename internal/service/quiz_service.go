package service

import (
	"time"

	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/model"
)

// QuizService grades quiz attempts.
type QuizService struct {
	planner *PlannerService
}

// NewQuizService creates a new quiz service.
func NewQuizService(planner *PlannerService) *QuizService {
	return &QuizService{planner: planner}
}

// Grade scores an attempt at the quiz. answers holds the selected option
// index per question, in question order; -1 marks an unanswered question.
// The result is persisted before being returned.
func (s *QuizService) Grade(quizID string, answers []int) (*model.QuizResult, error) {
	quiz, err := s.planner.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if len(answers) != len(quiz.Questions) {
		return nil, errors.InvalidField("answers", "must have one entry per question")
	}

	result := model.QuizResult{
		QuizID:         quizID,
		TotalQuestions: len(quiz.Questions),
		CompletedAt:    time.Now(),
	}

	earned, possible := 0, 0
	for i, q := range quiz.Questions {
		correct := answers[i] == q.CorrectAnswer
		if correct {
			result.CorrectAnswers++
			earned += q.Points
		}
		possible += q.Points
		result.Answers = append(result.Answers, model.QuizAnswer{
			QuestionID:     q.ID,
			SelectedAnswer: answers[i],
			Correct:        correct,
		})
	}

	if possible > 0 {
		result.Score = earned * 100 / possible
	}
	result.Passed = result.Score >= quiz.PassingScore

	if err := s.planner.RecordResult(result); err != nil {
		return nil, err
	}
	return &result, nil
}
