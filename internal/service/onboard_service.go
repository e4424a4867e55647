package service

import (
	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/generator"
	"github.com/examklar/examklar/internal/model"
)

// OnboardService sets up a new subject: creates it, generates starter
// content, and lands everything in the deck store and planner state.
type OnboardService struct {
	decks   *deck.Store
	planner *PlannerService
}

// NewOnboardService creates a new onboarding service.
func NewOnboardService(decks *deck.Store, planner *PlannerService) *OnboardService {
	return &OnboardService{decks: decks, planner: planner}
}

// OnboardResult summarizes what onboarding created.
type OnboardResult struct {
	Subject  model.Subject
	DeckIDs  []string
	QuizIDs  []string
	PlanID   string
	Sessions int
}

// Onboard creates the subject and populates it with generated decks,
// quizzes, a schedule, and a study plan. The generator's subject ID is
// replaced by the persisted subject's ID so everything links up.
func (s *OnboardService) Onboard(input generator.Input, onProgress generator.ProgressFunc) (*OnboardResult, error) {
	gen := generator.New(onProgress)
	content, err := gen.Generate(input)
	if err != nil {
		return nil, err
	}

	subject, err := s.planner.AddSubject(SubjectInput{
		Name:           input.SubjectName,
		ExamDate:       input.ExamDate,
		EstimatedHours: input.EstimatedHours,
	})
	if err != nil {
		return nil, err
	}

	result := &OnboardResult{Subject: *subject}

	for _, di := range content.Decks {
		di.SubjectID = subject.ID
		created := s.decks.CreateDeck(di)
		result.DeckIDs = append(result.DeckIDs, created.ID)
	}

	for _, quiz := range content.Quizzes {
		quiz.SubjectID = subject.ID
		added, err := s.planner.AddQuiz(quiz)
		if err != nil {
			return nil, err
		}
		result.QuizIDs = append(result.QuizIDs, added.ID)
	}

	for i := range content.Schedule {
		content.Schedule[i].SubjectID = subject.ID
	}
	if err := s.planner.AddSessions(content.Schedule); err != nil {
		return nil, err
	}
	result.Sessions = len(content.Schedule)

	content.Plan.SubjectID = subject.ID
	plan, err := s.planner.AddPlan(content.Plan)
	if err != nil {
		return nil, err
	}
	result.PlanID = plan.ID

	return result, nil
}
