// Package service wires the deck store, planner state, scheduler, and
// history log into the operations the CLI and API expose.
package service

import (
	"strings"
	"sync"
	"time"

	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/id"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/store"
)

// PlannerService owns the planner state: subjects, quizzes, plans,
// sessions, and quiz results. Every mutation is persisted immediately.
type PlannerService struct {
	mu    sync.RWMutex
	state *store.PlannerState
	store store.PlannerStore
}

// NewPlannerService loads the planner state from the given store.
func NewPlannerService(ps store.PlannerStore) (*PlannerService, error) {
	state, err := ps.Load()
	if err != nil {
		return nil, err
	}
	return &PlannerService{state: state, store: ps}, nil
}

func (s *PlannerService) save() error {
	return s.store.Save(s.state)
}

// SubjectInput carries the caller-supplied fields for creating a subject.
type SubjectInput struct {
	Name           string
	Description    string
	Emoji          string
	ExamDate       time.Time
	EstimatedHours int
}

// AddSubject creates and persists a new subject.
func (s *PlannerService) AddSubject(input SubjectInput) (*model.Subject, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidField("name", "cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub := model.Subject{
		ID:             id.Generate(id.Subject),
		Name:           input.Name,
		Description:    input.Description,
		Emoji:          input.Emoji,
		ExamDate:       input.ExamDate,
		EstimatedHours: input.EstimatedHours,
		CreatedAt:      time.Now(),
	}
	s.state.Subjects = append(s.state.Subjects, sub)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Subjects returns all subjects in creation order.
func (s *PlannerService) Subjects() []model.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Subject, len(s.state.Subjects))
	copy(out, s.state.Subjects)
	return out
}

// FindSubject resolves a subject by ID or by case-insensitive name.
func (s *PlannerService) FindSubject(idOrName string) (*model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.state.Subjects {
		if sub.ID == idOrName || strings.EqualFold(sub.Name, idOrName) {
			out := sub
			return &out, nil
		}
	}
	return nil, errors.SubjectNotFound(idOrName)
}

// AddQuiz persists a quiz, assigning an ID if it has none.
func (s *PlannerService) AddQuiz(quiz model.Quiz) (*model.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quiz.ID == "" {
		quiz.ID = id.Generate(id.Quiz)
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now()
	}
	s.state.Quizzes = append(s.state.Quizzes, quiz)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Quizzes returns all quizzes, optionally filtered by subject.
func (s *PlannerService) Quizzes(subjectID string) []model.Quiz {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Quiz{}
	for _, q := range s.state.Quizzes {
		if subjectID == "" || q.SubjectID == subjectID {
			out = append(out, q)
		}
	}
	return out
}

// GetQuiz returns the quiz with the given ID.
func (s *PlannerService) GetQuiz(quizID string) (*model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range s.state.Quizzes {
		if q.ID == quizID {
			out := q
			return &out, nil
		}
	}
	return nil, errors.QuizNotFound(quizID)
}

// AddPlan persists a study plan.
func (s *PlannerService) AddPlan(plan model.StudyPlan) (*model.StudyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if plan.ID == "" {
		plan.ID = id.Generate(id.Plan)
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	s.state.Plans = append(s.state.Plans, plan)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// PlanForSubject returns the most recent plan for the subject, or nil.
func (s *PlannerService) PlanForSubject(subjectID string) *model.StudyPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.state.Plans) - 1; i >= 0; i-- {
		if s.state.Plans[i].SubjectID == subjectID {
			out := s.state.Plans[i]
			return &out
		}
	}
	return nil
}

// AddSessions persists a batch of study sessions.
func (s *PlannerService) AddSessions(sessions []model.StudySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range sessions {
		if sessions[i].ID == "" {
			sessions[i].ID = id.Generate(id.Session)
		}
	}
	s.state.Sessions = append(s.state.Sessions, sessions...)
	return s.save()
}

// Sessions returns all sessions, optionally filtered by subject.
func (s *PlannerService) Sessions(subjectID string) []model.StudySession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.StudySession{}
	for _, sess := range s.state.Sessions {
		if subjectID == "" || sess.SubjectID == subjectID {
			out = append(out, sess)
		}
	}
	return out
}

// CompleteSession marks a session as completed.
func (s *PlannerService) CompleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Sessions {
		if s.state.Sessions[i].ID == sessionID {
			s.state.Sessions[i].Status = model.SessionCompleted
			return s.save()
		}
	}
	return &errors.NotFoundError{Resource: "session", ID: sessionID}
}

// CompleteMilestone marks a plan milestone as completed.
func (s *PlannerService) CompleteMilestone(milestoneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Plans {
		for j := range s.state.Plans[i].Milestones {
			m := &s.state.Plans[i].Milestones[j]
			if m.ID == milestoneID {
				m.Completed = true
				m.CompletedAt = time.Now().UTC()
				return s.save()
			}
		}
	}
	return &errors.NotFoundError{Resource: "milestone", ID: milestoneID}
}

// RecordResult persists a graded quiz attempt.
func (s *PlannerService) RecordResult(result model.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Results = append(s.state.Results, result)
	return s.save()
}

// Results returns all quiz results, optionally filtered by quiz.
func (s *PlannerService) Results(quizID string) []model.QuizResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.QuizResult{}
	for _, r := range s.state.Results {
		if quizID == "" || r.QuizID == quizID {
			out = append(out, r)
		}
	}
	return out
}
