package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/examklar/examklar/internal/config"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/util"
	"github.com/examklar/examklar/internal/version"
)

// PlannerState is everything the planner side of examklar persists:
// subjects, quizzes, study plans, sessions, and quiz results. Decks live
// in their own snapshot.
type PlannerState struct {
	Subjects []model.Subject
	Quizzes  []model.Quiz
	Plans    []model.StudyPlan
	Sessions []model.StudySession
	Results  []model.QuizResult
}

// plannerSnapshot is the on-disk shape of planner.json. Dates are ISO-8601
// strings and durations are whole seconds, matching the decks snapshot
// conventions.
type plannerSnapshot struct {
	Schema   string           `json:"schema"`
	Subjects []subjectWire    `json:"subjects"`
	Quizzes  []quizWire       `json:"quizzes"`
	Plans    []planWire       `json:"studyPlans"`
	Sessions []sessionWire    `json:"sessions"`
	Results  []quizResultWire `json:"quizResults"`
}

type subjectWire struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Emoji          string `json:"emoji,omitempty"`
	ExamDate       string `json:"examDate,omitempty"`
	EstimatedHours int    `json:"estimatedHours"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

type quizWire struct {
	ID               string         `json:"id"`
	SubjectID        string         `json:"subjectId"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	Questions        []questionWire `json:"questions"`
	TimeLimitSeconds int            `json:"timeLimitSeconds"`
	PassingScore     int            `json:"passingScore"`
	CreatedAt        string         `json:"createdAt,omitempty"`
}

type questionWire struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty"`
	Points        int      `json:"points"`
}

type planWire struct {
	ID               string           `json:"id"`
	SubjectID        string           `json:"subjectId"`
	TotalDays        int              `json:"totalDays"`
	DailyGoalMinutes int              `json:"dailyGoalMinutes"`
	WeeklyGoals      []weeklyGoalWire `json:"weeklyGoals"`
	Milestones       []milestoneWire  `json:"milestones"`
	CreatedAt        string           `json:"createdAt,omitempty"`
}

type weeklyGoalWire struct {
	Week         int      `json:"week"`
	TargetHours  int      `json:"targetHours"`
	TargetTopics []string `json:"targetTopics"`
	Milestones   []string `json:"milestones"`
}

type milestoneWire struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TargetDate  string `json:"targetDate,omitempty"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type sessionWire struct {
	ID                     string   `json:"id"`
	SubjectID              string   `json:"subjectId"`
	StartTime              string   `json:"startTime,omitempty"`
	PlannedDurationSeconds int      `json:"plannedDurationSeconds"`
	Status                 string   `json:"status"`
	Topics                 []string `json:"topics"`
}

type quizResultWire struct {
	QuizID         string           `json:"quizId"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	Passed         bool             `json:"passed"`
	Answers        []quizAnswerWire `json:"answers"`
	CompletedAt    string           `json:"completedAt,omitempty"`
}

type quizAnswerWire struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer int    `json:"selectedAnswer"`
	Correct        bool   `json:"correct"`
}

// FilePlannerStore implements PlannerStore using the filesystem.
type FilePlannerStore struct {
	paths *config.Paths
}

// NewPlannerStore creates a new planner store.
func NewPlannerStore(paths *config.Paths) *FilePlannerStore {
	return &FilePlannerStore{paths: paths}
}

// Load reads the planner snapshot from disk. A missing file yields an
// empty state.
func (s *FilePlannerStore) Load() (*PlannerState, error) {
	path := s.paths.PlannerPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PlannerState{}, nil
		}
		return nil, fmt.Errorf("failed to read planner snapshot: %w", err)
	}

	var snap plannerSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid planner snapshot: %w", err)
	}

	// Strict version validation
	if snap.Schema == "" {
		return nil, version.MissingPlannerSchema(path)
	}
	if snap.Schema != version.CurrentPlannerSchema() {
		return nil, version.InvalidPlannerSchema(path, snap.Schema)
	}

	return snapshotToState(&snap), nil
}

// Save writes the planner snapshot to disk, stamping the current schema
// version.
func (s *FilePlannerStore) Save(state *PlannerState) error {
	snap := stateToSnapshot(state)
	snap.Schema = version.CurrentPlannerSchema()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal planner snapshot: %w", err)
	}

	return writeFileAtomic(s.paths.PlannerPath(), data)
}

// Exists reports whether the planner snapshot file is present.
func (s *FilePlannerStore) Exists() bool {
	_, err := os.Stat(s.paths.PlannerPath())
	return err == nil
}

func stateToSnapshot(state *PlannerState) *plannerSnapshot {
	snap := &plannerSnapshot{
		Subjects: []subjectWire{},
		Quizzes:  []quizWire{},
		Plans:    []planWire{},
		Sessions: []sessionWire{},
		Results:  []quizResultWire{},
	}
	for _, sub := range state.Subjects {
		snap.Subjects = append(snap.Subjects, subjectWire{
			ID:             sub.ID,
			Name:           sub.Name,
			Description:    sub.Description,
			Emoji:          sub.Emoji,
			ExamDate:       formatOptional(sub.ExamDate),
			EstimatedHours: sub.EstimatedHours,
			CreatedAt:      formatOptional(sub.CreatedAt),
		})
	}
	for _, q := range state.Quizzes {
		qw := quizWire{
			ID:               q.ID,
			SubjectID:        q.SubjectID,
			Title:            q.Title,
			Description:      q.Description,
			Questions:        []questionWire{},
			TimeLimitSeconds: int(q.TimeLimit / time.Second),
			PassingScore:     q.PassingScore,
			CreatedAt:        formatOptional(q.CreatedAt),
		}
		for _, question := range q.Questions {
			qw.Questions = append(qw.Questions, questionWire{
				ID:            question.ID,
				Question:      question.Question,
				Options:       question.Options,
				CorrectAnswer: question.CorrectAnswer,
				Explanation:   question.Explanation,
				Difficulty:    string(question.Difficulty),
				Points:        question.Points,
			})
		}
		snap.Quizzes = append(snap.Quizzes, qw)
	}
	for _, p := range state.Plans {
		pw := planWire{
			ID:               p.ID,
			SubjectID:        p.SubjectID,
			TotalDays:        p.TotalDays,
			DailyGoalMinutes: p.DailyGoalMinutes,
			WeeklyGoals:      []weeklyGoalWire{},
			Milestones:       []milestoneWire{},
			CreatedAt:        formatOptional(p.CreatedAt),
		}
		for _, g := range p.WeeklyGoals {
			pw.WeeklyGoals = append(pw.WeeklyGoals, weeklyGoalWire(g))
		}
		for _, m := range p.Milestones {
			pw.Milestones = append(pw.Milestones, milestoneWire{
				ID:          m.ID,
				Title:       m.Title,
				Description: m.Description,
				TargetDate:  formatOptional(m.TargetDate),
				Completed:   m.Completed,
				CompletedAt: formatOptional(m.CompletedAt),
			})
		}
		snap.Plans = append(snap.Plans, pw)
	}
	for _, sess := range state.Sessions {
		snap.Sessions = append(snap.Sessions, sessionWire{
			ID:                     sess.ID,
			SubjectID:              sess.SubjectID,
			StartTime:              formatOptional(sess.StartTime),
			PlannedDurationSeconds: int(sess.PlannedDuration / time.Second),
			Status:                 string(sess.Status),
			Topics:                 sess.Topics,
		})
	}
	for _, r := range state.Results {
		rw := quizResultWire{
			QuizID:         r.QuizID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			CorrectAnswers: r.CorrectAnswers,
			Passed:         r.Passed,
			Answers:        []quizAnswerWire{},
			CompletedAt:    formatOptional(r.CompletedAt),
		}
		for _, a := range r.Answers {
			rw.Answers = append(rw.Answers, quizAnswerWire(a))
		}
		snap.Results = append(snap.Results, rw)
	}
	return snap
}

func snapshotToState(snap *plannerSnapshot) *PlannerState {
	state := &PlannerState{}
	for _, sw := range snap.Subjects {
		state.Subjects = append(state.Subjects, model.Subject{
			ID:             sw.ID,
			Name:           sw.Name,
			Description:    sw.Description,
			Emoji:          sw.Emoji,
			ExamDate:       parseOptional(sw.ExamDate),
			EstimatedHours: sw.EstimatedHours,
			CreatedAt:      parseOptional(sw.CreatedAt),
		})
	}
	for _, qw := range snap.Quizzes {
		q := model.Quiz{
			ID:           qw.ID,
			SubjectID:    qw.SubjectID,
			Title:        qw.Title,
			Description:  qw.Description,
			TimeLimit:    time.Duration(qw.TimeLimitSeconds) * time.Second,
			PassingScore: qw.PassingScore,
			CreatedAt:    parseOptional(qw.CreatedAt),
		}
		for _, question := range qw.Questions {
			q.Questions = append(q.Questions, model.QuizQuestion{
				ID:            question.ID,
				Question:      question.Question,
				Options:       question.Options,
				CorrectAnswer: question.CorrectAnswer,
				Explanation:   question.Explanation,
				Difficulty:    model.Difficulty(question.Difficulty),
				Points:        question.Points,
			})
		}
		state.Quizzes = append(state.Quizzes, q)
	}
	for _, pw := range snap.Plans {
		p := model.StudyPlan{
			ID:               pw.ID,
			SubjectID:        pw.SubjectID,
			TotalDays:        pw.TotalDays,
			DailyGoalMinutes: pw.DailyGoalMinutes,
			CreatedAt:        parseOptional(pw.CreatedAt),
		}
		for _, g := range pw.WeeklyGoals {
			p.WeeklyGoals = append(p.WeeklyGoals, model.WeeklyGoal(g))
		}
		for _, mw := range pw.Milestones {
			p.Milestones = append(p.Milestones, model.Milestone{
				ID:          mw.ID,
				Title:       mw.Title,
				Description: mw.Description,
				TargetDate:  parseOptional(mw.TargetDate),
				Completed:   mw.Completed,
				CompletedAt: parseOptional(mw.CompletedAt),
			})
		}
		state.Plans = append(state.Plans, p)
	}
	for _, sw := range snap.Sessions {
		state.Sessions = append(state.Sessions, model.StudySession{
			ID:              sw.ID,
			SubjectID:       sw.SubjectID,
			StartTime:       parseOptional(sw.StartTime),
			PlannedDuration: time.Duration(sw.PlannedDurationSeconds) * time.Second,
			Status:          model.SessionStatus(sw.Status),
			Topics:          sw.Topics,
		})
	}
	for _, rw := range snap.Results {
		r := model.QuizResult{
			QuizID:         rw.QuizID,
			Score:          rw.Score,
			TotalQuestions: rw.TotalQuestions,
			CorrectAnswers: rw.CorrectAnswers,
			Passed:         rw.Passed,
			CompletedAt:    parseOptional(rw.CompletedAt),
		}
		for _, a := range rw.Answers {
			r.Answers = append(r.Answers, model.QuizAnswer(a))
		}
		state.Results = append(state.Results, r)
	}
	return state
}

func formatOptional(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return util.FormatISO(t)
}

func parseOptional(s string) time.Time {
	if t, ok := util.ParseISO(s); ok {
		return t
	}
	return time.Time{}
}
