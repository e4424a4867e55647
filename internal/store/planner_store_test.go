package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/examklar/examklar/internal/config"
	"github.com/examklar/examklar/internal/model"
)

func setupPlannerStore(t *testing.T) (*FilePlannerStore, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(filepath.Join(t.TempDir(), ".examklar"))
	return NewPlannerStore(paths), paths
}

func TestPlannerStore_LoadMissingFile(t *testing.T) {
	s, _ := setupPlannerStore(t)

	state, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(state.Subjects) != 0 || len(state.Quizzes) != 0 {
		t.Errorf("expected empty state, got %+v", state)
	}
}

func TestPlannerStore_SaveAndLoad(t *testing.T) {
	s, _ := setupPlannerStore(t)

	examDate := time.Date(2026, 12, 15, 9, 0, 0, 0, time.UTC)
	state := &PlannerState{
		Subjects: []model.Subject{{
			ID:             "s_math",
			Name:           "Matematik",
			Emoji:          "📐",
			ExamDate:       examDate,
			EstimatedHours: 40,
			CreatedAt:      time.Now().UTC().Truncate(time.Second),
		}},
		Quizzes: []model.Quiz{{
			ID:           "q_1",
			SubjectID:    "s_math",
			Title:        "Algebra Quiz",
			TimeLimit:    10 * time.Minute,
			PassingScore: 70,
			Questions: []model.QuizQuestion{{
				ID:            "qq_1",
				Question:      "2+2?",
				Options:       []string{"3", "4", "5", "6"},
				CorrectAnswer: 1,
				Difficulty:    model.DifficultyEasy,
				Points:        10,
			}},
		}},
		Plans: []model.StudyPlan{{
			ID:               "p_1",
			SubjectID:        "s_math",
			TotalDays:        30,
			DailyGoalMinutes: 80,
			WeeklyGoals: []model.WeeklyGoal{
				{Week: 1, TargetHours: 10, TargetTopics: []string{"Algebra"}, Milestones: []string{"basics"}},
			},
			Milestones: []model.Milestone{
				{ID: "m_1", Title: "Foundation", TargetDate: examDate.AddDate(0, 0, -20)},
			},
		}},
		Sessions: []model.StudySession{{
			ID:              "ss_1",
			SubjectID:       "s_math",
			PlannedDuration: 90 * time.Minute,
			Status:          model.SessionActive,
			Topics:          []string{"Algebra"},
		}},
		Results: []model.QuizResult{{
			QuizID:         "q_1",
			Score:          80,
			TotalQuestions: 1,
			CorrectAnswers: 1,
			Passed:         true,
			Answers:        []model.QuizAnswer{{QuestionID: "qq_1", SelectedAnswer: 1, Correct: true}},
		}},
	}

	if err := s.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists() {
		t.Error("Exists should report true after save")
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(got.Subjects) != 1 {
		t.Fatalf("expected 1 subject, got %d", len(got.Subjects))
	}
	sub := got.Subjects[0]
	if sub.ID != "s_math" || sub.Name != "Matematik" || sub.EstimatedHours != 40 {
		t.Errorf("subject fields lost: %+v", sub)
	}
	if !sub.ExamDate.Equal(examDate) {
		t.Errorf("examDate: got %v, want %v", sub.ExamDate, examDate)
	}

	if len(got.Quizzes) != 1 {
		t.Fatalf("expected 1 quiz, got %d", len(got.Quizzes))
	}
	q := got.Quizzes[0]
	if q.TimeLimit != 10*time.Minute {
		t.Errorf("timeLimit: got %v, want 10m", q.TimeLimit)
	}
	if len(q.Questions) != 1 || q.Questions[0].CorrectAnswer != 1 || q.Questions[0].Points != 10 {
		t.Errorf("questions lost: %+v", q.Questions)
	}

	if len(got.Plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(got.Plans))
	}
	p := got.Plans[0]
	if p.DailyGoalMinutes != 80 || len(p.WeeklyGoals) != 1 || len(p.Milestones) != 1 {
		t.Errorf("plan lost: %+v", p)
	}
	if p.Milestones[0].CompletedAt != (time.Time{}) {
		t.Errorf("unset completedAt should stay zero, got %v", p.Milestones[0].CompletedAt)
	}

	if len(got.Sessions) != 1 || got.Sessions[0].PlannedDuration != 90*time.Minute {
		t.Errorf("sessions lost: %+v", got.Sessions)
	}
	if len(got.Results) != 1 || !got.Results[0].Passed || len(got.Results[0].Answers) != 1 {
		t.Errorf("results lost: %+v", got.Results)
	}
}

func TestPlannerStore_MissingSchema(t *testing.T) {
	s, paths := setupPlannerStore(t)

	if err := os.MkdirAll(paths.DataDir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.PlannerPath(), []byte(`{"subjects":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(); err == nil {
		t.Error("expected error for snapshot without schema")
	}
}

func TestPlannerStore_UnsupportedSchema(t *testing.T) {
	s, paths := setupPlannerStore(t)

	if err := os.MkdirAll(paths.DataDir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.PlannerPath(), []byte(`{"schema":"planner/42"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(); err == nil {
		t.Error("expected error for unsupported schema version")
	}
}
