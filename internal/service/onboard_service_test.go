package service

import (
	"testing"
	"time"

	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/generator"
)

func TestOnboard(t *testing.T) {
	planner, _ := setupPlannerService(t)
	decks := deck.NewStore()
	svc := NewOnboardService(decks, planner)

	result, err := svc.Onboard(generator.Input{
		SubjectName:    "Matematik",
		ExamDate:       time.Now().AddDate(0, 0, 30),
		EstimatedHours: 40,
	}, nil)
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}

	if result.Subject.ID == "" || result.Subject.Name != "Matematik" {
		t.Errorf("subject: %+v", result.Subject)
	}
	if len(result.DeckIDs) != 5 {
		t.Errorf("decks created: got %d, want 5", len(result.DeckIDs))
	}
	if len(result.QuizIDs) != 3 {
		t.Errorf("quizzes created: got %d, want 3", len(result.QuizIDs))
	}
	if result.PlanID == "" {
		t.Error("expected a study plan")
	}
	if result.Sessions == 0 {
		t.Error("expected study sessions")
	}

	// Everything must be linked to the persisted subject.
	for _, deckID := range result.DeckIDs {
		d := decks.GetDeckByID(deckID)
		if d == nil || d.SubjectID != result.Subject.ID {
			t.Errorf("deck %s not linked to subject", deckID)
		}
	}
	for _, quiz := range planner.Quizzes(result.Subject.ID) {
		if quiz.SubjectID != result.Subject.ID {
			t.Errorf("quiz %s not linked to subject", quiz.ID)
		}
	}
	if planner.PlanForSubject(result.Subject.ID) == nil {
		t.Error("plan not linked to subject")
	}
	if len(planner.Sessions(result.Subject.ID)) != result.Sessions {
		t.Error("sessions not linked to subject")
	}
}

func TestOnboard_RejectsInvalidSubject(t *testing.T) {
	planner, _ := setupPlannerService(t)
	svc := NewOnboardService(deck.NewStore(), planner)

	_, err := svc.Onboard(generator.Input{
		SubjectName: "invalid",
		ExamDate:    time.Now().AddDate(0, 0, 10),
	}, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	// Nothing should have been created.
	if len(planner.Subjects()) != 0 {
		t.Error("subject created despite generation failure")
	}
}
