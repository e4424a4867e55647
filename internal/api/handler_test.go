package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/examklar/examklar/internal/config"
	"github.com/examklar/examklar/internal/deck"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/service"
	"github.com/examklar/examklar/internal/store"
	"github.com/examklar/examklar/testutil"
)

// testAPI provides a complete test environment for API handler tests.
type testAPI struct {
	handler *Handler
	mux     *http.ServeMux
	decks   *deck.Store
	planner *service.PlannerService
}

// setupTestAPI creates a test environment with real stores backed by a temp directory.
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	paths := config.NewPaths(t.TempDir())
	decks := deck.NewStore()

	planner, err := service.NewPlannerService(store.NewPlannerStore(paths))
	if err != nil {
		t.Fatalf("Failed to create planner service: %v", err)
	}

	reviews := service.NewReviewService(decks, nil, nil)
	quizzes := service.NewQuizService(planner)
	onboard := service.NewOnboardService(decks, planner)

	handler := NewHandler(decks, planner, reviews, quizzes, onboard)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return &testAPI{
		handler: handler,
		mux:     mux,
		decks:   decks,
		planner: planner,
	}
}

// createDeck seeds a deck directly via the store.
func (api *testAPI) createDeck(t *testing.T, name string, cards ...model.CardInput) *model.Deck {
	t.Helper()
	return api.decks.CreateDeck(model.DeckInput{
		SubjectID:   "subject-1",
		Name:        name,
		Description: "test deck",
		Cards:       cards,
	})
}

// request makes an HTTP request and returns the response.
func (api *testAPI) request(method, path string, body any) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	api.mux.ServeHTTP(w, req)
	return w
}

// requestRaw makes an HTTP request with a raw string body.
func (api *testAPI) requestRaw(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.mux.ServeHTTP(w, req)
	return w
}

// decodeJSON decodes the response body into the given target.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// ============================================================================
// Deck Endpoint Tests
// ============================================================================

func TestHandler_ListDecks_Empty(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/decks", nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	var decks []deck.Wire
	decodeJSON(t, w, &decks)
	if len(decks) != 0 {
		t.Errorf("Expected 0 decks, got %d", len(decks))
	}
}

func TestHandler_CreateDeck(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/decks", CreateDeckRequest{
		SubjectID: "subject-1",
		Name:      "Algebra Basics",
		Cards: []CardBodyRequest{
			{Front: "2+2", Back: "4", Difficulty: "easy"},
		},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created deck.Wire
	decodeJSON(t, w, &created)
	if created.ID == "" {
		t.Error("Expected deck to have an ID")
	}
	if created.Name != "Algebra Basics" {
		t.Errorf("Expected name 'Algebra Basics', got %q", created.Name)
	}
	if len(created.Cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(created.Cards))
	}
	if created.Cards[0].ID == "" {
		t.Error("Expected card to have an ID")
	}
}

func TestHandler_CreateDeck_MissingName(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/decks", CreateDeckRequest{SubjectID: "subject-1"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_CreateDeck_InvalidCardDifficulty(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/decks", CreateDeckRequest{
		SubjectID: "subject-1",
		Name:      "Bad Cards",
		Cards: []CardBodyRequest{
			{Front: "q", Back: "a", Difficulty: "impossible"},
		},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_GetDeck(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Geometry")

	w := api.request("GET", "/api/v1/decks/"+created.ID, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got deck.Wire
	decodeJSON(t, w, &got)
	if got.ID != created.ID {
		t.Errorf("Expected deck %s, got %s", created.ID, got.ID)
	}
}

func TestHandler_GetDeck_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/decks/nonexistent", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandler_ListDecks_Search(t *testing.T) {
	api := setupTestAPI(t)
	api.createDeck(t, "Algebra Basics")
	api.createDeck(t, "World History")

	w := api.request("GET", "/api/v1/decks?search=algebra", nil)

	var decks []deck.Wire
	decodeJSON(t, w, &decks)
	if len(decks) != 1 {
		t.Fatalf("Expected 1 deck, got %d", len(decks))
	}
	if decks[0].Name != "Algebra Basics" {
		t.Errorf("Expected 'Algebra Basics', got %q", decks[0].Name)
	}
}

func TestHandler_ListDecks_Sorted(t *testing.T) {
	api := setupTestAPI(t)
	api.createDeck(t, "Zebra Facts")
	api.createDeck(t, "Algebra Basics")

	w := api.request("GET", "/api/v1/decks?sort=name", nil)

	var decks []deck.Wire
	decodeJSON(t, w, &decks)
	if len(decks) != 2 {
		t.Fatalf("Expected 2 decks, got %d", len(decks))
	}
	if decks[0].Name != "Algebra Basics" {
		t.Errorf("Expected 'Algebra Basics' first, got %q", decks[0].Name)
	}
}

func TestHandler_ListDecks_SearchAndSortCombine(t *testing.T) {
	api := setupTestAPI(t)
	api.createDeck(t, "Zebra Algebra")
	api.createDeck(t, "World History")
	api.createDeck(t, "Algebra Basics")

	w := api.request("GET", "/api/v1/decks?search=algebra&sort=name", nil)

	var decks []deck.Wire
	decodeJSON(t, w, &decks)
	if len(decks) != 2 {
		t.Fatalf("Expected 2 decks, got %d", len(decks))
	}
	if decks[0].Name != "Algebra Basics" || decks[1].Name != "Zebra Algebra" {
		t.Errorf("Expected filtered decks in name order, got %q, %q", decks[0].Name, decks[1].Name)
	}
}

func TestHandler_UpdateDeck(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Old Name")

	newName := "New Name"
	w := api.request("PATCH", "/api/v1/decks/"+created.ID, UpdateDeckRequest{Name: &newName})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got deck.Wire
	decodeJSON(t, w, &got)
	if got.Name != "New Name" {
		t.Errorf("Expected 'New Name', got %q", got.Name)
	}
	if got.Description != "test deck" {
		t.Errorf("Expected description untouched, got %q", got.Description)
	}
}

func TestHandler_UpdateDeck_EmptyName(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Keep Me")

	empty := ""
	w := api.request("PATCH", "/api/v1/decks/"+created.ID, UpdateDeckRequest{Name: &empty})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_DeleteDeck(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Doomed")

	w := api.request("DELETE", "/api/v1/decks/"+created.ID, nil)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if api.decks.GetDeckByID(created.ID) != nil {
		t.Error("Expected deck to be deleted")
	}
}

func TestHandler_DeleteDeck_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("DELETE", "/api/v1/decks/nonexistent", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// ============================================================================
// Card Endpoint Tests
// ============================================================================

func TestHandler_AddCard(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Vocab")

	w := api.request("POST", "/api/v1/decks/"+created.ID+"/cards", CardBodyRequest{
		Front:      "hund",
		Back:       "dog",
		Difficulty: "easy",
		Tags:       []string{"danish"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var card deck.CardWire
	decodeJSON(t, w, &card)
	if card.Front != "hund" {
		t.Errorf("Expected front 'hund', got %q", card.Front)
	}
	if card.ID == "" {
		t.Error("Expected card to have an ID")
	}
}

func TestHandler_AddCard_UnknownDeck(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/decks/nonexistent/cards", CardBodyRequest{
		Front: "q", Back: "a", Difficulty: "easy",
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandler_ListCards_FilterDifficulty(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Mixed",
		model.CardInput{Front: "a", Back: "1", Difficulty: model.DifficultyEasy},
		model.CardInput{Front: "b", Back: "2", Difficulty: model.DifficultyHard},
	)

	w := api.request("GET", "/api/v1/decks/"+created.ID+"/cards?difficulty=hard", nil)

	var cards []deck.CardWire
	decodeJSON(t, w, &cards)
	if len(cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(cards))
	}
	if cards[0].Front != "b" {
		t.Errorf("Expected card 'b', got %q", cards[0].Front)
	}
}

func TestHandler_UpdateCard(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Vocab",
		model.CardInput{Front: "old", Back: "a", Difficulty: model.DifficultyEasy},
	)
	cardID := created.Cards[0].ID

	newFront := "new"
	w := api.request("PATCH", "/api/v1/decks/"+created.ID+"/cards/"+cardID, UpdateCardRequest{Front: &newFront})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var card deck.CardWire
	decodeJSON(t, w, &card)
	if card.Front != "new" {
		t.Errorf("Expected front 'new', got %q", card.Front)
	}
	if card.Back != "a" {
		t.Errorf("Expected back untouched, got %q", card.Back)
	}
}

func TestHandler_UpdateCard_BadDifficulty(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Vocab",
		model.CardInput{Front: "q", Back: "a", Difficulty: model.DifficultyEasy},
	)
	cardID := created.Cards[0].ID

	bad := "nope"
	w := api.request("PATCH", "/api/v1/decks/"+created.ID+"/cards/"+cardID, UpdateCardRequest{Difficulty: &bad})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_RemoveCard(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Vocab",
		model.CardInput{Front: "q", Back: "a", Difficulty: model.DifficultyEasy},
	)
	cardID := created.Cards[0].ID

	w := api.request("DELETE", "/api/v1/decks/"+created.ID+"/cards/"+cardID, nil)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if len(api.decks.GetDeckByID(created.ID).Cards) != 0 {
		t.Error("Expected card to be removed")
	}
}

func TestHandler_MoveCard(t *testing.T) {
	api := setupTestAPI(t)
	source := api.createDeck(t, "Source",
		model.CardInput{Front: "q", Back: "a", Difficulty: model.DifficultyEasy},
	)
	target := api.createDeck(t, "Target")
	cardID := source.Cards[0].ID

	w := api.request("POST", "/api/v1/cards/"+cardID+"/move", MoveCardRequest{
		FromDeckID: source.ID,
		ToDeckID:   target.ID,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var got deck.Wire
	decodeJSON(t, w, &got)
	if got.ID != target.ID {
		t.Errorf("Expected target deck in response, got %s", got.ID)
	}
	if len(got.Cards) != 1 {
		t.Errorf("Expected 1 card in target, got %d", len(got.Cards))
	}
}

func TestHandler_MoveCard_UnknownTarget(t *testing.T) {
	api := setupTestAPI(t)
	source := api.createDeck(t, "Source",
		model.CardInput{Front: "q", Back: "a", Difficulty: model.DifficultyEasy},
	)

	w := api.request("POST", "/api/v1/cards/"+source.Cards[0].ID+"/move", MoveCardRequest{
		FromDeckID: source.ID,
		ToDeckID:   "nonexistent",
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// ============================================================================
// Export / Import Tests
// ============================================================================

func TestHandler_ExportDeck(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Exportable",
		model.CardInput{Front: "q", Back: "a", Difficulty: model.DifficultyEasy},
	)

	w := api.request("GET", "/api/v1/decks/"+created.ID+"/export", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var exported deck.Wire
	decodeJSON(t, w, &exported)
	if exported.Name != "Exportable" {
		t.Errorf("Expected name 'Exportable', got %q", exported.Name)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), created.ID) {
		t.Error("Expected Content-Disposition with deck ID")
	}
}

func TestHandler_ImportDeck(t *testing.T) {
	api := setupTestAPI(t)

	body := `{
		"subjectId": "subject-1",
		"name": "Imported Deck",
		"cards": [
			{"front": "q", "back": "a", "difficulty": "medium"}
		]
	}`
	w := api.requestRaw("POST", "/api/v1/decks/import", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var imported deck.Wire
	decodeJSON(t, w, &imported)
	if imported.ID == "" {
		t.Error("Expected imported deck to have a fresh ID")
	}
	if imported.Name != "Imported Deck" {
		t.Errorf("Expected name 'Imported Deck', got %q", imported.Name)
	}
}

func TestHandler_ImportDeck_MalformedJSON(t *testing.T) {
	api := setupTestAPI(t)

	w := api.requestRaw("POST", "/api/v1/decks/import", "{not json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_ImportDeck_SchemaInvalid(t *testing.T) {
	api := setupTestAPI(t)

	w := api.requestRaw("POST", "/api/v1/decks/import", `{"name": ""}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// ============================================================================
// Review and Stats Tests
// ============================================================================

func TestHandler_RecordReview(t *testing.T) {
	api := setupTestAPI(t)
	created := api.createDeck(t, "Reviewable",
		model.CardInput{Front: "q", Back: "a", Difficulty: model.DifficultyEasy},
	)
	cardID := created.Cards[0].ID

	w := api.request("POST", "/api/v1/review", RecordReviewRequest{CardID: cardID, Grade: 3})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var result map[string]any
	decodeJSON(t, w, &result)
	if result["correct"] != true {
		t.Error("Expected grade 3 to count as correct")
	}
	if result["deckId"] != created.ID {
		t.Errorf("Expected deckId %s, got %v", created.ID, result["deckId"])
	}
}

func TestHandler_RecordReview_UnknownCard(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/review", RecordReviewRequest{CardID: "nonexistent", Grade: 3})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandler_RecordReview_BadGrade(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/review", RecordReviewRequest{CardID: "whatever", Grade: 9})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_DueCards(t *testing.T) {
	api := setupTestAPI(t)
	api.createDeck(t, "Due", testutil.DueCardInput("q"))

	w := api.request("GET", "/api/v1/review/due", nil)

	var cards []deck.CardWire
	decodeJSON(t, w, &cards)
	if len(cards) != 1 {
		t.Errorf("Expected 1 due card, got %d", len(cards))
	}
}

func TestHandler_Stats(t *testing.T) {
	api := setupTestAPI(t)
	api.createDeck(t, "Stats Deck",
		model.CardInput{Front: "q", Back: "a", Difficulty: model.DifficultyEasy},
	)

	w := api.request("GET", "/api/v1/stats", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var stats deck.Stats
	decodeJSON(t, w, &stats)
	if stats.TotalDecks != 1 {
		t.Errorf("Expected 1 total deck, got %d", stats.TotalDecks)
	}
	if stats.TotalCards != 1 {
		t.Errorf("Expected 1 total card, got %d", stats.TotalCards)
	}
}

// ============================================================================
// Subject, Quiz and Onboarding Tests
// ============================================================================

func TestHandler_CreateAndListSubjects(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/subjects", CreateSubjectRequest{
		Name:           "Matematik",
		EstimatedHours: 20,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	w = api.request("GET", "/api/v1/subjects", nil)
	var subjects []SubjectResponse
	decodeJSON(t, w, &subjects)
	if len(subjects) != 1 {
		t.Fatalf("Expected 1 subject, got %d", len(subjects))
	}
	if subjects[0].Name != "Matematik" {
		t.Errorf("Expected 'Matematik', got %q", subjects[0].Name)
	}
}

func TestHandler_CreateSubject_MissingName(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/subjects", CreateSubjectRequest{EstimatedHours: 5})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_Onboard(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/onboard", OnboardRequest{
		SubjectName:    "Matematik",
		ExamDate:       time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
		EstimatedHours: 20,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var result map[string]any
	decodeJSON(t, w, &result)
	deckIDs, ok := result["deckIds"].([]any)
	if !ok || len(deckIDs) == 0 {
		t.Errorf("Expected generated decks, got %v", result["deckIds"])
	}
	if len(api.decks.GetDecks()) == 0 {
		t.Error("Expected decks in the store after onboarding")
	}
}

func TestHandler_Onboard_InvalidSubject(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/onboard", OnboardRequest{
		SubjectName:    "invalid subject",
		ExamDate:       time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
		EstimatedHours: 20,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if len(api.planner.Subjects()) != 0 {
		t.Error("Expected no subject to be created for a rejected name")
	}
}

func TestHandler_Onboard_PastExamDate(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/onboard", OnboardRequest{
		SubjectName:    "Matematik",
		ExamDate:       time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
		EstimatedHours: 20,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_QuizFlow(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/onboard", OnboardRequest{
		SubjectName:    "Matematik",
		ExamDate:       time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
		EstimatedHours: 20,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Onboarding failed: %d %s", w.Code, w.Body.String())
	}

	w = api.request("GET", "/api/v1/quizzes", nil)
	var quizzes []model.Quiz
	decodeJSON(t, w, &quizzes)
	if len(quizzes) == 0 {
		t.Fatal("Expected generated quizzes")
	}

	quiz := quizzes[0]
	answers := make([]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers[i] = q.CorrectAnswer
	}

	w = api.request("POST", "/api/v1/quizzes/"+quiz.ID+"/grade", GradeQuizRequest{Answers: answers})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var result model.QuizResult
	decodeJSON(t, w, &result)
	if result.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Score)
	}
	if !result.Passed {
		t.Error("Expected a perfect score to pass")
	}
}

func TestHandler_GradeQuiz_WrongAnswerCount(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/onboard", OnboardRequest{
		SubjectName:    "Matematik",
		ExamDate:       time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
		EstimatedHours: 20,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Onboarding failed: %d", w.Code)
	}

	var quizzes []model.Quiz
	decodeJSON(t, api.request("GET", "/api/v1/quizzes", nil), &quizzes)

	w = api.request("POST", "/api/v1/quizzes/"+quizzes[0].ID+"/grade", GradeQuizRequest{Answers: []int{0}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_GetQuiz_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/quizzes/nonexistent", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
