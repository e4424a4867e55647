package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/examklar/examklar/internal/deck"
	ekerr "github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/generator"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/service"
	"github.com/examklar/examklar/internal/srs"
	"github.com/examklar/examklar/internal/util"
	"github.com/go-playground/validator/v10"
)

// Handler contains all HTTP handlers for the API.
//
// Design: single-user, single-session. `examklar serve` is a local tool;
// all connected clients (browser tabs) see the same data directory.
type Handler struct {
	decks    *deck.Store
	planner  *service.PlannerService
	reviews  *service.ReviewService
	quizzes  *service.QuizService
	onboard  *service.OnboardService
	validate *validator.Validate
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(
	decks *deck.Store,
	planner *service.PlannerService,
	reviews *service.ReviewService,
	quizzes *service.QuizService,
	onboard *service.OnboardService,
) *Handler {
	return &Handler{
		decks:    decks,
		planner:  planner,
		reviews:  reviews,
		quizzes:  quizzes,
		onboard:  onboard,
		validate: validator.New(),
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Deck routes
	mux.HandleFunc("GET /api/v1/decks", h.ListDecks)
	mux.HandleFunc("POST /api/v1/decks", h.CreateDeck)
	mux.HandleFunc("GET /api/v1/decks/{id}", h.GetDeck)
	mux.HandleFunc("PATCH /api/v1/decks/{id}", h.UpdateDeck)
	mux.HandleFunc("DELETE /api/v1/decks/{id}", h.DeleteDeck)
	mux.HandleFunc("GET /api/v1/decks/{id}/export", h.ExportDeck)
	mux.HandleFunc("POST /api/v1/decks/import", h.ImportDeck)
	mux.HandleFunc("GET /api/v1/decks/{id}/metrics", h.DeckMetrics)

	// Card routes
	mux.HandleFunc("GET /api/v1/decks/{id}/cards", h.ListCards)
	mux.HandleFunc("POST /api/v1/decks/{id}/cards", h.AddCard)
	mux.HandleFunc("PATCH /api/v1/decks/{id}/cards/{cardId}", h.UpdateCard)
	mux.HandleFunc("DELETE /api/v1/decks/{id}/cards/{cardId}", h.RemoveCard)
	mux.HandleFunc("POST /api/v1/cards/{cardId}/move", h.MoveCard)

	// Review routes
	mux.HandleFunc("GET /api/v1/review/due", h.DueCards)
	mux.HandleFunc("POST /api/v1/review", h.RecordReview)

	// Stats
	mux.HandleFunc("GET /api/v1/stats", h.Stats)

	// Subject routes
	mux.HandleFunc("GET /api/v1/subjects", h.ListSubjects)
	mux.HandleFunc("POST /api/v1/subjects", h.CreateSubject)

	// Quiz routes
	mux.HandleFunc("GET /api/v1/quizzes", h.ListQuizzes)
	mux.HandleFunc("GET /api/v1/quizzes/{id}", h.GetQuiz)
	mux.HandleFunc("POST /api/v1/quizzes/{id}/grade", h.GradeQuiz)

	// Onboarding
	mux.HandleFunc("POST /api/v1/onboard", h.Onboard)
}

// --- Deck Handlers ---

func toWires(decks []*model.Deck) []deck.Wire {
	out := make([]deck.Wire, len(decks))
	for i, d := range decks {
		out[i] = deck.ToWire(d)
	}
	return out
}

func cardsToWires(cards []model.Card) []deck.CardWire {
	out := make([]deck.CardWire, len(cards))
	for i := range cards {
		out[i] = deck.CardToWire(&cards[i])
	}
	return out
}

// ListDecks returns decks, filtered and sorted per query parameters.
// ?search= matches name or description, ?subject= matches exactly,
// ?sort=name|created|cards, ?order=asc|desc.
func (h *Handler) ListDecks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := deck.DeckFilter{
		Search:    q.Get("search"),
		SubjectID: q.Get("subject"),
	}

	decks := h.decks.FilterDecks(filter)
	if sortBy := q.Get("sort"); sortBy != "" {
		order := deck.Asc
		if q.Get("order") == string(deck.Desc) {
			order = deck.Desc
		}
		h.decks.OrderDecks(decks, deck.DeckSort{By: deck.SortBy(sortBy), Order: order})
	}

	JSON(w, http.StatusOK, toWires(decks))
}

// CreateDeckRequest is the JSON body for creating a deck.
type CreateDeckRequest struct {
	SubjectID   string            `json:"subjectId" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Cards       []CardBodyRequest `json:"cards" validate:"dive"`
}

// CardBodyRequest is the JSON body for a card within a create request.
type CardBodyRequest struct {
	Front      string   `json:"front" validate:"required"`
	Back       string   `json:"back" validate:"required"`
	Difficulty string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Tags       []string `json:"tags"`
	NextReview string   `json:"nextReview"`
}

func (h *Handler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	input := model.DeckInput{
		SubjectID:   req.SubjectID,
		Name:        req.Name,
		Description: req.Description,
	}
	for _, c := range req.Cards {
		ci := model.CardInput{
			Front:      c.Front,
			Back:       c.Back,
			Difficulty: model.Difficulty(c.Difficulty),
			Tags:       c.Tags,
		}
		if t, ok := util.ParseISO(c.NextReview); ok {
			ci.NextReview = t
		}
		input.Cards = append(input.Cards, ci)
	}

	created := h.decks.CreateDeck(input)
	JSON(w, http.StatusCreated, deck.ToWire(created))
}

func (h *Handler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d := h.decks.GetDeckByID(id)
	if d == nil {
		Error(w, ekerr.DeckNotFound(id))
		return
	}
	JSON(w, http.StatusOK, deck.ToWire(d))
}

// UpdateDeckRequest is the JSON body for a deck patch. Absent fields are
// left unchanged.
type UpdateDeckRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.decks.GetDeckByID(id) == nil {
		Error(w, ekerr.DeckNotFound(id))
		return
	}

	var req UpdateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Name != nil && *req.Name == "" {
		BadRequest(w, "name cannot be empty")
		return
	}

	h.decks.UpdateDeck(id, model.DeckPatch{Name: req.Name, Description: req.Description})
	JSON(w, http.StatusOK, deck.ToWire(h.decks.GetDeckByID(id)))
}

func (h *Handler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.decks.GetDeckByID(id) == nil {
		Error(w, ekerr.DeckNotFound(id))
		return
	}
	h.decks.DeleteDeck(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	out := h.decks.ExportDeck(id)
	if out == "" {
		Error(w, ekerr.DeckNotFound(id))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", id))
	io.WriteString(w, out)
}

// ImportDeck accepts a raw deck JSON document as the request body.
func (h *Handler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil {
		BadRequest(w, "failed to read body")
		return
	}

	imported, err := h.decks.ImportDeck(string(body))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, deck.ToWire(imported))
}

func (h *Handler) DeckMetrics(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.decks.GetDeckByID(id) == nil {
		Error(w, ekerr.DeckNotFound(id))
		return
	}
	JSON(w, http.StatusOK, h.decks.PerformanceMetrics(id))
}

// --- Card Handlers ---

// ListCards returns the deck's cards, filtered per query parameters.
// ?difficulty=easy|medium|hard, ?tag= (repeatable), ?due=true.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.decks.GetDeckByID(id) == nil {
		Error(w, ekerr.DeckNotFound(id))
		return
	}

	q := r.URL.Query()
	filter := deck.CardFilter{
		Difficulty: model.Difficulty(q.Get("difficulty")),
		Tags:       q["tag"],
		DueOnly:    q.Get("due") == "true",
	}

	JSON(w, http.StatusOK, cardsToWires(h.decks.FilterCards(id, filter)))
}

func (h *Handler) AddCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req CardBodyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	input := model.CardInput{
		Front:      req.Front,
		Back:       req.Back,
		Difficulty: model.Difficulty(req.Difficulty),
		Tags:       req.Tags,
	}
	if t, ok := util.ParseISO(req.NextReview); ok {
		input.NextReview = t
	}

	card := h.decks.AddCardToDeck(id, input)
	if card == nil {
		Error(w, ekerr.DeckNotFound(id))
		return
	}
	JSON(w, http.StatusCreated, deck.CardToWire(card))
}

// UpdateCardRequest is the JSON body for a card patch. Absent fields are
// left unchanged.
type UpdateCardRequest struct {
	Front      *string   `json:"front"`
	Back       *string   `json:"back"`
	Difficulty *string   `json:"difficulty"`
	Tags       *[]string `json:"tags"`
	NextReview *string   `json:"nextReview"`
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")
	cardID := r.PathValue("cardId")

	d := h.decks.GetDeckByID(deckID)
	if d == nil {
		Error(w, ekerr.DeckNotFound(deckID))
		return
	}
	if d.CardIndex(cardID) < 0 {
		Error(w, ekerr.CardNotFound(cardID))
		return
	}

	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	patch := model.CardPatch{Front: req.Front, Back: req.Back, Tags: req.Tags}
	if req.Difficulty != nil {
		diff := model.Difficulty(*req.Difficulty)
		if !diff.Valid() {
			BadRequest(w, "difficulty must be easy, medium or hard")
			return
		}
		patch.Difficulty = &diff
	}
	if req.NextReview != nil {
		t, ok := util.ParseISO(*req.NextReview)
		if !ok {
			BadRequest(w, "nextReview must be an ISO-8601 timestamp")
			return
		}
		patch.NextReview = &t
	}

	h.decks.UpdateCardInDeck(deckID, cardID, patch)
	updated := h.decks.GetDeckByID(deckID)
	JSON(w, http.StatusOK, deck.CardToWire(&updated.Cards[updated.CardIndex(cardID)]))
}

func (h *Handler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")
	cardID := r.PathValue("cardId")

	d := h.decks.GetDeckByID(deckID)
	if d == nil {
		Error(w, ekerr.DeckNotFound(deckID))
		return
	}
	if d.CardIndex(cardID) < 0 {
		Error(w, ekerr.CardNotFound(cardID))
		return
	}

	h.decks.RemoveCardFromDeck(deckID, cardID)
	w.WriteHeader(http.StatusNoContent)
}

// MoveCardRequest is the JSON body for moving a card between decks.
type MoveCardRequest struct {
	FromDeckID string `json:"fromDeckId" validate:"required"`
	ToDeckID   string `json:"toDeckId" validate:"required"`
}

func (h *Handler) MoveCard(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("cardId")

	var req MoveCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	from := h.decks.GetDeckByID(req.FromDeckID)
	if from == nil {
		Error(w, ekerr.DeckNotFound(req.FromDeckID))
		return
	}
	if h.decks.GetDeckByID(req.ToDeckID) == nil {
		Error(w, ekerr.DeckNotFound(req.ToDeckID))
		return
	}
	if from.CardIndex(cardID) < 0 {
		Error(w, ekerr.CardNotFound(cardID))
		return
	}

	h.decks.MoveCardBetweenDecks(cardID, req.FromDeckID, req.ToDeckID)
	JSON(w, http.StatusOK, deck.ToWire(h.decks.GetDeckByID(req.ToDeckID)))
}

// --- Review Handlers ---

func (h *Handler) DueCards(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, cardsToWires(h.reviews.DueCards()))
}

// RecordReviewRequest is the JSON body for grading a card review.
type RecordReviewRequest struct {
	CardID string `json:"cardId" validate:"required"`
	Grade  int    `json:"grade" validate:"required,min=1,max=4"`
}

func (h *Handler) RecordReview(w http.ResponseWriter, r *http.Request) {
	var req RecordReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	result, err := h.reviews.RecordReview(req.CardID, srs.Grade(req.Grade))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"deckId":     result.DeckID,
		"correct":    result.Correct,
		"nextReview": util.FormatISO(result.NextReview),
	})
}

// --- Stats ---

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.decks.Stats())
}

// --- Subject Handlers ---

// SubjectResponse is the JSON shape of a subject.
type SubjectResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Emoji          string `json:"emoji,omitempty"`
	ExamDate       string `json:"examDate,omitempty"`
	EstimatedHours int    `json:"estimatedHours"`
}

func toSubjectResponse(sub model.Subject) SubjectResponse {
	resp := SubjectResponse{
		ID:             sub.ID,
		Name:           sub.Name,
		Description:    sub.Description,
		Emoji:          sub.Emoji,
		EstimatedHours: sub.EstimatedHours,
	}
	if !sub.ExamDate.IsZero() {
		resp.ExamDate = util.FormatISO(sub.ExamDate)
	}
	return resp
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects := h.planner.Subjects()
	out := make([]SubjectResponse, len(subjects))
	for i, sub := range subjects {
		out[i] = toSubjectResponse(sub)
	}
	JSON(w, http.StatusOK, out)
}

// CreateSubjectRequest is the JSON body for creating a subject.
type CreateSubjectRequest struct {
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	Emoji          string `json:"emoji"`
	ExamDate       string `json:"examDate"`
	EstimatedHours int    `json:"estimatedHours" validate:"min=0"`
}

func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	input := service.SubjectInput{
		Name:           req.Name,
		Description:    req.Description,
		Emoji:          req.Emoji,
		EstimatedHours: req.EstimatedHours,
	}
	if t, ok := util.ParseISO(req.ExamDate); ok {
		input.ExamDate = t
	}

	sub, err := h.planner.AddSubject(input)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, toSubjectResponse(*sub))
}

// --- Quiz Handlers ---

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.planner.Quizzes(r.URL.Query().Get("subject")))
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.planner.GetQuiz(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, quiz)
}

// GradeQuizRequest is the JSON body for grading a quiz attempt.
type GradeQuizRequest struct {
	Answers []int `json:"answers" validate:"required"`
}

func (h *Handler) GradeQuiz(w http.ResponseWriter, r *http.Request) {
	var req GradeQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	result, err := h.quizzes.Grade(r.PathValue("id"), req.Answers)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

// --- Onboarding ---

// OnboardRequest is the JSON body for onboarding a new subject.
type OnboardRequest struct {
	SubjectName    string `json:"subjectName" validate:"required"`
	ExamDate       string `json:"examDate" validate:"required"`
	EstimatedHours int    `json:"estimatedHours" validate:"required,min=1"`
}

func (h *Handler) Onboard(w http.ResponseWriter, r *http.Request) {
	var req OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	examDate, ok := util.ParseISO(req.ExamDate)
	if !ok {
		BadRequest(w, "examDate must be an ISO-8601 timestamp")
		return
	}
	if !examDate.After(time.Now()) {
		BadRequest(w, "examDate must be in the future")
		return
	}

	result, err := h.onboard.Onboard(generator.Input{
		SubjectName:    req.SubjectName,
		ExamDate:       examDate,
		EstimatedHours: req.EstimatedHours,
	}, nil)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"subject":  toSubjectResponse(result.Subject),
		"deckIds":  result.DeckIDs,
		"quizIds":  result.QuizIDs,
		"planId":   result.PlanID,
		"sessions": result.Sessions,
	})
}
