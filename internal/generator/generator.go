// Package generator builds starter study content for a new subject:
// flashcard decks, quizzes, a study schedule, and a study plan. Generation
// is deterministic given the input and the clock; there is no network or
// model behind it, just curated topic tables.
package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/id"
	"github.com/examklar/examklar/internal/model"
	"github.com/examklar/examklar/internal/util"
)

// Input describes the subject being onboarded.
type Input struct {
	SubjectName    string
	ExamDate       time.Time
	EstimatedHours int
}

// Content is everything generated for a subject. The SubjectID ties the
// pieces together and is freshly assigned per generation.
type Content struct {
	SubjectID string
	Decks     []model.DeckInput
	DeckIDs   []string // filled by the caller once decks are created
	Quizzes   []model.Quiz
	Schedule  []model.StudySession
	Plan      model.StudyPlan
}

// Stage identifies a phase of content generation.
type Stage string

const (
	StageAnalyzing  Stage = "analyzing"
	StageFlashcards Stage = "generating-flashcards"
	StageQuizzes    Stage = "generating-quizzes"
	StageSchedule   Stage = "creating-schedule"
	StageFinalizing Stage = "finalizing"
	StageComplete   Stage = "complete"
)

// Progress reports how far generation has come.
type Progress struct {
	Stage   Stage
	Percent int
	Message string
}

// ProgressFunc receives progress updates during generation.
type ProgressFunc func(Progress)

// Generator produces starter content from topic tables.
type Generator struct {
	onProgress ProgressFunc
}

// New creates a content generator. onProgress may be nil.
func New(onProgress ProgressFunc) *Generator {
	return &Generator{onProgress: onProgress}
}

func (g *Generator) report(stage Stage, percent int, message string) {
	if g.onProgress != nil {
		g.onProgress(Progress{Stage: stage, Percent: percent, Message: message})
	}
}

// Generate builds the full content set for a subject. Subject names
// containing marker characters that break downstream content templates
// are rejected.
func (g *Generator) Generate(input Input) (*Content, error) {
	if err := validateSubjectName(input.SubjectName); err != nil {
		return nil, err
	}

	g.report(StageAnalyzing, 10, fmt.Sprintf("Analyzing %s curriculum...", input.SubjectName))

	subjectID := id.Generate(id.Subject)
	topics := subjectTopics(input.SubjectName)

	g.report(StageFlashcards, 30, "Creating personalized flashcards...")
	decks := generateDecks(input.SubjectName, topics)

	g.report(StageQuizzes, 60, "Building adaptive quizzes...")
	quizzes := generateQuizzes(subjectID, input.SubjectName, topics)

	g.report(StageSchedule, 80, "Optimizing study schedule...")
	now := time.Now()
	schedule := generateSchedule(subjectID, input, topics, now)
	plan := generatePlan(subjectID, input, topics, now)

	g.report(StageFinalizing, 95, "Finalizing your learning plan...")
	g.report(StageComplete, 100, "Your personalized learning plan is ready!")

	return &Content{
		SubjectID: subjectID,
		Decks:     decks,
		Quizzes:   quizzes,
		Schedule:  schedule,
		Plan:      plan,
	}, nil
}

func validateSubjectName(name string) error {
	if strings.ContainsAny(name, "#@!$") || strings.Contains(strings.ToLower(name), "invalid") {
		return errors.InvalidField("subject name", fmt.Sprintf("%q cannot be used for content generation", name))
	}
	return nil
}

// subjectTopics maps a subject name to its topic table. Danish and English
// subject names both resolve; unknown subjects get a generic progression.
func subjectTopics(subjectName string) []string {
	lower := strings.ToLower(subjectName)
	switch {
	case strings.Contains(lower, "math") || strings.Contains(lower, "matematik"):
		return []string{"Algebra", "Geometry", "Calculus", "Statistics", "Trigonometry"}
	case strings.Contains(lower, "physics") || strings.Contains(lower, "fysik"):
		return []string{"Mechanics", "Thermodynamics", "Electromagnetism", "Quantum Physics", "Optics"}
	case strings.Contains(lower, "chemistry") || strings.Contains(lower, "kemi"):
		return []string{"Atomic Structure", "Chemical Bonding", "Reactions", "Organic Chemistry", "Thermochemistry"}
	case strings.Contains(lower, "biology") || strings.Contains(lower, "biologi"):
		return []string{"Cell Biology", "Genetics", "Evolution", "Ecology", "Human Physiology"}
	case strings.Contains(lower, "history") || strings.Contains(lower, "historie"):
		return []string{"Ancient History", "Medieval Period", "Modern Era", "World Wars", "Contemporary History"}
	case strings.Contains(lower, "english") || strings.Contains(lower, "engelsk"):
		return []string{"Grammar", "Literature", "Writing", "Reading Comprehension", "Vocabulary"}
	default:
		return []string{"Introduction", "Core Concepts", "Advanced Topics", "Applications", "Review"}
	}
}

var cardDifficulties = []model.Difficulty{
	model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard,
}

// generateDecks builds one deck per topic, three cards each, ramping from
// easy to hard.
func generateDecks(subjectName string, topics []string) []model.DeckInput {
	decks := make([]model.DeckInput, 0, len(topics))
	for _, topic := range topics {
		cards := make([]model.CardInput, 0, 3)
		for j := 0; j < 3; j++ {
			cards = append(cards, model.CardInput{
				Front:      fmt.Sprintf("%s - Question %d", topic, j+1),
				Back:       fmt.Sprintf("This is a comprehensive answer about %s that demonstrates understanding of key concepts.", topic),
				Difficulty: cardDifficulties[j],
				Tags:       []string{strings.ToLower(topic), strings.ToLower(subjectName)},
				NextReview: time.Now().Add(24 * time.Hour),
			})
		}
		decks = append(decks, model.DeckInput{
			Name:        fmt.Sprintf("%s - %s", subjectName, topic),
			Description: fmt.Sprintf("Essential concepts for %s", topic),
			Cards:       cards,
		})
	}
	return decks
}

// generateQuizzes builds a quiz for each of the first three topics, three
// questions each, with points ramping by difficulty.
func generateQuizzes(subjectID, subjectName string, topics []string) []model.Quiz {
	n := len(topics)
	if n > 3 {
		n = 3
	}

	quizzes := make([]model.Quiz, 0, n)
	for i := 0; i < n; i++ {
		topic := topics[i]
		questions := make([]model.QuizQuestion, 0, 3)
		for j := 0; j < 3; j++ {
			questions = append(questions, model.QuizQuestion{
				ID:       id.Generate(id.Question),
				Question: fmt.Sprintf("Which of the following best describes %s?", topic),
				Options: []string{
					fmt.Sprintf("A basic concept in %s", topic),
					fmt.Sprintf("An advanced principle of %s", topic),
					fmt.Sprintf("The correct understanding of %s", topic),
					fmt.Sprintf("An incorrect interpretation of %s", topic),
				},
				CorrectAnswer: 2,
				Explanation:   fmt.Sprintf("This demonstrates proper understanding of %s concepts.", topic),
				Difficulty:    cardDifficulties[j],
				Points:        (j + 1) * 10,
			})
		}
		quizzes = append(quizzes, model.Quiz{
			ID:           id.Generate(id.Quiz),
			SubjectID:    subjectID,
			Title:        fmt.Sprintf("%s - %s Quiz", subjectName, topic),
			Description:  fmt.Sprintf("Test your knowledge of %s", topic),
			Questions:    questions,
			TimeLimit:    10 * time.Minute,
			PassingScore: 70,
			CreatedAt:    time.Now(),
		})
	}
	return quizzes
}

// generateSchedule spreads 90-minute sessions evenly between now and the
// exam, at most ten in total.
func generateSchedule(subjectID string, input Input, topics []string, now time.Time) []model.StudySession {
	daysUntilExam := util.DaysUntil(now, input.ExamDate)
	totalSessions := int(float64(input.EstimatedHours) / 1.5)
	if totalSessions < 1 {
		totalSessions = 1
	}
	interval := daysUntilExam / totalSessions
	if interval < 1 {
		interval = 1
	}
	if totalSessions > 10 {
		totalSessions = 10
	}

	sessions := make([]model.StudySession, 0, totalSessions)
	for i := 0; i < totalSessions; i++ {
		topic := topics[i%len(topics)]
		sessions = append(sessions, model.StudySession{
			ID:              id.Generate(id.Session),
			SubjectID:       subjectID,
			StartTime:       now.AddDate(0, 0, i*interval),
			PlannedDuration: 90 * time.Minute,
			Status:          model.SessionActive,
			Topics:          []string{fmt.Sprintf("Session %d: %s", i+1, topic)},
		})
	}
	return sessions
}

// generatePlan lays out weekly goals over at most four weeks plus three
// phase milestones ending shortly before the exam.
func generatePlan(subjectID string, input Input, topics []string, now time.Time) model.StudyPlan {
	daysUntilExam := util.DaysUntil(now, input.ExamDate)
	weeksUntilExam := (daysUntilExam + 6) / 7
	if weeksUntilExam < 1 {
		weeksUntilExam = 1
	}

	goalWeeks := weeksUntilExam
	if goalWeeks > 4 {
		goalWeeks = 4
	}
	weeklyGoals := make([]model.WeeklyGoal, 0, goalWeeks)
	for week := 1; week <= goalWeeks; week++ {
		start := (week - 1) * 2
		end := week * 2
		if start > len(topics) {
			start = len(topics)
		}
		if end > len(topics) {
			end = len(topics)
		}
		weeklyGoals = append(weeklyGoals, model.WeeklyGoal{
			Week:         week,
			TargetHours:  (input.EstimatedHours + weeksUntilExam - 1) / weeksUntilExam,
			TargetTopics: topics[start:end],
			Milestones: []string{
				fmt.Sprintf("Complete week %d flashcards", week),
				fmt.Sprintf("Pass week %d quiz with 80%%+", week),
			},
		})
	}

	milestones := []model.Milestone{
		{
			ID:          id.Generate(id.Milestone),
			Title:       "Foundation Phase",
			Description: "Master basic concepts and terminology",
			TargetDate:  now.AddDate(0, 0, 7),
		},
		{
			ID:          id.Generate(id.Milestone),
			Title:       "Application Phase",
			Description: "Apply knowledge to practice problems",
			TargetDate:  now.AddDate(0, 0, 14),
		},
		{
			ID:          id.Generate(id.Milestone),
			Title:       "Mastery Phase",
			Description: "Achieve exam readiness",
			TargetDate:  input.ExamDate.AddDate(0, 0, -3),
		},
	}

	dailyGoal := input.EstimatedHours * 60 / daysUntilExam

	return model.StudyPlan{
		ID:               id.Generate(id.Plan),
		SubjectID:        subjectID,
		TotalDays:        daysUntilExam,
		DailyGoalMinutes: dailyGoal,
		WeeklyGoals:      weeklyGoals,
		Milestones:       milestones,
		CreatedAt:        now,
	}
}
