package model

import "time"

// Subject is an exam subject the user is preparing for.
type Subject struct {
	ID             string
	Name           string
	Description    string
	Emoji          string
	ExamDate       time.Time
	EstimatedHours int
	CreatedAt      time.Time
}

// StudyPlan lays out how a subject's estimated hours are spread over the
// days remaining until the exam.
type StudyPlan struct {
	ID               string
	SubjectID        string
	TotalDays        int
	DailyGoalMinutes int
	WeeklyGoals      []WeeklyGoal
	Milestones       []Milestone
	CreatedAt        time.Time
}

// WeeklyGoal is one week's slice of a study plan.
type WeeklyGoal struct {
	Week         int
	TargetHours  int
	TargetTopics []string
	Milestones   []string
}

// Milestone is a dated checkpoint within a study plan.
type Milestone struct {
	ID          string
	Title       string
	Description string
	TargetDate  time.Time
	Completed   bool
	CompletedAt time.Time
}

// SessionStatus tracks the lifecycle of a scheduled study session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionPaused    SessionStatus = "paused"
)

// StudySession is a planned block of study time for a subject.
type StudySession struct {
	ID              string
	SubjectID       string
	StartTime       time.Time
	PlannedDuration time.Duration
	Status          SessionStatus
	Topics          []string
}
