package domain

import "time"

// Goal statuses.
const (
	GoalNotStarted = "not_started"
	GoalInProgress = "in_progress"
	GoalCompleted  = "completed"
	GoalCancelled  = "cancelled"
)

// ValidGoalStatus reports whether s is one of the known statuses.
func ValidGoalStatus(s string) bool {
	switch s {
	case GoalNotStarted, GoalInProgress, GoalCompleted, GoalCancelled:
		return true
	}
	return false
}

type Goal struct {
	ID                 string
	UserID             string
	Title              string
	Description        string
	TargetDate         *time.Time
	Status             string
	ProgressPercentage int // 0-100
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type GoalUpdate struct {
	Title              *string
	Description        *string
	TargetDate         *time.Time
	Status             *string
	ProgressPercentage *int
}
