package domain

import "time"

type Achievement struct {
	ID          string
	UserID      string
	CategoryID  string // optional, empty when uncategorised
	Title       string
	Description string
	DateAchieved    *time.Time
	ImportanceLevel int // 1-5 scale
	IsPublic        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AchievementUpdate is the allow-listed partial update for achievements.
type AchievementUpdate struct {
	CategoryID      *string
	Title           *string
	Description     *string
	DateAchieved    *time.Time
	ImportanceLevel *int
	IsPublic        *bool
}

// Media is a file attached to an achievement.
type Media struct {
	ID            string
	AchievementID string
	FileURL       string
	FileType      string // "image", "pdf", "video"
	Caption       string
	CreatedAt     time.Time
}
