package domain

import "time"

type Skill struct {
	ID               string
	UserID           string
	Name             string
	ProficiencyLevel int    // 1-5 scale
	Category         string // free text, e.g. "Technical", "Soft Skills"
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type SkillUpdate struct {
	Name             *string
	ProficiencyLevel *int
	Category         *string
}
