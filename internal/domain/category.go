package domain

import "time"

// Category groups achievements. Categories are global, not per-user.
type Category struct {
	ID          string
	Name        string // unique
	Icon        string
	Color       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CategoryUpdate struct {
	Name        *string
	Icon        *string
	Color       *string
	Description *string
}
