package http

import (
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/service"
)

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	Bio           string     `json:"bio,omitempty"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsAdmin       bool       `json:"is_admin"`
	EmailVerified bool       `json:"email_verified"`
	PhoneVerified bool       `json:"phone_verified"`
	Tier          string     `json:"subscription_tier"`
	TierExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		Bio:           u.Bio,
		PhoneNumber:   u.PhoneNumber,
		IsActive:      u.IsActive,
		IsAdmin:       u.IsAdmin,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		Tier:          u.EffectiveTier(time.Now().UTC()),
		TierExpiresAt: u.SubscriptionExpiresAt,
		CreatedAt:     u.CreatedAt,
	}
}

// TokenResponse carries a freshly minted session token.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type AchievementResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	CategoryID      string     `json:"category_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DateAchieved    *time.Time `json:"date_achieved,omitempty"`
	ImportanceLevel int        `json:"importance_level"`
	IsPublic        bool       `json:"is_public"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toAchievementResponse(a domain.Achievement) AchievementResponse {
	return AchievementResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		CategoryID:      a.CategoryID,
		Title:           a.Title,
		Description:     a.Description,
		DateAchieved:    a.DateAchieved,
		ImportanceLevel: a.ImportanceLevel,
		IsPublic:        a.IsPublic,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toAchievementResponses(as []domain.Achievement) []AchievementResponse {
	out := make([]AchievementResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toAchievementResponse(a))
	}
	return out
}

type SkillResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	ProficiencyLevel int       `json:"proficiency_level"`
	Category         string    `json:"category,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toSkillResponse(s domain.Skill) SkillResponse {
	return SkillResponse{
		ID:               s.ID,
		UserID:           s.UserID,
		Name:             s.Name,
		ProficiencyLevel: s.ProficiencyLevel,
		Category:         s.Category,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

type GoalResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	TargetDate         *time.Time `json:"target_date,omitempty"`
	Status             string     `json:"status"`
	ProgressPercentage int        `json:"progress_percentage"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toGoalResponse(g domain.Goal) GoalResponse {
	return GoalResponse{
		ID:                 g.ID,
		UserID:             g.UserID,
		Title:              g.Title,
		Description:        g.Description,
		TargetDate:         g.TargetDate,
		Status:             g.Status,
		ProgressPercentage: g.ProgressPercentage,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Icon:        c.Icon,
		Color:       c.Color,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type MediaResponse struct {
	ID            string    `json:"id"`
	AchievementID string    `json:"achievement_id"`
	FileURL       string    `json:"file_url"`
	FileType      string    `json:"file_type"`
	Caption       string    `json:"caption,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toMediaResponse(m domain.Media) MediaResponse {
	return MediaResponse{
		ID:            m.ID,
		AchievementID: m.AchievementID,
		FileURL:       m.FileURL,
		FileType:      m.FileType,
		Caption:       m.Caption,
		CreatedAt:     m.CreatedAt,
	}
}

// AdminUserResponse extends the user shape with content counts.
type AdminUserResponse struct {
	UserResponse
	AchievementCount int64 `json:"achievement_count"`
	SkillCount       int64 `json:"skill_count"`
	GoalCount        int64 `json:"goal_count"`
}

func toAdminUserResponse(s service.UserSummary) AdminUserResponse {
	return AdminUserResponse{
		UserResponse:     toUserResponse(s.User),
		AchievementCount: s.AchievementCount,
		SkillCount:       s.SkillCount,
		GoalCount:        s.GoalCount,
	}
}
