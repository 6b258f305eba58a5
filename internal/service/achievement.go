package service

import (
	"context"
	"errors"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/idx"
)

var (
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation_error")
)

type AchievementService struct {
	Store store.Store
}

type AchievementInput struct {
	CategoryID      string
	Title           string
	Description     string
	DateAchieved    *time.Time
	ImportanceLevel int
	IsPublic        bool
}

func (in AchievementInput) validate() error {
	if in.Title == "" {
		return ErrValidation
	}
	if in.ImportanceLevel < 1 || in.ImportanceLevel > 5 {
		return ErrValidation
	}
	return nil
}

func (s *AchievementService) Create(ctx context.Context, userID string, in AchievementInput) (domain.Achievement, error) {
	if err := in.validate(); err != nil {
		return domain.Achievement{}, err
	}

	if in.CategoryID != "" {
		if _, err := s.Store.Categories().GetByID(ctx, in.CategoryID); err != nil {
			return domain.Achievement{}, err
		}
	}

	now := time.Now().UTC()
	a := domain.Achievement{
		ID:              idx.New().String(),
		UserID:          userID,
		CategoryID:      in.CategoryID,
		Title:           in.Title,
		Description:     in.Description,
		DateAchieved:    in.DateAchieved,
		ImportanceLevel: in.ImportanceLevel,
		IsPublic:        in.IsPublic,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.Achievements().Create(ctx, a); err != nil {
		return domain.Achievement{}, err
	}
	return a, nil
}

// Get returns the achievement if the caller owns it or it is public.
func (s *AchievementService) Get(ctx context.Context, callerID, id string) (domain.Achievement, error) {
	a, err := s.Store.Achievements().GetByID(ctx, id)
	if err != nil {
		return domain.Achievement{}, err
	}
	if a.UserID != callerID && !a.IsPublic {
		return domain.Achievement{}, ErrForbidden
	}
	return a, nil
}

func (s *AchievementService) List(ctx context.Context, q store.ListByUserQuery) ([]domain.Achievement, error) {
	return s.Store.Achievements().ListByUser(ctx, q)
}

func (s *AchievementService) Update(ctx context.Context, callerID, id string, upd domain.AchievementUpdate) (domain.Achievement, error) {
	a, err := s.Store.Achievements().GetByID(ctx, id)
	if err != nil {
		return domain.Achievement{}, err
	}
	if a.UserID != callerID {
		return domain.Achievement{}, ErrForbidden
	}

	if upd.ImportanceLevel != nil && (*upd.ImportanceLevel < 1 || *upd.ImportanceLevel > 5) {
		return domain.Achievement{}, ErrValidation
	}
	if upd.Title != nil && *upd.Title == "" {
		return domain.Achievement{}, ErrValidation
	}
	if upd.CategoryID != nil && *upd.CategoryID != "" {
		if _, err := s.Store.Categories().GetByID(ctx, *upd.CategoryID); err != nil {
			return domain.Achievement{}, err
		}
	}

	if err := s.Store.Achievements().Update(ctx, id, upd); err != nil {
		return domain.Achievement{}, err
	}
	return s.Store.Achievements().GetByID(ctx, id)
}

func (s *AchievementService) Delete(ctx context.Context, callerID, id string) error {
	a, err := s.Store.Achievements().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.UserID != callerID {
		return ErrForbidden
	}
	return s.Store.Achievements().Delete(ctx, id)
}

type MediaInput struct {
	FileURL  string
	FileType string
	Caption  string
}

func validFileType(t string) bool {
	switch t {
	case "image", "pdf", "video":
		return true
	}
	return false
}

// AddMedia attaches a file to an achievement the caller owns.
func (s *AchievementService) AddMedia(ctx context.Context, callerID, achievementID string, in MediaInput) (domain.Media, error) {
	if in.FileURL == "" || !validFileType(in.FileType) {
		return domain.Media{}, ErrValidation
	}

	a, err := s.Store.Achievements().GetByID(ctx, achievementID)
	if err != nil {
		return domain.Media{}, err
	}
	if a.UserID != callerID {
		return domain.Media{}, ErrForbidden
	}

	m := domain.Media{
		ID:            idx.New().String(),
		AchievementID: achievementID,
		FileURL:       in.FileURL,
		FileType:      in.FileType,
		Caption:       in.Caption,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Store.Media().Create(ctx, m); err != nil {
		return domain.Media{}, err
	}
	return m, nil
}

// ListMedia returns an achievement's attachments, honouring the same
// owner-or-public read rule as Get.
func (s *AchievementService) ListMedia(ctx context.Context, callerID, achievementID string) ([]domain.Media, error) {
	if _, err := s.Get(ctx, callerID, achievementID); err != nil {
		return nil, err
	}
	return s.Store.Media().ListByAchievement(ctx, achievementID)
}

// DeleteMedia removes an attachment; ownership flows through the parent
// achievement.
func (s *AchievementService) DeleteMedia(ctx context.Context, callerID, mediaID string) error {
	m, err := s.Store.Media().GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	a, err := s.Store.Achievements().GetByID(ctx, m.AchievementID)
	if err != nil {
		return err
	}
	if a.UserID != callerID {
		return ErrForbidden
	}
	return s.Store.Media().Delete(ctx, mediaID)
}
