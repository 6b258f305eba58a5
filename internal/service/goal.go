package service

import (
	"context"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/idx"
)

type GoalService struct {
	Store store.Store
}

type GoalInput struct {
	Title              string
	Description        string
	TargetDate         *time.Time
	Status             string
	ProgressPercentage int
}

func (s *GoalService) Create(ctx context.Context, userID string, in GoalInput) (domain.Goal, error) {
	if in.Status == "" {
		in.Status = domain.GoalNotStarted
	}
	if in.Title == "" || !domain.ValidGoalStatus(in.Status) {
		return domain.Goal{}, ErrValidation
	}
	if in.ProgressPercentage < 0 || in.ProgressPercentage > 100 {
		return domain.Goal{}, ErrValidation
	}

	now := time.Now().UTC()
	g := domain.Goal{
		ID:                 idx.New().String(),
		UserID:             userID,
		Title:              in.Title,
		Description:        in.Description,
		TargetDate:         in.TargetDate,
		Status:             in.Status,
		ProgressPercentage: in.ProgressPercentage,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Store.Goals().Create(ctx, g); err != nil {
		return domain.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) Get(ctx context.Context, callerID, id string) (domain.Goal, error) {
	g, err := s.Store.Goals().GetByID(ctx, id)
	if err != nil {
		return domain.Goal{}, err
	}
	if g.UserID != callerID {
		return domain.Goal{}, ErrForbidden
	}
	return g, nil
}

func (s *GoalService) List(ctx context.Context, q store.ListByUserQuery) ([]domain.Goal, error) {
	return s.Store.Goals().ListByUser(ctx, q)
}

func (s *GoalService) Update(ctx context.Context, callerID, id string, upd domain.GoalUpdate) (domain.Goal, error) {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return domain.Goal{}, err
	}
	if upd.Title != nil && *upd.Title == "" {
		return domain.Goal{}, ErrValidation
	}
	if upd.Status != nil && !domain.ValidGoalStatus(*upd.Status) {
		return domain.Goal{}, ErrValidation
	}
	if upd.ProgressPercentage != nil && (*upd.ProgressPercentage < 0 || *upd.ProgressPercentage > 100) {
		return domain.Goal{}, ErrValidation
	}
	if err := s.Store.Goals().Update(ctx, id, upd); err != nil {
		return domain.Goal{}, err
	}
	return s.Store.Goals().GetByID(ctx, id)
}

func (s *GoalService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	return s.Store.Goals().Delete(ctx, id)
}
