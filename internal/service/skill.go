package service

import (
	"context"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/idx"
)

type SkillService struct {
	Store store.Store
}

type SkillInput struct {
	Name             string
	ProficiencyLevel int
	Category         string
}

func (s *SkillService) Create(ctx context.Context, userID string, in SkillInput) (domain.Skill, error) {
	if in.Name == "" || in.ProficiencyLevel < 1 || in.ProficiencyLevel > 5 {
		return domain.Skill{}, ErrValidation
	}

	now := time.Now().UTC()
	sk := domain.Skill{
		ID:               idx.New().String(),
		UserID:           userID,
		Name:             in.Name,
		ProficiencyLevel: in.ProficiencyLevel,
		Category:         in.Category,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Store.Skills().Create(ctx, sk); err != nil {
		return domain.Skill{}, err
	}
	return sk, nil
}

func (s *SkillService) Get(ctx context.Context, callerID, id string) (domain.Skill, error) {
	sk, err := s.Store.Skills().GetByID(ctx, id)
	if err != nil {
		return domain.Skill{}, err
	}
	if sk.UserID != callerID {
		return domain.Skill{}, ErrForbidden
	}
	return sk, nil
}

func (s *SkillService) List(ctx context.Context, q store.ListByUserQuery) ([]domain.Skill, error) {
	return s.Store.Skills().ListByUser(ctx, q)
}

func (s *SkillService) Update(ctx context.Context, callerID, id string, upd domain.SkillUpdate) (domain.Skill, error) {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return domain.Skill{}, err
	}
	if upd.Name != nil && *upd.Name == "" {
		return domain.Skill{}, ErrValidation
	}
	if upd.ProficiencyLevel != nil && (*upd.ProficiencyLevel < 1 || *upd.ProficiencyLevel > 5) {
		return domain.Skill{}, ErrValidation
	}
	if err := s.Store.Skills().Update(ctx, id, upd); err != nil {
		return domain.Skill{}, err
	}
	return s.Store.Skills().GetByID(ctx, id)
}

func (s *SkillService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	return s.Store.Skills().Delete(ctx, id)
}
