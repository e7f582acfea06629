package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/repository"
)

type InstallmentLimitStore interface {
	InstallmentLimitReader
	List(ctx context.Context, f repository.InstallmentLimitFilter, limit, offset int) ([]model.InstallmentLimit, int, error)
	Insert(ctx context.Context, l *model.InstallmentLimit) error
	Update(ctx context.Context, l *model.InstallmentLimit) error
	Delete(ctx context.Context, id int64) error
}

type InstallmentLimitService struct {
	repo      InstallmentLimitStore
	cardFlags CardFlagReader
}

func NewInstallmentLimitService(repo InstallmentLimitStore, cardFlags CardFlagReader) *InstallmentLimitService {
	return &InstallmentLimitService{repo: repo, cardFlags: cardFlags}
}

func (s *InstallmentLimitService) List(ctx context.Context, f repository.InstallmentLimitFilter, limit, offset int) ([]model.InstallmentLimit, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *InstallmentLimitService) Create(ctx context.Context, l *model.InstallmentLimit) error {
	if err := s.checkCardFlag(ctx, l.CardFlagID); err != nil {
		return err
	}
	if err := s.repo.Insert(ctx, l); err != nil {
		return fmt.Errorf("insert installment limit: %w", err)
	}
	return nil
}

func (s *InstallmentLimitService) Update(ctx context.Context, l *model.InstallmentLimit) error {
	if err := s.checkCardFlag(ctx, l.CardFlagID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return orNotFound(err, "Installment limit not found.")
	}
	return nil
}

func (s *InstallmentLimitService) Delete(ctx context.Context, id int64) error {
	return orNotFound(s.repo.Delete(ctx, id), "Installment limit not found.")
}

func (s *InstallmentLimitService) checkCardFlag(ctx context.Context, id int64) error {
	cf, err := optional(s.cardFlags.FindByID(ctx, id))
	if err != nil {
		return fmt.Errorf("find card flag: %w", err)
	}
	if cf == nil {
		return ruleViolation("The given data was invalid.",
			map[string][]string{"card_flag_id": {"The selected card flag does not exist."}})
	}
	return nil
}
