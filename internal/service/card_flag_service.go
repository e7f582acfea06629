package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/authlend-api/internal/model"
)

type CardFlagStore interface {
	CardFlagReader
	List(ctx context.Context, name string, limit, offset int) ([]model.CardFlag, int, error)
	Insert(ctx context.Context, cf *model.CardFlag) error
	Update(ctx context.Context, cf *model.CardFlag) error
	Delete(ctx context.Context, id int64) error
}

type CardFlagService struct {
	repo CardFlagStore
}

func NewCardFlagService(repo CardFlagStore) *CardFlagService {
	return &CardFlagService{repo: repo}
}

func (s *CardFlagService) List(ctx context.Context, name string, limit, offset int) ([]model.CardFlag, int, error) {
	return s.repo.List(ctx, name, limit, offset)
}

func (s *CardFlagService) Create(ctx context.Context, cf *model.CardFlag) error {
	if err := s.repo.Insert(ctx, cf); err != nil {
		return fmt.Errorf("insert card flag: %w", err)
	}
	log.Info().Int64("card_flag_id", cf.ID).Str("name", cf.Name).Msg("card flag created")
	return nil
}

func (s *CardFlagService) Update(ctx context.Context, cf *model.CardFlag) error {
	if err := s.repo.Update(ctx, cf); err != nil {
		return orNotFound(err, "Card flag not found.")
	}
	return nil
}

func (s *CardFlagService) Delete(ctx context.Context, id int64) error {
	return orNotFound(s.repo.Delete(ctx, id), "Card flag not found.")
}
