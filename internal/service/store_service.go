package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/authlend-api/internal/model"
)

type StoreStore interface {
	StoreReader
	List(ctx context.Context, name, city string, limit, offset int) ([]model.Store, int, error)
	Insert(ctx context.Context, st *model.Store) error
	Update(ctx context.Context, st *model.Store) error
	Delete(ctx context.Context, id int64) error
}

type StoreService struct {
	repo StoreStore
}

func NewStoreService(repo StoreStore) *StoreService {
	return &StoreService{repo: repo}
}

func (s *StoreService) List(ctx context.Context, name, city string, limit, offset int) ([]model.Store, int, error) {
	return s.repo.List(ctx, name, city, limit, offset)
}

func (s *StoreService) Create(ctx context.Context, st *model.Store) error {
	if err := s.repo.Insert(ctx, st); err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

func (s *StoreService) Update(ctx context.Context, st *model.Store) error {
	if err := s.repo.Update(ctx, st); err != nil {
		return orNotFound(err, "Store not found.")
	}
	return nil
}

func (s *StoreService) Delete(ctx context.Context, id int64) error {
	return orNotFound(s.repo.Delete(ctx, id), "Store not found.")
}
