package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/authlend-api/internal/model"
)

type ValueTypeStore interface {
	ValueTypeReader
	List(ctx context.Context, typeName string, limit, offset int) ([]model.ValueType, int, error)
	Insert(ctx context.Context, vt *model.ValueType) error
	Update(ctx context.Context, vt *model.ValueType) error
	Delete(ctx context.Context, id int64) error
}

type ValueTypeInput struct {
	Type         string
	InterestRate decimal.Decimal
	Direction    string
}

type ValueTypeService struct {
	repo ValueTypeStore
}

func NewValueTypeService(repo ValueTypeStore) *ValueTypeService {
	return &ValueTypeService{repo: repo}
}

func (s *ValueTypeService) List(ctx context.Context, typeName string, limit, offset int) ([]model.ValueType, int, error) {
	return s.repo.List(ctx, typeName, limit, offset)
}

func (s *ValueTypeService) Create(ctx context.Context, in ValueTypeInput) (*model.ValueType, error) {
	vt, err := buildValueType(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, vt); err != nil {
		return nil, fmt.Errorf("insert value type: %w", err)
	}
	return vt, nil
}

func (s *ValueTypeService) Update(ctx context.Context, id int64, in ValueTypeInput) (*model.ValueType, error) {
	vt, err := buildValueType(in)
	if err != nil {
		return nil, err
	}
	vt.ID = id
	if err := s.repo.Update(ctx, vt); err != nil {
		return nil, orNotFound(err, "Value type not found.")
	}
	return vt, nil
}

func (s *ValueTypeService) Delete(ctx context.Context, id int64) error {
	return orNotFound(s.repo.Delete(ctx, id), "Value type not found.")
}

func buildValueType(in ValueTypeInput) (*model.ValueType, error) {
	direction, err := model.ParseDirection(in.Direction)
	if err != nil {
		return nil, ruleViolation("The given data was invalid.",
			map[string][]string{"direction": {"The direction must be ASC or DESC."}})
	}
	return &model.ValueType{
		Type:         strings.TrimSpace(in.Type),
		InterestRate: in.InterestRate.Round(2),
		Direction:    direction,
	}, nil
}
