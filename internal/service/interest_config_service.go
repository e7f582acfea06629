package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/repository"
)

type InterestConfigurationStore interface {
	InterestConfigurationReader
	List(ctx context.Context, f repository.InterestConfigurationFilter, limit, offset int) ([]model.InterestConfiguration, int, error)
	Insert(ctx context.Context, ic *model.InterestConfiguration) error
	Update(ctx context.Context, ic *model.InterestConfiguration) error
	Delete(ctx context.Context, id int64) error
}

type InterestConfigurationService struct {
	repo       InterestConfigurationStore
	cardFlags  CardFlagReader
	stores     StoreReader
	valueTypes ValueTypeReader
	limits     InstallmentLimitReader
}

func NewInterestConfigurationService(
	repo InterestConfigurationStore,
	cardFlags CardFlagReader,
	stores StoreReader,
	valueTypes ValueTypeReader,
	limits InstallmentLimitReader,
) *InterestConfigurationService {
	return &InterestConfigurationService{
		repo:       repo,
		cardFlags:  cardFlags,
		stores:     stores,
		valueTypes: valueTypes,
		limits:     limits,
	}
}

func (s *InterestConfigurationService) List(ctx context.Context, f repository.InterestConfigurationFilter, limit, offset int) ([]model.InterestConfiguration, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *InterestConfigurationService) Create(ctx context.Context, ic *model.InterestConfiguration) error {
	if err := s.validate(ctx, ic); err != nil {
		return err
	}
	ic.InterestRate = ic.InterestRate.Round(2)
	if err := s.repo.Insert(ctx, ic); err != nil {
		return fmt.Errorf("insert interest configuration: %w", err)
	}
	log.Info().
		Int64("interest_configuration_id", ic.ID).
		Int64("card_flag_id", ic.CardFlagID).
		Int64("store_id", ic.StoreID).
		Int64("value_type_id", ic.ValueTypeID).
		Int("installments", ic.Installments).
		Msg("interest configuration created")
	return nil
}

func (s *InterestConfigurationService) Update(ctx context.Context, ic *model.InterestConfiguration) error {
	if err := s.validate(ctx, ic); err != nil {
		return err
	}
	ic.InterestRate = ic.InterestRate.Round(2)
	if err := s.repo.Update(ctx, ic); err != nil {
		return orNotFound(err, "Interest configuration not found.")
	}
	return nil
}

func (s *InterestConfigurationService) Delete(ctx context.Context, id int64) error {
	return orNotFound(s.repo.Delete(ctx, id), "Interest configuration not found.")
}

// validate requires every referenced row to exist and the installment count
// to fit within the card flag's limit.
func (s *InterestConfigurationService) validate(ctx context.Context, ic *model.InterestConfiguration) error {
	var (
		cardFlag  *model.CardFlag
		store     *model.Store
		valueType *model.ValueType
		limit     *model.InstallmentLimit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cardFlag, err = optional(s.cardFlags.FindByID(gctx, ic.CardFlagID))
		return err
	})
	g.Go(func() (err error) {
		store, err = optional(s.stores.FindByID(gctx, ic.StoreID))
		return err
	})
	g.Go(func() (err error) {
		valueType, err = optional(s.valueTypes.FindByID(gctx, ic.ValueTypeID))
		return err
	})
	g.Go(func() (err error) {
		limit, err = optional(s.limits.FindByCardFlagID(gctx, ic.CardFlagID))
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("resolve interest configuration references: %w", err)
	}

	fields := map[string][]string{}
	if cardFlag == nil {
		fields["card_flag_id"] = []string{"The selected card flag does not exist."}
	}
	if store == nil {
		fields["store_id"] = []string{"The selected store does not exist."}
	}
	if valueType == nil {
		fields["value_type_id"] = []string{"The selected value type does not exist."}
	}
	if len(fields) > 0 {
		return ruleViolation("The given data was invalid.", fields)
	}

	if limit == nil || ic.Installments > limit.Installments {
		return ruleViolation("Installments not allowed for this card flag.",
			map[string][]string{"installments": {"Installments not allowed for this card flag."}})
	}
	return nil
}
