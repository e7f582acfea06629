package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/repository"
)

type CardFlagReader interface {
	FindByID(ctx context.Context, id int64) (*model.CardFlag, error)
}

type ValueTypeReader interface {
	FindByID(ctx context.Context, id int64) (*model.ValueType, error)
}

type StoreReader interface {
	FindByID(ctx context.Context, id int64) (*model.Store, error)
}

type InstallmentLimitReader interface {
	FindByCardFlagID(ctx context.Context, cardFlagID int64) (*model.InstallmentLimit, error)
}

type InterestConfigurationReader interface {
	FindByKey(ctx context.Context, key model.ConfigurationKey) (*model.InterestConfiguration, error)
}

type SimulationStore interface {
	Insert(ctx context.Context, sim *model.Simulation) error
	FindByUUID(ctx context.Context, id string) (*model.SimulationDetail, error)
	FindByID(ctx context.Context, id int64) (*model.Simulation, error)
	List(ctx context.Context, f repository.SimulationFilter, limit, offset int) ([]model.SimulationDetail, int, error)
	Update(ctx context.Context, sim *model.Simulation) error
	Delete(ctx context.Context, id int64) error
}

type SimulateInput struct {
	Amount       decimal.Decimal
	Installments int
	CardFlagID   int64
	StoreID      int64
	ValueTypeID  int64
	IP           string
}

// SimulationResult is the display projection of a new simulation: names
// instead of ids.
type SimulationResult struct {
	SimulationID string
	Quote        model.Quote
	Rates        model.RateSnapshot
	ValueType    string
	StoreName    string
	StoreCity    string
	CardFlag     string
}

// SimulationPatch holds the fields an administrator may overwrite. Nil
// fields are left untouched.
type SimulationPatch struct {
	Amount                             *decimal.Decimal
	AmountWithInterest                 *decimal.Decimal
	InterestRateByTypeOfAmount         *decimal.Decimal
	InterestRateByNumberOfInstallments *decimal.Decimal
	Installments                       *int
	InstallmentValue                   *decimal.Decimal
	IP                                 *string
}

type SimulationService struct {
	cardFlags   CardFlagReader
	valueTypes  ValueTypeReader
	stores      StoreReader
	limits      InstallmentLimitReader
	configs     InterestConfigurationReader
	simulations SimulationStore
	newUUID     func() string
}

func NewSimulationService(
	cardFlags CardFlagReader,
	valueTypes ValueTypeReader,
	stores StoreReader,
	limits InstallmentLimitReader,
	configs InterestConfigurationReader,
	simulations SimulationStore,
) *SimulationService {
	return &SimulationService{
		cardFlags:   cardFlags,
		valueTypes:  valueTypes,
		stores:      stores,
		limits:      limits,
		configs:     configs,
		simulations: simulations,
		newUUID:     func() string { return uuid.NewString() },
	}
}

// Simulate checks the request against the card flag's limit, prices it with
// the matching interest configuration and records a new simulation. Nothing
// is written when a check fails.
func (s *SimulationService) Simulate(ctx context.Context, in SimulateInput) (*SimulationResult, error) {
	cardFlag, valueType, store, err := s.resolveReferences(ctx, in)
	if err != nil {
		return nil, err
	}

	limit, err := optional(s.limits.FindByCardFlagID(ctx, cardFlag.ID))
	if err != nil {
		return nil, fmt.Errorf("find installment limit: %w", err)
	}
	if limit == nil {
		return nil, ruleViolation("No installment limit configured for this card flag.", nil)
	}
	if in.Installments > limit.Installments {
		log.Debug().Int64("card_flag_id", cardFlag.ID).Int("installments", in.Installments).Int("max", limit.Installments).
			Msg("simulation rejected: installments over limit")
		return nil, ruleViolation("Number of installments exceeds the limit allowed for this flag.", nil)
	}
	if in.Amount.LessThan(limit.MinValue) {
		minValue := limit.MinValue.StringFixed(2)
		log.Debug().Int64("card_flag_id", cardFlag.ID).Str("amount", in.Amount.String()).Str("min_value", minValue).
			Msg("simulation rejected: amount under minimum")
		return nil, ruleViolation("The requested amount is below the minimum allowed for this installment option.",
			map[string][]string{"amount": {fmt.Sprintf("The minimum allowed amount is %s.", minValue)}})
	}

	config, err := optional(s.configs.FindByKey(ctx, model.ConfigurationKey{
		CardFlagID:   cardFlag.ID,
		StoreID:      store.ID,
		ValueTypeID:  valueType.ID,
		Installments: in.Installments,
	}))
	if err != nil {
		return nil, fmt.Errorf("find interest configuration: %w", err)
	}
	if config == nil {
		return nil, notFound("No configuration found for the selected parameters.")
	}

	quote, err := Calculate(in.Amount, in.Installments, valueType.Direction, valueType.InterestRate, config.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("calculate quote: %w", err)
	}

	sim := &model.Simulation{
		UUID:  s.newUUID(),
		Quote: quote,
		Rates: model.RateSnapshot{
			TypeOfAmount:         valueType.InterestRate.Round(2),
			NumberOfInstallments: config.InterestRate.Round(2),
		},
		Refs: model.SimulationRefs{
			ValueTypeID: &valueType.ID,
			StoreID:     &store.ID,
			CardFlagID:  &cardFlag.ID,
		},
		IP: in.IP,
	}
	if err := s.simulations.Insert(ctx, sim); err != nil {
		return nil, fmt.Errorf("insert simulation: %w", err)
	}

	log.Info().
		Str("simulation_id", sim.UUID).
		Int64("card_flag_id", cardFlag.ID).
		Int64("store_id", store.ID).
		Int64("value_type_id", valueType.ID).
		Int("installments", quote.Installments).
		Msg("simulation recorded")

	return &SimulationResult{
		SimulationID: sim.UUID,
		Quote:        sim.Quote,
		Rates:        sim.Rates,
		ValueType:    valueType.Type,
		StoreName:    store.Name,
		StoreCity:    store.City(),
		CardFlag:     cardFlag.Name,
	}, nil
}

// resolveReferences loads the card flag, value type and store in parallel
// and reports every one that is missing.
func (s *SimulationService) resolveReferences(ctx context.Context, in SimulateInput) (*model.CardFlag, *model.ValueType, *model.Store, error) {
	var (
		cardFlag  *model.CardFlag
		valueType *model.ValueType
		store     *model.Store
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cardFlag, err = optional(s.cardFlags.FindByID(gctx, in.CardFlagID))
		return err
	})
	g.Go(func() (err error) {
		valueType, err = optional(s.valueTypes.FindByID(gctx, in.ValueTypeID))
		return err
	})
	g.Go(func() (err error) {
		store, err = optional(s.stores.FindByID(gctx, in.StoreID))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("resolve simulation references: %w", err)
	}

	fields := map[string][]string{}
	var missing []string
	if cardFlag == nil {
		missing = append(missing, "card flag")
		fields["card_flag_id"] = []string{"The selected card flag does not exist."}
	}
	if valueType == nil {
		missing = append(missing, "value type")
		fields["value_type_id"] = []string{"The selected value type does not exist."}
	}
	if store == nil {
		missing = append(missing, "store")
		fields["store_id"] = []string{"The selected store does not exist."}
	}
	if len(missing) > 0 {
		e := notFound(fmt.Sprintf("Resource not found: %s.", strings.Join(missing, ", ")))
		e.Fields = fields
		return nil, nil, nil, e
	}

	return cardFlag, valueType, store, nil
}

func (s *SimulationService) Show(ctx context.Context, id string) (*model.SimulationDetail, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, notFound("Simulation not found.")
	}
	sim, err := optional(s.simulations.FindByUUID(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("find simulation: %w", err)
	}
	if sim == nil {
		return nil, notFound("Simulation not found.")
	}
	return sim, nil
}

func (s *SimulationService) List(ctx context.Context, f repository.SimulationFilter, limit, offset int) ([]model.SimulationDetail, int, error) {
	return s.simulations.List(ctx, f, limit, offset)
}

func (s *SimulationService) Update(ctx context.Context, id int64, p SimulationPatch) (*model.Simulation, error) {
	sim, err := optional(s.simulations.FindByID(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("find simulation: %w", err)
	}
	if sim == nil {
		return nil, notFound("Simulation not found.")
	}

	if p.Amount != nil {
		sim.Quote.Amount = p.Amount.Round(2)
	}
	if p.AmountWithInterest != nil {
		sim.Quote.AmountWithInterest = p.AmountWithInterest.Round(2)
	}
	if p.InterestRateByTypeOfAmount != nil {
		sim.Rates.TypeOfAmount = p.InterestRateByTypeOfAmount.Round(2)
	}
	if p.InterestRateByNumberOfInstallments != nil {
		sim.Rates.NumberOfInstallments = p.InterestRateByNumberOfInstallments.Round(2)
	}
	if p.Installments != nil {
		sim.Quote.Installments = *p.Installments
	}
	if p.InstallmentValue != nil {
		sim.Quote.InstallmentValue = p.InstallmentValue.Round(2)
	}
	if p.IP != nil {
		sim.IP = *p.IP
	}

	if err := s.simulations.Update(ctx, sim); err != nil {
		return nil, fmt.Errorf("update simulation: %w", err)
	}
	return sim, nil
}

func (s *SimulationService) Delete(ctx context.Context, id int64) error {
	return orNotFound(s.simulations.Delete(ctx, id), "Simulation not found.")
}

// optional turns a missing row into a nil result.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
