package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type cardFlagSeed struct {
	Name         string
	ImageURL     string
	Installments int
	MinValue     string
	// BaseRate is the 1x rate; each extra installment adds RateStep.
	BaseRate string
	RateStep string
}

type valueTypeSeed struct {
	Type      string
	Rate      string
	Direction string
}

var cardFlagSeeds = []cardFlagSeed{
	{Name: "Visa", ImageURL: "https://cdn.authlend.dev/flags/visa.svg", Installments: 12, MinValue: "100.00", BaseRate: "1.99", RateStep: "0.25"},
	{Name: "Mastercard", ImageURL: "https://cdn.authlend.dev/flags/mastercard.svg", Installments: 12, MinValue: "100.00", BaseRate: "2.09", RateStep: "0.25"},
	{Name: "Elo", ImageURL: "https://cdn.authlend.dev/flags/elo.svg", Installments: 6, MinValue: "50.00", BaseRate: "2.49", RateStep: "0.30"},
}

var valueTypeSeeds = []valueTypeSeed{
	{Type: "Credit", Rate: "1.50", Direction: "ASC"},
	{Type: "Cashback", Rate: "1.50", Direction: "DESC"},
}

var storeSeed = struct {
	Name, Street, City, State, ZipCode string
}{"AuthLend Recife", "Av. Boa Viagem, 1000", "Recife", "PE", "51011-000"}

// SeedData loads a minimal catalog: card flags with limits, value types, one
// store and an interest configuration for every reachable installment count.
// It does nothing when card flags already exist.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM card_flags").Scan(&count)
	if err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var storeID int64
	err = tx.QueryRow(ctx, "INSERT INTO stores (name) VALUES ($1) RETURNING id", storeSeed.Name).Scan(&storeID)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	_, err = tx.Exec(ctx,
		"INSERT INTO store_addresses (store_id, street, city, state, zip_code) VALUES ($1, $2, $3, $4, $5)",
		storeID, storeSeed.Street, storeSeed.City, storeSeed.State, storeSeed.ZipCode)
	if err != nil {
		return fmt.Errorf("insert store address: %w", err)
	}

	valueTypeIDs := make([]int64, 0, len(valueTypeSeeds))
	for _, vt := range valueTypeSeeds {
		var id int64
		err := tx.QueryRow(ctx,
			"INSERT INTO value_types (type, interest_rate, direction) VALUES ($1, $2, $3) RETURNING id",
			vt.Type, decimal.RequireFromString(vt.Rate), vt.Direction).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert value type %s: %w", vt.Type, err)
		}
		valueTypeIDs = append(valueTypeIDs, id)
	}
	log.Info().Int("count", len(valueTypeIDs)).Msg("inserted value types")

	configs := 0
	for _, cf := range cardFlagSeeds {
		var flagID int64
		err := tx.QueryRow(ctx,
			"INSERT INTO card_flags (name, image_url) VALUES ($1, $2) RETURNING id",
			cf.Name, cf.ImageURL).Scan(&flagID)
		if err != nil {
			return fmt.Errorf("insert card flag %s: %w", cf.Name, err)
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO card_flag_installment_limits (card_flag_id, installments, min_value) VALUES ($1, $2, $3)",
			flagID, cf.Installments, decimal.RequireFromString(cf.MinValue))
		if err != nil {
			return fmt.Errorf("insert installment limit %s: %w", cf.Name, err)
		}

		n, err := seedInterestConfigurations(ctx, tx, flagID, storeID, valueTypeIDs, cf)
		if err != nil {
			return err
		}
		configs += n
	}
	log.Info().Int("count", len(cardFlagSeeds)).Msg("inserted card flags")
	log.Info().Int("count", configs).Msg("inserted interest configurations")

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().Msg("seed data generation complete")
	return nil
}

func seedInterestConfigurations(ctx context.Context, tx pgx.Tx, flagID, storeID int64, valueTypeIDs []int64, cf cardFlagSeed) (int, error) {
	base := decimal.RequireFromString(cf.BaseRate)
	step := decimal.RequireFromString(cf.RateStep)

	inserted := 0
	for _, valueTypeID := range valueTypeIDs {
		for n := 1; n <= cf.Installments; n++ {
			rate := base.Add(step.Mul(decimal.NewFromInt(int64(n - 1)))).Round(2)
			_, err := tx.Exec(ctx,
				`INSERT INTO interest_configurations (card_flag_id, store_id, value_type_id, installments, interest_rate)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (card_flag_id, store_id, value_type_id, installments) DO NOTHING`,
				flagID, storeID, valueTypeID, n, rate)
			if err != nil {
				return inserted, fmt.Errorf("insert interest configuration %s %dx: %w", cf.Name, n, err)
			}
			inserted++
		}
	}
	return inserted, nil
}
