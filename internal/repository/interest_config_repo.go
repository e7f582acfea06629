package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/authlend-api/internal/model"
)

type InterestConfigurationFilter struct {
	CardFlagID   *int64
	StoreID      *int64
	ValueTypeID  *int64
	Installments *int
}

type InterestConfigurationRepository struct {
	pool *pgxpool.Pool
}

func NewInterestConfigurationRepository(pool *pgxpool.Pool) *InterestConfigurationRepository {
	return &InterestConfigurationRepository{pool: pool}
}

const interestConfigColumns = `id, card_flag_id, store_id, value_type_id, installments, interest_rate, created_at, updated_at`

func scanInterestConfig(row rowScanner) (*model.InterestConfiguration, error) {
	ic := &model.InterestConfiguration{}
	if err := row.Scan(&ic.ID, &ic.CardFlagID, &ic.StoreID, &ic.ValueTypeID, &ic.Installments,
		&ic.InterestRate, &ic.CreatedAt, &ic.UpdatedAt); err != nil {
		return nil, err
	}
	return ic, nil
}

func (r *InterestConfigurationRepository) FindByID(ctx context.Context, id int64) (*model.InterestConfiguration, error) {
	return scanInterestConfig(r.pool.QueryRow(ctx,
		`SELECT `+interestConfigColumns+` FROM interest_configurations WHERE id = $1`, id))
}

// FindByKey returns the single configuration for the combination; the
// unique index guarantees there is at most one.
func (r *InterestConfigurationRepository) FindByKey(ctx context.Context, key model.ConfigurationKey) (*model.InterestConfiguration, error) {
	return scanInterestConfig(r.pool.QueryRow(ctx,
		`SELECT `+interestConfigColumns+`
		FROM interest_configurations
		WHERE card_flag_id = $1 AND store_id = $2 AND value_type_id = $3 AND installments = $4`,
		key.CardFlagID, key.StoreID, key.ValueTypeID, key.Installments))
}

func (r *InterestConfigurationRepository) List(ctx context.Context, f InterestConfigurationFilter, limit, offset int) ([]model.InterestConfiguration, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+interestConfigColumns+`, COUNT(*) OVER() AS total
		FROM interest_configurations
		WHERE ($1::bigint IS NULL OR card_flag_id = $1)
			AND ($2::bigint IS NULL OR store_id = $2)
			AND ($3::bigint IS NULL OR value_type_id = $3)
			AND ($4::int IS NULL OR installments = $4)
		ORDER BY card_flag_id, store_id, value_type_id, installments
		LIMIT $5 OFFSET $6`,
		f.CardFlagID, f.StoreID, f.ValueTypeID, f.Installments, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		configs []model.InterestConfiguration
		total   int
	)
	for rows.Next() {
		var ic model.InterestConfiguration
		if err := rows.Scan(&ic.ID, &ic.CardFlagID, &ic.StoreID, &ic.ValueTypeID, &ic.Installments,
			&ic.InterestRate, &ic.CreatedAt, &ic.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		configs = append(configs, ic)
	}
	return configs, total, rows.Err()
}

func (r *InterestConfigurationRepository) Insert(ctx context.Context, ic *model.InterestConfiguration) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO interest_configurations (card_flag_id, store_id, value_type_id, installments, interest_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		ic.CardFlagID, ic.StoreID, ic.ValueTypeID, ic.Installments, ic.InterestRate,
	).Scan(&ic.ID, &ic.CreatedAt, &ic.UpdatedAt)
}

func (r *InterestConfigurationRepository) Update(ctx context.Context, ic *model.InterestConfiguration) error {
	return r.pool.QueryRow(ctx,
		`UPDATE interest_configurations
		SET card_flag_id = $2, store_id = $3, value_type_id = $4, installments = $5, interest_rate = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		ic.ID, ic.CardFlagID, ic.StoreID, ic.ValueTypeID, ic.Installments, ic.InterestRate,
	).Scan(&ic.CreatedAt, &ic.UpdatedAt)
}

func (r *InterestConfigurationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM interest_configurations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
