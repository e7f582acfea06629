package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/authlend-api/internal/model"
)

type InstallmentLimitFilter struct {
	CardFlagID   *int64
	Installments *int
	MinValue     *decimal.Decimal
}

type InstallmentLimitRepository struct {
	pool *pgxpool.Pool
}

func NewInstallmentLimitRepository(pool *pgxpool.Pool) *InstallmentLimitRepository {
	return &InstallmentLimitRepository{pool: pool}
}

const installmentLimitColumns = `id, card_flag_id, installments, min_value, created_at, updated_at`

func scanInstallmentLimit(row rowScanner) (*model.InstallmentLimit, error) {
	l := &model.InstallmentLimit{}
	if err := row.Scan(&l.ID, &l.CardFlagID, &l.Installments, &l.MinValue, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *InstallmentLimitRepository) FindByID(ctx context.Context, id int64) (*model.InstallmentLimit, error) {
	return scanInstallmentLimit(r.pool.QueryRow(ctx,
		`SELECT `+installmentLimitColumns+` FROM card_flag_installment_limits WHERE id = $1`, id))
}

func (r *InstallmentLimitRepository) FindByCardFlagID(ctx context.Context, cardFlagID int64) (*model.InstallmentLimit, error) {
	return scanInstallmentLimit(r.pool.QueryRow(ctx,
		`SELECT `+installmentLimitColumns+` FROM card_flag_installment_limits WHERE card_flag_id = $1`, cardFlagID))
}

func (r *InstallmentLimitRepository) List(ctx context.Context, f InstallmentLimitFilter, limit, offset int) ([]model.InstallmentLimit, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+installmentLimitColumns+`, COUNT(*) OVER() AS total
		FROM card_flag_installment_limits
		WHERE ($1::bigint IS NULL OR card_flag_id = $1)
			AND ($2::int IS NULL OR installments = $2)
			AND ($3::numeric IS NULL OR min_value = $3)
		ORDER BY id
		LIMIT $4 OFFSET $5`,
		f.CardFlagID, f.Installments, f.MinValue, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		limits []model.InstallmentLimit
		total  int
	)
	for rows.Next() {
		var l model.InstallmentLimit
		if err := rows.Scan(&l.ID, &l.CardFlagID, &l.Installments, &l.MinValue, &l.CreatedAt, &l.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		limits = append(limits, l)
	}
	return limits, total, rows.Err()
}

func (r *InstallmentLimitRepository) Insert(ctx context.Context, l *model.InstallmentLimit) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO card_flag_installment_limits (card_flag_id, installments, min_value)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		l.CardFlagID, l.Installments, l.MinValue,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *InstallmentLimitRepository) Update(ctx context.Context, l *model.InstallmentLimit) error {
	return r.pool.QueryRow(ctx,
		`UPDATE card_flag_installment_limits
		SET card_flag_id = $2, installments = $3, min_value = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		l.ID, l.CardFlagID, l.Installments, l.MinValue,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
}

func (r *InstallmentLimitRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM card_flag_installment_limits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
