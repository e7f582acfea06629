package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/authlend-api/internal/model"
)

type ValueTypeRepository struct {
	pool *pgxpool.Pool
}

func NewValueTypeRepository(pool *pgxpool.Pool) *ValueTypeRepository {
	return &ValueTypeRepository{pool: pool}
}

const valueTypeColumns = `id, type, interest_rate, direction, created_at, updated_at`

func scanValueType(row rowScanner) (*model.ValueType, error) {
	vt := &model.ValueType{}
	if err := row.Scan(&vt.ID, &vt.Type, &vt.InterestRate, &vt.Direction, &vt.CreatedAt, &vt.UpdatedAt); err != nil {
		return nil, err
	}
	return vt, nil
}

func (r *ValueTypeRepository) FindByID(ctx context.Context, id int64) (*model.ValueType, error) {
	return scanValueType(r.pool.QueryRow(ctx,
		`SELECT `+valueTypeColumns+` FROM value_types WHERE id = $1`, id))
}

func (r *ValueTypeRepository) List(ctx context.Context, typeName string, limit, offset int) ([]model.ValueType, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+valueTypeColumns+`, COUNT(*) OVER() AS total
		FROM value_types
		WHERE ($1 = '' OR type ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3`, typeName, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		types []model.ValueType
		total int
	)
	for rows.Next() {
		var vt model.ValueType
		if err := rows.Scan(&vt.ID, &vt.Type, &vt.InterestRate, &vt.Direction, &vt.CreatedAt, &vt.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		types = append(types, vt)
	}
	return types, total, rows.Err()
}

func (r *ValueTypeRepository) Insert(ctx context.Context, vt *model.ValueType) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO value_types (type, interest_rate, direction) VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		vt.Type, vt.InterestRate, vt.Direction,
	).Scan(&vt.ID, &vt.CreatedAt, &vt.UpdatedAt)
}

func (r *ValueTypeRepository) Update(ctx context.Context, vt *model.ValueType) error {
	return r.pool.QueryRow(ctx,
		`UPDATE value_types SET type = $2, interest_rate = $3, direction = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		vt.ID, vt.Type, vt.InterestRate, vt.Direction,
	).Scan(&vt.CreatedAt, &vt.UpdatedAt)
}

func (r *ValueTypeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM value_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
