package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/authlend-api/internal/model"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type CardFlagRepository struct {
	pool *pgxpool.Pool
}

func NewCardFlagRepository(pool *pgxpool.Pool) *CardFlagRepository {
	return &CardFlagRepository{pool: pool}
}

const cardFlagColumns = `id, name, image_url, created_at, updated_at`

func scanCardFlag(row rowScanner) (*model.CardFlag, error) {
	cf := &model.CardFlag{}
	if err := row.Scan(&cf.ID, &cf.Name, &cf.ImageURL, &cf.CreatedAt, &cf.UpdatedAt); err != nil {
		return nil, err
	}
	return cf, nil
}

func (r *CardFlagRepository) FindByID(ctx context.Context, id int64) (*model.CardFlag, error) {
	return scanCardFlag(r.pool.QueryRow(ctx,
		`SELECT `+cardFlagColumns+` FROM card_flags WHERE id = $1`, id))
}

func (r *CardFlagRepository) List(ctx context.Context, name string, limit, offset int) ([]model.CardFlag, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cardFlagColumns+`, COUNT(*) OVER() AS total
		FROM card_flags
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3`, name, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		flags []model.CardFlag
		total int
	)
	for rows.Next() {
		var cf model.CardFlag
		if err := rows.Scan(&cf.ID, &cf.Name, &cf.ImageURL, &cf.CreatedAt, &cf.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		flags = append(flags, cf)
	}
	return flags, total, rows.Err()
}

func (r *CardFlagRepository) Insert(ctx context.Context, cf *model.CardFlag) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO card_flags (name, image_url) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		cf.Name, cf.ImageURL,
	).Scan(&cf.ID, &cf.CreatedAt, &cf.UpdatedAt)
}

func (r *CardFlagRepository) Update(ctx context.Context, cf *model.CardFlag) error {
	return r.pool.QueryRow(ctx,
		`UPDATE card_flags SET name = $2, image_url = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		cf.ID, cf.Name, cf.ImageURL,
	).Scan(&cf.CreatedAt, &cf.UpdatedAt)
}

// Delete removes the card flag; its limit and interest configurations go
// with it through ON DELETE CASCADE.
func (r *CardFlagRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM card_flags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
