package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/authlend-api/internal/model"
)

type StoreRepository struct {
	pool *pgxpool.Pool
}

func NewStoreRepository(pool *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

const storeSelect = `
	SELECT s.id, s.name, s.created_at, s.updated_at,
		a.street, a.city, a.state, a.zip_code
	FROM stores s
	LEFT JOIN store_addresses a ON a.store_id = s.id`

func scanStore(row rowScanner, extra ...any) (*model.Store, error) {
	st := &model.Store{}
	var street, city, state, zip *string
	dest := append([]any{&st.ID, &st.Name, &st.CreatedAt, &st.UpdatedAt, &street, &city, &state, &zip}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if city != nil {
		st.Address = &model.StoreAddress{
			Street:  deref(street),
			City:    *city,
			State:   deref(state),
			ZipCode: deref(zip),
		}
	}
	return st, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id int64) (*model.Store, error) {
	return scanStore(r.pool.QueryRow(ctx, storeSelect+` WHERE s.id = $1`, id))
}

func (r *StoreRepository) List(ctx context.Context, name, city string, limit, offset int) ([]model.Store, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.created_at, s.updated_at,
			a.street, a.city, a.state, a.zip_code, COUNT(*) OVER() AS total
		FROM stores s
		LEFT JOIN store_addresses a ON a.store_id = s.id
		WHERE ($1 = '' OR s.name ILIKE '%' || $1 || '%')
			AND ($2 = '' OR a.city ILIKE '%' || $2 || '%')
		ORDER BY s.name
		LIMIT $3 OFFSET $4`, name, city, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		stores []model.Store
		total  int
	)
	for rows.Next() {
		st, err := scanStore(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		stores = append(stores, *st)
	}
	return stores, total, rows.Err()
}

// Insert writes the store and its address in one transaction.
func (r *StoreRepository) Insert(ctx context.Context, st *model.Store) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin store transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO stores (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		st.Name,
	).Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}

	if err := upsertAddress(ctx, tx, st); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *StoreRepository) Update(ctx context.Context, st *model.Store) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin store transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE stores SET name = $2, updated_at = NOW() WHERE id = $1
		RETURNING created_at, updated_at`,
		st.ID, st.Name,
	).Scan(&st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return err
	}

	if err := upsertAddress(ctx, tx, st); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func upsertAddress(ctx context.Context, tx pgx.Tx, st *model.Store) error {
	if st.Address == nil {
		return nil
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO store_addresses (store_id, street, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (store_id) DO UPDATE SET
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			updated_at = NOW()`,
		st.ID, st.Address.Street, st.Address.City, st.Address.State, st.Address.ZipCode)
	if err != nil {
		return fmt.Errorf("upsert store address: %w", err)
	}
	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
