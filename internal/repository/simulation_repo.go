package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/authlend-api/internal/model"
)

type SimulationFilter struct {
	Installments     *int
	InstallmentValue *decimal.Decimal
	StoreID          *int64
	CardFlagID       *int64
	ValueTypeID      *int64
	MinAmount        *decimal.Decimal
	MaxAmount        *decimal.Decimal
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
}

type SimulationRepository struct {
	pool *pgxpool.Pool
}

func NewSimulationRepository(pool *pgxpool.Pool) *SimulationRepository {
	return &SimulationRepository{pool: pool}
}

const simulationColumns = `s.id, s.uuid::text, s.amount, s.amount_with_interest,
	s.interest_rate_by_type_of_amount, s.interest_rate_by_number_of_installments,
	s.installments, s.installment_value, s.value_type_id, s.store_id, s.card_flag_id,
	COALESCE(s.ip, ''), s.created_at, s.updated_at`

// simulationDetailSelect joins every relation; any of them may be gone.
const simulationDetailSelect = `
	SELECT ` + simulationColumns + `,
		st.name, st.created_at, st.updated_at, a.street, a.city, a.state, a.zip_code,
		cf.name, cf.image_url, cf.created_at, cf.updated_at,
		vt.type, vt.interest_rate, vt.direction, vt.created_at, vt.updated_at`

const simulationDetailFrom = `
	FROM simulations s
	LEFT JOIN stores st ON st.id = s.store_id
	LEFT JOIN store_addresses a ON a.store_id = st.id
	LEFT JOIN card_flags cf ON cf.id = s.card_flag_id
	LEFT JOIN value_types vt ON vt.id = s.value_type_id`

func simulationDest(sim *model.Simulation) []any {
	return []any{
		&sim.ID, &sim.UUID, &sim.Quote.Amount, &sim.Quote.AmountWithInterest,
		&sim.Rates.TypeOfAmount, &sim.Rates.NumberOfInstallments,
		&sim.Quote.Installments, &sim.Quote.InstallmentValue,
		&sim.Refs.ValueTypeID, &sim.Refs.StoreID, &sim.Refs.CardFlagID,
		&sim.IP, &sim.CreatedAt, &sim.UpdatedAt,
	}
}

func scanSimulationDetail(row rowScanner, extra ...any) (*model.SimulationDetail, error) {
	d := &model.SimulationDetail{}
	var (
		stName                   *string
		stCreated, stUpdated     *time.Time
		street, city, state, zip *string
		cfName, cfImage          *string
		cfCreated, cfUpdated     *time.Time
		vtType, vtDirection      *string
		vtRate                   decimal.NullDecimal
		vtCreated, vtUpdated     *time.Time
	)

	dest := simulationDest(&d.Simulation)
	dest = append(dest,
		&stName, &stCreated, &stUpdated, &street, &city, &state, &zip,
		&cfName, &cfImage, &cfCreated, &cfUpdated,
		&vtType, &vtRate, &vtDirection, &vtCreated, &vtUpdated,
	)
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if d.Refs.StoreID != nil && stName != nil {
		d.Store = &model.Store{ID: *d.Refs.StoreID, Name: *stName, CreatedAt: derefTime(stCreated), UpdatedAt: derefTime(stUpdated)}
		if city != nil {
			d.Store.Address = &model.StoreAddress{Street: deref(street), City: *city, State: deref(state), ZipCode: deref(zip)}
		}
	}
	if d.Refs.CardFlagID != nil && cfName != nil {
		d.CardFlag = &model.CardFlag{ID: *d.Refs.CardFlagID, Name: *cfName, ImageURL: cfImage,
			CreatedAt: derefTime(cfCreated), UpdatedAt: derefTime(cfUpdated)}
	}
	if d.Refs.ValueTypeID != nil && vtType != nil {
		d.ValueType = &model.ValueType{ID: *d.Refs.ValueTypeID, Type: *vtType, InterestRate: vtRate.Decimal,
			CreatedAt: derefTime(vtCreated), UpdatedAt: derefTime(vtUpdated)}
		if err := d.ValueType.Direction.Scan(deref(vtDirection)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (r *SimulationRepository) Insert(ctx context.Context, sim *model.Simulation) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO simulations (
			uuid, amount, amount_with_interest,
			interest_rate_by_type_of_amount, interest_rate_by_number_of_installments,
			installments, installment_value, value_type_id, store_id, card_flag_id, ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
		RETURNING id, created_at, updated_at`,
		sim.UUID, sim.Quote.Amount, sim.Quote.AmountWithInterest,
		sim.Rates.TypeOfAmount, sim.Rates.NumberOfInstallments,
		sim.Quote.Installments, sim.Quote.InstallmentValue,
		sim.Refs.ValueTypeID, sim.Refs.StoreID, sim.Refs.CardFlagID, sim.IP,
	).Scan(&sim.ID, &sim.CreatedAt, &sim.UpdatedAt)
}

func (r *SimulationRepository) FindByUUID(ctx context.Context, id string) (*model.SimulationDetail, error) {
	return scanSimulationDetail(r.pool.QueryRow(ctx,
		simulationDetailSelect+simulationDetailFrom+` WHERE s.uuid = $1`, id))
}

func (r *SimulationRepository) FindByID(ctx context.Context, id int64) (*model.Simulation, error) {
	sim := &model.Simulation{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+simulationColumns+` FROM simulations s WHERE s.id = $1`, id).
		Scan(simulationDest(sim)...)
	if err != nil {
		return nil, err
	}
	return sim, nil
}

func (r *SimulationRepository) List(ctx context.Context, f SimulationFilter, limit, offset int) ([]model.SimulationDetail, int, error) {
	rows, err := r.pool.Query(ctx,
		simulationDetailSelect+`, COUNT(*) OVER() AS total`+simulationDetailFrom+`
		WHERE ($1::int IS NULL OR s.installments = $1)
			AND ($2::numeric IS NULL OR s.installment_value = $2)
			AND ($3::bigint IS NULL OR s.store_id = $3)
			AND ($4::bigint IS NULL OR s.card_flag_id = $4)
			AND ($5::bigint IS NULL OR s.value_type_id = $5)
			AND ($6::numeric IS NULL OR s.amount >= $6)
			AND ($7::numeric IS NULL OR s.amount <= $7)
			AND ($8::date IS NULL OR s.created_at::date >= $8)
			AND ($9::date IS NULL OR s.created_at::date <= $9)
		ORDER BY s.id DESC
		LIMIT $10 OFFSET $11`,
		f.Installments, f.InstallmentValue, f.StoreID, f.CardFlagID, f.ValueTypeID,
		f.MinAmount, f.MaxAmount, f.CreatedFrom, f.CreatedTo, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		sims  []model.SimulationDetail
		total int
	)
	for rows.Next() {
		d, err := scanSimulationDetail(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		sims = append(sims, *d)
	}
	return sims, total, rows.Err()
}

// Update overwrites the quote, snapshot and ip columns. References are not
// patchable.
func (r *SimulationRepository) Update(ctx context.Context, sim *model.Simulation) error {
	return r.pool.QueryRow(ctx,
		`UPDATE simulations SET
			amount = $2, amount_with_interest = $3,
			interest_rate_by_type_of_amount = $4, interest_rate_by_number_of_installments = $5,
			installments = $6, installment_value = $7, ip = NULLIF($8, ''), updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		sim.ID, sim.Quote.Amount, sim.Quote.AmountWithInterest,
		sim.Rates.TypeOfAmount, sim.Rates.NumberOfInstallments,
		sim.Quote.Installments, sim.Quote.InstallmentValue, sim.IP,
	).Scan(&sim.UpdatedAt)
}

func (r *SimulationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM simulations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
