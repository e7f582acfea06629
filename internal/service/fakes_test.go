package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/repository"
)

// memCatalog is an in-memory stand-in for every repository the services use.
type memCatalog struct {
	mu          sync.Mutex
	cardFlags   map[int64]*model.CardFlag
	valueTypes  map[int64]*model.ValueType
	stores      map[int64]*model.Store
	limits      map[int64]*model.InstallmentLimit
	configs     map[int64]*model.InterestConfiguration
	simulations []*model.Simulation
	nextID      int64
	failWith    error
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		cardFlags:  map[int64]*model.CardFlag{},
		valueTypes: map[int64]*model.ValueType{},
		stores:     map[int64]*model.Store{},
		limits:     map[int64]*model.InstallmentLimit{},
		configs:    map[int64]*model.InterestConfiguration{},
		nextID:     100,
	}
}

func (m *memCatalog) id() int64 {
	m.nextID++
	return m.nextID
}

// seeded returns a catalog holding Visa (12x, min 100.00), an ASC and a DESC
// value type, one store and configurations for 1 and 12 installments.
func seeded() *memCatalog {
	m := newMemCatalog()
	m.cardFlags[1] = &model.CardFlag{ID: 1, Name: "Visa"}
	m.cardFlags[2] = &model.CardFlag{ID: 2, Name: "Elo"}
	m.valueTypes[1] = &model.ValueType{ID: 1, Type: "Credit", InterestRate: decimal.RequireFromString("1.50"), Direction: model.DirectionAsc}
	m.valueTypes[2] = &model.ValueType{ID: 2, Type: "Cashback", InterestRate: decimal.RequireFromString("1.50"), Direction: model.DirectionDesc}
	m.stores[1] = &model.Store{ID: 1, Name: "AuthLend Recife", Address: &model.StoreAddress{City: "Recife"}}
	m.limits[1] = &model.InstallmentLimit{ID: 1, CardFlagID: 1, Installments: 12, MinValue: decimal.RequireFromString("100.00")}
	for i, key := range []model.ConfigurationKey{
		{CardFlagID: 1, StoreID: 1, ValueTypeID: 1, Installments: 12},
		{CardFlagID: 1, StoreID: 1, ValueTypeID: 2, Installments: 1},
	} {
		id := int64(i + 1)
		m.configs[id] = &model.InterestConfiguration{
			ID: id, CardFlagID: key.CardFlagID, StoreID: key.StoreID, ValueTypeID: key.ValueTypeID,
			Installments: key.Installments, InterestRate: decimal.RequireFromString("2.50"),
		}
	}
	return m
}

type cardFlagRepo struct{ *memCatalog }

func (r cardFlagRepo) FindByID(_ context.Context, id int64) (*model.CardFlag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	if cf, ok := r.cardFlags[id]; ok {
		c := *cf
		return &c, nil
	}
	return nil, pgx.ErrNoRows
}

func (r cardFlagRepo) List(_ context.Context, _ string, _, _ int) ([]model.CardFlag, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.CardFlag
	for _, cf := range r.cardFlags {
		out = append(out, *cf)
	}
	return out, len(out), nil
}

func (r cardFlagRepo) Insert(_ context.Context, cf *model.CardFlag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cf.ID = r.id()
	c := *cf
	r.cardFlags[cf.ID] = &c
	return nil
}

func (r cardFlagRepo) Update(_ context.Context, cf *model.CardFlag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cardFlags[cf.ID]; !ok {
		return pgx.ErrNoRows
	}
	c := *cf
	r.cardFlags[cf.ID] = &c
	return nil
}

func (r cardFlagRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cardFlags[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.cardFlags, id)
	return nil
}

type valueTypeRepo struct{ *memCatalog }

func (r valueTypeRepo) FindByID(_ context.Context, id int64) (*model.ValueType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vt, ok := r.valueTypes[id]; ok {
		v := *vt
		return &v, nil
	}
	return nil, pgx.ErrNoRows
}

func (r valueTypeRepo) List(_ context.Context, _ string, _, _ int) ([]model.ValueType, int, error) {
	return nil, 0, nil
}

func (r valueTypeRepo) Insert(_ context.Context, vt *model.ValueType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vt.ID = r.id()
	v := *vt
	r.valueTypes[vt.ID] = &v
	return nil
}

func (r valueTypeRepo) Update(_ context.Context, vt *model.ValueType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.valueTypes[vt.ID]; !ok {
		return pgx.ErrNoRows
	}
	v := *vt
	r.valueTypes[vt.ID] = &v
	return nil
}

func (r valueTypeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.valueTypes[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.valueTypes, id)
	return nil
}

type storeRepo struct{ *memCatalog }

func (r storeRepo) FindByID(_ context.Context, id int64) (*model.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.stores[id]; ok {
		s := *st
		return &s, nil
	}
	return nil, pgx.ErrNoRows
}

func (r storeRepo) List(_ context.Context, _, _ string, _, _ int) ([]model.Store, int, error) {
	return nil, 0, nil
}

func (r storeRepo) Insert(_ context.Context, st *model.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st.ID = r.id()
	s := *st
	r.stores[st.ID] = &s
	return nil
}

func (r storeRepo) Update(_ context.Context, st *model.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[st.ID]; !ok {
		return pgx.ErrNoRows
	}
	s := *st
	r.stores[st.ID] = &s
	return nil
}

func (r storeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.stores, id)
	return nil
}

type limitRepo struct{ *memCatalog }

func (r limitRepo) FindByCardFlagID(_ context.Context, cardFlagID int64) (*model.InstallmentLimit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.limits {
		if l.CardFlagID == cardFlagID {
			c := *l
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r limitRepo) List(_ context.Context, _ repository.InstallmentLimitFilter, _, _ int) ([]model.InstallmentLimit, int, error) {
	return nil, 0, nil
}

func (r limitRepo) Insert(_ context.Context, l *model.InstallmentLimit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.id()
	c := *l
	r.limits[l.ID] = &c
	return nil
}

func (r limitRepo) Update(_ context.Context, l *model.InstallmentLimit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.limits[l.ID]; !ok {
		return pgx.ErrNoRows
	}
	c := *l
	r.limits[l.ID] = &c
	return nil
}

func (r limitRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.limits[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.limits, id)
	return nil
}

type configRepo struct{ *memCatalog }

func (r configRepo) FindByKey(_ context.Context, key model.ConfigurationKey) (*model.InterestConfiguration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ic := range r.configs {
		if ic.CardFlagID == key.CardFlagID && ic.StoreID == key.StoreID &&
			ic.ValueTypeID == key.ValueTypeID && ic.Installments == key.Installments {
			c := *ic
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r configRepo) List(_ context.Context, _ repository.InterestConfigurationFilter, _, _ int) ([]model.InterestConfiguration, int, error) {
	return nil, 0, nil
}

func (r configRepo) Insert(_ context.Context, ic *model.InterestConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ic.ID = r.id()
	c := *ic
	r.configs[ic.ID] = &c
	return nil
}

func (r configRepo) Update(_ context.Context, ic *model.InterestConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[ic.ID]; !ok {
		return pgx.ErrNoRows
	}
	c := *ic
	r.configs[ic.ID] = &c
	return nil
}

func (r configRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.configs, id)
	return nil
}

type simulationRepo struct{ *memCatalog }

func (r simulationRepo) Insert(_ context.Context, sim *model.Simulation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sim.ID = r.id()
	c := *sim
	r.simulations = append(r.simulations, &c)
	return nil
}

func (r simulationRepo) FindByUUID(_ context.Context, id string) (*model.SimulationDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sim := range r.simulations {
		if sim.UUID == id {
			d := &model.SimulationDetail{Simulation: *sim}
			if sim.Refs.StoreID != nil {
				d.Store = r.stores[*sim.Refs.StoreID]
			}
			if sim.Refs.CardFlagID != nil {
				d.CardFlag = r.cardFlags[*sim.Refs.CardFlagID]
			}
			if sim.Refs.ValueTypeID != nil {
				d.ValueType = r.valueTypes[*sim.Refs.ValueTypeID]
			}
			return d, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r simulationRepo) FindByID(_ context.Context, id int64) (*model.Simulation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sim := range r.simulations {
		if sim.ID == id {
			c := *sim
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r simulationRepo) List(_ context.Context, f repository.SimulationFilter, limit, offset int) ([]model.SimulationDetail, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SimulationDetail
	for _, sim := range r.simulations {
		if f.Installments != nil && sim.Quote.Installments != *f.Installments {
			continue
		}
		out = append(out, model.SimulationDetail{Simulation: *sim})
	}
	total := len(out)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return out[offset:end], total, nil
}

func (r simulationRepo) Update(_ context.Context, sim *model.Simulation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.simulations {
		if s.ID == sim.ID {
			c := *sim
			r.simulations[i] = &c
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r simulationRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.simulations {
		if s.ID == id {
			r.simulations = append(r.simulations[:i], r.simulations[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memCatalog) simulationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.simulations)
}

func newTestSimulationService(m *memCatalog) *SimulationService {
	return NewSimulationService(cardFlagRepo{m}, valueTypeRepo{m}, storeRepo{m}, limitRepo{m}, configRepo{m}, simulationRepo{m})
}
