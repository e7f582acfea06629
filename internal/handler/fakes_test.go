package handler

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/repository"
	"github.com/anyulbade/authlend-api/internal/service"
)

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type fakeSimulations struct {
	lastInput  service.SimulateInput
	lastFilter repository.SimulationFilter
	lastLimit  int
	lastOffset int
	lastPatch  service.SimulationPatch
	err        error
	detail     *model.SimulationDetail
	list       []model.SimulationDetail
	total      int
}

func (f *fakeSimulations) Simulate(_ context.Context, in service.SimulateInput) (*service.SimulationResult, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &service.SimulationResult{
		SimulationID: "0b7f4c1e-5d55-4c53-9d0c-1f1b8f3a9e21",
		Quote: model.Quote{
			Amount:             in.Amount.Round(2),
			AmountWithInterest: decimal.RequireFromString("1040.375").RoundFloor(2),
			Installments:       in.Installments,
			InstallmentValue:   decimal.RequireFromString("86.7"),
		},
		Rates: model.RateSnapshot{
			TypeOfAmount:         decimal.RequireFromString("1.5"),
			NumberOfInstallments: decimal.RequireFromString("2.5"),
		},
		ValueType: "Credit",
		StoreName: "AuthLend Recife",
		StoreCity: "Recife",
		CardFlag:  "Visa",
	}, nil
}

func (f *fakeSimulations) Show(_ context.Context, _ string) (*model.SimulationDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func (f *fakeSimulations) List(_ context.Context, filter repository.SimulationFilter, limit, offset int) ([]model.SimulationDetail, int, error) {
	f.lastFilter, f.lastLimit, f.lastOffset = filter, limit, offset
	return f.list, f.total, f.err
}

func (f *fakeSimulations) Update(_ context.Context, id int64, p service.SimulationPatch) (*model.Simulation, error) {
	f.lastPatch = p
	if f.err != nil {
		return nil, f.err
	}
	sim := &model.Simulation{ID: id, UUID: "0b7f4c1e-5d55-4c53-9d0c-1f1b8f3a9e21", CreatedAt: fixedTime, UpdatedAt: fixedTime}
	if p.Amount != nil {
		sim.Quote.Amount = p.Amount.Round(2)
	}
	if p.Installments != nil {
		sim.Quote.Installments = *p.Installments
	}
	return sim, nil
}

func (f *fakeSimulations) Delete(_ context.Context, _ int64) error {
	return f.err
}

type fakeCardFlags struct {
	created []model.CardFlag
	err     error
}

func (f *fakeCardFlags) List(_ context.Context, name string, _, _ int) ([]model.CardFlag, int, error) {
	return []model.CardFlag{{ID: 1, Name: "Visa" + name, CreatedAt: fixedTime, UpdatedAt: fixedTime}}, 1, f.err
}

func (f *fakeCardFlags) Create(_ context.Context, cf *model.CardFlag) error {
	if f.err != nil {
		return f.err
	}
	cf.ID = int64(len(f.created) + 10)
	f.created = append(f.created, *cf)
	return nil
}

func (f *fakeCardFlags) Update(_ context.Context, _ *model.CardFlag) error { return f.err }
func (f *fakeCardFlags) Delete(_ context.Context, _ int64) error           { return f.err }

type fakeInstallmentLimits struct {
	lastFilter repository.InstallmentLimitFilter
	err        error
}

func (f *fakeInstallmentLimits) List(_ context.Context, filter repository.InstallmentLimitFilter, _, _ int) ([]model.InstallmentLimit, int, error) {
	f.lastFilter = filter
	return nil, 0, f.err
}

func (f *fakeInstallmentLimits) Create(_ context.Context, l *model.InstallmentLimit) error {
	l.ID = 5
	return f.err
}

func (f *fakeInstallmentLimits) Update(_ context.Context, _ *model.InstallmentLimit) error {
	return f.err
}
func (f *fakeInstallmentLimits) Delete(_ context.Context, _ int64) error { return f.err }

type fakeValueTypes struct {
	lastInput service.ValueTypeInput
	err       error
}

func (f *fakeValueTypes) List(_ context.Context, _ string, _, _ int) ([]model.ValueType, int, error) {
	return nil, 0, f.err
}

func (f *fakeValueTypes) Create(_ context.Context, in service.ValueTypeInput) (*model.ValueType, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	dir, err := model.ParseDirection(in.Direction)
	if err != nil {
		return nil, err
	}
	return &model.ValueType{ID: 3, Type: in.Type, InterestRate: in.InterestRate, Direction: dir}, nil
}

func (f *fakeValueTypes) Update(ctx context.Context, id int64, in service.ValueTypeInput) (*model.ValueType, error) {
	vt, err := f.Create(ctx, in)
	if vt != nil {
		vt.ID = id
	}
	return vt, err
}

func (f *fakeValueTypes) Delete(_ context.Context, _ int64) error { return f.err }

type fakeInterestConfigs struct {
	last *model.InterestConfiguration
	err  error
}

func (f *fakeInterestConfigs) List(_ context.Context, _ repository.InterestConfigurationFilter, _, _ int) ([]model.InterestConfiguration, int, error) {
	return nil, 0, f.err
}

func (f *fakeInterestConfigs) Create(_ context.Context, ic *model.InterestConfiguration) error {
	f.last = ic
	ic.ID = 9
	return f.err
}

func (f *fakeInterestConfigs) Update(_ context.Context, ic *model.InterestConfiguration) error {
	f.last = ic
	return f.err
}

func (f *fakeInterestConfigs) Delete(_ context.Context, _ int64) error { return f.err }

type fakeStores struct {
	last *model.Store
	err  error
}

func (f *fakeStores) List(_ context.Context, _, _ string, _, _ int) ([]model.Store, int, error) {
	return nil, 0, f.err
}

func (f *fakeStores) Create(_ context.Context, st *model.Store) error {
	f.last = st
	st.ID = 4
	return f.err
}

func (f *fakeStores) Update(_ context.Context, st *model.Store) error {
	f.last = st
	return f.err
}

func (f *fakeStores) Delete(_ context.Context, _ int64) error { return f.err }
