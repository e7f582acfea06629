package dto

import (
	"time"

	"github.com/anyulbade/authlend-api/internal/model"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every response body. StatusCode always equals the HTTP
// status.
type Envelope struct {
	Status     string              `json:"status"`
	StatusCode int                 `json:"status_code"`
	Message    string              `json:"message"`
	Data       any                 `json:"data"`
	Errors     map[string][]string `json:"errors"`
}

type SimulationResponse struct {
	Amount                             string `json:"amount"`
	AmountWithInterest                 string `json:"amount_with_interest"`
	InterestRateByTypeOfAmount         string `json:"interest_rate_by_type_of_amount"`
	InterestRateByNumberOfInstallments string `json:"interest_rate_by_number_of_installments"`
	ValueType                          string `json:"value_type"`
	Installments                       int    `json:"installments"`
	InstallmentValue                   string `json:"installment_value"`
	StoreName                          string `json:"store_name"`
	StoreCity                          string `json:"store_city"`
	CardFlag                           string `json:"card_flag"`
	SimulationID                       string `json:"simulation_id"`
}

type SimulationRecordResponse struct {
	ID                                 int64              `json:"id"`
	UUID                               string             `json:"uuid"`
	Amount                             string             `json:"amount"`
	AmountWithInterest                 string             `json:"amount_with_interest"`
	InterestRateByTypeOfAmount         string             `json:"interest_rate_by_type_of_amount"`
	InterestRateByNumberOfInstallments string             `json:"interest_rate_by_number_of_installments"`
	Installments                       int                `json:"installments"`
	InstallmentValue                   string             `json:"installment_value"`
	ValueTypeID                        *int64             `json:"value_type_id"`
	StoreID                            *int64             `json:"store_id"`
	CardFlagID                         *int64             `json:"card_flag_id"`
	IP                                 string             `json:"ip"`
	CreatedAt                          time.Time          `json:"created_at"`
	UpdatedAt                          time.Time          `json:"updated_at"`
	Store                              *StoreResponse     `json:"store,omitempty"`
	CardFlag                           *CardFlagResponse  `json:"card_flag,omitempty"`
	ValueType                          *ValueTypeResponse `json:"value_type,omitempty"`
}

func NewSimulationRecordResponse(sim model.Simulation) SimulationRecordResponse {
	return SimulationRecordResponse{
		ID:                                 sim.ID,
		UUID:                               sim.UUID,
		Amount:                             sim.Quote.Amount.StringFixed(2),
		AmountWithInterest:                 sim.Quote.AmountWithInterest.StringFixed(2),
		InterestRateByTypeOfAmount:         sim.Rates.TypeOfAmount.StringFixed(2),
		InterestRateByNumberOfInstallments: sim.Rates.NumberOfInstallments.StringFixed(2),
		Installments:                       sim.Quote.Installments,
		InstallmentValue:                   sim.Quote.InstallmentValue.StringFixed(2),
		ValueTypeID:                        sim.Refs.ValueTypeID,
		StoreID:                            sim.Refs.StoreID,
		CardFlagID:                         sim.Refs.CardFlagID,
		IP:                                 sim.IP,
		CreatedAt:                          sim.CreatedAt,
		UpdatedAt:                          sim.UpdatedAt,
	}
}

// NewSimulationDetailResponse includes whichever relations still exist.
func NewSimulationDetailResponse(d model.SimulationDetail) SimulationRecordResponse {
	resp := NewSimulationRecordResponse(d.Simulation)
	if d.Store != nil {
		st := NewStoreResponse(*d.Store)
		resp.Store = &st
	}
	if d.CardFlag != nil {
		cf := NewCardFlagResponse(*d.CardFlag)
		resp.CardFlag = &cf
	}
	if d.ValueType != nil {
		vt := NewValueTypeResponse(*d.ValueType)
		resp.ValueType = &vt
	}
	return resp
}

type CardFlagResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCardFlagResponse(cf model.CardFlag) CardFlagResponse {
	return CardFlagResponse{
		ID:        cf.ID,
		Name:      cf.Name,
		ImageURL:  cf.ImageURL,
		CreatedAt: cf.CreatedAt,
		UpdatedAt: cf.UpdatedAt,
	}
}

type InstallmentLimitResponse struct {
	ID           int64     `json:"id"`
	CardFlagID   int64     `json:"card_flag_id"`
	Installments int       `json:"installments"`
	MinValue     string    `json:"min_value"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewInstallmentLimitResponse(l model.InstallmentLimit) InstallmentLimitResponse {
	return InstallmentLimitResponse{
		ID:           l.ID,
		CardFlagID:   l.CardFlagID,
		Installments: l.Installments,
		MinValue:     l.MinValue.StringFixed(2),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

type ValueTypeResponse struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	InterestRate string    `json:"interest_rate"`
	Direction    string    `json:"direction"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewValueTypeResponse(vt model.ValueType) ValueTypeResponse {
	return ValueTypeResponse{
		ID:           vt.ID,
		Type:         vt.Type,
		InterestRate: vt.InterestRate.StringFixed(2),
		Direction:    vt.Direction.String(),
		CreatedAt:    vt.CreatedAt,
		UpdatedAt:    vt.UpdatedAt,
	}
}

type InterestConfigurationResponse struct {
	ID           int64     `json:"id"`
	CardFlagID   int64     `json:"card_flag_id"`
	StoreID      int64     `json:"store_id"`
	ValueTypeID  int64     `json:"value_type_id"`
	Installments int       `json:"installments"`
	InterestRate string    `json:"interest_rate"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewInterestConfigurationResponse(ic model.InterestConfiguration) InterestConfigurationResponse {
	return InterestConfigurationResponse{
		ID:           ic.ID,
		CardFlagID:   ic.CardFlagID,
		StoreID:      ic.StoreID,
		ValueTypeID:  ic.ValueTypeID,
		Installments: ic.Installments,
		InterestRate: ic.InterestRate.StringFixed(2),
		CreatedAt:    ic.CreatedAt,
		UpdatedAt:    ic.UpdatedAt,
	}
}

type StoreResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Address   *model.StoreAddress `json:"address"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewStoreResponse(st model.Store) StoreResponse {
	return StoreResponse{
		ID:        st.ID,
		Name:      st.Name,
		Address:   st.Address,
		CreatedAt: st.CreatedAt,
		UpdatedAt: st.UpdatedAt,
	}
}

// MapSlice converts a page of models into their response form.
func MapSlice[M, R any](items []M, fn func(M) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

func Success(status int, message string, data any) Envelope {
	return Envelope{Status: StatusSuccess, StatusCode: status, Message: message, Data: data}
}

func Failure(status int, message string, fields map[string][]string) Envelope {
	return Envelope{Status: StatusError, StatusCode: status, Message: message, Errors: fields}
}
