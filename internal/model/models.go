package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CardFlag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InstallmentLimit gates a card flag: at most Installments installments and
// at least MinValue per transaction. One row per card flag.
type InstallmentLimit struct {
	ID           int64           `json:"id"`
	CardFlagID   int64           `json:"card_flag_id"`
	Installments int             `json:"installments"`
	MinValue     decimal.Decimal `json:"min_value"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ValueType struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Direction    Direction       `json:"direction"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type InterestConfiguration struct {
	ID           int64           `json:"id"`
	CardFlagID   int64           `json:"card_flag_id"`
	StoreID      int64           `json:"store_id"`
	ValueTypeID  int64           `json:"value_type_id"`
	Installments int             `json:"installments"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ConfigurationKey identifies exactly one InterestConfiguration.
type ConfigurationKey struct {
	CardFlagID   int64
	StoreID      int64
	ValueTypeID  int64
	Installments int
}

type StoreAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type Store struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Address   *StoreAddress `json:"address"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// City returns the address city, or "" for a store without an address.
func (s *Store) City() string {
	if s == nil || s.Address == nil {
		return ""
	}
	return s.Address.City
}

// Quote holds the computed monetary outcome of a simulation.
type Quote struct {
	Amount             decimal.Decimal
	AmountWithInterest decimal.Decimal
	Installments       int
	InstallmentValue   decimal.Decimal
}

// RateSnapshot holds the rates in force when a simulation was recorded. It is
// history: never re-derive it from the live value type or configuration.
type RateSnapshot struct {
	TypeOfAmount         decimal.Decimal
	NumberOfInstallments decimal.Decimal
}

// SimulationRefs point at the live configuration rows. They are nulled when
// the referenced row is deleted.
type SimulationRefs struct {
	ValueTypeID *int64
	StoreID     *int64
	CardFlagID  *int64
}

type Simulation struct {
	ID        int64
	UUID      string
	Quote     Quote
	Rates     RateSnapshot
	Refs      SimulationRefs
	IP        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SimulationDetail is a simulation with its references loaded. Any relation
// may be nil when the referenced row has been deleted.
type SimulationDetail struct {
	Simulation
	Store     *Store
	CardFlag  *CardFlag
	ValueType *ValueType
}
