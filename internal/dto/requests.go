package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Numeric inputs arrive as JSON numbers and become decimals once, here.
func toDecimal(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}

func optionalDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// Upper bounds follow the NUMERIC(12,2) money and NUMERIC(5,2) rate columns.
type SimulationRequest struct {
	Amount       *float64 `json:"amount" binding:"required,gte=1,lte=9999999999.99"`
	Installments *int     `json:"installments" binding:"required,gte=0"`
	ValueTypeID  *int64   `json:"value_type_id" binding:"required,gte=1"`
	StoreID      *int64   `json:"store_id" binding:"required,gte=1"`
	CardFlagID   *int64   `json:"card_flag_id" binding:"required,gte=1"`
}

func (r *SimulationRequest) AmountDecimal() decimal.Decimal {
	return toDecimal(r.Amount)
}

type SimulationPatchRequest struct {
	Amount                             *float64 `json:"amount" binding:"omitempty,gte=1,lte=9999999999.99"`
	AmountWithInterest                 *float64 `json:"amount_with_interest" binding:"omitempty,gte=0,lte=9999999999.99"`
	InterestRateByTypeOfAmount         *float64 `json:"interest_rate_by_type_of_amount" binding:"omitempty,gte=0,lte=999.99"`
	InterestRateByNumberOfInstallments *float64 `json:"interest_rate_by_number_of_installments" binding:"omitempty,gte=0,lte=999.99"`
	Installments                       *int     `json:"installments" binding:"omitempty,gte=1"`
	InstallmentValue                   *float64 `json:"installment_value" binding:"omitempty,gte=0,lte=9999999999.99"`
	IP                                 *string  `json:"ip" binding:"omitempty,ip"`
}

func (r *SimulationPatchRequest) Decimals() (amount, withInterest, typeRate, installmentRate, installmentValue *decimal.Decimal) {
	return optionalDecimal(r.Amount),
		optionalDecimal(r.AmountWithInterest),
		optionalDecimal(r.InterestRateByTypeOfAmount),
		optionalDecimal(r.InterestRateByNumberOfInstallments),
		optionalDecimal(r.InstallmentValue)
}

type SimulationListQuery struct {
	Installments     *int     `form:"installments" binding:"omitempty,gte=1"`
	InstallmentValue *float64 `form:"installment_value" binding:"omitempty,gte=0,lte=9999999999.99"`
	StoreID          *int64   `form:"store_id" binding:"omitempty,gte=1"`
	CardFlagID       *int64   `form:"card_flag_id" binding:"omitempty,gte=1"`
	ValueTypeID      *int64   `form:"value_type_id" binding:"omitempty,gte=1"`
	MinAmount        *float64 `form:"min_amount" binding:"omitempty,gte=0,lte=9999999999.99"`
	MaxAmount        *float64 `form:"max_amount" binding:"omitempty,gte=0,lte=9999999999.99"`
	CreatedFrom      string   `form:"created_from" binding:"omitempty,datetime=2006-01-02"`
	CreatedTo        string   `form:"created_to" binding:"omitempty,datetime=2006-01-02"`
	Page             *int     `form:"page" binding:"omitempty,gte=1"`
	PerPage          *int     `form:"per_page" binding:"omitempty,gte=1,lte=100"`
}

// Dates parses the created_from/created_to bounds. Both are already
// validated as YYYY-MM-DD.
func (q *SimulationListQuery) Dates() (from, to *time.Time) {
	parse := func(s string) *time.Time {
		if s == "" {
			return nil
		}
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil
		}
		return &t
	}
	return parse(q.CreatedFrom), parse(q.CreatedTo)
}

func (q *SimulationListQuery) Amounts() (installmentValue, minAmount, maxAmount *decimal.Decimal) {
	return optionalDecimal(q.InstallmentValue), optionalDecimal(q.MinAmount), optionalDecimal(q.MaxAmount)
}

type CardFlagRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=2048"`
}

type InstallmentLimitRequest struct {
	CardFlagID   *int64   `json:"card_flag_id" binding:"required,gte=1"`
	Installments *int     `json:"installments" binding:"required,gte=1"`
	MinValue     *float64 `json:"min_value" binding:"required,gte=0,lte=9999999999.99"`
}

func (r *InstallmentLimitRequest) MinValueDecimal() decimal.Decimal {
	return toDecimal(r.MinValue).Round(2)
}

type InstallmentLimitQuery struct {
	CardFlagID   *int64   `form:"card_flag_id" binding:"omitempty,gte=1"`
	Installments *int     `form:"installments" binding:"omitempty,gte=1"`
	MinValue     *float64 `form:"min_value" binding:"omitempty,gte=0,lte=9999999999.99"`
}

func (q *InstallmentLimitQuery) MinValueDecimal() *decimal.Decimal {
	return optionalDecimal(q.MinValue)
}

type ValueTypeRequest struct {
	Type         string   `json:"type" binding:"required,max=255"`
	InterestRate *float64 `json:"interest_rate" binding:"required,gte=0,lte=999.99"`
	Direction    string   `json:"direction" binding:"required,oneof=ASC DESC asc desc"`
}

func (r *ValueTypeRequest) InterestRateDecimal() decimal.Decimal {
	return toDecimal(r.InterestRate)
}

type InterestConfigurationRequest struct {
	CardFlagID   *int64   `json:"card_flag_id" binding:"required,gte=1"`
	StoreID      *int64   `json:"store_id" binding:"required,gte=1"`
	ValueTypeID  *int64   `json:"value_type_id" binding:"required,gte=1"`
	Installments *int     `json:"installments" binding:"required,gte=0"`
	InterestRate *float64 `json:"interest_rate" binding:"required,gte=0,lte=999.99"`
}

func (r *InterestConfigurationRequest) InterestRateDecimal() decimal.Decimal {
	return toDecimal(r.InterestRate)
}

type InterestConfigurationQuery struct {
	CardFlagID   *int64 `form:"card_flag_id" binding:"omitempty,gte=1"`
	StoreID      *int64 `form:"store_id" binding:"omitempty,gte=1"`
	ValueTypeID  *int64 `form:"value_type_id" binding:"omitempty,gte=1"`
	Installments *int   `form:"installments" binding:"omitempty,gte=0"`
}

type StoreAddressRequest struct {
	Street  string `json:"street" binding:"required,max=255"`
	City    string `json:"city" binding:"required,max=255"`
	State   string `json:"state" binding:"required,max=255"`
	ZipCode string `json:"zip_code" binding:"required,max=20"`
}

type StoreRequest struct {
	Name    string              `json:"name" binding:"required,max=255"`
	Address StoreAddressRequest `json:"address"`
}
