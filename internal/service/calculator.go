package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/authlend-api/internal/model"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Calculate applies the value-type rate and then the configuration rate to
// amount, in the direction of the value type.
//
// The requested amount is recorded rounded half away from zero. Everything
// else rounds in the lender's favour: totals are floored to cents, ASC
// installments are ceiled, DESC installments are floored and computed from
// the requested amount rather than the discounted total. Zero installments
// yield a zero installment value.
func Calculate(amount decimal.Decimal, installments int, direction model.Direction, typeRate, configRate decimal.Decimal) (model.Quote, error) {
	if installments < 0 {
		return model.Quote{}, fmt.Errorf("installments must not be negative, got %d", installments)
	}

	var gross, installmentValue decimal.Decimal

	switch direction {
	case model.DirectionAsc:
		gross = amount.Mul(one.Add(typeRate.Div(hundred))).Mul(one.Add(configRate.Div(hundred)))
		switch {
		case installments == 1:
			installmentValue = gross.RoundFloor(2)
		case installments > 1:
			installmentValue = divCents(gross, installments, true)
		default:
			installmentValue = decimal.Zero
		}
	case model.DirectionDesc:
		gross = amount.Mul(one.Sub(typeRate.Div(hundred))).Mul(one.Sub(configRate.Div(hundred)))
		switch {
		case installments == 1:
			installmentValue = amount.RoundFloor(2)
		case installments > 1:
			installmentValue = divCents(amount, installments, false)
		default:
			installmentValue = decimal.Zero
		}
	default:
		return model.Quote{}, fmt.Errorf("unsupported direction %q", string(direction))
	}

	return model.Quote{
		Amount:             amount.Round(2),
		AmountWithInterest: gross.RoundFloor(2),
		Installments:       installments,
		InstallmentValue:   installmentValue,
	}, nil
}

// divCents divides x by n and rounds to cents, up (toward +inf) or down
// (toward -inf). The quotient is exact: no intermediate precision is lost.
func divCents(x decimal.Decimal, n int, up bool) decimal.Decimal {
	q, r := x.Shift(2).QuoRem(decimal.NewFromInt(int64(n)), 0)
	if up && r.IsPositive() {
		q = q.Add(one)
	}
	if !up && r.IsNegative() {
		q = q.Sub(one)
	}
	return q.Shift(-2)
}
