package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Item is the priced part of an invoice line.
type Item struct {
	Rate        decimal.Decimal
	WorkingDays decimal.Decimal
	Persons     int
	Quantity    decimal.Decimal
}

// Rates are the percentages applied on top of the line subtotal.
type Rates struct {
	ManagementPct decimal.Decimal
	CGSTPct       decimal.Decimal
	SGSTPct       decimal.Decimal
}

// Totals holds every derived figure of an invoice. Amounts follows the
// order of the items passed to Compute.
type Totals struct {
	Amounts          []decimal.Decimal
	Subtotal         decimal.Decimal
	ManagementAmount decimal.Decimal
	MaterialCharges  decimal.Decimal
	TaxBase          decimal.Decimal
	CGSTAmount       decimal.Decimal
	SGSTAmount       decimal.Decimal
	Total            decimal.Decimal
}

// ItemAmount prices one line. A non-zero day count bills per day,
// otherwise the line bills per quantity.
func ItemAmount(it Item) decimal.Decimal {
	persons := decimal.NewFromInt(int64(it.Persons))
	if it.WorkingDays.IsPositive() {
		return it.Rate.Mul(it.WorkingDays).Mul(persons)
	}
	return it.Rate.Mul(it.Quantity).Mul(persons)
}

// Compute derives subtotal, management charge, taxes and total. It keeps
// full decimal precision; rounding is left to presentation.
func Compute(items []Item, materialCharges decimal.Decimal, rates Rates) (Totals, error) {
	if err := validate(items, materialCharges, rates); err != nil {
		return Totals{}, err
	}

	t := Totals{
		Amounts:         make([]decimal.Decimal, len(items)),
		Subtotal:        decimal.Zero,
		MaterialCharges: materialCharges,
	}
	for i, it := range items {
		amount := ItemAmount(it)
		t.Amounts[i] = amount
		t.Subtotal = t.Subtotal.Add(amount)
	}

	t.ManagementAmount = percentOf(t.Subtotal, rates.ManagementPct)
	t.TaxBase = t.Subtotal.Add(t.ManagementAmount).Add(materialCharges)
	t.CGSTAmount = percentOf(t.TaxBase, rates.CGSTPct)
	t.SGSTAmount = percentOf(t.TaxBase, rates.SGSTPct)
	t.Total = t.TaxBase.Add(t.CGSTAmount).Add(t.SGSTAmount)

	return t, nil
}

func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

func validate(items []Item, materialCharges decimal.Decimal, rates Rates) error {
	if rates.ManagementPct.IsNegative() {
		return NewValidationError("managementCharges.percentage", rates.ManagementPct, "percentage must not be negative")
	}
	if rates.CGSTPct.IsNegative() {
		return NewValidationError("cgst.percentage", rates.CGSTPct, "percentage must not be negative")
	}
	if rates.SGSTPct.IsNegative() {
		return NewValidationError("sgst.percentage", rates.SGSTPct, "percentage must not be negative")
	}
	for _, pct := range []struct {
		field string
		value decimal.Decimal
	}{
		{"managementCharges.percentage", rates.ManagementPct},
		{"cgst.percentage", rates.CGSTPct},
		{"sgst.percentage", rates.SGSTPct},
	} {
		if pct.value.GreaterThan(hundred) {
			return NewValidationError(pct.field, pct.value, "percentage must not exceed 100")
		}
	}
	if materialCharges.IsNegative() {
		return NewValidationError("materialCharges", materialCharges, "must not be negative")
	}

	for i, it := range items {
		if !it.Rate.IsPositive() {
			return NewValidationError(fmt.Sprintf("items[%d].rate", i), it.Rate, "rate must be positive")
		}
		if it.Persons < 1 {
			return NewValidationError(fmt.Sprintf("items[%d].persons", i), it.Persons, "at least one person is required")
		}
		if it.WorkingDays.IsNegative() {
			return NewValidationError(fmt.Sprintf("items[%d].workingDays", i), it.WorkingDays, "must not be negative")
		}
		if it.Quantity.IsNegative() {
			return NewValidationError(fmt.Sprintf("items[%d].quantity", i), it.Quantity, "must not be negative")
		}
	}
	return nil
}

// Display formats an amount the way invoices print it.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
