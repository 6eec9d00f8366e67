// Package salary turns a gross salary and a set of percentage deduction
// rates into a breakdown of withheld amounts and the resulting net salary.
package salary

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Stored documents keep amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// DeductionRates are percentages withheld from the gross salary.
type DeductionRates struct {
	Tax        decimal.Decimal `json:"tax"`
	Retirement decimal.Decimal `json:"retirement"`
	Insurance  decimal.Decimal `json:"insurance"`
}

// Calculation is the derived breakdown of a gross salary.
type Calculation struct {
	GrossSalary      decimal.Decimal `json:"grossSalary"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	NetSalary        decimal.Decimal `json:"netSalary"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	RetirementAmount decimal.Decimal `json:"retirementAmount"`
	InsuranceAmount  decimal.Decimal `json:"insuranceAmount"`
}

func DefaultRates() DeductionRates {
	return DeductionRates{
		Tax:        decimal.NewFromInt(10),
		Retirement: decimal.NewFromInt(10),
		Insurance:  decimal.NewFromInt(5),
	}
}

func RatesFromPercent(tax, retirement, insurance float64) DeductionRates {
	return DeductionRates{
		Tax:        decimal.NewFromFloat(tax),
		Retirement: decimal.NewFromFloat(retirement),
		Insurance:  decimal.NewFromFloat(insurance),
	}
}

// Calculate applies rates to gross. Rates are not bounds checked: negative
// and over-100 percentages pass through unchanged.
func Calculate(gross decimal.Decimal, rates DeductionRates) Calculation {
	tax := percentOf(gross, rates.Tax)
	retirement := percentOf(gross, rates.Retirement)
	insurance := percentOf(gross, rates.Insurance)

	total := tax.Add(retirement).Add(insurance)

	return Calculation{
		GrossSalary:      gross,
		TotalDeductions:  total,
		NetSalary:        gross.Sub(total),
		TaxAmount:        tax,
		RetirementAmount: retirement,
		InsuranceAmount:  insurance,
	}
}

func GrossFromDaily(dailyEarnings decimal.Decimal, workingDays int) decimal.Decimal {
	return dailyEarnings.Mul(decimal.NewFromInt(int64(workingDays)))
}

func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

// FormatCurrency renders amount as US dollars, e.g. $1,234.50.
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
