package employee

import (
	"strings"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/core/common/validation"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/shopspring/decimal"
)

// EmployeeDTO is the add/edit employee form.
type EmployeeDTO struct {
	Name          string          `json:"name"`
	Surname       string          `json:"surname"`
	GrossSalary   decimal.Decimal `json:"grossSalary"`
	DailyEarnings decimal.Decimal `json:"dailyEarnings"`
	WorkingDays   int             `json:"workingDays"`
}

// Normalize trims names and replaces a missing working-day count with
// defaultDays.
func (d EmployeeDTO) Normalize(defaultDays int) EmployeeDTO {
	d.Name = strings.TrimSpace(d.Name)
	d.Surname = strings.TrimSpace(d.Surname)
	if d.WorkingDays <= 0 {
		d.WorkingDays = defaultDays
	}
	return d
}

func (d EmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required()
	v.Field("surname", d.Surname).Required()
	v.Field("grossSalary", d.GrossSalary).NotNegative(internal.ErrCodeInvalidSalary)
	v.Field("dailyEarnings", d.DailyEarnings).NotNegative(internal.ErrCodeInvalidSalary)

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}

	if !d.GrossSalary.IsPositive() && !d.DailyEarnings.IsPositive() {
		return internal.NewValidationError("Please enter salary information", internal.ErrCodeInvalidSalary)
	}
	return nil
}

// ResolveGross is the stored gross: the given gross when positive,
// otherwise daily earnings times working days.
func (d EmployeeDTO) ResolveGross() decimal.Decimal {
	if d.GrossSalary.IsPositive() {
		return d.GrossSalary
	}
	return salary.GrossFromDaily(d.DailyEarnings, d.WorkingDays)
}

// CalculateDTO asks for an employee's breakdown, optionally with custom
// rates, and whether to record it in history.
type CalculateDTO struct {
	Rates *salary.DeductionRates `json:"deductionRates,omitempty"`
	Save  bool                   `json:"save"`
}
