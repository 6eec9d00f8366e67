package salary

import (
	"log/slog"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type InputType string

const (
	InputGross InputType = "gross"
	InputDaily InputType = "daily"
)

// CalculateRequest mirrors the calculator form: either a gross salary or
// daily earnings over a number of working days, plus optional rates.
type CalculateRequest struct {
	InputType     InputType       `json:"inputType"`
	GrossSalary   decimal.Decimal `json:"grossSalary"`
	DailyEarnings decimal.Decimal `json:"dailyEarnings"`
	WorkingDays   int             `json:"workingDays"`
	Rates         *DeductionRates `json:"deductionRates,omitempty"`
}

func (r CalculateRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("inputType", string(r.inputType())).
		OneOf(internal.ErrCodeInvalidInputType, string(InputGross), string(InputDaily))
	v.Field("workingDays", r.WorkingDays).
		NotNegative(internal.ErrCodeValidationFailed)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ResolveGross returns the gross salary the request describes. A result
// that is not positive is rejected.
func (r CalculateRequest) ResolveGross() (decimal.Decimal, error) {
	if err := r.Validate(); err != nil {
		return decimal.Zero, err
	}

	gross := r.GrossSalary
	if r.inputType() == InputDaily {
		gross = GrossFromDaily(r.DailyEarnings, r.WorkingDays)
	}

	if !gross.IsPositive() {
		return decimal.Zero, internal.ErrInvalidSalary
	}
	return gross, nil
}

func (r CalculateRequest) inputType() InputType {
	if r.InputType == "" {
		return InputGross
	}
	return r.InputType
}

// Calculator evaluates requests against configured default rates.
type Calculator struct {
	defaults DeductionRates
	logger   *slog.Logger
}

func NewCalculator(defaults DeductionRates, logger *slog.Logger) *Calculator {
	return &Calculator{
		defaults: defaults,
		logger:   logger,
	}
}

func (c *Calculator) DefaultRates() DeductionRates {
	return c.defaults
}

// Evaluate resolves the request and returns the breakdown together with
// the rates that produced it.
func (c *Calculator) Evaluate(req CalculateRequest) (Calculation, DeductionRates, error) {
	gross, err := req.ResolveGross()
	if err != nil {
		c.logger.Debug("calculation rejected", "input_type", req.inputType(), "error", err)
		return Calculation{}, DeductionRates{}, err
	}

	rates := c.defaults
	if req.Rates != nil {
		rates = *req.Rates
	}

	result := Calculate(gross, rates)
	c.logger.Debug("salary calculated",
		"gross", result.GrossSalary.String(),
		"net", result.NetSalary.String())

	return result, rates, nil
}
