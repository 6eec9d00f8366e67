package salary

import (
	"net/http"

	"github.com/frahmantamala/salary-calculator/internal/transport"
)

// CalculationResponse is a breakdown with the rates used and display
// strings for each amount.
type CalculationResponse struct {
	Calculation    Calculation       `json:"calculation"`
	DeductionRates DeductionRates    `json:"deductionRates"`
	Formatted      map[string]string `json:"formatted"`
}

func NewCalculationResponse(c Calculation, rates DeductionRates) CalculationResponse {
	return CalculationResponse{
		Calculation:    c,
		DeductionRates: rates,
		Formatted: map[string]string{
			"grossSalary":      FormatCurrency(c.GrossSalary),
			"taxAmount":        FormatCurrency(c.TaxAmount),
			"retirementAmount": FormatCurrency(c.RetirementAmount),
			"insuranceAmount":  FormatCurrency(c.InsuranceAmount),
			"totalDeductions":  FormatCurrency(c.TotalDeductions),
			"netSalary":        FormatCurrency(c.NetSalary),
		},
	}
}

type Handler struct {
	*transport.BaseHandler
	Calculator *Calculator
}

func NewHandler(baseHandler *transport.BaseHandler, calculator *Calculator) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Calculator:  calculator,
	}
}

// Calculate handles POST /calculations. Nothing is stored.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	calc, rates, err := h.Calculator.Evaluate(req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewCalculationResponse(calc, rates))
}

// DefaultRates handles GET /calculations/defaults.
func (h *Handler) DefaultRates(w http.ResponseWriter, _ *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Calculator.DefaultRates())
}
