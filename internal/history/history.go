package history

import (
	"context"
	"time"

	"github.com/frahmantamala/salary-calculator/internal/salary"
)

// DefaultTitle labels entries that were not made for an employee.
const DefaultTitle = "Salary Calculation"

// Entry is one saved calculation. Entries are never edited, only appended
// or deleted.
type Entry struct {
	ID             string                `json:"id"`
	UserID         string                `json:"userId"`
	EmployeeID     *string               `json:"employeeId,omitempty"`
	EmployeeName   *string               `json:"employeeName,omitempty"`
	Calculation    salary.Calculation    `json:"calculation"`
	DeductionRates salary.DeductionRates `json:"deductionRates"`
	CreatedAt      time.Time             `json:"createdAt"`
}

func (e *Entry) Title() string {
	if e.EmployeeName != nil && *e.EmployeeName != "" {
		return *e.EmployeeName
	}
	return DefaultTitle
}

// Subject names the employee a calculation was made for.
type Subject struct {
	ID   string
	Name string
}

// Repository reads and replaces the calculationHistory collection.
type Repository interface {
	GetAll(ctx context.Context) ([]Entry, error)
	SaveAll(ctx context.Context, entries []Entry) error
}
