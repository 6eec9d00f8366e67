package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Employee belongs to the company account whose id is CompanyID. The
// reference is not checked against the users collection.
type Employee struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Surname       string          `json:"surname"`
	GrossSalary   decimal.Decimal `json:"grossSalary"`
	DailyEarnings decimal.Decimal `json:"dailyEarnings"`
	WorkingDays   int             `json:"workingDays"`
	CompanyID     string          `json:"companyId"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (e *Employee) FullName() string {
	return e.Name + " " + e.Surname
}

// Repository reads and replaces the employees collection.
type Repository interface {
	GetAll(ctx context.Context) ([]Employee, error)
	SaveAll(ctx context.Context, employees []Employee) error
}
