package employee

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/history"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/frahmantamala/salary-calculator/internal/user"
	"github.com/google/uuid"
)

// DefaultWorkingDays applies when neither the form nor configuration gives
// a count.
const DefaultWorkingDays = 22

type ServiceAPI interface {
	List(ctx context.Context, company *user.User) ([]Employee, error)
	Get(ctx context.Context, company *user.User, id string) (*Employee, error)
	Create(ctx context.Context, company *user.User, dto EmployeeDTO) (*Employee, error)
	Update(ctx context.Context, company *user.User, id string, dto EmployeeDTO) (*Employee, error)
	Delete(ctx context.Context, company *user.User, id string) error
	Calculate(ctx context.Context, company *user.User, id string, dto CalculateDTO) (*CalculationResult, error)
}

// HistoryRecorder appends calculations to the history log.
type HistoryRecorder interface {
	Record(ctx context.Context, userID string, calc salary.Calculation, rates salary.DeductionRates, subject *history.Subject) (*history.Entry, error)
}

// CalculationResult is an employee's salary breakdown.
type CalculationResult struct {
	Employee       Employee              `json:"employee"`
	Calculation    salary.Calculation    `json:"calculation"`
	DeductionRates salary.DeductionRates `json:"deductionRates"`
	History        *history.Entry        `json:"history,omitempty"`
}

type Service struct {
	repo        Repository
	calculator  *salary.Calculator
	history     HistoryRecorder
	workingDays int
	logger      *slog.Logger
	newID       func() string
	now         func() time.Time
}

func NewService(repo Repository, calculator *salary.Calculator, recorder HistoryRecorder, defaultWorkingDays int, logger *slog.Logger) *Service {
	if defaultWorkingDays <= 0 {
		defaultWorkingDays = DefaultWorkingDays
	}
	return &Service{
		repo:        repo,
		calculator:  calculator,
		history:     recorder,
		workingDays: defaultWorkingDays,
		logger:      logger,
		newID:       uuid.NewString,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func requireCompany(u *user.User) error {
	if u == nil {
		return internal.ErrNotAuthenticated
	}
	if !u.IsCompany() {
		return internal.ErrCompanyRequired
	}
	return nil
}

// List returns the company's employees in insertion order.
func (s *Service) List(ctx context.Context, company *user.User) ([]Employee, error) {
	if err := requireCompany(company); err != nil {
		return nil, err
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to load employees", "error", err, "company_id", company.ID)
		return nil, internal.NewInternalError("Failed to load employees", err)
	}

	owned := make([]Employee, 0, len(all))
	for _, e := range all {
		if e.CompanyID == company.ID {
			owned = append(owned, e)
		}
	}
	return owned, nil
}

func (s *Service) Get(ctx context.Context, company *user.User, id string) (*Employee, error) {
	employees, err := s.List(ctx, company)
	if err != nil {
		return nil, err
	}

	for i := range employees {
		if employees[i].ID == id {
			return &employees[i], nil
		}
	}
	return nil, internal.ErrEmployeeNotFound
}

func (s *Service) Create(ctx context.Context, company *user.User, dto EmployeeDTO) (*Employee, error) {
	if err := requireCompany(company); err != nil {
		return nil, err
	}

	dto = dto.Normalize(s.workingDays)
	if err := dto.Validate(); err != nil {
		s.logger.Debug("employee validation failed", "error", err, "company_id", company.ID)
		return nil, err
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to save employee", "error", err, "company_id", company.ID)
		return nil, internal.NewInternalError("Failed to save employee", err)
	}

	emp := Employee{
		ID:            s.newID(),
		Name:          dto.Name,
		Surname:       dto.Surname,
		GrossSalary:   dto.ResolveGross(),
		DailyEarnings: dto.DailyEarnings,
		WorkingDays:   dto.WorkingDays,
		CompanyID:     company.ID,
		CreatedAt:     s.now(),
	}

	all = append(all, emp)
	if err := s.repo.SaveAll(ctx, all); err != nil {
		s.logger.Error("failed to save employee", "error", err, "company_id", company.ID)
		return nil, internal.NewInternalError("Failed to save employee", err)
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "company_id", company.ID)
	return &emp, nil
}

// Update replaces the editable fields. The id, company and creation time
// are kept.
func (s *Service) Update(ctx context.Context, company *user.User, id string, dto EmployeeDTO) (*Employee, error) {
	if err := requireCompany(company); err != nil {
		return nil, err
	}

	dto = dto.Normalize(s.workingDays)
	if err := dto.Validate(); err != nil {
		s.logger.Debug("employee validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to save employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("Failed to save employee", err)
	}

	idx := s.indexOf(all, company, id)
	if idx < 0 {
		return nil, internal.ErrEmployeeNotFound
	}

	emp := &all[idx]
	emp.Name = dto.Name
	emp.Surname = dto.Surname
	emp.GrossSalary = dto.ResolveGross()
	emp.DailyEarnings = dto.DailyEarnings
	emp.WorkingDays = dto.WorkingDays

	if err := s.repo.SaveAll(ctx, all); err != nil {
		s.logger.Error("failed to save employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("Failed to save employee", err)
	}

	s.logger.Info("employee updated", "employee_id", id, "company_id", company.ID)
	updated := *emp
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, company *user.User, id string) error {
	if err := requireCompany(company); err != nil {
		return err
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("Failed to delete employee", err)
	}

	idx := s.indexOf(all, company, id)
	if idx < 0 {
		return internal.ErrEmployeeNotFound
	}

	all = slices.Delete(all, idx, idx+1)
	if err := s.repo.SaveAll(ctx, all); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("Failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id, "company_id", company.ID)
	return nil
}

// Calculate breaks down the employee's stored gross salary with the given
// rates, or the calculator defaults, and records it when asked.
func (s *Service) Calculate(ctx context.Context, company *user.User, id string, dto CalculateDTO) (*CalculationResult, error) {
	emp, err := s.Get(ctx, company, id)
	if err != nil {
		return nil, err
	}

	rates := s.calculator.DefaultRates()
	if dto.Rates != nil {
		rates = *dto.Rates
	}

	result := &CalculationResult{
		Employee:       *emp,
		Calculation:    salary.Calculate(emp.GrossSalary, rates),
		DeductionRates: rates,
	}

	if dto.Save {
		entry, err := s.history.Record(ctx, company.ID, result.Calculation, rates, &history.Subject{
			ID:   emp.ID,
			Name: emp.FullName(),
		})
		if err != nil {
			return nil, err
		}
		result.History = entry
	}

	return result, nil
}

func (s *Service) indexOf(all []Employee, company *user.User, id string) int {
	return slices.IndexFunc(all, func(e Employee) bool {
		return e.ID == id && e.CompanyID == company.ID
	})
}
