package history

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	Record(ctx context.Context, userID string, calc salary.Calculation, rates salary.DeductionRates, subject *Subject) (*Entry, error)
	SaveCalculation(ctx context.Context, userID string, req salary.CalculateRequest) (*Entry, error)
	List(ctx context.Context, userID string) ([]Entry, error)
	Delete(ctx context.Context, userID, id string) error
	Export(ctx context.Context, userID string, w io.Writer) error
}

type Service struct {
	repo       Repository
	calculator *salary.Calculator
	logger     *slog.Logger
	newID      func() string
	now        func() time.Time
}

func NewService(repo Repository, calculator *salary.Calculator, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		calculator: calculator,
		logger:     logger,
		newID:      uuid.NewString,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Record appends a calculation to the log.
func (s *Service) Record(ctx context.Context, userID string, calc salary.Calculation, rates salary.DeductionRates, subject *Subject) (*Entry, error) {
	if userID == "" {
		return nil, internal.ErrNotAuthenticated
	}

	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to save calculation", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to save calculation", err)
	}

	entry := Entry{
		ID:             s.newID(),
		UserID:         userID,
		Calculation:    calc,
		DeductionRates: rates,
		CreatedAt:      s.now(),
	}
	if subject != nil {
		id, name := subject.ID, subject.Name
		entry.EmployeeID = &id
		entry.EmployeeName = &name
	}

	entries = append(entries, entry)
	if err := s.repo.SaveAll(ctx, entries); err != nil {
		s.logger.Error("failed to save calculation", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to save calculation", err)
	}

	s.logger.Info("calculation saved", "history_id", entry.ID, "user_id", userID)
	return &entry, nil
}

// SaveCalculation evaluates a calculator request and records the result.
func (s *Service) SaveCalculation(ctx context.Context, userID string, req salary.CalculateRequest) (*Entry, error) {
	calc, rates, err := s.calculator.Evaluate(req)
	if err != nil {
		return nil, err
	}
	return s.Record(ctx, userID, calc, rates, nil)
}

// List returns the user's entries, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to load history", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to load history", err)
	}

	// walk backwards so later appends win ties on createdAt
	owned := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].UserID == userID {
			owned = append(owned, entries[i])
		}
	}
	slices.SortStableFunc(owned, func(a, b Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return owned, nil
}

// Delete removes one of the user's entries.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to delete calculation", "error", err, "history_id", id)
		return internal.NewInternalError("Failed to delete calculation", err)
	}

	idx := slices.IndexFunc(entries, func(e Entry) bool {
		return e.ID == id && e.UserID == userID
	})
	if idx < 0 {
		return internal.ErrHistoryNotFound
	}

	entries = slices.Delete(entries, idx, idx+1)
	if err := s.repo.SaveAll(ctx, entries); err != nil {
		s.logger.Error("failed to delete calculation", "error", err, "history_id", id)
		return internal.NewInternalError("Failed to delete calculation", err)
	}

	s.logger.Info("calculation deleted", "history_id", id, "user_id", userID)
	return nil
}

// Export writes the user's history as an xlsx workbook.
func (s *Service) Export(ctx context.Context, userID string, w io.Writer) error {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	if err := writeWorkbook(w, entries); err != nil {
		s.logger.Error("failed to export history", "error", err, "user_id", userID)
		return internal.NewInternalError("Failed to export history", err)
	}

	s.logger.Info("history exported", "user_id", userID, "entries", len(entries))
	return nil
}
