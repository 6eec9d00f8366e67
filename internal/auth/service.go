package auth

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/user"
	"github.com/google/uuid"
)

// Service owns the session: the single signed-in user of this device.
type Service struct {
	users    user.Repository
	sessions user.SessionRepository
	logger   *slog.Logger
	newID    func() string

	mu      sync.RWMutex
	current *user.User
}

func NewService(users user.Repository, sessions user.SessionRepository, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Restore loads the persisted session at startup. A failure leaves the
// service signed out.
func (s *Service) Restore(ctx context.Context) (*user.User, error) {
	u, err := s.sessions.GetCurrent(ctx)
	if err != nil {
		s.logger.Error("failed to load user", "error", err)
		return nil, internal.NewInternalError("Failed to load user", err)
	}

	s.setCurrent(u)
	if u != nil {
		s.logger.Debug("session restored", "user_id", u.ID, "role", u.Role)
	}
	return u, nil
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*user.User, error) {
	dto = dto.Normalize()
	if err := dto.Validate(); err != nil {
		s.logger.Debug("registration validation failed", "error", err)
		return nil, err
	}

	accounts, err := s.users.GetAll(ctx)
	if err != nil {
		s.logger.Error("registration failed", "error", err)
		return nil, internal.NewInternalError("Registration failed", err)
	}

	if user.FindByUsername(accounts, dto.Username) != nil {
		s.logger.Info("registration rejected: username taken", "username", dto.Username)
		return nil, internal.ErrUsernameTaken
	}

	account := user.Account{
		ID:       s.newID(),
		Username: dto.Username,
		Password: dto.Password,
		Name:     dto.Name,
		Surname:  dto.Surname,
		Role:     dto.Role,
	}
	accounts = append(accounts, account)

	if err := s.users.SaveAll(ctx, accounts); err != nil {
		s.logger.Error("registration failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("Registration failed", err)
	}

	signedIn := account.ToUser()
	if err := s.sessions.SetCurrent(ctx, signedIn); err != nil {
		s.logger.Error("registration failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("Registration failed", err)
	}
	s.setCurrent(&signedIn)

	s.logger.Info("user registered", "user_id", account.ID, "role", account.Role)
	return &signedIn, nil
}

// Login signs in the account whose username and password match exactly.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*user.User, error) {
	dto.Username = strings.TrimSpace(dto.Username)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	accounts, err := s.users.GetAll(ctx)
	if err != nil {
		s.logger.Error("login failed", "error", err)
		return nil, internal.NewInternalError("Login failed", err)
	}

	account := user.FindByUsername(accounts, dto.Username)
	if account == nil || account.Password != dto.Password {
		s.logger.Info("login rejected", "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	signedIn := account.ToUser()
	if err := s.sessions.SetCurrent(ctx, signedIn); err != nil {
		s.logger.Error("login failed", "error", err, "user_id", account.ID)
		return nil, internal.NewInternalError("Login failed", err)
	}
	s.setCurrent(&signedIn)

	s.logger.Info("user signed in", "user_id", account.ID)
	return &signedIn, nil
}

// Logout forgets the session. If the store cannot be updated the user
// stays signed in.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.ClearCurrent(ctx); err != nil {
		s.logger.Error("logout failed", "error", err)
		return internal.NewInternalError("Logout failed", err)
	}

	s.setCurrent(nil)
	s.logger.Info("user signed out")
	return nil
}

// Current returns the signed-in user.
func (s *Service) Current() (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, internal.ErrNotAuthenticated
	}
	u := *s.current
	return &u, nil
}

func (s *Service) setCurrent(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u == nil {
		s.current = nil
		return
	}
	copied := *u
	s.current = &copied
}
