// Package theme persists the light/dark appearance preference.
package theme

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/core/common/validation"
	"github.com/frahmantamala/salary-calculator/internal/storage"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Parse accepts a theme name in any case.
func Parse(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))

	v := validation.NewValidator()
	v.Field("theme", string(t)).OneOf(internal.ErrCodeInvalidTheme, string(Light), string(Dark))
	if appErr := v.Validate(); appErr != nil {
		return "", appErr
	}
	return t, nil
}

type ServiceAPI interface {
	Get(ctx context.Context) (Theme, error)
	Set(ctx context.Context, t Theme) (Theme, error)
	Toggle(ctx context.Context) (Theme, error)
}

type Service struct {
	kv     storage.KV
	logger *slog.Logger
}

func NewService(kv storage.KV, logger *slog.Logger) *Service {
	return &Service{kv: kv, logger: logger}
}

// Get returns the stored theme. Both a JSON string and a bare word are
// accepted. A missing or unreadable value reads as light.
func (s *Service) Get(ctx context.Context) (Theme, error) {
	raw, found, err := s.kv.Get(ctx, storage.KeyTheme)
	if err != nil {
		s.logger.Warn("failed to load theme preference", "error", err)
		return Light, nil
	}
	if !found {
		return Light, nil
	}

	stored := raw
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		stored = raw
	}
	if t, err := Parse(stored); err == nil {
		return t, nil
	}
	return Light, nil
}

func (s *Service) Set(ctx context.Context, t Theme) (Theme, error) {
	t, err := Parse(string(t))
	if err != nil {
		return "", err
	}

	if err := storage.SaveValue(ctx, s.kv, storage.KeyTheme, t); err != nil {
		s.logger.Error("failed to save theme preference", "error", err)
		return "", internal.NewInternalError("Failed to save theme", err)
	}

	s.logger.Debug("theme updated", "theme", t)
	return t, nil
}

func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	return s.Set(ctx, current.Opposite())
}
