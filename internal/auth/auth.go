package auth

import (
	"context"

	"github.com/frahmantamala/salary-calculator/internal/user"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// ServiceAPI is the session surface the HTTP layer depends on.
type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*user.User, error)
	Login(ctx context.Context, dto LoginDTO) (*user.User, error)
	Logout(ctx context.Context) error
	Current() (*user.User, error)
}

func UserFromContext(ctx context.Context) (*user.User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(ContextUserKey).(*user.User)
	return u, ok && u != nil
}

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
