package kvstore

import (
	"context"

	"github.com/frahmantamala/salary-calculator/internal/storage"
	"github.com/frahmantamala/salary-calculator/internal/user"
)

type UserRepository struct {
	kv storage.KV
}

func NewUserRepository(kv storage.KV) *UserRepository {
	return &UserRepository{kv: kv}
}

var (
	_ user.Repository        = (*UserRepository)(nil)
	_ user.SessionRepository = (*UserRepository)(nil)
)

func (r *UserRepository) GetAll(ctx context.Context) ([]user.Account, error) {
	return storage.LoadAll[user.Account](ctx, r.kv, storage.KeyUsers)
}

func (r *UserRepository) SaveAll(ctx context.Context, accounts []user.Account) error {
	return storage.SaveAll(ctx, r.kv, storage.KeyUsers, accounts)
}

func (r *UserRepository) GetCurrent(ctx context.Context) (*user.User, error) {
	u, found, err := storage.LoadValue[user.User](ctx, r.kv, storage.KeyCurrentUser)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) SetCurrent(ctx context.Context, u user.User) error {
	return storage.SaveValue(ctx, r.kv, storage.KeyCurrentUser, u)
}

func (r *UserRepository) ClearCurrent(ctx context.Context) error {
	return r.kv.Remove(ctx, storage.KeyCurrentUser)
}
