package kvstore

import (
	"context"

	"github.com/frahmantamala/salary-calculator/internal/history"
	"github.com/frahmantamala/salary-calculator/internal/storage"
)

type HistoryRepository struct {
	kv storage.KV
}

func NewHistoryRepository(kv storage.KV) *HistoryRepository {
	return &HistoryRepository{kv: kv}
}

var _ history.Repository = (*HistoryRepository)(nil)

func (r *HistoryRepository) GetAll(ctx context.Context) ([]history.Entry, error) {
	return storage.LoadAll[history.Entry](ctx, r.kv, storage.KeyCalculationHistory)
}

func (r *HistoryRepository) SaveAll(ctx context.Context, entries []history.Entry) error {
	return storage.SaveAll(ctx, r.kv, storage.KeyCalculationHistory, entries)
}
