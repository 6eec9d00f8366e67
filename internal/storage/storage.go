// Package storage treats a flat key-value store as a small document
// database. Each collection lives under one key as a JSON array and is
// always read and written whole: there is no partial update, no
// transaction and no concurrency control, so the last writer wins.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Persisted keys.
const (
	KeyCurrentUser        = "currentUser"
	KeyUsers              = "users"
	KeyEmployees          = "employees"
	KeyCalculationHistory = "calculationHistory"
	KeyTheme              = "theme"
)

// KV is the device-local key-value store.
type KV interface {
	// Get reports found=false, with no error, when key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// LoadAll returns every record of a collection. A missing key is an empty
// collection.
func LoadAll[T any](ctx context.Context, kv KV, collection string) ([]T, error) {
	raw, found, err := kv.Get(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}

	records := []T{}
	if !found || raw == "" {
		return records, nil
	}

	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// SaveAll replaces the whole collection with records.
func SaveAll[T any](ctx context.Context, kv KV, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	if err := kv.Set(ctx, collection, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}

// LoadValue reads a single JSON document stored under key.
func LoadValue[T any](ctx context.Context, kv KV, key string) (T, bool, error) {
	var value T

	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return value, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found || raw == "" {
		return value, false, nil
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return value, true, nil
}

func SaveValue[T any](ctx context.Context, kv KV, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
