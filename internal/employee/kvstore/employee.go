package kvstore

import (
	"context"

	"github.com/frahmantamala/salary-calculator/internal/employee"
	"github.com/frahmantamala/salary-calculator/internal/storage"
)

type EmployeeRepository struct {
	kv storage.KV
}

func NewEmployeeRepository(kv storage.KV) *EmployeeRepository {
	return &EmployeeRepository{kv: kv}
}

var _ employee.Repository = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return storage.LoadAll[employee.Employee](ctx, r.kv, storage.KeyEmployees)
}

func (r *EmployeeRepository) SaveAll(ctx context.Context, employees []employee.Employee) error {
	return storage.SaveAll(ctx, r.kv, storage.KeyEmployees, employees)
}
