// Package employee owns the employee container.
package employee

import (
	"context"

	"staffledger/internal/logging"
	"staffledger/internal/records"
	"staffledger/internal/store"

	"go.uber.org/zap"
)

type Registry struct {
	store  *store.Store[records.Employee]
	logger *zap.Logger
}

func NewRegistry(s *store.Store[records.Employee], logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{store: s, logger: logger.Named("employee")}
}

// Container is the base name of the backing container.
func (r *Registry) Container() string { return r.store.Name() }

// Add appends a new employee. Ids are not checked for uniqueness.
func (r *Registry) Add(ctx context.Context, id int, name, department string, basicSalary float64) (records.Employee, error) {
	emp := records.Employee{
		ID:          id,
		Name:        name,
		Department:  department,
		BasicSalary: basicSalary,
	}
	if err := r.store.Append(emp); err != nil {
		logging.For(ctx, r.logger).Warn("add employee failed",
			zap.Int("employee_id", id),
			zap.Error(err),
		)
		return records.Employee{}, err
	}
	logging.For(ctx, r.logger).Info("employee added", zap.Int("employee_id", id))
	return emp, nil
}

// List returns every employee in insertion order.
func (r *Registry) List(ctx context.Context) []records.Employee {
	return r.store.Load()
}
