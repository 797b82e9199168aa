// Package attendance owns the attendance container.
package attendance

import (
	"context"

	"staffledger/internal/logging"
	"staffledger/internal/records"
	"staffledger/internal/store"

	"go.uber.org/zap"
)

type Ledger struct {
	store  *store.Store[records.Attendance]
	logger *zap.Logger
}

func NewLedger(s *store.Store[records.Attendance], logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{store: s, logger: logger.Named("attendance")}
}

func (l *Ledger) Container() string { return l.store.Name() }

// Record appends an attendance entry. The id is not checked against the
// employee container.
func (l *Ledger) Record(ctx context.Context, id, daysPresent, overtimeHours int, deductions float64) (records.Attendance, error) {
	att := records.Attendance{
		ID:            id,
		DaysPresent:   daysPresent,
		OvertimeHours: overtimeHours,
		Deductions:    deductions,
	}
	if err := l.store.Append(att); err != nil {
		logging.For(ctx, l.logger).Warn("record attendance failed",
			zap.Int("employee_id", id),
			zap.Error(err),
		)
		return records.Attendance{}, err
	}
	logging.For(ctx, l.logger).Info("attendance recorded", zap.Int("employee_id", id))
	return att, nil
}

func (l *Ledger) List(ctx context.Context) []records.Attendance {
	return l.store.Load()
}
