// Package payroll joins employees with their attendance and computes net
// salary.
//
// The join is first-match-wins: when several attendance records share an
// employee id, only the first one in container order is used. Employees with
// the same id are each reported on their own line.
package payroll

import (
	"context"
	"errors"

	"staffledger/internal/logging"
	"staffledger/internal/records"

	"go.uber.org/zap"
)

// OvertimeRate is the flat pay per overtime hour.
const OvertimeRate = 100

var ErrMissingData = errors.New("missing employee or attendance data")

type EmployeeSource interface {
	List(ctx context.Context) []records.Employee
}

type AttendanceSource interface {
	List(ctx context.Context) []records.Attendance
}

// Line is one employee's payroll row. When Matched is false no attendance was
// found and the computed fields are zero and must be rendered as placeholders.
type Line struct {
	Employee    records.Employee
	Matched     bool
	Attendance  records.Attendance
	OvertimePay float64
	Deductions  float64
	NetSalary   float64
}

type Report struct {
	Lines []Line
}

// Totals sums net salary over matched lines and counts unmatched ones.
func (r Report) Totals() (net float64, unmatched int) {
	for _, l := range r.Lines {
		if !l.Matched {
			unmatched++
			continue
		}
		net += l.NetSalary
	}
	return net, unmatched
}

type Processor struct {
	employees  EmployeeSource
	attendance AttendanceSource
	logger     *zap.Logger
}

func NewProcessor(employees EmployeeSource, attendance AttendanceSource, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{employees: employees, attendance: attendance, logger: logger.Named("payroll")}
}

// Process builds the payroll report in employee order. It returns
// ErrMissingData when either container is empty.
func (p *Processor) Process(ctx context.Context) (Report, error) {
	emps := p.employees.List(ctx)
	atts := p.attendance.List(ctx)
	if len(emps) == 0 || len(atts) == 0 {
		return Report{}, ErrMissingData
	}

	index := firstByID(atts)
	report := Report{Lines: make([]Line, 0, len(emps))}
	for _, emp := range emps {
		att, ok := index[emp.ID]
		if !ok {
			report.Lines = append(report.Lines, Line{Employee: emp})
			continue
		}
		report.Lines = append(report.Lines, Compute(emp, att))
	}

	net, unmatched := report.Totals()
	logging.For(ctx, p.logger).Info("payroll processed",
		zap.Int("employees", len(emps)),
		zap.Int("attendance", len(atts)),
		zap.Int("unmatched", unmatched),
		zap.Float64("net_total", net),
	)
	return report, nil
}

// Compute derives a matched payroll line.
func Compute(emp records.Employee, att records.Attendance) Line {
	overtimePay := float64(att.OvertimeHours) * OvertimeRate
	return Line{
		Employee:    emp,
		Matched:     true,
		Attendance:  att,
		OvertimePay: overtimePay,
		Deductions:  att.Deductions,
		NetSalary:   emp.BasicSalary + overtimePay - att.Deductions,
	}
}

// firstByID indexes attendance by id, keeping the earliest record per id.
func firstByID(atts []records.Attendance) map[int]records.Attendance {
	index := make(map[int]records.Attendance, len(atts))
	for _, a := range atts {
		if _, seen := index[a.ID]; seen {
			continue
		}
		index[a.ID] = a
	}
	return index
}
