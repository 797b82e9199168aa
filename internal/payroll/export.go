package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"
)

// csvRow is the on-disk shape of a payroll line. Unmatched lines leave the
// computed columns empty.
type csvRow struct {
	ID          int    `csv:"id"`
	Name        string `csv:"name"`
	Department  string `csv:"department"`
	BasicSalary string `csv:"basic_salary"`
	OvertimePay string `csv:"overtime_pay"`
	Deductions  string `csv:"deductions"`
	NetSalary   string `csv:"net_salary"`
}

// Exporter writes payroll reports as CSV to a fixed path, replacing any
// previous export.
type Exporter struct {
	Path string
}

func (e Exporter) Export(report Report) error {
	if e.Path == "" {
		return fmt.Errorf("export path is required")
	}
	rows := make([]*csvRow, 0, len(report.Lines))
	for _, l := range report.Lines {
		row := &csvRow{
			ID:          l.Employee.ID,
			Name:        l.Employee.Name,
			Department:  l.Employee.Department,
			BasicSalary: formatAmount(l.Employee.BasicSalary),
		}
		if l.Matched {
			row.OvertimePay = formatAmount(l.OvertimePay)
			row.Deductions = formatAmount(l.Deductions)
			row.NetSalary = formatAmount(l.NetSalary)
		}
		rows = append(rows, row)
	}

	if err := os.MkdirAll(filepath.Dir(e.Path), 0o755); err != nil {
		return fmt.Errorf("export payroll: %w", err)
	}
	f, err := os.Create(e.Path)
	if err != nil {
		return fmt.Errorf("export payroll: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("export payroll: %w", err)
	}
	return f.Sync()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Destination is the path the report is written to.
func (e Exporter) Destination() string { return e.Path }
