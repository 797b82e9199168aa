package session

import (
	"fmt"
	"io"

	"staffledger/internal/payroll"
	"staffledger/internal/records"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notApplicable = "N/A"

var moneyPrinter = message.NewPrinter(language.English)

// money renders an amount with two decimals and grouped thousands.
func money(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}

func writeEmployees(w io.Writer, emps []records.Employee) {
	fmt.Fprintf(w, "%-5s %-20s %-15s %-12s\n", "ID", "Name", "Department", "Basic Salary")
	for _, e := range emps {
		fmt.Fprintf(w, "%-5d %-20s %-15s %-12s\n", e.ID, e.Name, e.Department, money(e.BasicSalary))
	}
}

func writeAttendance(w io.Writer, atts []records.Attendance) {
	fmt.Fprintf(w, "%-5s %-15s %-10s %-10s\n", "ID", "Days Present", "Overtime", "Deductions")
	for _, a := range atts {
		fmt.Fprintf(w, "%-5d %-15d %-10d %-10s\n", a.ID, a.DaysPresent, a.OvertimeHours, money(a.Deductions))
	}
}

func writePayroll(w io.Writer, report payroll.Report) {
	fmt.Fprintf(w, "%-5s %-20s %-10s %-10s %-10s %-10s\n",
		"ID", "Name", "Basic", "Overtime", "Deductions", "Net Salary")
	for _, l := range report.Lines {
		if !l.Matched {
			fmt.Fprintf(w, "%-5d %-20s %-10s %-10s %-10s %-10s\n",
				l.Employee.ID, l.Employee.Name, money(l.Employee.BasicSalary),
				notApplicable, notApplicable, notApplicable)
			continue
		}
		fmt.Fprintf(w, "%-5d %-20s %-10s %-10s %-10s %-10s\n",
			l.Employee.ID, l.Employee.Name, money(l.Employee.BasicSalary),
			money(l.OvertimePay), money(l.Deductions), money(l.NetSalary))
	}

	net, unmatched := report.Totals()
	fmt.Fprintf(w, "Total net salary: %s\n", money(net))
	if unmatched > 0 {
		fmt.Fprintf(w, "Employees without attendance: %d\n", unmatched)
	}
}
