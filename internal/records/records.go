// Package records defines the two record kinds persisted by staffledger.
//
// Both kinds are append-only: once written to a container they are never
// updated or deleted. Identifiers are not unique and an Attendance id is not
// checked against the employee container.
package records

// Employee is a registered member of staff.
type Employee struct {
	ID          int     `json:"id" csv:"id"`
	Name        string  `json:"name" csv:"name"`
	Department  string  `json:"department" csv:"department"`
	BasicSalary float64 `json:"basic_salary" csv:"basic_salary"`
}

// Attendance is one attendance entry for the employee with the same ID.
type Attendance struct {
	ID            int     `json:"id" csv:"id"`
	DaysPresent   int     `json:"days_present" csv:"days_present"`
	OvertimeHours int     `json:"overtime_hours" csv:"overtime_hours"`
	Deductions    float64 `json:"deductions" csv:"deductions"`
}
