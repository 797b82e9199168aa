// Package session is the interactive front end: a credential gate followed by
// a numbered menu dispatching to the registry, ledger, payroll and backup
// services.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"staffledger/internal/audit"
	"staffledger/internal/auth"
	"staffledger/internal/backup"
	"staffledger/internal/logging"
	"staffledger/internal/payroll"
	"staffledger/internal/records"

	"go.uber.org/zap"
)

// MaxLoginAttempts is the number of credential attempts before the session
// terminates without reaching the menu.
const MaxLoginAttempts = 3

const (
	choiceAddEmployee = iota + 1
	choiceViewEmployees
	choiceRecordAttendance
	choiceViewAttendance
	choiceProcessPayroll
	choiceBackup
	choiceExit
)

const menuText = `
1. Add Employee
2. View Employees
3. Record Attendance
4. View Attendance
5. Process Payroll
6. Backup Data
7. Exit
`

type EmployeeService interface {
	Add(ctx context.Context, id int, name, department string, basicSalary float64) (records.Employee, error)
	List(ctx context.Context) []records.Employee
	Container() string
}

type AttendanceService interface {
	Record(ctx context.Context, id, daysPresent, overtimeHours int, deductions float64) (records.Attendance, error)
	List(ctx context.Context) []records.Attendance
	Container() string
}

type PayrollService interface {
	Process(ctx context.Context) (payroll.Report, error)
}

// ReportExporter persists a payroll report after it has been shown.
type ReportExporter interface {
	Export(report payroll.Report) error
	Destination() string
}

type BackupService interface {
	Backup(ctx context.Context) []backup.Result
}

// Deps are the capabilities a Session dispatches to. Exporter, Audit and
// Logger are optional.
type Deps struct {
	Auth       auth.Authenticator
	Employees  EmployeeService
	Attendance AttendanceService
	Payroll    PayrollService
	Backup     BackupService
	Exporter   ReportExporter
	Audit      audit.Sink
	Logger     *zap.Logger
}

func (d Deps) validate() error {
	var errs []error
	if d.Auth == nil {
		errs = append(errs, errors.New("Auth is required"))
	}
	if d.Employees == nil {
		errs = append(errs, errors.New("Employees is required"))
	}
	if d.Attendance == nil {
		errs = append(errs, errors.New("Attendance is required"))
	}
	if d.Payroll == nil {
		errs = append(errs, errors.New("Payroll is required"))
	}
	if d.Backup == nil {
		errs = append(errs, errors.New("Backup is required"))
	}
	return errors.Join(errs...)
}

// Session runs one interactive login-and-menu cycle over in/out.
type Session struct {
	deps     Deps
	prompt   *prompter
	out      io.Writer
	state    State
	username string
	logger   *zap.Logger
}

func New(deps Deps, in io.Reader, out io.Writer) (*Session, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if in == nil || out == nil {
		return nil, errors.New("input and output are required")
	}
	if deps.Audit == nil {
		deps.Audit = audit.NopSink{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		deps:   deps,
		prompt: newPrompter(in, out),
		out:    out,
		state:  StateAwaitingCredentials,
		logger: logger.Named("session"),
	}, nil
}

func (s *Session) State() State { return s.state }

// Authenticated reports whether the session reached the menu.
func (s *Session) Authenticated() bool { return s.username != "" }

// Run drives the session until it terminates. Exhausted login attempts, menu
// exit and end of input are normal terminations and return nil.
func (s *Session) Run(ctx context.Context) error {
	if s.state != StateAwaitingCredentials {
		return fmt.Errorf("session already ran (state %s)", s.state)
	}
	log := logging.For(ctx, s.logger)

	err := s.login(ctx)
	if err == nil && s.state == StateMenuLoop {
		err = s.menu(ctx)
	}
	if !IsTerminal(s.state) {
		from := s.state
		_ = Transition(&s.state, from, StateTerminated)
	}
	audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventSessionEnded, Username: s.username})

	if errors.Is(err, io.EOF) {
		log.Debug("input closed, ending session")
		return nil
	}
	return err
}

func (s *Session) login(ctx context.Context) error {
	log := logging.For(ctx, s.logger)
	for attempts := MaxLoginAttempts; attempts > 0; {
		username, err := s.prompt.line("Enter Username: ")
		if err != nil {
			return err
		}
		password, err := s.prompt.line("Enter Password: ")
		if err != nil {
			return err
		}

		if s.deps.Auth.Check(username, password) {
			fmt.Fprintln(s.out, "Login successful!")
			fmt.Fprintln(s.out)
			s.username = username
			audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventLoginSucceeded, Username: username})
			log.Info("login succeeded", zap.String("username", username))
			return Transition(&s.state, StateAwaitingCredentials, StateMenuLoop)
		}

		attempts--
		fmt.Fprintf(s.out, "Invalid credentials. Attempts left: %d\n", attempts)
		audit.SafeRecord(s.deps.Audit, audit.Event{
			Kind:     audit.EventLoginFailed,
			Username: username,
			Detail:   strconv.Itoa(attempts) + " attempts left",
		})
		log.Warn("login failed", zap.String("username", username), zap.Int("attempts_left", attempts))
	}

	fmt.Fprintln(s.out, "Too many failed attempts. Exiting...")
	audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventLoginExhausted})
	return Transition(&s.state, StateAwaitingCredentials, StateTerminated)
}

func (s *Session) menu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, menuText)
		raw, err := s.prompt.line("Enter choice: ")
		if err != nil {
			return err
		}
		choice, convErr := strconv.Atoi(strings.TrimSpace(raw))
		if convErr != nil {
			choice = 0
		}

		switch choice {
		case choiceAddEmployee:
			err = s.addEmployee(ctx)
		case choiceViewEmployees:
			s.viewEmployees(ctx)
		case choiceRecordAttendance:
			err = s.recordAttendance(ctx)
		case choiceViewAttendance:
			s.viewAttendance(ctx)
		case choiceProcessPayroll:
			s.processPayroll(ctx)
		case choiceBackup:
			s.backup(ctx)
		case choiceExit:
			fmt.Fprintln(s.out, "Exiting...")
			return Transition(&s.state, StateMenuLoop, StateTerminated)
		default:
			fmt.Fprintln(s.out, "Invalid choice!")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) addEmployee(ctx context.Context) error {
	id, err := s.prompt.integer("Enter ID: ")
	if err != nil {
		return err
	}
	name, err := s.prompt.line("Enter Name: ")
	if err != nil {
		return err
	}
	dept, err := s.prompt.line("Enter Department: ")
	if err != nil {
		return err
	}
	salary, err := s.prompt.decimal("Enter Basic Salary: ")
	if err != nil {
		return err
	}

	container := s.deps.Employees.Container()
	if _, err := s.deps.Employees.Add(ctx, id, name, dept, salary); err != nil {
		s.reportWriteFailure(container, id, err)
		return nil
	}
	fmt.Fprintln(s.out, "Employee added successfully.")
	audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventEmployeeAdded, Username: s.username, RecordID: id, Target: container})
	return nil
}

func (s *Session) viewEmployees(ctx context.Context) {
	emps := s.deps.Employees.List(ctx)
	if len(emps) == 0 {
		fmt.Fprintln(s.out, "No employees found.")
		return
	}
	writeEmployees(s.out, emps)
}

func (s *Session) recordAttendance(ctx context.Context) error {
	id, err := s.prompt.integer("Enter Employee ID: ")
	if err != nil {
		return err
	}
	days, err := s.prompt.integer("Enter Days Present: ")
	if err != nil {
		return err
	}
	hours, err := s.prompt.integer("Enter Overtime Hours: ")
	if err != nil {
		return err
	}
	deductions, err := s.prompt.decimal("Enter Deductions: ")
	if err != nil {
		return err
	}

	container := s.deps.Attendance.Container()
	if _, err := s.deps.Attendance.Record(ctx, id, days, hours, deductions); err != nil {
		s.reportWriteFailure(container, id, err)
		return nil
	}
	fmt.Fprintln(s.out, "Attendance recorded.")
	audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventAttendanceAdded, Username: s.username, RecordID: id, Target: container})
	return nil
}

func (s *Session) viewAttendance(ctx context.Context) {
	atts := s.deps.Attendance.List(ctx)
	if len(atts) == 0 {
		fmt.Fprintln(s.out, "No attendance records.")
		return
	}
	writeAttendance(s.out, atts)
}

func (s *Session) processPayroll(ctx context.Context) {
	report, err := s.deps.Payroll.Process(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrMissingData) {
			fmt.Fprintln(s.out, "Missing employee or attendance data.")
			return
		}
		fmt.Fprintf(s.out, "Error processing payroll: %v\n", err)
		audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventOperationFailed, Username: s.username, Detail: err.Error()})
		return
	}
	writePayroll(s.out, report)
	audit.SafeRecord(s.deps.Audit, audit.Event{
		Kind:     audit.EventPayrollProcessed,
		Username: s.username,
		Detail:   strconv.Itoa(len(report.Lines)) + " lines",
	})

	if s.deps.Exporter == nil {
		return
	}
	dest := s.deps.Exporter.Destination()
	if err := s.deps.Exporter.Export(report); err != nil {
		fmt.Fprintf(s.out, "Error exporting payroll report to %s\n", dest)
		logging.For(ctx, s.logger).Warn("payroll export failed", zap.String("path", dest), zap.Error(err))
		audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventOperationFailed, Username: s.username, Target: dest, Detail: err.Error()})
		return
	}
	fmt.Fprintf(s.out, "Payroll report exported to %s\n", dest)
}

func (s *Session) backup(ctx context.Context) {
	for _, r := range s.deps.Backup.Backup(ctx) {
		if r.Err != nil {
			fmt.Fprintf(s.out, "Error backing up %s\n", r.Name())
			audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventBackupFailed, Username: s.username, Target: r.Source, Detail: r.Err.Error()})
			continue
		}
		fmt.Fprintf(s.out, "Backup of %s completed.\n", r.Name())
		audit.SafeRecord(s.deps.Audit, audit.Event{Kind: audit.EventBackupCompleted, Username: s.username, Target: r.Source, Detail: r.Checksum})
	}
}

func (s *Session) reportWriteFailure(container string, id int, err error) {
	fmt.Fprintf(s.out, "Error writing to file: %s\n", container)
	audit.SafeRecord(s.deps.Audit, audit.Event{
		Kind:     audit.EventOperationFailed,
		Username: s.username,
		RecordID: id,
		Target:   container,
		Detail:   err.Error(),
	})
}
