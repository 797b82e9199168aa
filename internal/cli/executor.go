package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"staffledger/internal/attendance"
	"staffledger/internal/audit"
	"staffledger/internal/auth"
	"staffledger/internal/backup"
	"staffledger/internal/config"
	"staffledger/internal/employee"
	"staffledger/internal/logging"
	"staffledger/internal/payroll"
	"staffledger/internal/records"
	"staffledger/internal/session"
	"staffledger/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Streams are the console the session talks to.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

type CLIResult struct {
	ExitCode int
	// Authenticated reports whether the login gate was passed.
	Authenticated bool
}

// Execute maps a canonical Invocation to one interactive session.
//
// Responsibilities:
//   - Load the dotenv file and environment configuration, then apply flag
//     overrides.
//   - Build the diagnostic and audit loggers and put a fresh session id on
//     ctx for component loggers to pick up.
//   - Wire stores, services and the credential check into a session.
//   - Translate outcomes to exit codes. Login exhaustion is a normal exit.
func Execute(ctx context.Context, inv Invocation, streams Streams) (res CLIResult, execErr error) {
	res.ExitCode = ExitInternalError
	if streams.In == nil || streams.Out == nil {
		return res, fmt.Errorf("nil console streams")
	}

	cfg, err := loadConfig(inv)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}
	defer func() { _ = logger.Sync() }()

	auditLogger, err := newAuditLogger(cfg.AuditFile)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}
	defer func() { _ = auditLogger.Sync() }()

	ctx = logging.WithSessionID(ctx, uuid.NewString())

	deps, err := buildDeps(cfg, logger)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}

	deps.Audit = audit.NewZapSink(logging.For(ctx, auditLogger))
	sess, err := session.New(deps, streams.In, streams.Out)
	if err != nil {
		return res, err
	}
	logging.For(ctx, logger).Debug("session starting", zap.String("data_dir", cfg.DataDir))
	if err := sess.Run(ctx); err != nil {
		res.Authenticated = sess.Authenticated()
		return res, err
	}

	res.ExitCode = ExitSuccess
	res.Authenticated = sess.Authenticated()
	return res, nil
}

func loadConfig(inv Invocation) (config.Config, error) {
	if err := config.LoadEnvFile(inv.EnvFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if inv.DataDir != "" {
		cfg.DataDir = inv.DataDir
	}
	if inv.PayrollCSV != "" {
		cfg.PayrollCSV = inv.PayrollCSV
	}
	cfg.PayrollCSV = resolveUnder(cfg.DataDir, cfg.PayrollCSV)
	if !isStdStream(cfg.AuditFile) {
		cfg.AuditFile = resolveUnder(cfg.DataDir, cfg.AuditFile)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func buildDeps(cfg config.Config, logger *zap.Logger) (session.Deps, error) {
	authn, err := newAuthenticator(cfg)
	if err != nil {
		return session.Deps{}, fmt.Errorf("credentials: %w", err)
	}

	paths := cfg.Paths()
	empStore, err := store.New[records.Employee](paths.Employees, logger)
	if err != nil {
		return session.Deps{}, err
	}
	attStore, err := store.New[records.Attendance](paths.Attendance, logger)
	if err != nil {
		return session.Deps{}, err
	}

	emps := employee.NewRegistry(empStore, logger)
	atts := attendance.NewLedger(attStore, logger)

	deps := session.Deps{
		Auth:       authn,
		Employees:  emps,
		Attendance: atts,
		Payroll:    payroll.NewProcessor(emps, atts, logger),
		Backup: backup.NewService([]backup.Pair{
			{Source: paths.Employees, Destination: paths.EmployeeBackup},
			{Source: paths.Attendance, Destination: paths.AttendanceBackup},
		}, logger),
		Logger: logger,
	}
	if cfg.PayrollCSV != "" {
		deps.Exporter = payroll.Exporter{Path: cfg.PayrollCSV}
	}
	return deps, nil
}

// newAuditLogger opens the audit trail at info level, independent of the
// diagnostic log level.
func newAuditLogger(path string) (*zap.Logger, error) {
	if !isStdStream(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("audit log directory: %w", err)
		}
	}
	return logging.New("info", path)
}

func isStdStream(path string) bool { return path == "stderr" || path == "stdout" }

func newAuthenticator(cfg config.Config) (auth.Authenticator, error) {
	if cfg.PasswordHash != "" {
		return auth.NewStaticCredentialsFromHash(cfg.Username, cfg.PasswordHash)
	}
	return auth.NewStaticCredentials(cfg.Username, cfg.Password)
}
