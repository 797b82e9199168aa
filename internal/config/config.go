// Package config loads staffledger settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EmployeeContainer         = "employees.json"
	AttendanceContainer       = "attendance.json"
	EmployeeBackupContainer   = "backup_employees.json"
	AttendanceBackupContainer = "backup_attendance.json"
)

type Config struct {
	DataDir      string `validate:"required"`
	Username     string `validate:"required"`
	Password     string `validate:"required_without=PasswordHash"`
	PasswordHash string
	PayrollCSV   string
	LogLevel     string `validate:"required,oneof=debug info warn error"`
	LogFile      string `validate:"required"`
	// AuditFile receives the audit trail at info level regardless of
	// LogLevel. A relative path is taken under DataDir.
	AuditFile    string `validate:"required"`
}

// Paths are the container locations derived from DataDir.
type Paths struct {
	Employees        string
	Attendance       string
	EmployeeBackup   string
	AttendanceBackup string
}

// LoadEnvFile loads a dotenv file into the process environment. A missing
// file is not an error; variables already set are not overridden.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func Load() (Config, error) {
	cfg := Config{
		DataDir:      getEnv("STAFFLEDGER_DATA_DIR", "."),
		Username:     getEnv("STAFFLEDGER_USERNAME", "admin"),
		Password:     getEnv("STAFFLEDGER_PASSWORD", "12345"),
		PasswordHash: os.Getenv("STAFFLEDGER_PASSWORD_HASH"),
		PayrollCSV:   os.Getenv("STAFFLEDGER_PAYROLL_CSV"),
		LogLevel:     strings.ToLower(getEnv("STAFFLEDGER_LOG_LEVEL", "warn")),
		LogFile:      getEnv("STAFFLEDGER_LOG_FILE", "stderr"),
		AuditFile:    getEnv("STAFFLEDGER_AUDIT_FILE", "audit.log"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("config %s: failed %q", fe.Field(), fe.Tag()))
	}
	return errors.Join(errs...)
}

func (c Config) Paths() Paths {
	dir := filepath.Clean(c.DataDir)
	return Paths{
		Employees:        filepath.Join(dir, EmployeeContainer),
		Attendance:       filepath.Join(dir, AttendanceContainer),
		EmployeeBackup:   filepath.Join(dir, EmployeeBackupContainer),
		AttendanceBackup: filepath.Join(dir, AttendanceBackupContainer),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
