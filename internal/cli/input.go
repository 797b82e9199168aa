package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	ExitSuccess           = 0
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

const defaultEnvFile = ".env"

// Invocation is the canonical description of one staffledger run. Empty
// fields fall back to the environment configuration.
type Invocation struct {
	EnvFile    string
	DataDir    string
	PayrollCSV string
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses the optional flags. The program is interactive, so
// no flag is required and positional arguments are rejected.
func ParseInvocation(args []string) (Invocation, error) {
	fs := flag.NewFlagSet("staffledger", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var inv Invocation
	fs.StringVar(&inv.EnvFile, "env-file", defaultEnvFile, "dotenv file to load before reading the environment")
	fs.StringVar(&inv.DataDir, "data-dir", "", "Directory holding the record containers (overrides STAFFLEDGER_DATA_DIR).")
	fs.StringVar(&inv.PayrollCSV, "payroll-csv", "", "Write each payroll report to this CSV file (overrides STAFFLEDGER_PAYROLL_CSV).")

	if err := fs.Parse(args); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 0 {
		return Invocation{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}

	var err error
	if inv.EnvFile, err = cleanOptional("--env-file", inv.EnvFile); err != nil {
		return Invocation{}, err
	}
	if inv.DataDir, err = cleanOptional("--data-dir", inv.DataDir); err != nil {
		return Invocation{}, err
	}
	if inv.PayrollCSV, err = cleanOptional("--payroll-csv", inv.PayrollCSV); err != nil {
		return Invocation{}, err
	}
	return inv, nil
}

// cleanOptional normalizes a path flag. Unset stays empty; a flag given as
// whitespace is rejected.
func cleanOptional(name, p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if strings.TrimSpace(p) == "" {
		return "", invalidInvocationf("%s must not be blank", name)
	}
	return filepath.Clean(p), nil
}

// resolveUnder resolves a relative path against base. Absolute paths are
// returned unchanged.
func resolveUnder(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// ExitCode extracts a semantic exit code from a ParseInvocation error.
// If the error is not a known invocation error, it returns ExitInternalError.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitInternalError
}
