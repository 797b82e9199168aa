package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"staffledger/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{
		"STAFFLEDGER_DATA_DIR",
		"STAFFLEDGER_USERNAME",
		"STAFFLEDGER_PASSWORD",
		"STAFFLEDGER_PASSWORD_HASH",
		"STAFFLEDGER_PAYROLL_CSV",
		"STAFFLEDGER_LOG_LEVEL",
		"STAFFLEDGER_AUDIT_FILE",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("STAFFLEDGER_LOG_FILE", filepath.Join(dir, "staffledger.log"))
	return dir
}

func execute(t *testing.T, inv Invocation, input string) (CLIResult, string, error) {
	t.Helper()
	var out bytes.Buffer
	res, err := Execute(context.Background(), inv, Streams{In: strings.NewReader(input), Out: &out})
	return res, out.String(), err
}

func TestExecute_DefaultCredentialsAndDataDir(t *testing.T) {
	dir := isolateEnv(t)

	res, out, err := execute(t, Invocation{DataDir: dir},
		"admin\n12345\n1\n4\nAda\nEng\n2000\n7\n")
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, res.ExitCode)
	assert.True(t, res.Authenticated)
	assert.Contains(t, out, "Employee added successfully.")
	assert.FileExists(t, filepath.Join(dir, "employees.json"))
}

func TestExecute_LoginExhaustionIsNormalExit(t *testing.T) {
	dir := isolateEnv(t)

	res, out, err := execute(t, Invocation{DataDir: dir}, "a\nb\nc\nd\ne\nf\n")
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, res.ExitCode)
	assert.False(t, res.Authenticated)
	assert.Contains(t, out, "Too many failed attempts. Exiting...")
	assert.NoFileExists(t, filepath.Join(dir, "employees.json"))
}

func TestExecute_CredentialsFromEnvFileAndHash(t *testing.T) {
	dir := isolateEnv(t)
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)

	envFile := filepath.Join(dir, "staffledger.env")
	content := "STAFFLEDGER_USERNAME=clerk\nSTAFFLEDGER_PASSWORD_HASH='" + hash + "'\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("STAFFLEDGER_USERNAME"))
	require.NoError(t, os.Unsetenv("STAFFLEDGER_PASSWORD_HASH"))

	res, out, err := execute(t, Invocation{EnvFile: envFile, DataDir: dir}, "admin\n12345\nclerk\nhunter2\n7\n")
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, res.ExitCode)
	assert.True(t, res.Authenticated)
	assert.Contains(t, out, "Invalid credentials. Attempts left: 2")
	assert.Contains(t, out, "Login successful!")
}

func TestExecute_PayrollCSVResolvedUnderDataDir(t *testing.T) {
	dir := isolateEnv(t)

	input := strings.Join([]string{
		"admin", "12345",
		"1", "1", "Ada", "Eng", "2000",
		"3", "1", "22", "5", "50",
		"5",
		"7",
	}, "\n") + "\n"
	res, out, err := execute(t, Invocation{DataDir: dir, PayrollCSV: "reports/payroll.csv"}, input)
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, res.ExitCode)

	csvPath := filepath.Join(dir, "reports", "payroll.csv")
	assert.Contains(t, out, "Payroll report exported to "+csvPath)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,Ada,Eng,2000.00,500.00,50.00,2450.00")
}

func TestExecute_AuditTrailKeptAtDefaultLogLevel(t *testing.T) {
	dir := isolateEnv(t)

	res, _, err := execute(t, Invocation{DataDir: dir}, "admin\nwrong\nadmin\n12345\n1\n4\nAda\nEng\n2000\n7\n")
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, res.ExitCode)

	data, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	trail := string(data)
	for _, kind := range []string{"LoginFailed", "LoginSucceeded", "EmployeeAdded", "SessionEnded"} {
		assert.Contains(t, trail, kind)
	}
	assert.Contains(t, trail, "session_id")
	assert.Contains(t, trail, "audit")

	diag, err := os.ReadFile(filepath.Join(dir, "staffledger.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(diag), "audit event")
	assert.Contains(t, string(diag), "login failed")
}

func TestExecute_AuditFileOverride(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("STAFFLEDGER_AUDIT_FILE", "logs/trail.log")

	_, _, err := execute(t, Invocation{DataDir: dir}, "admin\n12345\n7\n")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "logs", "trail.log"))
	assert.NoFileExists(t, filepath.Join(dir, "audit.log"))
}

func TestExecute_InvalidConfigIsConfigError(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("STAFFLEDGER_LOG_LEVEL", "chatty")

	res, _, err := execute(t, Invocation{DataDir: dir}, "")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, res.ExitCode)
}

func TestExecute_BadPasswordHashIsConfigError(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("STAFFLEDGER_PASSWORD_HASH", "plaintext")

	res, _, err := execute(t, Invocation{DataDir: dir}, "")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, res.ExitCode)
}

func TestExecute_NilStreams(t *testing.T) {
	res, err := Execute(context.Background(), Invocation{}, Streams{})
	require.Error(t, err)
	assert.Equal(t, ExitInternalError, res.ExitCode)
}

func TestRun_InvalidFlags(t *testing.T) {
	res, err := Run(context.Background(), []string{"--nope"}, Streams{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInvocation, res.ExitCode)
}
