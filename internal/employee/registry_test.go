package employee_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"staffledger/internal/employee"
	"staffledger/internal/logging"
	"staffledger/internal/records"
	"staffledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newRegistry(t *testing.T, path string) *employee.Registry {
	t.Helper()
	s, err := store.New[records.Employee](path, nil)
	require.NoError(t, err)
	return employee.NewRegistry(s, nil)
}

func TestRegistry_AddAndList(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t, filepath.Join(t.TempDir(), "employees.json"))

	assert.Empty(t, reg.List(ctx))

	first, err := reg.Add(ctx, 1, "Ada", "Engineering", 2000)
	require.NoError(t, err)
	assert.Equal(t, records.Employee{ID: 1, Name: "Ada", Department: "Engineering", BasicSalary: 2000}, first)

	_, err = reg.Add(ctx, 2, "Grace", "Operations", 1800.5)
	require.NoError(t, err)
	// duplicate ids are accepted
	_, err = reg.Add(ctx, 1, "Ada Two", "Engineering", 100)
	require.NoError(t, err)

	got := reg.List(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 1}, []int{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "Ada Two", got[2].Name)
	assert.Equal(t, "employees.json", reg.Container())
}

func TestRegistry_Add_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	reg := newRegistry(t, filepath.Join(blocker, "employees.json"))

	_, err := reg.Add(context.Background(), 1, "Ada", "Engineering", 2000)
	var ce *store.ContainerError
	require.ErrorAs(t, err, &ce)
	assert.Empty(t, reg.List(context.Background()))
}

func TestRegistry_Add_LogsUnderComponentNameWithSession(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := store.New[records.Employee](filepath.Join(t.TempDir(), "employees.json"), nil)
	require.NoError(t, err)
	reg := employee.NewRegistry(s, zap.New(core))

	ctx := logging.WithSessionID(context.Background(), "sess-42")
	_, err = reg.Add(ctx, 9, "Lin", "Ops", 1200)
	require.NoError(t, err)

	entries := logs.FilterMessage("employee added").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "employee", entries[0].LoggerName)
	assert.Equal(t, "sess-42", entries[0].ContextMap()["session_id"])
	assert.Equal(t, int64(9), entries[0].ContextMap()["employee_id"])
}
