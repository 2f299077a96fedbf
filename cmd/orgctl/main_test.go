package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/org-hierarchy-api/internal/config"
	"github.com/org-hierarchy-api/internal/database"
	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--driver", config.DriverSQLite, "--sqlite", dbPath))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// seed: Ops -> Support(Alice) -> L1 -> Night[Bob]; Carol вне групп
func seed(t *testing.T, dbPath string) (teamID, bobID, carolID int64) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: dbPath, ConnectAttempts: 1}, nil)
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	units := repository.NewUnitRepository(db)
	teams := repository.NewTeamRepository(db)
	employees := repository.NewEmployeeRepository(db)

	hire := func(name string, born time.Time) *domain.Employee {
		emp := &domain.Employee{FullName: name, Position: "Engineer", DateOfBirth: born, StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
		require.NoError(t, employees.Create(ctx, emp))
		return emp
	}
	alice := hire("Alice", time.Date(1985, 3, 10, 0, 0, 0, 0, time.UTC))
	bob := hire("Bob", time.Date(1990, 8, 20, 0, 0, 0, 0, time.UTC))
	carol := hire("Carol", time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC))

	create := func(kind domain.Kind, name string, parentID int64, leaderID *int64) int64 {
		unit, err := units.Create(ctx, kind, repository.UnitFields{Name: name, ParentID: parentID, LeaderID: leaderID})
		require.NoError(t, err)
		return unit.Ref().ID
	}
	ops := create(domain.KindService, "Ops", 0, nil)
	support := create(domain.KindDepartment, "Support", ops, &alice.ID)
	l1 := create(domain.KindDivision, "L1", support, nil)
	night := create(domain.KindTeam, "Night", l1, nil)

	_, err = teams.AddMember(ctx, night, bob.ID)
	require.NoError(t, err)
	return night, bob.ID, carol.ID
}

func TestOrgctl(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "org.db")

	out, err := execute(t, dbPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations applied successfully")

	teamID, bobID, carolID := seed(t, dbPath)

	out, err = execute(t, dbPath, "employees", "service", "1")
	require.NoError(t, err)
	var employees []domain.Employee
	require.NoError(t, json.Unmarshal([]byte(out), &employees))
	require.Len(t, employees, 2)
	assert.Equal(t, "Alice", employees[0].FullName)
	assert.Equal(t, "Bob", employees[1].FullName)

	out, err = execute(t, dbPath, "stats", "team", strconv.FormatInt(teamID, 10))
	require.NoError(t, err)
	assert.Contains(t, out, `"employee_count": 1`)

	out, err = execute(t, dbPath, "subdivision", strconv.FormatInt(bobID, 10))
	require.NoError(t, err)
	assert.Contains(t, out, `"subdivision_name": "Night"`)

	out, err = execute(t, dbPath, "add-member", strconv.FormatInt(teamID, 10), strconv.FormatInt(carolID, 10))
	require.NoError(t, err)
	assert.Contains(t, out, "Carol")

	out, err = execute(t, dbPath, "subdivision", strconv.FormatInt(carolID, 10))
	require.NoError(t, err)
	assert.Contains(t, out, `"subdivision_name": "Night"`)
}

func TestOrgctl_Errors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "org.db")
	_, err := execute(t, dbPath, "migrate")
	require.NoError(t, err)

	_, err = execute(t, dbPath, "stats", "galaxy", "1")
	assert.ErrorContains(t, err, "unknown unit kind")

	_, err = execute(t, dbPath, "subdivision", "abc")
	assert.ErrorContains(t, err, "invalid id")

	_, err = execute(t, dbPath, "employees", "division", "42")
	assert.ErrorIs(t, err, domain.ErrDivisionNotFound)

	_, err = execute(t, dbPath, "add-member", "1", "1")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}
