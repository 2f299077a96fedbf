package service_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/org-hierarchy-api/internal/config"
	"github.com/org-hierarchy-api/internal/database"
	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/dto"
	"github.com/org-hierarchy-api/internal/hierarchy"
	"github.com/org-hierarchy-api/internal/media"
	"github.com/org-hierarchy-api/internal/repository"
	"github.com/org-hierarchy-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	units     service.UnitService
	employees service.EmployeeService
	hierarchy service.HierarchyService
	storage   *media.Storage
}

func newServices(t *testing.T) services {
	t.Helper()
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:", ConnectAttempts: 1}
	db, err := database.Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, cfg.Driver))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	unitRepo := repository.NewUnitRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	empRepo := repository.NewEmployeeRepository(db)

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	engine := hierarchy.NewEngine(repository.NewStore(unitRepo, teamRepo, empRepo)).
		WithClock(func() time.Time { return today })
	storage := media.NewStorage(t.TempDir(), 1024)

	return services{
		units:     service.NewUnitService(unitRepo, empRepo, engine),
		employees: service.NewEmployeeService(empRepo, storage, slog.New(slog.NewTextHandler(io.Discard, nil))),
		hierarchy: service.NewHierarchyService(engine, unitRepo, teamRepo, empRepo),
		storage:   storage,
	}
}

func (s services) hire(t *testing.T, name, born, started string) *domain.Employee {
	t.Helper()
	emp, err := s.employees.Create(context.Background(), &dto.CreateEmployeeRequest{
		FullName:    name,
		Position:    "Engineer",
		DateOfBirth: born,
		StartDate:   started,
	})
	require.NoError(t, err)
	return emp
}

func (s services) create(t *testing.T, kind domain.Kind, name string, parentID int64, leaderID *int64) domain.Container {
	t.Helper()
	unit, err := s.units.Create(context.Background(), kind, dto.UnitInput{Name: name, ParentID: parentID, LeaderID: leaderID})
	require.NoError(t, err)
	return unit
}

type opsTree struct {
	ops, support, l1, night domain.Container
	alice, bob, carol       *domain.Employee
}

// Ops -> Support(Alice) -> L1 -> Night[Bob, Carol]
func (s services) ops(t *testing.T) opsTree {
	t.Helper()
	ctx := context.Background()
	var tr opsTree
	tr.alice = s.hire(t, "Alice", "1985-03-10", "2015-01-01")
	tr.bob = s.hire(t, "Bob", "1990-08-20", "2020-09-01")
	tr.carol = s.hire(t, "Carol", "1995-06-15", "2022-06-16")

	tr.ops = s.create(t, domain.KindService, "Ops", 0, nil)
	tr.support = s.create(t, domain.KindDepartment, "Support", tr.ops.Ref().ID, &tr.alice.ID)
	tr.l1 = s.create(t, domain.KindDivision, "L1", tr.support.Ref().ID, nil)
	tr.night = s.create(t, domain.KindTeam, "Night", tr.l1.Ref().ID, nil)

	_, err := s.hierarchy.AddTeamMember(ctx, tr.night.Ref().ID, tr.bob.ID)
	require.NoError(t, err)
	_, err = s.hierarchy.AddTeamMember(ctx, tr.night.Ref().ID, tr.carol.ID)
	require.NoError(t, err)
	return tr
}

func fullNames(employees []domain.Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.FullName)
	}
	return out
}

func TestHierarchyService_OpsScenario(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tr := s.ops(t)

	got, err := s.hierarchy.Employees(ctx, tr.ops.Ref())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, fullNames(got))

	stats, err := s.hierarchy.Statistics(ctx, tr.ops.Ref())
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Statistics{EmployeeCount: 3, AverageAge: 35, AverageTenure: 5}, stats)

	got, err = s.hierarchy.Employees(ctx, tr.night.Ref())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Carol"}, fullNames(got))

	for emp, want := range map[int64]string{tr.alice.ID: "Support", tr.bob.ID: "Night", tr.carol.ID: "Night"} {
		name, err := s.hierarchy.SubdivisionName(ctx, emp)
		require.NoError(t, err)
		assert.Equal(t, want, name)
	}
}

func TestHierarchyService_EmptyUnits(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	empty := s.create(t, domain.KindService, "Empty", 0, nil)

	got, err := s.hierarchy.Employees(ctx, empty.Ref())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	stats, err := s.hierarchy.Statistics(ctx, empty.Ref())
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Statistics{}, stats)
}

func TestHierarchyService_NotFound(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.hierarchy.Employees(ctx, domain.NodeRef{Kind: domain.KindDivision, ID: 7})
	assert.ErrorIs(t, err, domain.ErrDivisionNotFound)

	_, err = s.hierarchy.Statistics(ctx, domain.NodeRef{Kind: domain.KindService, ID: 7})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)

	_, err = s.hierarchy.SubdivisionName(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	emp := s.hire(t, "Dave", "1980-01-01", "2010-01-01")
	_, err = s.hierarchy.AddTeamMember(ctx, 7, emp.ID)
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestHierarchyService_UnassignedEmployee(t *testing.T) {
	s := newServices(t)
	emp := s.hire(t, "Dave", "1980-01-01", "2010-01-01")

	name, err := s.hierarchy.SubdivisionName(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnassignedSubdivision, name)
}

func TestHierarchyService_AddTeamMemberTwice(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tr := s.ops(t)

	emp, err := s.hierarchy.AddTeamMember(ctx, tr.night.Ref().ID, tr.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", emp.FullName)

	got, err := s.hierarchy.Employees(ctx, tr.night.Ref())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Carol"}, fullNames(got))

	_, err = s.hierarchy.AddTeamMember(ctx, tr.night.Ref().ID, 999)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestHierarchyService_RemoveTeamMember(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tr := s.ops(t)

	require.NoError(t, s.hierarchy.RemoveTeamMember(ctx, tr.night.Ref().ID, tr.bob.ID))
	assert.ErrorIs(t, s.hierarchy.RemoveTeamMember(ctx, tr.night.Ref().ID, tr.bob.ID), domain.ErrMemberNotFound)

	name, err := s.hierarchy.SubdivisionName(ctx, tr.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnassignedSubdivision, name)
}

func TestUnitService_CreateValidation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tr := s.ops(t)

	tests := []struct {
		name    string
		kind    domain.Kind
		in      dto.UnitInput
		wantErr error
	}{
		{"empty name", domain.KindService, dto.UnitInput{Name: "   "}, domain.ErrEmptyName},
		{"missing parent", domain.KindDepartment, dto.UnitInput{Name: "Infra"}, domain.ErrParentRequired},
		{"unknown parent", domain.KindDepartment, dto.UnitInput{Name: "Infra", ParentID: 42}, domain.ErrServiceNotFound},
		{"unknown division", domain.KindTeam, dto.UnitInput{Name: "Day", ParentID: 42}, domain.ErrDivisionNotFound},
		{"duplicate sibling", domain.KindDepartment, dto.UnitInput{Name: " Support ", ParentID: tr.ops.Ref().ID}, domain.ErrDuplicateName},
		{"team leader", domain.KindTeam, dto.UnitInput{Name: "Day", ParentID: tr.l1.Ref().ID, LeaderID: &tr.bob.ID}, domain.ErrTeamLeader},
		{"unknown leader", domain.KindService, dto.UnitInput{Name: "Dev", LeaderID: new(int64)}, domain.ErrEmployeeNotFound},
		{"leader taken", domain.KindDepartment, dto.UnitInput{Name: "Infra", ParentID: tr.ops.Ref().ID, LeaderID: &tr.alice.ID}, domain.ErrLeaderAlreadyAssigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.units.Create(ctx, tt.kind, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnitService_SameNameUnderDifferentParents(t *testing.T) {
	s := newServices(t)
	ops := s.create(t, domain.KindService, "Ops", 0, nil)
	dev := s.create(t, domain.KindService, "Dev", 0, nil)

	s.create(t, domain.KindDepartment, "Support", ops.Ref().ID, nil)
	s.create(t, domain.KindDepartment, "Support", dev.Ref().ID, nil)
}

func TestUnitService_Update(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tr := s.ops(t)
	infra := s.create(t, domain.KindDepartment, "Infra", tr.ops.Ref().ID, nil)

	name := "Support"
	_, err := s.units.Update(ctx, infra.Ref(), dto.UnitPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	updated, err := s.units.Update(ctx, infra.Ref(), dto.UnitPatch{LeaderID: &tr.bob.ID})
	require.NoError(t, err)
	assert.Equal(t, "Infra", updated.UnitName())
	require.NotNil(t, updated.CurrentLeader())
	assert.Equal(t, tr.bob.ID, updated.CurrentLeader().ID)

	var noLeader int64
	updated, err = s.units.Update(ctx, tr.support.Ref(), dto.UnitPatch{LeaderID: &noLeader})
	require.NoError(t, err)
	assert.Nil(t, updated.CurrentLeader())

	// перенос отдела в другое управление
	infraID := infra.Ref().ID
	updated, err = s.units.Update(ctx, tr.l1.Ref(), dto.UnitPatch{ParentID: &infraID})
	require.NoError(t, err)
	parent, ok := updated.ParentRef()
	require.True(t, ok)
	assert.Equal(t, infra.Ref(), parent)

	got, err := s.hierarchy.Employees(ctx, infra.Ref())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Bob", "Carol"}, fullNames(got))

	_, err = s.units.Update(ctx, domain.NodeRef{Kind: domain.KindTeam, ID: 99}, dto.UnitPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestUnitService_GetTreeAndDelete(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	tr := s.ops(t)

	tree, err := s.units.GetTree(ctx, tr.ops.Ref())
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	require.Len(t, tree.Children[0].Children, 1)
	night := tree.Children[0].Children[0].Children[0]
	assert.Equal(t, "Night", night.Unit.UnitName())
	assert.Equal(t, []string{"Bob", "Carol"}, fullNames(night.Members))

	require.NoError(t, s.units.Delete(ctx, tr.support.Ref()))

	_, err = s.units.GetTree(ctx, tr.night.Ref())
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)

	got, err := s.employees.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	name, err := s.hierarchy.SubdivisionName(ctx, tr.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnassignedSubdivision, name)
}

func TestEmployeeService_CreateAndUpdate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.employees.Create(ctx, &dto.CreateEmployeeRequest{FullName: "Dave", Position: "QA", DateOfBirth: "1980-13-01", StartDate: "2010-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	emp := s.hire(t, "  Dave  ", "1980-01-01", "2010-01-01")
	assert.Equal(t, "Dave", emp.FullName)

	position := "Lead"
	started := "2012-02-02"
	updated, err := s.employees.Update(ctx, emp.ID, &dto.UpdateEmployeeRequest{Position: &position, StartDate: &started})
	require.NoError(t, err)
	assert.Equal(t, "Lead", updated.Position)
	assert.Equal(t, time.Date(2012, 2, 2, 0, 0, 0, 0, time.UTC), updated.StartDate)

	bad := "yesterday"
	_, err = s.employees.Update(ctx, emp.ID, &dto.UpdateEmployeeRequest{DateOfBirth: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = s.employees.Update(ctx, 404, &dto.UpdateEmployeeRequest{Position: &position})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestEmployeeService_Photo(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	emp := s.hire(t, "Dave", "1980-01-01", "2010-01-01")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	first, err := s.employees.SetPhoto(ctx, emp.ID, bytes.NewReader(png))
	require.NoError(t, err)
	require.NotNil(t, first.Photo)
	firstPath := *first.Photo
	assert.True(t, s.storage.Exists(firstPath))

	second, err := s.employees.SetPhoto(ctx, emp.ID, bytes.NewReader(png))
	require.NoError(t, err)
	assert.NotEqual(t, firstPath, *second.Photo)
	assert.False(t, s.storage.Exists(firstPath))

	_, err = s.employees.SetPhoto(ctx, emp.ID, strings.NewReader("not an image"))
	assert.ErrorIs(t, err, domain.ErrInvalidPhoto)

	require.NoError(t, s.employees.Delete(ctx, emp.ID))
	assert.False(t, s.storage.Exists(*second.Photo))
	assert.ErrorIs(t, s.employees.Delete(ctx, emp.ID), domain.ErrEmployeeNotFound)
}

// jamPhoto подменяет файл фотографии непустым каталогом, который нельзя удалить
func (s services) jamPhoto(t *testing.T, rel string) {
	t.Helper()
	full := filepath.Join(s.storage.Root(), filepath.FromSlash(rel))
	require.NoError(t, os.Remove(full))
	require.NoError(t, os.MkdirAll(filepath.Join(full, "keep"), 0o755))
}

func TestEmployeeService_PhotoRemovalFailureDoesNotFail(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	emp := s.hire(t, "Dave", "1980-01-01", "2010-01-01")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	first, err := s.employees.SetPhoto(ctx, emp.ID, bytes.NewReader(png))
	require.NoError(t, err)
	s.jamPhoto(t, *first.Photo)

	second, err := s.employees.SetPhoto(ctx, emp.ID, bytes.NewReader(png))
	require.NoError(t, err)
	require.NotNil(t, second.Photo)
	assert.True(t, s.storage.Exists(*second.Photo))

	stored, err := s.employees.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, *second.Photo, *stored.Photo)

	s.jamPhoto(t, *second.Photo)
	require.NoError(t, s.employees.Delete(ctx, emp.ID))

	_, err = s.employees.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}
