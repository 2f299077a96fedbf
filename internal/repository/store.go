package repository

import (
	"context"

	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/hierarchy"
)

type store struct {
	units     UnitRepository
	teams     TeamRepository
	employees EmployeeRepository
}

// NewStore собирает источник данных для обхода иерархии из репозиториев
func NewStore(units UnitRepository, teams TeamRepository, employees EmployeeRepository) hierarchy.Store {
	return &store{units: units, teams: teams, employees: employees}
}

func (s *store) Container(ctx context.Context, ref domain.NodeRef) (domain.Container, error) {
	return s.units.Container(ctx, ref)
}

func (s *store) Children(ctx context.Context, ref domain.NodeRef) ([]domain.Container, error) {
	return s.units.Children(ctx, ref)
}

func (s *store) Members(ctx context.Context, teamID int64) ([]domain.Employee, error) {
	return s.teams.Members(ctx, teamID)
}

func (s *store) Roles(ctx context.Context, employeeID int64) (*domain.Roles, error) {
	return s.employees.Roles(ctx, employeeID)
}
