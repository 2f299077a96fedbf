package service

import (
	"context"

	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/hierarchy"
	"github.com/org-hierarchy-api/internal/repository"
)

// HierarchyService объединяет запросы по дереву и управление составом групп
type HierarchyService interface {
	// Employees возвращает сотрудников узла вместе со всеми вложенными
	Employees(ctx context.Context, ref domain.NodeRef) ([]domain.Employee, error)
	Statistics(ctx context.Context, ref domain.NodeRef) (hierarchy.Statistics, error)
	SubdivisionName(ctx context.Context, employeeID int64) (string, error)
	// AddTeamMember добавляет сотрудника в группу. Повторное добавление ничего не меняет.
	AddTeamMember(ctx context.Context, teamID, employeeID int64) (*domain.Employee, error)
	RemoveTeamMember(ctx context.Context, teamID, employeeID int64) error
}

type hierarchyService struct {
	engine   *hierarchy.Engine
	unitRepo repository.UnitRepository
	teamRepo repository.TeamRepository
	empRepo  repository.EmployeeRepository
}

// NewHierarchyService создаёт новый экземпляр сервиса
func NewHierarchyService(
	engine *hierarchy.Engine,
	unitRepo repository.UnitRepository,
	teamRepo repository.TeamRepository,
	empRepo repository.EmployeeRepository,
) HierarchyService {
	return &hierarchyService{
		engine:   engine,
		unitRepo: unitRepo,
		teamRepo: teamRepo,
		empRepo:  empRepo,
	}
}

func (s *hierarchyService) Employees(ctx context.Context, ref domain.NodeRef) ([]domain.Employee, error) {
	return s.engine.Employees(ctx, ref)
}

func (s *hierarchyService) Statistics(ctx context.Context, ref domain.NodeRef) (hierarchy.Statistics, error) {
	return s.engine.Statistics(ctx, ref)
}

func (s *hierarchyService) SubdivisionName(ctx context.Context, employeeID int64) (string, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return "", err
	}
	return s.engine.SubdivisionName(ctx, employeeID)
}

func (s *hierarchyService) AddTeamMember(ctx context.Context, teamID, employeeID int64) (*domain.Employee, error) {
	if _, err := s.unitRepo.Container(ctx, domain.NodeRef{Kind: domain.KindTeam, ID: teamID}); err != nil {
		return nil, err
	}
	emp, err := s.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.AddMember(ctx, teamID, employeeID); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *hierarchyService) RemoveTeamMember(ctx context.Context, teamID, employeeID int64) error {
	if _, err := s.unitRepo.Container(ctx, domain.NodeRef{Kind: domain.KindTeam, ID: teamID}); err != nil {
		return err
	}
	return s.teamRepo.RemoveMember(ctx, teamID, employeeID)
}
