package service

import (
	"context"
	"strings"

	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/dto"
	"github.com/org-hierarchy-api/internal/hierarchy"
	"github.com/org-hierarchy-api/internal/repository"
)

// UnitService определяет интерфейс бизнес-логики для узлов иерархии
type UnitService interface {
	Create(ctx context.Context, kind domain.Kind, in dto.UnitInput) (domain.Container, error)
	GetTree(ctx context.Context, ref domain.NodeRef) (*hierarchy.Node, error)
	List(ctx context.Context, kind domain.Kind) ([]domain.Container, error)
	Update(ctx context.Context, ref domain.NodeRef, patch dto.UnitPatch) (domain.Container, error)
	Delete(ctx context.Context, ref domain.NodeRef) error
}

type unitService struct {
	unitRepo repository.UnitRepository
	empRepo  repository.EmployeeRepository
	engine   *hierarchy.Engine
}

// NewUnitService создаёт новый экземпляр сервиса
func NewUnitService(unitRepo repository.UnitRepository, empRepo repository.EmployeeRepository, engine *hierarchy.Engine) UnitService {
	return &unitService{
		unitRepo: unitRepo,
		empRepo:  empRepo,
		engine:   engine,
	}
}

func (s *unitService) Create(ctx context.Context, kind domain.Kind, in dto.UnitInput) (domain.Container, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}

	var parentID int64
	if parentKind, ok := kind.ParentKind(); ok {
		if in.ParentID <= 0 {
			return nil, domain.ErrParentRequired
		}
		// Проверяем существование родителя
		if _, err := s.unitRepo.Container(ctx, domain.NodeRef{Kind: parentKind, ID: in.ParentID}); err != nil {
			return nil, err
		}
		parentID = in.ParentID
	}

	if err := s.checkLeader(ctx, kind, in.LeaderID); err != nil {
		return nil, err
	}

	// Проверяем уникальность имени в пределах родителя
	exists, err := s.unitRepo.ExistsByNameAndParent(ctx, kind, name, parentID, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateName
	}

	return s.unitRepo.Create(ctx, kind, repository.UnitFields{
		Name:     name,
		ParentID: parentID,
		LeaderID: in.LeaderID,
	})
}

func (s *unitService) GetTree(ctx context.Context, ref domain.NodeRef) (*hierarchy.Node, error) {
	return s.engine.Tree(ctx, ref)
}

func (s *unitService) List(ctx context.Context, kind domain.Kind) ([]domain.Container, error) {
	return s.unitRepo.List(ctx, kind)
}

func (s *unitService) Update(ctx context.Context, ref domain.NodeRef, patch dto.UnitPatch) (domain.Container, error) {
	unit, err := s.unitRepo.Container(ctx, ref)
	if err != nil {
		return nil, err
	}

	fields := repository.UnitFields{Name: unit.UnitName()}
	if parent, ok := unit.ParentRef(); ok {
		fields.ParentID = parent.ID
	}
	if leader := unit.CurrentLeader(); leader != nil {
		id := leader.ID
		fields.LeaderID = &id
	}
	moved := false

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrEmptyName
		}
		moved = name != fields.Name
		fields.Name = name
	}

	if patch.ParentID != nil {
		parentKind, ok := ref.Kind.ParentKind()
		if ok && *patch.ParentID != fields.ParentID {
			if _, err := s.unitRepo.Container(ctx, domain.NodeRef{Kind: parentKind, ID: *patch.ParentID}); err != nil {
				return nil, err
			}
			fields.ParentID = *patch.ParentID
			moved = true
		}
	}

	if patch.LeaderID != nil {
		if *patch.LeaderID == 0 {
			fields.LeaderID = nil
		} else {
			if err := s.checkLeader(ctx, ref.Kind, patch.LeaderID); err != nil {
				return nil, err
			}
			fields.LeaderID = patch.LeaderID
		}
	}

	if moved {
		exists, err := s.unitRepo.ExistsByNameAndParent(ctx, ref.Kind, fields.Name, fields.ParentID, &ref.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateName
		}
	}

	return s.unitRepo.Update(ctx, ref, fields)
}

// Delete удаляет узел вместе с поддеревом. Сотрудники остаются.
func (s *unitService) Delete(ctx context.Context, ref domain.NodeRef) error {
	return s.unitRepo.Delete(ctx, ref)
}

func (s *unitService) checkLeader(ctx context.Context, kind domain.Kind, leaderID *int64) error {
	if leaderID == nil {
		return nil
	}
	if !kind.HasLeader() {
		return domain.ErrTeamLeader
	}
	_, err := s.empRepo.GetByID(ctx, *leaderID)
	return err
}
