package repository

import (
	"context"
	"fmt"

	"github.com/org-hierarchy-api/internal/domain"
	"gorm.io/gorm"
)

// UnitFields - изменяемые поля узла иерархии.
// ParentID игнорируется для службы, LeaderID - для группы.
type UnitFields struct {
	Name     string
	ParentID int64
	LeaderID *int64
}

// UnitRepository определяет интерфейс для работы с узлами иерархии
type UnitRepository interface {
	Create(ctx context.Context, kind domain.Kind, fields UnitFields) (domain.Container, error)
	Container(ctx context.Context, ref domain.NodeRef) (domain.Container, error)
	List(ctx context.Context, kind domain.Kind) ([]domain.Container, error)
	Children(ctx context.Context, ref domain.NodeRef) ([]domain.Container, error)
	Update(ctx context.Context, ref domain.NodeRef, fields UnitFields) (domain.Container, error)
	Delete(ctx context.Context, ref domain.NodeRef) error
	ExistsByNameAndParent(ctx context.Context, kind domain.Kind, name string, parentID int64, excludeID *int64) (bool, error)
}

type unitRepository struct {
	services    table[domain.Service]
	departments table[domain.Department]
	divisions   table[domain.Division]
	teams       table[domain.Team]
}

// NewUnitRepository создаёт новый экземпляр репозитория
func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{
		services:    table[domain.Service]{db: db, notFound: domain.ErrServiceNotFound, withLeader: true},
		departments: table[domain.Department]{db: db, notFound: domain.ErrDepartmentNotFound, parentColumn: "service_id", withLeader: true},
		divisions:   table[domain.Division]{db: db, notFound: domain.ErrDivisionNotFound, parentColumn: "department_id", withLeader: true},
		teams:       table[domain.Team]{db: db, notFound: domain.ErrTeamNotFound, parentColumn: "division_id"},
	}
}

func (r *unitRepository) Create(ctx context.Context, kind domain.Kind, f UnitFields) (domain.Container, error) {
	var ref domain.NodeRef
	switch kind {
	case domain.KindService:
		v := &domain.Service{Name: f.Name, LeaderID: f.LeaderID}
		if err := r.services.create(ctx, v); err != nil {
			return nil, err
		}
		ref = v.Ref()
	case domain.KindDepartment:
		v := &domain.Department{ServiceID: f.ParentID, Name: f.Name, LeaderID: f.LeaderID}
		if err := r.departments.create(ctx, v); err != nil {
			return nil, err
		}
		ref = v.Ref()
	case domain.KindDivision:
		v := &domain.Division{DepartmentID: f.ParentID, Name: f.Name, LeaderID: f.LeaderID}
		if err := r.divisions.create(ctx, v); err != nil {
			return nil, err
		}
		ref = v.Ref()
	case domain.KindTeam:
		v := &domain.Team{DivisionID: f.ParentID, Name: f.Name}
		if err := r.teams.create(ctx, v); err != nil {
			return nil, err
		}
		ref = v.Ref()
	default:
		return nil, unknownKind(kind)
	}

	// перечитываем, чтобы подтянуть руководителя
	return r.Container(ctx, ref)
}

func (r *unitRepository) Container(ctx context.Context, ref domain.NodeRef) (domain.Container, error) {
	switch ref.Kind {
	case domain.KindService:
		v, err := r.services.get(ctx, ref.ID)
		return asContainer(v, err)
	case domain.KindDepartment:
		v, err := r.departments.get(ctx, ref.ID)
		return asContainer(v, err)
	case domain.KindDivision:
		v, err := r.divisions.get(ctx, ref.ID)
		return asContainer(v, err)
	case domain.KindTeam:
		v, err := r.teams.get(ctx, ref.ID)
		return asContainer(v, err)
	default:
		return nil, unknownKind(ref.Kind)
	}
}

func (r *unitRepository) List(ctx context.Context, kind domain.Kind) ([]domain.Container, error) {
	switch kind {
	case domain.KindService:
		items, err := r.services.list(ctx)
		return asContainers(items, err)
	case domain.KindDepartment:
		items, err := r.departments.list(ctx)
		return asContainers(items, err)
	case domain.KindDivision:
		items, err := r.divisions.list(ctx)
		return asContainers(items, err)
	case domain.KindTeam:
		items, err := r.teams.list(ctx)
		return asContainers(items, err)
	default:
		return nil, unknownKind(kind)
	}
}

// Children возвращает прямых потомков узла в порядке создания.
// У группы потомков нет.
func (r *unitRepository) Children(ctx context.Context, ref domain.NodeRef) ([]domain.Container, error) {
	switch ref.Kind {
	case domain.KindService:
		items, err := r.departments.listByParent(ctx, ref.ID)
		return asContainers(items, err)
	case domain.KindDepartment:
		items, err := r.divisions.listByParent(ctx, ref.ID)
		return asContainers(items, err)
	case domain.KindDivision:
		items, err := r.teams.listByParent(ctx, ref.ID)
		return asContainers(items, err)
	case domain.KindTeam:
		return []domain.Container{}, nil
	default:
		return nil, unknownKind(ref.Kind)
	}
}

func (r *unitRepository) Update(ctx context.Context, ref domain.NodeRef, f UnitFields) (domain.Container, error) {
	var err error
	switch ref.Kind {
	case domain.KindService:
		err = r.services.update(ctx, ref.ID, map[string]any{"name": f.Name, "leader_id": f.LeaderID})
	case domain.KindDepartment:
		err = r.departments.update(ctx, ref.ID, map[string]any{"name": f.Name, "service_id": f.ParentID, "leader_id": f.LeaderID})
	case domain.KindDivision:
		err = r.divisions.update(ctx, ref.ID, map[string]any{"name": f.Name, "department_id": f.ParentID, "leader_id": f.LeaderID})
	case domain.KindTeam:
		err = r.teams.update(ctx, ref.ID, map[string]any{"name": f.Name, "division_id": f.ParentID})
	default:
		err = unknownKind(ref.Kind)
	}
	if err != nil {
		return nil, err
	}
	return r.Container(ctx, ref)
}

// Delete удаляет узел; потомки удаляются каскадно внешними ключами
func (r *unitRepository) Delete(ctx context.Context, ref domain.NodeRef) error {
	switch ref.Kind {
	case domain.KindService:
		return r.services.delete(ctx, ref.ID)
	case domain.KindDepartment:
		return r.departments.delete(ctx, ref.ID)
	case domain.KindDivision:
		return r.divisions.delete(ctx, ref.ID)
	case domain.KindTeam:
		return r.teams.delete(ctx, ref.ID)
	default:
		return unknownKind(ref.Kind)
	}
}

func (r *unitRepository) ExistsByNameAndParent(ctx context.Context, kind domain.Kind, name string, parentID int64, excludeID *int64) (bool, error) {
	switch kind {
	case domain.KindService:
		return r.services.existsByNameAndParent(ctx, name, parentID, excludeID)
	case domain.KindDepartment:
		return r.departments.existsByNameAndParent(ctx, name, parentID, excludeID)
	case domain.KindDivision:
		return r.divisions.existsByNameAndParent(ctx, name, parentID, excludeID)
	case domain.KindTeam:
		return r.teams.existsByNameAndParent(ctx, name, parentID, excludeID)
	default:
		return false, unknownKind(kind)
	}
}

func unknownKind(kind domain.Kind) error {
	return fmt.Errorf("unknown unit kind %q", kind)
}
