package repository

import (
	"context"
	"errors"

	"github.com/org-hierarchy-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// table - общие операции над таблицей одного уровня иерархии
type table[T any] struct {
	db           *gorm.DB
	notFound     error
	parentColumn string
	withLeader   bool
}

func (t table[T]) query(ctx context.Context) *gorm.DB {
	q := t.db.WithContext(ctx)
	if t.withLeader {
		q = q.Preload("Leader")
	}
	return q
}

func (t table[T]) create(ctx context.Context, v *T) error {
	return translateError(t.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

func (t table[T]) get(ctx context.Context, id int64) (*T, error) {
	var v T
	err := t.query(ctx).First(&v, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, t.notFound
		}
		return nil, err
	}
	return &v, nil
}

func (t table[T]) list(ctx context.Context) ([]T, error) {
	var items []T
	err := t.query(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (t table[T]) listByParent(ctx context.Context, parentID int64) ([]T, error) {
	var items []T
	err := t.query(ctx).
		Where(t.parentColumn+" = ?", parentID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (t table[T]) update(ctx context.Context, id int64, values map[string]any) error {
	result := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return t.notFound
	}
	return nil
}

func (t table[T]) delete(ctx context.Context, id int64) error {
	result := t.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return t.notFound
	}
	return nil
}

// ledBy возвращает узел, которым руководит сотрудник, или nil
func (t table[T]) ledBy(ctx context.Context, employeeID int64) (*T, error) {
	var items []T
	err := t.db.WithContext(ctx).
		Where("leader_id = ?", employeeID).
		Order("id ASC").
		Limit(1).
		Find(&items).Error
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (t table[T]) existsByNameAndParent(ctx context.Context, name string, parentID int64, excludeID *int64) (bool, error) {
	var count int64
	query := t.db.WithContext(ctx).Model(new(T)).Where("name = ?", name)

	if t.parentColumn != "" {
		query = query.Where(t.parentColumn+" = ?", parentID)
	}

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}

// translateError переводит ошибки уникальности в доменные.
// Единственные уникальные индексы на уровнях иерархии - leader_id.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrLeaderAlreadyAssigned
	}
	return err
}

func asContainer[T domain.Container](v *T, err error) (domain.Container, error) {
	if err != nil {
		return nil, err
	}
	return *v, nil
}

func asContainers[T domain.Container](items []T, err error) ([]domain.Container, error) {
	if err != nil {
		return nil, err
	}
	out := make([]domain.Container, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out, nil
}
