package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/org-hierarchy-api/internal/domain"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, search string) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	Roles(ctx context.Context, id int64) (*domain.Roles, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// List возвращает сотрудников, ФИО которых содержит search (без учёта регистра)
func (r *employeeRepository) List(ctx context.Context, search string) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx).Order("id ASC")

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	employees := []domain.Employee{}
	err := query.Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

// Delete удаляет сотрудника. Ссылки на руководителя обнуляются,
// строки членства в группах удаляются внешними ключами.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Roles собирает индекс ролей сотрудника: руководство на каждом уровне
// и членство в группах в порядке вступления
func (r *employeeRepository) Roles(ctx context.Context, id int64) (*domain.Roles, error) {
	roles := &domain.Roles{EmployeeID: id}

	var err error
	if roles.ServiceLeaderOf, err = (table[domain.Service]{db: r.db}).ledBy(ctx, id); err != nil {
		return nil, err
	}
	if roles.DepartmentLeaderOf, err = (table[domain.Department]{db: r.db}).ledBy(ctx, id); err != nil {
		return nil, err
	}
	if roles.DivisionLeaderOf, err = (table[domain.Division]{db: r.db}).ledBy(ctx, id); err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Select("teams.*").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.employee_id = ?", id).
		Order("team_members.id ASC").
		Find(&roles.Teams).Error
	if err != nil {
		return nil, err
	}

	return roles, nil
}
