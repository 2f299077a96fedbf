package repository

import (
	"context"

	"github.com/org-hierarchy-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository управляет составом групп
type TeamRepository interface {
	Members(ctx context.Context, teamID int64) ([]domain.Employee, error)
	// AddMember добавляет сотрудника в группу; added == false, если он уже в ней состоит
	AddMember(ctx context.Context, teamID, employeeID int64) (added bool, err error)
	RemoveMember(ctx context.Context, teamID, employeeID int64) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository создаёт новый экземпляр репозитория
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Members(ctx context.Context, teamID int64) ([]domain.Employee, error) {
	members := []domain.Employee{}
	err := r.db.WithContext(ctx).
		Select("employees.*").
		Joins("JOIN team_members ON team_members.employee_id = employees.id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.id ASC").
		Find(&members).Error
	return members, err
}

func (r *teamRepository) AddMember(ctx context.Context, teamID, employeeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&domain.TeamMember{TeamID: teamID, EmployeeID: employeeID})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, employeeID int64) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND employee_id = ?", teamID, employeeID).
		Delete(&domain.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}
