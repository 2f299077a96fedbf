package domain

import (
	"time"
)

// Employee представляет сотрудника
type Employee struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName    string    `json:"full_name" gorm:"type:varchar(255);not null;index"`
	Position    string    `json:"position" gorm:"type:varchar(255);not null"`
	DateOfBirth time.Time `json:"date_of_birth" gorm:"type:date;not null"`
	StartDate   time.Time `json:"start_date" gorm:"type:date;not null"`
	Photo       *string   `json:"photo" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Service представляет службу - корень иерархии
type Service struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	LeaderID  *int64    `json:"leader_id" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Leader *Employee `json:"leader,omitempty" gorm:"foreignKey:LeaderID;constraint:OnDelete:SET NULL"`
}

// TableName задаёт имя таблицы для GORM
func (Service) TableName() string {
	return "services"
}

// Department представляет управление внутри службы
type Department struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ServiceID int64     `json:"service_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	LeaderID  *int64    `json:"leader_id" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Service *Service  `json:"-" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	Leader  *Employee `json:"leader,omitempty" gorm:"foreignKey:LeaderID;constraint:OnDelete:SET NULL"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// Division представляет отдел внутри управления
type Division struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DepartmentID int64     `json:"department_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	LeaderID     *int64    `json:"leader_id" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Department *Department `json:"-" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
	Leader     *Employee   `json:"leader,omitempty" gorm:"foreignKey:LeaderID;constraint:OnDelete:SET NULL"`
}

// TableName задаёт имя таблицы для GORM
func (Division) TableName() string {
	return "divisions"
}

// Team представляет группу - лист иерархии. У группы нет руководителя,
// только участники.
type Team struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DivisionID int64     `json:"division_id" gorm:"not null;index"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	Division *Division `json:"-" gorm:"foreignKey:DivisionID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Team) TableName() string {
	return "teams"
}

// TeamMember - строка членства сотрудника в группе.
// Порядок участников группы определяется ID строки.
type TeamMember struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	TeamID     int64     `gorm:"not null;uniqueIndex:idx_team_members_team_employee"`
	EmployeeID int64     `gorm:"not null;uniqueIndex:idx_team_members_team_employee;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Team     *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Employee *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (TeamMember) TableName() string {
	return "team_members"
}

// Models возвращает все модели в порядке создания таблиц
func Models() []any {
	return []any{
		&Employee{},
		&Service{},
		&Department{},
		&Division{},
		&Team{},
		&TeamMember{},
	}
}
