package dto

import (
	"time"
)

// DateLayout - формат дат в запросах и ответах
const DateLayout = "2006-01-02"

// UnitInput - поля узла иерархии, общие для всех уровней
type UnitInput struct {
	Name     string
	ParentID int64
	LeaderID *int64
}

// UnitPatch - частичное обновление узла.
// LeaderID == 0 снимает руководителя.
type UnitPatch struct {
	Name     *string
	ParentID *int64
	LeaderID *int64
}

// CreateServiceRequest - запрос на создание службы
type CreateServiceRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	LeaderID *int64 `json:"leader_id" validate:"omitempty,min=1"`
}

func (r CreateServiceRequest) Input() UnitInput {
	return UnitInput{Name: r.Name, LeaderID: r.LeaderID}
}

// CreateDepartmentRequest - запрос на создание управления
type CreateDepartmentRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=255"`
	ServiceID int64  `json:"service_id" validate:"required,min=1"`
	LeaderID  *int64 `json:"leader_id" validate:"omitempty,min=1"`
}

func (r CreateDepartmentRequest) Input() UnitInput {
	return UnitInput{Name: r.Name, ParentID: r.ServiceID, LeaderID: r.LeaderID}
}

// CreateDivisionRequest - запрос на создание отдела
type CreateDivisionRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	DepartmentID int64  `json:"department_id" validate:"required,min=1"`
	LeaderID     *int64 `json:"leader_id" validate:"omitempty,min=1"`
}

func (r CreateDivisionRequest) Input() UnitInput {
	return UnitInput{Name: r.Name, ParentID: r.DepartmentID, LeaderID: r.LeaderID}
}

// CreateTeamRequest - запрос на создание группы
type CreateTeamRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	DivisionID int64  `json:"division_id" validate:"required,min=1"`
}

func (r CreateTeamRequest) Input() UnitInput {
	return UnitInput{Name: r.Name, ParentID: r.DivisionID}
}

// UpdateUnitRequest - запрос на обновление узла любого уровня.
// Родитель передаётся в поле, соответствующем уровню.
type UpdateUnitRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	ServiceID    *int64  `json:"service_id" validate:"omitempty,min=1"`
	DepartmentID *int64  `json:"department_id" validate:"omitempty,min=1"`
	DivisionID   *int64  `json:"division_id" validate:"omitempty,min=1"`
	LeaderID     *int64  `json:"leader_id" validate:"omitempty,min=0"`
}

// AddMemberRequest - запрос на добавление сотрудника в группу
type AddMemberRequest struct {
	MemberID int64 `json:"member_id" validate:"required,min=1"`
}

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" validate:"required,min=1,max=255"`
	Position    string `json:"position" validate:"required,min=1,max=255"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// UpdateEmployeeRequest - запрос на обновление сотрудника
type UpdateEmployeeRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Position    *string `json:"position" validate:"omitempty,min=1,max=255"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"full_name"`
	Position        string    `json:"position"`
	DateOfBirth     string    `json:"date_of_birth"`
	StartDate       string    `json:"start_date"`
	Photo           *string   `json:"photo"`
	SubdivisionName string    `json:"subdivision_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// UnitResponse - ответ с данными узла иерархии и, при наличии, его поддеревом
type UnitResponse struct {
	ID       int64              `json:"id"`
	Kind     string             `json:"kind"`
	Name     string             `json:"name"`
	ParentID *int64             `json:"parent_id,omitempty"`
	Leader   *EmployeeResponse  `json:"leader,omitempty"`
	Children []UnitResponse     `json:"children,omitempty"`
	Members  []EmployeeResponse `json:"members,omitempty"`
}

// StatisticsResponse - статистика по сотрудникам узла
type StatisticsResponse struct {
	EmployeeCount int `json:"employee_count"`
	AverageAge    int `json:"average_age"`
	AverageTenure int `json:"average_tenure"`
}

// SubdivisionResponse - подразделение сотрудника
type SubdivisionResponse struct {
	EmployeeID      int64  `json:"employee_id"`
	SubdivisionName string `json:"subdivision_name"`
}

// MessageResponse - ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
