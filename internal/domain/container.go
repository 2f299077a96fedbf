package domain

import "fmt"

// Kind - уровень иерархии
type Kind string

const (
	KindService    Kind = "service"
	KindDepartment Kind = "department"
	KindDivision   Kind = "division"
	KindTeam       Kind = "team"
)

// Kinds перечисляет уровни сверху вниз
var Kinds = []Kind{KindService, KindDepartment, KindDivision, KindTeam}

// ChildKind возвращает уровень дочерних узлов. У группы детей нет.
func (k Kind) ChildKind() (Kind, bool) {
	switch k {
	case KindService:
		return KindDepartment, true
	case KindDepartment:
		return KindDivision, true
	case KindDivision:
		return KindTeam, true
	default:
		return "", false
	}
}

// ParentKind возвращает уровень родителя. У службы родителя нет.
func (k Kind) ParentKind() (Kind, bool) {
	switch k {
	case KindDepartment:
		return KindService, true
	case KindDivision:
		return KindDepartment, true
	case KindTeam:
		return KindDivision, true
	default:
		return "", false
	}
}

// HasLeader сообщает, есть ли у узлов этого уровня поле руководителя
func (k Kind) HasLeader() bool {
	return k == KindService || k == KindDepartment || k == KindDivision
}

// Valid проверяет, что уровень известен
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// NotFoundError возвращает ошибку "не найдено" для уровня
func (k Kind) NotFoundError() error {
	switch k {
	case KindService:
		return ErrServiceNotFound
	case KindDepartment:
		return ErrDepartmentNotFound
	case KindDivision:
		return ErrDivisionNotFound
	case KindTeam:
		return ErrTeamNotFound
	default:
		return ErrNotFound
	}
}

// NodeRef ссылается на узел иерархии
type NodeRef struct {
	Kind Kind
	ID   int64
}

func (r NodeRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// Container - общий интерфейс узлов иерархии: служба, управление, отдел, группа
type Container interface {
	Ref() NodeRef
	UnitName() string
	// ParentRef возвращает ссылку на родителя; для службы ok == false
	ParentRef() (NodeRef, bool)
	// CurrentLeader возвращает загруженного руководителя или nil
	CurrentLeader() *Employee
}

func (s Service) Ref() NodeRef                { return NodeRef{Kind: KindService, ID: s.ID} }
func (s Service) UnitName() string            { return s.Name }
func (s Service) ParentRef() (NodeRef, bool)  { return NodeRef{}, false }
func (s Service) CurrentLeader() *Employee    { return s.Leader }
func (d Department) Ref() NodeRef             { return NodeRef{Kind: KindDepartment, ID: d.ID} }
func (d Department) UnitName() string         { return d.Name }
func (d Department) CurrentLeader() *Employee { return d.Leader }
func (v Division) Ref() NodeRef               { return NodeRef{Kind: KindDivision, ID: v.ID} }
func (v Division) UnitName() string           { return v.Name }
func (v Division) CurrentLeader() *Employee   { return v.Leader }
func (t Team) Ref() NodeRef                   { return NodeRef{Kind: KindTeam, ID: t.ID} }
func (t Team) UnitName() string               { return t.Name }
func (t Team) CurrentLeader() *Employee       { return nil }

func (d Department) ParentRef() (NodeRef, bool) {
	return NodeRef{Kind: KindService, ID: d.ServiceID}, true
}

func (v Division) ParentRef() (NodeRef, bool) {
	return NodeRef{Kind: KindDepartment, ID: v.DepartmentID}, true
}

func (t Team) ParentRef() (NodeRef, bool) {
	return NodeRef{Kind: KindDivision, ID: t.DivisionID}, true
}
