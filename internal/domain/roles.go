package domain

// UnassignedSubdivision возвращается, если сотрудник не занимает ни одной роли
const UnassignedSubdivision = "unassigned"

// Roles - индекс ролей сотрудника в иерархии.
// Поля руководства заполнены, если сотрудник возглавляет узел соответствующего уровня.
// Teams перечислены в порядке вступления в группу.
type Roles struct {
	EmployeeID         int64
	ServiceLeaderOf    *Service
	DepartmentLeaderOf *Department
	DivisionLeaderOf   *Division
	Teams              []Team
}
