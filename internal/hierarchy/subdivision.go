package hierarchy

import "github.com/org-hierarchy-api/internal/domain"

// ResolveSubdivision выбирает подразделение сотрудника по приоритету:
// руководство службой, управлением, отделом, затем первая группа.
func ResolveSubdivision(roles *domain.Roles) string {
	if roles == nil {
		return domain.UnassignedSubdivision
	}
	switch {
	case roles.ServiceLeaderOf != nil:
		return roles.ServiceLeaderOf.Name
	case roles.DepartmentLeaderOf != nil:
		return roles.DepartmentLeaderOf.Name
	case roles.DivisionLeaderOf != nil:
		return roles.DivisionLeaderOf.Name
	case len(roles.Teams) > 0:
		return roles.Teams[0].Name
	}
	return domain.UnassignedSubdivision
}
