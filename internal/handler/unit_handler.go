package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/dto"
	"github.com/org-hierarchy-api/internal/service"
)

// UnitHandler обслуживает узлы одного уровня иерархии
type UnitHandler struct {
	responder
	kind      domain.Kind
	units     service.UnitService
	hierarchy service.HierarchyService
}

func NewUnitHandler(
	kind domain.Kind,
	units service.UnitService,
	hierarchy service.HierarchyService,
	logger *slog.Logger,
) *UnitHandler {
	return &UnitHandler{
		responder: newResponder(logger),
		kind:      kind,
		units:     units,
		hierarchy: hierarchy,
	}
}

func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	units, err := h.units.List(r.Context(), h.kind)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.UnitResponse, len(units))
	for i, unit := range units {
		resp[i] = toUnitResponse(unit)
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		in dto.UnitInput
		ok bool
	)
	switch h.kind {
	case domain.KindService:
		in, ok = decodeInput[dto.CreateServiceRequest](h.responder, w, r)
	case domain.KindDepartment:
		in, ok = decodeInput[dto.CreateDepartmentRequest](h.responder, w, r)
	case domain.KindDivision:
		in, ok = decodeInput[dto.CreateDivisionRequest](h.responder, w, r)
	case domain.KindTeam:
		in, ok = decodeInput[dto.CreateTeamRequest](h.responder, w, r)
	}
	if !ok {
		return
	}

	unit, err := h.units.Create(r.Context(), h.kind, in)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toUnitResponse(unit))
}

// Get возвращает узел вместе со всем поддеревом
func (h *UnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r)
	if !ok {
		return
	}

	tree, err := h.units.GetTree(r.Context(), ref)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toNodeResponse(tree))
}

func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUnitRequest
	if !h.decode(w, r, &req) {
		return
	}

	patch := dto.UnitPatch{Name: req.Name, LeaderID: req.LeaderID}
	switch h.kind {
	case domain.KindDepartment:
		patch.ParentID = req.ServiceID
	case domain.KindDivision:
		patch.ParentID = req.DepartmentID
	case domain.KindTeam:
		patch.ParentID = req.DivisionID
	}

	unit, err := h.units.Update(r.Context(), ref, patch)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toUnitResponse(unit))
}

func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r)
	if !ok {
		return
	}

	if err := h.units.Delete(r.Context(), ref); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Employees возвращает всех сотрудников узла, включая вложенные подразделения
func (h *UnitHandler) Employees(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r)
	if !ok {
		return
	}

	employees, err := h.hierarchy.Employees(r.Context(), ref)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := toEmployeeResponses(employees)
	h.withSubdivisions(r, h.hierarchy, resp)
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *UnitHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r)
	if !ok {
		return
	}

	stats, err := h.hierarchy.Statistics(r.Context(), ref)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.StatisticsResponse{
		EmployeeCount: stats.EmployeeCount,
		AverageAge:    stats.AverageAge,
		AverageTenure: stats.AverageTenure,
	})
}

// AddMember добавляет сотрудника в группу
func (h *UnitHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.hierarchy.AddTeamMember(r.Context(), ref.ID, req.MemberID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Employee %s was added to the team.", emp.FullName),
	})
}

func (h *UnitHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.ref(w, r)
	if !ok {
		return
	}
	employeeID, ok := h.pathID(w, r, "employeeID", "employee")
	if !ok {
		return
	}

	if err := h.hierarchy.RemoveTeamMember(r.Context(), ref.ID, employeeID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UnitHandler) ref(w http.ResponseWriter, r *http.Request) (domain.NodeRef, bool) {
	id, ok := h.pathID(w, r, "id", string(h.kind))
	return domain.NodeRef{Kind: h.kind, ID: id}, ok
}

type unitRequest interface {
	Input() dto.UnitInput
}

func decodeInput[T unitRequest](h responder, w http.ResponseWriter, r *http.Request) (dto.UnitInput, bool) {
	var req T
	if !h.decode(w, r, &req) {
		return dto.UnitInput{}, false
	}
	return req.Input(), true
}
