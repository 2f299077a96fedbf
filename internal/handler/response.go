package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/dto"
	"github.com/org-hierarchy-api/internal/hierarchy"
	"github.com/org-hierarchy-api/internal/service"
)

// MediaPrefix - URL, под которым раздаются загруженные файлы
const MediaPrefix = "/media/"

// responder содержит общие для хендлеров декодирование и ответы
type responder struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	return responder{
		validator: validator.New(),
		logger:    logger,
	}
}

// decode читает JSON тело в dst и валидирует его. При ошибке ответ уже отправлен.
func (h responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}

	return true
}

func (h responder) pathID(w http.ResponseWriter, r *http.Request, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s id", label), "")
		return 0, false
	}
	return id, true
}

func (h responder) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrValidation):
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
	case errors.Is(err, domain.ErrConflict):
		h.respondError(w, http.StatusConflict, err.Error(), "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:          emp.ID,
		FullName:    emp.FullName,
		Position:    emp.Position,
		DateOfBirth: emp.DateOfBirth.Format(dto.DateLayout),
		StartDate:   emp.StartDate.Format(dto.DateLayout),
		CreatedAt:   emp.CreatedAt,
	}

	if emp.Photo != nil {
		url := MediaPrefix + *emp.Photo
		resp.Photo = &url
	}

	return resp
}

func toEmployeeResponses(employees []domain.Employee) []dto.EmployeeResponse {
	resp := make([]dto.EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = toEmployeeResponse(&employees[i])
	}
	return resp
}

// withSubdivision дополняет ответ названием подразделения сотрудника
func (h responder) withSubdivision(r *http.Request, hs service.HierarchyService, resp *dto.EmployeeResponse) {
	name, err := hs.SubdivisionName(r.Context(), resp.ID)
	if err != nil {
		h.logger.Warn("failed to resolve subdivision",
			slog.Int64("employee_id", resp.ID),
			slog.Any("error", err),
		)
		return
	}
	resp.SubdivisionName = name
}

func (h responder) withSubdivisions(r *http.Request, hs service.HierarchyService, resp []dto.EmployeeResponse) {
	for i := range resp {
		h.withSubdivision(r, hs, &resp[i])
	}
}

func toUnitResponse(unit domain.Container) dto.UnitResponse {
	ref := unit.Ref()
	resp := dto.UnitResponse{
		ID:   ref.ID,
		Kind: string(ref.Kind),
		Name: unit.UnitName(),
	}

	if parent, ok := unit.ParentRef(); ok {
		resp.ParentID = &parent.ID
	}
	if leader := unit.CurrentLeader(); leader != nil {
		l := toEmployeeResponse(leader)
		resp.Leader = &l
	}

	return resp
}

func toNodeResponse(node *hierarchy.Node) dto.UnitResponse {
	resp := toUnitResponse(node.Unit)

	if len(node.Members) > 0 {
		resp.Members = toEmployeeResponses(node.Members)
	}

	if len(node.Children) > 0 {
		resp.Children = make([]dto.UnitResponse, len(node.Children))
		for i, child := range node.Children {
			resp.Children[i] = toNodeResponse(child)
		}
	}

	return resp
}
