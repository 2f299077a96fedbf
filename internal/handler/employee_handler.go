package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/org-hierarchy-api/internal/dto"
	"github.com/org-hierarchy-api/internal/service"
)

// PhotoField - имя поля multipart-формы с фотографией
const PhotoField = "photo"

// multipartOverhead - запас на заголовки и границы multipart-формы сверх размера фото
const multipartOverhead = 64 << 10

type EmployeeHandler struct {
	responder
	employees     service.EmployeeService
	hierarchy     service.HierarchyService
	maxPhotoBytes int64
}

func NewEmployeeHandler(
	employees service.EmployeeService,
	hierarchy service.HierarchyService,
	maxPhotoBytes int64,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		responder:     newResponder(logger),
		employees:     employees,
		hierarchy:     hierarchy,
		maxPhotoBytes: maxPhotoBytes,
	}
}

// List возвращает сотрудников; ?search= фильтрует по ФИО
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := toEmployeeResponses(employees)
	h.withSubdivisions(r, h.hierarchy, resp)
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.employees.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := toEmployeeResponse(emp)
	h.withSubdivision(r, h.hierarchy, &resp)
	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "employee")
	if !ok {
		return
	}

	emp, err := h.employees.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := toEmployeeResponse(emp)
	h.withSubdivision(r, h.hierarchy, &resp)
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "employee")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.employees.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := toEmployeeResponse(emp)
	h.withSubdivision(r, h.hierarchy, &resp)
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "employee")
	if !ok {
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto принимает multipart-форму с полем photo
func (h *EmployeeHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "employee")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxPhotoBytes+multipartOverhead)
	file, _, err := r.FormFile(PhotoField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "photo is too large", "")
			return
		}
		h.respondError(w, http.StatusBadRequest, "photo file is required", err.Error())
		return
	}
	defer file.Close()

	emp, err := h.employees.SetPhoto(r.Context(), id, file)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := toEmployeeResponse(emp)
	h.withSubdivision(r, h.hierarchy, &resp)
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) Subdivision(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "employee")
	if !ok {
		return
	}

	name, err := h.hierarchy.SubdivisionName(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.SubdivisionResponse{EmployeeID: id, SubdivisionName: name})
}
