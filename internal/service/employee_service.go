package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/dto"
	"github.com/org-hierarchy-api/internal/media"
	"github.com/org-hierarchy-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, search string) ([]domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	SetPhoto(ctx context.Context, id int64, photo io.Reader) (*domain.Employee, error)
}

type employeeService struct {
	empRepo repository.EmployeeRepository
	storage *media.Storage
	logger  *slog.Logger
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository, storage *media.Storage, logger *slog.Logger) EmployeeService {
	return &employeeService{
		empRepo: empRepo,
		storage: storage,
		logger:  logger,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	emp := &domain.Employee{
		FullName: strings.TrimSpace(req.FullName),
		Position: strings.TrimSpace(req.Position),
	}
	if emp.FullName == "" {
		return nil, domain.ErrEmptyName
	}

	var err error
	if emp.DateOfBirth, err = parseDate("date_of_birth", req.DateOfBirth); err != nil {
		return nil, err
	}
	if emp.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
		return nil, err
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, search string) ([]domain.Employee, error) {
	return s.empRepo.List(ctx, search)
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, domain.ErrEmptyName
		}
		emp.FullName = name
	}
	if req.Position != nil {
		emp.Position = strings.TrimSpace(*req.Position)
	}
	if req.DateOfBirth != nil {
		if emp.DateOfBirth, err = parseDate("date_of_birth", *req.DateOfBirth); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil {
		if emp.StartDate, err = parseDate("start_date", *req.StartDate); err != nil {
			return nil, err
		}
	}

	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

// Delete удаляет сотрудника и его фотографию. Ошибка удаления файла только логируется:
// запись к этому моменту уже удалена.
func (s *employeeService) Delete(ctx context.Context, id int64) error {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.empRepo.Delete(ctx, id); err != nil {
		return err
	}

	if emp.Photo != nil {
		s.removePhoto(id, *emp.Photo)
	}
	return nil
}

// SetPhoto сохраняет новую фотографию и удаляет предыдущую
func (s *employeeService) SetPhoto(ctx context.Context, id int64, photo io.Reader) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.storage.SavePhoto(photo)
	if err != nil {
		return nil, err
	}

	previous := emp.Photo
	emp.Photo = &rel
	if err := s.empRepo.Update(ctx, emp); err != nil {
		_ = s.storage.Remove(rel)
		return nil, err
	}

	if previous != nil && *previous != rel {
		s.removePhoto(id, *previous)
	}

	return emp, nil
}

func (s *employeeService) removePhoto(employeeID int64, rel string) {
	if err := s.storage.Remove(rel); err != nil {
		s.logger.Warn("failed to remove photo",
			slog.Int64("employee_id", employeeID),
			slog.String("photo", rel),
			slog.Any("error", err),
		)
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, domain.ErrInvalidDate)
	}
	return t, nil
}
