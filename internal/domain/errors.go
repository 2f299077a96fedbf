package domain

import (
	"errors"
	"fmt"
)

// Семейства ошибок
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)

// Определение бизнес-ошибок
var (
	ErrServiceNotFound    = fmt.Errorf("service %w", ErrNotFound)
	ErrDepartmentNotFound = fmt.Errorf("department %w", ErrNotFound)
	ErrDivisionNotFound   = fmt.Errorf("division %w", ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("team %w", ErrNotFound)
	ErrEmployeeNotFound   = fmt.Errorf("employee %w", ErrNotFound)
	ErrMemberNotFound     = fmt.Errorf("team member %w", ErrNotFound)

	ErrEmptyName      = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrInvalidDate    = fmt.Errorf("%w: malformed date", ErrValidation)
	ErrParentRequired = fmt.Errorf("%w: parent id is required", ErrValidation)
	ErrTeamLeader     = fmt.Errorf("%w: teams have no leader", ErrValidation)
	ErrInvalidPhoto   = fmt.Errorf("%w: photo must be a jpeg, png, gif or webp image", ErrValidation)
	ErrPhotoTooLarge  = fmt.Errorf("%w: photo is too large", ErrValidation)

	ErrDuplicateName         = fmt.Errorf("%w: unit with this name already exists in the same parent", ErrConflict)
	ErrLeaderAlreadyAssigned = fmt.Errorf("%w: employee already leads a unit of this level", ErrConflict)
)
