package hierarchy

import (
	"fmt"
	"math"
	"time"

	"github.com/org-hierarchy-api/internal/domain"
)

// Statistics - сводка по списку сотрудников
type Statistics struct {
	EmployeeCount int `json:"employee_count"`
	AverageAge    int `json:"average_age"`
	AverageTenure int `json:"average_tenure"`
}

// ComputeStatistics считает количество, средний возраст и средний стаж
// на дату today. Средние округляются до ближайшего целого, половины - к чётному.
func ComputeStatistics(employees []domain.Employee, today time.Time) (Statistics, error) {
	count := len(employees)
	if count == 0 {
		return Statistics{}, nil
	}

	var totalAge, totalTenure int
	for _, emp := range employees {
		if emp.DateOfBirth.IsZero() {
			return Statistics{}, fmt.Errorf("employee %d date_of_birth: %w", emp.ID, domain.ErrInvalidDate)
		}
		if emp.StartDate.IsZero() {
			return Statistics{}, fmt.Errorf("employee %d start_date: %w", emp.ID, domain.ErrInvalidDate)
		}
		totalAge += YearsElapsed(emp.DateOfBirth, today)
		totalTenure += YearsElapsed(emp.StartDate, today)
	}

	return Statistics{
		EmployeeCount: count,
		AverageAge:    int(math.RoundToEven(float64(totalAge) / float64(count))),
		AverageTenure: int(math.RoundToEven(float64(totalTenure) / float64(count))),
	}, nil
}

// YearsElapsed возвращает число полных лет между from и today.
// Год не засчитывается, пока в текущем году не наступили месяц и день from.
func YearsElapsed(from, today time.Time) int {
	years := today.Year() - from.Year()
	if today.Month() < from.Month() || (today.Month() == from.Month() && today.Day() < from.Day()) {
		years--
	}
	return years
}
