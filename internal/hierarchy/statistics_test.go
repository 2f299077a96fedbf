package hierarchy_test

import (
	"context"
	"testing"
	"time"

	"github.com/org-hierarchy-api/internal/domain"
	"github.com/org-hierarchy-api/internal/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearsElapsed(t *testing.T) {
	today := date(2025, 6, 15)

	tests := []struct {
		name string
		from time.Time
		want int
	}{
		{"birthday passed", date(2000, 1, 1), 25},
		{"birthday not reached", date(2000, 7, 1), 24},
		{"birthday today", date(2000, 6, 15), 25},
		{"day before birthday", date(2000, 6, 16), 24},
		{"same day this year", date(2025, 6, 15), 0},
		{"leap day", date(2004, 2, 29), 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hierarchy.YearsElapsed(tt.from, today))
		})
	}
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats, err := hierarchy.ComputeStatistics(nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Statistics{}, stats)

	stats, err = hierarchy.ComputeStatistics([]domain.Employee{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Statistics{EmployeeCount: 0, AverageAge: 0, AverageTenure: 0}, stats)
}

func TestComputeStatistics_Rounding(t *testing.T) {
	today := date(2025, 6, 15)
	employees := []domain.Employee{
		employee(1, "A", date(2000, 1, 1), date(2020, 1, 1)), // 25, 5
		employee(2, "B", date(1999, 1, 1), date(2019, 1, 1)), // 26, 6
	}

	stats, err := hierarchy.ComputeStatistics(employees, today)
	require.NoError(t, err)
	// 25.5 -> 26, 5.5 -> 6 (к чётному)
	assert.Equal(t, 2, stats.EmployeeCount)
	assert.Equal(t, 26, stats.AverageAge)
	assert.Equal(t, 6, stats.AverageTenure)

	employees[1] = employee(2, "B", date(2001, 1, 1), date(2021, 1, 1)) // 24, 4
	stats, err = hierarchy.ComputeStatistics(employees, today)
	require.NoError(t, err)
	// 24.5 -> 24, 4.5 -> 4
	assert.Equal(t, 24, stats.AverageAge)
	assert.Equal(t, 4, stats.AverageTenure)
}

func TestComputeStatistics_InvalidDates(t *testing.T) {
	today := date(2025, 6, 15)

	_, err := hierarchy.ComputeStatistics([]domain.Employee{{ID: 1, StartDate: date(2020, 1, 1)}}, today)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = hierarchy.ComputeStatistics([]domain.Employee{{ID: 1, DateOfBirth: date(1990, 1, 1)}}, today)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestStatistics_EmptyTeam(t *testing.T) {
	store := newFakeStore()
	store.add(domain.Team{ID: 1, DivisionID: 1, Name: "Ghosts"})

	stats, err := hierarchy.NewEngine(store).Statistics(context.Background(), domain.NodeRef{Kind: domain.KindTeam, ID: 1})
	require.NoError(t, err)
	assert.Equal(t, hierarchy.Statistics{}, stats)
}
