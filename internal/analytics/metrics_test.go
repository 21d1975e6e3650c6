package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studiolens/pkg/contracts/domain"
)

func payrollFixture() []domain.PayrollRecord {
	return []domain.PayrollRecord{
		{InstructorName: "Smith, Jane", ClassName: "Vinyasa Flow", ClassDate: "1/2/2021", Earnings: 45},
		{InstructorName: "Smith, Jane", ClassName: "Vinyasa Flow", ClassDate: "1/1/2021", Earnings: 40},
		{InstructorName: "Garcia, Luis", ClassName: "Mat Pilates", ClassDate: "1/1/2021", Earnings: 38.5},
		{InstructorName: "Garcia, Luis", ClassDate: "1/3/2021", Earnings: 20},
	}
}

func TestCalculateMetrics(t *testing.T) {
	m := CalculateMetrics(payrollFixture())

	assert.Equal(t, 2, m.TotalInstructors)
	assert.Equal(t, 2, m.TotalClasses)
	assert.Equal(t, 4, m.TotalSessions)
	assert.InDelta(t, 143.5, m.TotalEarnings, 0.001)
}

func TestCalculateMetricsEmpty(t *testing.T) {
	assert.Equal(t, PayrollMetrics{}, CalculateMetrics(nil))
}

func TestCalculateMetricsSessionsRequireIdentity(t *testing.T) {
	records := []domain.PayrollRecord{
		{InstructorName: "Smith, Jane", Earnings: 10},
		{InstructorName: "Smith, Jane", ClassDate: "1/1/2021", Earnings: 10},
	}
	m := CalculateMetrics(records)
	assert.Equal(t, 1, m.TotalSessions)
	assert.InDelta(t, 20.0, m.TotalEarnings, 0.001)
}

func TestCalculateFirstVisitMetrics(t *testing.T) {
	records := []domain.FirstVisitRecord{
		{ClientID: "C1", VisitsSinceFirst: 0},
		{ClientID: "C2", VisitsSinceFirst: 1},
		{ClientID: "C3", VisitsSinceFirst: 12},
	}
	m := CalculateFirstVisitMetrics(records)

	assert.Equal(t, 3, m.TotalClients)
	assert.InDelta(t, 66.7, m.RetentionRate1Plus, 0.001)
	assert.InDelta(t, 33.3, m.RetentionRate10Plus, 0.001)
}

func TestCalculateFirstVisitMetricsEmpty(t *testing.T) {
	assert.Equal(t, FirstVisitMetrics{}, CalculateFirstVisitMetrics(nil))
}

func TestEarningsByInstructor(t *testing.T) {
	result := EarningsByInstructor(payrollFixture())

	assert.Equal(t, []InstructorEarnings{
		{Name: "Smith, Jane", Earnings: 85},
		{Name: "Garcia, Luis", Earnings: 58.5},
	}, result)
}

func TestEarningsByInstructorTieBreaksByName(t *testing.T) {
	records := []domain.PayrollRecord{
		{InstructorName: "Zeta, Ann", Earnings: 10},
		{InstructorName: "Alpha, Bo", Earnings: 10},
	}
	result := EarningsByInstructor(records)
	assert.Equal(t, "Alpha, Bo", result[0].Name)
	assert.Equal(t, "Zeta, Ann", result[1].Name)
}

func TestEarningsByDateChronological(t *testing.T) {
	result := EarningsByDate(payrollFixture())

	assert.Equal(t, []DateEarnings{
		{Date: "1/1/2021", Earnings: 78.5},
		{Date: "1/2/2021", Earnings: 45},
		{Date: "1/3/2021", Earnings: 20},
	}, result)
}

func TestEarningsByDateUnparseableLast(t *testing.T) {
	records := []domain.PayrollRecord{
		{ClassDate: "whenever", Earnings: 5},
		{ClassDate: "1/2/2021", Earnings: 10},
	}
	result := EarningsByDate(records)
	assert.Equal(t, "1/2/2021", result[0].Date)
	assert.Equal(t, "whenever", result[1].Date)
}

func TestClassDistribution(t *testing.T) {
	result := ClassDistribution(payrollFixture())

	assert.Equal(t, []ClassSessions{
		{Name: "Vinyasa Flow", Sessions: 2},
		{Name: "Mat Pilates", Sessions: 1},
	}, result)
}

func TestReducersSafeOnEmpty(t *testing.T) {
	assert.Empty(t, EarningsByInstructor(nil))
	assert.Empty(t, EarningsByDate(nil))
	assert.Empty(t, ClassDistribution(nil))
}
