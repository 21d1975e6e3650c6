// Package analytics provides pure reducers over normalized report records.
// Every function is safe on empty input and mutates nothing; callers apply
// their own filters before reducing.
package analytics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"studiolens/pkg/contracts/domain"
)

// PayrollMetrics summarizes one payroll record set.
type PayrollMetrics struct {
	TotalInstructors int     `json:"total_instructors"`
	TotalClasses     int     `json:"total_classes"`
	TotalSessions    int     `json:"total_sessions"`
	TotalEarnings    float64 `json:"total_earnings"`
}

// FirstVisitMetrics summarizes client retention for one first-visit report.
// Retention rates are percentages at one decimal place.
type FirstVisitMetrics struct {
	TotalClients        int     `json:"total_clients"`
	RetentionRate1Plus  float64 `json:"retention_rate_1_plus"`
	RetentionRate10Plus float64 `json:"retention_rate_10_plus"`
}

// InstructorEarnings is one instructor's earnings total.
type InstructorEarnings struct {
	Name     string  `json:"name"`
	Earnings float64 `json:"earnings"`
}

// DateEarnings is one date's earnings total.
type DateEarnings struct {
	Date     string  `json:"date"`
	Earnings float64 `json:"earnings"`
}

// ClassSessions is one class name's session count.
type ClassSessions struct {
	Name     string `json:"name"`
	Sessions int    `json:"sessions"`
}

// CalculateMetrics reduces payroll records to summary counts and the
// earnings sum.
func CalculateMetrics(records []domain.PayrollRecord) PayrollMetrics {
	if len(records) == 0 {
		return PayrollMetrics{}
	}

	instructors := make(map[string]struct{})
	classes := make(map[string]struct{})
	sessions := 0
	earnings := make([]float64, 0, len(records))

	for _, rec := range records {
		if rec.InstructorName != "" {
			instructors[rec.InstructorName] = struct{}{}
		}
		if rec.ClassName != "" {
			classes[rec.ClassName] = struct{}{}
		}
		if rec.HasClassIdentity() {
			sessions++
		}
		earnings = append(earnings, rec.Earnings)
	}

	return PayrollMetrics{
		TotalInstructors: len(instructors),
		TotalClasses:     len(classes),
		TotalSessions:    sessions,
		TotalEarnings:    sum(earnings),
	}
}

// CalculateFirstVisitMetrics reduces first-visit records to client counts
// and 1+/10+ visit retention percentages.
func CalculateFirstVisitMetrics(records []domain.FirstVisitRecord) FirstVisitMetrics {
	if len(records) == 0 {
		return FirstVisitMetrics{}
	}

	total := len(records)
	with1Plus := 0
	with10Plus := 0
	for _, rec := range records {
		if rec.VisitsSinceFirst >= 1 {
			with1Plus++
		}
		if rec.VisitsSinceFirst >= 10 {
			with10Plus++
		}
	}

	return FirstVisitMetrics{
		TotalClients:        total,
		RetentionRate1Plus:  round(float64(with1Plus)/float64(total)*100, 1),
		RetentionRate10Plus: round(float64(with10Plus)/float64(total)*100, 1),
	}
}

// EarningsByInstructor groups earnings per instructor, highest earners
// first. Amounts are rounded to cents.
func EarningsByInstructor(records []domain.PayrollRecord) []InstructorEarnings {
	totals := make(map[string][]float64)
	for _, rec := range records {
		if rec.InstructorName == "" {
			continue
		}
		totals[rec.InstructorName] = append(totals[rec.InstructorName], rec.Earnings)
	}

	result := make([]InstructorEarnings, 0, len(totals))
	for name, values := range totals {
		result = append(result, InstructorEarnings{
			Name:     name,
			Earnings: round(sum(values), 2),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Earnings != result[j].Earnings {
			return result[i].Earnings > result[j].Earnings
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// EarningsByDate groups earnings per class date in chronological order;
// unparseable date labels sort lexically after parseable ones.
func EarningsByDate(records []domain.PayrollRecord) []DateEarnings {
	totals := make(map[string][]float64)
	for _, rec := range records {
		if rec.ClassDate == "" {
			continue
		}
		totals[rec.ClassDate] = append(totals[rec.ClassDate], rec.Earnings)
	}

	result := make([]DateEarnings, 0, len(totals))
	for date, values := range totals {
		result = append(result, DateEarnings{
			Date:     date,
			Earnings: round(sum(values), 2),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		ti, iOK := parseDateLabel(result[i].Date)
		tj, jOK := parseDateLabel(result[j].Date)
		switch {
		case iOK && jOK:
			return ti.Before(tj)
		case iOK:
			return true
		case jOK:
			return false
		default:
			return result[i].Date < result[j].Date
		}
	})
	return result
}

// ClassDistribution counts sessions per class name, most frequent first.
func ClassDistribution(records []domain.PayrollRecord) []ClassSessions {
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.ClassName == "" {
			continue
		}
		counts[rec.ClassName]++
	}

	result := make([]ClassSessions, 0, len(counts))
	for name, n := range counts {
		result = append(result, ClassSessions{Name: name, Sessions: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Sessions != result[j].Sessions {
			return result[i].Sessions > result[j].Sessions
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// dateLabelFormats cover the date strings the payroll normalizer emits plus
// the common source forms that pass through unchanged.
var dateLabelFormats = []string{
	"1/2/2006",
	"2006-01-02",
	"1-2-2006",
	"January 2, 2006",
}

func parseDateLabel(label string) (time.Time, bool) {
	for _, layout := range dateLabelFormats {
		if t, err := time.Parse(layout, label); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return total
}

func round(v float64, places int) float64 {
	rounded, err := stats.Round(v, places)
	if err != nil {
		return 0
	}
	return rounded
}
