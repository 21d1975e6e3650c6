package reportparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want RowClass
	}{
		{"nil row", nil, RowEmpty},
		{"all blank", []string{"", "", ""}, RowEmpty},
		{"total row", []string{"Total for Smith, Jane"}, RowTotal},
		{"instructor row", []string{"Smith, Jane"}, RowInstructorName},
		{"instructor with padding cells", []string{"", "Nguyen, Kim", ""}, RowInstructorName},
		{"header row", []string{"Class Name", "Class Date", "Total Earnings"}, RowHeader},
		{"data row", []string{"Vinyasa Flow", "44197", "$45.00"}, RowData},
		{"lone cell without comma", []string{"Schedule"}, RowData},
		{"comma cell with date keyword", []string{"Class/Date, Earnings"}, RowData},
		{"comma cell with en dash", []string{"Smith, Jane – Sub"}, RowData},
		{"pay rate label", []string{"Pay Rate, hourly"}, RowData},
		{"too short for name", []string{"a,b"}, RowData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRow(tt.row))
		})
	}
}

func TestClassifyRowTwoCells(t *testing.T) {
	// Two non-empty cells cannot be an instructor row, and two cells cannot
	// be a header; it falls through to data.
	assert.Equal(t, RowData, ClassifyRow([]string{"Smith, Jane", "note"}))
}

func TestInstructorFromTotal(t *testing.T) {
	assert.Equal(t, "Smith, Jane", InstructorFromTotal([]string{"Total for Smith, Jane"}))
	assert.Equal(t, "Smith, Jane", InstructorFromTotal([]string{"Total for   Smith, Jane  "}))
	assert.Equal(t, "", InstructorFromTotal([]string{"Vinyasa Flow"}))
	assert.Equal(t, "", InstructorFromTotal(nil))
}

func TestInstructorNameFromRow(t *testing.T) {
	name, ok := InstructorNameFromRow([]string{"", "Garcia, Luis", ""})
	assert.True(t, ok)
	assert.Equal(t, "Garcia, Luis", name)

	_, ok = InstructorNameFromRow([]string{"Garcia, Luis", "Smith, Jane"})
	assert.False(t, ok)
}

func TestIsHeaderRowRequiresAllThreeGroups(t *testing.T) {
	// A row mentioning only dates is not a header.
	assert.NotEqual(t, RowHeader, ClassifyRow([]string{"Date", "Start Date", "End Date"}))
	// Earning + class without date is not a header either.
	assert.NotEqual(t, RowHeader, ClassifyRow([]string{"Class Name", "Earnings", "Notes"}))
	// All three groups present.
	assert.Equal(t, RowHeader, ClassifyRow([]string{"Name", "Date", "Pay"}))
}

func TestMapHeaders(t *testing.T) {
	mapping := MapHeaders([]string{"Class Name", "Class Date", "# Staff Paid", "Total Earnings"})
	assert.Equal(t, ColumnMapping{
		FieldClassName: 0,
		FieldClassDate: 1,
		FieldStaffPaid: 2,
		FieldEarnings:  3,
	}, mapping)
}

func TestMapHeadersBaseAndBonus(t *testing.T) {
	mapping := MapHeaders([]string{"Class Name", "Class Date", "Class Time", "Base Pay", "Bonus Pay"})
	assert.Equal(t, ColumnMapping{
		FieldClassName: 0,
		FieldClassDate: 1,
		FieldClassTime: 2,
		FieldBasePay:   3,
		FieldBonusPay:  4,
	}, mapping)
}

func TestMapHeadersSkipsUnpaidAndUnknown(t *testing.T) {
	mapping := MapHeaders([]string{"Staff Unpaid", "Location", "", "Class Date"})
	assert.Equal(t, ColumnMapping{FieldClassDate: 3}, mapping)
}
