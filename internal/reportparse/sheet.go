package reportparse

import (
	"strings"

	"studiolens/pkg/contracts/domain"
)

// instructorLookback is how many rows above a header row to search for an
// instructor-name row when no instructor context is set yet.
const instructorLookback = 5

// scanState is the mutable context threaded through one sheet's row walk.
type scanState struct {
	instructor string
	mapping    ColumnMapping
}

// parseSheetRows walks one sheet's rows in order, maintaining the current
// instructor and column mapping, and emits normalized records. Rows seen
// before any header/instructor context is established are dropped silently.
func parseSheetRows(rows [][]string, seedInstructor string) []domain.PayrollRecord {
	var records []domain.PayrollRecord
	state := scanState{instructor: seedInstructor}

	for i, row := range rows {
		switch ClassifyRow(row) {
		case RowEmpty:
			continue

		case RowTotal:
			// Already consumed by section resolution.
			continue

		case RowInstructorName:
			if name, ok := InstructorNameFromRow(row); ok {
				state.instructor = name
			}

		case RowHeader:
			state.mapping = MapHeaders(row)
			if state.instructor == "" {
				state.instructor = findInstructorAbove(rows, i)
			}

		case RowData:
			if state.mapping == nil || state.instructor == "" {
				continue
			}
			rec := buildRecord(row, state.mapping, state.instructor)
			if rec.HasClassIdentity() {
				records = append(records, rec)
			}
		}
	}

	return records
}

// findInstructorAbove searches up to instructorLookback rows above index i
// for an instructor-name row.
func findInstructorAbove(rows [][]string, i int) string {
	start := i - instructorLookback
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		if name, ok := InstructorNameFromRow(rows[j]); ok {
			return name
		}
	}
	return ""
}

// buildRecord extracts one record from a data row using the current column
// mapping. Every field coercion is total; missing or malformed cells default
// rather than fail.
func buildRecord(row []string, mapping ColumnMapping, instructor string) domain.PayrollRecord {
	rec := domain.PayrollRecord{InstructorName: instructor}

	if cell, ok := cellAt(row, mapping, FieldClassName); ok {
		rec.ClassName = strings.TrimSpace(cell)
	}
	if cell, ok := cellAt(row, mapping, FieldClassDate); ok {
		rec.ClassDate = ExcelDateString(cell)
	}
	if cell, ok := cellAt(row, mapping, FieldClassTime); ok {
		rec.ClassTime = ExcelTimeString(cell)
	}
	if cell, ok := cellAt(row, mapping, FieldStaffPaid); ok {
		rec.StaffPaid = ParseNumber(cell)
	}
	if cell, ok := cellAt(row, mapping, FieldEarnings); ok {
		rec.Earnings = ParseCurrency(cell)
	}

	// A zero earnings column with base and bonus columns mapped means the
	// report splits pay; recompute from the parts.
	if rec.Earnings == 0 {
		baseCell, baseMapped := cellAt(row, mapping, FieldBasePay)
		bonusCell, bonusMapped := cellAt(row, mapping, FieldBonusPay)
		if baseMapped && bonusMapped {
			rec.Earnings = ParseNumber(baseCell) + ParseNumber(bonusCell)
		}
	}

	return rec
}
