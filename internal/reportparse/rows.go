package reportparse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// RowClass is the semantic type of one raw row, inferred heuristically.
type RowClass int

const (
	RowEmpty RowClass = iota
	RowTotal
	RowInstructorName
	RowHeader
	RowData
)

// Canonical field names used by ColumnMapping.
const (
	FieldClassName = "className"
	FieldClassDate = "classDate"
	FieldClassTime = "classTime"
	FieldStaffPaid = "staffPaid"
	FieldEarnings  = "earnings"
	FieldBasePay   = "basePay"
	FieldBonusPay  = "bonusPay"
)

// ColumnMapping maps canonical field names to zero-based column indexes.
// It is rebuilt whenever a header row is encountered and persists across
// the data rows that follow.
type ColumnMapping map[string]int

// totalMarker flags summary rows that close an instructor section.
const totalMarker = "Total for"

var totalPattern = regexp.MustCompile(`(?i)Total for\s+(.+)`)

// ClassifyRow assigns a semantic type to a raw row. Checks run in priority
// order; a row that matches nothing is a data row candidate.
func ClassifyRow(row []string) RowClass {
	switch {
	case isEmptyRow(row):
		return RowEmpty
	case isTotalRow(row):
		return RowTotal
	case isInstructorNameRow(row):
		return RowInstructorName
	case isHeaderRow(row):
		return RowHeader
	default:
		return RowData
	}
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func isTotalRow(row []string) bool {
	return len(row) > 0 && strings.Contains(row[0], totalMarker)
}

// InstructorFromTotal extracts the instructor name from a "Total for X"
// row, or "" when the row is not one.
func InstructorFromTotal(row []string) string {
	if len(row) == 0 {
		return ""
	}
	m := totalPattern.FindStringSubmatch(row[0])
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// isInstructorNameRow reports whether the row is a lone "Last, First" cell
// separating payroll sections. The exclusion list keeps stray label and
// separator rows out.
func isInstructorNameRow(row []string) bool {
	text, ok := loneCell(row)
	if !ok {
		return false
	}
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	n := utf8.RuneCountInString(text)

	return strings.Contains(text, ",") &&
		n > 3 && n < 100 &&
		!strings.Contains(lower, "pay rate") &&
		!strings.Contains(text, "–") &&
		!strings.Contains(text, "—") &&
		!strings.Contains(lower, "class/") &&
		!strings.Contains(lower, "date")
}

// InstructorNameFromRow extracts the trimmed name from an instructor-name
// row. The second return is false when the row is not one.
func InstructorNameFromRow(row []string) (string, bool) {
	if !isInstructorNameRow(row) {
		return "", false
	}
	text, _ := loneCell(row)
	return strings.TrimSpace(text), true
}

// loneCell returns the single non-empty cell of a row, if there is exactly
// one.
func loneCell(row []string) (string, bool) {
	var text string
	count := 0
	for _, cell := range row {
		if cell != "" {
			text = cell
			count++
		}
	}
	return text, count == 1
}

// isHeaderRow requires at least 3 cells and, case-insensitively, a date
// cell, an earning/pay cell, and a class/name cell. All three must be
// present; a row mentioning only dates is not a header.
func isHeaderRow(row []string) bool {
	if len(row) < 3 {
		return false
	}
	var hasDate, hasEarnings, hasClass bool
	for _, cell := range row {
		lower := strings.ToLower(strings.TrimSpace(cell))
		if lower == "" {
			continue
		}
		if strings.Contains(lower, "date") {
			hasDate = true
		}
		if strings.Contains(lower, "earning") || strings.Contains(lower, "pay") {
			hasEarnings = true
		}
		if strings.Contains(lower, "class") || strings.Contains(lower, "name") {
			hasClass = true
		}
	}
	return hasDate && hasEarnings && hasClass
}

// MapHeaders builds the column mapping from a header row. Each cell is
// tested against mutually-exclusive substring rules; the first matching rule
// claims the column. Fields missing from the header stay unmapped.
func MapHeaders(row []string) ColumnMapping {
	mapping := make(ColumnMapping)
	for idx, cell := range row {
		header := strings.ToLower(strings.TrimSpace(cell))
		if header == "" {
			continue
		}
		switch {
		case strings.Contains(header, "class") && strings.Contains(header, "name"):
			mapping[FieldClassName] = idx
		case strings.Contains(header, "class") && strings.Contains(header, "date"):
			mapping[FieldClassDate] = idx
		case strings.Contains(header, "class") && strings.Contains(header, "time"):
			mapping[FieldClassTime] = idx
		case (strings.Contains(header, "staff") && strings.Contains(header, "paid") &&
			!strings.Contains(header, "unpaid")) || header == "# staff paid":
			mapping[FieldStaffPaid] = idx
		case strings.Contains(header, "earning"):
			mapping[FieldEarnings] = idx
		case strings.Contains(header, "base") && strings.Contains(header, "pay"):
			mapping[FieldBasePay] = idx
		case strings.Contains(header, "bonus") && strings.Contains(header, "pay"):
			mapping[FieldBonusPay] = idx
		}
	}
	return mapping
}

// cellAt safely reads a mapped column from a row, returning "" for
// unmapped fields and short rows.
func cellAt(row []string, mapping ColumnMapping, field string) (string, bool) {
	idx, ok := mapping[field]
	if !ok || idx >= len(row) {
		return "", ok
	}
	return row[idx], true
}
