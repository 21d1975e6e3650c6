package reportparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// excelEpochOffset is the day count between the Excel epoch (1899-12-30)
// and the Unix epoch (1970-01-01).
const excelEpochOffset = 25569

// clockPattern matches 12-hour clock strings like "9:30 AM" or "12pm".
var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{1,2}))?\s*(am|pm)$`)

// serialToTime converts an Excel date serial to a calendar timestamp in UTC.
func serialToTime(serial float64) time.Time {
	secs := (serial - excelEpochOffset) * 86400
	return time.Unix(int64(secs), 0).UTC()
}

// ExcelDateString converts a raw date cell to a readable date string.
// Numeric cells are treated as Excel serials; anything else passes through
// unchanged. Empty or zero input yields "".
func ExcelDateString(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return cell
	}
	if serial == 0 || math.IsNaN(serial) {
		return ""
	}
	return serialToTime(serial).Format("1/2/2006")
}

// ExcelTimeString converts a raw time cell to HH:MM. Numeric values in
// [0, 1) are Excel day fractions; other values pass through trimmed, with
// 12-hour clock strings normalized to 24-hour form.
func ExcelTimeString(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 && v < 1 {
		hours := int(v * 24)
		minutes := int(math.Round((v*24 - float64(hours)) * 60))
		return fmt.Sprintf("%02d:%02d", hours, minutes)
	}
	return normalizeClockString(s)
}

// normalizeClockString converts "H:MM AM/PM" strings to 24-hour "HH:MM".
// 12 AM maps to hour 0, 12 PM stays 12, other PM hours gain 12. Strings
// that are not 12-hour clock forms are returned as-is.
func normalizeClockString(s string) string {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil || hours > 12 {
		return s
	}
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	isPM := strings.EqualFold(m[3], "pm")
	if hours == 12 && !isPM {
		hours = 0
	} else if isPM && hours != 12 {
		hours += 12
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// ParseCurrency converts a currency cell to a float amount in base units.
// Dollar signs, commas and whitespace are stripped before parsing; anything
// that still fails to parse coerces to 0.
func ParseCurrency(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '$' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

// ParseNumber converts a numeric cell to a float, defaulting to 0.
func ParseNumber(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}
