package reportparse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"studiolens/internal/errors"
	"studiolens/pkg/contracts/domain"
)

// dateRangeSearchRows bounds how deep into the first sheet the date-range
// scan looks.
const dateRangeSearchRows = 10

// dateRangePatterns match report-level date ranges in header cells. The
// pair separator may be a hyphen, en dash or em dash with optional
// whitespace. Order matters: first match wins.
var dateRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s*[-–—]\s*(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{4})\s*[-–—]\s*(\d{1,2}-\d{1,2}-\d{4})`),
	regexp.MustCompile(`(\d{4}/\d{1,2}/\d{1,2})\s*[-–—]\s*(\d{4}/\d{1,2}/\d{1,2})`),
	regexp.MustCompile(`(\w+,\s+\w+\s+\d{1,2},\s+\d{4})\s*[-–—]\s*(\w+,\s+\w+\s+\d{1,2},\s+\d{4})`),
	regexp.MustCompile(`([A-Za-z]+,\s*[A-Za-z]+\s+\d+,\s+\d{4})\s*[-–—]\s*([A-Za-z]+,\s*[A-Za-z]+\s+\d+,\s+\d{4})`),
}

// filenameRangePattern is the fallback M-D-YYYY - M-D-YYYY form in uploaded
// filenames.
var filenameRangePattern = regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{4})\s*-\s*(\d{1,2}-\d{1,2}-\d{4})`)

// PayrollParser normalizes payroll/attendance workbooks.
type PayrollParser struct {
	logger *slog.Logger
}

// NewPayrollParser creates a payroll parser. A nil logger falls back to the
// default.
func NewPayrollParser(logger *slog.Logger) *PayrollParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollParser{logger: logger}
}

// Parse reads a payroll workbook and returns the full normalized record
// set plus the report date range. The filename feeds the date-range
// fallback only. Identical input bytes always yield an identical result.
func (p *PayrollParser) Parse(ctx context.Context, r io.Reader, filename string) (*domain.PayrollReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParsingError("Failed to read Excel file", err)
	}
	defer f.Close()

	sheets, err := readAllSheets(f)
	if err != nil {
		return nil, errors.NewParsingError("Failed to read Excel file", err)
	}
	if len(sheets) == 0 || len(sheets[0]) == 0 {
		return nil, errors.NewParsingError("Excel file appears to be empty", nil)
	}

	p.logger.InfoContext(ctx, "payroll workbook loaded",
		slog.Int("sheet_count", len(sheets)),
		slog.Int("first_sheet_rows", len(sheets[0])))

	dateRange := extractDateRange(sheets[0])
	if dateRange == nil {
		dateRange = dateRangeFromFilename(filename)
	}
	if dateRange == nil {
		p.logger.DebugContext(ctx, "no date range found in workbook or filename")
	}

	sections := ResolveSections(sheets)
	p.logger.DebugContext(ctx, "instructor sections resolved",
		slog.Int("assigned_sheets", len(sections)))

	var records []domain.PayrollRecord
	for i, rows := range sheets {
		instructor, ok := sections[i]
		if !ok {
			instructor = fmt.Sprintf("Instructor %d", i+1)
		}
		sheetRecords := parseSheetRows(rows, instructor)
		if len(sheetRecords) > 0 {
			p.logger.DebugContext(ctx, "sheet parsed",
				slog.Int("sheet_index", i),
				slog.String("instructor", instructor),
				slog.Int("records", len(sheetRecords)))
		}
		records = append(records, sheetRecords...)
	}

	if len(records) == 0 {
		return nil, errors.NewParsingError(
			"No valid data rows found in Excel file. Please check that your file has class data with dates and class names.", nil)
	}

	p.logger.InfoContext(ctx, "payroll workbook parsed",
		slog.Int("record_count", len(records)),
		slog.Bool("date_range_found", dateRange != nil))

	return &domain.PayrollReport{
		DateRange: dateRange,
		Records:   records,
	}, nil
}

// readAllSheets reads every sheet's rows in file order with raw cell
// values, so date and time cells arrive as serial numbers rather than
// style-dependent display strings.
func readAllSheets(f *excelize.File) ([][][]string, error) {
	names := f.GetSheetList()
	sheets := make([][][]string, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, rows)
	}
	return sheets, nil
}

// extractDateRange scans the top rows of a sheet for a date-range cell.
// The match is returned exactly as written, no reformatting.
func extractDateRange(rows [][]string) *domain.DateRange {
	limit := len(rows)
	if limit > dateRangeSearchRows {
		limit = dateRangeSearchRows
	}
	for _, row := range rows[:limit] {
		for _, cell := range row {
			cellStr := strings.TrimSpace(cell)
			if cellStr == "" {
				continue
			}
			for _, pattern := range dateRangePatterns {
				if m := pattern.FindStringSubmatch(cellStr); m != nil {
					return &domain.DateRange{
						StartDate: m[1],
						EndDate:   m[2],
						Raw:       cellStr,
					}
				}
			}
		}
	}
	return nil
}

// dateRangeFromFilename recovers the range from names like
// "payroll 1-1-2024 - 1-15-2024.xlsx".
func dateRangeFromFilename(filename string) *domain.DateRange {
	if filename == "" {
		return nil
	}
	m := filenameRangePattern.FindStringSubmatch(filename)
	if m == nil {
		return nil
	}
	return &domain.DateRange{
		StartDate: m[1],
		EndDate:   m[2],
		Raw:       fmt.Sprintf("%s - %s", m[1], m[2]),
	}
}
