package reportparse

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"studiolens/internal/errors"
	"studiolens/pkg/contracts/domain"
)

// firstVisitParseFailed is shown verbatim to users on structural failure.
const firstVisitParseFailed = "Failed to parse First Visit Report. Please ensure the file format is correct."

// Source column headers of the first-visit report. The first row is the
// header row by convention; there are no section or layout heuristics.
const (
	colClientID        = "Client ID"
	colClient          = "Client"
	colFirstVisit      = "First Visit"
	colVisitLocation   = "Visit Location"
	colServiceCategory = "Service Category"
	colVisitType       = "Visit Type"
	colPricingOption   = "Pricing Option"
	colBookingMethod   = "Booking Method"
	colReferralType    = "Referral Type"
	colStaff           = "Staff"
	colVisitsSince     = "# Visits since First Visit"
	colPhone           = "Phone"
	colEmail           = "Email"
)

// referralRule maps free-text referral keywords to a normalized category.
type referralRule struct {
	keywords []string
	category string
}

// referralRules run in order; the first rule with a matching keyword wins.
// The keyword lists come from the source booking system's free-text values.
var referralRules = []referralRule{
	{[]string{"classpass", "class pass"}, domain.ReferralClassPass},
	{[]string{"another client", "friend", "sister", "work...random"}, domain.ReferralWordOfMouth},
	{[]string{"internet search", "google"}, domain.ReferralInternetSearch},
	{[]string{"instagram", "facebook", "social media"}, domain.ReferralSocialMedia},
	{[]string{"event", "bend fashion", "bend pride", "dustin riley", "dusty"}, domain.ReferralEvent},
	{[]string{"walk by", "walk-by"}, domain.ReferralWalkBy},
	{[]string{"newspaper", "magazine", "source weekly", "bend bulletin"}, domain.ReferralPrintMedia},
	{[]string{"tumalo", "bend vacations"}, domain.ReferralPartner},
	{[]string{"instructor"}, domain.ReferralInstructor},
}

// NormalizeReferralType classifies free-text referral values into the fixed
// category set. Empty and "Unassigned" stay Unassigned; unmatched non-empty
// text falls through to Other.
func NormalizeReferralType(referral string) string {
	if referral == "" || referral == domain.ReferralUnassigned {
		return domain.ReferralUnassigned
	}
	lower := strings.ToLower(referral)
	for _, rule := range referralRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return domain.ReferralOther
}

// FirstVisitParser normalizes first-visit client reports.
type FirstVisitParser struct {
	logger *slog.Logger
}

// NewFirstVisitParser creates a first-visit parser. A nil logger falls back
// to the default.
func NewFirstVisitParser(logger *slog.Logger) *FirstVisitParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &FirstVisitParser{logger: logger}
}

// Parse reads a first-visit report: one spreadsheet row per client record.
// Rows without a client ID are dropped. A well-formed file with zero client
// rows is an empty report, not an error.
func (p *FirstVisitParser) Parse(ctx context.Context, r io.Reader) (*domain.FirstVisitReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParsingError(firstVisitParseFailed, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, errors.NewParsingError(firstVisitParseFailed, nil)
	}
	rows, err := f.GetRows(names[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.NewParsingError(firstVisitParseFailed, err)
	}

	report := &domain.FirstVisitReport{
		Records:           []domain.FirstVisitRecord{},
		ServiceCategories: []string{},
		StaffList:         []string{},
		ReferralTypes:     []string{},
	}
	if len(rows) < 2 {
		p.logger.InfoContext(ctx, "first-visit report has no data rows")
		return report, nil
	}

	columns := indexHeaders(rows[0])
	for _, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		clientID := strings.TrimSpace(cell(colClientID))
		if clientID == "" {
			continue
		}

		referral := strings.TrimSpace(cell(colReferralType))
		rec := domain.FirstVisitRecord{
			ClientID:               clientID,
			ClientName:             strings.TrimSpace(cell(colClient)),
			VisitLocation:          strings.TrimSpace(cell(colVisitLocation)),
			ServiceCategory:        strings.TrimSpace(cell(colServiceCategory)),
			VisitType:              strings.TrimSpace(cell(colVisitType)),
			PricingOption:          strings.TrimSpace(cell(colPricingOption)),
			BookingMethod:          strings.TrimSpace(cell(colBookingMethod)),
			ReferralType:           referral,
			ReferralTypeNormalized: NormalizeReferralType(referral),
			Staff:                  strings.TrimSpace(cell(colStaff)),
			VisitsSinceFirst:       ParseNumber(cell(colVisitsSince)),
			Phone:                  strings.TrimSpace(cell(colPhone)),
			Email:                  strings.TrimSpace(cell(colEmail)),
		}

		if date, ok := serialToDate(cell(colFirstVisit)); ok {
			rec.FirstVisitDate = &date
			rec.FirstVisitDateStr = date.Format("2006-01-02")
		}

		report.Records = append(report.Records, rec)
	}

	report.DateRange = visitSpan(report.Records)
	report.ServiceCategories = distinctSorted(report.Records, func(r domain.FirstVisitRecord) string { return r.ServiceCategory })
	report.StaffList = distinctSorted(report.Records, func(r domain.FirstVisitRecord) string { return r.Staff })
	report.ReferralTypes = distinctSorted(report.Records, func(r domain.FirstVisitRecord) string { return r.ReferralTypeNormalized })

	p.logger.InfoContext(ctx, "first-visit report parsed",
		slog.Int("record_count", len(report.Records)),
		slog.Int("service_categories", len(report.ServiceCategories)),
		slog.Int("staff", len(report.StaffList)))

	return report, nil
}

// indexHeaders maps trimmed header texts to their column index.
func indexHeaders(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for idx, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		if _, exists := columns[name]; !exists {
			columns[name] = idx
		}
	}
	return columns
}

// serialToDate converts a numeric first-visit cell to a calendar date. The
// date is derived from the whole day count alone, so the result never
// shifts across timezones. Non-numeric cells yield no date.
func serialToDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial == 0 || math.IsNaN(serial) {
		return time.Time{}, false
	}
	days := int64(math.Floor(serial)) - excelEpochOffset
	return time.Unix(days*86400, 0).UTC(), true
}

// visitSpan returns the min/max of valid first-visit dates, or nil when
// none exist.
func visitSpan(records []domain.FirstVisitRecord) *domain.VisitSpan {
	var span *domain.VisitSpan
	for _, rec := range records {
		if rec.FirstVisitDate == nil {
			continue
		}
		d := *rec.FirstVisitDate
		if span == nil {
			span = &domain.VisitSpan{Start: d, End: d}
			continue
		}
		if d.Before(span.Start) {
			span.Start = d
		}
		if d.After(span.End) {
			span.End = d
		}
	}
	return span
}

// distinctSorted collects the sorted set of non-empty values of one field.
func distinctSorted(records []domain.FirstVisitRecord, field func(domain.FirstVisitRecord) string) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if v := field(rec); v != "" {
			seen[v] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
