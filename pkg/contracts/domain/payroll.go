package domain

// PayrollRecord represents one class session taught by one instructor,
// normalized from a payroll/attendance workbook.
type PayrollRecord struct {
	InstructorName string  `json:"instructor_name"`
	ClassName      string  `json:"class_name,omitempty"`
	ClassDate      string  `json:"class_date"`
	ClassTime      string  `json:"class_time"`
	StaffPaid      float64 `json:"staff_paid"`
	Earnings       float64 `json:"earnings"`
}

// HasClassIdentity reports whether the record carries a class name or date.
// Records without either are placeholder rows and are never emitted.
func (r PayrollRecord) HasClassIdentity() bool {
	return r.ClassName != "" || r.ClassDate != ""
}

// DateRange is the report-level date range, kept exactly as matched in the
// source workbook (no reformatting).
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Raw       string `json:"raw"`
}

// PayrollReport is the full normalized output of one payroll workbook parse.
// DateRange is nil when no range could be detected; that is not an error.
type PayrollReport struct {
	DateRange *DateRange      `json:"date_range,omitempty"`
	Records   []PayrollRecord `json:"payroll_data"`
}
