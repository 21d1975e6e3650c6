package domain

import (
	"time"
)

// Referral categories produced by referral-type normalization. The set is
// closed: free text that matches no rule maps to ReferralOther.
const (
	ReferralUnassigned     = "Unassigned"
	ReferralClassPass      = "ClassPass"
	ReferralWordOfMouth    = "Word of Mouth"
	ReferralInternetSearch = "Internet Search"
	ReferralSocialMedia    = "Social Media"
	ReferralEvent          = "Event"
	ReferralWalkBy         = "Walk By"
	ReferralPrintMedia     = "Print Media"
	ReferralPartner        = "Partner"
	ReferralInstructor     = "Instructor"
	ReferralOther          = "Other"
)

// FirstVisitRecord represents one client's first visit to the studio.
type FirstVisitRecord struct {
	ClientID               string     `json:"client_id"`
	ClientName             string     `json:"client_name"`
	FirstVisitDate         *time.Time `json:"first_visit_date,omitempty"`
	FirstVisitDateStr      string     `json:"first_visit_date_str,omitempty"`
	VisitLocation          string     `json:"visit_location"`
	ServiceCategory        string     `json:"service_category"`
	VisitType              string     `json:"visit_type"`
	PricingOption          string     `json:"pricing_option"`
	BookingMethod          string     `json:"booking_method"`
	ReferralType           string     `json:"referral_type"`
	ReferralTypeNormalized string     `json:"referral_type_normalized"`
	Staff                  string     `json:"staff"`
	VisitsSinceFirst       float64    `json:"visits_since_first"`
	Phone                  string     `json:"phone"`
	Email                  string     `json:"email"`
}

// VisitSpan is the min/max span of valid first-visit dates in one report.
type VisitSpan struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FirstVisitReport is the normalized output of one first-visit report parse.
// The distinct-value lists are sorted, de-duplicated and non-empty; they feed
// external filter collaborators.
type FirstVisitReport struct {
	Records           []FirstVisitRecord `json:"first_visit_data"`
	DateRange         *VisitSpan         `json:"date_range,omitempty"`
	ServiceCategories []string           `json:"service_categories"`
	StaffList         []string           `json:"staff_list"`
	ReferralTypes     []string           `json:"referral_types"`
}
