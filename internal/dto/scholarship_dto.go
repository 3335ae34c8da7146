package dto

import "time"

type CreateScholarshipRequest struct {
	ScholarshipName     string   `json:"scholarshipName"`
	UniversityName      string   `json:"universityName"`
	Country             string   `json:"country"`
	City                string   `json:"city"`
	Rank                int      `json:"rank"`
	SubjectCategory     string   `json:"subjectCategory"`
	ScholarshipCategory string   `json:"scholarshipCategory"`
	Degree              string   `json:"degree"`
	TuitionFee          *float64 `json:"tuitionFee,omitempty"`
	ApplicationFee      *float64 `json:"applicationFee"`
	ServiceCharge       *float64 `json:"serviceCharge"`
	Deadline            string   `json:"deadline"`
	Description         string   `json:"description"`
	Image               string   `json:"image"`
}

// UpdateScholarshipRequest patches individual fields; nil means unchanged.
type UpdateScholarshipRequest struct {
	ScholarshipName     *string  `json:"scholarshipName,omitempty"`
	UniversityName      *string  `json:"universityName,omitempty"`
	Country             *string  `json:"country,omitempty"`
	City                *string  `json:"city,omitempty"`
	Rank                *int     `json:"rank,omitempty"`
	SubjectCategory     *string  `json:"subjectCategory,omitempty"`
	ScholarshipCategory *string  `json:"scholarshipCategory,omitempty"`
	Degree              *string  `json:"degree,omitempty"`
	TuitionFee          *float64 `json:"tuitionFee,omitempty"`
	ApplicationFee      *float64 `json:"applicationFee,omitempty"`
	ServiceCharge       *float64 `json:"serviceCharge,omitempty"`
	Deadline            *string  `json:"deadline,omitempty"`
	Description         *string  `json:"description,omitempty"`
	Image               *string  `json:"image,omitempty"`
}

// ParseDeadline accepts both date-only and RFC3339 deadline values, the two
// formats the dashboard forms send.
func ParseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
