package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scholarship is a posting students can apply to. Application fee and
// service charge are required non-negative amounts; tuition fee is optional.
type Scholarship struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ScholarshipName     string         `gorm:"not null;size:255" json:"scholarshipName"`
	UniversityName      string         `gorm:"not null;size:255;index" json:"universityName"`
	Country             string         `gorm:"size:100" json:"country"`
	City                string         `gorm:"size:100" json:"city"`
	Rank                int            `json:"rank"`
	SubjectCategory     string         `gorm:"size:100;index" json:"subjectCategory"`
	ScholarshipCategory string         `gorm:"size:100;index" json:"scholarshipCategory"`
	Degree              string         `gorm:"size:50" json:"degree"`
	TuitionFee          *float64       `json:"tuitionFee,omitempty"`
	ApplicationFee      float64        `gorm:"not null" json:"applicationFee"`
	ServiceCharge       float64        `gorm:"not null" json:"serviceCharge"`
	Deadline            time.Time      `json:"deadline"`
	Description         string         `gorm:"type:text" json:"description"`
	Image               string         `gorm:"size:512" json:"image"`
	PostedBy            uuid.UUID      `gorm:"type:uuid;index" json:"postedBy"`
	PostDate            time.Time      `json:"postDate"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// TotalCharge is the amount an applicant pays at submission.
func (s *Scholarship) TotalCharge() float64 {
	return s.ApplicationFee + s.ServiceCharge
}
