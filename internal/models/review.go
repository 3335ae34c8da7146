package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a student's rating of a scholarship after a decision. The
// unique index on ApplicationID enforces at most one review per application.
type Review struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ScholarshipID   uuid.UUID `gorm:"type:uuid;not null;index" json:"scholarshipId"`
	ApplicationID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"applicationId"`
	ScholarshipName string    `gorm:"size:255" json:"scholarshipName"`
	UniversityName  string    `gorm:"size:255;index" json:"universityName"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	UserName        string    `gorm:"size:255" json:"userName"`
	UserImage       string    `gorm:"size:512" json:"userImage"`
	Rating          int       `gorm:"not null" json:"rating"`
	Comment         string    `gorm:"type:text" json:"comment"`
	ReviewDate      time.Time `json:"reviewDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
