package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ApplicationStatus enumerates the lifecycle states of an application.
type ApplicationStatus string

const (
	StatusPending    ApplicationStatus = "pending"
	StatusProcessing ApplicationStatus = "processing"
	StatusApproved   ApplicationStatus = "approved"
	StatusRejected   ApplicationStatus = "rejected"
	StatusCancelled  ApplicationStatus = "cancelled"
)

// transitions holds the permitted lifecycle edges. Approved, rejected and
// cancelled are terminal.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:    {StatusProcessing, StatusApproved, StatusRejected, StatusCancelled},
	StatusProcessing: {StatusPending, StatusApproved, StatusRejected},
}

// ValidStatus reports whether s is one of the enumerated lifecycle states.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another. Terminal states permit nothing.
func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s accepts no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return len(transitions[s]) == 0 && ValidStatus(s)
}

// Address is the applicant's postal address, stored as JSONB.
type Address struct {
	Village  string `json:"village"`
	District string `json:"district"`
	Country  string `json:"country"`
}

// Payment is the fee breakdown captured at submission, stored as JSONB.
type Payment struct {
	ApplicationFee  float64   `json:"applicationFee"`
	ServiceCharge   float64   `json:"serviceCharge"`
	TotalPaid       float64   `json:"totalPaid"`
	PaidAt          time.Time `json:"paidAt"`
	PaymentIntentID string    `json:"paymentIntentId"`
	PaymentStatus   string    `json:"paymentStatus"`
}

// Application is a student's submission against a scholarship. Scholarship
// attributes are denormalized at submission time so the record survives
// scholarship edits.
type Application struct {
	ID                  uuid.UUID                       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ScholarshipID       uuid.UUID                       `gorm:"type:uuid;not null;index" json:"scholarshipId"`
	ScholarshipName     string                          `gorm:"size:255" json:"scholarshipName"`
	UniversityName      string                          `gorm:"size:255" json:"universityName"`
	SubjectCategory     string                          `gorm:"size:100" json:"subjectCategory"`
	ScholarshipCategory string                          `gorm:"size:100" json:"scholarshipCategory"`
	UserID              uuid.UUID                       `gorm:"type:uuid;not null;index" json:"userId"`
	UserName            string                          `gorm:"size:255" json:"userName"`
	UserEmail           string                          `gorm:"size:255" json:"userEmail"`
	PhoneNumber         string                          `gorm:"size:30" json:"phoneNumber"`
	Gender              string                          `gorm:"size:20" json:"gender"`
	Address             datatypes.JSONType[Address]     `gorm:"type:jsonb" json:"address"`
	ApplyingDegree      string                          `gorm:"size:50" json:"applyingDegree"`
	SSCResult           float64                         `json:"sscResult"`
	HSCResult           float64                         `json:"hscResult"`
	StudyGap            *string                         `gorm:"size:50" json:"studyGap"`
	Photo               string                          `gorm:"size:512" json:"photo"`
	Status              ApplicationStatus               `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Feedback            string                          `gorm:"type:text" json:"feedback"`
	Payment             datatypes.JSONType[Payment]     `gorm:"type:jsonb" json:"payment"`
	IsReviewed          bool                            `gorm:"default:false" json:"isReviewed"`
	AppliedDate         time.Time                       `json:"appliedDate"`
	CreatedAt           time.Time                       `json:"createdAt"`
	UpdatedAt           time.Time                       `json:"updatedAt"`
}

// Editable reports whether the owner may still edit or cancel.
func (a *Application) Editable() bool {
	return a.Status == StatusPending
}

// ReviewEligible reports whether the owner may leave a review: a decision
// has been made and no review exists yet.
func (a *Application) ReviewEligible() bool {
	return (a.Status == StatusApproved || a.Status == StatusRejected) && !a.IsReviewed
}

// FeedbackAllowed reports whether a moderator may still send feedback.
// Feedback moves the application into processing, so it is only permitted
// while the lifecycle can still reach that state.
func (a *Application) FeedbackAllowed() bool {
	return a.Status == StatusProcessing || CanTransition(a.Status, StatusProcessing)
}
