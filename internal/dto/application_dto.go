package dto

import "github.com/google/uuid"

type AddressPayload struct {
	Village  string `json:"village"`
	District string `json:"district"`
	Country  string `json:"country"`
}

type SubmitApplicationRequest struct {
	ScholarshipID   uuid.UUID      `json:"scholarshipId"`
	PhoneNumber     string         `json:"phoneNumber"`
	Gender          string         `json:"gender"`
	Address         AddressPayload `json:"address"`
	ApplyingDegree  string         `json:"applyingDegree"`
	SSCResult       float64        `json:"sscResult"`
	HSCResult       float64        `json:"hscResult"`
	StudyGap        *string        `json:"studyGap,omitempty"`
	Photo           string         `json:"photo"`
	PaymentIntentID string         `json:"paymentIntentId"`
}

// UpdateApplicationRequest patches owner-editable fields while pending.
type UpdateApplicationRequest struct {
	PhoneNumber    *string         `json:"phoneNumber,omitempty"`
	Gender         *string         `json:"gender,omitempty"`
	Address        *AddressPayload `json:"address,omitempty"`
	ApplyingDegree *string         `json:"applyingDegree,omitempty"`
	SSCResult      *float64        `json:"sscResult,omitempty"`
	HSCResult      *float64        `json:"hscResult,omitempty"`
	StudyGap       *string         `json:"studyGap,omitempty"`
	Photo          *string         `json:"photo,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}
