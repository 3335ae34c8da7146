package dto

import "github.com/google/uuid"

type CreateReviewRequest struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}
