package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/scholarhub/scholarhub-backend/internal/dto"
)

func validSubmission() *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		ScholarshipID:   uuid.New(),
		PhoneNumber:     "+880 1712-345678",
		Gender:          "female",
		ApplyingDegree:  "Masters",
		SSCResult:       4.8,
		HSCResult:       5.0,
		Photo:           "https://res.cloudinary.com/demo/image/upload/photo.jpg",
		PaymentIntentID: "pi_123",
	}
}

func TestValidateSubmission(t *testing.T) {
	assert.NoError(t, ValidateSubmission(validSubmission()))
}

func TestValidateSubmissionRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.SubmitApplicationRequest)
	}{
		{"missing scholarship", func(r *dto.SubmitApplicationRequest) { r.ScholarshipID = uuid.Nil }},
		{"missing phone", func(r *dto.SubmitApplicationRequest) { r.PhoneNumber = "" }},
		{"phone with letters", func(r *dto.SubmitApplicationRequest) { r.PhoneNumber = "call me" }},
		{"missing gender", func(r *dto.SubmitApplicationRequest) { r.Gender = "" }},
		{"missing degree", func(r *dto.SubmitApplicationRequest) { r.ApplyingDegree = "" }},
		{"ssc below range", func(r *dto.SubmitApplicationRequest) { r.SSCResult = -0.1 }},
		{"ssc above range", func(r *dto.SubmitApplicationRequest) { r.SSCResult = 5.1 }},
		{"hsc above range", func(r *dto.SubmitApplicationRequest) { r.HSCResult = 6 }},
		{"missing photo", func(r *dto.SubmitApplicationRequest) { r.Photo = "" }},
		{"missing payment intent", func(r *dto.SubmitApplicationRequest) { r.PaymentIntentID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmission()
			tt.mutate(req)
			assert.Error(t, ValidateSubmission(req))
		})
	}
}

func TestValidRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		assert.True(t, ValidRating(r), "rating %d", r)
	}
	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}
