package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/scholarhub/scholarhub-backend/internal/cache"
	"github.com/scholarhub/scholarhub-backend/internal/models"
)

// stubVerifier returns a canned intent and records refund calls.
type stubVerifier struct {
	intent  *PaymentIntent
	refunds []string
}

func (v *stubVerifier) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	return v.intent, nil
}

func (v *stubVerifier) Refund(ctx context.Context, intentID string) error {
	v.refunds = append(v.refunds, intentID)
	return nil
}

// noopAnalytics points at a closed port with a short dial timeout, so
// invalidation falls through the warn path without slowing the test.
func noopAnalytics() *cache.AnalyticsCache {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
	return cache.NewAnalyticsCache(client, time.Minute)
}

func seedScholarship(t *testing.T, db *gorm.DB) *models.Scholarship {
	t.Helper()
	sch := &models.Scholarship{
		ID:                  uuid.New(),
		ScholarshipName:     "Global Excellence Grant",
		UniversityName:      "Test University",
		Country:             "Canada",
		City:                "Toronto",
		Rank:                12,
		SubjectCategory:     "Engineering",
		ScholarshipCategory: "Partial fund",
		Degree:              "Masters",
		ApplicationFee:      40,
		ServiceCharge:       10,
		Deadline:            time.Now().Add(30 * 24 * time.Hour),
		PostDate:            time.Now(),
	}
	require.NoError(t, db.Create(sch).Error)
	return sch
}

func TestSubmitPersistsApplication(t *testing.T) {
	db := newTestDB(t)
	sch := seedScholarship(t, db)
	applicant := seedUser(t, db, models.RoleUser)

	verifier := &stubVerifier{intent: &PaymentIntent{
		ID:     "pi_submit_ok",
		Amount: AmountToCents(sch.TotalCharge()),
		Status: "succeeded",
	}}
	svc := NewApplicationService(db, verifier, noopAnalytics())

	req := validSubmission()
	req.ScholarshipID = sch.ID
	req.PaymentIntentID = "pi_submit_ok"

	app, err := svc.Submit(context.Background(), applicant, req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, sch.ScholarshipName, app.ScholarshipName)
	assert.Equal(t, "succeeded", app.Payment.Data().PaymentStatus)
	assert.Empty(t, verifier.refunds)
}

func TestSubmitRejectsConsumedIntent(t *testing.T) {
	db := newTestDB(t)
	sch := seedScholarship(t, db)
	applicant := seedUser(t, db, models.RoleUser)

	verifier := &stubVerifier{intent: &PaymentIntent{
		ID:     "pi_reused",
		Amount: AmountToCents(sch.TotalCharge()),
		Status: "succeeded",
	}}
	svc := NewApplicationService(db, verifier, noopAnalytics())

	req := validSubmission()
	req.ScholarshipID = sch.ID
	req.PaymentIntentID = "pi_reused"

	_, err := svc.Submit(context.Background(), applicant, req)
	require.NoError(t, err)

	// Replaying the same intent for a second application must fail
	// before any processor call, and nothing new is persisted.
	_, err = svc.Submit(context.Background(), applicant, req)
	assert.ErrorIs(t, err, ErrPaymentAlreadyUsed)

	var count int64
	require.NoError(t, db.Model(&models.Application{}).
		Where("payment ->> 'paymentIntentId' = ?", "pi_reused").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitRejectsAmountMismatch(t *testing.T) {
	db := newTestDB(t)
	sch := seedScholarship(t, db)
	applicant := seedUser(t, db, models.RoleUser)

	verifier := &stubVerifier{intent: &PaymentIntent{
		ID:     "pi_short",
		Amount: AmountToCents(sch.TotalCharge()) - 1,
		Status: "succeeded",
	}}
	svc := NewApplicationService(db, verifier, noopAnalytics())

	req := validSubmission()
	req.ScholarshipID = sch.ID
	req.PaymentIntentID = "pi_short"

	_, err := svc.Submit(context.Background(), applicant, req)
	assert.ErrorIs(t, err, ErrPaymentMismatch)
}
