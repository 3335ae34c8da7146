package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/models"
)

func TestReviewCreateFlipsIsReviewed(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, NewContentFilter())

	owner := seedUser(t, db, models.RoleUser)
	app := seedApplication(t, db, owner, models.StatusApproved)

	review, err := svc.Create(owner, &dto.CreateReviewRequest{
		ApplicationID: app.ID,
		Rating:        5,
		Comment:       "Smooth process and quick decision.",
	})
	require.NoError(t, err)
	assert.Equal(t, app.ID, review.ApplicationID)
	assert.Equal(t, owner.ID, review.UserID)

	var stored models.Application
	require.NoError(t, db.First(&stored, "id = ?", app.ID).Error)
	assert.True(t, stored.IsReviewed)
}

func TestReviewCreateDuplicateApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, NewContentFilter())

	owner := seedUser(t, db, models.RoleUser)
	app := seedApplication(t, db, owner, models.StatusRejected)

	// A review row already exists but the flag was never flipped, so the
	// eligibility check alone cannot catch it. The unique index must.
	require.NoError(t, db.Create(&models.Review{
		ID:            uuid.New(),
		ScholarshipID: app.ScholarshipID,
		ApplicationID: app.ID,
		UserID:        owner.ID,
		Rating:        4,
	}).Error)

	_, err := svc.Create(owner, &dto.CreateReviewRequest{
		ApplicationID: app.ID,
		Rating:        3,
		Comment:       "Second attempt.",
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	// The transaction rolled back, so the flag stays untouched.
	var stored models.Application
	require.NoError(t, db.First(&stored, "id = ?", app.ID).Error)
	assert.False(t, stored.IsReviewed)
}

func TestReviewCreateNotEligible(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, NewContentFilter())

	owner := seedUser(t, db, models.RoleUser)
	app := seedApplication(t, db, owner, models.StatusPending)

	_, err := svc.Create(owner, &dto.CreateReviewRequest{
		ApplicationID: app.ID,
		Rating:        5,
		Comment:       "Too early.",
	})
	assert.ErrorIs(t, err, ErrReviewNotEligible)
}

func TestReviewListByUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, NewContentFilter())

	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)

	for _, u := range []*models.User{alice, alice, bob} {
		app := seedApplication(t, db, u, models.StatusApproved)
		_, err := svc.Create(u, &dto.CreateReviewRequest{
			ApplicationID: app.ID,
			Rating:        4,
			Comment:       "Helpful moderators.",
		})
		require.NoError(t, err)
	}

	mine, err := svc.ListByUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, alice.ID, r.UserID)
	}

	theirs, err := svc.ListByUser(bob.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
