package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scholarhub/scholarhub-backend/internal/database"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewNotEligible  = errors.New("a review requires a decided, unreviewed application")
	ErrAlreadyReviewed    = errors.New("this application already has a review")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrReviewNotPermitted = errors.New("not permitted to modify this review")
)

type ReviewService struct {
	db     *gorm.DB
	filter *ContentFilter
}

func NewReviewService(db *gorm.DB, filter *ContentFilter) *ReviewService {
	return &ReviewService{db: db, filter: filter}
}

// ValidRating reports whether rating lies in [1,5].
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// Create stores a review for a decided application and flips its
// isReviewed flag in the same transaction, so the two writes cannot
// diverge. The unique index on application_id backs this up under races.
func (s *ReviewService) Create(reviewer *models.User, req *dto.CreateReviewRequest) (*models.Review, error) {
	if !ValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}
	if err := s.filter.ScreenComment(req.Comment); err != nil {
		return nil, err
	}

	var app models.Application
	if err := s.db.First(&app, "id = ?", req.ApplicationID).Error; err != nil {
		return nil, ErrApplicationNotFound
	}
	if app.UserID != reviewer.ID {
		return nil, ErrNotOwner
	}
	if !app.ReviewEligible() {
		if app.IsReviewed {
			return nil, ErrAlreadyReviewed
		}
		return nil, ErrReviewNotEligible
	}

	review := models.Review{
		ID:              uuid.New(),
		ScholarshipID:   app.ScholarshipID,
		ApplicationID:   app.ID,
		ScholarshipName: app.ScholarshipName,
		UniversityName:  app.UniversityName,
		UserID:          reviewer.ID,
		UserName:        reviewer.Name,
		UserImage:       reviewer.PhotoURL,
		Rating:          req.Rating,
		Comment:         req.Comment,
		ReviewDate:      time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Application{}).
			Where("id = ?", app.ID).
			Update("is_reviewed", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	return &review, nil
}

func (s *ReviewService) ListAll() ([]models.Review, error) {
	var list []models.Review
	err := s.db.Order("review_date DESC").Find(&list).Error
	return list, err
}

// ListByUser returns a reviewer's own reviews, newest first. Backs the
// my-reviews dashboard view.
func (s *ReviewService) ListByUser(userID uuid.UUID) ([]models.Review, error) {
	var list []models.Review
	err := s.db.Scopes(database.ForOwner(userID)).
		Order("review_date DESC").Find(&list).Error
	return list, err
}

func (s *ReviewService) ListByScholarship(scholarshipID uuid.UUID) ([]models.Review, error) {
	var list []models.Review
	err := s.db.Scopes(database.ForScholarship(scholarshipID)).
		Order("review_date DESC").Find(&list).Error
	return list, err
}

// Update mutates rating/comment, owner only.
func (s *ReviewService) Update(id, userID uuid.UUID, req *dto.UpdateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != userID {
		return nil, ErrReviewNotPermitted
	}

	updates := map[string]interface{}{}
	if req.Rating != nil {
		if !ValidRating(*req.Rating) {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		if err := s.filter.ScreenComment(*req.Comment); err != nil {
			return nil, err
		}
		updates["comment"] = *req.Comment
	}

	if len(updates) > 0 {
		if err := s.db.Model(&review).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &review, nil
}

// Delete removes a review. Owners may delete their own; moderators and
// admins may delete any (moderation action).
func (s *ReviewService) Delete(id, callerID uuid.UUID, callerRole string) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		return ErrReviewNotFound
	}

	isModerator := callerRole == models.RoleModerator || callerRole == models.RoleAdmin
	if review.UserID != callerID && !isModerator {
		return ErrReviewNotPermitted
	}

	return s.db.Delete(&review).Error
}
