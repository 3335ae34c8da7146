package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/scholarhub/scholarhub-backend/internal/cache"
	"github.com/scholarhub/scholarhub-backend/internal/database"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotOwner            = errors.New("application belongs to another user")
	ErrNotEditable         = errors.New("application can only be edited or cancelled while pending")
	ErrInvalidTransition   = errors.New("status transition not permitted")
	ErrFeedbackBlocked     = errors.New("feedback is not permitted for this application")
	ErrPaymentIncomplete   = errors.New("payment has not been completed")
	ErrPaymentMismatch     = errors.New("paid amount does not match application fee plus service charge")
	ErrPaymentAlreadyUsed  = errors.New("this payment is already attached to an application")
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// PaymentVerifier is the slice of the payment processor the submission
// workflow needs: verify a captured intent and compensate with a refund.
type PaymentVerifier interface {
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
	Refund(ctx context.Context, intentID string) error
}

type ApplicationService struct {
	db        *gorm.DB
	payments  PaymentVerifier
	analytics *cache.AnalyticsCache
}

func NewApplicationService(db *gorm.DB, payments PaymentVerifier, analytics *cache.AnalyticsCache) *ApplicationService {
	return &ApplicationService{db: db, payments: payments, analytics: analytics}
}

// ValidateSubmission checks the form-level constraints before any external
// call is made.
func ValidateSubmission(req *dto.SubmitApplicationRequest) error {
	if req.ScholarshipID == uuid.Nil {
		return errors.New("scholarshipId is required")
	}
	if req.PhoneNumber == "" || !phonePattern.MatchString(req.PhoneNumber) {
		return errors.New("a valid phone number is required")
	}
	if req.Gender == "" {
		return errors.New("gender is required")
	}
	if req.ApplyingDegree == "" {
		return errors.New("applying degree is required")
	}
	if req.SSCResult < 0 || req.SSCResult > 5 {
		return errors.New("sscResult must be between 0 and 5")
	}
	if req.HSCResult < 0 || req.HSCResult > 5 {
		return errors.New("hscResult must be between 0 and 5")
	}
	if req.Photo == "" {
		return errors.New("photo is required")
	}
	if req.PaymentIntentID == "" {
		return errors.New("paymentIntentId is required")
	}
	return nil
}

// Submit runs the submission protocol: validate the form, verify the
// captured payment against the scholarship's fees, then persist. If
// persistence fails after the payment succeeded, a compensating refund is
// attempted before the error is surfaced.
func (s *ApplicationService) Submit(ctx context.Context, applicant *models.User, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	if err := ValidateSubmission(req); err != nil {
		return nil, err
	}

	var sch models.Scholarship
	if err := s.db.First(&sch, "id = ?", req.ScholarshipID).Error; err != nil {
		return nil, ErrScholarshipNotFound
	}

	// A succeeded intent pays for exactly one application.
	var consumed int64
	err := s.db.Model(&models.Application{}).
		Where("payment ->> 'paymentIntentId' = ?", req.PaymentIntentID).
		Count(&consumed).Error
	if err != nil {
		return nil, err
	}
	if consumed > 0 {
		return nil, ErrPaymentAlreadyUsed
	}

	intent, err := s.payments.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}
	if intent.Status != "succeeded" {
		return nil, ErrPaymentIncomplete
	}
	if intent.Amount != AmountToCents(sch.TotalCharge()) {
		return nil, ErrPaymentMismatch
	}

	now := time.Now()
	app := models.Application{
		ID:                  uuid.New(),
		ScholarshipID:       sch.ID,
		ScholarshipName:     sch.ScholarshipName,
		UniversityName:      sch.UniversityName,
		SubjectCategory:     sch.SubjectCategory,
		ScholarshipCategory: sch.ScholarshipCategory,
		UserID:              applicant.ID,
		UserName:            applicant.Name,
		UserEmail:           applicant.Email,
		PhoneNumber:         req.PhoneNumber,
		Gender:              req.Gender,
		Address: datatypes.NewJSONType(models.Address{
			Village:  req.Address.Village,
			District: req.Address.District,
			Country:  req.Address.Country,
		}),
		ApplyingDegree: req.ApplyingDegree,
		SSCResult:      req.SSCResult,
		HSCResult:      req.HSCResult,
		StudyGap:       req.StudyGap,
		Photo:          req.Photo,
		Status:         models.StatusPending,
		Payment: datatypes.NewJSONType(models.Payment{
			ApplicationFee:  sch.ApplicationFee,
			ServiceCharge:   sch.ServiceCharge,
			TotalPaid:       sch.TotalCharge(),
			PaidAt:          now,
			PaymentIntentID: intent.ID,
			PaymentStatus:   "succeeded",
		}),
		AppliedDate: now,
	}

	if err := s.db.Create(&app).Error; err != nil {
		if refundErr := s.payments.Refund(ctx, intent.ID); refundErr != nil {
			slog.Error("compensating refund failed after persist error",
				"payment_intent", intent.ID, "error", refundErr)
		} else {
			slog.Warn("application persist failed, payment refunded",
				"payment_intent", intent.ID, "user_id", applicant.ID)
		}
		return nil, fmt.Errorf("failed to save application: %w", err)
	}

	s.invalidateAnalytics(ctx)
	return &app, nil
}

func (s *ApplicationService) ListAll() ([]models.Application, error) {
	var list []models.Application
	err := s.db.Order("applied_date DESC").Find(&list).Error
	return list, err
}

func (s *ApplicationService) ListByUser(userID uuid.UUID) ([]models.Application, error) {
	var list []models.Application
	err := s.db.Scopes(database.ForOwner(userID)).Order("applied_date DESC").Find(&list).Error
	return list, err
}

func (s *ApplicationService) GetByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := s.db.First(&app, "id = ?", id).Error; err != nil {
		return nil, ErrApplicationNotFound
	}
	return &app, nil
}

// UpdateByOwner lets the applicant edit personal fields, only while the
// application is still pending.
func (s *ApplicationService) UpdateByOwner(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, ErrNotOwner
	}
	if !app.Editable() {
		return nil, ErrNotEditable
	}

	updates := map[string]interface{}{}
	if req.PhoneNumber != nil {
		if !phonePattern.MatchString(*req.PhoneNumber) {
			return nil, errors.New("a valid phone number is required")
		}
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Address != nil {
		updates["address"] = datatypes.NewJSONType(models.Address{
			Village:  req.Address.Village,
			District: req.Address.District,
			Country:  req.Address.Country,
		})
	}
	if req.ApplyingDegree != nil {
		updates["applying_degree"] = *req.ApplyingDegree
	}
	if req.SSCResult != nil {
		if *req.SSCResult < 0 || *req.SSCResult > 5 {
			return nil, errors.New("sscResult must be between 0 and 5")
		}
		updates["ssc_result"] = *req.SSCResult
	}
	if req.HSCResult != nil {
		if *req.HSCResult < 0 || *req.HSCResult > 5 {
			return nil, errors.New("hscResult must be between 0 and 5")
		}
		updates["hsc_result"] = *req.HSCResult
	}
	if req.StudyGap != nil {
		updates["study_gap"] = *req.StudyGap
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}

	if len(updates) > 0 {
		if err := s.db.Model(app).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Cancel moves an owner's pending application to cancelled.
func (s *ApplicationService) Cancel(ctx context.Context, id, userID uuid.UUID) (*models.Application, error) {
	app, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, ErrNotOwner
	}
	if !models.CanTransition(app.Status, models.StatusCancelled) {
		return nil, ErrNotEditable
	}

	if err := s.db.Model(app).Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}
	app.Status = models.StatusCancelled

	s.invalidateAnalytics(ctx)
	return app, nil
}

// ChangeStatus applies a moderator decision, enforcing the lifecycle edges.
func (s *ApplicationService) ChangeStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	app, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(app.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, status)
	}

	if err := s.db.Model(app).Update("status", status).Error; err != nil {
		return nil, err
	}
	app.Status = status

	s.invalidateAnalytics(ctx)
	return app, nil
}

// SendFeedback records moderator feedback and moves the application into
// processing.
func (s *ApplicationService) SendFeedback(ctx context.Context, id uuid.UUID, feedback string) (*models.Application, error) {
	if feedback == "" {
		return nil, errors.New("feedback is required")
	}

	app, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !app.FeedbackAllowed() {
		return nil, ErrFeedbackBlocked
	}

	updates := map[string]interface{}{
		"feedback": feedback,
		"status":   models.StatusProcessing,
	}
	if err := s.db.Model(app).Updates(updates).Error; err != nil {
		return nil, err
	}
	app.Feedback = feedback
	app.Status = models.StatusProcessing

	s.invalidateAnalytics(ctx)
	return app, nil
}

// MarkPaymentSucceeded reconciles a processor confirmation against the
// application that carries the intent. Missing applications are not an
// error: the intent may belong to a checkout that was never submitted.
func (s *ApplicationService) MarkPaymentSucceeded(intentID string) error {
	if intentID == "" {
		return errors.New("payment intent id is required")
	}

	var app models.Application
	err := s.db.Where("payment ->> 'paymentIntentId' = ?", intentID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Info("payment confirmation without matching application", "payment_intent_id", intentID)
		return nil
	}
	if err != nil {
		return err
	}

	payment := app.Payment.Data()
	if payment.PaymentStatus == "succeeded" {
		return nil
	}
	payment.PaymentStatus = "succeeded"
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}

	return s.db.Model(&app).Update("payment", datatypes.NewJSONType(payment)).Error
}

func (s *ApplicationService) invalidateAnalytics(ctx context.Context) {
	if err := s.analytics.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate analytics cache", "error", err)
	}
}
