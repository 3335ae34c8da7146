package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scholarhub/scholarhub-backend/internal/cache"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrScholarshipNotFound = errors.New("scholarship not found")
	ErrInvalidFees         = errors.New("application fee and service charge are required and must be non-negative")
)

const topScholarshipsLimit = 6

type ScholarshipService struct {
	db    *gorm.DB
	cache *cache.ScholarshipCache
}

func NewScholarshipService(db *gorm.DB, c *cache.ScholarshipCache) *ScholarshipService {
	return &ScholarshipService{db: db, cache: c}
}

func (s *ScholarshipService) List() ([]models.Scholarship, error) {
	var list []models.Scholarship
	err := s.db.Order("post_date DESC").Find(&list).Error
	return list, err
}

func (s *ScholarshipService) GetByID(id uuid.UUID) (*models.Scholarship, error) {
	var sch models.Scholarship
	if err := s.db.First(&sch, "id = ?", id).Error; err != nil {
		return nil, ErrScholarshipNotFound
	}
	return &sch, nil
}

// Top returns the six cheapest-to-apply, most recently posted scholarships,
// served from cache within its freshness window.
func (s *ScholarshipService) Top(ctx context.Context) ([]models.Scholarship, error) {
	if cached, err := s.cache.GetTop(ctx); err == nil {
		return cached, nil
	}

	var list []models.Scholarship
	err := s.db.Order("application_fee ASC").
		Order("post_date DESC").
		Limit(topScholarshipsLimit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetTop(ctx, list); err != nil {
		slog.Warn("failed to cache top scholarships", "error", err)
	}
	return list, nil
}

func (s *ScholarshipService) Create(ctx context.Context, postedBy uuid.UUID, req *dto.CreateScholarshipRequest) (*models.Scholarship, error) {
	if req.ScholarshipName == "" || req.UniversityName == "" {
		return nil, errors.New("scholarship name and university name are required")
	}
	if req.ApplicationFee == nil || req.ServiceCharge == nil ||
		*req.ApplicationFee < 0 || *req.ServiceCharge < 0 {
		return nil, ErrInvalidFees
	}
	if req.TuitionFee != nil && *req.TuitionFee < 0 {
		return nil, errors.New("tuition fee must be non-negative")
	}

	deadline, err := dto.ParseDeadline(req.Deadline)
	if err != nil {
		return nil, errors.New("invalid deadline")
	}

	sch := models.Scholarship{
		ID:                  uuid.New(),
		ScholarshipName:     req.ScholarshipName,
		UniversityName:      req.UniversityName,
		Country:             req.Country,
		City:                req.City,
		Rank:                req.Rank,
		SubjectCategory:     req.SubjectCategory,
		ScholarshipCategory: req.ScholarshipCategory,
		Degree:              req.Degree,
		TuitionFee:          req.TuitionFee,
		ApplicationFee:      *req.ApplicationFee,
		ServiceCharge:       *req.ServiceCharge,
		Deadline:            deadline,
		Description:         req.Description,
		Image:               req.Image,
		PostedBy:            postedBy,
		PostDate:            time.Now(),
	}

	if err := s.db.Create(&sch).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &sch, nil
}

func (s *ScholarshipService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateScholarshipRequest) (*models.Scholarship, error) {
	sch, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.ScholarshipName != nil {
		updates["scholarship_name"] = *req.ScholarshipName
	}
	if req.UniversityName != nil {
		updates["university_name"] = *req.UniversityName
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Rank != nil {
		updates["rank"] = *req.Rank
	}
	if req.SubjectCategory != nil {
		updates["subject_category"] = *req.SubjectCategory
	}
	if req.ScholarshipCategory != nil {
		updates["scholarship_category"] = *req.ScholarshipCategory
	}
	if req.Degree != nil {
		updates["degree"] = *req.Degree
	}
	if req.TuitionFee != nil {
		if *req.TuitionFee < 0 {
			return nil, errors.New("tuition fee must be non-negative")
		}
		updates["tuition_fee"] = *req.TuitionFee
	}
	if req.ApplicationFee != nil {
		if *req.ApplicationFee < 0 {
			return nil, ErrInvalidFees
		}
		updates["application_fee"] = *req.ApplicationFee
	}
	if req.ServiceCharge != nil {
		if *req.ServiceCharge < 0 {
			return nil, ErrInvalidFees
		}
		updates["service_charge"] = *req.ServiceCharge
	}
	if req.Deadline != nil {
		deadline, err := dto.ParseDeadline(*req.Deadline)
		if err != nil {
			return nil, errors.New("invalid deadline")
		}
		updates["deadline"] = deadline
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}

	if len(updates) > 0 {
		if err := s.db.Model(sch).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.invalidate(ctx)
	}
	return sch, nil
}

func (s *ScholarshipService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.Delete(&models.Scholarship{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScholarshipNotFound
	}

	s.invalidate(ctx)
	return nil
}

func (s *ScholarshipService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate scholarship cache", "error", err)
	}
}
