package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/scholarhub/scholarhub-backend/internal/cache"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/models"
	"gorm.io/gorm"
)

const monthlyWindow = 12

type AnalyticsService struct {
	db    *gorm.DB
	cache *cache.AnalyticsCache
}

func NewAnalyticsService(db *gorm.DB, c *cache.AnalyticsCache) *AnalyticsService {
	return &AnalyticsService{db: db, cache: c}
}

// Summary aggregates application counts per status and per month over the
// last twelve months, cached for the freshness window.
func (s *AnalyticsService) Summary(ctx context.Context) (*dto.AnalyticsSummaryResponse, error) {
	if cached, err := s.cache.GetSummary(ctx); err == nil {
		return cached, nil
	}

	var statusData []dto.StatusCount
	err := s.db.Model(&models.Application{}).
		Select("status AS name, COUNT(*) AS value").
		Group("status").
		Order("status").
		Scan(&statusData).Error
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, -monthlyWindow, 0)
	var monthlyData []dto.MonthlyCount
	err = s.db.Model(&models.Application{}).
		Select("to_char(applied_date, 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("applied_date >= ?", since).
		Group("month").
		Order("month").
		Scan(&monthlyData).Error
	if err != nil {
		return nil, err
	}

	summary := &dto.AnalyticsSummaryResponse{
		StatusData:  statusData,
		MonthlyData: monthlyData,
	}

	if err := s.cache.SetSummary(ctx, summary); err != nil {
		slog.Warn("failed to cache analytics summary", "error", err)
	}
	return summary, nil
}

// ApplicationsPerScholarship counts applications grouped by scholarship.
func (s *AnalyticsService) ApplicationsPerScholarship() ([]dto.ScholarshipApplicationCount, error) {
	var rows []dto.ScholarshipApplicationCount
	err := s.db.Model(&models.Application{}).
		Select("scholarship_name AS scholarship, COUNT(*) AS count").
		Group("scholarship_name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// RoleDistribution counts users per role.
func (s *AnalyticsService) RoleDistribution() ([]dto.StatusCount, error) {
	var rows []dto.StatusCount
	err := s.db.Model(&models.User{}).
		Select("role AS name, COUNT(*) AS value").
		Group("role").
		Order("role").
		Scan(&rows).Error
	return rows, err
}
