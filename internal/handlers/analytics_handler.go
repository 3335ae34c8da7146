package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/services"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute analytics",
		})
	}
	return c.JSON(summary)
}

func (h *AnalyticsHandler) PerScholarship(c *fiber.Ctx) error {
	counts, err := h.service.ApplicationsPerScholarship()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute analytics",
		})
	}
	return c.JSON(counts)
}

func (h *AnalyticsHandler) Roles(c *fiber.Ctx) error {
	counts, err := h.service.RoleDistribution()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute analytics",
		})
	}
	return c.JSON(counts)
}
