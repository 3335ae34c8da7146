package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/scholarhub/scholarhub-backend/internal/database"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
)

type HealthHandler struct {
	redis *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redis: redisClient}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Cache:     "ok",
	}

	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "unreachable"
	}
	if h.redis == nil {
		resp.Cache = "disabled"
	} else if err := h.redis.Ping(c.Context()).Err(); err != nil {
		resp.Status = "degraded"
		resp.Cache = "unreachable"
	}

	status := fiber.StatusOK
	if resp.DB == "unreachable" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
