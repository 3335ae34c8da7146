package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scholarhub/scholarhub-backend/internal/config"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// Client returns the non-secret settings a browser client needs at boot.
func (h *ConfigHandler) Client(c *fiber.Ctx) error {
	return c.JSON(dto.ClientConfigResponse{
		StripePublishableKey: h.cfg.StripePublishableKey,
	})
}
