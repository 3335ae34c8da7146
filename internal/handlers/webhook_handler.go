package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/services"
)

// signatureTolerance bounds how stale a signed webhook timestamp may be.
const signatureTolerance = 5 * time.Minute

type WebhookHandler struct {
	applications  *services.ApplicationService
	webhookSecret string
	now           func() time.Time
}

func NewWebhookHandler(applications *services.ApplicationService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		applications:  applications,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

// HandleStripe verifies the Stripe-Signature header and reconciles
// payment_intent.succeeded events against stored applications. Other event
// types are acknowledged and dropped.
func (h *WebhookHandler) HandleStripe(c *fiber.Ctx) error {
	if h.webhookSecret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	body := c.Body()
	if err := h.verifySignature(c.Get("Stripe-Signature"), body); err != nil {
		slog.Warn("rejected webhook", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid signature",
		})
	}

	var event dto.StripeWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	if event.Type == "payment_intent.succeeded" {
		if err := h.applications.MarkPaymentSucceeded(event.Data.Object.ID); err != nil {
			slog.Error("webhook processing failed", "event_id", event.ID, "event_type", event.Type, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to process webhook event",
			})
		}
		slog.Info("webhook processed", "event_id", event.ID, "event_type", event.Type)
	}

	return c.JSON(fiber.Map{"received": true})
}

// verifySignature checks the t=...,v1=... header format: v1 is the hex
// HMAC-SHA256 of "<t>.<body>" keyed with the endpoint secret.
func (h *WebhookHandler) verifySignature(header string, body []byte) error {
	if header == "" {
		return fmt.Errorf("missing signature header")
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid signature timestamp")
	}
	age := h.now().Sub(time.Unix(ts, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	expected := computeSignature(h.webhookSecret, timestamp, body)
	for _, sig := range signatures {
		if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) == 1 {
			return nil
		}
	}
	return fmt.Errorf("no matching signature")
}

func computeSignature(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
