package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test"

func webhookApp(h *WebhookHandler) *fiber.App {
	app := fiber.New()
	app.Post("/webhooks/stripe", h.HandleStripe)
	return app
}

func signedWebhookRequest(body string, at time.Time) *http.Request {
	ts := strconv.FormatInt(at.Unix(), 10)
	sig := computeSignature(testWebhookSecret, ts, []byte(body))

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%s,v1=%s", ts, sig))
	return req
}

func TestHandleStripeAcknowledgesUnhandledEventTypes(t *testing.T) {
	h := NewWebhookHandler(nil, testWebhookSecret)
	app := webhookApp(h)

	body := `{"id":"evt_1","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`
	resp, err := app.Test(signedWebhookRequest(body, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleStripeRejectsMissingSignature(t *testing.T) {
	h := NewWebhookHandler(nil, testWebhookSecret)
	app := webhookApp(h)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleStripeRejectsTamperedBody(t *testing.T) {
	h := NewWebhookHandler(nil, testWebhookSecret)
	app := webhookApp(h)

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := computeSignature(testWebhookSecret, ts, []byte(`{"id":"evt_1"}`))

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(`{"id":"evt_evil"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%s,v1=%s", ts, sig))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleStripeRejectsStaleTimestamp(t *testing.T) {
	h := NewWebhookHandler(nil, testWebhookSecret)
	app := webhookApp(h)

	resp, err := app.Test(signedWebhookRequest(`{"id":"evt_1"}`, time.Now().Add(-time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleStripeNotConfigured(t *testing.T) {
	h := NewWebhookHandler(nil, "")
	app := webhookApp(h)

	resp, err := app.Test(signedWebhookRequest(`{"id":"evt_1"}`, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVerifySignatureHeaderFormats(t *testing.T) {
	h := NewWebhookHandler(nil, testWebhookSecret)
	now := time.Now()
	h.now = func() time.Time { return now }

	body := []byte(`{"id":"evt_1"}`)
	ts := strconv.FormatInt(now.Unix(), 10)
	sig := computeSignature(testWebhookSecret, ts, body)

	assert.NoError(t, h.verifySignature("t="+ts+",v1="+sig, body))
	assert.NoError(t, h.verifySignature("t="+ts+",v1=deadbeef,v1="+sig, body))
	assert.Error(t, h.verifySignature("t="+ts, body))
	assert.Error(t, h.verifySignature("v1="+sig, body))
	assert.Error(t, h.verifySignature("t=notanumber,v1="+sig, body))
	assert.Error(t, h.verifySignature("", body))
}
