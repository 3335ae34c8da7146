package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/scholarhub-backend/internal/config"
)

func newTestPaymentService(t *testing.T, handler http.HandlerFunc) (*PaymentService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewPaymentService(&config.Config{
		StripeSecretKey: "sk_test_123",
		PaymentTimeout:  5 * time.Second,
	})
	svc.baseURL = srv.URL
	return svc, srv
}

func TestAmountToCents(t *testing.T) {
	assert.Equal(t, int64(0), AmountToCents(0))
	assert.Equal(t, int64(100), AmountToCents(1))
	assert.Equal(t, int64(1850), AmountToCents(18.50))
	assert.Equal(t, int64(1999), AmountToCents(19.99))
	assert.Equal(t, int64(10), AmountToCents(0.1))
}

func TestCreateIntent(t *testing.T) {
	svc, _ := newTestPaymentService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "4550", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","amount":4550,"currency":"usd","status":"requires_payment_method","client_secret":"pi_123_secret_abc"}`))
	})

	intent, err := svc.CreateIntent(context.Background(), 45.50)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, int64(4550), intent.Amount)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestPaymentService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := svc.CreateIntent(context.Background(), 0)
	assert.Error(t, err)

	_, err = svc.CreateIntent(context.Background(), -5)
	assert.Error(t, err)
}

func TestGetIntentNotFound(t *testing.T) {
	svc, _ := newTestPaymentService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such payment_intent"}}`))
	})

	_, err := svc.GetIntent(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, ErrIntentNotFound)
}

func TestGetIntentSurfacesProcessorError(t *testing.T) {
	svc, _ := newTestPaymentService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	})

	_, err := svc.GetIntent(context.Background(), "pi_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestRefund(t *testing.T) {
	svc, _ := newTestPaymentService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/refunds", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pi_123", r.PostForm.Get("payment_intent"))

		w.Write([]byte(`{"id":"re_1","status":"succeeded"}`))
	})

	assert.NoError(t, svc.Refund(context.Background(), "pi_123"))
}

func TestPaymentsDisabledWithoutSecretKey(t *testing.T) {
	svc := NewPaymentService(&config.Config{PaymentTimeout: time.Second})

	_, err := svc.CreateIntent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrPaymentsDisabled)

	_, err = svc.GetIntent(context.Background(), "pi_123")
	assert.ErrorIs(t, err, ErrPaymentsDisabled)

	assert.ErrorIs(t, svc.Refund(context.Background(), "pi_123"), ErrPaymentsDisabled)
}
