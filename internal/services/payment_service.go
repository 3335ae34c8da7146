package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/scholarhub/scholarhub-backend/internal/config"
)

var (
	ErrPaymentsDisabled = errors.New("payment processor is not configured")
	ErrIntentNotFound   = errors.New("payment intent not found")
)

const stripeAPIBase = "https://api.stripe.com"

// PaymentIntent is the subset of the processor's intent object the service
// needs for creation and verification.
type PaymentIntent struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// PaymentService talks to Stripe's REST API. Card confirmation happens
// client-side against the returned client secret; the server only creates,
// verifies and refunds intents.
type PaymentService struct {
	cfg        *config.Config
	httpClient *http.Client
	baseURL    string
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	return &PaymentService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.PaymentTimeout},
		baseURL:    stripeAPIBase,
	}
}

// AmountToCents converts a fee expressed in major units to the processor's
// integer minor units.
func AmountToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent opens a payment intent for the given amount in major units.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64) (*PaymentIntent, error) {
	if s.cfg.StripeSecretKey == "" {
		return nil, ErrPaymentsDisabled
	}
	if amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(AmountToCents(amount), 10))
	form.Set("currency", "usd")
	form.Set("automatic_payment_methods[enabled]", "true")

	return s.doIntentRequest(ctx, http.MethodPost, "/v1/payment_intents", form)
}

// GetIntent fetches an intent for verification before an application is
// persisted.
func (s *PaymentService) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	if s.cfg.StripeSecretKey == "" {
		return nil, ErrPaymentsDisabled
	}
	if intentID == "" {
		return nil, ErrIntentNotFound
	}
	return s.doIntentRequest(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(intentID), nil)
}

// Refund issues a compensating refund for a captured intent. Used when an
// application fails to persist after its payment succeeded.
func (s *PaymentService) Refund(ctx context.Context, intentID string) error {
	if s.cfg.StripeSecretKey == "" {
		return ErrPaymentsDisabled
	}

	form := url.Values{}
	form.Set("payment_intent", intentID)

	_, err := s.doIntentRequest(ctx, http.MethodPost, "/v1/refunds", form)
	return err
}

func (s *PaymentService) doIntentRequest(ctx context.Context, method, path string, form url.Values) (*PaymentIntent, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.StripeSecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrIntentNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e stripeError
		if err := json.Unmarshal(respBody, &e); err == nil && e.Error.Message != "" {
			return nil, fmt.Errorf("payment processor error: %s", e.Error.Message)
		}
		return nil, fmt.Errorf("payment processor error: status %d", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(respBody, &intent); err != nil {
		return nil, fmt.Errorf("malformed payment processor response: %w", err)
	}
	return &intent, nil
}
