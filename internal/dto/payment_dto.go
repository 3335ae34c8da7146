package dto

type CreatePaymentIntentRequest struct {
	Amount float64 `json:"amount"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// StripeWebhookEvent is the subset of Stripe's event envelope the service
// consumes for payment reconciliation.
type StripeWebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID     string `json:"id"`
			Amount int64  `json:"amount"`
			Status string `json:"status"`
		} `json:"object"`
	} `json:"data"`
}
