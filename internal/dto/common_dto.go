package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// ForbiddenResponse carries the caller's own dashboard route so role-gated
// clients can redirect instead of rendering the denied view.
type ForbiddenResponse struct {
	Error    bool   `json:"error"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Cache     string `json:"cache"`
}

// ClientConfigResponse is the public bootstrap payload the SPA loads before
// rendering payment forms.
type ClientConfigResponse struct {
	StripePublishableKey string `json:"stripePublishableKey"`
}
