package payment

// InitiateResult is returned to the caller after a successful
// gateway initialization.
type InitiateResult struct {
	Success     bool   `json:"success"`
	CheckoutURL string `json:"checkout_url"`
	Message     string `json:"message"`
}

// VerifyResult reports the outcome of a verification attempt. Pending
// means the payment has no gateway reference yet and nothing was
// verified.
type VerifyResult struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Pending bool   `json:"-"`
}

// StatusResult is the read-only view served by the status endpoint.
type StatusResult struct {
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}
