package paymentgateway

import "errors"

// TransactionStatusSuccess is the only verify status that completes a
// payment; every other value fails it.
const TransactionStatusSuccess = "success"

// InitializeRequest is the payload for POST /transaction/initialize.
// Amount is a string with two decimal places, which is what the
// gateway expects.
type InitializeRequest struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TxRef     string `json:"tx_ref"`
	ReturnURL string `json:"return_url"`
}

func (r *InitializeRequest) Validate() error {
	if r.Amount == "" {
		return errors.New("amount is required")
	}
	if r.Currency == "" {
		return errors.New("currency is required")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.TxRef == "" {
		return errors.New("tx_ref is required")
	}
	return nil
}

type InitializeData struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

type InitializeResponse struct {
	Message string         `json:"message"`
	Status  string         `json:"status"`
	Data    InitializeData `json:"data"`
}

type VerifyData struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type VerifyResponse struct {
	Message string     `json:"message"`
	Status  string     `json:"status"`
	Data    VerifyData `json:"data"`
}
