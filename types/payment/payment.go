package payment

import (
	"fmt"
	"strings"
)

// GuestIntentRequest creates a payment intent for a guest booking. The
// (locator, contact) pair must pass the verification gate first.
type GuestIntentRequest struct {
	Locator      string `json:"locator" validate:"required,len=6"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

// IntentRequest creates a payment intent for an authenticated user's booking.
type IntentRequest struct {
	BookingID uint `json:"booking_id" validate:"required"`
}

// WebhookEvent is the payment gateway's callback payload.
type WebhookEvent struct {
	Type   string `json:"type"`
	Intent struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"intent"`
}

// IntentResponse is returned to the client so it can complete payment.
type IntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

func (r GuestIntentRequest) Validate() error {
	if len(strings.TrimSpace(r.Locator)) != 6 {
		return fmt.Errorf("locator must be 6 characters")
	}
	if strings.TrimSpace(r.ContactEmail) == "" {
		return fmt.Errorf("contact email is required")
	}
	return nil
}

func (r IntentRequest) Validate() error {
	if r.BookingID == 0 {
		return fmt.Errorf("booking id is required")
	}
	return nil
}
