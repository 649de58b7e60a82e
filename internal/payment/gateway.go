package payment

import (
	"context"
	"errors"
)

// Errors returned by payment gateways.
var (
	// ErrNotConfigured means the gateway credentials are missing; checkout is
	// unavailable but the rest of the service keeps working read-only.
	ErrNotConfigured = errors.New("payment gateway is not configured")

	// ErrSignatureMismatch means a reported payment could not be verified
	// against the gateway secret and must be treated as declined.
	ErrSignatureMismatch = errors.New("payment signature mismatch")
)

// CheckoutRequest describes one checkout to open. Amounts are in minor
// units (paise for INR).
type CheckoutRequest struct {
	AmountMinorUnits int64
	Currency         string
	Description      string
	Receipt          string
}

// CheckoutSession is what the browser widget needs to collect the payment.
// The outcome (success, failure, dismissed) arrives later through the
// completion endpoint; opening a checkout never blocks on it.
type CheckoutSession struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	KeyID            string `json:"key_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
	Description      string `json:"description"`
}

// Gateway is the boundary to the hosted checkout provider.
type Gateway interface {
	// OpenCheckout registers a checkout with the provider and returns the
	// session handed to the widget.
	OpenCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)

	// VerifySignature checks a reported successful payment against the
	// gateway secret. A mismatch returns ErrSignatureMismatch.
	VerifySignature(gatewayOrderID, paymentID, signature string) error
}
