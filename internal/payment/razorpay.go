package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Razorpay implements Gateway against the Razorpay Orders API. The browser
// widget drives the actual payment; this side only registers gateway orders
// and verifies reported payments.
type Razorpay struct {
	keyID     string
	keySecret string
	client    *razorpay.Client
}

// NewRazorpay creates a Razorpay gateway. Empty credentials produce a
// gateway whose calls fail with ErrNotConfigured, so the service still
// boots into a degraded read-only state.
func NewRazorpay(keyID, keySecret string) *Razorpay {
	g := &Razorpay{keyID: keyID, keySecret: keySecret}
	if keyID != "" && keySecret != "" {
		g.client = razorpay.NewClient(keyID, keySecret)
	}
	return g
}

func (g *Razorpay) OpenCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	if g.client == nil {
		return CheckoutSession{}, ErrNotConfigured
	}

	data := map[string]interface{}{
		"amount":   req.AmountMinorUnits,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes": map[string]interface{}{
			"description": req.Description,
		},
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create gateway order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return CheckoutSession{}, fmt.Errorf("gateway order response missing id")
	}

	return CheckoutSession{
		GatewayOrderID:   id,
		KeyID:            g.keyID,
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         req.Currency,
		Description:      req.Description,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 of "orderID|paymentID" keyed with
// the API secret, per the Razorpay checkout verification scheme.
func (g *Razorpay) VerifySignature(gatewayOrderID, paymentID, signature string) error {
	if g.keySecret == "" {
		return ErrNotConfigured
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
