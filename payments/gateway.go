// Package payments wraps the Razorpay gateway: order creation, payment
// lookup and the HMAC signature checks that prove a claimed payment is real.
package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"tmms/config"
)

var ErrInvalidSignature = errors.New("invalid payment signature")

type Gateway struct {
	client        *razorpay.Client
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		client:        razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		keyID:         cfg.RazorpayKeyID,
		keySecret:     cfg.RazorpayKeySecret,
		webhookSecret: cfg.RazorpayWebhookSecret,
	}
}

// KeyID is the public key the client-side payment widget needs.
func (g *Gateway) KeyID() string { return g.keyID }

// GatewayOrder is the subset of the gateway's order object we return to the
// client.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder registers an order with the gateway. amount is in rupees and
// is converted to paise on the wire, which is the gateway's minor unit.
func (g *Gateway) CreateOrder(amount float64, currency, receipt string) (*GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	}

	data := map[string]interface{}{
		"amount":          int64(amount * 100),
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}

	order := &GatewayOrder{
		ID:       str(body["id"]),
		Currency: str(body["currency"]),
		Receipt:  str(body["receipt"]),
	}
	if amt, ok := body["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	return order, nil
}

// FetchPayment looks up a payment by id at the gateway.
func (g *Gateway) FetchPayment(paymentID string) (map[string]interface{}, error) {
	return g.client.Payment.Fetch(paymentID, nil, nil)
}

// VerifySignature recomputes HMAC-SHA256(keySecret, orderID + "|" + paymentID)
// and compares it in constant time against the supplied hex signature. This
// is the sole proof that the gateway authorized the payment.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) error {
	return verifyHMAC([]byte(orderID+"|"+paymentID), signature, g.keySecret)
}

// WebhookConfigured reports whether a webhook secret was provided. Without
// one, webhook events cannot be authenticated and must never mutate orders.
func (g *Gateway) WebhookConfigured() bool { return g.webhookSecret != "" }

// VerifyWebhook checks the gateway's signature over the raw webhook body,
// failing closed on mismatch. An unconfigured secret fails every call; the
// handler checks WebhookConfigured first and acknowledges without dispatch.
func (g *Gateway) VerifyWebhook(body []byte, signature string) error {
	if g.webhookSecret == "" {
		return ErrInvalidSignature
	}
	return verifyHMAC(body, signature, g.webhookSecret)
}

func verifyHMAC(payload []byte, signature, secret string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
