package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmms/config"
)

func testGateway(webhookSecret string) *Gateway {
	return NewGateway(&config.Config{
		RazorpayKeyID:         "rzp_test_key",
		RazorpayKeySecret:     "rzp_test_secret",
		RazorpayWebhookSecret: webhookSecret,
	})
}

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAccepts(t *testing.T) {
	g := testGateway("")
	sig := sign("rzp_test_secret", "order_abc|pay_xyz")
	require.NoError(t, g.VerifySignature("order_abc", "pay_xyz", sig))
}

func TestVerifySignatureRejectsMutations(t *testing.T) {
	g := testGateway("")
	sig := sign("rzp_test_secret", "order_abc|pay_xyz")

	cases := map[string][3]string{
		"mutated order id":   {"order_abd", "pay_xyz", sig},
		"mutated payment id": {"order_abc", "pay_xyy", sig},
		"mutated signature":  {"order_abc", "pay_xyz", sig[:len(sig)-1] + flip(sig[len(sig)-1])},
		"empty signature":    {"order_abc", "pay_xyz", ""},
		"swapped ids":        {"pay_xyz", "order_abc", sig},
	}
	for name, tc := range cases {
		err := g.VerifySignature(tc[0], tc[1], tc[2])
		assert.ErrorIs(t, err, ErrInvalidSignature, name)
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	g := testGateway("")
	sig := sign("some-other-secret", "order_abc|pay_xyz")
	assert.ErrorIs(t, g.VerifySignature("order_abc", "pay_xyz", sig), ErrInvalidSignature)
}

func TestVerifyWebhook(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)

	g := testGateway("whsec")
	require.NoError(t, g.VerifyWebhook(body, sign("whsec", string(body))))
	assert.ErrorIs(t, g.VerifyWebhook(body, sign("whsec", `{"event":"tampered"}`)), ErrInvalidSignature)
	assert.ErrorIs(t, g.VerifyWebhook(body, ""), ErrInvalidSignature)

	// No configured secret: nothing can be authenticated, so every
	// verification fails and the caller must not dispatch.
	open := testGateway("")
	assert.False(t, open.WebhookConfigured())
	assert.ErrorIs(t, open.VerifyWebhook(body, "anything"), ErrInvalidSignature)
	assert.True(t, g.WebhookConfigured())
}

func flip(b byte) string {
	if b == '0' {
		return "1"
	}
	return "0"
}
