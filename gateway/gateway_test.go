package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	client := NewClient("https://gw.example.com/v1/", "sk_test", "whsec_test", "https://podlearn.example.com")
	payload := []byte(`{"type":"purchase.completed","data":{"orderId":"ord_1"}}`)

	assert.True(t, client.VerifySignature(payload, sign("whsec_test", payload)))
	assert.False(t, client.VerifySignature(payload, sign("whsec_wrong", payload)))
	assert.False(t, client.VerifySignature(payload, "not-hex!"))
	assert.False(t, client.VerifySignature(payload, ""))

	tampered := append([]byte{}, payload...)
	tampered[10] = 'x'
	assert.False(t, client.VerifySignature(tampered, sign("whsec_test", payload)))
}

func TestCreateCheckoutSession(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "cs_123",
			"url": "https://gw.example.com/pay/cs_123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test", "whsec_test", "https://podlearn.example.com")

	session, err := client.CreateCheckoutSession(context.Background(), 9.99, "EUR", "Episode 1", "payment")
	require.NoError(t, err)
	assert.Equal(t, "https://gw.example.com/pay/cs_123", session.CheckoutURL)
	assert.NotEmpty(t, session.OrderID)

	assert.Equal(t, 9.99, received["amount"])
	assert.Equal(t, "EUR", received["currency"])
	assert.Equal(t, "payment", received["mode"])
	// The order reference sent to the gateway is the one handed back for
	// the PENDING purchase row.
	assert.Equal(t, session.OrderID, received["reference"])
	assert.Equal(t, "https://podlearn.example.com/payments/success", received["success_url"])
}

func TestCreateCheckoutSession_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test", "whsec_test", "https://podlearn.example.com")

	session, err := client.CreateCheckoutSession(context.Background(), 9.99, "EUR", "Episode 1", "payment")
	require.Error(t, err)
	assert.Nil(t, session)
}
