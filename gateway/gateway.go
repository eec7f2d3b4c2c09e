package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Client talks to the hosted payment processor. All product writes driven by
// payment state (settling purchases, subscription periods) arrive through
// the webhook, not through this client; it only opens checkout sessions.
type Client struct {
	http          *resty.Client
	webhookSecret string
	siteURL       string
}

func NewClient(apiURL, secretKey, webhookSecret, siteURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(apiURL).
			SetAuthToken(secretKey).
			SetTimeout(15 * time.Second),
		webhookSecret: webhookSecret,
		siteURL:       siteURL,
	}
}

// CheckoutSession is an opened gateway session the client is redirected to.
type CheckoutSession struct {
	OrderID     string `json:"orderId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// CreateCheckoutSession opens a hosted checkout page for a one-off purchase
// or a subscription plan. The returned order id is stored on the PENDING
// purchase row and matched against the settlement webhook later.
func (c *Client) CreateCheckoutSession(ctx context.Context, amount float64, currency, description, mode string) (*CheckoutSession, error) {
	orderRef := uuid.NewString()

	var result struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"amount":      amount,
			"currency":    currency,
			"description": description,
			"mode":        mode, // payment or subscription
			"reference":   orderRef,
			"success_url": c.siteURL + "/payments/success",
			"cancel_url":  c.siteURL + "/payments/cancel",
		}).
		SetResult(&result).
		Post("checkout/sessions")
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return nil, fmt.Errorf("create checkout session: gateway returned %d: %s", resp.StatusCode(), resp.String())
	}

	return &CheckoutSession{OrderID: orderRef, CheckoutURL: result.URL}, nil
}

// WebhookEvent is the gateway's delivery payload.
type WebhookEvent struct {
	Type string           `json:"type"`
	Data WebhookEventData `json:"data"`
}

// Event types delivered by the gateway.
const (
	EventPurchaseCompleted   = "purchase.completed"
	EventPurchaseFailed      = "purchase.failed"
	EventPurchaseRefunded    = "purchase.refunded"
	EventSubscriptionUpdated = "subscription.updated"
)

type WebhookEventData struct {
	OrderID   string  `json:"orderId"`
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`

	Subscription *WebhookSubscription `json:"subscription,omitempty"`
}

type WebhookSubscription struct {
	ID                string    `json:"id"`
	UserID            uint      `json:"userId"`
	Plan              string    `json:"plan"`
	Status            string    `json:"status"` // active, canceled, past_due
	PeriodStart       time.Time `json:"periodStart"`
	PeriodEnd         time.Time `json:"periodEnd"`
	CancelAtPeriodEnd bool      `json:"cancelAtPeriodEnd"`
}

// VerifySignature checks the hex-encoded HMAC-SHA256 of the raw body against
// the webhook signing secret.
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	want, _ := hex.DecodeString(expected)
	return hmac.Equal(got, want)
}
