package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"podlearn/config"
	"podlearn/gateway"
	"podlearn/middleware"
	"podlearn/models"
	"podlearn/services"
	"podlearn/store"
	"podlearn/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const webhookSecret = "whsec_test"

func testApp(t *testing.T) (*fiber.App, *store.GormStore) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// The pool must stay on one connection or the in-memory database is
	// not shared between queries.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Series{},
		&models.Content{},
		&models.Purchase{},
		&models.Subscription{},
		&models.ContentProgress{},
	))

	st := store.NewGormStore(db)
	gw := gateway.NewClient("https://gw.example.com/v1/", "sk_test", webhookSecret, "https://podlearn.example.com")
	mailer := utils.NewMailer(config.AppConfig)

	entitlements := services.NewEntitlementService(st)
	payments := services.NewPaymentService(st)
	ctl := NewPaymentController(entitlements, payments, st, gw, mailer)

	app := fiber.New()
	app.Get("/api/payments/verify-access", middleware.JWTMiddleware, ctl.VerifyAccess)
	app.Post("/api/payments/webhook", ctl.Webhook)
	return app, st
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()
	token, err := middleware.GenerateJWT(userID, "Tester", models.RoleUser, "tester@example.com")
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	app, st := testApp(t)

	payload := []byte(`{"type":"purchase.completed","data":{"orderId":"ord_1"}}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Gateway-Signature", "deadbeef")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Nothing was settled.
	missing, err := st.PurchaseByOrderID("ord_1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWebhook_SettlesPendingPurchase(t *testing.T) {
	app, st := testApp(t)

	contentID := uint(10)
	purchase := models.Purchase{
		UserID:         1,
		ContentID:      &contentID,
		AmountPaid:     9.99,
		Status:         models.PurchaseStatusPending,
		GatewayOrderID: "ord_42",
	}
	require.NoError(t, st.CreatePurchase(&purchase))

	payload := []byte(`{"type":"purchase.completed","data":{"orderId":"ord_42","paymentId":"pay_7","amount":9.99}}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Gateway-Signature", signBody(payload))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	settled, err := st.PurchaseByOrderID("ord_42")
	require.NoError(t, err)
	require.NotNil(t, settled)
	assert.Equal(t, models.PurchaseStatusCompleted, settled.Status)
	assert.Equal(t, "pay_7", settled.GatewayPaymentID)
	assert.NotNil(t, settled.PurchasedAt)
}

func TestWebhook_UnknownOrder(t *testing.T) {
	app, _ := testApp(t)

	payload := []byte(`{"type":"purchase.completed","data":{"orderId":"ord_missing"}}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Gateway-Signature", signBody(payload))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWebhook_UpsertsSubscription(t *testing.T) {
	app, st := testApp(t)

	payload := []byte(`{"type":"subscription.updated","data":{"subscription":{
		"id":"sub_9","userId":1,"plan":"MONTHLY","status":"active",
		"periodStart":"2026-08-01T00:00:00Z","periodEnd":"2026-09-01T00:00:00Z",
		"cancelAtPeriodEnd":false}}}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Gateway-Signature", signBody(payload))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	sub, err := st.SubscriptionByGatewayID("sub_9")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, uint(1), sub.UserID)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, 2026, sub.CurrentPeriodEnd.Year())
	assert.False(t, sub.ReminderSent)

	// A later delivery for the same gateway id updates the row in place.
	canceled := []byte(`{"type":"subscription.updated","data":{"subscription":{
		"id":"sub_9","userId":1,"plan":"MONTHLY","status":"canceled",
		"periodStart":"2026-08-01T00:00:00Z","periodEnd":"2026-09-01T00:00:00Z",
		"cancelAtPeriodEnd":true}}}`)
	req = httptest.NewRequest(fiber.MethodPost, "/api/payments/webhook", bytes.NewReader(canceled))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Gateway-Signature", signBody(canceled))

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated, err := st.SubscriptionByGatewayID("sub_9")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, sub.ID, updated.ID)
	assert.Equal(t, models.SubscriptionCanceled, updated.Status)
	assert.True(t, updated.CancelAtPeriodEnd)
}

func TestVerifyAccess_RequiresParams(t *testing.T) {
	app, _ := testApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/payments/verify-access", nil)
	req.Header.Set("Authorization", bearer(t, 1))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVerifyAccess_FreeContent(t *testing.T) {
	app, st := testApp(t)

	content := models.Content{Title: "Intro", Slug: "intro", Kind: models.ContentKindPodcast, IsPublished: true}
	require.NoError(t, st.CreateContent(&content))

	req := httptest.NewRequest(fiber.MethodGet, "/api/payments/verify-access?contentId=1", nil)
	req.Header.Set("Authorization", bearer(t, 1))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["hasAccess"])
	assert.Equal(t, "free", data["accessType"])
}

func TestVerifyAccess_PaidContentDenied(t *testing.T) {
	app, st := testApp(t)

	price := 9.99
	content := models.Content{
		Title: "Paid", Slug: "paid", Kind: models.ContentKindPodcast,
		Price: &price, IsPurchasable: true, IsPublished: true,
	}
	require.NoError(t, st.CreateContent(&content))

	req := httptest.NewRequest(fiber.MethodGet, "/api/payments/verify-access?contentId=1", nil)
	req.Header.Set("Authorization", bearer(t, 1))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["hasAccess"])

	summary := data["paymentSummary"].(map[string]interface{})
	assert.Equal(t, float64(0), summary["totalPurchases"])
}
