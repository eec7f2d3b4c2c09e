package controllers

import (
	"encoding/json"
	"log"
	"time"

	"podlearn/gateway"
	"podlearn/middleware"
	"podlearn/models"
	"podlearn/services"
	"podlearn/store"
	"podlearn/utils"

	"github.com/gofiber/fiber/v2"
)

// PaymentController serves the entitlement and purchase-history endpoints
// and receives the gateway's settlement webhooks.
type PaymentController struct {
	entitlements *services.EntitlementService
	payments     *services.PaymentService
	store        store.Store
	gateway      *gateway.Client
	mailer       *utils.Mailer
}

func NewPaymentController(e *services.EntitlementService, p *services.PaymentService, st store.Store, gw *gateway.Client, mailer *utils.Mailer) *PaymentController {
	return &PaymentController{
		entitlements: e,
		payments:     p,
		store:        st,
		gateway:      gw,
		mailer:       mailer,
	}
}

// resolveUserID returns the authenticated user, or the ?userId override when
// the caller is an admin.
func resolveUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return 0, false
	}
	if role, _ := c.Locals("role").(string); role == models.RoleAdmin {
		if override := c.QueryInt("userId"); override > 0 {
			return uint(override), true
		}
	}
	return userID, true
}

// VerifyAccess answers whether the caller may access a content item or a
// series. Free content short-circuits to a grant without touching the
// entitlement store.
func (ctl *PaymentController) VerifyAccess(c *fiber.Ctx) error {
	userID, ok := resolveUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.QueryInt("contentId")
	seriesID := c.QueryInt("seriesId")
	if contentID <= 0 && seriesID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "contentId or seriesId is required!", nil)
	}

	var hasAccess bool
	var accessType string
	var err error

	if contentID > 0 {
		content, lookupErr := ctl.store.ContentByID(uint(contentID))
		if lookupErr != nil {
			return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "content lookup", Err: lookupErr})
		}
		if content != nil && content.IsFree() {
			hasAccess, accessType = true, services.AccessTypeFree
		} else {
			hasAccess, accessType, err = ctl.entitlements.HasFullAccess(userID, uint(contentID))
		}
	} else {
		hasAccess, accessType, err = ctl.entitlements.HasSeriesAccess(userID, uint(seriesID))
	}
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	summary, err := ctl.payments.UserPaymentSummary(userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access verified!", fiber.Map{
		"hasAccess":      hasAccess,
		"accessType":     accessType,
		"paymentSummary": summary,
	})
}

// UserPurchases returns the caller's purchase rows, current subscription and
// derived summary.
func (ctl *PaymentController) UserPurchases(c *fiber.Ctx) error {
	userID, ok := resolveUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	purchases, subscription, summary, err := ctl.payments.UserPurchases(userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchases fetched successfully!", fiber.Map{
		"purchases":    purchases,
		"subscription": subscription,
		"summary":      summary,
	})
}

// Checkout opens a gateway session for a content item or a series and
// records a PENDING purchase row carrying the gateway order id.
func (ctl *PaymentController) Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCheckout").(*struct {
		ContentID *uint `json:"contentId"`
		SeriesID  *uint `json:"seriesId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var price *float64
	var currency, title string
	purchase := models.Purchase{UserID: userID}

	if reqData.ContentID != nil {
		content, err := ctl.store.ContentByID(*reqData.ContentID)
		if err != nil {
			return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "content lookup", Err: err})
		}
		if content == nil || !content.IsPublished {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		if content.IsFree() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is free, nothing to purchase!", nil)
		}
		price, currency, title = content.Price, content.Currency, content.Title
		purchase.ContentID = reqData.ContentID
	} else {
		series, err := ctl.store.SeriesByID(*reqData.SeriesID)
		if err != nil {
			return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "series lookup", Err: err})
		}
		if series == nil || !series.IsPublished {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
		}
		if series.Price == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Series is not purchasable!", nil)
		}
		price, currency, title = series.Price, series.Currency, series.Title
		purchase.SeriesID = reqData.SeriesID
	}

	session, err := ctl.gateway.CreateCheckoutSession(c.Context(), *price, currency, title, "payment")
	if err != nil {
		log.Printf("Checkout session failed for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start checkout!", nil)
	}

	purchase.AmountPaid = *price
	purchase.Currency = currency
	purchase.Status = models.PurchaseStatusPending
	purchase.GatewayOrderID = session.OrderID

	if err := ctl.store.CreatePurchase(&purchase); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "create purchase", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Checkout session created!", fiber.Map{
		"orderId":     session.OrderID,
		"checkoutUrl": session.CheckoutURL,
	})
}

// Webhook receives gateway deliveries. The raw body's HMAC signature must
// match before anything is touched.
func (ctl *PaymentController) Webhook(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get("X-Gateway-Signature")

	if !ctl.gateway.VerifySignature(body, signature) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid webhook signature!", nil)
	}

	var event gateway.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}

	switch event.Type {
	case gateway.EventPurchaseCompleted:
		return ctl.settlePurchase(c, &event, models.PurchaseStatusCompleted)
	case gateway.EventPurchaseFailed:
		return ctl.settlePurchase(c, &event, models.PurchaseStatusFailed)
	case gateway.EventPurchaseRefunded:
		return ctl.settlePurchase(c, &event, models.PurchaseStatusRefunded)
	case gateway.EventSubscriptionUpdated:
		return ctl.upsertSubscription(c, &event)
	default:
		// Unknown event types are acknowledged so the gateway stops retrying.
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event ignored.", nil)
	}
}

func (ctl *PaymentController) settlePurchase(c *fiber.Ctx, event *gateway.WebhookEvent, status models.PurchaseStatus) error {
	purchase, err := ctl.store.PurchaseByOrderID(event.Data.OrderID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "purchase lookup", Err: err})
	}
	if purchase == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown order!", nil)
	}

	purchase.Status = status
	purchase.GatewayPaymentID = event.Data.PaymentID
	if event.Data.Amount > 0 {
		purchase.AmountPaid = event.Data.Amount
	}
	if status == models.PurchaseStatusCompleted {
		now := time.Now()
		purchase.PurchasedAt = &now
	}

	if err := ctl.store.SavePurchase(purchase); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "save purchase", Err: err})
	}

	if status == models.PurchaseStatusCompleted {
		ctl.sendReceipt(purchase)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase updated.", nil)
}

// sendReceipt is best-effort; settlement already happened.
func (ctl *PaymentController) sendReceipt(purchase *models.Purchase) {
	user, err := ctl.store.UserByID(purchase.UserID)
	if err != nil || user == nil {
		log.Printf("Receipt skipped, user %d lookup failed: %v", purchase.UserID, err)
		return
	}

	title := "your purchase"
	if purchase.ContentID != nil {
		if content, err := ctl.store.ContentByID(*purchase.ContentID); err == nil && content != nil {
			title = content.Title
		}
	} else if purchase.SeriesID != nil {
		if series, err := ctl.store.SeriesByID(*purchase.SeriesID); err == nil && series != nil {
			title = series.Title
		}
	}

	if err := ctl.mailer.SendPurchaseReceipt(user.Email, user.Name, title, purchase.AmountPaid, purchase.Currency); err != nil {
		log.Printf("Receipt email failed for purchase %d: %v", purchase.ID, err)
	}
}

func (ctl *PaymentController) upsertSubscription(c *fiber.Ctx, event *gateway.WebhookEvent) error {
	data := event.Data.Subscription
	if data == nil || data.ID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing subscription data!", nil)
	}

	sub, err := ctl.store.SubscriptionByGatewayID(data.ID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "subscription lookup", Err: err})
	}
	if sub == nil {
		sub = &models.Subscription{
			UserID:       data.UserID,
			GatewaySubID: data.ID,
		}
	}

	sub.Plan = data.Plan
	sub.Status = mapGatewaySubStatus(data.Status)
	sub.CurrentPeriodStart = data.PeriodStart
	sub.CurrentPeriodEnd = data.PeriodEnd
	sub.CancelAtPeriodEnd = data.CancelAtPeriodEnd
	// A renewed period means a fresh reminder.
	sub.ReminderSent = false

	if err := ctl.store.SaveSubscription(sub); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "save subscription", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription updated.", nil)
}

func mapGatewaySubStatus(status string) string {
	switch status {
	case "active":
		return models.SubscriptionActive
	case "canceled":
		return models.SubscriptionCanceled
	case "past_due":
		return models.SubscriptionPastDue
	default:
		return models.SubscriptionExpired
	}
}
