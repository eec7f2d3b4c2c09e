package services

import (
	"sort"
	"time"

	"podlearn/models"
	"podlearn/store"
)

// PaymentSummary aggregates a user's purchase history and subscription state.
type PaymentSummary struct {
	TotalPurchases        int     `json:"totalPurchases"`
	TotalSpent            float64 `json:"totalSpent"`
	HasActiveSubscription bool    `json:"hasActiveSubscription"`
	SubscriptionStatus    string  `json:"subscriptionStatus,omitempty"`
	PurchasedContentIDs   []uint  `json:"purchasedContentIds"`
}

// PaymentService derives payment summaries. Read-only.
type PaymentService struct {
	store store.PaymentStore
	now   func() time.Time
}

func NewPaymentService(s store.PaymentStore) *PaymentService {
	return &PaymentService{store: s, now: time.Now}
}

// UserPaymentSummary computes the summary from scratch on every call. Only
// COMPLETED purchases count toward totals; duplicate completed rows for one
// content item collapse into a single id. A user with no rows at all gets a
// zero summary, not an error.
func (s *PaymentService) UserPaymentSummary(userID uint) (*PaymentSummary, error) {
	purchases, err := s.store.PurchasesByUser(userID)
	if err != nil {
		return nil, dataAccess("purchase history", err)
	}

	summary := &PaymentSummary{PurchasedContentIDs: []uint{}}
	seen := make(map[uint]bool)
	for _, p := range purchases {
		if p.Status != models.PurchaseStatusCompleted {
			continue
		}
		summary.TotalPurchases++
		summary.TotalSpent += p.AmountPaid
		if p.ContentID != nil && !seen[*p.ContentID] {
			seen[*p.ContentID] = true
			summary.PurchasedContentIDs = append(summary.PurchasedContentIDs, *p.ContentID)
		}
	}
	sort.Slice(summary.PurchasedContentIDs, func(i, j int) bool {
		return summary.PurchasedContentIDs[i] < summary.PurchasedContentIDs[j]
	})

	sub, err := s.store.CurrentSubscription(userID, s.now())
	if err != nil {
		return nil, dataAccess("subscription lookup", err)
	}
	if sub != nil {
		summary.HasActiveSubscription = true
		summary.SubscriptionStatus = sub.Status
		return summary, nil
	}

	// No current subscription: report the latest known status, if any.
	latest, err := s.store.LatestSubscription(userID)
	if err != nil {
		return nil, dataAccess("subscription lookup", err)
	}
	if latest != nil {
		summary.SubscriptionStatus = latest.Status
	}
	return summary, nil
}

// UserPurchases returns the raw purchase rows together with the summary and
// the subscription considered current, for the user-purchases endpoint.
func (s *PaymentService) UserPurchases(userID uint) ([]models.Purchase, *models.Subscription, *PaymentSummary, error) {
	purchases, err := s.store.PurchasesByUser(userID)
	if err != nil {
		return nil, nil, nil, dataAccess("purchase history", err)
	}
	sub, err := s.store.CurrentSubscription(userID, s.now())
	if err != nil {
		return nil, nil, nil, dataAccess("subscription lookup", err)
	}
	summary, err := s.UserPaymentSummary(userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return purchases, sub, summary, nil
}
