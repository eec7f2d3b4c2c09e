package services

import (
	"time"

	"podlearn/store"
)

// Access type labels returned alongside a positive decision.
const (
	AccessTypeFree         = "free"
	AccessTypeSubscription = "subscription"
	AccessTypePurchase     = "purchase"
	AccessTypeSeries       = "series_purchase"
)

// EntitlementService decides whether a user may access paid content. It is
// read-only; all writes happen elsewhere.
type EntitlementService struct {
	store store.EntitlementStore
	now   func() time.Time
}

func NewEntitlementService(s store.EntitlementStore) *EntitlementService {
	return &EntitlementService{store: s, now: time.Now}
}

// HasFullAccess reports whether the user may access the content item:
// an active subscription, a completed purchase for the item itself, or a
// completed purchase covering the item's series. Unknown users or content
// yield false without error; only store failures are returned as errors.
// The subscription check runs first so the common subscriber case needs a
// single read.
func (s *EntitlementService) HasFullAccess(userID, contentID uint) (bool, string, error) {
	sub, err := s.store.CurrentSubscription(userID, s.now())
	if err != nil {
		return false, "", dataAccess("subscription lookup", err)
	}
	if sub != nil {
		return true, AccessTypeSubscription, nil
	}

	purchased, err := s.store.HasCompletedContentPurchase(userID, contentID)
	if err != nil {
		return false, "", dataAccess("purchase lookup", err)
	}
	if purchased {
		return true, AccessTypePurchase, nil
	}

	content, err := s.store.ContentByID(contentID)
	if err != nil {
		return false, "", dataAccess("content lookup", err)
	}
	if content == nil || content.SeriesID == nil {
		return false, "", nil
	}

	seriesPurchased, err := s.store.HasCompletedSeriesPurchase(userID, *content.SeriesID)
	if err != nil {
		return false, "", dataAccess("series purchase lookup", err)
	}
	if seriesPurchased {
		return true, AccessTypeSeries, nil
	}
	return false, "", nil
}

// HasSeriesAccess reports whether the user may access every item of the
// series: an active subscription or a completed purchase of the series.
func (s *EntitlementService) HasSeriesAccess(userID, seriesID uint) (bool, string, error) {
	sub, err := s.store.CurrentSubscription(userID, s.now())
	if err != nil {
		return false, "", dataAccess("subscription lookup", err)
	}
	if sub != nil {
		return true, AccessTypeSubscription, nil
	}

	purchased, err := s.store.HasCompletedSeriesPurchase(userID, seriesID)
	if err != nil {
		return false, "", dataAccess("series purchase lookup", err)
	}
	if purchased {
		return true, AccessTypeSeries, nil
	}
	return false, "", nil
}
