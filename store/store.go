package store

import (
	"time"

	"podlearn/models"
)

// Milestone names accepted by SetProgressFlag.
const (
	MilestoneListened              = "listened"
	MilestoneQuizCompleted         = "quiz_completed"
	MilestoneReportDownloaded      = "report_downloaded"
	MilestoneCertificateDownloaded = "certificate_downloaded"
)

// EntitlementStore exposes the reads the access decision needs. Lookups
// return (nil, nil) for absent rows; an error always means the underlying
// store failed, never "not found".
type EntitlementStore interface {
	// CurrentSubscription returns the user's subscription that is ACTIVE and
	// whose period covers at. When several qualify the one with the latest
	// period end is returned.
	CurrentSubscription(userID uint, at time.Time) (*models.Subscription, error)
	HasCompletedContentPurchase(userID, contentID uint) (bool, error)
	HasCompletedSeriesPurchase(userID, seriesID uint) (bool, error)
	ContentByID(contentID uint) (*models.Content, error)
}

// PaymentStore exposes purchase history reads for the payment summary.
type PaymentStore interface {
	CurrentSubscription(userID uint, at time.Time) (*models.Subscription, error)
	LatestSubscription(userID uint) (*models.Subscription, error)
	PurchasesByUser(userID uint) ([]models.Purchase, error)
}

// QuizStore covers quiz reads plus the append-only completion log.
type QuizStore interface {
	QuizByID(quizID uint) (*models.Quiz, error)
	CompletionCount(userID, quizID uint) (int64, error)
	CreateCompletion(completion *models.QuizCompletion) error
	CompletionsByUser(userID uint) ([]models.QuizCompletion, error)
	CompletionsByUserAndQuiz(userID, quizID uint) ([]models.QuizCompletion, error)
}

// ProgressStore upserts per (user, content) milestone flags.
type ProgressStore interface {
	SetProgressFlag(userID, contentID uint, milestone string, at time.Time) error
	ProgressByUserAndContent(userID, contentID uint) (*models.ContentProgress, error)
}

// CertificateStore manages issued certificates.
type CertificateStore interface {
	CertificateByUserAndContent(userID, contentID uint) (*models.Certificate, error)
	CreateCertificate(cert *models.Certificate) error
}

// CatalogStore covers the published content/series surface plus admin
// creation.
type CatalogStore interface {
	PublishedContents(page, limit int) ([]models.Content, int64, error)
	ContentBySlug(slug string) (*models.Content, error)
	ContentsBySeries(seriesID uint) ([]models.Content, error)
	PublishedSeries() ([]models.Series, error)
	SeriesBySlug(slug string) (*models.Series, error)
	SeriesByID(seriesID uint) (*models.Series, error)
	ContentSlugExists(slug string) (bool, error)
	SeriesSlugExists(slug string) (bool, error)
	CreateContent(content *models.Content) error
	SaveContent(content *models.Content) error
	CreateSeries(series *models.Series) error
	SaveSeries(series *models.Series) error
	CreateQuiz(quiz *models.Quiz) error
}

// BillingStore covers the writes driven by checkout and gateway webhooks.
type BillingStore interface {
	CreatePurchase(purchase *models.Purchase) error
	PurchaseByOrderID(orderID string) (*models.Purchase, error)
	SavePurchase(purchase *models.Purchase) error
	SubscriptionByGatewayID(gatewaySubID string) (*models.Subscription, error)
	SaveSubscription(sub *models.Subscription) error
	UserByID(userID uint) (*models.User, error)
}

// SweeperStore backs the daily subscription expiry job.
type SweeperStore interface {
	ExpireDueSubscriptions(now time.Time) (int64, error)
	SubscriptionsExpiringBetween(from, to time.Time) ([]models.Subscription, error)
	MarkReminderSent(subID uint) error
	UserByID(userID uint) (*models.User, error)
}

// Store is the full data-access surface, implemented by the GORM store and
// substituted with fakes in tests.
type Store interface {
	EntitlementStore
	PaymentStore
	QuizStore
	ProgressStore
	CertificateStore
	CatalogStore
	BillingStore
}
