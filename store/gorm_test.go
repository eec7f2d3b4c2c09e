package store

import (
	"testing"
	"time"

	"podlearn/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *GormStore {
	t.Helper()

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
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizOption{},
		&models.QuizCompletion{},
		&models.ContentProgress{},
		&models.Certificate{},
	))

	return NewGormStore(db)
}

func TestCurrentSubscription_LatestPeriodEndWins(t *testing.T) {
	st := testStore(t)
	now := time.Now()

	short := models.Subscription{
		UserID:             1,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: now.Add(-48 * time.Hour),
		CurrentPeriodEnd:   now.Add(12 * time.Hour),
		Plan:               "MONTHLY",
	}
	long := models.Subscription{
		UserID:             1,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: now.Add(-24 * time.Hour),
		CurrentPeriodEnd:   now.Add(300 * 24 * time.Hour),
		Plan:               "YEARLY",
	}
	require.NoError(t, st.db.Create(&short).Error)
	require.NoError(t, st.db.Create(&long).Error)

	sub, err := st.CurrentSubscription(1, now)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "YEARLY", sub.Plan)
}

func TestCurrentSubscription_OutsidePeriodIsNil(t *testing.T) {
	st := testStore(t)
	now := time.Now()

	lapsed := models.Subscription{
		UserID:             1,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: now.Add(-72 * time.Hour),
		CurrentPeriodEnd:   now.Add(-24 * time.Hour),
	}
	require.NoError(t, st.db.Create(&lapsed).Error)

	sub, err := st.CurrentSubscription(1, now)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestHasCompletedContentPurchase(t *testing.T) {
	st := testStore(t)
	contentID := uint(10)

	pending := models.Purchase{UserID: 1, ContentID: &contentID, Status: models.PurchaseStatusPending}
	require.NoError(t, st.db.Create(&pending).Error)

	ok, err := st.HasCompletedContentPurchase(1, contentID)
	require.NoError(t, err)
	assert.False(t, ok)

	completed := models.Purchase{UserID: 1, ContentID: &contentID, Status: models.PurchaseStatusCompleted}
	require.NoError(t, st.db.Create(&completed).Error)

	ok, err = st.HasCompletedContentPurchase(1, contentID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetProgressFlag_UpsertsSingleRow(t *testing.T) {
	st := testStore(t)
	now := time.Now()

	require.NoError(t, st.SetProgressFlag(1, 10, MilestoneListened, now))
	require.NoError(t, st.SetProgressFlag(1, 10, MilestoneReportDownloaded, now))

	var count int64
	require.NoError(t, st.db.Model(&models.ContentProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	progress, err := st.ProgressByUserAndContent(1, 10)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.True(t, progress.Listened)
	assert.True(t, progress.ReportDownloaded)
	assert.False(t, progress.QuizCompleted)
	assert.NotNil(t, progress.ListenedAt)
}

func TestSetProgressFlag_UnknownMilestone(t *testing.T) {
	st := testStore(t)
	assert.Error(t, st.SetProgressFlag(1, 10, "bogus", time.Now()))
}

func TestExpireDueSubscriptions(t *testing.T) {
	st := testStore(t)
	now := time.Now()

	due := models.Subscription{
		UserID:             1,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: now.Add(-48 * time.Hour),
		CurrentPeriodEnd:   now.Add(-time.Hour),
	}
	current := models.Subscription{
		UserID:             2,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: now.Add(-time.Hour),
		CurrentPeriodEnd:   now.Add(time.Hour),
	}
	require.NoError(t, st.db.Create(&due).Error)
	require.NoError(t, st.db.Create(&current).Error)

	expired, err := st.ExpireDueSubscriptions(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	var reloaded models.Subscription
	require.NoError(t, st.db.First(&reloaded, due.ID).Error)
	assert.Equal(t, models.SubscriptionExpired, reloaded.Status)

	var reloadedCurrent models.Subscription
	require.NoError(t, st.db.First(&reloadedCurrent, current.ID).Error)
	assert.Equal(t, models.SubscriptionActive, reloadedCurrent.Status)
}

func TestCompletionAppendOnly(t *testing.T) {
	st := testStore(t)

	first := models.QuizCompletion{UserID: 1, QuizID: 1, Score: 4, MaxScore: 10, AttemptNumber: 1}
	second := models.QuizCompletion{UserID: 1, QuizID: 1, Score: 8, MaxScore: 10, AttemptNumber: 2}
	require.NoError(t, st.CreateCompletion(&first))
	require.NoError(t, st.CreateCompletion(&second))

	count, err := st.CompletionCount(1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	rows, err := st.CompletionsByUserAndQuiz(1, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 4, rows[0].Score)
	assert.Equal(t, 8, rows[1].Score)
}

func TestPurchaseByOrderID(t *testing.T) {
	st := testStore(t)
	contentID := uint(10)

	purchase := models.Purchase{
		UserID:         1,
		ContentID:      &contentID,
		Status:         models.PurchaseStatusPending,
		GatewayOrderID: "ord_123",
	}
	require.NoError(t, st.CreatePurchase(&purchase))

	found, err := st.PurchaseByOrderID("ord_123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, purchase.ID, found.ID)

	missing, err := st.PurchaseByOrderID("ord_nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
