package store

import (
	"errors"
	"time"

	"podlearn/models"

	"gorm.io/gorm"
)

func (s *GormStore) PublishedContents(page, limit int) ([]models.Content, int64, error) {
	query := s.db.Model(&models.Content{}).
		Where("is_published = true AND is_deleted = false")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contents []models.Content
	offset := (page - 1) * limit
	err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

func (s *GormStore) ContentBySlug(slug string) (*models.Content, error) {
	var content models.Content
	err := s.db.
		Where("slug = ? AND is_published = true AND is_deleted = false", slug).
		Preload("Series").
		First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (s *GormStore) ContentsBySeries(seriesID uint) ([]models.Content, error) {
	var contents []models.Content
	err := s.db.
		Where("series_id = ? AND is_published = true AND is_deleted = false", seriesID).
		Order("created_at asc").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *GormStore) PublishedSeries() ([]models.Series, error) {
	var series []models.Series
	err := s.db.
		Where("is_published = true AND is_deleted = false").
		Order("created_at desc").
		Find(&series).Error
	if err != nil {
		return nil, err
	}
	return series, nil
}

func (s *GormStore) SeriesBySlug(slug string) (*models.Series, error) {
	var series models.Series
	err := s.db.
		Where("slug = ? AND is_published = true AND is_deleted = false", slug).
		First(&series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (s *GormStore) SeriesByID(seriesID uint) (*models.Series, error) {
	var series models.Series
	err := s.db.Where("id = ? AND is_deleted = false", seriesID).First(&series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (s *GormStore) ContentSlugExists(slug string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Content{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) SeriesSlugExists(slug string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Series{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CreateContent(content *models.Content) error {
	return s.db.Create(content).Error
}

func (s *GormStore) SaveContent(content *models.Content) error {
	return s.db.Save(content).Error
}

func (s *GormStore) CreateSeries(series *models.Series) error {
	return s.db.Create(series).Error
}

func (s *GormStore) SaveSeries(series *models.Series) error {
	return s.db.Save(series).Error
}

func (s *GormStore) CreateQuiz(quiz *models.Quiz) error {
	return s.db.Create(quiz).Error
}

func (s *GormStore) CreatePurchase(purchase *models.Purchase) error {
	return s.db.Create(purchase).Error
}

func (s *GormStore) PurchaseByOrderID(orderID string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.
		Where("gateway_order_id = ? AND is_deleted = false", orderID).
		First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (s *GormStore) SavePurchase(purchase *models.Purchase) error {
	return s.db.Save(purchase).Error
}

func (s *GormStore) SubscriptionByGatewayID(gatewaySubID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.
		Where("gateway_sub_id = ? AND is_deleted = false", gatewaySubID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *GormStore) SaveSubscription(sub *models.Subscription) error {
	return s.db.Save(sub).Error
}

func (s *GormStore) UserByID(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND is_deleted = false", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExpireDueSubscriptions flips ACTIVE rows whose period has ended to
// EXPIRED and returns how many were touched.
func (s *GormStore) ExpireDueSubscriptions(now time.Time) (int64, error) {
	result := s.db.Model(&models.Subscription{}).
		Where("status = ? AND current_period_end < ? AND is_deleted = false", models.SubscriptionActive, now).
		Update("status", models.SubscriptionExpired)
	return result.RowsAffected, result.Error
}

func (s *GormStore) SubscriptionsExpiringBetween(from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.
		Where("status = ? AND reminder_sent = false AND is_deleted = false", models.SubscriptionActive).
		Where("current_period_end BETWEEN ? AND ?", from, to).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *GormStore) MarkReminderSent(subID uint) error {
	return s.db.Model(&models.Subscription{}).
		Where("id = ?", subID).
		Update("reminder_sent", true).Error
}
