package store

import (
	"errors"
	"fmt"
	"time"

	"podlearn/models"

	"gorm.io/gorm"
)

// GormStore is the production Store backed by a GORM database handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CurrentSubscription(userID uint, at time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.
		Where("user_id = ? AND status = ? AND is_deleted = false", userID, models.SubscriptionActive).
		Where("current_period_start <= ? AND current_period_end > ?", at, at).
		Order("current_period_end desc").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *GormStore) LatestSubscription(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.
		Where("user_id = ? AND is_deleted = false", userID).
		Order("current_period_end desc").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *GormStore) HasCompletedContentPurchase(userID, contentID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Purchase{}).
		Where("user_id = ? AND content_id = ? AND status = ? AND is_deleted = false",
			userID, contentID, models.PurchaseStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) HasCompletedSeriesPurchase(userID, seriesID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Purchase{}).
		Where("user_id = ? AND series_id = ? AND status = ? AND is_deleted = false",
			userID, seriesID, models.PurchaseStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ContentByID(contentID uint) (*models.Content, error) {
	var content models.Content
	err := s.db.Where("id = ? AND is_deleted = false", contentID).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (s *GormStore) PurchasesByUser(userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.
		Where("user_id = ? AND is_deleted = false", userID).
		Order("created_at desc").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *GormStore) QuizByID(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.
		Where("id = ? AND is_deleted = false", quizID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = false").Order("quiz_questions.order_index asc")
		}).
		Preload("Questions.Options", "is_deleted = false").
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *GormStore) CompletionCount(userID, quizID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.QuizCompletion{}).
		Where("user_id = ? AND quiz_id = ? AND is_deleted = false", userID, quizID).
		Count(&count).Error
	return count, err
}

func (s *GormStore) CreateCompletion(completion *models.QuizCompletion) error {
	return s.db.Create(completion).Error
}

func (s *GormStore) CompletionsByUser(userID uint) ([]models.QuizCompletion, error) {
	var completions []models.QuizCompletion
	err := s.db.
		Where("user_id = ? AND is_deleted = false", userID).
		Order("created_at asc").
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}

func (s *GormStore) CompletionsByUserAndQuiz(userID, quizID uint) ([]models.QuizCompletion, error) {
	var completions []models.QuizCompletion
	err := s.db.
		Where("user_id = ? AND quiz_id = ? AND is_deleted = false", userID, quizID).
		Order("attempt_number asc").
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}

// SetProgressFlag upserts the (user, content) progress row and raises one
// milestone flag. Flags are never lowered.
func (s *GormStore) SetProgressFlag(userID, contentID uint, milestone string, at time.Time) error {
	updates, err := milestoneColumns(milestone, at)
	if err != nil {
		return err
	}

	var progress models.ContentProgress
	err = s.db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.ContentProgress{UserID: userID, ContentID: contentID}
		if err := s.db.Create(&progress).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return s.db.Model(&progress).Updates(updates).Error
}

func milestoneColumns(milestone string, at time.Time) (map[string]interface{}, error) {
	switch milestone {
	case MilestoneListened:
		return map[string]interface{}{"listened": true, "listened_at": at}, nil
	case MilestoneQuizCompleted:
		return map[string]interface{}{"quiz_completed": true, "quiz_completed_at": at}, nil
	case MilestoneReportDownloaded:
		return map[string]interface{}{"report_downloaded": true, "report_downloaded_at": at}, nil
	case MilestoneCertificateDownloaded:
		return map[string]interface{}{"certificate_downloaded": true, "certificate_downloaded_at": at}, nil
	default:
		return nil, fmt.Errorf("unknown milestone %q", milestone)
	}
}

func (s *GormStore) ProgressByUserAndContent(userID, contentID uint) (*models.ContentProgress, error) {
	var progress models.ContentProgress
	err := s.db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *GormStore) CertificateByUserAndContent(userID, contentID uint) (*models.Certificate, error) {
	var cert models.Certificate
	err := s.db.
		Where("user_id = ? AND content_id = ? AND is_deleted = false", userID, contentID).
		First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (s *GormStore) CreateCertificate(cert *models.Certificate) error {
	return s.db.Create(cert).Error
}
