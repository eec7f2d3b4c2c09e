package models

import (
	"time"

	"gorm.io/gorm"
)

// ContentProgress holds per (user, content) milestone flags. One row per
// pair, updated in place as milestones occur.
type ContentProgress struct {
	gorm.Model
	UserID                  uint       `gorm:"not null;index:idx_progress_user_content,unique" json:"userId"`
	ContentID               uint       `gorm:"not null;index:idx_progress_user_content,unique" json:"contentId"`
	Listened                bool       `gorm:"default:false" json:"listened"`
	ListenedAt              *time.Time `json:"listenedAt,omitempty"`
	QuizCompleted           bool       `gorm:"default:false" json:"quizCompleted"`
	QuizCompletedAt         *time.Time `json:"quizCompletedAt,omitempty"`
	ReportDownloaded        bool       `gorm:"default:false" json:"reportDownloaded"`
	ReportDownloadedAt      *time.Time `json:"reportDownloadedAt,omitempty"`
	CertificateDownloaded   bool       `gorm:"default:false" json:"certificateDownloaded"`
	CertificateDownloadedAt *time.Time `json:"certificateDownloadedAt,omitempty"`
}

func (ContentProgress) TableName() string {
	return "content_progresses"
}
