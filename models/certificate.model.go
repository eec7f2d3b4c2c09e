package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued when a user passes a content's quiz. The PDF lives
// in object storage under FileKey and is served through signed URLs only.
type Certificate struct {
	gorm.Model
	UserID       uint      `gorm:"not null;index" json:"userId"`
	ContentID    uint      `gorm:"not null;index" json:"contentId"`
	SerialNumber string    `gorm:"uniqueIndex;not null" json:"serialNumber"`
	FileKey      string    `json:"-"`
	IssuedAt     time.Time `gorm:"not null" json:"issuedAt"`
	IsDeleted    bool      `gorm:"default:false" json:"-"`
}

func (Certificate) TableName() string {
	return "certificates"
}
