package models

import (
	"time"

	"gorm.io/gorm"
)

// PurchaseStatus defines the settlement state of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED"
	PurchaseStatusFailed    PurchaseStatus = "FAILED"
	PurchaseStatusRefunded  PurchaseStatus = "REFUNDED"
)

// Purchase records a one-off payment for a content item or a whole series.
// Exactly one of ContentID / SeriesID is set. Duplicate COMPLETED rows for
// the same (user, content) pair can exist; any one of them grants access.
type Purchase struct {
	gorm.Model
	UserID     uint           `gorm:"not null;index" json:"userId"`
	ContentID  *uint          `gorm:"index" json:"contentId,omitempty"`
	SeriesID   *uint          `gorm:"index" json:"seriesId,omitempty"`
	AmountPaid float64        `gorm:"not null;default:0" json:"amountPaid"`
	Currency   string         `gorm:"type:varchar(10);default:'EUR'" json:"currency"`
	Status     PurchaseStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	// Payment gateway details
	GatewayOrderID   string `gorm:"type:varchar(100);index" json:"gatewayOrderId"`
	GatewayPaymentID string `gorm:"type:varchar(100)" json:"gatewayPaymentId"`

	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
	IsDeleted   bool       `gorm:"default:false" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Purchase) TableName() string {
	return "purchases"
}
