package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionStatus enum values
const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionCanceled = "CANCELED"
	SubscriptionPastDue  = "PAST_DUE"
	SubscriptionExpired  = "EXPIRED"
)

// Subscription tracks a user's all-access plan. Statuses are driven by the
// payment gateway's webhooks; the sweeper only moves ACTIVE rows past their
// period end to EXPIRED. Multiple rows per user can exist over time; the
// current one is the ACTIVE row whose period covers now, latest period end
// winning when several do.
type Subscription struct {
	gorm.Model
	UserID             uint      `gorm:"not null;index" json:"userId"`
	Plan               string    `gorm:"type:varchar(50);default:'MONTHLY'" json:"plan"`
	Status             string    `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	CurrentPeriodStart time.Time `gorm:"not null" json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time `gorm:"not null" json:"currentPeriodEnd"`
	CancelAtPeriodEnd  bool      `gorm:"default:false" json:"cancelAtPeriodEnd"`
	GatewaySubID       string    `gorm:"type:varchar(100);index" json:"gatewaySubId"`
	ReminderSent       bool      `gorm:"default:false" json:"reminderSent"`
	IsDeleted          bool      `gorm:"default:false" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsCurrent reports whether the subscription grants access at t.
func (s *Subscription) IsCurrent(t time.Time) bool {
	return s.Status == SubscriptionActive &&
		!t.Before(s.CurrentPeriodStart) && t.Before(s.CurrentPeriodEnd)
}
