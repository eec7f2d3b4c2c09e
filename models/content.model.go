package models

import "gorm.io/gorm"

// ContentKind enum values
const (
	ContentKindPodcast = "PODCAST"
	ContentKindArticle = "ARTICLE"
)

// Content represents a single publishable item: a podcast episode or an article.
// AudioKey and ReportKey are object-storage keys, never public URLs.
type Content struct {
	gorm.Model
	Title         string   `gorm:"not null" json:"title"`
	Slug          string   `gorm:"uniqueIndex;not null" json:"slug"`
	Kind          string   `gorm:"type:varchar(20);not null" json:"kind"` // PODCAST, ARTICLE
	Description   string   `gorm:"type:text" json:"description"`
	Body          string   `gorm:"type:text" json:"body,omitempty"`
	AudioKey      string   `json:"-"`
	ReportKey     string   `json:"-"`
	Duration      int64    `gorm:"default:0" json:"duration"` // seconds
	Price         *float64 `json:"price,omitempty"`
	Currency      string   `gorm:"type:varchar(10);default:'EUR'" json:"currency"`
	SeriesID      *uint    `gorm:"index" json:"seriesId,omitempty"`
	IsPurchasable bool     `gorm:"default:false" json:"isPurchasable"`
	IsPublished   bool     `gorm:"default:false" json:"isPublished"`
	IsDeleted     bool     `gorm:"default:false" json:"-"`

	Series *Series `gorm:"foreignKey:SeriesID" json:"series,omitempty"`
}

func (Content) TableName() string {
	return "contents"
}

// IsFree reports whether the item requires no entitlement check. Content
// without a price, or not flagged purchasable, is open to everyone.
func (c *Content) IsFree() bool {
	return !c.IsPurchasable || c.Price == nil
}
