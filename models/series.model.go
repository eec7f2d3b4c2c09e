package models

import "gorm.io/gorm"

// Series groups multiple content items; purchasing a series grants access
// to every item in it.
type Series struct {
	gorm.Model
	Title       string   `gorm:"not null" json:"title"`
	Slug        string   `gorm:"uniqueIndex;not null" json:"slug"`
	Description string   `gorm:"type:text" json:"description"`
	Price       *float64 `json:"price,omitempty"`
	Currency    string   `gorm:"type:varchar(10);default:'EUR'" json:"currency"`
	IsPublished bool     `gorm:"default:false" json:"isPublished"`
	IsDeleted   bool     `gorm:"default:false" json:"-"`
}

func (Series) TableName() string {
	return "series"
}
