package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// PackageTier groups packages into an edition line (e.g. "classic edition").
// The support flags control whether themed and/or regular packages may be
// created in the tier; they are also mirrored into the billing provider's
// product metadata on sync.
type PackageTier struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(150);uniqueIndex" json:"name" validate:"required,min=2,max=150"`
	Slug            string    `gorm:"type:varchar(170);uniqueIndex" json:"slug" validate:"required,max=170"`
	SortOrder       int       `gorm:"default:0;index" json:"sort_order"`
	SupportsThemed  bool      `gorm:"default:true" json:"supports_themed"`
	SupportsRegular bool      `gorm:"default:true" json:"supports_regular"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *PackageTier) Validate() error {
	v := validator.New()

	return v.Struct(t)
}
