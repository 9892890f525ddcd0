package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Package is a sellable catalog entry: a themed or tiered book-subscription
// box. Price is stored in decimal major units (USD); the billing provider
// works in integer minor units, conversion happens in the sync layer.
//
// StripeProductID/StripePriceID/StripeSynced/StripeError are denormalized
// convenience columns for listing screens; the authoritative sync state
// lives in PackageSyncState.
type Package struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	Name             string       `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Slug             string       `gorm:"type:varchar(170);uniqueIndex" json:"slug" validate:"required,max=170"`
	ThemeID          *uint        `gorm:"index" json:"theme_id"`
	Theme            *Theme       `gorm:"foreignKey:ThemeID" json:"theme,omitempty"`
	ShortDescription string       `gorm:"type:varchar(160)" json:"short_description" validate:"max=160"`
	Enabled          bool         `gorm:"default:true;index" json:"enabled"`
	IconPath         string       `gorm:"type:varchar(255)" json:"icon_path"`
	SortOrder        int          `gorm:"default:0;index" json:"sort_order"`
	Price            float64      `gorm:"type:decimal(10,2);not null" json:"price" validate:"gte=0"`
	AllowedGenres    string       `gorm:"type:varchar(500)" json:"allowed_genres"`
	PackageTierID    uint         `gorm:"not null;index" json:"package_tier_id" validate:"required"`
	PackageTier      *PackageTier `gorm:"foreignKey:PackageTierID" json:"package_tier,omitempty"`
	StripeProductID  string       `gorm:"type:varchar(191);index" json:"stripe_product_id"`
	StripePriceID    string       `gorm:"type:varchar(191)" json:"stripe_price_id"`
	StripeSynced     bool         `gorm:"default:false" json:"stripe_synced"`
	StripeError      string       `gorm:"type:text" json:"stripe_error,omitempty"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Package) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// GenreList splits the comma-joined allowed genres into a slice.
func (p *Package) GenreList() []string {
	if strings.TrimSpace(p.AllowedGenres) == "" {
		return nil
	}
	parts := strings.Split(p.AllowedGenres, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if g := strings.TrimSpace(part); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// PackageDescription holds the long-form description shown on package
// detail pages, separate from the 160-char short description.
type PackageDescription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PackageID uint      `gorm:"not null;index" json:"package_id"`
	Body      string    `gorm:"type:longtext" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
