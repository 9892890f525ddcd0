package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Theme is a seasonal or topical theme a package can be built around
// (e.g. "cozy winter reads").
type Theme struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(150);uniqueIndex" json:"name" validate:"required,min=2,max=150"`
	Slug        string    `gorm:"type:varchar(170);uniqueIndex" json:"slug" validate:"required,max=170"`
	Description string    `gorm:"type:text" json:"description" validate:"max=2000"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Theme) Validate() error {
	v := validator.New()

	return v.Struct(t)
}
