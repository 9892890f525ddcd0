package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Genre is a book genre label packages can allow (e.g. "fantasy", "mystery").
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex" json:"name" validate:"required,min=2,max=100"`
	Slug      string    `gorm:"type:varchar(120);uniqueIndex" json:"slug" validate:"required,max=120"`
	SortOrder int       `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *Genre) Validate() error {
	v := validator.New()

	return v.Struct(g)
}
