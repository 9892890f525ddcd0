package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Order is a fulfillment record for a purchased package.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Number        string    `gorm:"type:varchar(40);uniqueIndex" json:"number"`
	CustomerName  string    `gorm:"type:varchar(150)" json:"customer_name" validate:"required,max=150"`
	CustomerEmail string    `gorm:"type:varchar(200);index" json:"customer_email" validate:"required,email"`
	PackageID     uint      `gorm:"not null;index" json:"package_id" validate:"required"`
	Package       *Package  `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity" validate:"gte=1"`
	UnitPrice     float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Status        string    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Order) Validate() error {
	v := validator.New()

	return v.Struct(o)
}
