package models

import "time"

const (
	TransactionStatusPending   = "pending"
	TransactionStatusSucceeded = "succeeded"
	TransactionStatusFailed    = "failed"
	TransactionStatusRefunded  = "refunded"
)

// Transaction records a payment attempt against an order as reported by the
// billing provider. Amounts are integer minor units (cents), matching the
// provider's representation.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id" validate:"required"`
	Order       *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	ProviderRef string    `gorm:"type:varchar(191);uniqueIndex" json:"provider_ref"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Currency    string    `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	Status      string    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
