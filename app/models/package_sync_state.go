package models

import "time"

const (
	SyncStatusPending = "pending"
	SyncStatusSynced  = "synced"
	SyncStatusFailed  = "failed"
)

// PackageSyncState links a local package to its remote billing counterpart.
// At most one row exists per package (unique index); a row without a
// StripeProductID is equivalent to "never synced". Rows are created on the
// first sync attempt, updated on every subsequent attempt, and removed only
// when the package itself is deleted.
type PackageSyncState struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PackageID       uint       `gorm:"not null;uniqueIndex" json:"package_id"`
	StripeProductID string     `gorm:"type:varchar(191);index" json:"stripe_product_id"`
	StripePriceID   string     `gorm:"type:varchar(191)" json:"stripe_price_id"`
	Status          string     `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	LastSyncedAt    *time.Time `gorm:"type:timestamp;default:null" json:"last_synced_at,omitempty"`
	LastError       string     `gorm:"type:text" json:"last_error,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsSynced reports whether the package has a remote product on file.
func (s *PackageSyncState) IsSynced() bool {
	return s != nil && s.StripeProductID != ""
}
