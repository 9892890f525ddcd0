package models

import "time"

// PackageMedia is an image attachment for a package, stored in S3. The
// first three media rows (by sort order) are pushed to the billing
// provider as product images on sync.
type PackageMedia struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PackageID   uint      `gorm:"not null;index" json:"package_id"`
	ObjectKey   string    `gorm:"type:varchar(255);uniqueIndex" json:"object_key"`
	URL         string    `gorm:"type:varchar(500)" json:"url"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	FileSize    int64     `gorm:"default:0" json:"file_size"`
	SortOrder   int       `gorm:"default:0;index" json:"sort_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
