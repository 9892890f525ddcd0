package repository

import (
	"github.com/pagebound/BookCrate/app/models"
	"gorm.io/gorm"
)

// mediaRepository implements the MediaRepository interface
type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository instance
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(media *models.PackageMedia) error {
	return r.db.Create(media).Error
}

func (r *mediaRepository) GetByID(id uint) (*models.PackageMedia, error) {
	var media models.PackageMedia
	if err := r.db.First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// GetByPackageID returns media for a package ordered by sort order.
// limit <= 0 returns all rows.
func (r *mediaRepository) GetByPackageID(packageID uint, limit int) ([]models.PackageMedia, error) {
	var media []models.PackageMedia
	q := r.db.Where("package_id = ?", packageID).Order("sort_order ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&media).Error
	return media, err
}

func (r *mediaRepository) Delete(id uint) error {
	return r.db.Delete(&models.PackageMedia{}, id).Error
}

func (r *mediaRepository) CountByPackageID(packageID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PackageMedia{}).Where("package_id = ?", packageID).Count(&count).Error
	return count, err
}
