package catalogsync

import (
	"errors"

	"github.com/pagebound/BookCrate/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the catalog store operations the sync engine needs.
type Repository interface {
	GetPackageByID(id uint) (*models.Package, error)
	GetPackageMedia(packageID uint, limit int) ([]models.PackageMedia, error)
	// GetSyncState returns (nil, nil) when no row exists for the package.
	GetSyncState(packageID uint) (*models.PackageSyncState, error)
	// UpsertSyncState is keyed by package id. The upsert is a single-row
	// atomic write: concurrent syncs of the same package resolve
	// last-writer-wins, different packages never block each other.
	UpsertSyncState(rec *models.PackageSyncState) error
	ListPackagesMissingSyncState() ([]models.Package, error)
	// UpdatePackageSyncCache refreshes the denormalized stripe_* columns on
	// the package row for listing screens.
	UpdatePackageSyncCache(packageID uint, productID, priceID string, synced bool, syncErr string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a sync repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetPackageByID(id uint) (*models.Package, error) {
	var pkg models.Package
	err := r.db.Preload("Theme").Preload("PackageTier").First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *gormRepository) GetPackageMedia(packageID uint, limit int) ([]models.PackageMedia, error) {
	var media []models.PackageMedia
	err := r.db.Where("package_id = ?", packageID).
		Order("sort_order ASC, id ASC").
		Limit(limit).
		Find(&media).Error
	return media, err
}

func (r *gormRepository) GetSyncState(packageID uint) (*models.PackageSyncState, error) {
	var state models.PackageSyncState
	err := r.db.Where("package_id = ?", packageID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *gormRepository) UpsertSyncState(rec *models.PackageSyncState) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "package_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"stripe_product_id",
			"stripe_price_id",
			"status",
			"last_synced_at",
			"last_error",
			"updated_at",
		}),
	}).Create(rec).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("package_id = ?", rec.PackageID).First(rec).Error
}

func (r *gormRepository) ListPackagesMissingSyncState() ([]models.Package, error) {
	var pkgs []models.Package
	err := r.db.Preload("PackageTier").
		Where("stripe_product_id = '' OR stripe_product_id IS NULL").
		Order("sort_order ASC, id ASC").
		Find(&pkgs).Error
	return pkgs, err
}

func (r *gormRepository) UpdatePackageSyncCache(packageID uint, productID, priceID string, synced bool, syncErr string) error {
	updates := map[string]interface{}{
		"stripe_product_id": productID,
		"stripe_price_id":   priceID,
		"stripe_synced":     synced,
		"stripe_error":      syncErr,
	}
	return r.db.Model(&models.Package{}).Where("id = ?", packageID).Updates(updates).Error
}
