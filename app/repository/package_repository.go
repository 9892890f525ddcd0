package repository

import (
	"errors"

	"github.com/pagebound/BookCrate/app/models"
	"gorm.io/gorm"
)

// packageRepository implements the PackageRepository interface
type packageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a new package repository instance
func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(pkg *models.Package) error {
	return r.db.Create(pkg).Error
}

// GetByID retrieves a package with its theme and tier associations
func (r *packageRepository) GetByID(id uint) (*models.Package, error) {
	var pkg models.Package
	err := r.db.Preload("Theme").Preload("PackageTier").First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) GetBySlug(slug string) (*models.Package, error) {
	var pkg models.Package
	err := r.db.Preload("Theme").Preload("PackageTier").Where("slug = ?", slug).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) List(offset, limit int) ([]models.Package, error) {
	var pkgs []models.Package
	err := r.db.Preload("Theme").Preload("PackageTier").
		Order("sort_order ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&pkgs).Error
	return pkgs, err
}

func (r *packageRepository) Update(pkg *models.Package) error {
	return r.db.Save(pkg).Error
}

// Delete removes a package and all dependent rows (media, descriptions,
// sync state) in a single transaction. Cascade is enforced here by foreign
// key, never by matching names.
func (r *packageRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&models.PackageMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", id).Delete(&models.PackageDescription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", id).Delete(&models.PackageSyncState{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Package{}, id).Error
	})
}

func (r *packageRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Package{}).Count(&count).Error
	return count, err
}

func (r *packageRepository) UpdateSortOrder(id uint, sortOrder int) error {
	return r.db.Model(&models.Package{}).Where("id = ?", id).
		Update("sort_order", sortOrder).Error
}

func (r *packageRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Package{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *packageRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Package{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}

func (r *packageRepository) GetDescription(packageID uint) (*models.PackageDescription, error) {
	var desc models.PackageDescription
	err := r.db.Where("package_id = ?", packageID).First(&desc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &desc, nil
}

func (r *packageRepository) SaveDescription(desc *models.PackageDescription) error {
	if desc.ID == 0 {
		existing, err := r.GetDescription(desc.PackageID)
		if err != nil {
			return err
		}
		if existing != nil {
			desc.ID = existing.ID
			desc.CreatedAt = existing.CreatedAt
		}
	}
	return r.db.Save(desc).Error
}

func (r *packageRepository) GetSyncState(packageID uint) (*models.PackageSyncState, error) {
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
