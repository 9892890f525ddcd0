package repository

import (
	"github.com/pagebound/BookCrate/app/models"
	"gorm.io/gorm"
)

// genreRepository implements the GenreRepository interface
type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new genre repository instance
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

func (r *genreRepository) GetByID(id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) GetAll() ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.Order("sort_order ASC, name ASC").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) Update(genre *models.Genre) error {
	return r.db.Save(genre).Error
}

func (r *genreRepository) Delete(id uint) error {
	return r.db.Delete(&models.Genre{}, id).Error
}

func (r *genreRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Genre{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *genreRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Genre{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}

// themeRepository implements the ThemeRepository interface
type themeRepository struct {
	db *gorm.DB
}

// NewThemeRepository creates a new theme repository instance
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) Create(theme *models.Theme) error {
	return r.db.Create(theme).Error
}

func (r *themeRepository) GetByID(id uint) (*models.Theme, error) {
	var theme models.Theme
	if err := r.db.First(&theme, id).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepository) GetAll() ([]models.Theme, error) {
	var themes []models.Theme
	err := r.db.Order("name ASC").Find(&themes).Error
	return themes, err
}

func (r *themeRepository) GetActive() ([]models.Theme, error) {
	var themes []models.Theme
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&themes).Error
	return themes, err
}

func (r *themeRepository) Update(theme *models.Theme) error {
	return r.db.Save(theme).Error
}

func (r *themeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Theme{}, id).Error
}

func (r *themeRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Theme{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *themeRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Theme{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}

// packageTierRepository implements the PackageTierRepository interface
type packageTierRepository struct {
	db *gorm.DB
}

// NewPackageTierRepository creates a new package tier repository instance
func NewPackageTierRepository(db *gorm.DB) PackageTierRepository {
	return &packageTierRepository{db: db}
}

func (r *packageTierRepository) Create(tier *models.PackageTier) error {
	return r.db.Create(tier).Error
}

func (r *packageTierRepository) GetByID(id uint) (*models.PackageTier, error) {
	var tier models.PackageTier
	if err := r.db.First(&tier, id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *packageTierRepository) GetAll() ([]models.PackageTier, error) {
	var tiers []models.PackageTier
	err := r.db.Order("sort_order ASC, name ASC").Find(&tiers).Error
	return tiers, err
}

func (r *packageTierRepository) Update(tier *models.PackageTier) error {
	return r.db.Save(tier).Error
}

func (r *packageTierRepository) Delete(id uint) error {
	return r.db.Delete(&models.PackageTier{}, id).Error
}

func (r *packageTierRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.PackageTier{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *packageTierRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PackageTier{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}
