package repository

import (
	"github.com/pagebound/BookCrate/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for staff-user database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// GenreRepository defines the interface for genre-related database operations
type GenreRepository interface {
	Create(genre *models.Genre) error
	GetByID(id uint) (*models.Genre, error)
	GetAll() ([]models.Genre, error)
	Update(genre *models.Genre) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// ThemeRepository defines the interface for theme-related database operations
type ThemeRepository interface {
	Create(theme *models.Theme) error
	GetByID(id uint) (*models.Theme, error)
	GetAll() ([]models.Theme, error)
	GetActive() ([]models.Theme, error)
	Update(theme *models.Theme) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// PackageTierRepository defines the interface for package tier operations
type PackageTierRepository interface {
	Create(tier *models.PackageTier) error
	GetByID(id uint) (*models.PackageTier, error)
	GetAll() ([]models.PackageTier, error)
	Update(tier *models.PackageTier) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// PackageRepository defines the interface for package-related database
// operations. Delete cascades to media, descriptions and sync state inside
// one transaction; there is no cleanup-by-name convention.
type PackageRepository interface {
	Create(pkg *models.Package) error
	GetByID(id uint) (*models.Package, error)
	GetBySlug(slug string) (*models.Package, error)
	List(offset, limit int) ([]models.Package, error)
	Update(pkg *models.Package) error
	Delete(id uint) error
	Count() (int64, error)
	UpdateSortOrder(id uint, sortOrder int) error
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
	GetDescription(packageID uint) (*models.PackageDescription, error)
	SaveDescription(desc *models.PackageDescription) error
	GetSyncState(packageID uint) (*models.PackageSyncState, error)
}

// MediaRepository defines the interface for package media operations
type MediaRepository interface {
	Create(media *models.PackageMedia) error
	GetByID(id uint) (*models.PackageMedia, error)
	GetByPackageID(packageID uint, limit int) ([]models.PackageMedia, error)
	Delete(id uint) error
	CountByPackageID(packageID uint) (int64, error)
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByNumber(number string) (*models.Order, error)
	List(offset, limit int, status string) ([]models.Order, error)
	UpdateStatus(id uint, status string) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

// TransactionRepository defines the interface for payment transactions
type TransactionRepository interface {
	Create(tx *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	GetByProviderRef(ref string) (*models.Transaction, error)
	GetByOrderID(orderID uint) ([]models.Transaction, error)
	List(offset, limit int) ([]models.Transaction, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Genre       GenreRepository
	Theme       ThemeRepository
	PackageTier PackageTierRepository
	Package     PackageRepository
	Media       MediaRepository
	Order       OrderRepository
	Transaction TransactionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Genre:       NewGenreRepository(db),
		Theme:       NewThemeRepository(db),
		PackageTier: NewPackageTierRepository(db),
		Package:     NewPackageRepository(db),
		Media:       NewMediaRepository(db),
		Order:       NewOrderRepository(db),
		Transaction: NewTransactionRepository(db),
	}
}
