package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/pagebound/BookCrate/app/models"
)

// ErrNotSynced is returned by ResyncPackage when the package has no remote
// product on file yet. Resync never creates products; use SyncPackage first.
var ErrNotSynced = errors.New("package has no remote product to resync")

// RemoteError wraps a failed billing provider call with the operation that
// raised it. The stored sync error message is the Error() string verbatim.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("billing %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Product is the remote billing product representation used by the engine.
type Product struct {
	ID          string
	Name        string
	Description string
	Images      []string
	URL         string
	Metadata    map[string]string
	Active      bool
}

// Price is a remote price object. Prices are immutable on the provider
// side: amount changes always mean deactivating the old price and creating
// a new one.
type Price struct {
	ID         string
	ProductID  string
	Currency   string
	UnitAmount int64
	Active     bool
}

// ProductParams carries the mutable product fields pushed on every sync.
type ProductParams struct {
	Name        string
	Description string
	Images      []string
	URL         string
	Metadata    map[string]string
}

// BillingClient is the provider contract the engine depends on. The
// concrete HTTP client lives in internal/pkg/stripeapi; tests inject fakes.
type BillingClient interface {
	CreateProduct(ctx context.Context, params ProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, id string, params ProductParams) error
	RetrieveProduct(ctx context.Context, id string) (*Product, error)
	ListPrices(ctx context.Context, productID string) ([]Price, error)
	CreatePrice(ctx context.Context, productID, currency string, unitAmount int64) (*Price, error)
	UpdatePrice(ctx context.Context, id string, active bool) error
	RetrievePrice(ctx context.Context, id string) (*Price, error)
}

// ProductMetadata is the typed form of the metadata bag written to the
// remote product. Absent numeric references are coerced to the literal
// string "null" rather than omitted; downstream metadata consumers rely on
// every key being present.
type ProductMetadata struct {
	Slug            string
	ThemeID         string
	PackageTier     string
	SupportsThemed  string
	SupportsRegular string
}

// NewProductMetadata derives the metadata bag from a loaded package. The
// tier association must be preloaded for the support flags to be accurate.
func NewProductMetadata(pkg *models.Package) ProductMetadata {
	m := ProductMetadata{
		Slug:            pkg.Slug,
		ThemeID:         "null",
		PackageTier:     "null",
		SupportsThemed:  "false",
		SupportsRegular: "false",
	}
	if pkg.ThemeID != nil {
		m.ThemeID = strconv.FormatUint(uint64(*pkg.ThemeID), 10)
	}
	if pkg.PackageTierID != 0 {
		m.PackageTier = strconv.FormatUint(uint64(pkg.PackageTierID), 10)
	}
	if pkg.PackageTier != nil {
		m.SupportsThemed = strconv.FormatBool(pkg.PackageTier.SupportsThemed)
		m.SupportsRegular = strconv.FormatBool(pkg.PackageTier.SupportsRegular)
	}
	return m
}

// Values serializes the bag to the provider's string-map shape.
func (m ProductMetadata) Values() map[string]string {
	return map[string]string{
		"slug":             m.Slug,
		"theme_id":         m.ThemeID,
		"package_tier":     m.PackageTier,
		"supports_themed":  m.SupportsThemed,
		"supports_regular": m.SupportsRegular,
	}
}

// ProductSnapshot is a transient read of the provider's current state for a
// product and its most recent price. Never persisted.
type ProductSnapshot struct {
	Product Product
	Price   *Price
}

// SyncOutcome reports what a single package sync did.
type SyncOutcome struct {
	PackageID   uint
	ProductID   string
	PriceID     string
	PriceReused bool
	Status      string // models.SyncStatusSynced or models.SyncStatusFailed
	Error       string
}

// BulkSyncSummary aggregates a BulkSyncUnsynced run. Per-package failures
// are recorded in sync state and counted here; they never abort the batch.
type BulkSyncSummary struct {
	Total  int
	Synced int
	Failed int
}
