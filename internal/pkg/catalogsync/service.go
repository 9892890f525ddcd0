package catalogsync

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/internal/pkg/env"
	"gorm.io/gorm"
)

const (
	// maxProductImages caps how many media attachments are pushed to the
	// provider as product images.
	maxProductImages = 3

	defaultCurrency = "usd"
)

// Service reconciles local packages with their remote billing products and
// prices. All remote calls run strictly in order: product upsert, then the
// price decision, then the sync-state upsert.
type Service struct {
	repo          Repository
	client        BillingClient
	publicBaseURL string
}

// NewService creates a sync service from an injected repository and billing
// client. The client is always passed in explicitly so tests can substitute
// doubles.
func NewService(repo Repository, client BillingClient) *Service {
	return &Service{
		repo:          repo,
		client:        client,
		publicBaseURL: strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/"),
	}
}

// NewServiceFromDB creates a sync service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, client BillingClient) *Service {
	return NewService(NewRepository(db), client)
}

// SyncPackage brings one package's remote representation into agreement
// with its local record. Remote failures are persisted as a failed sync
// state and also returned to the caller; callers that must not abort on
// individual failures go through BulkSyncUnsynced instead.
func (s *Service) SyncPackage(ctx context.Context, packageID uint) (*SyncOutcome, error) {
	return s.sync(ctx, packageID, true)
}

// BulkSyncUnsynced applies SyncPackage to every package whose cached remote
// product reference is unset. Packages are processed sequentially on
// purpose: the provider rate-limits aggressively and the batch has no
// urgency. Per-package failures are recorded in sync state and never halt
// the loop.
func (s *Service) BulkSyncUnsynced(ctx context.Context) (*BulkSyncSummary, error) {
	pkgs, err := s.repo.ListPackagesMissingSyncState()
	if err != nil {
		return nil, err
	}

	summary := &BulkSyncSummary{Total: len(pkgs)}
	for i := range pkgs {
		out, err := s.sync(ctx, pkgs[i].ID, false)
		if err != nil {
			// Store-level failure for this package (e.g. deleted between
			// listing and sync). Count it and move on.
			log.Printf("bulk sync: package %d skipped: %v", pkgs[i].ID, err)
			summary.Failed++
			continue
		}
		if out.Status == models.SyncStatusSynced {
			summary.Synced++
		} else {
			summary.Failed++
		}
	}
	return summary, nil
}

// ResyncPackage is the force path: it reuses the existing remote product
// but always deactivates the recorded price and issues a fresh one, even
// when the amount is unchanged. It fails with ErrNotSynced when no remote
// product exists yet.
func (s *Service) ResyncPackage(ctx context.Context, packageID uint) (*SyncOutcome, error) {
	pkg, err := s.repo.GetPackageByID(packageID)
	if err != nil {
		return nil, err
	}
	state, err := s.repo.GetSyncState(packageID)
	if err != nil {
		return nil, err
	}
	if !state.IsSynced() {
		return nil, ErrNotSynced
	}
	media, err := s.repo.GetPackageMedia(packageID, maxProductImages)
	if err != nil {
		return nil, err
	}

	outcome, remoteErr := s.push(ctx, pkg, media, state, true)
	if err := s.record(pkg, outcome, remoteErr); err != nil {
		return nil, err
	}
	if remoteErr != nil {
		return nil, remoteErr
	}
	return outcome, nil
}

// FetchSnapshot retrieves the provider's current product and price state
// for a package, for drift review. Nothing is cached: the snapshot lives
// for a single render.
func (s *Service) FetchSnapshot(ctx context.Context, packageID uint) (*ProductSnapshot, error) {
	state, err := s.repo.GetSyncState(packageID)
	if err != nil {
		return nil, err
	}
	if !state.IsSynced() {
		return nil, nil
	}

	product, err := s.client.RetrieveProduct(ctx, state.StripeProductID)
	if err != nil {
		return nil, &RemoteError{Op: "product.retrieve", Err: err}
	}
	snap := &ProductSnapshot{Product: *product}

	if state.StripePriceID != "" {
		price, err := s.client.RetrievePrice(ctx, state.StripePriceID)
		if err != nil {
			return nil, &RemoteError{Op: "price.retrieve", Err: err}
		}
		snap.Price = price
	}
	return snap, nil
}

// sync is the shared single-package routine. propagateRemoteErr selects
// between the direct path (persist the failure and surface it) and the
// batch path (persist the failure and return a failed outcome instead).
// Store-level errors, including an unknown package id, always propagate.
func (s *Service) sync(ctx context.Context, packageID uint, propagateRemoteErr bool) (*SyncOutcome, error) {
	pkg, err := s.repo.GetPackageByID(packageID)
	if err != nil {
		return nil, err
	}
	media, err := s.repo.GetPackageMedia(packageID, maxProductImages)
	if err != nil {
		return nil, err
	}
	state, err := s.repo.GetSyncState(packageID)
	if err != nil {
		return nil, err
	}

	outcome, remoteErr := s.push(ctx, pkg, media, state, false)
	if err := s.record(pkg, outcome, remoteErr); err != nil {
		return nil, err
	}
	if remoteErr != nil && propagateRemoteErr {
		return nil, remoteErr
	}
	return outcome, nil
}

// push performs the remote writes: product create-or-update followed by the
// price decision. It never touches local state. The returned outcome
// carries whatever identifiers were obtained before a failure.
func (s *Service) push(ctx context.Context, pkg *models.Package, media []models.PackageMedia, state *models.PackageSyncState, forceNewPrice bool) (*SyncOutcome, *RemoteError) {
	outcome := &SyncOutcome{PackageID: pkg.ID}
	params := s.productParams(pkg, media)

	if state.IsSynced() {
		// Remote identity never changes once created; only mutable fields
		// are pushed.
		outcome.ProductID = state.StripeProductID
		if err := s.client.UpdateProduct(ctx, state.StripeProductID, params); err != nil {
			return outcome, &RemoteError{Op: "product.update", Err: err}
		}
	} else {
		product, err := s.client.CreateProduct(ctx, params)
		if err != nil {
			return outcome, &RemoteError{Op: "product.create", Err: err}
		}
		outcome.ProductID = product.ID
	}

	priceID := ""
	if state != nil {
		priceID = state.StripePriceID
	}
	want := MinorUnits(pkg.Price)

	if priceID != "" {
		if !forceNewPrice {
			current, err := s.client.RetrievePrice(ctx, priceID)
			if err != nil {
				return outcome, &RemoteError{Op: "price.retrieve", Err: err}
			}
			if current.UnitAmount == want {
				// Unchanged since last sync: reuse, no remote write.
				outcome.PriceID = priceID
				outcome.PriceReused = true
				outcome.Status = models.SyncStatusSynced
				return outcome, nil
			}
		}
		// Prices are immutable: deactivate, never delete.
		if err := s.client.UpdatePrice(ctx, priceID, false); err != nil {
			return outcome, &RemoteError{Op: "price.deactivate", Err: err}
		}
	}

	price, err := s.client.CreatePrice(ctx, outcome.ProductID, defaultCurrency, want)
	if err != nil {
		return outcome, &RemoteError{Op: "price.create", Err: err}
	}
	outcome.PriceID = price.ID
	outcome.Status = models.SyncStatusSynced
	return outcome, nil
}

// record upserts the sync state row and refreshes the denormalized package
// columns. A failed upsert is the one error class that is logged rather
// than recovered; it only propagates when the remote side succeeded.
func (s *Service) record(pkg *models.Package, outcome *SyncOutcome, remoteErr *RemoteError) error {
	rec := &models.PackageSyncState{
		PackageID:       pkg.ID,
		StripeProductID: outcome.ProductID,
	}
	if remoteErr != nil {
		outcome.Status = models.SyncStatusFailed
		outcome.Error = remoteErr.Error()
		rec.Status = models.SyncStatusFailed
		rec.LastError = remoteErr.Error()
	} else {
		now := time.Now()
		rec.StripePriceID = outcome.PriceID
		rec.Status = models.SyncStatusSynced
		rec.LastSyncedAt = &now
	}

	if err := s.repo.UpsertSyncState(rec); err != nil {
		log.Printf("sync state upsert failed for package %d: %v", pkg.ID, err)
		if remoteErr == nil {
			return err
		}
		return nil
	}

	if err := s.repo.UpdatePackageSyncCache(pkg.ID, rec.StripeProductID, rec.StripePriceID, rec.Status == models.SyncStatusSynced, rec.LastError); err != nil {
		log.Printf("sync cache update failed for package %d: %v", pkg.ID, err)
	}
	return nil
}

func (s *Service) productParams(pkg *models.Package, media []models.PackageMedia) ProductParams {
	images := make([]string, 0, len(media))
	for i := range media {
		if len(images) == maxProductImages {
			break
		}
		if media[i].URL != "" {
			images = append(images, media[i].URL)
		}
	}

	url := ""
	if s.publicBaseURL != "" {
		url = s.publicBaseURL + "/packages/" + pkg.Slug
	}

	return ProductParams{
		Name:        pkg.Name,
		Description: pkg.ShortDescription,
		Images:      images,
		URL:         url,
		Metadata:    NewProductMetadata(pkg).Values(),
	}
}
