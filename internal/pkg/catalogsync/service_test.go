package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pagebound/BookCrate/app/models"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	packages map[uint]*models.Package
	media    map[uint][]models.PackageMedia
	states   map[uint]*models.PackageSyncState

	upsertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		packages: make(map[uint]*models.Package),
		media:    make(map[uint][]models.PackageMedia),
		states:   make(map[uint]*models.PackageSyncState),
	}
}

func (r *fakeRepo) GetPackageByID(id uint) (*models.Package, error) {
	pkg, ok := r.packages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *pkg
	return &cp, nil
}

func (r *fakeRepo) GetPackageMedia(packageID uint, limit int) ([]models.PackageMedia, error) {
	media := r.media[packageID]
	if limit > 0 && len(media) > limit {
		media = media[:limit]
	}
	return media, nil
}

func (r *fakeRepo) GetSyncState(packageID uint) (*models.PackageSyncState, error) {
	state, ok := r.states[packageID]
	if !ok {
		return nil, nil
	}
	cp := *state
	return &cp, nil
}

func (r *fakeRepo) UpsertSyncState(rec *models.PackageSyncState) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if existing, ok := r.states[rec.PackageID]; ok {
		rec.ID = existing.ID
	} else {
		rec.ID = uint(len(r.states) + 1)
	}
	cp := *rec
	r.states[rec.PackageID] = &cp
	return nil
}

func (r *fakeRepo) ListPackagesMissingSyncState() ([]models.Package, error) {
	var out []models.Package
	for _, pkg := range r.packages {
		if pkg.StripeProductID == "" {
			out = append(out, *pkg)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdatePackageSyncCache(packageID uint, productID, priceID string, synced bool, syncErr string) error {
	pkg, ok := r.packages[packageID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	pkg.StripeProductID = productID
	pkg.StripePriceID = priceID
	pkg.StripeSynced = synced
	pkg.StripeError = syncErr
	return nil
}

// fakeBilling is a scriptable BillingClient double.
type fakeBilling struct {
	products map[string]*Product
	prices   map[string]*Price
	seq      int

	createProductErr error
	updateProductErr error
	retrievePriceErr error
	createPriceErr   error

	createProductCalls int
	updateProductCalls int
	createPriceCalls   int
	deactivatedPrices  []string
}

func newFakeBilling() *fakeBilling {
	return &fakeBilling{
		products: make(map[string]*Product),
		prices:   make(map[string]*Price),
	}
}

func (b *fakeBilling) CreateProduct(_ context.Context, params ProductParams) (*Product, error) {
	b.createProductCalls++
	if b.createProductErr != nil {
		return nil, b.createProductErr
	}
	b.seq++
	p := &Product{
		ID:          fmt.Sprintf("prod_%d", b.seq),
		Name:        params.Name,
		Description: params.Description,
		Images:      params.Images,
		URL:         params.URL,
		Metadata:    params.Metadata,
		Active:      true,
	}
	b.products[p.ID] = p
	return p, nil
}

func (b *fakeBilling) UpdateProduct(_ context.Context, id string, params ProductParams) error {
	b.updateProductCalls++
	if b.updateProductErr != nil {
		return b.updateProductErr
	}
	p, ok := b.products[id]
	if !ok {
		return errors.New("no such product")
	}
	p.Name = params.Name
	p.Description = params.Description
	p.Images = params.Images
	p.URL = params.URL
	p.Metadata = params.Metadata
	return nil
}

func (b *fakeBilling) RetrieveProduct(_ context.Context, id string) (*Product, error) {
	p, ok := b.products[id]
	if !ok {
		return nil, errors.New("no such product")
	}
	cp := *p
	return &cp, nil
}

func (b *fakeBilling) ListPrices(_ context.Context, productID string) ([]Price, error) {
	var out []Price
	for _, p := range b.prices {
		if p.ProductID == productID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (b *fakeBilling) CreatePrice(_ context.Context, productID, currency string, unitAmount int64) (*Price, error) {
	b.createPriceCalls++
	if b.createPriceErr != nil {
		return nil, b.createPriceErr
	}
	b.seq++
	p := &Price{
		ID:         fmt.Sprintf("price_%d", b.seq),
		ProductID:  productID,
		Currency:   currency,
		UnitAmount: unitAmount,
		Active:     true,
	}
	b.prices[p.ID] = p
	return p, nil
}

func (b *fakeBilling) UpdatePrice(_ context.Context, id string, active bool) error {
	p, ok := b.prices[id]
	if !ok {
		return errors.New("no such price")
	}
	p.Active = active
	if !active {
		b.deactivatedPrices = append(b.deactivatedPrices, id)
	}
	return nil
}

func (b *fakeBilling) RetrievePrice(_ context.Context, id string) (*Price, error) {
	if b.retrievePriceErr != nil {
		return nil, b.retrievePriceErr
	}
	p, ok := b.prices[id]
	if !ok {
		return nil, errors.New("no such price")
	}
	cp := *p
	return &cp, nil
}

func syncTestPackage(id uint, price float64) *models.Package {
	themeID := uint(2)
	return &models.Package{
		ID:            id,
		Name:          fmt.Sprintf("Crate %d", id),
		Slug:          fmt.Sprintf("crate-%d", id),
		ThemeID:       &themeID,
		Price:         price,
		PackageTierID: 1,
		PackageTier: &models.PackageTier{
			ID:              1,
			SupportsThemed:  true,
			SupportsRegular: true,
		},
	}
}

func newTestService(repo *fakeRepo, billing *fakeBilling) *Service {
	return &Service{repo: repo, client: billing, publicBaseURL: "https://bookcrate.example"}
}

func TestSyncPackageCreatesProductAndPrice(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 29.99)
	repo.media[1] = []models.PackageMedia{
		{URL: "https://cdn.example/a.jpg"},
		{URL: "https://cdn.example/b.jpg"},
	}

	svc := newTestService(repo, billing)
	outcome, err := svc.SyncPackage(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSynced, outcome.Status)
	assert.NotEmpty(t, outcome.ProductID)
	assert.NotEmpty(t, outcome.PriceID)
	assert.False(t, outcome.PriceReused)

	product := billing.products[outcome.ProductID]
	require.NotNil(t, product)
	assert.Equal(t, "Crate 1", product.Name)
	assert.Equal(t, []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"}, product.Images)
	assert.Equal(t, "https://bookcrate.example/packages/crate-1", product.URL)
	assert.Equal(t, "2", product.Metadata["theme_id"])
	assert.Equal(t, "true", product.Metadata["supports_themed"])

	price := billing.prices[outcome.PriceID]
	require.NotNil(t, price)
	assert.Equal(t, int64(2999), price.UnitAmount)
	assert.Equal(t, "usd", price.Currency)

	state := repo.states[1]
	require.NotNil(t, state)
	assert.Equal(t, models.SyncStatusSynced, state.Status)
	assert.Equal(t, outcome.ProductID, state.StripeProductID)
	assert.Equal(t, outcome.PriceID, state.StripePriceID)
	require.NotNil(t, state.LastSyncedAt)
	assert.Empty(t, state.LastError)

	// Denormalized columns refreshed
	assert.True(t, repo.packages[1].StripeSynced)
	assert.Equal(t, outcome.ProductID, repo.packages[1].StripeProductID)
}

func TestSyncPackageIsIdempotentWhenPriceUnchanged(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 10.00)

	svc := newTestService(repo, billing)
	first, err := svc.SyncPackage(context.Background(), 1)
	require.NoError(t, err)

	second, err := svc.SyncPackage(context.Background(), 1)
	require.NoError(t, err)

	// Same identity, price reused, no second create
	assert.Equal(t, first.ProductID, second.ProductID)
	assert.Equal(t, first.PriceID, second.PriceID)
	assert.True(t, second.PriceReused)
	assert.Equal(t, 1, billing.createProductCalls)
	assert.Equal(t, 1, billing.createPriceCalls)
	assert.Equal(t, 1, billing.updateProductCalls)
	assert.Empty(t, billing.deactivatedPrices)
}

func TestSyncPackagePriceChangeDeactivatesAndCreates(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 10.00)

	svc := newTestService(repo, billing)
	first, err := svc.SyncPackage(context.Background(), 1)
	require.NoError(t, err)

	repo.packages[1].Price = 12.50
	second, err := svc.SyncPackage(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.ProductID, second.ProductID)
	assert.NotEqual(t, first.PriceID, second.PriceID)
	assert.False(t, second.PriceReused)
	assert.Equal(t, []string{first.PriceID}, billing.deactivatedPrices)
	assert.False(t, billing.prices[first.PriceID].Active)
	assert.Equal(t, int64(1250), billing.prices[second.PriceID].UnitAmount)
}

func TestSyncPackageRemoteFailureIsRecordedAndPropagated(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	billing.createProductErr = errors.New("rate limited")
	repo.packages[1] = syncTestPackage(1, 10.00)

	svc := newTestService(repo, billing)
	_, err := svc.SyncPackage(context.Background(), 1)
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "product.create", remoteErr.Op)

	state := repo.states[1]
	require.NotNil(t, state)
	assert.Equal(t, models.SyncStatusFailed, state.Status)
	assert.Equal(t, "billing product.create: rate limited", state.LastError)
	assert.Empty(t, state.StripeProductID)
	assert.Nil(t, state.LastSyncedAt)
}

func TestSyncPackageUpdateFailureKeepsProductID(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 10.00)

	svc := newTestService(repo, billing)
	first, err := svc.SyncPackage(context.Background(), 1)
	require.NoError(t, err)

	billing.updateProductErr = errors.New("boom")
	_, err = svc.SyncPackage(context.Background(), 1)
	require.Error(t, err)

	// The remote identity survives a failed update
	state := repo.states[1]
	assert.Equal(t, models.SyncStatusFailed, state.Status)
	assert.Equal(t, first.ProductID, state.StripeProductID)
}

func TestSyncPackageUnknownIDPropagatesStoreError(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeBilling())

	_, err := svc.SyncPackage(context.Background(), 99)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBulkSyncUnsyncedIsolatesFailures(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 5.00)
	repo.packages[2] = syncTestPackage(2, 6.00)
	repo.packages[3] = syncTestPackage(3, 7.00)
	// Fail every product create for package 2 by name
	repo.packages[2].Name = "poison"
	billing.createProductErr = nil

	svc := newTestService(repo, billing)

	// Wrap the billing fake so only the poisoned package fails
	poisoned := &selectiveFailClient{fakeBilling: billing, failName: "poison"}
	svc.client = poisoned

	summary, err := svc.BulkSyncUnsynced(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Synced)
	assert.Equal(t, 1, summary.Failed)

	assert.Equal(t, models.SyncStatusSynced, repo.states[1].Status)
	assert.Equal(t, models.SyncStatusFailed, repo.states[2].Status)
	assert.Equal(t, models.SyncStatusSynced, repo.states[3].Status)
	assert.Contains(t, repo.states[2].LastError, "product.create")
}

// selectiveFailClient fails CreateProduct for one product name only.
type selectiveFailClient struct {
	*fakeBilling
	failName string
}

func (c *selectiveFailClient) CreateProduct(ctx context.Context, params ProductParams) (*Product, error) {
	if params.Name == c.failName {
		return nil, errors.New("provider rejected product")
	}
	return c.fakeBilling.CreateProduct(ctx, params)
}

func TestBulkSyncSkipsAlreadySynced(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 5.00)
	repo.packages[2] = syncTestPackage(2, 6.00)
	repo.packages[2].StripeProductID = "prod_existing"

	svc := newTestService(repo, billing)
	summary, err := svc.BulkSyncUnsynced(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Synced)
	assert.Equal(t, 1, billing.createProductCalls)
}

func TestResyncPackageRequiresExistingProduct(t *testing.T) {
	repo := newFakeRepo()
	repo.packages[1] = syncTestPackage(1, 5.00)

	svc := newTestService(repo, newFakeBilling())
	_, err := svc.ResyncPackage(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotSynced)
}

func TestResyncPackageAlwaysReplacesPrice(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 10.00)

	svc := newTestService(repo, billing)
	first, err := svc.SyncPackage(context.Background(), 1)
	require.NoError(t, err)

	// Price unchanged, but resync must still rotate it
	outcome, err := svc.ResyncPackage(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.ProductID, outcome.ProductID)
	assert.NotEqual(t, first.PriceID, outcome.PriceID)
	assert.False(t, outcome.PriceReused)
	assert.Equal(t, []string{first.PriceID}, billing.deactivatedPrices)
	assert.Equal(t, int64(1000), billing.prices[outcome.PriceID].UnitAmount)
}

func TestFetchSnapshotReturnsNilWhenNeverSynced(t *testing.T) {
	repo := newFakeRepo()
	repo.packages[1] = syncTestPackage(1, 5.00)

	svc := newTestService(repo, newFakeBilling())
	snap, err := svc.FetchSnapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFetchSnapshotReadsProductAndPrice(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 10.00)

	svc := newTestService(repo, billing)
	outcome, err := svc.SyncPackage(context.Background(), 1)
	require.NoError(t, err)

	snap, err := svc.FetchSnapshot(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, outcome.ProductID, snap.Product.ID)
	require.NotNil(t, snap.Price)
	assert.Equal(t, int64(1000), snap.Price.UnitAmount)
}

func TestRecordUpsertFailurePropagatesOnlyOnRemoteSuccess(t *testing.T) {
	repo := newFakeRepo()
	billing := newFakeBilling()
	repo.packages[1] = syncTestPackage(1, 10.00)
	repo.upsertErr = errors.New("db gone")

	svc := newTestService(repo, billing)
	_, err := svc.SyncPackage(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db gone")

	// With a remote failure the store error is swallowed and the remote
	// error wins.
	billing.createProductErr = errors.New("rate limited")
	repo2 := newFakeRepo()
	repo2.packages[1] = syncTestPackage(1, 10.00)
	repo2.upsertErr = errors.New("db gone")
	svc2 := newTestService(repo2, billing)

	_, err = svc2.SyncPackage(context.Background(), 1)
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
}
