package controllers

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pagebound/BookCrate/app/repository"
	"github.com/pagebound/BookCrate/internal/pkg/catalogsync"
	"github.com/pagebound/BookCrate/internal/pkg/database"
	"github.com/pagebound/BookCrate/internal/pkg/stripeapi"
)

var (
	syncService     *catalogsync.Service
	syncServiceOnce sync.Once
)

func getSyncService() *catalogsync.Service {
	syncServiceOnce.Do(func() {
		syncService = catalogsync.NewServiceFromDB(database.GetDB(), stripeapi.NewClientFromEnv())
	})
	return syncService
}

// SetSyncService replaces the sync service, used by tests.
func SetSyncService(s *catalogsync.Service) {
	syncServiceOnce.Do(func() {})
	syncService = s
}

// HandleAdminSyncPackage pushes one package to the billing provider.
func HandleAdminSyncPackage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	outcome, err := getSyncService().SyncPackage(c.Context(), id)
	if err != nil {
		return syncErrorResponse(c, err)
	}
	return c.JSON(outcome)
}

// HandleAdminResyncPackage forces a fresh push for an already synced
// package, always replacing the active price.
func HandleAdminResyncPackage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	outcome, err := getSyncService().ResyncPackage(c.Context(), id)
	if err != nil {
		if errors.Is(err, catalogsync.ErrNotSynced) {
			return jsonError(c, fiber.StatusConflict, "not_synced", "package has never been synced; use sync instead")
		}
		return syncErrorResponse(c, err)
	}
	return c.JSON(outcome)
}

// HandleAdminBulkSync syncs every package without a remote product. Remote
// failures are recorded per package and do not abort the run.
func HandleAdminBulkSync(c *fiber.Ctx) error {
	summary, err := getSyncService().BulkSyncUnsynced(c.Context())
	if err != nil {
		return jsonInternalError(c, "bulk sync failed: "+err.Error())
	}
	return c.JSON(summary)
}

// HandleAdminPackageDrift compares the local package against the provider's
// current product and price state.
func HandleAdminPackageDrift(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	pkg, err := repository.GetGlobalRepositories().Package.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "package not found")
		}
		return jsonInternalError(c, "failed to load package")
	}

	snap, err := getSyncService().FetchSnapshot(c.Context(), id)
	if err != nil {
		return syncErrorResponse(c, err)
	}

	var themeName, tierName string
	if pkg.Theme != nil {
		themeName = pkg.Theme.Name
	}
	if pkg.PackageTier != nil {
		tierName = pkg.PackageTier.Name
	}

	report := catalogsync.ComputeDrift(pkg, snap, themeName, tierName)
	return c.JSON(report)
}

// syncErrorResponse maps sync failures onto HTTP statuses: provider errors
// become 502, unknown packages 404, everything else 500.
func syncErrorResponse(c *fiber.Ctx, err error) error {
	var remoteErr *catalogsync.RemoteError
	if errors.As(err, &remoteErr) {
		return jsonError(c, fiber.StatusBadGateway, "billing_error", remoteErr.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonNotFound(c, "package not found")
	}
	return jsonInternalError(c, err.Error())
}
