package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/app/repository"
)

// validatePackageTier checks that a package fits its tier: themed packages
// need a tier that supports themed boxes, untheme packages a tier that
// supports regular ones.
func validatePackageTier(pkg *models.Package) error {
	tier, err := repository.GetGlobalRepositories().PackageTier.GetByID(pkg.PackageTierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("package tier does not exist")
		}
		return err
	}
	if pkg.ThemeID != nil && !tier.SupportsThemed {
		return errors.New("tier does not support themed packages")
	}
	if pkg.ThemeID == nil && !tier.SupportsRegular {
		return errors.New("tier does not support regular packages")
	}
	return nil
}

// validatePackageTheme checks that a referenced theme exists and is active.
func validatePackageTheme(pkg *models.Package) error {
	if pkg.ThemeID == nil {
		return nil
	}
	theme, err := repository.GetGlobalRepositories().Theme.GetByID(*pkg.ThemeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("theme does not exist")
		}
		return err
	}
	if !theme.IsActive {
		return errors.New("theme is not active")
	}
	return nil
}

// validateAllowedGenres checks that every listed genre slug exists.
func validateAllowedGenres(pkg *models.Package) error {
	list := pkg.GenreList()
	if len(list) == 0 {
		return nil
	}
	genres, err := repository.GetGlobalRepositories().Genre.GetAll()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(genres))
	for _, g := range genres {
		known[g.Slug] = true
	}
	for _, slug := range list {
		if !known[slug] {
			return errors.New("unknown genre: " + slug)
		}
	}
	// Normalize: trimmed, deduplicated order preserved
	pkg.AllowedGenres = strings.Join(list, ",")
	return nil
}

func validatePackage(pkg *models.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	if err := validatePackageTheme(pkg); err != nil {
		return err
	}
	if err := validatePackageTier(pkg); err != nil {
		return err
	}
	return validateAllowedGenres(pkg)
}

func HandleAdminListPackages(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repo := repository.GetGlobalRepositories().Package

	pkgs, err := repo.List(offset, limit)
	if err != nil {
		return jsonInternalError(c, "failed to list packages")
	}
	total, err := repo.Count()
	if err != nil {
		return jsonInternalError(c, "failed to count packages")
	}

	return c.JSON(fiber.Map{
		"packages": pkgs,
		"total":    total,
	})
}

func HandleAdminGetPackage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Package
	pkg, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "package not found")
		}
		return jsonInternalError(c, "failed to load package")
	}

	media, err := repository.GetGlobalRepositories().Media.GetByPackageID(id, 0)
	if err != nil {
		return jsonInternalError(c, "failed to load media")
	}
	syncState, err := repo.GetSyncState(id)
	if err != nil {
		return jsonInternalError(c, "failed to load sync state")
	}

	return c.JSON(fiber.Map{
		"package":    pkg,
		"media":      media,
		"sync_state": syncState,
	})
}

func HandleAdminCreatePackage(c *fiber.Ctx) error {
	var pkg models.Package
	if err := c.BodyParser(&pkg); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	pkg.ID = 0
	pkg.StripeProductID = ""
	pkg.StripePriceID = ""
	pkg.StripeSynced = false
	pkg.StripeError = ""

	if err := validatePackage(&pkg); err != nil {
		return jsonBadRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().Package
	exists, err := repo.SlugExists(pkg.Slug)
	if err != nil {
		return jsonInternalError(c, "failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "slug already in use")
	}

	if err := repo.Create(&pkg); err != nil {
		return jsonInternalError(c, "failed to create package")
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

func HandleAdminUpdatePackage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Package
	pkg, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "package not found")
		}
		return jsonInternalError(c, "failed to load package")
	}

	// Sync bookkeeping columns are owned by the sync layer
	productID, priceID := pkg.StripeProductID, pkg.StripePriceID
	synced, syncErr := pkg.StripeSynced, pkg.StripeError

	if err := c.BodyParser(pkg); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	pkg.ID = id
	pkg.StripeProductID = productID
	pkg.StripePriceID = priceID
	pkg.StripeSynced = synced
	pkg.StripeError = syncErr
	pkg.Theme = nil
	pkg.PackageTier = nil

	if err := validatePackage(pkg); err != nil {
		return jsonBadRequest(c, err.Error())
	}

	exists, err := repo.SlugExistsExceptID(pkg.Slug, id)
	if err != nil {
		return jsonInternalError(c, "failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "slug already in use")
	}

	if err := repo.Update(pkg); err != nil {
		return jsonInternalError(c, "failed to update package")
	}
	return c.JSON(pkg)
}

func HandleAdminDeletePackage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Package
	if _, err := repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "package not found")
		}
		return jsonInternalError(c, "failed to load package")
	}

	if err := repo.Delete(id); err != nil {
		return jsonInternalError(c, "failed to delete package")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

type reorderRequest struct {
	Items []struct {
		ID        uint `json:"id"`
		SortOrder int  `json:"sort_order"`
	} `json:"items"`
}

// HandleAdminReorderPackages updates the sort order for a set of packages.
func HandleAdminReorderPackages(c *fiber.Ctx) error {
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	if len(req.Items) == 0 {
		return jsonBadRequest(c, "items is required")
	}

	repo := repository.GetGlobalRepositories().Package
	for _, item := range req.Items {
		if err := repo.UpdateSortOrder(item.ID, item.SortOrder); err != nil {
			return jsonInternalError(c, "failed to update sort order")
		}
	}
	return c.JSON(fiber.Map{"status": "reordered"})
}

func HandleAdminGetPackageDescription(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Package
	desc, err := repo.GetDescription(id)
	if err != nil {
		return jsonInternalError(c, "failed to load description")
	}
	if desc == nil {
		return jsonNotFound(c, "description not found")
	}
	return c.JSON(desc)
}

type descriptionRequest struct {
	Body string `json:"body"`
}

func HandleAdminSavePackageDescription(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Package
	if _, err := repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "package not found")
		}
		return jsonInternalError(c, "failed to load package")
	}

	var req descriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}

	desc, err := repo.GetDescription(id)
	if err != nil {
		return jsonInternalError(c, "failed to load description")
	}
	if desc == nil {
		desc = &models.PackageDescription{PackageID: id}
	}
	desc.Body = req.Body

	if err := repo.SaveDescription(desc); err != nil {
		return jsonInternalError(c, "failed to save description")
	}
	return c.JSON(desc)
}
