package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/app/repository"
)

// Genres

func HandleAdminListGenres(c *fiber.Ctx) error {
	genres, err := repository.GetGlobalRepositories().Genre.GetAll()
	if err != nil {
		return jsonInternalError(c, "failed to list genres")
	}
	return c.JSON(fiber.Map{"genres": genres})
}

func HandleAdminCreateGenre(c *fiber.Ctx) error {
	var genre models.Genre
	if err := c.BodyParser(&genre); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	genre.ID = 0
	if err := genre.Validate(); err != nil {
		return jsonBadRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().Genre
	exists, err := repo.SlugExists(genre.Slug)
	if err != nil {
		return jsonInternalError(c, "failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "slug already in use")
	}

	if err := repo.Create(&genre); err != nil {
		return jsonInternalError(c, "failed to create genre")
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

func HandleAdminUpdateGenre(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Genre
	genre, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "genre not found")
		}
		return jsonInternalError(c, "failed to load genre")
	}

	if err := c.BodyParser(genre); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	genre.ID = id
	if err := genre.Validate(); err != nil {
		return jsonBadRequest(c, err.Error())
	}

	exists, err := repo.SlugExistsExceptID(genre.Slug, id)
	if err != nil {
		return jsonInternalError(c, "failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "slug already in use")
	}

	if err := repo.Update(genre); err != nil {
		return jsonInternalError(c, "failed to update genre")
	}
	return c.JSON(genre)
}

func HandleAdminDeleteGenre(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}
	if err := repository.GetGlobalRepositories().Genre.Delete(id); err != nil {
		return jsonInternalError(c, "failed to delete genre")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// Themes

func HandleAdminListThemes(c *fiber.Ctx) error {
	repo := repository.GetGlobalRepositories().Theme
	var (
		themes []models.Theme
		err    error
	)
	if c.QueryBool("active", false) {
		themes, err = repo.GetActive()
	} else {
		themes, err = repo.GetAll()
	}
	if err != nil {
		return jsonInternalError(c, "failed to list themes")
	}
	return c.JSON(fiber.Map{"themes": themes})
}

func HandleAdminCreateTheme(c *fiber.Ctx) error {
	var theme models.Theme
	if err := c.BodyParser(&theme); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	theme.ID = 0
	if err := theme.Validate(); err != nil {
		return jsonBadRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().Theme
	exists, err := repo.SlugExists(theme.Slug)
	if err != nil {
		return jsonInternalError(c, "failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "slug already in use")
	}

	if err := repo.Create(&theme); err != nil {
		return jsonInternalError(c, "failed to create theme")
	}
	return c.Status(fiber.StatusCreated).JSON(theme)
}

func HandleAdminUpdateTheme(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Theme
	theme, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "theme not found")
		}
		return jsonInternalError(c, "failed to load theme")
	}

	if err := c.BodyParser(theme); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	theme.ID = id
	if err := theme.Validate(); err != nil {
		return jsonBadRequest(c, err.Error())
	}

	exists, err := repo.SlugExistsExceptID(theme.Slug, id)
	if err != nil {
		return jsonInternalError(c, "failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "slug already in use")
	}

	if err := repo.Update(theme); err != nil {
		return jsonInternalError(c, "failed to update theme")
	}
	return c.JSON(theme)
}

func HandleAdminDeleteTheme(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}
	if err := repository.GetGlobalRepositories().Theme.Delete(id); err != nil {
		return jsonInternalError(c, "failed to delete theme")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// Package tiers

func HandleAdminListTiers(c *fiber.Ctx) error {
	tiers, err := repository.GetGlobalRepositories().PackageTier.GetAll()
	if err != nil {
		return jsonInternalError(c, "failed to list tiers")
	}
	return c.JSON(fiber.Map{"tiers": tiers})
}

func HandleAdminCreateTier(c *fiber.Ctx) error {
	var tier models.PackageTier
	if err := c.BodyParser(&tier); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	tier.ID = 0
	if err := tier.Validate(); err != nil {
		return jsonBadRequest(c, err.Error())
	}
	if !tier.SupportsThemed && !tier.SupportsRegular {
		return jsonBadRequest(c, "tier must support themed or regular packages")
	}

	repo := repository.GetGlobalRepositories().PackageTier
	exists, err := repo.SlugExists(tier.Slug)
	if err != nil {
		return jsonInternalError(c, "failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "slug already in use")
	}

	if err := repo.Create(&tier); err != nil {
		return jsonInternalError(c, "failed to create tier")
	}
	return c.Status(fiber.StatusCreated).JSON(tier)
}

func HandleAdminUpdateTier(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().PackageTier
	tier, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "tier not found")
		}
		return jsonInternalError(c, "failed to load tier")
	}

	if err := c.BodyParser(tier); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	tier.ID = id
	if err := tier.Validate(); err != nil {
		return jsonBadRequest(c, err.Error())
	}
	if !tier.SupportsThemed && !tier.SupportsRegular {
		return jsonBadRequest(c, "tier must support themed or regular packages")
	}

	exists, err := repo.SlugExistsExceptID(tier.Slug, id)
	if err != nil {
		return jsonInternalError(c, "failed to check slug")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "slug already in use")
	}

	if err := repo.Update(tier); err != nil {
		return jsonInternalError(c, "failed to update tier")
	}
	return c.JSON(tier)
}

func HandleAdminDeleteTier(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}
	if err := repository.GetGlobalRepositories().PackageTier.Delete(id); err != nil {
		return jsonInternalError(c, "failed to delete tier")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
