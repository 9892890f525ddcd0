package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/app/repository"
	"github.com/pagebound/BookCrate/internal/pkg/session"
	"github.com/pagebound/BookCrate/internal/pkg/usercontext"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthLogin authenticates a staff user and opens a session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return jsonBadRequest(c, "email and password are required")
	}

	repo := repository.GetGlobalRepositories().User
	user, err := repo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid credentials")
		}
		return jsonInternalError(c, "failed to load user")
	}

	if user.Status != models.STATUS_ACTIVE {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "account disabled")
	}
	if !models.CheckPasswordHash(req.Password, user.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid credentials")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonInternalError(c, "session unavailable")
	}
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUserName, user.Name)
	sess.Set(usercontext.KeyIsAdmin, user.IsAdmin())
	if err := sess.Save(); err != nil {
		return jsonInternalError(c, "failed to save session")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repo.Update(user); err != nil {
		// Non-fatal, the login itself succeeded
		fiberlog.Errorf("[Auth] failed to update last login for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"role":     user.Role,
		"is_admin": user.IsAdmin(),
	})
}

// HandleAuthLogout destroys the current session.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonInternalError(c, "session unavailable")
	}
	if err := sess.Destroy(); err != nil {
		return jsonInternalError(c, "failed to destroy session")
	}
	return c.JSON(fiber.Map{"status": "logged_out"})
}

// HandleAuthMe returns the current session identity.
func HandleAuthMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}
	return c.JSON(userCtx)
}
