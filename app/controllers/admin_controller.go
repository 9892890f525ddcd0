package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/app/repository"
	"github.com/pagebound/BookCrate/internal/pkg/statistics"
)

// HandleAdminDashboard returns the dashboard counters and the most recent
// orders.
func HandleAdminDashboard(c *fiber.Ctx) error {
	recent, err := repository.GetGlobalRepositories().Order.List(0, 5, "")
	if err != nil {
		return jsonInternalError(c, "failed to load recent orders")
	}

	return c.JSON(fiber.Map{
		"statistics":    statistics.GetStatistics(),
		"recent_orders": recent,
	})
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleAdminCreateUser creates a staff account. Admin only.
func HandleAdminCreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	if req.Role == "" {
		req.Role = models.ROLE_STAFF
	}
	if req.Role != models.ROLE_STAFF && req.Role != models.ROLE_ADMIN {
		return jsonBadRequest(c, "role must be staff or admin")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return jsonBadRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().User
	if _, err := repo.GetByEmail(user.Email); err == nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonInternalError(c, "failed to check email")
	}

	if err := repo.Create(user); err != nil {
		return jsonInternalError(c, "failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type updateUserStatusRequest struct {
	Status string `json:"status"`
}

// HandleAdminUpdateUserStatus enables or disables a staff account.
func HandleAdminUpdateUserStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	var req updateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	if req.Status != models.STATUS_ACTIVE && req.Status != models.STATUS_DISABLED {
		return jsonBadRequest(c, "status must be active or disabled")
	}

	repo := repository.GetGlobalRepositories().User
	user, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "user not found")
		}
		return jsonInternalError(c, "failed to load user")
	}

	user.Status = req.Status
	if err := repo.Update(user); err != nil {
		return jsonInternalError(c, "failed to update user")
	}
	return c.JSON(user)
}
