package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/BookCrate/internal/pkg/usercontext"
)

func newAuthTestApp(ctx usercontext.UserContext, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(usercontext.ContextKey, ctx)
		return c.Next()
	})
	app.Get("/protected", handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	app := newAuthTestApp(usercontext.UserContext{}, RequireAuth)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthPassesLoggedIn(t *testing.T) {
	app := newAuthTestApp(usercontext.UserContext{UserID: 1, IsLoggedIn: true}, RequireAuth)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminRejectsStaff(t *testing.T) {
	app := newAuthTestApp(usercontext.UserContext{UserID: 1, IsLoggedIn: true}, RequireAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAdminPassesAdmin(t *testing.T) {
	app := newAuthTestApp(usercontext.UserContext{UserID: 1, IsLoggedIn: true, IsAdmin: true}, RequireAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
