package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagebound/BookCrate/internal/pkg/session"
	"github.com/pagebound/BookCrate/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request. This centralizes session handling so controllers never touch the
// session store directly for identity.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous
		c.Locals(usercontext.ContextKey, usercontext.UserContext{
			IsLoggedIn: false,
			IsAdmin:    false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		c.Locals(usercontext.KeyIsAdmin, false)
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		c.Locals(usercontext.ContextKey, usercontext.UserContext{
			IsLoggedIn: false,
			IsAdmin:    false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		c.Locals(usercontext.KeyIsAdmin, false)
		return c.Next()
	}

	name, _ := sess.Get(usercontext.KeyUserName).(string)
	isAdmin, _ := sess.Get(usercontext.KeyIsAdmin).(bool)

	c.Locals(usercontext.ContextKey, usercontext.UserContext{
		UserID:     userID.(uint),
		Name:       name,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
	})
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyIsAdmin, isAdmin)

	return c.Next()
}
