package api

import (
	"github.com/Sangrampatil04/task-manager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"

	// SessionCookieName is the browser cookie carrying the session token.
	SessionCookieName = "task_session"
)

// RequireSession creates a middleware that guards authenticated pages.
// Requests without a valid session cookie are redirected to the login
// page instead of receiving a 401, since the surface is a browser app.
func RequireSession(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		claims, err := authPort.ValidateSession(c.UserContext(), token)
		if err != nil {
			// Stale or forged cookie: drop it and start over.
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HTTPOnly: true,
			})
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}
