package auth

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the session cookie carrying the signed identity token.
const CookieName = "yatube_session"

// Identity is the authenticated requester, as stored in request locals.
type Identity struct {
	UserID   string
	Username string
}

var parseMiddlewareClaimsFn = parseClaims

// LoadUser resolves the session cookie into locals when present and valid.
// Anonymous requests pass through untouched.
func LoadUser(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if token == "" {
			return c.Next()
		}

		claims, err := parseMiddlewareClaimsFn(token, secretBytes)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// RequireUser redirects anonymous requests to the login page, preserving the
// requested path in the next parameter.
func RequireUser(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if token == "" {
			return c.Redirect(LoginPath(c.OriginalURL()), fiber.StatusFound)
		}

		claims, err := parseMiddlewareClaimsFn(token, secretBytes)
		if err != nil {
			return c.Redirect(LoginPath(c.OriginalURL()), fiber.StatusFound)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// LoginPath builds the login URL with a return path.
func LoginPath(next string) string {
	return "/auth/login/?next=" + url.QueryEscape(next)
}

// Current returns the identity placed in locals by LoadUser or RequireUser.
func Current(c *fiber.Ctx) (Identity, bool) {
	userID, _ := c.Locals("user_id").(string)
	username, _ := c.Locals("username").(string)
	if userID == "" {
		return Identity{}, false
	}
	return Identity{UserID: userID, Username: username}, true
}
