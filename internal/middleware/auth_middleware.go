package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/services"
)

const userLocal = "user"

// Authenticator validates the token cookie and stores the caller's identity
// in the request locals.
type Authenticator struct {
	tokens     *services.TokenService
	cookieName string
}

func NewAuthenticator(tokens *services.TokenService, cookieName string) *Authenticator {
	return &Authenticator{tokens: tokens, cookieName: cookieName}
}

func (a *Authenticator) authenticate(c *fiber.Ctx) bool {
	tokenString := c.Cookies(a.cookieName)
	if tokenString == "" {
		return false
	}

	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		return false
	}

	c.Locals(userLocal, claims.TokenUser())
	return true
}

// CurrentUser returns the identity stored by the authenticator.
func CurrentUser(c *fiber.Ctx) (models.TokenUser, bool) {
	user, ok := c.Locals(userLocal).(models.TokenUser)
	return user, ok
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
