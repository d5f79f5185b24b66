package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/storefront/internal/services"
)

// Register creates an account and starts a session for it.
func (h *Handler) Register(c *fiber.Ctx) error {
	var request struct {
		Name     string `json:"name" validate:"required,min=3,max=50"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}
	if err := h.bind(c, &request); err != nil {
		return err
	}

	session, err := h.auth.Register(c.UserContext(), request.Name, request.Email, request.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": session.User})
}

// Login verifies credentials and sets a fresh session cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := h.auth.Login(c.UserContext(), request.Email, request.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	return c.JSON(fiber.Map{"user": session.User})
}

// Logout expires the session cookie.
func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// The cookie expires together with the token it carries.
func (h *Handler) setSessionCookie(c *fiber.Ctx, session *services.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
