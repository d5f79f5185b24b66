package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ListUsers returns all non-admin accounts.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// GetUser returns one account.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// ShowCurrentUser echoes the token identity without a database read.
func (h *Handler) ShowCurrentUser(c *fiber.Ctx) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateUser changes the caller's name and email.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	var request struct {
		Name  string `json:"name" validate:"required,min=3,max=50"`
		Email string `json:"email" validate:"required,email"`
	}
	if err := h.bind(c, &request); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.UserContext(), me.UserID, request.Name, request.Email)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateUserPassword replaces the caller's password after checking the old one.
func (h *Handler) UpdateUserPassword(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	var request struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.users.UpdatePassword(c.UserContext(), me.UserID, request.OldPassword, request.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}
