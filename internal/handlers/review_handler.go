package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/services"
)

// CreateReview reviews the product named by :id as the caller.
func (h *Handler) CreateReview(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	var request services.ReviewInput
	if err := h.bind(c, &request); err != nil {
		return err
	}

	review, err := h.reviews.Create(c.UserContext(), me.UserID, c.Params("id"), request)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// ListProductReviews lists the reviews of the product named by :id.
func (h *Handler) ListProductReviews(c *fiber.Ctx) error {
	reviews, err := h.reviews.ListByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// GetReview returns one review with user and product names.
func (h *Handler) GetReview(c *fiber.Ctx) error {
	review, err := h.reviews.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(review)
}

// UpdateReview edits rating, title or comment.
func (h *Handler) UpdateReview(c *fiber.Ctx) error {
	var update models.ReviewUpdate
	if err := h.bind(c, &update); err != nil {
		return err
	}

	review, err := h.reviews.Update(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Review updated", "review": review})
}

// DeleteReview removes a review.
func (h *Handler) DeleteReview(c *fiber.Ctx) error {
	if err := h.reviews.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
