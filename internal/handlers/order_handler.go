package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/storefront/internal/services"
)

// QuoteOrder prices a cart without recording an order.
func (h *Handler) QuoteOrder(c *fiber.Ctx) error {
	var request services.OrderInput
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	quote, err := h.orders.Quote(c.UserContext(), request)
	if err != nil {
		return err
	}
	return c.JSON(quote)
}

// CreateOrder records the caller's cart as a pending order.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	var request services.OrderInput
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	order, err := h.orders.Create(c.UserContext(), me.UserID, request)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListOrders returns every order with a count.
func (h *Handler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
}

// GetOrder returns one order.
func (h *Handler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// ListCurrentUserOrders lists the caller's orders. The :id segment of the
// route is not consulted.
func (h *Handler) ListCurrentUserOrders(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListForUser(c.UserContext(), me.UserID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// UpdateOrder stamps a payment intent on the order.
func (h *Handler) UpdateOrder(c *fiber.Ctx) error {
	var request struct {
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	order, err := h.orders.Pay(c.UserContext(), c.Params("id"), request.PaymentIntentID)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// DeleteOrder removes an order.
func (h *Handler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
