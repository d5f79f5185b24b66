package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/storefront/internal/middleware"
	"github.com/arzan03/storefront/internal/models"
)

// Route binds one method and path to its access policy and handler.
type Route struct {
	Method  string
	Path    string
	Policy  middleware.Policy
	Handler fiber.Handler
}

// Routes returns the API route table. Static paths must precede the :id
// routes that would otherwise shadow them.
func (h *Handler) Routes() []Route {
	admin := middleware.RequireRoles(models.RoleAdmin)
	user := middleware.Authenticated()
	self := middleware.OwnerOrAdmin(middleware.SelfResolver)
	orderOwner := middleware.OwnerOrAdmin(h.orders.Owner)
	reviewOwner := middleware.OwnerOrAdmin(h.reviews.Owner)

	return []Route{
		{fiber.MethodPost, "/auth/register", middleware.Public, h.Register},
		{fiber.MethodPost, "/auth/login", middleware.Public, h.Login},
		{fiber.MethodGet, "/auth/logout", middleware.Public, h.Logout},

		{fiber.MethodGet, "/users", admin, h.ListUsers},
		{fiber.MethodGet, "/users/showMe", user, h.ShowCurrentUser},
		{fiber.MethodPatch, "/users/updateUser", user, h.UpdateUser},
		{fiber.MethodPatch, "/users/updateUserPassword", user, h.UpdateUserPassword},
		{fiber.MethodGet, "/users/:id", self, h.GetUser},

		{fiber.MethodPost, "/products", admin, h.CreateProduct},
		{fiber.MethodGet, "/products", middleware.Public, h.ListProducts},
		{fiber.MethodGet, "/products/:id", middleware.Public, h.GetProduct},
		{fiber.MethodPatch, "/products/:id", admin, h.UpdateProduct},
		{fiber.MethodDelete, "/products/:id", admin, h.DeleteProduct},
		{fiber.MethodPost, "/products/:id/image", admin, h.UploadProductImage},

		{fiber.MethodPost, "/reviews/:id", user, h.CreateReview},
		{fiber.MethodGet, "/reviews/product/:id", middleware.Public, h.ListProductReviews},
		{fiber.MethodGet, "/reviews/:id", middleware.Public, h.GetReview},
		{fiber.MethodPatch, "/reviews/:id", reviewOwner, h.UpdateReview},
		{fiber.MethodDelete, "/reviews/:id", reviewOwner, h.DeleteReview},

		{fiber.MethodPost, "/orders", user, h.CreateOrder},
		{fiber.MethodPost, "/orders/quote", user, h.QuoteOrder},
		{fiber.MethodGet, "/orders", admin, h.ListOrders},
		{fiber.MethodGet, "/orders/user/:id", user, h.ListCurrentUserOrders},
		{fiber.MethodGet, "/orders/:id", orderOwner, h.GetOrder},
		{fiber.MethodPatch, "/orders/:id", orderOwner, h.UpdateOrder},
		{fiber.MethodDelete, "/orders/:id", orderOwner, h.DeleteOrder},
	}
}

// Register mounts routes on router, each behind its policy.
func Register(router fiber.Router, auth *middleware.Authenticator, routes []Route) {
	for _, r := range routes {
		router.Add(r.Method, r.Path, auth.Enforce(r.Policy), r.Handler)
	}
}
