package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/storefront/internal/models"
)

type productRequest struct {
	Name         string   `json:"name" validate:"required,min=3,max=100"`
	Price        float64  `json:"price" validate:"gte=0"`
	Description  string   `json:"description" validate:"required,min=3,max=1000"`
	Image        string   `json:"image" validate:"omitempty,min=3,max=1000"`
	Category     string   `json:"category" validate:"required,oneof=office kitchen bedroom"`
	Company      string   `json:"company" validate:"required,oneof=ikea liddy marcos"`
	Colors       []string `json:"colors" validate:"required,min=1,dive,oneof=red green blue yellow"`
	Featured     bool     `json:"featured"`
	FreeShipping bool     `json:"freeShipping"`
	Inventory    *int     `json:"inventory" validate:"omitempty,gte=0"`
}

func (r productRequest) product() *models.Product {
	inventory := 10
	if r.Inventory != nil {
		inventory = *r.Inventory
	}
	return &models.Product{
		Name:         r.Name,
		Price:        r.Price,
		Description:  r.Description,
		Image:        r.Image,
		Category:     r.Category,
		Company:      r.Company,
		Colors:       r.Colors,
		Featured:     r.Featured,
		FreeShipping: r.FreeShipping,
		Inventory:    inventory,
	}
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	var request productRequest
	if err := h.bind(c, &request); err != nil {
		return err
	}

	product := request.product()
	if err := h.products.Create(c.UserContext(), product, me.UserID); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// ListProducts lists the catalog, filtered by category, company and featured.
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		Category: c.Query("category"),
		Company:  c.Query("company"),
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "featured must be true or false")
		}
		filter.Featured = &featured
	}

	products, err := h.products.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GetProduct returns a product with its reviews.
func (h *Handler) GetProduct(c *fiber.Ctx) error {
	product, err := h.products.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// UpdateProduct applies a partial update.
func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	var update models.ProductUpdate
	if err := h.bind(c, &update); err != nil {
		return err
	}

	product, err := h.products.Update(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// DeleteProduct removes a product and its reviews.
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadProductImage stores the "image" form file and points the product at it.
func (h *Handler) UploadProductImage(c *fiber.Ctx) error {
	// A missing form file is reported by the service as a bad request.
	file, _ := c.FormFile("image")

	name, url, err := h.products.UploadImage(c.UserContext(), c.Params("id"), file)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"image": name, "url": url})
}
