package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/store"
)

type OrderItemInput struct {
	Product string `json:"product"`
	Amount  int    `json:"amount"`
}

// OrderInput is a cart submission. Tax and ShippingFee are pointers so a
// missing field can be told apart from zero.
type OrderInput struct {
	Items       []OrderItemInput `json:"items"`
	Tax         *float64         `json:"tax"`
	ShippingFee *float64         `json:"shippingFee"`
}

// OrderService prices carts and manages orders.
type OrderService struct {
	orders   store.OrderStore
	products store.ProductStore
}

func NewOrderService(stores store.Stores) *OrderService {
	return &OrderService{orders: stores.Orders, products: stores.Products}
}

// Quote prices the cart against current product prices without persisting
// anything.
func (s *OrderService) Quote(ctx context.Context, in OrderInput) (*models.Quote, error) {
	if len(in.Items) == 0 || in.Tax == nil || in.ShippingFee == nil {
		return nil, newError(ErrInvalidInput, "Missing required fields")
	}
	if *in.Tax < 0 || *in.ShippingFee < 0 {
		return nil, newError(ErrInvalidInput, "Tax and shipping fee must not be negative")
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, item := range in.Items {
		if item.Amount <= 0 {
			return nil, newError(ErrInvalidInput, "Item amount must be positive")
		}
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			return nil, newError(ErrInvalidInput, "Invalid product")
		}
		product, err := s.products.FindByID(ctx, productID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(ErrInvalidInput, "Invalid product")
		}
		if err != nil {
			return nil, fmt.Errorf("lookup product: %w", err)
		}

		items = append(items, models.OrderItem{
			Name:    product.Name,
			Image:   product.Image,
			Price:   product.Price,
			Amount:  item.Amount,
			Product: product.ID,
		})
		line := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Amount)))
		subtotal = subtotal.Add(line)
	}

	tax := decimal.NewFromFloat(*in.Tax)
	shipping := decimal.NewFromFloat(*in.ShippingFee)
	total := subtotal.Add(tax).Add(shipping)

	return &models.Quote{
		Items:       items,
		Subtotal:    subtotal.InexactFloat64(),
		Tax:         tax.InexactFloat64(),
		ShippingFee: shipping.InexactFloat64(),
		Total:       total.InexactFloat64(),
	}, nil
}

// Create prices the cart and records it as a pending order for userID.
func (s *OrderService) Create(ctx context.Context, userID string, in OrderInput) (*models.Order, error) {
	owner, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	quote, err := s.Quote(ctx, in)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		User:         owner,
		Items:        quote.Items,
		Subtotal:     quote.Subtotal,
		Tax:          quote.Tax,
		ShippingFee:  quote.ShippingFee,
		Total:        quote.Total,
		Status:       models.OrderPending,
		ClientSecret: uuid.NewString(),
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// List returns all orders, oldest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// ListForUser returns the orders placed by userID.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	owner, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, owner)
}

// Get returns the order with the given id.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	objID, err := parseID(id, "order")
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Order not found")
	}
	return order, err
}

// Pay stamps the payment intent and moves the order to processing.
func (s *OrderService) Pay(ctx context.Context, id, paymentIntentID string) (*models.Order, error) {
	if paymentIntentID == "" {
		return nil, newError(ErrInvalidInput, "Payment intent id is required")
	}
	objID, err := parseID(id, "order")
	if err != nil {
		return nil, err
	}
	order, err := s.orders.MarkProcessing(ctx, objID, paymentIntentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Order not found")
	}
	return order, err
}

// Delete removes the order with the given id.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	objID, err := parseID(id, "order")
	if err != nil {
		return err
	}
	err = s.orders.Delete(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		return newError(ErrNotFound, "Order not found")
	}
	return err
}

// Owner returns the id of the user who placed the order.
func (s *OrderService) Owner(ctx context.Context, id string) (string, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return order.User.Hex(), nil
}
