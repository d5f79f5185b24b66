// Package store holds the persistence layer. Each resource has a repository
// interface with a MongoDB implementation and an in-memory one.
package store

import (
	"context"
	"errors"

	"github.com/arzan03/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) (*models.Product, error)
	SetImage(ctx context.Context, id primitive.ObjectID, image string) error
	SetRating(ctx context.Context, id primitive.ObjectID, summary models.RatingSummary) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	DeleteByProduct(ctx context.Context, productID primitive.ObjectID) (int64, error)
	Summarize(ctx context.Context, productID primitive.ObjectID) (models.RatingSummary, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	MarkProcessing(ctx context.Context, id primitive.ObjectID, paymentIntentID string) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Stores bundles every repository the services need.
type Stores struct {
	Users    UserStore
	Products ProductStore
	Reviews  ReviewStore
	Orders   OrderStore
}
