package store

import (
	"context"
	"testing"
	"time"

	"github.com/arzan03/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryUsers_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Users.Create(ctx, &models.User{Email: "a@example.com", Role: models.RoleAdmin}))
	err := s.Users.Create(ctx, &models.User{Email: "a@example.com", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicate)

	n, err := s.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryUsers_UpdateProfileConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	a := &models.User{Email: "a@example.com"}
	b := &models.User{Email: "b@example.com"}
	require.NoError(t, s.Users.Create(ctx, a))
	require.NoError(t, s.Users.Create(ctx, b))

	_, err := s.Users.UpdateProfile(ctx, b.ID, "bee", "a@example.com")
	assert.ErrorIs(t, err, ErrDuplicate)

	updated, err := s.Users.UpdateProfile(ctx, b.ID, "bee", "bee@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bee@example.com", updated.Email)
}

func TestMemoryUsers_ListByRoleHidesPassword(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Users.Create(ctx, &models.User{Email: "admin@example.com", Role: models.RoleAdmin, Password: "x"}))
	require.NoError(t, s.Users.Create(ctx, &models.User{Email: "u@example.com", Role: models.RoleUser, Password: "y"}))

	users, err := s.Users.ListByRole(ctx, models.RoleUser)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u@example.com", users[0].Email)
	assert.Empty(t, users[0].Password)
}

func TestMemoryReviews_UniquePerUserAndProduct(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	user, product := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, s.Reviews.Create(ctx, &models.Review{User: user, Product: product, Rating: 4}))
	err := s.Reviews.Create(ctx, &models.Review{User: user, Product: product, Rating: 2})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, s.Reviews.Create(ctx, &models.Review{User: primitive.NewObjectID(), Product: product, Rating: 2}))

	summary, err := s.Reviews.Summarize(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{AverageRating: 3, NumOfReviews: 2}, summary)
}

func TestMemoryReviews_DeleteByProduct(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	product, other := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, s.Reviews.Create(ctx, &models.Review{User: primitive.NewObjectID(), Product: product}))
	require.NoError(t, s.Reviews.Create(ctx, &models.Review{User: primitive.NewObjectID(), Product: product}))
	require.NoError(t, s.Reviews.Create(ctx, &models.Review{User: primitive.NewObjectID(), Product: other}))

	n, err := s.Reviews.DeleteByProduct(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := s.Reviews.ListByProduct(ctx, product)
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := s.Reviews.ListByProduct(ctx, other)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestMemoryProducts_ListFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Products.Create(ctx, &models.Product{Name: "desk", Category: "office", Featured: true}))
	time.Sleep(time.Millisecond)
	require.NoError(t, s.Products.Create(ctx, &models.Product{Name: "pan", Category: "kitchen"}))

	all, err := s.Products.List(ctx, models.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "desk", all[0].Name)

	featured := true
	got, err := s.Products.List(ctx, models.ProductFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "desk", got[0].Name)

	got, err = s.Products.List(ctx, models.ProductFilter{Category: "kitchen"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pan", got[0].Name)
}

func TestMemoryOrders_MarkProcessing(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	order := &models.Order{User: primitive.NewObjectID(), Status: models.OrderPending}
	require.NoError(t, s.Orders.Create(ctx, order))

	updated, err := s.Orders.MarkProcessing(ctx, order.ID, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, updated.Status)
	assert.Equal(t, "pi_123", updated.PaymentIntentID)

	_, err = s.Orders.MarkProcessing(ctx, primitive.NewObjectID(), "pi_123")
	assert.ErrorIs(t, err, ErrNotFound)
}
