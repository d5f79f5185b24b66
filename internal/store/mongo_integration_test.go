//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/arzan03/storefront/internal/db"
	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupMongo(t *testing.T) store.Stores {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := db.ConnectMongoDB(ctx, uri, 30*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	database := client.Database("storefront_test")
	require.NoError(t, db.EnsureIndexes(ctx, database))

	return store.NewMongo(database, 10*time.Second)
}

func TestMongoStores(t *testing.T) {
	s := setupMongo(t)
	ctx := context.Background()

	t.Run("unique email", func(t *testing.T) {
		require.NoError(t, s.Users.Create(ctx, &models.User{Email: "dup@example.com", Role: models.RoleUser}))
		err := s.Users.Create(ctx, &models.User{Email: "dup@example.com", Role: models.RoleUser})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.Users.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("review aggregate and uniqueness", func(t *testing.T) {
		product := &models.Product{Name: "chair", Price: 20, Category: "office", Company: "ikea", Colors: []string{"red"}}
		require.NoError(t, s.Products.Create(ctx, product))

		user := primitive.NewObjectID()
		require.NoError(t, s.Reviews.Create(ctx, &models.Review{User: user, Product: product.ID, Rating: 5, Title: "great", Comment: "lovely"}))
		require.NoError(t, s.Reviews.Create(ctx, &models.Review{User: primitive.NewObjectID(), Product: product.ID, Rating: 2, Title: "meh", Comment: "wobbly"}))

		err := s.Reviews.Create(ctx, &models.Review{User: user, Product: product.ID, Rating: 1, Title: "again", Comment: "again"})
		assert.ErrorIs(t, err, store.ErrDuplicate)

		summary, err := s.Reviews.Summarize(ctx, product.ID)
		require.NoError(t, err)
		assert.InDelta(t, 3.5, summary.AverageRating, 1e-9)
		assert.Equal(t, 2, summary.NumOfReviews)

		require.NoError(t, s.Products.SetRating(ctx, product.ID, summary))
		got, err := s.Products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.NumOfReviews)

		n, err := s.Reviews.DeleteByProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		summary, err = s.Reviews.Summarize(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RatingSummary{}, summary)
	})

	t.Run("order lifecycle", func(t *testing.T) {
		owner := primitive.NewObjectID()
		order := &models.Order{User: owner, Status: models.OrderPending, Subtotal: 40, Total: 55}
		require.NoError(t, s.Orders.Create(ctx, order))

		mine, err := s.Orders.ListByUser(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		updated, err := s.Orders.MarkProcessing(ctx, order.ID, "pi_1")
		require.NoError(t, err)
		assert.Equal(t, models.OrderProcessing, updated.Status)

		require.NoError(t, s.Orders.Delete(ctx, order.ID))
		assert.ErrorIs(t, s.Orders.Delete(ctx, order.ID), store.ErrNotFound)
	})
}
