package store

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrders struct {
	mongoBase
	col *mongo.Collection
}

func (s *mongoOrders) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now

	if _, err := s.col.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order: %w", translate(err))
	}
	return nil
}

func (s *mongoOrders) List(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user": userID})
}

func (s *mongoOrders) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *mongoOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var order models.Order
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *mongoOrders) MarkProcessing(ctx context.Context, id primitive.ObjectID, paymentIntentID string) (*models.Order, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var order models.Order
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"payment_intent_id": paymentIntentID,
			"status":            models.OrderProcessing,
			"updated_at":        time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *mongoOrders) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
