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

type mongoReviews struct {
	mongoBase
	col *mongo.Collection
}

func (s *mongoReviews) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	now := time.Now()
	review.CreatedAt, review.UpdatedAt = now, now

	if _, err := s.col.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", translate(err))
	}
	return nil
}

func (s *mongoReviews) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var review models.Review
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *mongoReviews) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cursor, err := s.col.Find(ctx, bson.M{"product": productID}, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

func (s *mongoReviews) Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Comment != nil {
		set["comment"] = *update.Comment
	}

	var review models.Review
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&review)
	if err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *mongoReviews) Delete(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var review models.Review
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *mongoReviews) DeleteByProduct(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.col.DeleteMany(ctx, bson.M{"product": productID})
	if err != nil {
		return 0, fmt.Errorf("delete reviews: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *mongoReviews) Summarize(ctx context.Context, productID primitive.ObjectID) (models.RatingSummary, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"average_rating": bson.M{"$avg": "$rating"},
			"num_of_reviews": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.RatingSummary
	if err := cursor.All(ctx, &results); err != nil {
		return models.RatingSummary{}, fmt.Errorf("decode ratings: %w", err)
	}
	if len(results) == 0 {
		return models.RatingSummary{}, nil
	}
	return results[0], nil
}
