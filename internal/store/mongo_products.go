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

type mongoProducts struct {
	mongoBase
	col *mongo.Collection
}

func (s *mongoProducts) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now

	if _, err := s.col.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("insert product: %w", translate(err))
	}
	return nil
}

func (s *mongoProducts) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Company != "" {
		query["company"] = filter.Company
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}

	cursor, err := s.col.Find(ctx, query, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *mongoProducts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var product models.Product
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *mongoProducts) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) (*models.Product, error) {
	set := productSet(update)
	set["updated_at"] = time.Now()
	return s.findOneAndSet(ctx, id, set)
}

func (s *mongoProducts) SetImage(ctx context.Context, id primitive.ObjectID, image string) error {
	_, err := s.findOneAndSet(ctx, id, bson.M{"image": image, "updated_at": time.Now()})
	return err
}

func (s *mongoProducts) SetRating(ctx context.Context, id primitive.ObjectID, summary models.RatingSummary) error {
	_, err := s.findOneAndSet(ctx, id, bson.M{
		"average_rating": summary.AverageRating,
		"num_of_reviews": summary.NumOfReviews,
	})
	return err
}

func (s *mongoProducts) findOneAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var product models.Product
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *mongoProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func productSet(u models.ProductUpdate) bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Company != nil {
		set["company"] = *u.Company
	}
	if u.Colors != nil {
		set["colors"] = *u.Colors
	}
	if u.Featured != nil {
		set["featured"] = *u.Featured
	}
	if u.FreeShipping != nil {
		set["free_shipping"] = *u.FreeShipping
	}
	if u.Inventory != nil {
		set["inventory"] = *u.Inventory
	}
	return set
}
