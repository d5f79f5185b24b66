package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Rating    int                `bson:"rating" json:"rating"`
	Title     string             `bson:"title" json:"title"`
	Comment   string             `bson:"comment" json:"comment"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type ReviewUpdate struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Title   *string `json:"title" validate:"omitempty,min=3,max=50"`
	Comment *string `json:"comment" validate:"omitempty,min=3,max=2000"`
}

func (u ReviewUpdate) Apply(r *Review) {
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Comment != nil {
		r.Comment = *u.Comment
	}
}

// RatingSummary is the aggregate of all reviews of one product.
type RatingSummary struct {
	AverageRating float64 `bson:"average_rating"`
	NumOfReviews  int     `bson:"num_of_reviews"`
}

type NamedRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// ReviewView is a review with its user and product references populated.
type ReviewView struct {
	ID        primitive.ObjectID `json:"id"`
	Rating    int                `json:"rating"`
	Title     string             `json:"title"`
	Comment   string             `json:"comment"`
	User      NamedRef           `json:"user"`
	Product   NamedRef           `json:"product"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
