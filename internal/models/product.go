package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultProductImage = "https://via.placeholder.com/150"

var (
	Categories = []string{"office", "kitchen", "bedroom"}
	Companies  = []string{"ikea", "liddy", "marcos"}
	Colors     = []string{"red", "green", "blue", "yellow"}
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	Description   string             `bson:"description" json:"description"`
	Image         string             `bson:"image" json:"image"`
	Category      string             `bson:"category" json:"category"`
	Company       string             `bson:"company" json:"company"`
	Colors        []string           `bson:"colors" json:"colors"`
	Featured      bool               `bson:"featured" json:"featured"`
	FreeShipping  bool               `bson:"free_shipping" json:"freeShipping"`
	Inventory     int                `bson:"inventory" json:"inventory"`
	AverageRating float64            `bson:"average_rating" json:"averageRating"`
	NumOfReviews  int                `bson:"num_of_reviews" json:"numOfReviews"`
	User          primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name         *string   `json:"name" validate:"omitempty,min=3,max=100"`
	Price        *float64  `json:"price" validate:"omitempty,gte=0"`
	Description  *string   `json:"description" validate:"omitempty,min=3,max=1000"`
	Image        *string   `json:"image" validate:"omitempty,min=3,max=1000"`
	Category     *string   `json:"category" validate:"omitempty,oneof=office kitchen bedroom"`
	Company      *string   `json:"company" validate:"omitempty,oneof=ikea liddy marcos"`
	Colors       *[]string `json:"colors" validate:"omitempty,min=1,dive,oneof=red green blue yellow"`
	Featured     *bool     `json:"featured"`
	FreeShipping *bool     `json:"freeShipping"`
	Inventory    *int      `json:"inventory" validate:"omitempty,gte=0"`
}

// Apply copies the set fields of u onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Company != nil {
		p.Company = *u.Company
	}
	if u.Colors != nil {
		p.Colors = append([]string(nil), (*u.Colors)...)
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
	if u.FreeShipping != nil {
		p.FreeShipping = *u.FreeShipping
	}
	if u.Inventory != nil {
		p.Inventory = *u.Inventory
	}
}

// ProductFilter narrows product listings. Empty fields match everything.
type ProductFilter struct {
	Category string
	Company  string
	Featured *bool
}

// ProductWithReviews is a product with its reviews resolved.
type ProductWithReviews struct {
	Product
	Reviews []Review `json:"reviews"`
}
