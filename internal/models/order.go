package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// OrderItem snapshots a product at order time.
type OrderItem struct {
	Name    string             `bson:"name" json:"name"`
	Image   string             `bson:"image" json:"image"`
	Price   float64            `bson:"price" json:"price"`
	Amount  int                `bson:"amount" json:"amount"`
	Product primitive.ObjectID `bson:"product" json:"product"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"order_items" json:"orderItems"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	ShippingFee     float64            `bson:"shipping_fee" json:"shippingFee"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	ClientSecret    string             `bson:"client_secret" json:"clientSecret"`
	PaymentIntentID string             `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Quote is the priced breakdown of a cart, before anything is persisted.
type Quote struct {
	Items       []OrderItem `json:"orderItems"`
	Subtotal    float64     `json:"subtotal"`
	Tax         float64     `json:"tax"`
	ShippingFee float64     `json:"shippingFee"`
	Total       float64     `json:"total"`
}
