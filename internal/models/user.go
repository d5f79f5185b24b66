package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// TokenUser is the identity embedded in auth tokens and echoed to clients.
type TokenUser struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (u User) TokenUser() TokenUser {
	return TokenUser{Name: u.Name, UserID: u.ID.Hex(), Role: u.Role}
}
