package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// NewMongo returns Stores backed by the collections of database.
func NewMongo(database *mongo.Database, timeout time.Duration) Stores {
	base := mongoBase{timeout: timeout}
	return Stores{
		Users:    &mongoUsers{mongoBase: base, col: database.Collection("users")},
		Products: &mongoProducts{mongoBase: base, col: database.Collection("products")},
		Reviews:  &mongoReviews{mongoBase: base, col: database.Collection("reviews")},
		Orders:   &mongoOrders{mongoBase: base, col: database.Collection("orders")},
	}
}

type mongoBase struct {
	timeout time.Duration
}

func (b mongoBase) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, b.timeout)
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
