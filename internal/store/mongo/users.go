package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dropDatabas3/mercadito/internal/store/core"
)

// userDoc es la representación persistida; el _id queda encapsulado acá.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
}

func (d *userDoc) toCore() *core.User {
	return &core.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
	}
}

type userRepo struct {
	col *mongo.Collection
}

func (r *userRepo) Create(ctx context.Context, username, passwordHash string) (*core.User, error) {
	doc := userDoc{Username: username, PasswordHash: passwordHash}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, core.ErrDuplicate
		}
		return nil, fmt.Errorf("mongo: insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("mongo: unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toCore(), nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*core.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: find user: %w", err)
	}
	return doc.toCore(), nil
}
