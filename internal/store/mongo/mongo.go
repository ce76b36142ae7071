// Package mongo implementa el adapter del document store sobre mongo-driver.
//
// Colecciones: "users" (índice único sobre username) y "products".
// La atomicidad es por documento (FindOneAndUpdate / DeleteOne); no se usan
// transacciones multi-documento.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dropDatabas3/mercadito/internal/store/core"
)

const (
	usersCollection    = "users"
	productsCollection = "products"

	connectTimeout = 10 * time.Second
)

// Store implementa core.Repository sobre una base MongoDB.
type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	users    *userRepo
	products *productRepo
}

// New conecta al URI dado, verifica la conexión y asegura los índices.
func New(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}
	if database == "" {
		database = "mercadito"
	}

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		db:       db,
		users:    &userRepo{col: db.Collection(usersCollection)},
		products: &productRepo{col: db.Collection(productsCollection)},
	}

	if err := s.ensureIndexes(cctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// ensureIndexes crea el índice único de username.
// El índice es el que garantiza unicidad ante registros concurrentes; el
// pre-chequeo del service es solo para dar un error temprano.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo: ensure username index: %w", err)
	}
	return nil
}

func (s *Store) Users() core.UserRepository       { return s.users }
func (s *Store) Products() core.ProductRepository { return s.products }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
