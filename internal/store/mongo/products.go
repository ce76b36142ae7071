package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/mercadito/internal/store/core"
)

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
}

func (d *productDoc) toCore() *core.Product {
	return &core.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
	}
}

type productRepo struct {
	col *mongo.Collection
}

// parseID traduce un hex mal formado a ErrInvalidID (400, no 404).
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, core.ErrInvalidID
	}
	return oid, nil
}

// searchFilter arma el $or case-insensitive sobre name/description/category.
// QuoteMeta: la búsqueda es por substring literal, los metacaracteres del
// query no deben interpretarse como regex.
func searchFilter(q string) bson.M {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	return bson.M{"$or": []bson.M{
		{"name": re},
		{"description": re},
		{"category": re},
	}}
}

func (r *productRepo) Create(ctx context.Context, in core.CreateProductInput) (*core.Product, error) {
	doc := productDoc{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("mongo: insert product: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("mongo: unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toCore(), nil
}

func (r *productRepo) List(ctx context.Context, q core.ListQuery) ([]core.Product, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter = searchFilter(q.Search)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo: count products: %w", err)
	}

	// Orden explícito por _id: el orden "natural" del store no es estable
	// entre páginas.
	opts := options.Find().
		SetSkip(q.Skip).
		SetLimit(q.Limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo: find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("mongo: decode products: %w", err)
	}

	items := make([]core.Product, 0, len(docs))
	for i := range docs {
		items = append(items, *docs[i].toCore())
	}
	return items, total, nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*core.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: find product: %w", err)
	}
	return doc.toCore(), nil
}

func (r *productRepo) Update(ctx context.Context, id string, patch core.ProductPatch) (*core.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	// Patch vacío: no hay nada que mergear, devolver el registro actual.
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: update product: %w", err)
	}
	return doc.toCore(), nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo: delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}
