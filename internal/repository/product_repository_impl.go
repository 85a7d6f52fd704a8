package repository

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"time"

	"go-ecommerce-catalog/internal/domain/entity"
	domainRepo "go-ecommerce-catalog/internal/domain/repository"
	"go-ecommerce-catalog/internal/infrastructure/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) domainRepo.ProductRepository {
	return &productRepository{collection: db.Collection(database.ProductCollection)}
}

// buildFilter maps a ProductFilter to a Mongo filter document. Search and
// exact name live under different keys, so setting both yields AND.
func buildFilter(f domainRepo.ProductFilter) bson.M {
	filter := bson.M{}

	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		filter["$or"] = []bson.M{
			{"name": primitive.Regex{Pattern: pattern, Options: "i"}},
			{"description": primitive.Regex{Pattern: pattern, Options: "i"}},
		}
	}

	if f.Name != "" {
		filter["name"] = f.Name
	}

	return filter
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var product entity.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *productRepository) FindPage(ctx context.Context, filter domainRepo.ProductFilter, s domainRepo.ProductSort, skip, limit int64) ([]entity.Product, error) {
	direction := -1
	if s.Ascending {
		direction = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: s.Field, Value: direction}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, err
	}

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindMatching(ctx context.Context, filter domainRepo.ProductFilter) ([]entity.Product, error) {
	cursor, err := r.collection.Find(ctx, buildFilter(filter))
	if err != nil {
		return nil, err
	}

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter domainRepo.ProductFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, buildFilter(filter))
}

func (r *productRepository) DistinctNames(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	sort.Strings(names)
	return names, nil
}
