package database

import (
	"context"
	"fmt"
	"time"

	"go-ecommerce-catalog/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProductCollection      = "products"
	ProductImageCollection = "product_images"

	connectTimeout = 10 * time.Second
)

func NewMongoConnection(cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Successfully connected to MongoDB")

	return client, db, nil
}

// ensureIndexes creates the gallery ordering index used by the
// list-images-by-product query.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ProductImageCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "productId", Value: 1},
			{Key: "order", Value: 1},
		},
	})
	return err
}
