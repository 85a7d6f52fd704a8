package repository

import (
	"context"
	"errors"
	"time"

	"go-ecommerce-catalog/internal/domain/entity"
	domainRepo "go-ecommerce-catalog/internal/domain/repository"
	"go-ecommerce-catalog/internal/infrastructure/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productImageRepository struct {
	collection *mongo.Collection
}

func NewProductImageRepository(db *mongo.Database) domainRepo.ProductImageRepository {
	return &productImageRepository{collection: db.Collection(database.ProductImageCollection)}
}

func (r *productImageRepository) Create(ctx context.Context, image *entity.ProductImage) error {
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	res, err := r.collection.InsertOne(ctx, image)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		image.ID = oid
	}
	return nil
}

func (r *productImageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ProductImage, error) {
	var image entity.ProductImage
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&image)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *productImageRepository) FindByProductID(ctx context.Context, productID primitive.ObjectID) ([]entity.ProductImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, err
	}

	var images []entity.ProductImage
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *productImageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *productImageRepository) DeleteByProductID(ctx context.Context, productID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"productId": productID})
	return err
}

// SetCover flips the cover flag across the whole gallery in a single
// UpdateMany with a pipeline update: isCover becomes (_id == imageID).
// One command, so there is no window where a product has zero or two
// covers between a clear and a set.
func (r *productImageRepository) SetCover(ctx context.Context, productID, imageID primitive.ObjectID) error {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"isCover": bson.M{"$eq": bson.A{"$_id", imageID}},
		}},
	}

	_, err := r.collection.UpdateMany(ctx, bson.M{"productId": productID}, pipeline)
	return err
}

func (r *productImageRepository) SetOrder(ctx context.Context, imageID primitive.ObjectID, order int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": imageID},
		bson.M{"$set": bson.M{"order": order}},
	)
	return err
}
