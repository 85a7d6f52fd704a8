package repository

import (
	"context"

	"go-ecommerce-catalog/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *entity.ProductImage) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ProductImage, error)
	// FindByProductID returns the gallery ordered by display rank.
	FindByProductID(ctx context.Context, productID primitive.ObjectID) ([]entity.ProductImage, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByProductID(ctx context.Context, productID primitive.ObjectID) error

	// SetCover marks imageID as the single cover of the product and clears
	// every other image in one store operation.
	SetCover(ctx context.Context, productID, imageID primitive.ObjectID) error
	SetOrder(ctx context.Context, imageID primitive.ObjectID, order int) error
}
