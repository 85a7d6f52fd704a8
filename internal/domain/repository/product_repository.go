package repository

import (
	"context"

	"go-ecommerce-catalog/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductFilter describes which products a query matches. Search is a
// case-insensitive substring over name OR description; Name is an exact,
// case-sensitive equality on name. Both combine with AND when set.
type ProductFilter struct {
	Search string
	Name   string
}

// ProductSort is a store-native sort instruction.
type ProductSort struct {
	Field     string
	Ascending bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// FindPage delegates filtering, sorting and pagination to the store.
	FindPage(ctx context.Context, filter ProductFilter, sort ProductSort, skip, limit int64) ([]entity.Product, error)
	// FindMatching returns every product matching the filter, unsorted,
	// for sort orders the store cannot produce.
	FindMatching(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	DistinctNames(ctx context.Context) ([]string, error)
}
