package converter

import (
	"go-ecommerce-catalog/internal/delivery/dto"
	"go-ecommerce-catalog/internal/domain/entity"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceToDecimal128 converts an already-rounded price to the store
// representation. Prices are fixed at two fractional digits, so the
// string round-trip cannot fail.
func PriceToDecimal128(price decimal.Decimal) primitive.Decimal128 {
	d128, err := primitive.ParseDecimal128(price.StringFixed(2))
	if err != nil {
		return primitive.Decimal128{}
	}
	return d128
}

// PriceFromDecimal128 converts the store representation back to an exact
// decimal for responses.
func PriceFromDecimal128(d128 primitive.Decimal128) decimal.Decimal {
	price, err := decimal.NewFromString(d128.String())
	if err != nil {
		return decimal.Zero
	}
	return price
}

// ProductToResponse converts a Product entity to its response DTO.
func ProductToResponse(product *entity.Product) *dto.ProductResponse {
	if product == nil {
		return nil
	}

	return &dto.ProductResponse{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Description: product.Description,
		Price:       PriceFromDecimal128(product.Price),

		Image:            product.Image,
		ImageContentType: product.ImageContentType,

		ThumbnailCard:              product.ThumbnailCard,
		ThumbnailCardContentType:   product.ThumbnailCardContentType,
		ThumbnailDetail:            product.ThumbnailDetail,
		ThumbnailDetailContentType: product.ThumbnailDetailContentType,
		ThumbnailSlider:            product.ThumbnailSlider,
		ThumbnailSliderContentType: product.ThumbnailSliderContentType,

		CreatedAt: product.CreatedAt,
	}
}

func ProductsToResponses(products []entity.Product) []dto.ProductResponse {
	responses := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *ProductToResponse(&products[i]))
	}
	return responses
}
