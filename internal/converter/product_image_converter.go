package converter

import (
	"go-ecommerce-catalog/internal/delivery/dto"
	"go-ecommerce-catalog/internal/domain/entity"
)

// ProductImageToResponse converts a ProductImage entity to its response DTO.
func ProductImageToResponse(image *entity.ProductImage) *dto.ProductImageResponse {
	if image == nil {
		return nil
	}

	return &dto.ProductImageResponse{
		ID:        image.ID.Hex(),
		ProductID: image.ProductID.Hex(),
		Order:     image.Order,
		IsCover:   image.IsCover,

		Image:            image.Image,
		ImageContentType: image.ImageContentType,

		ThumbnailCard:              image.ThumbnailCard,
		ThumbnailCardContentType:   image.ThumbnailCardContentType,
		ThumbnailDetail:            image.ThumbnailDetail,
		ThumbnailDetailContentType: image.ThumbnailDetailContentType,
		ThumbnailSlider:            image.ThumbnailSlider,
		ThumbnailSliderContentType: image.ThumbnailSliderContentType,

		CreatedAt: image.CreatedAt,
	}
}

func ProductImagesToResponses(images []entity.ProductImage) []dto.ProductImageResponse {
	responses := make([]dto.ProductImageResponse, 0, len(images))
	for i := range images {
		responses = append(responses, *ProductImageToResponse(&images[i]))
	}
	return responses
}
