package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FileUpload carries one multipart file part.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Request DTOs

type CreateProductRequest struct {
	Name        string `validate:"required,min=2"`
	Description string
	// Price arrives as the raw form string and goes through the
	// locale-tolerant parser, not through a float field.
	Price string `validate:"required"`
	Image *FileUpload
}

type UpdateProductRequest struct {
	Name        string `validate:"required,min=2"`
	Description string
	Price       string `validate:"required"`
	Image       *FileUpload
}

// ListProductsQuery are the paged-query parameters. Page and PageSize
// are clamped by the usecase.
type ListProductsQuery struct {
	Search   string
	Name     string
	SortBy   string
	Page     int
	PageSize int
}

// Response DTOs

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`

	Image            []byte `json:"image,omitempty"`
	ImageContentType string `json:"image_content_type,omitempty"`

	ThumbnailCard              []byte `json:"thumbnail_card,omitempty"`
	ThumbnailCardContentType   string `json:"thumbnail_card_content_type,omitempty"`
	ThumbnailDetail            []byte `json:"thumbnail_detail,omitempty"`
	ThumbnailDetailContentType string `json:"thumbnail_detail_content_type,omitempty"`
	ThumbnailSlider            []byte `json:"thumbnail_slider,omitempty"`
	ThumbnailSliderContentType string `json:"thumbnail_slider_content_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
