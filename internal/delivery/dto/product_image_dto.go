package dto

import "time"

// Request DTOs

type ReorderImagesRequest struct {
	ImageIDs []string `json:"image_ids" validate:"required,min=1"`
}

// Response DTOs

type ProductImageResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Order     int    `json:"order"`
	IsCover   bool   `json:"is_cover"`

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
