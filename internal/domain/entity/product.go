package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. The original upload and the derived
// thumbnails are stored inline as binary fields; a nil thumbnail means
// "not generated yet", not "no image".
type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`

	Image            []byte `bson:"image,omitempty"`
	ImageContentType string `bson:"imageContentType,omitempty"`

	ThumbnailCard              []byte `bson:"thumbnailCard,omitempty"`
	ThumbnailCardContentType   string `bson:"thumbnailCardContentType,omitempty"`
	ThumbnailDetail            []byte `bson:"thumbnailDetail,omitempty"`
	ThumbnailDetailContentType string `bson:"thumbnailDetailContentType,omitempty"`
	ThumbnailSlider            []byte `bson:"thumbnailSlider,omitempty"`
	ThumbnailSliderContentType string `bson:"thumbnailSliderContentType,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
}

// HasAllThumbnails reports whether every thumbnail size has been generated.
func (p *Product) HasAllThumbnails() bool {
	return p.ThumbnailCard != nil && p.ThumbnailDetail != nil && p.ThumbnailSlider != nil
}
