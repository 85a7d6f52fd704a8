package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductImage is one gallery image of a product. Order is the 0-based
// display rank within the gallery; at most one image per product carries
// IsCover.
type ProductImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"productId"`
	Order     int                `bson:"order"`
	IsCover   bool               `bson:"isCover"`

	Image            []byte `bson:"image"`
	ImageContentType string `bson:"imageContentType"`

	ThumbnailCard              []byte `bson:"thumbnailCard,omitempty"`
	ThumbnailCardContentType   string `bson:"thumbnailCardContentType,omitempty"`
	ThumbnailDetail            []byte `bson:"thumbnailDetail,omitempty"`
	ThumbnailDetailContentType string `bson:"thumbnailDetailContentType,omitempty"`
	ThumbnailSlider            []byte `bson:"thumbnailSlider,omitempty"`
	ThumbnailSliderContentType string `bson:"thumbnailSliderContentType,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
}
