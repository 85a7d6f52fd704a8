package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sourcegraph/conc"

	"github.com/HugoSmits86/nativewebp"

	// Register the webp decoder so gallery uploads decode alongside png/jpeg.
	_ "golang.org/x/image/webp"
)

// Thumbnail pixel sizes for the three UI contexts.
const (
	SizeCard   = 220 // product cards
	SizeDetail = 512 // detail modal
	SizeSlider = 120 // slider preview
)

const jpegQuality = 85

// ThumbnailSet holds the three derived images of one upload.
type ThumbnailSet struct {
	Card              []byte
	CardContentType   string
	Detail            []byte
	DetailContentType string
	Slider            []byte
	SliderContentType string
}

// ThumbnailService turns an uploaded image into square cover-cropped
// derivatives, re-encoded in a format matching the source MIME type.
type ThumbnailService struct{}

func NewThumbnailService() *ThumbnailService {
	return &ThumbnailService{}
}

// Generate decodes data, scales it to fill a size×size square (cropping
// overflow, never letterboxing) and re-encodes it. The returned content
// type is the one actually produced, which may differ from the hint.
func (s *ThumbnailService) Generate(data []byte, contentType string, size int) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	hint := strings.ToLower(contentType)
	switch {
	case strings.Contains(hint, "jpeg") || strings.Contains(hint, "jpg"):
		if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	case strings.Contains(hint, "webp"):
		if err := nativewebp.Encode(&buf, thumb, nil); err != nil {
			return nil, "", fmt.Errorf("encode webp: %w", err)
		}
		return buf.Bytes(), "image/webp", nil
	default:
		if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}
}

// GenerateSet produces the card, detail and slider thumbnails
// concurrently and joins before returning. A decode failure on any size
// fails the whole set; the caller decides whether that skips the item or
// is silently ignored.
func (s *ThumbnailService) GenerateSet(data []byte, contentType string) (*ThumbnailSet, error) {
	set := &ThumbnailSet{}
	var cardErr, detailErr, sliderErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		set.Card, set.CardContentType, cardErr = s.Generate(data, contentType, SizeCard)
	})
	wg.Go(func() {
		set.Detail, set.DetailContentType, detailErr = s.Generate(data, contentType, SizeDetail)
	})
	wg.Go(func() {
		set.Slider, set.SliderContentType, sliderErr = s.Generate(data, contentType, SizeSlider)
	})
	wg.Wait()

	for _, err := range []error{cardErr, detailErr, sliderErr} {
		if err != nil {
			return nil, err
		}
	}
	return set, nil
}
