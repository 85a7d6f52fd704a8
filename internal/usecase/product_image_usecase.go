package usecase

import (
	"context"
	"errors"

	"go-ecommerce-catalog/internal/converter"
	"go-ecommerce-catalog/internal/delivery/dto"
	"go-ecommerce-catalog/internal/domain/entity"
	"go-ecommerce-catalog/internal/domain/repository"
	"go-ecommerce-catalog/internal/service"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrImageNotFound    = errors.New("product image not found")
	ErrNoImagesProvided = errors.New("no images provided")
)

type ProductImageUsecase interface {
	GetByProduct(ctx context.Context, productID primitive.ObjectID) ([]dto.ProductImageResponse, error)
	GetByID(ctx context.Context, productID, imageID primitive.ObjectID) (*dto.ProductImageResponse, error)
	Upload(ctx context.Context, productID primitive.ObjectID, files []dto.FileUpload) ([]dto.ProductImageResponse, error)
	SetCover(ctx context.Context, productID, imageID primitive.ObjectID) error
	Reorder(ctx context.Context, productID primitive.ObjectID, imageIDs []primitive.ObjectID) error
	Delete(ctx context.Context, productID, imageID primitive.ObjectID) error
}

type productImageUsecase struct {
	productRepo repository.ProductRepository
	imageRepo   repository.ProductImageRepository
	thumbnails  *service.ThumbnailService
	log         *logrus.Logger
}

func NewProductImageUsecase(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	thumbnails *service.ThumbnailService,
	log *logrus.Logger,
) ProductImageUsecase {
	return &productImageUsecase{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		thumbnails:  thumbnails,
		log:         log,
	}
}

func (u *productImageUsecase) GetByProduct(ctx context.Context, productID primitive.ObjectID) ([]dto.ProductImageResponse, error) {
	product, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	images, err := u.imageRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return converter.ProductImagesToResponses(images), nil
}

func (u *productImageUsecase) GetByID(ctx context.Context, productID, imageID primitive.ObjectID) (*dto.ProductImageResponse, error) {
	image, err := u.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil || image.ProductID != productID {
		return nil, ErrImageNotFound
	}
	return converter.ProductImageToResponse(image), nil
}

// Upload processes a batch of gallery files. A file with a disallowed
// type or an undecodable payload is skipped; its siblings still persist.
// The first accepted image of an empty gallery becomes the cover.
func (u *productImageUsecase) Upload(ctx context.Context, productID primitive.ObjectID, files []dto.FileUpload) ([]dto.ProductImageResponse, error) {
	product, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if len(files) == 0 {
		return nil, ErrNoImagesProvided
	}

	existing, err := u.imageRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	startOrder := len(existing)

	created := make([]dto.ProductImageResponse, 0, len(files))
	for i := range files {
		file := &files[i]

		if !isAllowedImage(file.ContentType, file.Filename, true) {
			u.log.WithField("filename", file.Filename).Warn("Skipping upload with disallowed image type")
			continue
		}

		set, err := u.thumbnails.GenerateSet(file.Data, file.ContentType)
		if err != nil {
			u.log.WithError(err).WithField("filename", file.Filename).Warn("Skipping undecodable upload")
			continue
		}

		image := &entity.ProductImage{
			ProductID: productID,
			Order:     startOrder + len(created),
			IsCover:   startOrder == 0 && len(created) == 0,

			Image:            file.Data,
			ImageContentType: file.ContentType,

			ThumbnailCard:              set.Card,
			ThumbnailCardContentType:   set.CardContentType,
			ThumbnailDetail:            set.Detail,
			ThumbnailDetailContentType: set.DetailContentType,
			ThumbnailSlider:            set.Slider,
			ThumbnailSliderContentType: set.SliderContentType,
		}

		if err := u.imageRepo.Create(ctx, image); err != nil {
			return nil, err
		}
		created = append(created, *converter.ProductImageToResponse(image))
	}

	return created, nil
}

func (u *productImageUsecase) SetCover(ctx context.Context, productID, imageID primitive.ObjectID) error {
	image, err := u.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image == nil || image.ProductID != productID {
		return ErrImageNotFound
	}

	return u.imageRepo.SetCover(ctx, productID, imageID)
}

func (u *productImageUsecase) Reorder(ctx context.Context, productID primitive.ObjectID, imageIDs []primitive.ObjectID) error {
	for i, imageID := range imageIDs {
		if err := u.imageRepo.SetOrder(ctx, imageID, i); err != nil {
			return err
		}
	}
	return nil
}

func (u *productImageUsecase) Delete(ctx context.Context, productID, imageID primitive.ObjectID) error {
	image, err := u.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image == nil || image.ProductID != productID {
		return ErrImageNotFound
	}

	// Keep the gallery covered: promote the first remaining image before
	// the cover disappears.
	if image.IsCover {
		all, err := u.imageRepo.FindByProductID(ctx, productID)
		if err != nil {
			return err
		}
		for i := range all {
			if all[i].ID != imageID {
				if err := u.imageRepo.SetCover(ctx, productID, all[i].ID); err != nil {
					return err
				}
				break
			}
		}
	}

	return u.imageRepo.Delete(ctx, imageID)
}
