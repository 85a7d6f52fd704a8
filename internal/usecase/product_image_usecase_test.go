package usecase

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"go-ecommerce-catalog/internal/delivery/dto"
	"go-ecommerce-catalog/internal/domain/entity"
	"go-ecommerce-catalog/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newImageUsecase(pRepo *ProductRepoMock, iRepo *ProductImageRepoMock) ProductImageUsecase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewProductImageUsecase(pRepo, iRepo, service.NewThumbnailService(), log)
}

func TestUpload_SkipsCorruptAndDisallowedSiblingsSurvive(t *testing.T) {
	pRepo := new(ProductRepoMock)
	iRepo := new(ProductImageRepoMock)
	uc := newImageUsecase(pRepo, iRepo)

	productID := primitive.NewObjectID()
	pRepo.On("FindByID", mock.Anything, productID).Return(&entity.Product{ID: productID}, nil)
	iRepo.On("FindByProductID", mock.Anything, productID).Return([]entity.ProductImage{}, nil)
	iRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	files := []dto.FileUpload{
		{Filename: "broken.png", ContentType: "image/png", Data: []byte("not an image")},
		{Filename: "ok.png", ContentType: "image/png", Data: pngBytes(t, 40, 30)},
		{Filename: "anim.gif", ContentType: "image/gif", Data: pngBytes(t, 10, 10)},
	}

	created, err := uc.Upload(context.Background(), productID, files)
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, 0, created[0].Order)
	assert.True(t, created[0].IsCover)
	assert.NotEmpty(t, created[0].ThumbnailCard)
	iRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestUpload_FirstImageIsCoverOnlyForEmptyGallery(t *testing.T) {
	pRepo := new(ProductRepoMock)
	iRepo := new(ProductImageRepoMock)
	uc := newImageUsecase(pRepo, iRepo)

	productID := primitive.NewObjectID()
	existing := []entity.ProductImage{
		{ID: primitive.NewObjectID(), ProductID: productID, Order: 0, IsCover: true},
	}
	pRepo.On("FindByID", mock.Anything, productID).Return(&entity.Product{ID: productID}, nil)
	iRepo.On("FindByProductID", mock.Anything, productID).Return(existing, nil)
	iRepo.On("Create", mock.Anything, mock.MatchedBy(func(img *entity.ProductImage) bool {
		return !img.IsCover && img.Order == 1
	})).Return(nil)

	created, err := uc.Upload(context.Background(), productID, []dto.FileUpload{
		{Filename: "second.png", ContentType: "image/png", Data: pngBytes(t, 16, 16)},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	iRepo.AssertExpectations(t)
}

func TestUpload_EmptyBatchRejected(t *testing.T) {
	pRepo := new(ProductRepoMock)
	iRepo := new(ProductImageRepoMock)
	uc := newImageUsecase(pRepo, iRepo)

	productID := primitive.NewObjectID()
	pRepo.On("FindByID", mock.Anything, productID).Return(&entity.Product{ID: productID}, nil)

	_, err := uc.Upload(context.Background(), productID, nil)
	assert.ErrorIs(t, err, ErrNoImagesProvided)
}

func TestUpload_UnknownProduct(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newImageUsecase(pRepo, new(ProductImageRepoMock))

	productID := primitive.NewObjectID()
	pRepo.On("FindByID", mock.Anything, productID).Return(nil, nil)

	_, err := uc.Upload(context.Background(), productID, []dto.FileUpload{{Filename: "a.png"}})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSetCover_MismatchedParentIsNotFound(t *testing.T) {
	iRepo := new(ProductImageRepoMock)
	uc := newImageUsecase(new(ProductRepoMock), iRepo)

	productID := primitive.NewObjectID()
	imageID := primitive.NewObjectID()
	iRepo.On("FindByID", mock.Anything, imageID).Return(&entity.ProductImage{
		ID:        imageID,
		ProductID: primitive.NewObjectID(), // belongs to another product
	}, nil)

	err := uc.SetCover(context.Background(), productID, imageID)
	assert.ErrorIs(t, err, ErrImageNotFound)
	iRepo.AssertNotCalled(t, "SetCover", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetCover_DelegatesSingleStoreOperation(t *testing.T) {
	iRepo := new(ProductImageRepoMock)
	uc := newImageUsecase(new(ProductRepoMock), iRepo)

	productID := primitive.NewObjectID()
	imageID := primitive.NewObjectID()
	iRepo.On("FindByID", mock.Anything, imageID).Return(&entity.ProductImage{ID: imageID, ProductID: productID}, nil)
	iRepo.On("SetCover", mock.Anything, productID, imageID).Return(nil)

	require.NoError(t, uc.SetCover(context.Background(), productID, imageID))
	iRepo.AssertExpectations(t)
}

func TestDelete_CoverPromotesFirstRemainingImage(t *testing.T) {
	iRepo := new(ProductImageRepoMock)
	uc := newImageUsecase(new(ProductRepoMock), iRepo)

	productID := primitive.NewObjectID()
	coverID := primitive.NewObjectID()
	nextID := primitive.NewObjectID()

	iRepo.On("FindByID", mock.Anything, coverID).Return(&entity.ProductImage{
		ID: coverID, ProductID: productID, IsCover: true,
	}, nil)
	iRepo.On("FindByProductID", mock.Anything, productID).Return([]entity.ProductImage{
		{ID: coverID, ProductID: productID, Order: 0, IsCover: true},
		{ID: nextID, ProductID: productID, Order: 1},
	}, nil)
	iRepo.On("SetCover", mock.Anything, productID, nextID).Return(nil)
	iRepo.On("Delete", mock.Anything, coverID).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), productID, coverID))
	iRepo.AssertExpectations(t)
}

func TestDelete_NonCoverSkipsPromotion(t *testing.T) {
	iRepo := new(ProductImageRepoMock)
	uc := newImageUsecase(new(ProductRepoMock), iRepo)

	productID := primitive.NewObjectID()
	imageID := primitive.NewObjectID()
	iRepo.On("FindByID", mock.Anything, imageID).Return(&entity.ProductImage{ID: imageID, ProductID: productID}, nil)
	iRepo.On("Delete", mock.Anything, imageID).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), productID, imageID))
	iRepo.AssertNotCalled(t, "SetCover", mock.Anything, mock.Anything, mock.Anything)
}

func TestReorder_AssignsPositionalOrder(t *testing.T) {
	iRepo := new(ProductImageRepoMock)
	uc := newImageUsecase(new(ProductRepoMock), iRepo)

	productID := primitive.NewObjectID()
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	iRepo.On("SetOrder", mock.Anything, first, 0).Return(nil)
	iRepo.On("SetOrder", mock.Anything, second, 1).Return(nil)

	require.NoError(t, uc.Reorder(context.Background(), productID, []primitive.ObjectID{first, second}))
	iRepo.AssertExpectations(t)
}

// =====================
// Read-time thumbnail backfill
// =====================

func TestGetByID_BackfillsMissingThumbnails(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	id := primitive.NewObjectID()
	legacy := &entity.Product{
		ID:               id,
		Name:             "legacy",
		Image:            pngBytes(t, 300, 200),
		ImageContentType: "image/png",
	}
	pRepo.On("FindByID", mock.Anything, id).Return(legacy, nil)
	pRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.HasAllThumbnails()
	})).Return(nil)

	out, err := uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, out.ThumbnailCard)
	assert.NotEmpty(t, out.ThumbnailDetail)
	assert.NotEmpty(t, out.ThumbnailSlider)
	pRepo.AssertExpectations(t)
}

func TestGetByID_BackfillFailureIsSilent(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	id := primitive.NewObjectID()
	legacy := &entity.Product{
		ID:               id,
		Name:             "legacy",
		Image:            []byte("corrupt"),
		ImageContentType: "image/png",
	}
	pRepo.On("FindByID", mock.Anything, id).Return(legacy, nil)

	out, err := uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, out.ThumbnailCard)
	pRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
