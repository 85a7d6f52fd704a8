package usecase

import (
	"context"
	"testing"
	"time"

	"go-ecommerce-catalog/internal/delivery/dto"
	"go-ecommerce-catalog/internal/domain/entity"
	"go-ecommerce-catalog/internal/domain/repository"
	"go-ecommerce-catalog/internal/service"
	"go-ecommerce-catalog/pkg/priceparser"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepoMock) FindAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]entity.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) FindPage(ctx context.Context, filter repository.ProductFilter, sort repository.ProductSort, skip, limit int64) ([]entity.Product, error) {
	args := m.Called(ctx, filter, sort, skip, limit)
	items, _ := args.Get(0).([]entity.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindMatching(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]entity.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Count(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) DistinctNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

type ProductImageRepoMock struct{ mock.Mock }

func (m *ProductImageRepoMock) Create(ctx context.Context, image *entity.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *ProductImageRepoMock) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ProductImage, error) {
	args := m.Called(ctx, id)
	img, _ := args.Get(0).(*entity.ProductImage)
	return img, args.Error(1)
}

func (m *ProductImageRepoMock) FindByProductID(ctx context.Context, productID primitive.ObjectID) ([]entity.ProductImage, error) {
	args := m.Called(ctx, productID)
	images, _ := args.Get(0).([]entity.ProductImage)
	return images, args.Error(1)
}

func (m *ProductImageRepoMock) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductImageRepoMock) DeleteByProductID(ctx context.Context, productID primitive.ObjectID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *ProductImageRepoMock) SetCover(ctx context.Context, productID, imageID primitive.ObjectID) error {
	args := m.Called(ctx, productID, imageID)
	return args.Error(0)
}

func (m *ProductImageRepoMock) SetOrder(ctx context.Context, imageID primitive.ObjectID, order int) error {
	args := m.Called(ctx, imageID, order)
	return args.Error(0)
}

// fakeNamesCache is an in-memory stand-in for the redis client.
type fakeNamesCache struct {
	values map[string]string
}

func newFakeNamesCache() *fakeNamesCache {
	return &fakeNamesCache{values: map[string]string{}}
}

func (f *fakeNamesCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.values[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeNamesCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if b, ok := value.([]byte); ok {
		f.values[key] = string(b)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeNamesCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.values, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func newProductUsecase(pRepo *ProductRepoMock, iRepo *ProductImageRepoMock, cache NamesCache) ProductUsecase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewProductUsecase(pRepo, iRepo, service.NewThumbnailService(), cache, priceparser.Parse, log)
}

// =====================
// Query engine
// =====================

func namedProducts(names ...string) []entity.Product {
	products := make([]entity.Product, 0, len(names))
	for _, n := range names {
		products = append(products, entity.Product{ID: primitive.NewObjectID(), Name: n})
	}
	return products
}

func TestList_NameAscUsesOrdinalInMemorySort(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	filter := repository.ProductFilter{}
	pRepo.On("Count", mock.Anything, filter).Return(int64(3), nil)
	pRepo.On("FindMatching", mock.Anything, filter).Return(namedProducts("banana", "Apple", "cherry"), nil)

	items, total, err := uc.List(ctx, dto.ListProductsQuery{SortBy: "name-asc", Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, "Apple", items[0].Name)
	assert.Equal(t, "banana", items[1].Name)
	assert.Equal(t, "cherry", items[2].Name)

	// The store-native page path must not run for name sorts.
	pRepo.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestList_NameDescReversesOrder(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	filter := repository.ProductFilter{}
	pRepo.On("Count", mock.Anything, filter).Return(int64(3), nil)
	pRepo.On("FindMatching", mock.Anything, filter).Return(namedProducts("banana", "Apple", "cherry"), nil)

	items, _, err := uc.List(context.Background(), dto.ListProductsQuery{SortBy: "NAME-DESC", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "cherry", items[0].Name)
	assert.Equal(t, "Apple", items[2].Name)
}

func TestList_PriceSortDelegatesToStore(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	filter := repository.ProductFilter{Search: "kit"}
	sort := repository.ProductSort{Field: "price", Ascending: true}
	pRepo.On("Count", mock.Anything, filter).Return(int64(25), nil)
	pRepo.On("FindPage", mock.Anything, filter, sort, int64(12), int64(12)).Return(namedProducts("a"), nil)

	items, total, err := uc.List(context.Background(), dto.ListProductsQuery{Search: "kit", SortBy: "price-asc", Page: 2, PageSize: 12})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, items, 1)
	pRepo.AssertNotCalled(t, "FindMatching", mock.Anything, mock.Anything)
}

func TestList_UnrecognizedSortFallsBackToNewest(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	sort := repository.ProductSort{Field: "createdAt", Ascending: false}
	pRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	pRepo.On("FindPage", mock.Anything, mock.Anything, sort, int64(0), int64(12)).Return([]entity.Product{}, nil)

	_, _, err := uc.List(context.Background(), dto.ListProductsQuery{SortBy: "bogus", Page: 1, PageSize: 12})
	require.NoError(t, err)
	pRepo.AssertExpectations(t)
}

func TestList_PageBeyondRangeReturnsEmptyWithTotal(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	filter := repository.ProductFilter{}
	pRepo.On("Count", mock.Anything, filter).Return(int64(3), nil)
	pRepo.On("FindMatching", mock.Anything, filter).Return(namedProducts("banana", "Apple", "cherry"), nil)

	items, total, err := uc.List(context.Background(), dto.ListProductsQuery{SortBy: "name-asc", Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(3), total)
}

func TestList_ClampsNonPositivePaging(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	pRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	pRepo.On("FindPage", mock.Anything, mock.Anything, mock.Anything, int64(0), int64(12)).Return([]entity.Product{}, nil)

	_, _, err := uc.List(context.Background(), dto.ListProductsQuery{Page: -3, PageSize: 0})
	require.NoError(t, err)
	pRepo.AssertExpectations(t)
}

// =====================
// CRUD
// =====================

func TestCreate_ParsesLocalePriceIntoTwoDecimals(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Price.String() == "1234.56" && p.Name == "Vaso stampato"
	})).Return(nil)

	out, err := uc.Create(context.Background(), &dto.CreateProductRequest{
		Name:  "Vaso stampato",
		Price: "1.234,56",
	})
	require.NoError(t, err)
	assert.Equal(t, "1234.56", out.Price.StringFixed(2))
	pRepo.AssertExpectations(t)
}

func TestCreate_RejectsMalformedAndNegativePrices(t *testing.T) {
	uc := newProductUsecase(new(ProductRepoMock), new(ProductImageRepoMock), newFakeNamesCache())

	for _, price := range []string{"abc", "", "-5,00"} {
		_, err := uc.Create(context.Background(), &dto.CreateProductRequest{Name: "x", Price: price})
		assert.ErrorIs(t, err, ErrInvalidPrice, "price %q", price)
	}
}

func TestCreate_RejectsDisallowedImageType(t *testing.T) {
	uc := newProductUsecase(new(ProductRepoMock), new(ProductImageRepoMock), newFakeNamesCache())

	_, err := uc.Create(context.Background(), &dto.CreateProductRequest{
		Name:  "x",
		Price: "10",
		Image: &dto.FileUpload{Filename: "a.gif", ContentType: "image/gif", Data: []byte("gif")},
	})
	assert.ErrorIs(t, err, ErrUnsupportedImageType)
}

func TestCreate_WebpRejectedOnProductEndpoint(t *testing.T) {
	uc := newProductUsecase(new(ProductRepoMock), new(ProductImageRepoMock), newFakeNamesCache())

	_, err := uc.Create(context.Background(), &dto.CreateProductRequest{
		Name:  "x",
		Price: "10",
		Image: &dto.FileUpload{Filename: "a.webp", ContentType: "image/webp", Data: []byte("webp")},
	})
	assert.ErrorIs(t, err, ErrUnsupportedImageType)
}

func TestUpdate_PreservesImageWithoutNewUpload(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	id := primitive.NewObjectID()
	stored := &entity.Product{
		ID:               id,
		Name:             "old",
		Image:            []byte("original-bytes"),
		ImageContentType: "image/png",
		ThumbnailCard:    []byte("card"),
	}
	pRepo.On("FindByID", mock.Anything, id).Return(stored, nil)
	pRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return string(p.Image) == "original-bytes" && string(p.ThumbnailCard) == "card" && p.Name == "new"
	})).Return(nil)

	out, err := uc.Update(context.Background(), id, &dto.UpdateProductRequest{Name: "new", Price: "2,50"})
	require.NoError(t, err)
	assert.Equal(t, "2.50", out.Price.StringFixed(2))
	pRepo.AssertExpectations(t)
}

func TestUpdate_UndecodableReplacementClearsStaleThumbnails(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	id := primitive.NewObjectID()
	stored := &entity.Product{
		ID:                         id,
		Name:                       "old",
		Image:                      []byte("old-bytes"),
		ImageContentType:           "image/png",
		ThumbnailCard:              []byte("card"),
		ThumbnailCardContentType:   "image/png",
		ThumbnailDetail:            []byte("detail"),
		ThumbnailDetailContentType: "image/png",
		ThumbnailSlider:            []byte("slider"),
		ThumbnailSliderContentType: "image/png",
	}
	pRepo.On("FindByID", mock.Anything, id).Return(stored, nil)
	pRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.ThumbnailCard == nil && p.ThumbnailCardContentType == "" &&
			p.ThumbnailDetail == nil && p.ThumbnailDetailContentType == "" &&
			p.ThumbnailSlider == nil && p.ThumbnailSliderContentType == ""
	})).Return(nil)

	// The replacement is an allowed type but does not decode; the old
	// thumbnails and their content types must not survive alongside it.
	out, err := uc.Update(context.Background(), id, &dto.UpdateProductRequest{
		Name:  "new",
		Price: "1",
		Image: &dto.FileUpload{Filename: "broken.png", ContentType: "image/png", Data: []byte("not an image")},
	})
	require.NoError(t, err)
	assert.Empty(t, out.ThumbnailCard)
	assert.Empty(t, out.ThumbnailCardContentType)
	pRepo.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), newFakeNamesCache())

	id := primitive.NewObjectID()
	pRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := uc.Update(context.Background(), id, &dto.UpdateProductRequest{Name: "x", Price: "1"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDelete_CascadesToGallery(t *testing.T) {
	pRepo := new(ProductRepoMock)
	iRepo := new(ProductImageRepoMock)
	uc := newProductUsecase(pRepo, iRepo, newFakeNamesCache())

	id := primitive.NewObjectID()
	pRepo.On("FindByID", mock.Anything, id).Return(&entity.Product{ID: id}, nil)
	pRepo.On("Delete", mock.Anything, id).Return(nil)
	iRepo.On("DeleteByProductID", mock.Anything, id).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), id))
	pRepo.AssertExpectations(t)
	iRepo.AssertExpectations(t)
}

// =====================
// Distinct names cache
// =====================

func TestGetDistinctNames_CachesAndSkipsStoreOnHit(t *testing.T) {
	pRepo := new(ProductRepoMock)
	cache := newFakeNamesCache()
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), cache)

	pRepo.On("DistinctNames", mock.Anything).Return([]string{"Lamp", "Vase"}, nil).Once()

	names, err := uc.GetDistinctNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Lamp", "Vase"}, names)

	// Second read comes from the cache; the mock allows only one call.
	names, err = uc.GetDistinctNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Lamp", "Vase"}, names)
	pRepo.AssertNumberOfCalls(t, "DistinctNames", 1)
}

func TestCreate_InvalidatesNamesCache(t *testing.T) {
	pRepo := new(ProductRepoMock)
	cache := newFakeNamesCache()
	uc := newProductUsecase(pRepo, new(ProductImageRepoMock), cache)

	cache.values[namesCacheKey] = `["Stale"]`
	pRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Create(context.Background(), &dto.CreateProductRequest{Name: "Fresh", Price: "1"})
	require.NoError(t, err)
	assert.NotContains(t, cache.values, namesCacheKey)
}
