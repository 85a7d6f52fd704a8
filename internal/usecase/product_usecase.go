package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"go-ecommerce-catalog/internal/converter"
	"go-ecommerce-catalog/internal/delivery/dto"
	"go-ecommerce-catalog/internal/domain/entity"
	"go-ecommerce-catalog/internal/domain/repository"
	"go-ecommerce-catalog/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// Paging bounds, shared with the HTTP layer so response meta reflects
// the effective page size.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

const (
	namesCacheKey = "catalog:product-names"
	namesCacheTTL = 5 * time.Minute
)

// NamesCache is the slice of the redis client the usecase needs; it keeps
// the distinct-names query off the store on repeated reads.
type NamesCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// PriceParser converts a raw form price string into an exact decimal.
type PriceParser func(raw string) (decimal.Decimal, bool)

type ProductUsecase interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetAll(ctx context.Context) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*dto.ProductResponse, error)
	List(ctx context.Context, q dto.ListProductsQuery) ([]dto.ProductResponse, int64, error)
	GetDistinctNames(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productUsecase struct {
	productRepo repository.ProductRepository
	imageRepo   repository.ProductImageRepository
	thumbnails  *service.ThumbnailService
	cache       NamesCache
	parsePrice  PriceParser
	log         *logrus.Logger
}

func NewProductUsecase(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	thumbnails *service.ThumbnailService,
	cache NamesCache,
	parsePrice PriceParser,
	log *logrus.Logger,
) ProductUsecase {
	return &productUsecase{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		thumbnails:  thumbnails,
		cache:       cache,
		parsePrice:  parsePrice,
		log:         log,
	}
}

func (u *productUsecase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	price, ok := u.parsePrice(req.Price)
	if !ok || price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	product := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       converter.PriceToDecimal128(price),
	}

	if req.Image != nil {
		if !isAllowedImage(req.Image.ContentType, req.Image.Filename, false) {
			return nil, ErrUnsupportedImageType
		}
		u.attachImage(product, req.Image)
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	u.invalidateNamesCache(ctx)
	return converter.ProductToResponse(product), nil
}

// attachImage stores the original upload and derives the thumbnail set.
// An undecodable payload keeps the original and leaves the thumbnails
// absent; it never fails the write.
func (u *productUsecase) attachImage(product *entity.Product, file *dto.FileUpload) {
	product.Image = file.Data
	product.ImageContentType = file.ContentType

	set, err := u.thumbnails.GenerateSet(file.Data, file.ContentType)
	if err != nil {
		u.log.WithError(err).Warn("Thumbnail generation failed, storing original only")
		return
	}

	product.ThumbnailCard = set.Card
	product.ThumbnailCardContentType = set.CardContentType
	product.ThumbnailDetail = set.Detail
	product.ThumbnailDetailContentType = set.DetailContentType
	product.ThumbnailSlider = set.Slider
	product.ThumbnailSliderContentType = set.SliderContentType
}

func (u *productUsecase) GetAll(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := u.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return converter.ProductsToResponses(products), nil
}

func (u *productUsecase) GetByID(ctx context.Context, id primitive.ObjectID) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if product.Image != nil && !product.HasAllThumbnails() {
		u.backfillThumbnails(ctx, product)
	}

	return converter.ProductToResponse(product), nil
}

// backfillThumbnails opportunistically generates missing thumbnails for
// records written before thumbnail support existed. Each missing size is
// generated concurrently; failures are swallowed and the field stays
// absent. The result is persisted best-effort.
func (u *productUsecase) backfillThumbnails(ctx context.Context, product *entity.Product) {
	type target struct {
		size        int
		data        *[]byte
		contentType *string
	}

	var targets []target
	if product.ThumbnailCard == nil {
		targets = append(targets, target{service.SizeCard, &product.ThumbnailCard, &product.ThumbnailCardContentType})
	}
	if product.ThumbnailDetail == nil {
		targets = append(targets, target{service.SizeDetail, &product.ThumbnailDetail, &product.ThumbnailDetailContentType})
	}
	if product.ThumbnailSlider == nil {
		targets = append(targets, target{service.SizeSlider, &product.ThumbnailSlider, &product.ThumbnailSliderContentType})
	}

	generated := make([]bool, len(targets))

	var wg conc.WaitGroup
	for i, t := range targets {
		wg.Go(func() {
			data, contentType, err := u.thumbnails.Generate(product.Image, product.ImageContentType, t.size)
			if err != nil {
				u.log.WithError(err).Debug("Thumbnail backfill skipped")
				return
			}
			*t.data = data
			*t.contentType = contentType
			generated[i] = true
		})
	}
	wg.Wait()

	for _, ok := range generated {
		if ok {
			if err := u.productRepo.Update(ctx, product); err != nil {
				u.log.WithError(err).Warn("Failed to persist backfilled thumbnails")
			}
			return
		}
	}
}

func (u *productUsecase) List(ctx context.Context, q dto.ListProductsQuery) ([]dto.ProductResponse, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	filter := repository.ProductFilter{
		Search: strings.TrimSpace(q.Search),
		Name:   q.Name,
	}

	total, err := u.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64(q.Page-1) * int64(q.PageSize)
	limit := int64(q.PageSize)

	items, err := u.resolveListStrategy(q.SortBy)(ctx, filter, skip, limit)
	if err != nil {
		return nil, 0, err
	}

	return converter.ProductsToResponses(items), total, nil
}

// pageFetcher is one of the two execution paths of the paged query. Both
// return the same page shape so List treats them uniformly.
type pageFetcher func(ctx context.Context, filter repository.ProductFilter, skip, limit int64) ([]entity.Product, error)

// resolveListStrategy picks the execution path by sort key. Name sorts
// need case-insensitive ordinal ordering, which the store's collation
// cannot produce, so they run through the in-memory path. Numeric and
// date orderings are collation-independent and stay store-native.
func (u *productUsecase) resolveListStrategy(sortBy string) pageFetcher {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price-asc":
		return u.nativePage(repository.ProductSort{Field: "price", Ascending: true})
	case "price-desc":
		return u.nativePage(repository.ProductSort{Field: "price", Ascending: false})
	case "name-asc":
		return u.ordinalNamePage(true)
	case "name-desc":
		return u.ordinalNamePage(false)
	default: // "newest" and anything unrecognized
		return u.nativePage(repository.ProductSort{Field: "createdAt", Ascending: false})
	}
}

func (u *productUsecase) nativePage(s repository.ProductSort) pageFetcher {
	return func(ctx context.Context, filter repository.ProductFilter, skip, limit int64) ([]entity.Product, error) {
		return u.productRepo.FindPage(ctx, filter, s, skip, limit)
	}
}

func (u *productUsecase) ordinalNamePage(ascending bool) pageFetcher {
	return func(ctx context.Context, filter repository.ProductFilter, skip, limit int64) ([]entity.Product, error) {
		items, err := u.productRepo.FindMatching(ctx, filter)
		if err != nil {
			return nil, err
		}

		sort.SliceStable(items, func(i, j int) bool {
			a := strings.ToLower(items[i].Name)
			b := strings.ToLower(items[j].Name)
			if ascending {
				return a < b
			}
			return a > b
		})

		if skip >= int64(len(items)) {
			return []entity.Product{}, nil
		}
		items = items[skip:]
		if limit < int64(len(items)) {
			items = items[:limit]
		}
		return items, nil
	}
}

func (u *productUsecase) GetDistinctNames(ctx context.Context) ([]string, error) {
	if cached, err := u.cache.Get(ctx, namesCacheKey).Result(); err == nil {
		var names []string
		if err := json.Unmarshal([]byte(cached), &names); err == nil {
			return names, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		u.log.WithError(err).Debug("Names cache read failed, falling back to store")
	}

	names, err := u.productRepo.DistinctNames(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(names); err == nil {
		if err := u.cache.Set(ctx, namesCacheKey, payload, namesCacheTTL).Err(); err != nil {
			u.log.WithError(err).Debug("Names cache write failed")
		}
	}

	return names, nil
}

func (u *productUsecase) invalidateNamesCache(ctx context.Context) {
	if err := u.cache.Del(ctx, namesCacheKey).Err(); err != nil {
		u.log.WithError(err).Debug("Names cache invalidation failed")
	}
}

func (u *productUsecase) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	price, ok := u.parsePrice(req.Price)
	if !ok || price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	// Full replace of mutable fields; id and createdAt are immutable.
	// Without a new upload the stored image and thumbnails survive.
	product.Name = req.Name
	product.Description = req.Description
	product.Price = converter.PriceToDecimal128(price)

	if req.Image != nil {
		if !isAllowedImage(req.Image.ContentType, req.Image.Filename, false) {
			return nil, ErrUnsupportedImageType
		}
		product.ThumbnailCard = nil
		product.ThumbnailCardContentType = ""
		product.ThumbnailDetail = nil
		product.ThumbnailDetailContentType = ""
		product.ThumbnailSlider = nil
		product.ThumbnailSliderContentType = ""
		u.attachImage(product, req.Image)
	}

	if err := u.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	u.invalidateNamesCache(ctx)
	return converter.ProductToResponse(product), nil
}

func (u *productUsecase) Delete(ctx context.Context, id primitive.ObjectID) error {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	if err := u.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Gallery rows are owned by the product; no orphans.
	if err := u.imageRepo.DeleteByProductID(ctx, id); err != nil {
		return err
	}

	u.invalidateNamesCache(ctx)
	return nil
}
