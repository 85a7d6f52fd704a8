package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go-ecommerce-catalog/internal/delivery/dto"
	"go-ecommerce-catalog/internal/usecase"
	"go-ecommerce-catalog/pkg/response"
	"go-ecommerce-catalog/pkg/validator"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.CustomValidator
	maxUploadBytes int64
}

func NewProductHandler(productUsecase usecase.ProductUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
	}
}

// readFormFile extracts one optional multipart file field. A missing
// field is not an error; the caller gets nil.
func readFormFile(r *http.Request, field string) (*dto.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	return &dto.FileUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// GetAll handles getting all products
// @Summary Get all products
// @Description Get all products, newest first
// @Tags Products
// @Produce json
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get products")
		return
	}

	response.Success(w, http.StatusOK, "Products retrieved successfully", products)
}

// Search handles the paged product query
// @Summary Search products
// @Description Filtered, sorted, paginated product query
// @Tags Products
// @Produce json
// @Param search query string false "Substring over name or description"
// @Param name query string false "Exact name filter"
// @Param sortBy query string false "price-asc|price-desc|name-asc|name-desc|newest"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(12)
// @Success 200 {object} response.Response
// @Router /products/search [get]
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	if page < 1 {
		page = 1
	}
	// Mirror the engine's clamps so meta reports the page size actually
	// served.
	if pageSize < 1 {
		pageSize = usecase.DefaultPageSize
	}
	if pageSize > usecase.MaxPageSize {
		pageSize = usecase.MaxPageSize
	}

	query := dto.ListProductsQuery{
		Search:   r.URL.Query().Get("search"),
		Name:     r.URL.Query().Get("name"),
		SortBy:   r.URL.Query().Get("sortBy"),
		Page:     page,
		PageSize: pageSize,
	}

	products, total, err := h.productUsecase.List(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to search products")
		return
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      pageSize,
		Total:      total,
		TotalPages: totalPages,
	}

	response.SuccessWithMeta(w, http.StatusOK, "Products retrieved successfully", products, meta)
}

// GetNames handles getting distinct product names
// @Summary Get distinct product names
// @Description Get the sorted list of distinct product names
// @Tags Products
// @Produce json
// @Success 200 {object} response.Response
// @Router /products/names [get]
func (h *ProductHandler) GetNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.productUsecase.GetDistinctNames(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get product names")
		return
	}

	response.Success(w, http.StatusOK, "Product names retrieved successfully", names)
}

// GetByID handles getting a product by ID
// @Summary Get product by ID
// @Description Get a product by its ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	product, err := h.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		default:
			response.InternalServerError(w, "Failed to get product")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", product)
}

// Create handles product creation
// @Summary Create a new product
// @Description Create a new product from a multipart form with an optional image
// @Tags Products
// @Accept mpfd
// @Produce json
// @Param name formData string true "Product name"
// @Param description formData string false "Product description"
// @Param price formData string true "Price, dot or comma separators accepted"
// @Param image formData file false "Product image (png or jpeg)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	image, err := readFormFile(r, "image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image upload", nil)
		return
	}

	req := dto.CreateProductRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Image:       image,
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.productUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidPrice):
			response.Error(w, http.StatusBadRequest, "Invalid price", nil)
		case errors.Is(err, usecase.ErrUnsupportedImageType):
			response.Error(w, http.StatusBadRequest, "Unsupported image type", nil)
		default:
			response.InternalServerError(w, "Failed to create product")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", product)
}

// Update handles product update
// @Summary Update a product
// @Description Full replace of a product's mutable fields from a multipart form
// @Tags Products
// @Accept mpfd
// @Produce json
// @Param id path string true "Product ID"
// @Param name formData string true "Product name"
// @Param description formData string false "Product description"
// @Param price formData string true "Price"
// @Param image formData file false "Replacement image (png or jpeg)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	image, err := readFormFile(r, "image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image upload", nil)
		return
	}

	req := dto.UpdateProductRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Image:       image,
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.productUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		case errors.Is(err, usecase.ErrInvalidPrice):
			response.Error(w, http.StatusBadRequest, "Invalid price", nil)
		case errors.Is(err, usecase.ErrUnsupportedImageType):
			response.Error(w, http.StatusBadRequest, "Unsupported image type", nil)
		default:
			response.InternalServerError(w, "Failed to update product")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

// Delete handles product deletion
// @Summary Delete a product
// @Description Delete a product and its gallery images
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	err = h.productUsecase.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		default:
			response.InternalServerError(w, "Failed to delete product")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", nil)
}
