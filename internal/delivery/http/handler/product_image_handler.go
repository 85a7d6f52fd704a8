package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go-ecommerce-catalog/internal/delivery/dto"
	"go-ecommerce-catalog/internal/usecase"
	"go-ecommerce-catalog/pkg/response"
	"go-ecommerce-catalog/pkg/validator"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductImageHandler struct {
	imageUsecase   usecase.ProductImageUsecase
	validator      *validator.CustomValidator
	maxUploadBytes int64
}

func NewProductImageHandler(imageUsecase usecase.ProductImageUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *ProductImageHandler {
	return &ProductImageHandler{
		imageUsecase:   imageUsecase,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ProductImageHandler) writeImageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		response.NotFound(w, "Product not found")
	case errors.Is(err, usecase.ErrImageNotFound):
		response.NotFound(w, "Image not found")
	case errors.Is(err, usecase.ErrNoImagesProvided):
		response.Error(w, http.StatusBadRequest, "No images provided", nil)
	default:
		response.InternalServerError(w, "Internal error")
	}
}

// GetImages handles listing a product's gallery
// @Summary List product images
// @Description List all gallery images of a product ordered by display rank
// @Tags ProductImages
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{productId}/images [get]
func (h *ProductImageHandler) GetImages(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	images, err := h.imageUsecase.GetByProduct(r.Context(), productID)
	if err != nil {
		h.writeImageError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Images retrieved successfully", images)
}

// GetImage handles getting a single gallery image
// @Summary Get one product image
// @Tags ProductImages
// @Produce json
// @Param productId path string true "Product ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{productId}/images/{imageId} [get]
func (h *ProductImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(vars["productId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}
	imageID, err := primitive.ObjectIDFromHex(vars["imageId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image ID", nil)
		return
	}

	image, err := h.imageUsecase.GetByID(r.Context(), productID, imageID)
	if err != nil {
		h.writeImageError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Image retrieved successfully", image)
}

// UploadImages handles a multi-file gallery upload
// @Summary Upload gallery images
// @Description Upload one or more images; invalid files are skipped, valid siblings persist
// @Tags ProductImages
// @Accept mpfd
// @Produce json
// @Param productId path string true "Product ID"
// @Param images formData file true "Image files (png, jpeg or webp)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{productId}/images [post]
func (h *ProductImageHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	var files []dto.FileUpload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			f, err := header.Open()
			if err != nil {
				response.Error(w, http.StatusBadRequest, "Invalid image upload", nil)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				response.Error(w, http.StatusBadRequest, "Invalid image upload", nil)
				return
			}

			contentType := header.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "image/png"
			}

			files = append(files, dto.FileUpload{
				Filename:    header.Filename,
				ContentType: contentType,
				Data:        data,
			})
		}
	}

	created, err := h.imageUsecase.Upload(r.Context(), productID, files)
	if err != nil {
		h.writeImageError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Images uploaded successfully", created)
}

// SetCover handles marking one image as the gallery cover
// @Summary Set cover image
// @Tags ProductImages
// @Produce json
// @Param productId path string true "Product ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{productId}/images/{imageId}/set-cover [put]
func (h *ProductImageHandler) SetCover(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(vars["productId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}
	imageID, err := primitive.ObjectIDFromHex(vars["imageId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image ID", nil)
		return
	}

	if err := h.imageUsecase.SetCover(r.Context(), productID, imageID); err != nil {
		h.writeImageError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Cover image updated successfully", nil)
}

// Reorder handles rewriting the gallery display order
// @Summary Reorder gallery images
// @Tags ProductImages
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body dto.ReorderImagesRequest true "Ordered image IDs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /products/{productId}/images/reorder [put]
func (h *ProductImageHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	var req dto.ReorderImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	imageIDs := make([]primitive.ObjectID, 0, len(req.ImageIDs))
	for _, raw := range req.ImageIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid image ID", nil)
			return
		}
		imageIDs = append(imageIDs, id)
	}

	if err := h.imageUsecase.Reorder(r.Context(), productID, imageIDs); err != nil {
		h.writeImageError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Images reordered successfully", nil)
}

// DeleteImage handles deleting one gallery image
// @Summary Delete a product image
// @Description Delete an image; if it was the cover, the first remaining image is promoted
// @Tags ProductImages
// @Produce json
// @Param productId path string true "Product ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{productId}/images/{imageId} [delete]
func (h *ProductImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(vars["productId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}
	imageID, err := primitive.ObjectIDFromHex(vars["imageId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image ID", nil)
		return
	}

	if err := h.imageUsecase.Delete(r.Context(), productID, imageID); err != nil {
		h.writeImageError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Image deleted successfully", nil)
}
