package http

import (
	"net/http"

	"go-ecommerce-catalog/internal/delivery/http/handler"
	"go-ecommerce-catalog/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	welcomeHandler      *handler.WelcomeHandler
	productHandler      *handler.ProductHandler
	productImageHandler *handler.ProductImageHandler
	corsMiddleware      *middleware.CORSMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

func NewRouter(
	welcomeHandler *handler.WelcomeHandler,
	productHandler *handler.ProductHandler,
	productImageHandler *handler.ProductImageHandler,
	corsMiddleware *middleware.CORSMiddleware,
	requestIDMiddleware *middleware.RequestIDMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		welcomeHandler:      welcomeHandler,
		productHandler:      productHandler,
		productImageHandler: productImageHandler,
		corsMiddleware:      corsMiddleware,
		requestIDMiddleware: requestIDMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Welcome page
	r.router.HandleFunc("/", r.welcomeHandler.Get).Methods(http.MethodGet)
	r.router.HandleFunc("/welcome", r.welcomeHandler.Get).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Products. Fixed paths registered before the {id} catch-all.
	api.HandleFunc("/products", r.productHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/products", r.productHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/products/search", r.productHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/products/names", r.productHandler.GetNames).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", r.productHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", r.productHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", r.productHandler.Delete).Methods(http.MethodDelete)

	// Gallery
	api.HandleFunc("/products/{productId}/images", r.productImageHandler.GetImages).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}/images", r.productImageHandler.UploadImages).Methods(http.MethodPost)
	api.HandleFunc("/products/{productId}/images/reorder", r.productImageHandler.Reorder).Methods(http.MethodPut)
	api.HandleFunc("/products/{productId}/images/{imageId}", r.productImageHandler.GetImage).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}/images/{imageId}", r.productImageHandler.DeleteImage).Methods(http.MethodDelete)
	api.HandleFunc("/products/{productId}/images/{imageId}/set-cover", r.productImageHandler.SetCover).Methods(http.MethodPut)

	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
