package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sbecom/storeapi/internal/auth"
	"github.com/sbecom/storeapi/internal/domain"
	"github.com/sbecom/storeapi/internal/service"
	"github.com/sbecom/storeapi/pkg/health"
	"github.com/sbecom/storeapi/pkg/middleware"
)

// NewRouter creates a chi router with all store API routes registered.
func NewRouter(
	addressService *service.AddressService,
	categoryService *service.CategoryService,
	productService *service.ProductService,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("store"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token validator that bridges to our internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}

	addressHandler := NewAddressHandler(addressService, logger)
	categoryHandler := NewCategoryHandler(categoryService, logger)
	productHandler := NewProductHandler(productService, logger)

	// Public catalog endpoints (no auth required)
	r.Route("/api/public", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/categories", categoryHandler.List)
		r.Post("/categories", categoryHandler.Create)
		r.Put("/categories/{id}", categoryHandler.Update)

		r.Get("/products", productHandler.List)
		r.Get("/categories/{id}/products", productHandler.ListByCategory)
		r.Get("/keyword/{keyword}", productHandler.Search)
	})

	// Admin catalog endpoints
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))
		r.Use(middleware.RequireRole(domain.RoleAdmin))

		r.Delete("/categories/{id}", categoryHandler.Delete)
		r.Post("/categories/{id}/product", productHandler.Add)
		r.Put("/products/{id}", productHandler.Update)
		r.Delete("/products/{id}", productHandler.Delete)
	})

	// Address endpoints (auth required)
	r.Route("/api/addresses", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))

		r.Post("/", addressHandler.Create)
		r.Get("/", addressHandler.List)
		r.Get("/{id}", addressHandler.Get)
		r.Put("/{id}", addressHandler.Update)
		r.Delete("/{id}", addressHandler.Delete)
	})

	// Addresses of the authenticated user
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/addresses", addressHandler.ListForCurrentUser)
	})

	// Product image upload (multipart, auth required)
	r.Route("/api/products", func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))

		r.Put("/{id}/image", productHandler.UpdateImage)
	})

	return r
}
