package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sbecom/storeapi/internal/domain"
	"github.com/sbecom/storeapi/internal/event"
	"github.com/sbecom/storeapi/internal/service"
	"github.com/sbecom/storeapi/internal/storage/memory"
	"github.com/sbecom/storeapi/pkg/httputil"
	pkgkafka "github.com/sbecom/storeapi/pkg/kafka"
	"github.com/sbecom/storeapi/pkg/middleware"
	"github.com/sbecom/storeapi/pkg/paging"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockAddressRepo struct {
	mock.Mock
}

func (m *mockAddressRepo) Create(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepo) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockAddressRepo) GetByStreet(ctx context.Context, street string) (*domain.Address, error) {
	args := m.Called(ctx, street)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockAddressRepo) List(ctx context.Context, page paging.Request) ([]domain.Address, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Address), args.Get(1).(int64), args.Error(2)
}

func (m *mockAddressRepo) ListByUserID(ctx context.Context, userID int64) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockAddressRepo) Update(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepo) Delete(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, page paging.Request) ([]domain.Product, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) ListByCategory(ctx context.Context, categoryID int64, page paging.Request) ([]domain.Product, int64, error) {
	args := m.Called(ctx, categoryID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) ListByKeyword(ctx context.Context, keyword string, page paging.Request) ([]domain.Product, int64, error) {
	args := m.Called(ctx, keyword, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) UpdateImage(ctx context.Context, id int64, image string) error {
	args := m.Called(ctx, id, image)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ============================================================================
// Test Helpers
// ============================================================================

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func handlerTestEventProducer() *event.Producer {
	logger := handlerTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func addressTestHandler(addrRepo *mockAddressRepo, userRepo *mockUserRepo) *AddressHandler {
	svc := service.NewAddressService(addrRepo, userRepo, handlerTestEventProducer(), handlerTestLogger())
	return NewAddressHandler(svc, handlerTestLogger())
}

func categoryTestHandler(catRepo *mockCategoryRepo) *CategoryHandler {
	svc := service.NewCategoryService(catRepo, nil, time.Minute, handlerTestEventProducer(), handlerTestLogger())
	return NewCategoryHandler(svc, handlerTestLogger())
}

func productTestHandler(prodRepo *mockProductRepo, catRepo *mockCategoryRepo) *ProductHandler {
	store := memory.New("http://localhost:8080")
	svc := service.NewProductService(prodRepo, catRepo, store, handlerTestEventProducer(), handlerTestLogger())
	return NewProductHandler(svc, handlerTestLogger())
}

// fakeTokenValidator returns a middleware.TokenValidator that always succeeds
// and injects the given user into the request context.
func fakeTokenValidator(userID, role string) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		return &middleware.Claims{UserID: userID, Email: "test@example.com", Role: role}, nil
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

// decodeData re-marshals the envelope data into the given concrete type.
func decodeData(t *testing.T, resp httputil.Response, out any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

const testUserID int64 = 42

func sampleDomainAddress() *domain.Address {
	now := time.Now().UTC()
	return &domain.Address{
		ID:           7,
		UserID:       testUserID,
		Street:       "221B Baker Street",
		BuildingName: "Sherlock Towers",
		City:         "London",
		State:        "Greater London",
		Country:      "United Kingdom",
		Pincode:      "NW16XE",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func sampleDomainCategory() *domain.Category {
	now := time.Now().UTC()
	return &domain.Category{ID: 3, Name: "Electronics", CreatedAt: now, UpdatedAt: now}
}

func sampleDomainProduct() *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:           9,
		CategoryID:   3,
		Name:         "Noise Cancelling Headphones",
		Description:  "Over-ear wireless headphones",
		Image:        "default.png",
		Quantity:     25,
		Price:        200,
		Discount:     10,
		SpecialPrice: 180,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// setupRouter mirrors the production route layout with a fake token validator.
func setupRouter(
	addressHandler *AddressHandler,
	categoryHandler *CategoryHandler,
	productHandler *ProductHandler,
	userID int64,
	role string,
) *chi.Mux {
	validator := fakeTokenValidator(strconv.FormatInt(userID, 10), role)

	r := chi.NewRouter()

	r.Route("/api/public", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		if categoryHandler != nil {
			r.Get("/categories", categoryHandler.List)
			r.Post("/categories", categoryHandler.Create)
			r.Put("/categories/{id}", categoryHandler.Update)
		}
		if productHandler != nil {
			r.Get("/products", productHandler.List)
			r.Get("/categories/{id}/products", productHandler.ListByCategory)
			r.Get("/keyword/{keyword}", productHandler.Search)
		}
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(validator))
		r.Use(middleware.RequireRole(domain.RoleAdmin))
		if categoryHandler != nil {
			r.Delete("/categories/{id}", categoryHandler.Delete)
		}
		if productHandler != nil {
			r.Post("/categories/{id}/product", productHandler.Add)
			r.Put("/products/{id}", productHandler.Update)
			r.Delete("/products/{id}", productHandler.Delete)
		}
	})

	if addressHandler != nil {
		r.Route("/api/addresses", func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(middleware.Auth(validator))
			r.Post("/", addressHandler.Create)
			r.Get("/", addressHandler.List)
			r.Get("/{id}", addressHandler.Get)
			r.Put("/{id}", addressHandler.Update)
			r.Delete("/{id}", addressHandler.Delete)
		})
		r.Route("/api/users", func(r chi.Router) {
			r.Use(middleware.Auth(validator))
			r.Get("/addresses", addressHandler.ListForCurrentUser)
		})
	}

	if productHandler != nil {
		r.Route("/api/products", func(r chi.Router) {
			r.Use(middleware.Auth(validator))
			r.Put("/{id}/image", productHandler.UpdateImage)
		})
	}

	return r
}
