package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sbecom/storeapi/internal/domain"
	"github.com/sbecom/storeapi/internal/dto"
	"github.com/sbecom/storeapi/internal/event"
	"github.com/sbecom/storeapi/internal/repository"
	"github.com/sbecom/storeapi/internal/storage"
	apperrors "github.com/sbecom/storeapi/pkg/errors"
	"github.com/sbecom/storeapi/pkg/paging"
)

// productSortable maps external sort field names to product table columns.
var productSortable = map[string]string{
	"id":           "id",
	"name":         "name",
	"price":        "price",
	"quantity":     "quantity",
	"discount":     "discount",
	"specialPrice": "special_price",
}

// ProductInput holds the mutable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Quantity    int
	Price       float64
	Discount    float64
}

// ImageInput holds an uploaded product image.
type ImageInput struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// ProductService implements the business logic for product operations.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	storage      storage.Storage
	producer     *event.Producer
	logger       *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	store storage.Storage,
	producer *event.Producer,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      store,
		producer:     producer,
		logger:       logger,
	}
}

// Add stores a new product under the given category. The special price is
// derived from price and discount, never taken from the caller.
func (s *ProductService) Add(ctx context.Context, categoryID int64, in ProductInput) (*dto.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		CategoryID:   categoryID,
		Name:         in.Name,
		Description:  in.Description,
		Image:        "default.png",
		Quantity:     in.Quantity,
		Price:        in.Price,
		Discount:     in.Discount,
		SpecialPrice: domain.ComputeSpecialPrice(in.Price, in.Discount),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.Int64("category_id", categoryID),
	)

	out := dto.FromProduct(product)
	return &out, nil
}

// ListAll returns one page of all products.
func (s *ProductService) ListAll(ctx context.Context, pageNumber, pageSize int, sortBy, sortOrder string) (*paging.Response[dto.Product], error) {
	page, err := paging.Build(pageNumber, pageSize, sortBy, sortOrder, productSortable)
	if err != nil {
		return nil, err
	}

	products, total, err := s.productRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}

	resp := paging.NewResponse(dto.FromProducts(products), page, total)
	return &resp, nil
}

// ListByCategory returns one page of products in the given category. The
// category must exist.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID int64, pageNumber, pageSize int, sortBy, sortOrder string) (*paging.Response[dto.Product], error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	page, err := paging.Build(pageNumber, pageSize, sortBy, sortOrder, productSortable)
	if err != nil {
		return nil, err
	}

	products, total, err := s.productRepo.ListByCategory(ctx, categoryID, page)
	if err != nil {
		return nil, err
	}

	resp := paging.NewResponse(dto.FromProducts(products), page, total)
	return &resp, nil
}

// ListByKeyword returns one page of products whose name contains the keyword.
func (s *ProductService) ListByKeyword(ctx context.Context, keyword string, pageNumber, pageSize int, sortBy, sortOrder string) (*paging.Response[dto.Product], error) {
	page, err := paging.Build(pageNumber, pageSize, sortBy, sortOrder, productSortable)
	if err != nil {
		return nil, err
	}

	products, total, err := s.productRepo.ListByKeyword(ctx, keyword, page)
	if err != nil {
		return nil, err
	}

	resp := paging.NewResponse(dto.FromProducts(products), page, total)
	return &resp, nil
}

// Update overwrites the mutable fields of a product and recomputes the
// special price.
func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (*dto.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Quantity = in.Quantity
	product.Price = in.Price
	product.Discount = in.Discount
	product.SpecialPrice = domain.ComputeSpecialPrice(in.Price, in.Discount)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	out := dto.FromProduct(product)
	return &out, nil
}

// Delete removes a product and returns the deleted record.
func (s *ProductService) Delete(ctx context.Context, id int64) (*dto.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.Int64("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.Int64("product_id", id))

	out := dto.FromProduct(product)
	return &out, nil
}

// UpdateImage uploads a new product image to the blob store and records its
// reference on the product. Blob store failures surface as upstream errors.
func (s *ProductService) UpdateImage(ctx context.Context, id int64, in ImageInput) (*dto.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d-%s%s", id, uuid.New().String(), filepath.Ext(in.Filename))

	result, err := s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: in.ContentType,
		Size:        in.Size,
		Data:        in.Data,
	})
	if err != nil {
		return nil, apperrors.Upstream("blob store", err)
	}

	if err := s.productRepo.UpdateImage(ctx, id, result.Key); err != nil {
		return nil, err
	}
	product.Image = result.Key

	s.logger.InfoContext(ctx, "product image updated",
		slog.Int64("product_id", id),
		slog.String("image", result.Key),
	)

	out := dto.FromProduct(product)
	return &out, nil
}
