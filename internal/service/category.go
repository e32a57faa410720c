package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbecom/storeapi/internal/domain"
	"github.com/sbecom/storeapi/internal/dto"
	"github.com/sbecom/storeapi/internal/event"
	"github.com/sbecom/storeapi/internal/repository"
	apperrors "github.com/sbecom/storeapi/pkg/errors"
)

// categoryListCacheKey is the redis key holding the full category list.
const categoryListCacheKey = "store:categories:all"

// emptyCategoryListMessage mirrors the message clients already expect.
const emptyCategoryListMessage = "No category is created till now."

// CategoryService implements the business logic for category operations. The
// full list is cached in Redis read-through; any mutation invalidates it.
// Cache failures never fail a request, the store is always authoritative.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	producer     *event.Producer
	logger       *slog.Logger
}

// NewCategoryService creates a new category service. cache may be nil, in
// which case every read goes to the store.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	producer *event.Producer,
	logger *slog.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		producer:     producer,
		logger:       logger,
	}
}

// ListAll returns every category.
func (s *CategoryService) ListAll(ctx context.Context) ([]dto.Category, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.EmptyResult(emptyCategoryListMessage)
	}

	out := dto.FromCategories(categories)
	s.storeList(ctx, out)
	return out, nil
}

// Create stores a new category with a store-assigned identifier.
func (s *CategoryService) Create(ctx context.Context, name string) (*dto.Category, error) {
	category := &domain.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)

	if err := s.producer.PublishCategoryCreated(ctx, category); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.created event",
			slog.Int64("category_id", category.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.Int64("category_id", category.ID),
		slog.String("name", category.Name),
	)

	out := dto.FromCategory(category)
	return &out, nil
}

// Update renames a category. The record fetched by ID is the one persisted,
// so the stored row always reflects the latest read-modify-write.
func (s *CategoryService) Update(ctx context.Context, id int64, name string) (*dto.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)

	if err := s.producer.PublishCategoryUpdated(ctx, category); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.updated event",
			slog.Int64("category_id", category.ID),
			slog.String("error", err.Error()),
		)
	}

	out := dto.FromCategory(category)
	return &out, nil
}

// Delete removes a category and returns the confirmation message clients
// display. Deleting a category that still has products is a conflict.
func (s *CategoryService) Delete(ctx context.Context, id int64) (string, error) {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return "", err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return "", err
	}

	s.invalidateList(ctx)

	if err := s.producer.PublishCategoryDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.deleted event",
			slog.Int64("category_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "category deleted", slog.Int64("category_id", id))

	return fmt.Sprintf("Category with category id %d deleted successfully!", id), nil
}

func (s *CategoryService) cachedList(ctx context.Context) ([]dto.Category, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, categoryListCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.DebugContext(ctx, "category cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var categories []dto.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		s.logger.DebugContext(ctx, "category cache decode failed", slog.String("error", err.Error()))
		return nil, false
	}
	return categories, true
}

func (s *CategoryService) storeList(ctx context.Context, categories []dto.Category) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, categoryListCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.DebugContext(ctx, "category cache write failed", slog.String("error", err.Error()))
	}
}

func (s *CategoryService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoryListCacheKey).Err(); err != nil {
		s.logger.DebugContext(ctx, "category cache invalidation failed", slog.String("error", err.Error()))
	}
}
