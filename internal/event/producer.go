package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sbecom/storeapi/internal/domain"
	pkgkafka "github.com/sbecom/storeapi/pkg/kafka"
)

// Kafka topics for catalog and account domain events.
const (
	TopicCategoryCreated = "store.category.created"
	TopicCategoryUpdated = "store.category.updated"
	TopicCategoryDeleted = "store.category.deleted"

	TopicProductCreated = "store.product.created"
	TopicProductUpdated = "store.product.updated"
	TopicProductDeleted = "store.product.deleted"

	TopicAddressCreated = "store.address.created"
	TopicAddressUpdated = "store.address.updated"
	TopicAddressDeleted = "store.address.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeCategory = "category"
	AggregateTypeProduct  = "product"
	AggregateTypeAddress  = "address"
)

// Source identifier for events originating from this service.
const Source = "store-api"

// CategoryData is the payload for category lifecycle events.
type CategoryData struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// ProductData is the payload for product lifecycle events.
type ProductData struct {
	ID           int64   `json:"id"`
	CategoryID   int64   `json:"category_id,omitempty"`
	Name         string  `json:"name,omitempty"`
	Price        float64 `json:"price,omitempty"`
	SpecialPrice float64 `json:"special_price,omitempty"`
}

// AddressData is the payload for address lifecycle events. The street is the
// natural key other services care about.
type AddressData struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Street string `json:"street,omitempty"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateType string, aggregateID int64, data any) error {
	event, err := pkgkafka.NewEvent(topic, strconv.FormatInt(aggregateID, 10), aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	return p.kafka.Publish(ctx, topic, event)
}

// PublishCategoryCreated publishes a category.created event.
func (p *Producer) PublishCategoryCreated(ctx context.Context, c *domain.Category) error {
	return p.publish(ctx, TopicCategoryCreated, AggregateTypeCategory, c.ID, CategoryData{ID: c.ID, Name: c.Name})
}

// PublishCategoryUpdated publishes a category.updated event.
func (p *Producer) PublishCategoryUpdated(ctx context.Context, c *domain.Category) error {
	return p.publish(ctx, TopicCategoryUpdated, AggregateTypeCategory, c.ID, CategoryData{ID: c.ID, Name: c.Name})
}

// PublishCategoryDeleted publishes a category.deleted event.
func (p *Producer) PublishCategoryDeleted(ctx context.Context, id int64) error {
	return p.publish(ctx, TopicCategoryDeleted, AggregateTypeCategory, id, CategoryData{ID: id})
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, pr *domain.Product) error {
	return p.publish(ctx, TopicProductCreated, AggregateTypeProduct, pr.ID, ProductData{
		ID: pr.ID, CategoryID: pr.CategoryID, Name: pr.Name, Price: pr.Price, SpecialPrice: pr.SpecialPrice,
	})
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, pr *domain.Product) error {
	return p.publish(ctx, TopicProductUpdated, AggregateTypeProduct, pr.ID, ProductData{
		ID: pr.ID, CategoryID: pr.CategoryID, Name: pr.Name, Price: pr.Price, SpecialPrice: pr.SpecialPrice,
	})
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id int64) error {
	return p.publish(ctx, TopicProductDeleted, AggregateTypeProduct, id, ProductData{ID: id})
}

// PublishAddressCreated publishes an address.created event.
func (p *Producer) PublishAddressCreated(ctx context.Context, a *domain.Address) error {
	return p.publish(ctx, TopicAddressCreated, AggregateTypeAddress, a.ID, AddressData{ID: a.ID, UserID: a.UserID, Street: a.Street})
}

// PublishAddressUpdated publishes an address.updated event.
func (p *Producer) PublishAddressUpdated(ctx context.Context, a *domain.Address) error {
	return p.publish(ctx, TopicAddressUpdated, AggregateTypeAddress, a.ID, AddressData{ID: a.ID, UserID: a.UserID, Street: a.Street})
}

// PublishAddressDeleted publishes an address.deleted event.
func (p *Producer) PublishAddressDeleted(ctx context.Context, a *domain.Address) error {
	return p.publish(ctx, TopicAddressDeleted, AggregateTypeAddress, a.ID, AddressData{ID: a.ID, UserID: a.UserID})
}
