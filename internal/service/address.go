package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sbecom/storeapi/internal/domain"
	"github.com/sbecom/storeapi/internal/dto"
	"github.com/sbecom/storeapi/internal/event"
	"github.com/sbecom/storeapi/internal/repository"
	apperrors "github.com/sbecom/storeapi/pkg/errors"
	"github.com/sbecom/storeapi/pkg/paging"
)

// addressSortable maps external sort field names to address table columns.
var addressSortable = map[string]string{
	"id":      "id",
	"street":  "street",
	"city":    "city",
	"state":   "state",
	"country": "country",
	"pincode": "pincode",
}

// emptyAddressListMessage is the long-standing message clients depend on when
// no address exists at all.
const emptyAddressListMessage = "No address created till now."

// AddressInput holds the mutable fields of an address.
type AddressInput struct {
	Street       string
	BuildingName string
	City         string
	State        string
	Country      string
	Pincode      string
}

// AddressService implements the business logic for address operations.
type AddressService struct {
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(
	addressRepo repository.AddressRepository,
	userRepo repository.UserRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		userRepo:    userRepo,
		producer:    producer,
		logger:      logger,
	}
}

// Create stores a new address for the given user. The street must be unique
// across the whole store; the insert and the owner-side collection update are
// one transaction inside the repository.
func (s *AddressService) Create(ctx context.Context, userID int64, in AddressInput) (*dto.Address, error) {
	existing, err := s.addressRepo.GetByStreet(ctx, in.Street)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check street: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("address", "street", in.Street)
	}

	address := &domain.Address{
		UserID:       userID,
		Street:       in.Street,
		BuildingName: in.BuildingName,
		City:         in.City,
		State:        in.State,
		Country:      in.Country,
		Pincode:      in.Pincode,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}

	if err := s.producer.PublishAddressCreated(ctx, address); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish address.created event",
			slog.Int64("address_id", address.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "address created",
		slog.Int64("address_id", address.ID),
		slog.Int64("user_id", userID),
	)

	out := dto.FromAddress(address)
	return &out, nil
}

// ListAll returns one page of all addresses in the store.
func (s *AddressService) ListAll(ctx context.Context, pageNumber, pageSize int, sortBy, sortOrder string) (*paging.Response[dto.Address], error) {
	page, err := paging.Build(pageNumber, pageSize, sortBy, sortOrder, addressSortable)
	if err != nil {
		return nil, err
	}

	addresses, total, err := s.addressRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, apperrors.EmptyResult(emptyAddressListMessage)
	}

	resp := paging.NewResponse(dto.FromAddresses(addresses), page, total)
	return &resp, nil
}

// GetByID returns a single address.
func (s *AddressService) GetByID(ctx context.Context, id int64) (*dto.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromAddress(address)
	return &out, nil
}

// ListByUser returns every address owned by the given user. The user must
// exist; a user with no addresses gets an empty list, not an error.
func (s *AddressService) ListByUser(ctx context.Context, userID int64) ([]dto.Address, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	addresses, err := s.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromAddresses(addresses), nil
}

// Update overwrites the mutable fields of an address. The owner and ID are
// immutable; the updated row replaces the previous one in the owner's
// collection by construction.
func (s *AddressService) Update(ctx context.Context, id int64, in AddressInput) (*dto.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	address.Street = in.Street
	address.BuildingName = in.BuildingName
	address.City = in.City
	address.State = in.State
	address.Country = in.Country
	address.Pincode = in.Pincode

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, err
	}

	if err := s.producer.PublishAddressUpdated(ctx, address); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish address.updated event",
			slog.Int64("address_id", address.ID),
			slog.String("error", err.Error()),
		)
	}

	out := dto.FromAddress(address)
	return &out, nil
}

// Delete removes an address and returns the deleted record.
func (s *AddressService) Delete(ctx context.Context, id int64) (*dto.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.addressRepo.Delete(ctx, address); err != nil {
		return nil, err
	}

	if err := s.producer.PublishAddressDeleted(ctx, address); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish address.deleted event",
			slog.Int64("address_id", address.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "address deleted",
		slog.Int64("address_id", address.ID),
		slog.Int64("user_id", address.UserID),
	)

	out := dto.FromAddress(address)
	return &out, nil
}
