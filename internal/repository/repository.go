package repository

import (
	"context"

	"github.com/sbecom/storeapi/internal/domain"
	"github.com/sbecom/storeapi/pkg/paging"
)

// UserRepository defines persistence operations for account rows. Accounts
// are provisioned from the identity provider; this service only reads them
// and keeps the owned-address count in step.
type UserRepository interface {
	// Create inserts a new user row.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AddressRepository defines persistence operations for addresses. Writes that
// change a user's address collection run in a single transaction that locks
// the owning user row, so the address table and the owner's collection can
// never diverge.
type AddressRepository interface {
	// Create inserts a new address and bumps the owner's address count in
	// one transaction. The store assigns the ID.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID retrieves an address by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Address, error)

	// GetByStreet retrieves an address by its street.
	GetByStreet(ctx context.Context, street string) (*domain.Address, error)

	// List returns one page of addresses with the total count.
	List(ctx context.Context, page paging.Request) ([]domain.Address, int64, error)

	// ListByUserID returns all addresses owned by the given user.
	ListByUserID(ctx context.Context, userID int64) ([]domain.Address, error)

	// Update overwrites the mutable fields of an existing address and
	// touches the owner row in one transaction.
	Update(ctx context.Context, address *domain.Address) error

	// Delete removes an address and decrements the owner's address count
	// in one transaction.
	Delete(ctx context.Context, address *domain.Address) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	// Create inserts a new category. The store assigns the ID.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// ListAll returns every category.
	ListAll(ctx context.Context) ([]domain.Category, error)

	// Update modifies an existing category.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category. Deleting a category that still has
	// products fails with a conflict.
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// Create inserts a new product. The store assigns the ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns one page of products with the total count.
	List(ctx context.Context, page paging.Request) ([]domain.Product, int64, error)

	// ListByCategory returns one page of products in the given category.
	ListByCategory(ctx context.Context, categoryID int64, page paging.Request) ([]domain.Product, int64, error)

	// ListByKeyword returns one page of products whose name contains the
	// keyword, case-insensitively.
	ListByKeyword(ctx context.Context, keyword string, page paging.Request) ([]domain.Product, int64, error)

	// Update modifies an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// UpdateImage stores a new image reference on the product.
	UpdateImage(ctx context.Context, id int64, image string) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id int64) error
}
