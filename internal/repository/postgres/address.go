package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sbecom/storeapi/internal/domain"
	"github.com/sbecom/storeapi/pkg/database"
	apperrors "github.com/sbecom/storeapi/pkg/errors"
	"github.com/sbecom/storeapi/pkg/paging"
)

const addressColumns = "id, user_id, street, building_name, city, state, country, pincode, created_at, updated_at"

// AddressRepository implements repository.AddressRepository using PostgreSQL.
// Every write runs in a transaction that locks the owning user row, so the
// address rows and the owner's collection stay consistent under concurrent
// writers.
type AddressRepository struct {
	pool database.DBTX
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool database.DBTX) *AddressRepository {
	return &AddressRepository{pool: pool}
}

// Create inserts a new address and increments the owner's address count in a
// single transaction. The assigned ID and timestamps are written back onto a.
func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the owner row first: concurrent writers against the same user
	// serialize here.
	var ownerID int64
	err = tx.QueryRow(ctx, "SELECT id FROM users WHERE id = $1 FOR UPDATE", a.UserID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("user", "id", a.UserID)
		}
		return fmt.Errorf("lock user row: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO addresses (user_id, street, building_name, city, state, country, pincode)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		a.UserID, a.Street, a.BuildingName, a.City, a.State, a.Country, a.Pincode,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("address", "street", a.Street)
		}
		return fmt.Errorf("insert address: %w", err)
	}

	_, err = tx.Exec(ctx,
		"UPDATE users SET address_count = address_count + 1, updated_at = NOW() WHERE id = $1",
		a.UserID,
	)
	if err != nil {
		return fmt.Errorf("update user address count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves an address by its identifier.
func (r *AddressRepository) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	query := "SELECT " + addressColumns + " FROM addresses WHERE id = $1"
	return r.scanAddress(ctx, query, "id", id)
}

// GetByStreet retrieves an address by its street.
func (r *AddressRepository) GetByStreet(ctx context.Context, street string) (*domain.Address, error) {
	query := "SELECT " + addressColumns + " FROM addresses WHERE street = $1"
	return r.scanAddress(ctx, query, "street", street)
}

func (r *AddressRepository) scanAddress(ctx context.Context, query, field string, arg any) (*domain.Address, error) {
	var a domain.Address
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.UserID, &a.Street, &a.BuildingName, &a.City, &a.State, &a.Country, &a.Pincode,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", field, arg)
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &a, nil
}

// List returns one page of addresses with the total count.
func (r *AddressRepository) List(ctx context.Context, page paging.Request) ([]domain.Address, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM addresses
		ORDER BY %s
		LIMIT $1 OFFSET $2`,
		addressColumns, page.OrderBy(),
	)

	rows, err := r.pool.Query(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var (
		addresses []domain.Address
		total     int64
	)
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Street, &a.BuildingName, &a.City, &a.State, &a.Country, &a.Pincode,
			&a.CreatedAt, &a.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate address rows: %w", err)
	}

	if addresses == nil {
		addresses = []domain.Address{}
	}
	return addresses, total, nil
}

// ListByUserID returns all addresses owned by the given user, oldest first.
func (r *AddressRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.Address, error) {
	query := "SELECT " + addressColumns + " FROM addresses WHERE user_id = $1 ORDER BY id"

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses by user: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Street, &a.BuildingName, &a.City, &a.State, &a.Country, &a.Pincode,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}

	if addresses == nil {
		addresses = []domain.Address{}
	}
	return addresses, nil
}

// Update overwrites the mutable fields of an address and touches the owner
// row in one transaction. The owner and ID never change.
func (r *AddressRepository) Update(ctx context.Context, a *domain.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ownerID int64
	err = tx.QueryRow(ctx, "SELECT id FROM users WHERE id = $1 FOR UPDATE", a.UserID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("user", "id", a.UserID)
		}
		return fmt.Errorf("lock user row: %w", err)
	}

	ct, err := tx.Exec(ctx, `
		UPDATE addresses
		SET street = $1, building_name = $2, city = $3, state = $4, country = $5, pincode = $6,
		    updated_at = NOW()
		WHERE id = $7`,
		a.Street, a.BuildingName, a.City, a.State, a.Country, a.Pincode, a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("address", "street", a.Street)
		}
		return fmt.Errorf("update address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", "id", a.ID)
	}

	_, err = tx.Exec(ctx, "UPDATE users SET updated_at = NOW() WHERE id = $1", a.UserID)
	if err != nil {
		return fmt.Errorf("touch user row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Delete removes an address and decrements the owner's address count in one
// transaction.
func (r *AddressRepository) Delete(ctx context.Context, a *domain.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ownerID int64
	err = tx.QueryRow(ctx, "SELECT id FROM users WHERE id = $1 FOR UPDATE", a.UserID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("user", "id", a.UserID)
		}
		return fmt.Errorf("lock user row: %w", err)
	}

	ct, err := tx.Exec(ctx, "DELETE FROM addresses WHERE id = $1", a.ID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", "id", a.ID)
	}

	_, err = tx.Exec(ctx,
		"UPDATE users SET address_count = address_count - 1, updated_at = NOW() WHERE id = $1",
		a.UserID,
	)
	if err != nil {
		return fmt.Errorf("update user address count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
