package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/platform/apperr"
)

const vendorNotFoundMessage = "vendor not found"

const vendorColumns = `id, name, COALESCE(email, ''), COALESCE(phone, ''), active, created_at, updated_at`

// Repo implements the vendors repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vendors repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanVendor(row pgx.Row) (Vendor, error) {
	var v Vendor
	err := row.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// Create inserts a vendor.
func (r *Repo) Create(ctx context.Context, params CreateVendorParams) (Vendor, error) {
	vendor, err := scanVendor(r.pool.QueryRow(ctx, `
		INSERT INTO vendors (name, email, phone)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		RETURNING `+vendorColumns,
		params.Name, params.Email, params.Phone,
	))
	if err != nil {
		return Vendor{}, fmt.Errorf("create vendor: %w", err)
	}
	return vendor, nil
}

// Get fetches a vendor by id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (Vendor, error) {
	vendor, err := scanVendor(r.pool.QueryRow(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Vendor{}, apperr.NotFound(vendorNotFoundMessage)
		}
		return Vendor{}, fmt.Errorf("get vendor: %w", err)
	}
	return vendor, nil
}

// GetByName fetches a vendor by case-insensitive name match. Kept for rows
// that predate id-based vendor references.
func (r *Repo) GetByName(ctx context.Context, name string) (Vendor, error) {
	vendor, err := scanVendor(r.pool.QueryRow(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE lower(name) = lower($1)`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Vendor{}, apperr.NotFound(vendorNotFoundMessage)
		}
		return Vendor{}, fmt.Errorf("get vendor by name: %w", err)
	}
	return vendor, nil
}

// List returns all vendors ordered by name.
func (r *Repo) List(ctx context.Context) ([]Vendor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	vendors := make([]Vendor, 0)
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}

// Update applies the non-nil fields to a vendor.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateVendorParams) (Vendor, error) {
	vendor, err := scanVendor(r.pool.QueryRow(ctx, `
		UPDATE vendors
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    phone = COALESCE($4, phone),
		    active = COALESCE($5, active),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+vendorColumns,
		id, params.Name, params.Email, params.Phone, params.Active,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Vendor{}, apperr.NotFound(vendorNotFoundMessage)
		}
		return Vendor{}, fmt.Errorf("update vendor: %w", err)
	}
	return vendor, nil
}

// Delete removes a vendor. Clients referencing it fall back to unassigned
// through ON DELETE SET NULL.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(vendorNotFoundMessage)
	}
	return nil
}
