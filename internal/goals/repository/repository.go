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

// Repo implements the goals repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new goals repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// ListProducts returns active products ordered by name.
func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, active, created_at
		FROM products
		WHERE active
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CreateProduct adds a product.
func (r *Repo) CreateProduct(ctx context.Context, name string) (Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name) VALUES ($1)
		RETURNING id, name, active, created_at`, name,
	).Scan(&p.ID, &p.Name, &p.Active, &p.CreatedAt)
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// DeleteProduct retires a product. Goals referencing it are kept.
func (r *Repo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}

// ListProductGoals returns business goals, optionally filtered by period.
func (r *Repo) ListProductGoals(ctx context.Context, filter PeriodFilter) ([]ProductGoalRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pg.id, pg.product_id, p.name, pg.period_year, pg.period_month,
		       pg.total_target_amount, pg.current_amount, pg.created_at, pg.updated_at
		FROM product_goals pg
		JOIN products p ON p.id = pg.product_id
		WHERE ($1::int IS NULL OR pg.period_year = $1)
		AND ($2::int IS NULL OR pg.period_month = $2)
		ORDER BY pg.period_year DESC, pg.period_month NULLS FIRST, p.name ASC`,
		filter.Year, filter.Month)
	if err != nil {
		return nil, fmt.Errorf("list product goals: %w", err)
	}
	defer rows.Close()

	goals := make([]ProductGoalRow, 0)
	for rows.Next() {
		var g ProductGoalRow
		if err := rows.Scan(&g.ID, &g.ProductID, &g.ProductName, &g.Year, &g.Month,
			&g.TotalTargetAmount, &g.CurrentAmount, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpsertProductGoal writes a business goal, replacing amounts when the
// (product, year, month) key already exists.
func (r *Repo) UpsertProductGoal(ctx context.Context, params UpsertProductGoalParams) (ProductGoalRow, error) {
	var g ProductGoalRow
	err := r.pool.QueryRow(ctx, `
		INSERT INTO product_goals (product_id, period_year, period_month, total_target_amount, current_amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, period_year, COALESCE(period_month, 0))
		DO UPDATE SET total_target_amount = EXCLUDED.total_target_amount,
		              current_amount = EXCLUDED.current_amount,
		              updated_at = now()
		RETURNING id, product_id, '', period_year, period_month,
		          total_target_amount, current_amount, created_at, updated_at`,
		params.ProductID, params.Year, params.Month, params.TotalTargetAmount, params.CurrentAmount,
	).Scan(&g.ID, &g.ProductID, &g.ProductName, &g.Year, &g.Month,
		&g.TotalTargetAmount, &g.CurrentAmount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return ProductGoalRow{}, fmt.Errorf("upsert product goal: %w", err)
	}
	return g, nil
}

// DeleteProductGoal removes a business goal.
func (r *Repo) DeleteProductGoal(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product_goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("product goal not found")
	}
	return nil
}

// ListVendorGoals returns vendor goals, optionally filtered by period. The
// vendor name is resolved from the catalog when an id is present, falling
// back to the row's stored legacy name.
func (r *Repo) ListVendorGoals(ctx context.Context, filter PeriodFilter) ([]VendorGoalRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.vendor_id, COALESCE(v.name, g.vendor_name, ''), g.product_id, p.name,
		       g.period_year, g.period_month, g.target_amount, g.current_amount,
		       g.created_at, g.updated_at
		FROM goals g
		JOIN products p ON p.id = g.product_id
		LEFT JOIN vendors v ON v.id = g.vendor_id
		WHERE ($1::int IS NULL OR g.period_year = $1)
		AND ($2::int IS NULL OR g.period_month = $2)
		ORDER BY g.period_year DESC, g.period_month NULLS FIRST, p.name ASC, COALESCE(v.name, g.vendor_name, '') ASC`,
		filter.Year, filter.Month)
	if err != nil {
		return nil, fmt.Errorf("list vendor goals: %w", err)
	}
	defer rows.Close()

	goals := make([]VendorGoalRow, 0)
	for rows.Next() {
		var g VendorGoalRow
		if err := rows.Scan(&g.ID, &g.VendorID, &g.VendorName, &g.ProductID, &g.ProductName,
			&g.Year, &g.Month, &g.TargetAmount, &g.CurrentAmount,
			&g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// CreateVendorGoal inserts a vendor goal.
func (r *Repo) CreateVendorGoal(ctx context.Context, params CreateVendorGoalParams) (VendorGoalRow, error) {
	var g VendorGoalRow
	err := r.pool.QueryRow(ctx, `
		INSERT INTO goals (vendor_id, vendor_name, product_id, period_year, period_month, target_amount, current_amount)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
		RETURNING id, vendor_id, COALESCE(vendor_name, ''), product_id, '',
		          period_year, period_month, target_amount, current_amount, created_at, updated_at`,
		params.VendorID, params.VendorName, params.ProductID, params.Year, params.Month,
		params.TargetAmount, params.CurrentAmount,
	).Scan(&g.ID, &g.VendorID, &g.VendorName, &g.ProductID, &g.ProductName,
		&g.Year, &g.Month, &g.TargetAmount, &g.CurrentAmount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return VendorGoalRow{}, fmt.Errorf("create vendor goal: %w", err)
	}
	return g, nil
}

// UpdateVendorGoal adjusts a vendor goal's amounts.
func (r *Repo) UpdateVendorGoal(ctx context.Context, id uuid.UUID, params UpdateVendorGoalParams) (VendorGoalRow, error) {
	var g VendorGoalRow
	err := r.pool.QueryRow(ctx, `
		UPDATE goals
		SET target_amount = COALESCE($2, target_amount),
		    current_amount = COALESCE($3, current_amount),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, vendor_id, COALESCE(vendor_name, ''), product_id, '',
		          period_year, period_month, target_amount, current_amount, created_at, updated_at`,
		id, params.TargetAmount, params.CurrentAmount,
	).Scan(&g.ID, &g.VendorID, &g.VendorName, &g.ProductID, &g.ProductName,
		&g.Year, &g.Month, &g.TargetAmount, &g.CurrentAmount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VendorGoalRow{}, apperr.NotFound("goal not found")
		}
		return VendorGoalRow{}, fmt.Errorf("update vendor goal: %w", err)
	}
	return g, nil
}

// DeleteVendorGoal removes a vendor goal.
func (r *Repo) DeleteVendorGoal(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("goal not found")
	}
	return nil
}

// AddVendorProgress increments current_amount on the vendor's goals for the
// product and period, returning the number of rows advanced.
func (r *Repo) AddVendorProgress(ctx context.Context, vendorID, productID uuid.UUID, year, month int, amount float64) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE goals
		SET current_amount = current_amount + $5, updated_at = now()
		WHERE vendor_id = $1 AND product_id = $2 AND period_year = $3 AND period_month = $4`,
		vendorID, productID, year, month, amount)
	if err != nil {
		return 0, fmt.Errorf("add vendor progress: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
