package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the sales history repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sales history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// RecordSale inserts a sale record.
func (r *Repo) RecordSale(ctx context.Context, params RecordSaleParams) (Sale, error) {
	var s Sale
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sales_history (prospect_id, client_id, vendor_id, product_id, total_amount, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, prospect_id, client_id, vendor_id, product_id, total_amount, sale_date, created_at`,
		params.ProspectID, params.ClientID, params.VendorID, params.ProductID,
		params.TotalAmount, params.SaleDate,
	).Scan(&s.ID, &s.ProspectID, &s.ClientID, &s.VendorID, &s.ProductID,
		&s.TotalAmount, &s.SaleDate, &s.CreatedAt)
	if err != nil {
		return Sale{}, fmt.Errorf("record sale: %w", err)
	}
	return s, nil
}

// ListSales returns sales newest first with joined display names, optionally
// narrowed to a vendor and period.
func (r *Repo) ListSales(ctx context.Context, filter ListFilter) ([]Sale, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.prospect_id, s.client_id, COALESCE(c.name, ''),
		       s.vendor_id, COALESCE(v.name, ''), s.product_id,
		       s.total_amount, s.sale_date, s.created_at
		FROM sales_history s
		LEFT JOIN clients c ON c.id = s.client_id
		LEFT JOIN vendors v ON v.id = s.vendor_id
		WHERE ($1::uuid IS NULL OR s.vendor_id = $1)
		AND ($2::int IS NULL OR EXTRACT(YEAR FROM s.sale_date) = $2)
		AND ($3::int IS NULL OR EXTRACT(MONTH FROM s.sale_date) = $3)
		ORDER BY s.sale_date DESC`,
		filter.VendorID, filter.Year, filter.Month)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]Sale, 0)
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ProspectID, &s.ClientID, &s.ClientName,
			&s.VendorID, &s.VendorName, &s.ProductID,
			&s.TotalAmount, &s.SaleDate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
