package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/platform/apperr"
)

// Repo implements the payments repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new payments repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Create inserts a payment.
func (r *Repo) Create(ctx context.Context, params CreatePaymentParams) (Payment, error) {
	var p Payment
	err := r.pool.QueryRow(ctx, `
		INSERT INTO payments (client_id, amount, method, reference, notes, paid_at, recorded_by)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7)
		RETURNING id, client_id, amount, COALESCE(method, ''), COALESCE(reference, ''),
		          COALESCE(notes, ''), paid_at, recorded_by, created_at`,
		params.ClientID, params.Amount, params.Method, params.Reference,
		params.Notes, params.PaidAt, params.RecordedBy,
	).Scan(&p.ID, &p.ClientID, &p.Amount, &p.Method, &p.Reference,
		&p.Notes, &p.PaidAt, &p.RecordedBy, &p.CreatedAt)
	if err != nil {
		return Payment{}, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

// ListByClient returns a client's payments newest first.
func (r *Repo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, client_id, amount, COALESCE(method, ''), COALESCE(reference, ''),
		       COALESCE(notes, ''), paid_at, recorded_by, created_at
		FROM payments
		WHERE client_id = $1
		ORDER BY paid_at DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]Payment, 0)
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Amount, &p.Method, &p.Reference,
			&p.Notes, &p.PaidAt, &p.RecordedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Delete removes a payment.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("payment not found")
	}
	return nil
}
