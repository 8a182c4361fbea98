package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/platform/apperr"
)

// Repo implements the notification repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Create inserts a notification.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Notification, error) {
	var n Notification
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (vendor_id, kind, title, body)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, vendor_id, kind, title, COALESCE(body, ''), read, created_at`,
		params.VendorID, params.Kind, params.Title, params.Body,
	).Scan(&n.ID, &n.VendorID, &n.Kind, &n.Title, &n.Body, &n.Read, &n.CreatedAt)
	if err != nil {
		return Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// ListByVendor returns a vendor's notifications newest first.
func (r *Repo) ListByVendor(ctx context.Context, vendorID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, vendor_id, kind, title, COALESCE(body, ''), read, created_at
		FROM notifications
		WHERE vendor_id = $1 AND (NOT $2 OR NOT read)
		ORDER BY created_at DESC
		LIMIT 200`, vendorID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.VendorID, &n.Kind, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnread returns the number of unread notifications for a vendor.
func (r *Repo) CountUnread(ctx context.Context, vendorID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE vendor_id = $1 AND NOT read`, vendorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags one notification as read.
func (r *Repo) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

// MarkAllRead flags all of a vendor's notifications as read.
func (r *Repo) MarkAllRead(ctx context.Context, vendorID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE vendor_id = $1 AND NOT read`, vendorID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
