package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 200

// Repo implements the audit repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Append inserts an audit entry.
func (r *Repo) Append(ctx context.Context, params AppendParams) (Entry, error) {
	var e Entry
	err := r.pool.QueryRow(ctx, `
		INSERT INTO audit_log (action, entity_type, entity_id, actor_id, details, occurred_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id, action, entity_type, entity_id, actor_id, COALESCE(details, ''), occurred_at`,
		params.Action, params.EntityType, params.EntityID, params.ActorID,
		params.Details, params.OccurredAt,
	).Scan(&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.ActorID, &e.Details, &e.OccurredAt)
	if err != nil {
		return Entry{}, fmt.Errorf("append audit entry: %w", err)
	}
	return e, nil
}

// List returns audit entries newest first.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, action, entity_type, entity_id, actor_id, COALESCE(details, ''), occurred_at
		FROM audit_log
		WHERE ($1 = '' OR entity_type = $1)
		AND ($2::uuid IS NULL OR entity_id = $2)
		AND ($3 = '' OR action = $3)
		ORDER BY occurred_at DESC
		LIMIT $4`,
		filter.EntityType, filter.EntityID, filter.Action, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.ActorID, &e.Details, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
