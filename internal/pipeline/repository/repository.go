package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/pipeline/domain"
	"salesops_backend/platform/apperr"
)

const (
	prospectNotFoundMessage = "prospect not found"
)

const prospectColumns = `
	fp.id, fp.client_id, c.name, fp.vendor_id, COALESCE(v.name, ''),
	fp.priority_id, COALESCE(pp.name, ''), fp.step_id, COALESCE(ps.name, ''),
	fp.is_active, fp.is_completed, fp.completed_date,
	fp.last_call_date, fp.next_call_date, fp.call_count,
	fp.total_amount, COALESCE(fp.notes, ''), fp.created_at, fp.updated_at`

const prospectJoins = `
	FROM follow_up_prospects fp
	JOIN clients c ON c.id = fp.client_id
	LEFT JOIN vendors v ON v.id = fp.vendor_id
	LEFT JOIN prospect_priorities pp ON pp.id = fp.priority_id
	LEFT JOIN pipeline_steps ps ON ps.id = fp.step_id`

// Repo implements the pipeline repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pipeline repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetClientVendor returns a client's current vendor assignment, nil when the
// client is unassigned.
func (r *Repo) GetClientVendor(ctx context.Context, clientID uuid.UUID) (*uuid.UUID, error) {
	var vendorID *uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT vendor_id FROM clients WHERE id = $1`, clientID).Scan(&vendorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("get client vendor: %w", err)
	}
	return vendorID, nil
}

func scanProspect(row pgx.Row) (Prospect, error) {
	var p Prospect
	err := row.Scan(
		&p.ID, &p.ClientID, &p.ClientName, &p.VendorID, &p.VendorName,
		&p.PriorityID, &p.PriorityName, &p.StepID, &p.StepName,
		&p.IsActive, &p.IsCompleted, &p.CompletedDate,
		&p.LastCallDate, &p.NextCallDate, &p.CallCount,
		&p.TotalAmount, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreateProspect inserts an active follow-up record for a client. The partial
// unique index on (client_id) WHERE is_active AND NOT is_completed backs the
// service-level conflict check against concurrent sends.
func (r *Repo) CreateProspect(ctx context.Context, params CreateProspectParams) (Prospect, error) {
	query := `
		WITH inserted AS (
			INSERT INTO follow_up_prospects (client_id, vendor_id, priority_id, step_id, notes)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			RETURNING *
		)
		SELECT ` + prospectColumns + `
		FROM inserted fp
		JOIN clients c ON c.id = fp.client_id
		LEFT JOIN vendors v ON v.id = fp.vendor_id
		LEFT JOIN prospect_priorities pp ON pp.id = fp.priority_id
		LEFT JOIN pipeline_steps ps ON ps.id = fp.step_id`

	prospect, err := scanProspect(r.pool.QueryRow(ctx, query,
		params.ClientID, params.VendorID, params.PriorityID, params.StepID, params.Notes,
	))
	if err != nil {
		return Prospect{}, fmt.Errorf("create prospect: %w", err)
	}
	return prospect, nil
}

// GetProspect fetches one prospect with its joined display names.
func (r *Repo) GetProspect(ctx context.Context, id uuid.UUID) (Prospect, error) {
	query := `SELECT ` + prospectColumns + prospectJoins + ` WHERE fp.id = $1`

	prospect, err := scanProspect(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prospect{}, apperr.NotFound(prospectNotFoundMessage)
		}
		return Prospect{}, fmt.Errorf("get prospect: %w", err)
	}
	return prospect, nil
}

// ListProspects returns prospects newest first, optionally scoped to a vendor
// or to active records only.
func (r *Repo) ListProspects(ctx context.Context, vendorID *uuid.UUID, activeOnly bool) ([]Prospect, error) {
	query := `SELECT ` + prospectColumns + prospectJoins + `
		WHERE ($1::uuid IS NULL OR fp.vendor_id = $1)
		AND (NOT $2 OR (fp.is_active AND NOT fp.is_completed))
		ORDER BY fp.created_at DESC`

	rows, err := r.pool.Query(ctx, query, vendorID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()

	prospects := make([]Prospect, 0)
	for rows.Next() {
		prospect, err := scanProspect(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		prospects = append(prospects, prospect)
	}
	return prospects, rows.Err()
}

// HasActiveProspect reports whether the client already has an active,
// non-completed follow-up record.
func (r *Repo) HasActiveProspect(ctx context.Context, clientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follow_up_prospects
			WHERE client_id = $1 AND is_active AND NOT is_completed
		)`, clientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has active prospect: %w", err)
	}
	return exists, nil
}

// CompleteProspect marks a prospect as a closed sale.
func (r *Repo) CompleteProspect(ctx context.Context, id uuid.UUID, completedDate time.Time, totalAmount float64) (Prospect, error) {
	query := `
		WITH updated AS (
			UPDATE follow_up_prospects
			SET is_completed = true, completed_date = $2, total_amount = $3, updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + prospectColumns + `
		FROM updated fp
		JOIN clients c ON c.id = fp.client_id
		LEFT JOIN vendors v ON v.id = fp.vendor_id
		LEFT JOIN prospect_priorities pp ON pp.id = fp.priority_id
		LEFT JOIN pipeline_steps ps ON ps.id = fp.step_id`

	prospect, err := scanProspect(r.pool.QueryRow(ctx, query, id, completedDate, totalAmount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prospect{}, apperr.NotFound(prospectNotFoundMessage)
		}
		return Prospect{}, fmt.Errorf("complete prospect: %w", err)
	}
	return prospect, nil
}

// ReturnProspect deactivates a prospect and clears the owning client's vendor
// assignment. Both writes commit together or not at all.
func (r *Repo) ReturnProspect(ctx context.Context, params ReturnProspectParams) (Prospect, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Prospect{}, fmt.Errorf("return prospect: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		WITH updated AS (
			UPDATE follow_up_prospects
			SET is_active = false, notes = NULLIF($2, ''), updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + prospectColumns + `
		FROM updated fp
		JOIN clients c ON c.id = fp.client_id
		LEFT JOIN vendors v ON v.id = fp.vendor_id
		LEFT JOIN prospect_priorities pp ON pp.id = fp.priority_id
		LEFT JOIN pipeline_steps ps ON ps.id = fp.step_id`

	prospect, err := scanProspect(tx.QueryRow(ctx, query, params.ProspectID, params.Notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prospect{}, apperr.NotFound(prospectNotFoundMessage)
		}
		return Prospect{}, fmt.Errorf("return prospect: %w", err)
	}

	// Business rule: returning a prospect unassigns the client's vendor.
	if _, err := tx.Exec(ctx,
		`UPDATE clients SET vendor_id = NULL, updated_at = now() WHERE id = $1`,
		params.ClientID,
	); err != nil {
		return Prospect{}, fmt.Errorf("return prospect: clear vendor: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Prospect{}, fmt.Errorf("return prospect: commit: %w", err)
	}
	return prospect, nil
}

// AppendCallLog inserts a ledger entry and, when the entry schedules a next
// call, commits the prospect bookkeeping update in the same transaction.
func (r *Repo) AppendCallLog(ctx context.Context, params AppendCallLogParams) (CallLog, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return CallLog{}, fmt.Errorf("append call log: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var entry CallLog
	err = tx.QueryRow(ctx, `
		INSERT INTO call_logs (follow_up_id, call_date, notes, outcome, next_call_date, step_id, step_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, follow_up_id, call_date, notes, outcome, next_call_date, step_id, step_completed, created_at`,
		params.FollowUpID, params.CallDate, params.Notes, params.Outcome,
		params.NextCallDate, params.StepID, params.StepCompleted,
	).Scan(
		&entry.ID, &entry.FollowUpID, &entry.CallDate, &entry.Notes, &entry.Outcome,
		&entry.NextCallDate, &entry.StepID, &entry.StepCompleted, &entry.CreatedAt,
	)
	if err != nil {
		return CallLog{}, fmt.Errorf("append call log: %w", err)
	}

	if params.UpdateBookkeeping {
		tag, err := tx.Exec(ctx, `
			UPDATE follow_up_prospects
			SET last_call_date = $2, next_call_date = $3, call_count = $4, updated_at = now()
			WHERE id = $1`,
			params.FollowUpID, params.LastCallDate, params.ProspectNextCall, params.CallCount,
		)
		if err != nil {
			return CallLog{}, fmt.Errorf("append call log: bookkeeping: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return CallLog{}, apperr.NotFound(prospectNotFoundMessage)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return CallLog{}, fmt.Errorf("append call log: commit: %w", err)
	}
	return entry, nil
}

// ListCallLogs returns a prospect's ledger, most recent call first.
func (r *Repo) ListCallLogs(ctx context.Context, followUpID uuid.UUID) ([]CallLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, follow_up_id, call_date, notes, outcome, next_call_date, step_id, step_completed, created_at
		FROM call_logs
		WHERE follow_up_id = $1
		ORDER BY call_date DESC, created_at DESC`, followUpID)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	defer rows.Close()

	logs := make([]CallLog, 0)
	for rows.Next() {
		var entry CallLog
		if err := rows.Scan(
			&entry.ID, &entry.FollowUpID, &entry.CallDate, &entry.Notes, &entry.Outcome,
			&entry.NextCallDate, &entry.StepID, &entry.StepCompleted, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// ListSteps returns the workflow step catalog in display order.
func (r *Repo) ListSteps(ctx context.Context) ([]domain.Step, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, order_index
		FROM pipeline_steps
		ORDER BY order_index ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	steps := make([]domain.Step, 0)
	for rows.Next() {
		var step domain.Step
		if err := rows.Scan(&step.ID, &step.Name, &step.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

// CreateStep adds a workflow step to the catalog.
func (r *Repo) CreateStep(ctx context.Context, params CreateStepParams) (domain.Step, error) {
	var step domain.Step
	err := r.pool.QueryRow(ctx, `
		INSERT INTO pipeline_steps (name, order_index)
		VALUES ($1, $2)
		RETURNING id, name, order_index`,
		params.Name, params.OrderIndex,
	).Scan(&step.ID, &step.Name, &step.OrderIndex)
	if err != nil {
		return domain.Step{}, fmt.Errorf("create step: %w", err)
	}
	return step, nil
}

// DeleteStep removes a workflow step. Ledger entries referencing the step
// keep their step_id through ON DELETE SET NULL.
func (r *Repo) DeleteStep(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pipeline_steps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete step: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("step not found")
	}
	return nil
}

// ListPriorities returns active priority levels in display order.
func (r *Repo) ListPriorities(ctx context.Context) ([]Priority, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, color, order_index, active
		FROM prospect_priorities
		WHERE active
		ORDER BY order_index ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	defer rows.Close()

	priorities := make([]Priority, 0)
	for rows.Next() {
		var priority Priority
		if err := rows.Scan(&priority.ID, &priority.Name, &priority.Color, &priority.OrderIndex, &priority.Active); err != nil {
			return nil, fmt.Errorf("scan priority: %w", err)
		}
		priorities = append(priorities, priority)
	}
	return priorities, rows.Err()
}

// CreatePriority adds a priority level.
func (r *Repo) CreatePriority(ctx context.Context, params CreatePriorityParams) (Priority, error) {
	var priority Priority
	err := r.pool.QueryRow(ctx, `
		INSERT INTO prospect_priorities (name, color, order_index, active)
		VALUES ($1, $2, $3, true)
		RETURNING id, name, color, order_index, active`,
		params.Name, params.Color, params.OrderIndex,
	).Scan(&priority.ID, &priority.Name, &priority.Color, &priority.OrderIndex, &priority.Active)
	if err != nil {
		return Priority{}, fmt.Errorf("create priority: %w", err)
	}
	return priority, nil
}

// DeletePriority soft-deletes a priority level so existing prospects keep
// their label.
func (r *Repo) DeletePriority(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE prospect_priorities SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete priority: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("priority not found")
	}
	return nil
}
