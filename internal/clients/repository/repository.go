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

const (
	clientNotFoundMessage     = "client not found"
	banNotFoundMessage        = "billing account not found"
	subscriberNotFoundMessage = "subscriber not found"
)

// Repo implements the clients repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new clients repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateClient inserts a client record.
func (r *Repo) CreateClient(ctx context.Context, params CreateClientParams) (Client, error) {
	query := `
		INSERT INTO clients (name, business_name, vendor_id, includes_ban, pending)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, name, business_name, vendor_id, includes_ban, pending, created_at, updated_at`

	var client Client
	if err := r.pool.QueryRow(ctx, query,
		params.Name, params.BusinessName, params.VendorID, params.IncludesBAN,
	).Scan(
		&client.ID, &client.Name, &client.BusinessName, &client.VendorID,
		&client.IncludesBAN, &client.Pending, &client.CreatedAt, &client.UpdatedAt,
	); err != nil {
		return Client{}, fmt.Errorf("create client: %w", err)
	}

	return client, nil
}

// GetClient fetches a client by id.
func (r *Repo) GetClient(ctx context.Context, id uuid.UUID) (Client, error) {
	query := `
		SELECT id, name, business_name, vendor_id, includes_ban, pending, created_at, updated_at
		FROM clients
		WHERE id = $1`

	var client Client
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&client.ID, &client.Name, &client.BusinessName, &client.VendorID,
		&client.IncludesBAN, &client.Pending, &client.CreatedAt, &client.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("get client: %w", err)
	}

	return client, nil
}

// ListClients returns all clients ordered by name.
func (r *Repo) ListClients(ctx context.Context) ([]Client, error) {
	query := `
		SELECT id, name, business_name, vendor_id, includes_ban, pending, created_at, updated_at
		FROM clients
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		var client Client
		if err := rows.Scan(
			&client.ID, &client.Name, &client.BusinessName, &client.VendorID,
			&client.IncludesBAN, &client.Pending, &client.CreatedAt, &client.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// UpdateClient updates the provided fields on a client. ClearVendor takes
// precedence over VendorID so a vendor unassignment is unambiguous.
func (r *Repo) UpdateClient(ctx context.Context, params UpdateClientParams) (Client, error) {
	query := `
		UPDATE clients
		SET name = COALESCE($2, name),
			business_name = COALESCE($3, business_name),
			vendor_id = CASE WHEN $4 THEN NULL ELSE COALESCE($5, vendor_id) END,
			includes_ban = COALESCE($6, includes_ban),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, business_name, vendor_id, includes_ban, pending, created_at, updated_at`

	var client Client
	if err := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.BusinessName, params.ClearVendor, params.VendorID, params.IncludesBAN,
	).Scan(
		&client.ID, &client.Name, &client.BusinessName, &client.VendorID,
		&client.IncludesBAN, &client.Pending, &client.CreatedAt, &client.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("update client: %w", err)
	}

	return client, nil
}

// DeleteClient removes a client and, via cascade, its BANs and subscribers.
func (r *Repo) DeleteClient(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMessage)
	}
	return nil
}

// SetClientPending writes the reconciled gate status.
func (r *Repo) SetClientPending(ctx context.Context, id uuid.UUID, pending bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clients SET pending = $2, updated_at = now() WHERE id = $1`, id, pending)
	if err != nil {
		return fmt.Errorf("set client pending: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMessage)
	}
	return nil
}

// CreateBan inserts a billing account for a client.
func (r *Repo) CreateBan(ctx context.Context, params CreateBanParams) (BAN, error) {
	query := `
		INSERT INTO bans (ban_number, client_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, ban_number, client_id, status, created_at`

	var ban BAN
	if err := r.pool.QueryRow(ctx, query, params.BanNumber, params.ClientID, params.Status).Scan(
		&ban.ID, &ban.BanNumber, &ban.ClientID, &ban.Status, &ban.CreatedAt,
	); err != nil {
		return BAN{}, fmt.Errorf("create ban: %w", err)
	}

	return ban, nil
}

// GetBan fetches a billing account with its subscriber count.
func (r *Repo) GetBan(ctx context.Context, id uuid.UUID) (BAN, error) {
	query := `
		SELECT b.id, b.ban_number, b.client_id, b.status, b.created_at,
			(SELECT count(*) FROM subscribers s WHERE s.ban_id = b.id) AS subscriber_count
		FROM bans b
		WHERE b.id = $1`

	var ban BAN
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ban.ID, &ban.BanNumber, &ban.ClientID, &ban.Status, &ban.CreatedAt, &ban.SubscriberCount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BAN{}, apperr.NotFound(banNotFoundMessage)
		}
		return BAN{}, fmt.Errorf("get ban: %w", err)
	}

	return ban, nil
}

// ListBansByClient returns the client's billing accounts with subscriber counts.
func (r *Repo) ListBansByClient(ctx context.Context, clientID uuid.UUID) ([]BAN, error) {
	query := `
		SELECT b.id, b.ban_number, b.client_id, b.status, b.created_at,
			(SELECT count(*) FROM subscribers s WHERE s.ban_id = b.id) AS subscriber_count
		FROM bans b
		WHERE b.client_id = $1
		ORDER BY b.created_at`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list bans: %w", err)
	}
	defer rows.Close()

	bans := make([]BAN, 0)
	for rows.Next() {
		var ban BAN
		if err := rows.Scan(
			&ban.ID, &ban.BanNumber, &ban.ClientID, &ban.Status, &ban.CreatedAt, &ban.SubscriberCount,
		); err != nil {
			return nil, fmt.Errorf("scan ban: %w", err)
		}
		bans = append(bans, ban)
	}

	return bans, rows.Err()
}

// DeleteBan removes a billing account and its subscribers.
func (r *Repo) DeleteBan(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ban: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(banNotFoundMessage)
	}
	return nil
}

// CreateSubscriber inserts a subscriber line under a BAN.
func (r *Repo) CreateSubscriber(ctx context.Context, params CreateSubscriberParams) (Subscriber, error) {
	query := `
		INSERT INTO subscribers (ban_id, phone, contract_end_date, remaining_payments)
		VALUES ($1, $2, $3, $4)
		RETURNING id, ban_id, phone, contract_end_date, remaining_payments, created_at`

	var subscriber Subscriber
	if err := r.pool.QueryRow(ctx, query,
		params.BanID, params.Phone, params.ContractEndDate, params.RemainingPayments,
	).Scan(
		&subscriber.ID, &subscriber.BanID, &subscriber.Phone,
		&subscriber.ContractEndDate, &subscriber.RemainingPayments, &subscriber.CreatedAt,
	); err != nil {
		return Subscriber{}, fmt.Errorf("create subscriber: %w", err)
	}

	return subscriber, nil
}

// ListSubscribersByBan returns a BAN's subscriber lines.
func (r *Repo) ListSubscribersByBan(ctx context.Context, banID uuid.UUID) ([]Subscriber, error) {
	query := `
		SELECT id, ban_id, phone, contract_end_date, remaining_payments, created_at
		FROM subscribers
		WHERE ban_id = $1
		ORDER BY created_at`

	return r.querySubscribers(ctx, query, banID)
}

// ListSubscribersByClient returns all subscriber lines across a client's BANs.
func (r *Repo) ListSubscribersByClient(ctx context.Context, clientID uuid.UUID) ([]Subscriber, error) {
	query := `
		SELECT s.id, s.ban_id, s.phone, s.contract_end_date, s.remaining_payments, s.created_at
		FROM subscribers s
		JOIN bans b ON b.id = s.ban_id
		WHERE b.client_id = $1
		ORDER BY s.created_at`

	return r.querySubscribers(ctx, query, clientID)
}

func (r *Repo) querySubscribers(ctx context.Context, query string, arg any) ([]Subscriber, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := make([]Subscriber, 0)
	for rows.Next() {
		var subscriber Subscriber
		if err := rows.Scan(
			&subscriber.ID, &subscriber.BanID, &subscriber.Phone,
			&subscriber.ContractEndDate, &subscriber.RemainingPayments, &subscriber.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subscribers = append(subscribers, subscriber)
	}

	return subscribers, rows.Err()
}

// DeleteSubscriber removes a subscriber line.
func (r *Repo) DeleteSubscriber(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(subscriberNotFoundMessage)
	}
	return nil
}
