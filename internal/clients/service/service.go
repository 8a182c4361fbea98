package service

import (
	"context"
	"sort"
	"time"

	"salesops_backend/internal/clients/domain"
	"salesops_backend/internal/clients/repository"
	"salesops_backend/internal/clients/transport"
	"salesops_backend/internal/events"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	msgBanGateUnmet  = "client requires at least one billing account with a subscriber"
	msgSessionOpen   = "finish the billing account setup before closing this client"
	entityClient     = "client"
	entityBan        = "ban"
	entitySubscriber = "subscriber"
)

// Service provides business logic for clients, billing accounts, and
// subscriber lines.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new clients service. The clock is injectable so contract
// derivation and classification stay deterministic under test.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, bus: bus, log: log, now: now}
}

// CreateClient creates a client. A BAN-flagged client starts pending; the
// stronger submit-time gate applies on subsequent saves, once the record
// could have billing accounts attached.
func (s *Service) CreateClient(ctx context.Context, actorID uuid.UUID, req transport.CreateClientRequest) (repository.Client, error) {
	client, err := s.repo.CreateClient(ctx, repository.CreateClientParams{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		VendorID:     req.VendorID,
		IncludesBAN:  req.IncludesBAN,
	})
	if err != nil {
		return repository.Client{}, err
	}

	s.publishMutation(ctx, events.ActionCreate, entityClient, client.ID, actorID, client.Name)
	return client, nil
}

// GetClient fetches a client with its contract timing classification.
func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (transport.ClientResponse, error) {
	client, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return transport.ClientResponse{}, err
	}

	timing, err := s.classifyClient(ctx, id)
	if err != nil {
		return transport.ClientResponse{}, err
	}

	return transport.FromClient(client, timing), nil
}

// ListClients returns all clients with their contract timing.
func (s *Service) ListClients(ctx context.Context) ([]transport.ClientResponse, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ClientResponse, 0, len(clients))
	for _, client := range clients {
		timing, err := s.classifyClient(ctx, client.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, transport.FromClient(client, timing))
	}
	return out, nil
}

// ListExpirations returns clients ordered by contract urgency, most urgent
// first. An optional status narrows the list to one urgency bucket.
func (s *Service) ListExpirations(ctx context.Context, status domain.ContractStatus) ([]transport.ClientResponse, error) {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ClientResponse, 0, len(clients))
	for _, client := range clients {
		if status != "" && client.Timing.Status != status {
			continue
		}
		out = append(out, client)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timing.DaysUntilExpiry < out[j].Timing.DaysUntilExpiry
	})
	return out, nil
}

// UpdateClient saves a client edit. Saving a BAN-flagged client with no
// qualifying billing account is rejected; this is the submit-time check,
// stronger than the close gate.
func (s *Service) UpdateClient(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req transport.UpdateClientRequest) (repository.Client, error) {
	current, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return repository.Client{}, err
	}

	includesBAN := current.IncludesBAN
	if req.IncludesBAN != nil {
		includesBAN = *req.IncludesBAN
	}

	if includesBAN {
		gate, err := s.evaluateGate(ctx, id, true)
		if err != nil {
			return repository.Client{}, err
		}
		if !gate.Satisfied {
			return repository.Client{}, apperr.Validation(msgBanGateUnmet)
		}
	}

	client, err := s.repo.UpdateClient(ctx, repository.UpdateClientParams{
		ID:           id,
		Name:         req.Name,
		BusinessName: req.BusinessName,
		VendorID:     req.VendorID,
		ClearVendor:  req.ClearVendor,
		IncludesBAN:  req.IncludesBAN,
	})
	if err != nil {
		return repository.Client{}, err
	}

	if err := s.reconcileGate(ctx, id); err != nil {
		return repository.Client{}, err
	}

	s.publishMutation(ctx, events.ActionEdit, entityClient, client.ID, actorID, client.Name)
	return client, nil
}

// DeleteClient removes a client record.
func (s *Service) DeleteClient(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.publishMutation(ctx, events.ActionDelete, entityClient, id, actorID, "")
	return nil
}

// EvaluateGate reports the BAN/subscriber requirement for a client using
// freshly fetched storage state.
func (s *Service) EvaluateGate(ctx context.Context, clientID uuid.UUID) (domain.GateResult, error) {
	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return domain.GateResult{}, err
	}
	return s.evaluateGate(ctx, clientID, client.IncludesBAN)
}

// CloseEditSession closes the edit session for a client. It is blocked with a
// validation error while the BAN gate is unsatisfied.
func (s *Service) CloseEditSession(ctx context.Context, clientID uuid.UUID) error {
	gate, err := s.EvaluateGate(ctx, clientID)
	if err != nil {
		return err
	}
	if !gate.Satisfied {
		return apperr.Validation(msgSessionOpen)
	}
	return s.repo.SetClientPending(ctx, clientID, false)
}

// CreateBan adds a billing account to a client and reconciles the gate.
func (s *Service) CreateBan(ctx context.Context, actorID uuid.UUID, clientID uuid.UUID, req transport.CreateBanRequest) (repository.BAN, error) {
	if _, err := s.repo.GetClient(ctx, clientID); err != nil {
		return repository.BAN{}, err
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	ban, err := s.repo.CreateBan(ctx, repository.CreateBanParams{
		BanNumber: req.BanNumber,
		ClientID:  clientID,
		Status:    status,
	})
	if err != nil {
		return repository.BAN{}, err
	}

	if err := s.reconcileGate(ctx, clientID); err != nil {
		return repository.BAN{}, err
	}

	s.publishMutation(ctx, events.ActionCreate, entityBan, ban.ID, actorID, ban.BanNumber)
	return ban, nil
}

// ListBans returns a client's billing accounts.
func (s *Service) ListBans(ctx context.Context, clientID uuid.UUID) ([]repository.BAN, error) {
	return s.repo.ListBansByClient(ctx, clientID)
}

// DeleteBan removes a billing account and reconciles the owning client's gate.
func (s *Service) DeleteBan(ctx context.Context, actorID uuid.UUID, banID uuid.UUID) error {
	ban, err := s.repo.GetBan(ctx, banID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteBan(ctx, banID); err != nil {
		return err
	}
	if err := s.reconcileGate(ctx, ban.ClientID); err != nil {
		return err
	}

	s.publishMutation(ctx, events.ActionDelete, entityBan, banID, actorID, ban.BanNumber)
	return nil
}

// CreateSubscriber adds a subscriber line under a BAN. The contract end date
// is derived from the remaining payments; the phone is normalized to E.164.
func (s *Service) CreateSubscriber(ctx context.Context, actorID uuid.UUID, banID uuid.UUID, req transport.CreateSubscriberRequest) (repository.Subscriber, error) {
	ban, err := s.repo.GetBan(ctx, banID)
	if err != nil {
		return repository.Subscriber{}, err
	}

	endDate := domain.DeriveContractEnd(s.now(), req.RemainingPayments)
	subscriber, err := s.repo.CreateSubscriber(ctx, repository.CreateSubscriberParams{
		BanID:             banID,
		Phone:             phone.NormalizeE164(req.Phone),
		ContractEndDate:   &endDate,
		RemainingPayments: req.RemainingPayments,
	})
	if err != nil {
		return repository.Subscriber{}, err
	}

	if err := s.reconcileGate(ctx, ban.ClientID); err != nil {
		return repository.Subscriber{}, err
	}

	s.publishMutation(ctx, events.ActionCreate, entitySubscriber, subscriber.ID, actorID, subscriber.Phone)
	return subscriber, nil
}

// ListSubscribers returns a BAN's subscriber lines.
func (s *Service) ListSubscribers(ctx context.Context, banID uuid.UUID) ([]repository.Subscriber, error) {
	return s.repo.ListSubscribersByBan(ctx, banID)
}

// DeleteSubscriber removes a subscriber line and reconciles the client's gate.
func (s *Service) DeleteSubscriber(ctx context.Context, actorID uuid.UUID, banID, subscriberID uuid.UUID) error {
	ban, err := s.repo.GetBan(ctx, banID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSubscriber(ctx, subscriberID); err != nil {
		return err
	}
	if err := s.reconcileGate(ctx, ban.ClientID); err != nil {
		return err
	}

	s.publishMutation(ctx, events.ActionDelete, entitySubscriber, subscriberID, actorID, "")
	return nil
}

// classifyClient computes the contract timing for a client from its
// subscriber lines.
func (s *Service) classifyClient(ctx context.Context, clientID uuid.UUID) (domain.ContractTiming, error) {
	subscribers, err := s.repo.ListSubscribersByClient(ctx, clientID)
	if err != nil {
		return domain.ContractTiming{}, err
	}

	terms := make([]domain.SubscriberTerm, 0, len(subscribers))
	for _, subscriber := range subscribers {
		terms = append(terms, domain.SubscriberTerm{ContractEndDate: subscriber.ContractEndDate})
	}
	return domain.ClassifyClientContracts(terms, s.now()), nil
}

func (s *Service) evaluateGate(ctx context.Context, clientID uuid.UUID, includesBAN bool) (domain.GateResult, error) {
	bans, err := s.repo.ListBansByClient(ctx, clientID)
	if err != nil {
		return domain.GateResult{}, err
	}

	structures := make([]domain.BanStructure, 0, len(bans))
	for _, ban := range bans {
		structures = append(structures, domain.BanStructure{SubscriberCount: ban.SubscriberCount})
	}
	return domain.EvaluateBanGate(includesBAN, structures), nil
}

// reconcileGate re-reads storage truth and updates the client's pending flag.
// The flag is never trusted as authoritative client-side state; two operators
// editing the same client must both converge on what storage actually holds.
func (s *Service) reconcileGate(ctx context.Context, clientID uuid.UUID) error {
	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return err
	}

	gate, err := s.evaluateGate(ctx, clientID, client.IncludesBAN)
	if err != nil {
		return err
	}

	pending := client.IncludesBAN && !gate.Satisfied
	if pending == client.Pending {
		return nil
	}
	return s.repo.SetClientPending(ctx, clientID, pending)
}

func (s *Service) publishMutation(ctx context.Context, action, entityType string, entityID, actorID uuid.UUID, summary string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Summary:    summary,
	})
}
