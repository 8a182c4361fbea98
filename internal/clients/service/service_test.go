package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/clients/repository"
	"salesops_backend/internal/clients/transport"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

type fakeRepo struct {
	clients     map[uuid.UUID]repository.Client
	bans        map[uuid.UUID]repository.BAN
	subscribers map[uuid.UUID]repository.Subscriber
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:     make(map[uuid.UUID]repository.Client),
		bans:        make(map[uuid.UUID]repository.BAN),
		subscribers: make(map[uuid.UUID]repository.Subscriber),
	}
}

func (f *fakeRepo) CreateClient(_ context.Context, params repository.CreateClientParams) (repository.Client, error) {
	client := repository.Client{
		ID:           uuid.New(),
		Name:         params.Name,
		BusinessName: params.BusinessName,
		VendorID:     params.VendorID,
		IncludesBAN:  params.IncludesBAN,
		Pending:      params.IncludesBAN,
	}
	f.clients[client.ID] = client
	return client, nil
}

func (f *fakeRepo) GetClient(_ context.Context, id uuid.UUID) (repository.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return repository.Client{}, apperr.NotFound("client not found")
	}
	return client, nil
}

func (f *fakeRepo) ListClients(context.Context) ([]repository.Client, error) {
	out := make([]repository.Client, 0, len(f.clients))
	for _, client := range f.clients {
		out = append(out, client)
	}
	return out, nil
}

func (f *fakeRepo) UpdateClient(_ context.Context, params repository.UpdateClientParams) (repository.Client, error) {
	client, ok := f.clients[params.ID]
	if !ok {
		return repository.Client{}, apperr.NotFound("client not found")
	}
	if params.Name != nil {
		client.Name = *params.Name
	}
	if params.BusinessName != nil {
		client.BusinessName = *params.BusinessName
	}
	if params.ClearVendor {
		client.VendorID = nil
	} else if params.VendorID != nil {
		client.VendorID = params.VendorID
	}
	if params.IncludesBAN != nil {
		client.IncludesBAN = *params.IncludesBAN
	}
	f.clients[params.ID] = client
	return client, nil
}

func (f *fakeRepo) DeleteClient(_ context.Context, id uuid.UUID) error {
	delete(f.clients, id)
	return nil
}

func (f *fakeRepo) SetClientPending(_ context.Context, id uuid.UUID, pending bool) error {
	client, ok := f.clients[id]
	if !ok {
		return apperr.NotFound("client not found")
	}
	client.Pending = pending
	f.clients[id] = client
	return nil
}

func (f *fakeRepo) CreateBan(_ context.Context, params repository.CreateBanParams) (repository.BAN, error) {
	ban := repository.BAN{
		ID:        uuid.New(),
		BanNumber: params.BanNumber,
		ClientID:  params.ClientID,
		Status:    params.Status,
	}
	f.bans[ban.ID] = ban
	return ban, nil
}

func (f *fakeRepo) GetBan(_ context.Context, id uuid.UUID) (repository.BAN, error) {
	ban, ok := f.bans[id]
	if !ok {
		return repository.BAN{}, apperr.NotFound("ban not found")
	}
	ban.SubscriberCount = f.countSubscribers(id)
	return ban, nil
}

func (f *fakeRepo) ListBansByClient(_ context.Context, clientID uuid.UUID) ([]repository.BAN, error) {
	out := make([]repository.BAN, 0)
	for _, ban := range f.bans {
		if ban.ClientID != clientID {
			continue
		}
		ban.SubscriberCount = f.countSubscribers(ban.ID)
		out = append(out, ban)
	}
	return out, nil
}

func (f *fakeRepo) DeleteBan(_ context.Context, id uuid.UUID) error {
	delete(f.bans, id)
	for subID, sub := range f.subscribers {
		if sub.BanID == id {
			delete(f.subscribers, subID)
		}
	}
	return nil
}

func (f *fakeRepo) CreateSubscriber(_ context.Context, params repository.CreateSubscriberParams) (repository.Subscriber, error) {
	sub := repository.Subscriber{
		ID:                uuid.New(),
		BanID:             params.BanID,
		Phone:             params.Phone,
		ContractEndDate:   params.ContractEndDate,
		RemainingPayments: params.RemainingPayments,
	}
	f.subscribers[sub.ID] = sub
	return sub, nil
}

func (f *fakeRepo) ListSubscribersByBan(_ context.Context, banID uuid.UUID) ([]repository.Subscriber, error) {
	out := make([]repository.Subscriber, 0)
	for _, sub := range f.subscribers {
		if sub.BanID == banID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListSubscribersByClient(_ context.Context, clientID uuid.UUID) ([]repository.Subscriber, error) {
	out := make([]repository.Subscriber, 0)
	for _, sub := range f.subscribers {
		ban, ok := f.bans[sub.BanID]
		if ok && ban.ClientID == clientID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteSubscriber(_ context.Context, id uuid.UUID) error {
	delete(f.subscribers, id)
	return nil
}

func (f *fakeRepo) countSubscribers(banID uuid.UUID) int {
	n := 0
	for _, sub := range f.subscribers {
		if sub.BanID == banID {
			n++
		}
	}
	return n
}

func newTestService(repo repository.Repository) *Service {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return New(repo, nil, logger.New("test"), func() time.Time { return now })
}

func createBanClient(t *testing.T, svc *Service) repository.Client {
	t.Helper()
	client, err := svc.CreateClient(context.Background(), uuid.New(), transport.CreateClientRequest{
		Name:        "Acme Telecom",
		IncludesBAN: true,
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestUpdateClientRejectedWhileGateUnmet(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	client := createBanClient(t, svc)

	name := "Acme Telecom Inc"
	_, err := svc.UpdateClient(context.Background(), uuid.New(), client.ID, transport.UpdateClientRequest{Name: &name})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateClientAllowedOnceGateSatisfied(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	client := createBanClient(t, svc)

	ban, err := svc.CreateBan(context.Background(), uuid.New(), client.ID, transport.CreateBanRequest{BanNumber: "123456"})
	if err != nil {
		t.Fatalf("create ban: %v", err)
	}
	if _, err := svc.CreateSubscriber(context.Background(), uuid.New(), ban.ID, transport.CreateSubscriberRequest{
		Phone:             "+15145551234",
		RemainingPayments: 12,
	}); err != nil {
		t.Fatalf("create subscriber: %v", err)
	}

	name := "Acme Telecom Inc"
	updated, err := svc.UpdateClient(context.Background(), uuid.New(), client.ID, transport.UpdateClientRequest{Name: &name})
	if err != nil {
		t.Fatalf("update after ban setup: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("expected name %q, got %q", name, updated.Name)
	}
}

func TestCloseEditSessionBlockedThenAllowed(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	client := createBanClient(t, svc)

	err := svc.CloseEditSession(context.Background(), client.ID)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error while gate unmet, got %v", err)
	}

	ban, err := svc.CreateBan(context.Background(), uuid.New(), client.ID, transport.CreateBanRequest{BanNumber: "123456"})
	if err != nil {
		t.Fatalf("create ban: %v", err)
	}

	// A BAN without subscribers still does not satisfy the gate.
	err = svc.CloseEditSession(context.Background(), client.ID)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error with empty ban, got %v", err)
	}

	if _, err := svc.CreateSubscriber(context.Background(), uuid.New(), ban.ID, transport.CreateSubscriberRequest{
		Phone:             "+15145551234",
		RemainingPayments: 12,
	}); err != nil {
		t.Fatalf("create subscriber: %v", err)
	}

	if err := svc.CloseEditSession(context.Background(), client.ID); err != nil {
		t.Fatalf("close after ban setup: %v", err)
	}
	stored, err := repo.GetClient(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if stored.Pending {
		t.Fatalf("expected pending cleared after close")
	}
}

func TestPendingRecomputedFromStorageAfterSubscriberDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	client := createBanClient(t, svc)

	ban, err := svc.CreateBan(context.Background(), uuid.New(), client.ID, transport.CreateBanRequest{BanNumber: "123456"})
	if err != nil {
		t.Fatalf("create ban: %v", err)
	}
	sub, err := svc.CreateSubscriber(context.Background(), uuid.New(), ban.ID, transport.CreateSubscriberRequest{
		Phone:             "+15145551234",
		RemainingPayments: 12,
	})
	if err != nil {
		t.Fatalf("create subscriber: %v", err)
	}

	stored, _ := repo.GetClient(context.Background(), client.ID)
	if stored.Pending {
		t.Fatalf("expected pending cleared once subscriber exists")
	}

	if err := svc.DeleteSubscriber(context.Background(), uuid.New(), ban.ID, sub.ID); err != nil {
		t.Fatalf("delete subscriber: %v", err)
	}

	stored, _ = repo.GetClient(context.Background(), client.ID)
	if !stored.Pending {
		t.Fatalf("expected pending set again after last subscriber removed")
	}

	gate, err := svc.EvaluateGate(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("evaluate gate: %v", err)
	}
	if gate.Satisfied {
		t.Fatalf("expected gate unsatisfied after subscriber delete")
	}
}
