package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	"salesops_backend/internal/pipeline/domain"
	"salesops_backend/internal/pipeline/repository"
	"salesops_backend/internal/pipeline/transport"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

type fakeRepo struct {
	clientVendors map[uuid.UUID]*uuid.UUID
	prospects     map[uuid.UUID]repository.Prospect
	callLogs      map[uuid.UUID][]repository.CallLog
	steps         []domain.Step

	clearedVendors []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clientVendors: make(map[uuid.UUID]*uuid.UUID),
		prospects:     make(map[uuid.UUID]repository.Prospect),
		callLogs:      make(map[uuid.UUID][]repository.CallLog),
	}
}

func (f *fakeRepo) GetClientVendor(_ context.Context, clientID uuid.UUID) (*uuid.UUID, error) {
	vendorID, ok := f.clientVendors[clientID]
	if !ok {
		return nil, apperr.NotFound("client not found")
	}
	return vendorID, nil
}

func (f *fakeRepo) CreateProspect(_ context.Context, params repository.CreateProspectParams) (repository.Prospect, error) {
	vendorID := params.VendorID
	p := repository.Prospect{
		ID:       uuid.New(),
		ClientID: params.ClientID,
		VendorID: &vendorID,
		StepID:   params.StepID,
		IsActive: true,
		Notes:    params.Notes,
	}
	f.prospects[p.ID] = p
	return p, nil
}

func (f *fakeRepo) GetProspect(_ context.Context, id uuid.UUID) (repository.Prospect, error) {
	p, ok := f.prospects[id]
	if !ok {
		return repository.Prospect{}, apperr.NotFound("prospect not found")
	}
	return p, nil
}

func (f *fakeRepo) ListProspects(_ context.Context, vendorID *uuid.UUID, activeOnly bool) ([]repository.Prospect, error) {
	out := make([]repository.Prospect, 0)
	for _, p := range f.prospects {
		if activeOnly && (!p.IsActive || p.IsCompleted) {
			continue
		}
		if vendorID != nil && (p.VendorID == nil || *p.VendorID != *vendorID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) HasActiveProspect(_ context.Context, clientID uuid.UUID) (bool, error) {
	for _, p := range f.prospects {
		if p.ClientID == clientID && p.IsActive && !p.IsCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CompleteProspect(_ context.Context, id uuid.UUID, completedDate time.Time, totalAmount float64) (repository.Prospect, error) {
	p, ok := f.prospects[id]
	if !ok {
		return repository.Prospect{}, apperr.NotFound("prospect not found")
	}
	p.IsCompleted = true
	p.CompletedDate = &completedDate
	p.TotalAmount = totalAmount
	f.prospects[id] = p
	return p, nil
}

func (f *fakeRepo) ReturnProspect(_ context.Context, params repository.ReturnProspectParams) (repository.Prospect, error) {
	p, ok := f.prospects[params.ProspectID]
	if !ok {
		return repository.Prospect{}, apperr.NotFound("prospect not found")
	}
	p.IsActive = false
	p.Notes = params.Notes
	f.prospects[params.ProspectID] = p
	f.clearedVendors = append(f.clearedVendors, params.ClientID)
	return p, nil
}

func (f *fakeRepo) AppendCallLog(_ context.Context, params repository.AppendCallLogParams) (repository.CallLog, error) {
	entry := repository.CallLog{
		ID:            uuid.New(),
		FollowUpID:    params.FollowUpID,
		CallDate:      params.CallDate,
		Notes:         params.Notes,
		Outcome:       params.Outcome,
		NextCallDate:  params.NextCallDate,
		StepID:        params.StepID,
		StepCompleted: params.StepCompleted,
	}
	f.callLogs[params.FollowUpID] = append(f.callLogs[params.FollowUpID], entry)

	if params.UpdateBookkeeping {
		p := f.prospects[params.FollowUpID]
		p.LastCallDate = params.LastCallDate
		p.NextCallDate = params.ProspectNextCall
		p.CallCount = params.CallCount
		f.prospects[params.FollowUpID] = p
	}
	return entry, nil
}

func (f *fakeRepo) ListCallLogs(_ context.Context, followUpID uuid.UUID) ([]repository.CallLog, error) {
	return f.callLogs[followUpID], nil
}

func (f *fakeRepo) ListSteps(context.Context) ([]domain.Step, error) { return f.steps, nil }

func (f *fakeRepo) CreateStep(_ context.Context, params repository.CreateStepParams) (domain.Step, error) {
	step := domain.Step{ID: uuid.New(), Name: params.Name, OrderIndex: params.OrderIndex}
	f.steps = append(f.steps, step)
	return step, nil
}

func (f *fakeRepo) DeleteStep(context.Context, uuid.UUID) error { return nil }

func (f *fakeRepo) ListPriorities(context.Context) ([]repository.Priority, error) { return nil, nil }

func (f *fakeRepo) CreatePriority(_ context.Context, params repository.CreatePriorityParams) (repository.Priority, error) {
	return repository.Priority{ID: uuid.New(), Name: params.Name, Color: params.Color, OrderIndex: params.OrderIndex, Active: true}, nil
}

func (f *fakeRepo) DeletePriority(context.Context, uuid.UUID) error { return nil }

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	out := make([]string, 0, len(b.published))
	for _, e := range b.published {
		out = append(out, e.EventName())
	}
	return out
}

func newTestService(repo repository.Repository, bus events.Bus, now time.Time) *Service {
	return New(repo, bus, logger.New("test"), func() time.Time { return now })
}

func TestSendToFollowUpRequiresVendor(t *testing.T) {
	repo := newFakeRepo()
	clientID := uuid.New()
	repo.clientVendors[clientID] = nil

	svc := newTestService(repo, &recordingBus{}, time.Now())

	_, err := svc.SendToFollowUp(context.Background(), uuid.New(), transport.SendToFollowUpRequest{ClientID: clientID})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSendToFollowUpRejectsSecondActiveProspect(t *testing.T) {
	repo := newFakeRepo()
	clientID := uuid.New()
	vendorID := uuid.New()
	repo.clientVendors[clientID] = &vendorID

	bus := &recordingBus{}
	svc := newTestService(repo, bus, time.Now())

	if _, err := svc.SendToFollowUp(context.Background(), uuid.New(), transport.SendToFollowUpRequest{ClientID: clientID}); err != nil {
		t.Fatalf("first send: %v", err)
	}
	_, err := svc.SendToFollowUp(context.Background(), uuid.New(), transport.SendToFollowUpRequest{ClientID: clientID})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %v", bus.names())
	}
}

func TestCompleteSalePublishesEventWithAmount(t *testing.T) {
	repo := newFakeRepo()
	clientID := uuid.New()
	vendorID := uuid.New()
	repo.clientVendors[clientID] = &vendorID

	bus := &recordingBus{}
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, bus, now)

	created, err := svc.SendToFollowUp(context.Background(), uuid.New(), transport.SendToFollowUpRequest{ClientID: clientID})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	completed, err := svc.CompleteSale(context.Background(), uuid.New(), created.ID, transport.CompleteSaleRequest{TotalAmount: 1250})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.State != domain.StateCompleted {
		t.Fatalf("state = %s, want completed", completed.State)
	}
	if completed.CompletedDate == nil || !completed.CompletedDate.Equal(now) {
		t.Fatalf("completed date = %v, want %v", completed.CompletedDate, now)
	}

	last := bus.published[len(bus.published)-1]
	evt, ok := last.(events.ProspectCompleted)
	if !ok {
		t.Fatalf("last event = %T", last)
	}
	if evt.TotalAmount != 1250 {
		t.Fatalf("total amount = %v", evt.TotalAmount)
	}

	// Terminal: completing again conflicts.
	if _, err := svc.CompleteSale(context.Background(), uuid.New(), created.ID, transport.CompleteSaleRequest{}); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on repeat completion, got %v", err)
	}
}

func TestReturnToPoolClearsVendorAndKeepsReason(t *testing.T) {
	repo := newFakeRepo()
	clientID := uuid.New()
	vendorID := uuid.New()
	repo.clientVendors[clientID] = &vendorID

	bus := &recordingBus{}
	svc := newTestService(repo, bus, time.Now())

	created, err := svc.SendToFollowUp(context.Background(), uuid.New(), transport.SendToFollowUpRequest{
		ClientID: clientID,
		Notes:    "initial outreach",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if _, err := svc.ReturnToPool(context.Background(), uuid.New(), created.ID, transport.ReturnToPoolRequest{Reason: "  "}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation for blank reason, got %v", err)
	}

	returned, err := svc.ReturnToPool(context.Background(), uuid.New(), created.ID, transport.ReturnToPoolRequest{Reason: "no budget this quarter"})
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if returned.State != domain.StateReturned {
		t.Fatalf("state = %s, want returned", returned.State)
	}
	if returned.Notes != "initial outreach\nno budget this quarter" {
		t.Fatalf("notes = %q", returned.Notes)
	}
	if len(repo.clearedVendors) != 1 || repo.clearedVendors[0] != clientID {
		t.Fatalf("vendor clear = %v", repo.clearedVendors)
	}
}

func TestLogCallAdvancesBookkeepingOnlyWhenNextCallSet(t *testing.T) {
	repo := newFakeRepo()
	clientID := uuid.New()
	vendorID := uuid.New()
	repo.clientVendors[clientID] = &vendorID

	svc := newTestService(repo, &recordingBus{}, time.Now())

	created, err := svc.SendToFollowUp(context.Background(), uuid.New(), transport.SendToFollowUpRequest{ClientID: clientID})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if _, err := svc.LogCall(context.Background(), uuid.New(), created.ID, transport.LogCallRequest{
		Notes:   "left message",
		Outcome: "voicemail",
	}); err != nil {
		t.Fatalf("bare entry: %v", err)
	}
	p, _ := repo.GetProspect(context.Background(), created.ID)
	if p.CallCount != 0 || p.NextCallDate != nil {
		t.Fatalf("bare entry mutated bookkeeping: count=%d next=%v", p.CallCount, p.NextCallDate)
	}

	next := time.Now().Add(48 * time.Hour)
	if _, err := svc.LogCall(context.Background(), uuid.New(), created.ID, transport.LogCallRequest{
		Notes:        "spoke with owner, call back thursday",
		Outcome:      "completed",
		NextCallDate: &next,
	}); err != nil {
		t.Fatalf("scheduling entry: %v", err)
	}
	p, _ = repo.GetProspect(context.Background(), created.ID)
	if p.CallCount != 1 {
		t.Fatalf("call count = %d, want 1", p.CallCount)
	}
	if p.NextCallDate == nil || !p.NextCallDate.Equal(next) {
		t.Fatalf("next call = %v, want %v", p.NextCallDate, next)
	}

	if _, err := svc.LogCall(context.Background(), uuid.New(), created.ID, transport.LogCallRequest{
		Notes:   "hello",
		Outcome: "carrier_pigeon",
	}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation for unknown outcome, got %v", err)
	}
}

func TestStepProgressUsesLedgerAndCurrentStep(t *testing.T) {
	repo := newFakeRepo()
	clientID := uuid.New()
	vendorID := uuid.New()
	repo.clientVendors[clientID] = &vendorID

	first := domain.Step{ID: uuid.New(), Name: "contact", OrderIndex: 0}
	second := domain.Step{ID: uuid.New(), Name: "quote", OrderIndex: 1}
	third := domain.Step{ID: uuid.New(), Name: "close", OrderIndex: 2}
	repo.steps = []domain.Step{first, second, third}

	svc := newTestService(repo, &recordingBus{}, time.Now())

	created, err := svc.SendToFollowUp(context.Background(), uuid.New(), transport.SendToFollowUpRequest{
		ClientID: clientID,
		StepID:   &second.ID,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if _, err := svc.LogCall(context.Background(), uuid.New(), created.ID, transport.LogCallRequest{
		Notes:         "made first contact",
		Outcome:       "completed",
		StepID:        &first.ID,
		StepCompleted: true,
	}); err != nil {
		t.Fatalf("log call: %v", err)
	}

	progress, err := svc.StepProgress(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.ProgressPercent != 33 {
		t.Fatalf("percent = %d, want 33", progress.ProgressPercent)
	}
	if !progress.Completion[0].Completed || progress.Completion[1].Completed {
		t.Fatalf("completion = %+v", progress.Completion)
	}
}
