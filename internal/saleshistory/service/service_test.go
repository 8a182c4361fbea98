package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	"salesops_backend/internal/saleshistory/repository"
	platformevents "salesops_backend/platform/events"
	"salesops_backend/platform/logger"
)

type fakeSaleRepo struct {
	recorded []repository.RecordSaleParams
}

func (f *fakeSaleRepo) RecordSale(_ context.Context, params repository.RecordSaleParams) (repository.Sale, error) {
	f.recorded = append(f.recorded, params)
	return repository.Sale{ID: uuid.New(), ProspectID: params.ProspectID, TotalAmount: params.TotalAmount}, nil
}

func (f *fakeSaleRepo) ListSales(context.Context, repository.ListFilter) ([]repository.Sale, error) {
	return nil, nil
}

type fakeGoalRecorder struct {
	calls int
	last  float64
}

func (f *fakeGoalRecorder) RecordSaleProgress(_ context.Context, _, _ uuid.UUID, _, _ int, amount float64) error {
	f.calls++
	f.last = amount
	return nil
}

func TestCompletionEventRecordsSaleAndAdvancesGoal(t *testing.T) {
	repo := &fakeSaleRepo{}
	goals := &fakeGoalRecorder{}
	bus := platformevents.NewInMemoryBus(logger.New("test"))

	svc := New(repo, goals, logger.New("test"))
	svc.Subscribe(bus)

	vendorID := uuid.New()
	productID := uuid.New()
	event := events.ProspectCompleted{
		BaseEvent:     events.NewBaseEvent(),
		ProspectID:    uuid.New(),
		ClientID:      uuid.New(),
		VendorID:      &vendorID,
		ProductID:     &productID,
		TotalAmount:   800,
		CompletedDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		ActorID:       uuid.New(),
	}
	if err := bus.PublishSync(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(repo.recorded) != 1 {
		t.Fatalf("recorded = %d, want 1", len(repo.recorded))
	}
	if repo.recorded[0].TotalAmount != 800 {
		t.Fatalf("amount = %v", repo.recorded[0].TotalAmount)
	}
	if goals.calls != 1 || goals.last != 800 {
		t.Fatalf("goal recorder calls=%d last=%v", goals.calls, goals.last)
	}
}

func TestCompletionWithoutProductSkipsGoalProgress(t *testing.T) {
	repo := &fakeSaleRepo{}
	goals := &fakeGoalRecorder{}
	bus := platformevents.NewInMemoryBus(logger.New("test"))

	svc := New(repo, goals, logger.New("test"))
	svc.Subscribe(bus)

	vendorID := uuid.New()
	if err := bus.PublishSync(context.Background(), events.ProspectCompleted{
		BaseEvent:     events.NewBaseEvent(),
		ProspectID:    uuid.New(),
		ClientID:      uuid.New(),
		VendorID:      &vendorID,
		TotalAmount:   120,
		CompletedDate: time.Now(),
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(repo.recorded) != 1 {
		t.Fatalf("recorded = %d, want 1", len(repo.recorded))
	}
	if goals.calls != 0 {
		t.Fatalf("goal recorder should not be called, got %d", goals.calls)
	}
}
