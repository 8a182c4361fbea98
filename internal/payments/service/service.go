package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	"salesops_backend/internal/payments/repository"
	"salesops_backend/internal/payments/transport"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

const msgAmountPositive = "payment amount must be positive"

// Service provides business logic for the payment ledger.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new payments service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, bus: bus, log: log, now: now}
}

// Record persists a payment and announces it.
func (s *Service) Record(ctx context.Context, actorID uuid.UUID, req transport.RecordPaymentRequest) (repository.Payment, error) {
	if req.Amount <= 0 {
		return repository.Payment{}, apperr.Validation(msgAmountPositive)
	}

	paidAt := s.now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	payment, err := s.repo.Create(ctx, repository.CreatePaymentParams{
		ClientID:   req.ClientID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		Notes:      req.Notes,
		PaidAt:     paidAt,
		RecordedBy: actorID,
	})
	if err != nil {
		return repository.Payment{}, err
	}

	s.bus.Publish(ctx, events.PaymentRecorded{
		BaseEvent: events.NewBaseEvent(),
		PaymentID: payment.ID,
		ClientID:  payment.ClientID,
		Amount:    payment.Amount,
		ActorID:   actorID,
	})
	return payment, nil
}

// ListByClient returns a client's payment history.
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]repository.Payment, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Delete removes a payment record.
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     events.ActionDelete,
		EntityType: "payment",
		EntityID:   id,
		ActorID:    actorID,
	})
	return nil
}
