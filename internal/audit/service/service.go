package service

import (
	"context"
	"fmt"

	"salesops_backend/internal/audit/repository"
	"salesops_backend/internal/events"
	"salesops_backend/platform/logger"
)

// Service translates domain events into audit log entries.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new audit service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Subscribe attaches the audit writer to every audited event type.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.ProspectSentToFollowUp{}.EventName(), events.HandlerFunc(s.onSentToFollowUp))
	bus.Subscribe(events.ProspectReturned{}.EventName(), events.HandlerFunc(s.onReturned))
	bus.Subscribe(events.ProspectCompleted{}.EventName(), events.HandlerFunc(s.onCompleted))
	bus.Subscribe(events.EntityMutated{}.EventName(), events.HandlerFunc(s.onEntityMutated))
	bus.Subscribe(events.PaymentRecorded{}.EventName(), events.HandlerFunc(s.onPaymentRecorded))
}

func (s *Service) onSentToFollowUp(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.ProspectSentToFollowUp)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", e)
	}
	_, err := s.repo.Append(ctx, repository.AppendParams{
		Action:     events.ActionSendToFollowUp,
		EntityType: "prospect",
		EntityID:   evt.ProspectID,
		ActorID:    evt.ActorID,
		Details:    "client " + evt.ClientID.String(),
		OccurredAt: evt.OccurredAt(),
	})
	return err
}

func (s *Service) onReturned(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.ProspectReturned)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", e)
	}
	_, err := s.repo.Append(ctx, repository.AppendParams{
		Action:     events.ActionReturnToPool,
		EntityType: "prospect",
		EntityID:   evt.ProspectID,
		ActorID:    evt.ActorID,
		Details:    evt.Reason,
		OccurredAt: evt.OccurredAt(),
	})
	return err
}

func (s *Service) onCompleted(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.ProspectCompleted)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", e)
	}
	_, err := s.repo.Append(ctx, repository.AppendParams{
		Action:     events.ActionCompleteSale,
		EntityType: "prospect",
		EntityID:   evt.ProspectID,
		ActorID:    evt.ActorID,
		Details:    fmt.Sprintf("amount %.2f", evt.TotalAmount),
		OccurredAt: evt.OccurredAt(),
	})
	return err
}

func (s *Service) onEntityMutated(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.EntityMutated)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", e)
	}
	_, err := s.repo.Append(ctx, repository.AppendParams{
		Action:     evt.Action,
		EntityType: evt.EntityType,
		EntityID:   evt.EntityID,
		ActorID:    evt.ActorID,
		Details:    evt.Summary,
		OccurredAt: evt.OccurredAt(),
	})
	return err
}

func (s *Service) onPaymentRecorded(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.PaymentRecorded)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", e)
	}
	_, err := s.repo.Append(ctx, repository.AppendParams{
		Action:     events.ActionCreate,
		EntityType: "payment",
		EntityID:   evt.PaymentID,
		ActorID:    evt.ActorID,
		Details:    fmt.Sprintf("amount %.2f", evt.Amount),
		OccurredAt: evt.OccurredAt(),
	})
	return err
}

// List returns audit entries for the given filter.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]repository.Entry, error) {
	return s.repo.List(ctx, filter)
}
