package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	"salesops_backend/internal/notification/repository"
	"salesops_backend/platform/logger"
)

const (
	kindCallReminder = "call_reminder"
	kindNewProspect  = "new_prospect"
)

// Service creates and reads in-app notifications.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new notification service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Subscribe attaches notification creation to the events that surface to
// vendors.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.CallReminderDue{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		due, ok := e.(events.CallReminderDue)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", e)
		}
		_, err := s.repo.Create(ctx, repository.CreateParams{
			VendorID: due.VendorID,
			Kind:     kindCallReminder,
			Title:    "Scheduled call due",
			Body:     "Prospect " + due.ProspectID.String() + " has a call scheduled for now.",
		})
		return err
	}))

	bus.Subscribe(events.ProspectSentToFollowUp{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		sent, ok := e.(events.ProspectSentToFollowUp)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", e)
		}
		_, err := s.repo.Create(ctx, repository.CreateParams{
			VendorID: sent.VendorID,
			Kind:     kindNewProspect,
			Title:    "New prospect assigned",
			Body:     "Client " + sent.ClientID.String() + " entered your follow-up queue.",
		})
		return err
	}))
}

// ListForVendor returns a vendor's notifications.
func (s *Service) ListForVendor(ctx context.Context, vendorID uuid.UUID, unreadOnly bool) ([]repository.Notification, error) {
	return s.repo.ListByVendor(ctx, vendorID, unreadOnly)
}

// UnreadCount returns the vendor's unread notification count.
func (s *Service) UnreadCount(ctx context.Context, vendorID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, vendorID)
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead flags all of a vendor's notifications as read.
func (s *Service) MarkAllRead(ctx context.Context, vendorID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, vendorID)
}
