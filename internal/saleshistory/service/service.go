package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	"salesops_backend/internal/saleshistory/repository"
	"salesops_backend/platform/logger"
)

// GoalRecorder advances vendor goal progress when a sale lands. Satisfied by
// the goals service.
type GoalRecorder interface {
	RecordSaleProgress(ctx context.Context, vendorID, productID uuid.UUID, year, month int, amount float64) error
}

// Service records and reads the sales history ledger.
type Service struct {
	repo  repository.Repository
	goals GoalRecorder
	log   *logger.Logger
}

// New creates a new sales history service.
func New(repo repository.Repository, goals GoalRecorder, log *logger.Logger) *Service {
	return &Service{repo: repo, goals: goals, log: log}
}

// Subscribe attaches the recorder to prospect completion events.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.ProspectCompleted{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		completed, ok := e.(events.ProspectCompleted)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", e)
		}
		return s.recordCompletion(ctx, completed)
	}))
}

func (s *Service) recordCompletion(ctx context.Context, e events.ProspectCompleted) error {
	sale, err := s.repo.RecordSale(ctx, repository.RecordSaleParams{
		ProspectID:  e.ProspectID,
		ClientID:    e.ClientID,
		VendorID:    e.VendorID,
		ProductID:   e.ProductID,
		TotalAmount: e.TotalAmount,
		SaleDate:    e.CompletedDate,
	})
	if err != nil {
		return err
	}
	s.log.Info("sale recorded", "sale_id", sale.ID.String(), "prospect_id", e.ProspectID.String())

	if e.VendorID != nil && e.ProductID != nil {
		year, month := e.CompletedDate.Year(), int(e.CompletedDate.Month())
		if err := s.goals.RecordSaleProgress(ctx, *e.VendorID, *e.ProductID, year, month, e.TotalAmount); err != nil {
			return fmt.Errorf("advance goal progress: %w", err)
		}
	}
	return nil
}

// ListSales returns sale records for the given filter.
func (s *Service) ListSales(ctx context.Context, filter repository.ListFilter) ([]repository.Sale, error) {
	return s.repo.ListSales(ctx, filter)
}
