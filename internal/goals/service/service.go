package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"salesops_backend/internal/events"
	"salesops_backend/internal/goals/domain"
	"salesops_backend/internal/goals/repository"
	"salesops_backend/internal/goals/transport"
	vendorrepo "salesops_backend/internal/vendors/repository"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

const (
	entityProduct     = "product"
	entityProductGoal = "product_goal"
	entityVendorGoal  = "vendor_goal"

	msgVendorRefRequired = "a vendor id or vendor name is required"
)

// VendorDirectory resolves vendor records for scoping. Satisfied by the
// vendors service.
type VendorDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (vendorrepo.Vendor, error)
}

// Service provides business logic for products, goals, and the aggregation
// engine.
type Service struct {
	repo    repository.Repository
	vendors VendorDirectory
	bus     events.Bus
	log     *logger.Logger
}

// New creates a new goals service.
func New(repo repository.Repository, vendors VendorDirectory, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, vendors: vendors, bus: bus, log: log}
}

// Aggregate runs the aggregation engine over stored goals. When vendorID is
// non-nil the output is scoped to that vendor's rows; legacy goal rows
// without a vendor id are matched by name through the resolved vendor
// record.
func (s *Service) Aggregate(ctx context.Context, filter repository.PeriodFilter, vendorID *uuid.UUID) ([]domain.AggregatedRow, error) {
	var (
		productGoals []repository.ProductGoalRow
		vendorGoals  []repository.VendorGoalRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		productGoals, err = s.repo.ListProductGoals(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		vendorGoals, err = s.repo.ListVendorGoals(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pgs := make([]domain.ProductGoal, 0, len(productGoals))
	for _, g := range productGoals {
		pgs = append(pgs, g.Domain())
	}
	vgs := make([]domain.VendorGoal, 0, len(vendorGoals))
	for _, g := range vendorGoals {
		vgs = append(vgs, g.Domain())
	}

	var scope *domain.Scope
	if vendorID != nil {
		scope = &domain.Scope{VendorID: vendorID}
		if vendor, err := s.vendors.Get(ctx, *vendorID); err == nil {
			scope.VendorName = vendor.Name
		}
	}

	return domain.Aggregate(pgs, vgs, scope), nil
}

// ListProducts returns the product catalog.
func (s *Service) ListProducts(ctx context.Context) ([]repository.Product, error) {
	return s.repo.ListProducts(ctx)
}

// CreateProduct adds a product.
func (s *Service) CreateProduct(ctx context.Context, actorID uuid.UUID, req transport.CreateProductRequest) (repository.Product, error) {
	product, err := s.repo.CreateProduct(ctx, req.Name)
	if err != nil {
		return repository.Product{}, err
	}

	s.publishMutation(ctx, events.ActionCreate, entityProduct, product.ID, actorID, product.Name)
	return product, nil
}

// DeleteProduct retires a product.
func (s *Service) DeleteProduct(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.publishMutation(ctx, events.ActionDelete, entityProduct, id, actorID, "")
	return nil
}

// ListProductGoals returns business goals for a period.
func (s *Service) ListProductGoals(ctx context.Context, filter repository.PeriodFilter) ([]repository.ProductGoalRow, error) {
	return s.repo.ListProductGoals(ctx, filter)
}

// UpsertProductGoal writes a business goal.
func (s *Service) UpsertProductGoal(ctx context.Context, actorID uuid.UUID, req transport.UpsertProductGoalRequest) (repository.ProductGoalRow, error) {
	goal, err := s.repo.UpsertProductGoal(ctx, repository.UpsertProductGoalParams{
		ProductID:         req.ProductID,
		Year:              req.Year,
		Month:             req.Month,
		TotalTargetAmount: req.TotalTargetAmount,
		CurrentAmount:     req.CurrentAmount,
	})
	if err != nil {
		return repository.ProductGoalRow{}, err
	}

	s.publishMutation(ctx, events.ActionEdit, entityProductGoal, goal.ID, actorID, "")
	return goal, nil
}

// DeleteProductGoal removes a business goal.
func (s *Service) DeleteProductGoal(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.DeleteProductGoal(ctx, id); err != nil {
		return err
	}
	s.publishMutation(ctx, events.ActionDelete, entityProductGoal, id, actorID, "")
	return nil
}

// ListVendorGoals returns vendor goals for a period.
func (s *Service) ListVendorGoals(ctx context.Context, filter repository.PeriodFilter) ([]repository.VendorGoalRow, error) {
	return s.repo.ListVendorGoals(ctx, filter)
}

// CreateVendorGoal writes a vendor goal. New rows should carry a vendor id;
// a bare name is accepted only for imports of legacy data.
func (s *Service) CreateVendorGoal(ctx context.Context, actorID uuid.UUID, req transport.CreateVendorGoalRequest) (repository.VendorGoalRow, error) {
	if req.VendorID == nil && req.VendorName == "" {
		return repository.VendorGoalRow{}, apperr.Validation(msgVendorRefRequired)
	}
	if req.VendorID != nil {
		if _, err := s.vendors.Get(ctx, *req.VendorID); err != nil {
			return repository.VendorGoalRow{}, err
		}
	}

	goal, err := s.repo.CreateVendorGoal(ctx, repository.CreateVendorGoalParams{
		VendorID:      req.VendorID,
		VendorName:    req.VendorName,
		ProductID:     req.ProductID,
		Year:          req.Year,
		Month:         req.Month,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	})
	if err != nil {
		return repository.VendorGoalRow{}, err
	}

	s.publishMutation(ctx, events.ActionCreate, entityVendorGoal, goal.ID, actorID, "")
	return goal, nil
}

// UpdateVendorGoal adjusts a vendor goal's amounts.
func (s *Service) UpdateVendorGoal(ctx context.Context, actorID, id uuid.UUID, req transport.UpdateVendorGoalRequest) (repository.VendorGoalRow, error) {
	goal, err := s.repo.UpdateVendorGoal(ctx, id, repository.UpdateVendorGoalParams{
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	})
	if err != nil {
		return repository.VendorGoalRow{}, err
	}

	s.publishMutation(ctx, events.ActionEdit, entityVendorGoal, goal.ID, actorID, "")
	return goal, nil
}

// DeleteVendorGoal removes a vendor goal.
func (s *Service) DeleteVendorGoal(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.DeleteVendorGoal(ctx, id); err != nil {
		return err
	}
	s.publishMutation(ctx, events.ActionDelete, entityVendorGoal, id, actorID, "")
	return nil
}

// RecordSaleProgress advances the vendor's goal amounts for the sale's
// product and period. A sale with no matching goal rows is not an error.
func (s *Service) RecordSaleProgress(ctx context.Context, vendorID, productID uuid.UUID, year, month int, amount float64) error {
	advanced, err := s.repo.AddVendorProgress(ctx, vendorID, productID, year, month, amount)
	if err != nil {
		return err
	}
	if advanced == 0 {
		s.log.Info("sale had no matching vendor goal rows",
			"vendor_id", vendorID.String(), "product_id", productID.String())
	}
	return nil
}

func (s *Service) publishMutation(ctx context.Context, action, entityType string, entityID, actorID uuid.UUID, summary string) {
	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Summary:    summary,
	})
}
