package service

import (
	"context"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	"salesops_backend/internal/vendors/repository"
	"salesops_backend/internal/vendors/transport"
	"salesops_backend/platform/logger"
)

const entityVendor = "vendor"

// Service provides business logic for the vendor catalog.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new vendors service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create adds a vendor.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req transport.CreateVendorRequest) (repository.Vendor, error) {
	vendor, err := s.repo.Create(ctx, repository.CreateVendorParams{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return repository.Vendor{}, err
	}

	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     events.ActionCreate,
		EntityType: entityVendor,
		EntityID:   vendor.ID,
		ActorID:    actorID,
		Summary:    vendor.Name,
	})
	return vendor, nil
}

// Get fetches a vendor by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Vendor, error) {
	return s.repo.Get(ctx, id)
}

// Resolve finds a vendor by id when given, otherwise by case-insensitive
// name. Goal rows written before id-based references resolve through the
// name path.
func (s *Service) Resolve(ctx context.Context, id *uuid.UUID, name string) (repository.Vendor, error) {
	if id != nil {
		return s.repo.Get(ctx, *id)
	}
	return s.repo.GetByName(ctx, name)
}

// List returns the vendor catalog.
func (s *Service) List(ctx context.Context) ([]repository.Vendor, error) {
	return s.repo.List(ctx)
}

// Update modifies a vendor.
func (s *Service) Update(ctx context.Context, actorID, id uuid.UUID, req transport.UpdateVendorRequest) (repository.Vendor, error) {
	vendor, err := s.repo.Update(ctx, id, repository.UpdateVendorParams{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: req.Active,
	})
	if err != nil {
		return repository.Vendor{}, err
	}

	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     events.ActionEdit,
		EntityType: entityVendor,
		EntityID:   vendor.ID,
		ActorID:    actorID,
		Summary:    vendor.Name,
	})
	return vendor, nil
}

// Delete removes a vendor.
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     events.ActionDelete,
		EntityType: entityVendor,
		EntityID:   id,
		ActorID:    actorID,
	})
	return nil
}
