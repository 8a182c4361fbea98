package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	"salesops_backend/internal/pipeline/domain"
	"salesops_backend/internal/pipeline/repository"
	"salesops_backend/internal/pipeline/transport"
	"salesops_backend/platform/logger"
)

// Service provides business logic for the follow-up pipeline: prospect
// lifecycle transitions, the call ledger, and the step catalogs.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new pipeline service with an injectable clock.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, bus: bus, log: log, now: now}
}

// SendToFollowUp enters a client into the pipeline. The client must carry a
// vendor assignment and must not already be followed; storage truth is
// consulted for both.
func (s *Service) SendToFollowUp(ctx context.Context, actorID uuid.UUID, req transport.SendToFollowUpRequest) (transport.ProspectResponse, error) {
	vendorID, err := s.repo.GetClientVendor(ctx, req.ClientID)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	hasActive, err := s.repo.HasActiveProspect(ctx, req.ClientID)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	if err := domain.ValidateSendToFollowUp(vendorID, hasActive); err != nil {
		return transport.ProspectResponse{}, err
	}

	prospect, err := s.repo.CreateProspect(ctx, repository.CreateProspectParams{
		ClientID:   req.ClientID,
		VendorID:   *vendorID,
		PriorityID: req.PriorityID,
		StepID:     req.StepID,
		Notes:      req.Notes,
	})
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	s.log.PipelineTransition(events.ActionSendToFollowUp, prospect.ID.String(), prospect.ClientID.String())
	s.bus.Publish(ctx, events.ProspectSentToFollowUp{
		BaseEvent:  events.NewBaseEvent(),
		ProspectID: prospect.ID,
		ClientID:   prospect.ClientID,
		VendorID:   *vendorID,
		ActorID:    actorID,
	})
	return transport.FromProspect(prospect), nil
}

// GetProspect fetches one prospect with its derived state.
func (s *Service) GetProspect(ctx context.Context, id uuid.UUID) (transport.ProspectResponse, error) {
	prospect, err := s.repo.GetProspect(ctx, id)
	if err != nil {
		return transport.ProspectResponse{}, err
	}
	return transport.FromProspect(prospect), nil
}

// ListProspects returns prospects, optionally scoped to a vendor and to
// active follow-ups only.
func (s *Service) ListProspects(ctx context.Context, vendorID *uuid.UUID, activeOnly bool) ([]transport.ProspectResponse, error) {
	prospects, err := s.repo.ListProspects(ctx, vendorID, activeOnly)
	if err != nil {
		return nil, err
	}
	return transport.FromProspects(prospects), nil
}

// CompleteSale closes a prospect as a sale. Terminal: a later cycle for the
// same client starts a fresh record.
func (s *Service) CompleteSale(ctx context.Context, actorID, prospectID uuid.UUID, req transport.CompleteSaleRequest) (transport.ProspectResponse, error) {
	prospect, err := s.repo.GetProspect(ctx, prospectID)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	completedAt := s.now()
	if _, err := domain.CompleteSale(prospect.Record(), completedAt); err != nil {
		return transport.ProspectResponse{}, err
	}

	updated, err := s.repo.CompleteProspect(ctx, prospectID, completedAt, req.TotalAmount)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	s.log.PipelineTransition(events.ActionCompleteSale, prospectID.String(), updated.ClientID.String())
	s.bus.Publish(ctx, events.ProspectCompleted{
		BaseEvent:     events.NewBaseEvent(),
		ProspectID:    updated.ID,
		ClientID:      updated.ClientID,
		VendorID:      updated.VendorID,
		ProductID:     req.ProductID,
		TotalAmount:   req.TotalAmount,
		CompletedDate: completedAt,
		ActorID:       actorID,
	})
	return transport.FromProspect(updated), nil
}

// ReturnToPool sends a prospect back to the available pool. The mandatory
// reason lands in the prospect's notes, and the client loses its vendor
// assignment in the same commit.
func (s *Service) ReturnToPool(ctx context.Context, actorID, prospectID uuid.UUID, req transport.ReturnToPoolRequest) (transport.ProspectResponse, error) {
	prospect, err := s.repo.GetProspect(ctx, prospectID)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	record, err := domain.ReturnToPool(prospect.Record(), req.Reason)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	updated, err := s.repo.ReturnProspect(ctx, repository.ReturnProspectParams{
		ProspectID: prospectID,
		ClientID:   prospect.ClientID,
		Notes:      record.Notes,
	})
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	s.log.PipelineTransition(events.ActionReturnToPool, prospectID.String(), updated.ClientID.String())
	s.bus.Publish(ctx, events.ProspectReturned{
		BaseEvent:  events.NewBaseEvent(),
		ProspectID: updated.ID,
		ClientID:   updated.ClientID,
		Reason:     req.Reason,
		ActorID:    actorID,
	})
	return transport.FromProspect(updated), nil
}

// LogCall appends one entry to a prospect's call ledger. When the entry
// schedules a next call, the prospect's bookkeeping advances in the same
// commit and a reminder event goes out.
func (s *Service) LogCall(ctx context.Context, actorID, prospectID uuid.UUID, req transport.LogCallRequest) (repository.CallLog, error) {
	prospect, err := s.repo.GetProspect(ctx, prospectID)
	if err != nil {
		return repository.CallLog{}, err
	}

	callDate := s.now()
	if req.CallDate != nil {
		callDate = *req.CallDate
	}
	entry := domain.CallEntry{
		CallDate:      callDate,
		Notes:         req.Notes,
		Outcome:       domain.Outcome(req.Outcome),
		NextCallDate:  req.NextCallDate,
		StepID:        req.StepID,
		StepCompleted: req.StepCompleted,
	}
	if err := domain.ValidateCallEntry(entry); err != nil {
		return repository.CallLog{}, err
	}

	state := domain.CallState{
		LastCallDate: prospect.LastCallDate,
		NextCallDate: prospect.NextCallDate,
		CallCount:    prospect.CallCount,
	}
	next, effects := domain.ApplyCallEntry(state, entry)

	params := repository.AppendCallLogParams{
		FollowUpID:    prospectID,
		CallDate:      entry.CallDate,
		Notes:         entry.Notes,
		Outcome:       string(entry.Outcome),
		NextCallDate:  entry.NextCallDate,
		StepID:        entry.StepID,
		StepCompleted: entry.StepCompleted,
	}
	for _, effect := range effects {
		if effect == domain.EffectNextCallScheduled {
			params.UpdateBookkeeping = true
			params.LastCallDate = next.LastCallDate
			params.ProspectNextCall = next.NextCallDate
			params.CallCount = next.CallCount
		}
	}

	saved, err := s.repo.AppendCallLog(ctx, params)
	if err != nil {
		return repository.CallLog{}, err
	}

	s.bus.Publish(ctx, events.CallLogged{
		BaseEvent:    events.NewBaseEvent(),
		CallLogID:    saved.ID,
		ProspectID:   prospectID,
		VendorID:     prospect.VendorID,
		Outcome:      saved.Outcome,
		NextCallDate: saved.NextCallDate,
		ActorID:      actorID,
	})
	return saved, nil
}

// ListCallLogs returns a prospect's ledger, latest call first.
func (s *Service) ListCallLogs(ctx context.Context, prospectID uuid.UUID) ([]repository.CallLog, error) {
	if _, err := s.repo.GetProspect(ctx, prospectID); err != nil {
		return nil, err
	}
	return s.repo.ListCallLogs(ctx, prospectID)
}

// StepProgress evaluates a prospect's workflow checklist against its ledger.
func (s *Service) StepProgress(ctx context.Context, prospectID uuid.UUID) (domain.StepProgress, error) {
	prospect, err := s.repo.GetProspect(ctx, prospectID)
	if err != nil {
		return domain.StepProgress{}, err
	}
	return s.progressFor(ctx, prospect)
}

// Tasks returns the working board for a vendor: active prospects with their
// step progression attached.
func (s *Service) Tasks(ctx context.Context, vendorID *uuid.UUID) ([]transport.TaskResponse, error) {
	prospects, err := s.repo.ListProspects(ctx, vendorID, true)
	if err != nil {
		return nil, err
	}

	tasks := make([]transport.TaskResponse, 0, len(prospects))
	for _, prospect := range prospects {
		progress, err := s.progressFor(ctx, prospect)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, transport.TaskResponse{
			ProspectResponse: transport.FromProspect(prospect),
			Progress:         progress,
		})
	}
	return tasks, nil
}

func (s *Service) progressFor(ctx context.Context, prospect repository.Prospect) (domain.StepProgress, error) {
	steps, err := s.repo.ListSteps(ctx)
	if err != nil {
		return domain.StepProgress{}, err
	}

	logs, err := s.repo.ListCallLogs(ctx, prospect.ID)
	if err != nil {
		return domain.StepProgress{}, err
	}

	entries := make([]domain.LedgerEntry, 0, len(logs))
	for _, log := range logs {
		entries = append(entries, domain.LedgerEntry{
			CallDate:      log.CallDate,
			StepID:        log.StepID,
			StepCompleted: log.StepCompleted,
		})
	}
	return domain.ComputeStepProgress(steps, prospect.StepID, entries), nil
}

// ListSteps returns the workflow step catalog.
func (s *Service) ListSteps(ctx context.Context) ([]domain.Step, error) {
	return s.repo.ListSteps(ctx)
}

// CreateStep adds a workflow step.
func (s *Service) CreateStep(ctx context.Context, actorID uuid.UUID, req transport.CreateStepRequest) (domain.Step, error) {
	step, err := s.repo.CreateStep(ctx, repository.CreateStepParams{
		Name:       req.Name,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		return domain.Step{}, err
	}

	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     events.ActionCreate,
		EntityType: "pipeline_step",
		EntityID:   step.ID,
		ActorID:    actorID,
		Summary:    step.Name,
	})
	return step, nil
}

// DeleteStep removes a workflow step from the catalog.
func (s *Service) DeleteStep(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.DeleteStep(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     events.ActionDelete,
		EntityType: "pipeline_step",
		EntityID:   id,
		ActorID:    actorID,
	})
	return nil
}

// ListPriorities returns the priority catalog.
func (s *Service) ListPriorities(ctx context.Context) ([]repository.Priority, error) {
	return s.repo.ListPriorities(ctx)
}

// CreatePriority adds a priority level.
func (s *Service) CreatePriority(ctx context.Context, actorID uuid.UUID, req transport.CreatePriorityRequest) (repository.Priority, error) {
	priority, err := s.repo.CreatePriority(ctx, repository.CreatePriorityParams{
		Name:       req.Name,
		Color:      req.Color,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		return repository.Priority{}, err
	}

	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     events.ActionCreate,
		EntityType: "prospect_priority",
		EntityID:   priority.ID,
		ActorID:    actorID,
		Summary:    priority.Name,
	})
	return priority, nil
}

// DeletePriority retires a priority level.
func (s *Service) DeletePriority(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.DeletePriority(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EntityMutated{
		BaseEvent:  events.NewBaseEvent(),
		Action:     events.ActionDelete,
		EntityType: "prospect_priority",
		EntityID:   id,
		ActorID:    actorID,
	})
	return nil
}
