package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	pipelinetransport "salesops_backend/internal/pipeline/transport"
	vendorrepo "salesops_backend/internal/vendors/repository"
	"salesops_backend/platform/logger"
)

const reminderDateLayout = "Monday, 2 January 2006 at 15:04"

// VendorDirectory resolves a vendor's contact details.
type VendorDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (vendorrepo.Vendor, error)
}

// ProspectDirectory resolves a prospect for the reminder body.
type ProspectDirectory interface {
	GetProspect(ctx context.Context, id uuid.UUID) (pipelinetransport.ProspectResponse, error)
}

// Notifier emails vendors when a scheduled next-call reminder fires.
type Notifier struct {
	sender    Sender
	vendors   VendorDirectory
	prospects ProspectDirectory
	log       *logger.Logger
	enabled   bool
}

// NewNotifier creates a reminder email notifier.
func NewNotifier(sender Sender, vendors VendorDirectory, prospects ProspectDirectory, log *logger.Logger, enabled bool) *Notifier {
	return &Notifier{
		sender:    sender,
		vendors:   vendors,
		prospects: prospects,
		log:       log,
		enabled:   enabled,
	}
}

// Subscribe registers the notifier on the event bus.
func (n *Notifier) Subscribe(bus events.Bus) {
	bus.Subscribe(events.CallReminderDue{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		due, ok := e.(events.CallReminderDue)
		if !ok {
			return nil
		}
		return n.onReminderDue(ctx, due)
	}))
}

func (n *Notifier) onReminderDue(ctx context.Context, e events.CallReminderDue) error {
	if !n.enabled {
		return nil
	}

	vendor, err := n.vendors.Get(ctx, e.VendorID)
	if err != nil {
		return fmt.Errorf("reminder vendor lookup: %w", err)
	}
	if vendor.Email == "" {
		n.log.Info("skipping reminder email, vendor has no address", "vendor_id", e.VendorID)
		return nil
	}

	prospect, err := n.prospects.GetProspect(ctx, e.ProspectID)
	if err != nil {
		return fmt.Errorf("reminder prospect lookup: %w", err)
	}

	nextCall := "today"
	if prospect.NextCallDate != nil {
		nextCall = prospect.NextCallDate.Format(reminderDateLayout)
	}

	if err := n.sender.SendCallReminderEmail(ctx, vendor.Email, prospect.ClientName, nextCall); err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}

	n.log.Info("reminder email sent",
		"vendor_id", e.VendorID,
		"prospect_id", e.ProspectID,
	)
	return nil
}
