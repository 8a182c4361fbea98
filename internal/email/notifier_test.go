package email

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/events"
	pipelinerepo "salesops_backend/internal/pipeline/repository"
	pipelinetransport "salesops_backend/internal/pipeline/transport"
	vendorrepo "salesops_backend/internal/vendors/repository"
	platformevents "salesops_backend/platform/events"
	"salesops_backend/platform/logger"
)

type capturedEmail struct {
	to         string
	clientName string
	nextCall   string
}

type fakeSender struct {
	sent []capturedEmail
}

func (f *fakeSender) SendCallReminderEmail(_ context.Context, toEmail, clientName, nextCallDate string) error {
	f.sent = append(f.sent, capturedEmail{to: toEmail, clientName: clientName, nextCall: nextCallDate})
	return nil
}

type fakeVendorDirectory struct {
	vendors map[uuid.UUID]vendorrepo.Vendor
}

func (f *fakeVendorDirectory) Get(_ context.Context, id uuid.UUID) (vendorrepo.Vendor, error) {
	return f.vendors[id], nil
}

type fakeProspectDirectory struct {
	prospects map[uuid.UUID]pipelinetransport.ProspectResponse
}

func (f *fakeProspectDirectory) GetProspect(_ context.Context, id uuid.UUID) (pipelinetransport.ProspectResponse, error) {
	return f.prospects[id], nil
}

func TestNotifierSendsReminderEmail(t *testing.T) {
	vendorID := uuid.New()
	prospectID := uuid.New()
	next := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)

	sender := &fakeSender{}
	notifier := NewNotifier(sender,
		&fakeVendorDirectory{vendors: map[uuid.UUID]vendorrepo.Vendor{
			vendorID: {ID: vendorID, Name: "North Region", Email: "north@example.com"},
		}},
		&fakeProspectDirectory{prospects: map[uuid.UUID]pipelinetransport.ProspectResponse{
			prospectID: {Prospect: pipelinerepo.Prospect{
				ID:           prospectID,
				ClientName:   "Acme Telecom",
				NextCallDate: &next,
			}},
		}},
		logger.New("test"), true)

	bus := platformevents.NewInMemoryBus(logger.New("test"))
	notifier.Subscribe(bus)

	if err := bus.PublishSync(context.Background(), events.CallReminderDue{
		BaseEvent:  events.NewBaseEvent(),
		ProspectID: prospectID,
		VendorID:   vendorID,
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sender.sent))
	}
	got := sender.sent[0]
	if got.to != "north@example.com" {
		t.Fatalf("to = %s", got.to)
	}
	if got.clientName != "Acme Telecom" {
		t.Fatalf("client name = %s", got.clientName)
	}
	if got.nextCall != "Monday, 14 September 2026 at 10:30" {
		t.Fatalf("next call = %s", got.nextCall)
	}
}

func TestNotifierSkipsWhenDisabledOrNoAddress(t *testing.T) {
	vendorID := uuid.New()
	prospectID := uuid.New()

	sender := &fakeSender{}
	vendors := &fakeVendorDirectory{vendors: map[uuid.UUID]vendorrepo.Vendor{
		vendorID: {ID: vendorID, Name: "No Email"},
	}}
	prospects := &fakeProspectDirectory{prospects: map[uuid.UUID]pipelinetransport.ProspectResponse{}}

	disabled := NewNotifier(sender, vendors, prospects, logger.New("test"), false)
	if err := disabled.onReminderDue(context.Background(), events.CallReminderDue{
		BaseEvent: events.NewBaseEvent(), ProspectID: prospectID, VendorID: vendorID,
	}); err != nil {
		t.Fatalf("disabled notifier: %v", err)
	}

	enabled := NewNotifier(sender, vendors, prospects, logger.New("test"), true)
	if err := enabled.onReminderDue(context.Background(), events.CallReminderDue{
		BaseEvent: events.NewBaseEvent(), ProspectID: prospectID, VendorID: vendorID,
	}); err != nil {
		t.Fatalf("no address: %v", err)
	}

	if len(sender.sent) != 0 {
		t.Fatalf("sent = %d, want 0", len(sender.sent))
	}
}
