package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"salesops_backend/internal/events"
	platformevents "salesops_backend/platform/events"
	"salesops_backend/platform/logger"
)

func newTestScheduler(t *testing.T) (*Scheduler, *asynq.Inspector) {
	t.Helper()

	srv := miniredis.RunT(t)
	opt := asynq.RedisClientOpt{Addr: srv.Addr()}
	client := asynq.NewClient(opt)
	t.Cleanup(func() { client.Close() })

	inspector := asynq.NewInspector(opt)
	t.Cleanup(func() { inspector.Close() })

	return NewWithClient(client, "reminders", logger.New("test")), inspector
}

func TestScheduleCallReminderEnqueuesTask(t *testing.T) {
	sched, inspector := newTestScheduler(t)

	payload := CallReminderPayload{ProspectID: uuid.New(), VendorID: uuid.New()}
	at := time.Now().Add(2 * time.Hour)
	if err := sched.ScheduleCallReminder(context.Background(), payload, at); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	tasks, err := inspector.ListScheduledTasks("reminders")
	if err != nil {
		t.Fatalf("list scheduled: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("scheduled tasks = %d, want 1", len(tasks))
	}
	if tasks[0].Type != TypeCallReminder {
		t.Fatalf("task type = %s", tasks[0].Type)
	}

	decoded, err := ParseCallReminderPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.ProspectID != payload.ProspectID {
		t.Fatalf("prospect id = %s, want %s", decoded.ProspectID, payload.ProspectID)
	}
}

func TestSubscribeSchedulesOnlyWhenNextCallSet(t *testing.T) {
	sched, inspector := newTestScheduler(t)

	bus := platformevents.NewInMemoryBus(logger.New("test"))
	sched.Subscribe(bus)

	vendorID := uuid.New()
	next := time.Now().Add(24 * time.Hour)

	// A bare entry carries no next call and must not enqueue anything.
	if err := bus.PublishSync(context.Background(), events.CallLogged{
		BaseEvent:  events.NewBaseEvent(),
		CallLogID:  uuid.New(),
		ProspectID: uuid.New(),
		VendorID:   &vendorID,
		Outcome:    "voicemail",
	}); err != nil {
		t.Fatalf("publish bare entry: %v", err)
	}

	if err := bus.PublishSync(context.Background(), events.CallLogged{
		BaseEvent:    events.NewBaseEvent(),
		CallLogID:    uuid.New(),
		ProspectID:   uuid.New(),
		VendorID:     &vendorID,
		Outcome:      "completed",
		NextCallDate: &next,
	}); err != nil {
		t.Fatalf("publish scheduling entry: %v", err)
	}

	tasks, err := inspector.ListScheduledTasks("reminders")
	if err != nil {
		t.Fatalf("list scheduled: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("scheduled tasks = %d, want 1", len(tasks))
	}
}
