// Package scheduler queues and processes deferred work: call reminders that
// fire when a prospect's scheduled next call comes due.
package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeCallReminder is the task type for a due-call reminder.
const TypeCallReminder = "pipeline:call_reminder"

// CallReminderPayload is the task payload for a call reminder.
type CallReminderPayload struct {
	ProspectID uuid.UUID `json:"prospectId"`
	VendorID   uuid.UUID `json:"vendorId"`
}

// NewCallReminderTask builds the asynq task for a reminder.
func NewCallReminderTask(payload CallReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal call reminder payload: %w", err)
	}
	return asynq.NewTask(TypeCallReminder, data), nil
}

// ParseCallReminderPayload decodes a reminder task's payload.
func ParseCallReminderPayload(task *asynq.Task) (CallReminderPayload, error) {
	var payload CallReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CallReminderPayload{}, fmt.Errorf("unmarshal call reminder payload: %w", err)
	}
	return payload, nil
}
