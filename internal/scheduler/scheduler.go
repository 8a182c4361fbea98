package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"salesops_backend/internal/events"
	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

// Scheduler enqueues call reminder tasks when ledger entries schedule a
// next call.
type Scheduler struct {
	client *asynq.Client
	queue  string
	log    *logger.Logger
}

// New connects the scheduler to Redis and verifies the connection.
func New(ctx context.Context, cfg config.SchedulerConfig, log *logger.Logger) (*Scheduler, error) {
	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	ping := redis.NewClient(opts)
	defer ping.Close()
	if err := ping.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	client := asynq.NewClient(asynq.RedisClientOpt{
		Network:  "tcp",
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &Scheduler{client: client, queue: cfg.GetAsynqQueueName(), log: log}, nil
}

// NewWithClient wires a scheduler onto an existing asynq client. Used by
// tests with a miniredis-backed client.
func NewWithClient(client *asynq.Client, queue string, log *logger.Logger) *Scheduler {
	return &Scheduler{client: client, queue: queue, log: log}
}

// Close releases the underlying client.
func (s *Scheduler) Close() error {
	return s.client.Close()
}

// ScheduleCallReminder enqueues a reminder to fire at the given time. Times
// already in the past are processed immediately.
func (s *Scheduler) ScheduleCallReminder(ctx context.Context, payload CallReminderPayload, at time.Time) error {
	task, err := NewCallReminderTask(payload)
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, task,
		asynq.Queue(s.queue),
		asynq.ProcessAt(at),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return fmt.Errorf("enqueue call reminder: %w", err)
	}

	s.log.Info("call reminder scheduled",
		"task_id", info.ID,
		"prospect_id", payload.ProspectID.String(),
		"process_at", at.Format(time.RFC3339),
	)
	return nil
}

// Subscribe attaches the scheduler to call log events. Only entries that
// scheduled a next call produce a reminder.
func (s *Scheduler) Subscribe(bus events.Bus) {
	bus.Subscribe(events.CallLogged{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		logged, ok := e.(events.CallLogged)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", e)
		}
		if logged.NextCallDate == nil || logged.VendorID == nil {
			return nil
		}
		return s.ScheduleCallReminder(ctx, CallReminderPayload{
			ProspectID: logged.ProspectID,
			VendorID:   *logged.VendorID,
		}, *logged.NextCallDate)
	}))
}
