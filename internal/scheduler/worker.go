package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"salesops_backend/internal/events"
	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

// Worker processes queued reminder tasks, republishing them as domain
// events for the notification and email subscribers.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

// NewWorker builds the asynq server and its task handlers.
func NewWorker(cfg config.SchedulerConfig, bus events.Bus, log *logger.Logger) (*Worker, error) {
	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Network:  "tcp",
			Addr:     opts.Addr,
			Username: opts.Username,
			Password: opts.Password,
			DB:       opts.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{cfg.GetAsynqQueueName(): 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCallReminder, callReminderHandler(bus, log))

	return &Worker{server: server, mux: mux, log: log}, nil
}

// Run blocks processing tasks until Shutdown.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the server, waiting for in-flight tasks.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func callReminderHandler(bus events.Bus, log *logger.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		payload, err := ParseCallReminderPayload(task)
		if err != nil {
			return err
		}

		log.Info("call reminder due", "prospect_id", payload.ProspectID.String())
		return bus.PublishSync(ctx, events.CallReminderDue{
			BaseEvent:  events.NewBaseEvent(),
			ProspectID: payload.ProspectID,
			VendorID:   payload.VendorID,
		})
	}
}
