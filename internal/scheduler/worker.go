package scheduler

import (
	"context"
	"fmt"

	"ecoleta/internal/events"
	"ecoleta/platform/config"
	"ecoleta/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, bus events.Bus, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskPointConfirmation, w.handlePointConfirmation)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handlePointConfirmation hands the task to the notification handlers
// synchronously so a failed delivery is retried by asynq.
func (w *Worker) handlePointConfirmation(ctx context.Context, task *asynq.Task) error {
	payload, err := ParsePointConfirmationPayload(task)
	if err != nil {
		return fmt.Errorf("parse %s: %v: %w", TaskPointConfirmation, err, asynq.SkipRetry)
	}

	if payload.PointID <= 0 || payload.Email == "" {
		w.log.Warn("dropping point confirmation without recipient", "pointId", payload.PointID)
		return nil
	}

	if w.bus == nil {
		return nil
	}

	return w.bus.PublishSync(ctx, events.PointConfirmationDue{
		BaseEvent: events.NewBaseEvent(),
		PointID:   payload.PointID,
		Email:     payload.Email,
		Name:      payload.Name,
		City:      payload.City,
		UF:        payload.UF,
		Items:     payload.Items,
	})
}
