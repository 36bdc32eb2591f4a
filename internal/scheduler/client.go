package scheduler

import (
	"context"
	"fmt"

	"ecoleta/platform/cache"
	"ecoleta/platform/config"

	"github.com/hibiken/asynq"
)

const (
	defaultQueue = "default"
	maxRetry     = 5
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueuePointConfirmation schedules the confirmation mail for a new point.
func (c *Client) EnqueuePointConfirmation(ctx context.Context, payload PointConfirmationPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewPointConfirmationTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(maxRetry))
	return err
}

func redisClientOpt(cfg config.RedisConfig) (asynq.RedisClientOpt, error) {
	opt, err := cache.ParseOptions(cfg)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}
	if opt == nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis url not configured")
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return defaultQueue
}
