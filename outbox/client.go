package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"dealdesk/config"
	"dealdesk/logger"
)

const (
	maxRetry    = 8
	taskTimeout = 30 * time.Second
)

// Enqueuer accepts best-effort steps that failed during a submission
type Enqueuer interface {
	EnqueuePriceSync(ctx context.Context, p PriceSyncPayload) error
	EnqueueAttachments(ctx context.Context, p AttachmentsPayload) error
	EnqueueActivity(ctx context.Context, p ActivityPayload) error
	EnqueueLedger(ctx context.Context, p LedgerPayload) error
}

// Client enqueues retry tasks on Redis through asynq
type Client struct {
	client *asynq.Client
	log    *zap.SugaredLogger
}

var _ Enqueuer = (*Client)(nil)

func RedisOpt(cfg config.Redis) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.Redis, log *zap.SugaredLogger) *Client {
	return &Client{
		client: asynq.NewClient(RedisOpt(cfg)),
		log:    logger.OrGlobal(log),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) EnqueuePriceSync(ctx context.Context, p PriceSyncPayload) error {
	return c.enqueue(ctx, TypeVehiclePriceSync, p)
}

func (c *Client) EnqueueAttachments(ctx context.Context, p AttachmentsPayload) error {
	return c.enqueue(ctx, TypeDealAttachments, p)
}

func (c *Client) EnqueueActivity(ctx context.Context, p ActivityPayload) error {
	return c.enqueue(ctx, TypeActivityLog, p)
}

func (c *Client) EnqueueLedger(ctx context.Context, p LedgerPayload) error {
	return c.enqueue(ctx, TypeLedgerRecord, p)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload any) error {
	task, err := newTask(taskType, payload)
	if err != nil {
		return err
	}
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueName),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(taskTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}
	c.log.Infof("🔁 Enqueued %s for retry (task %s)", taskType, info.ID)
	return nil
}

// LogOnly is used when no Redis is configured: the failure is logged and dropped
type LogOnly struct {
	log *zap.SugaredLogger
}

var _ Enqueuer = (*LogOnly)(nil)

func NewLogOnly(log *zap.SugaredLogger) *LogOnly {
	return &LogOnly{log: logger.OrGlobal(log)}
}

func (l *LogOnly) EnqueuePriceSync(_ context.Context, p PriceSyncPayload) error {
	l.log.Warnf("⚠️ Not retried: sale price %v for vehicle %d", p.Price, p.VehicleID)
	return nil
}

func (l *LogOnly) EnqueueAttachments(_ context.Context, p AttachmentsPayload) error {
	l.log.Warnf("⚠️ Not retried: %d attachments for deal %d", len(p.Attachments), p.DealID)
	return nil
}

func (l *LogOnly) EnqueueActivity(_ context.Context, p ActivityPayload) error {
	l.log.Warnf("⚠️ Not retried: activity %s for %s %d", p.Event.EventType, p.Event.EntityType, p.Event.EntityID)
	return nil
}

func (l *LogOnly) EnqueueLedger(_ context.Context, p LedgerPayload) error {
	l.log.Warnf("⚠️ Not retried: ledger entry %v for customer %d on deal %d", p.Amount, p.CustomerID, p.DealID)
	return nil
}
