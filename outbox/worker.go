package outbox

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dealdesk/config"
	"dealdesk/logger"
	"dealdesk/repository"
)

// Handlers replays retry tasks against the repositories
type Handlers struct {
	vehicles repository.VehicleRepositoryInterface
	deals    repository.DealRepositoryInterface
	activity repository.ActivityRepositoryInterface
	ledger   repository.LedgerRepositoryInterface
	log      *zap.SugaredLogger
}

func NewHandlers(
	vehicles repository.VehicleRepositoryInterface,
	deals repository.DealRepositoryInterface,
	activity repository.ActivityRepositoryInterface,
	ledger repository.LedgerRepositoryInterface,
	log *zap.SugaredLogger,
) *Handlers {
	return &Handlers{
		vehicles: vehicles,
		deals:    deals,
		activity: activity,
		ledger:   ledger,
		log:      logger.OrGlobal(log),
	}
}

// Mux routes every task type to its handler
func (h *Handlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeVehiclePriceSync, h.HandlePriceSync)
	mux.HandleFunc(TypeDealAttachments, h.HandleAttachments)
	mux.HandleFunc(TypeActivityLog, h.HandleActivity)
	mux.HandleFunc(TypeLedgerRecord, h.HandleLedger)
	return mux
}

func (h *Handlers) HandlePriceSync(ctx context.Context, t *asynq.Task) error {
	var p PriceSyncPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	if err := h.vehicles.UpdateSalePrice(ctx, p.VehicleID, p.Price); err != nil {
		return fmt.Errorf("retry price sync for vehicle %d: %w", p.VehicleID, err)
	}
	h.log.Infof("✅ Retried sale price %v for vehicle %d", p.Price, p.VehicleID)
	return nil
}

func (h *Handlers) HandleAttachments(ctx context.Context, t *asynq.Task) error {
	var p AttachmentsPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	if err := h.deals.UpdateAttachments(ctx, p.DealID, p.Attachments); err != nil {
		return fmt.Errorf("retry attachments for deal %d: %w", p.DealID, err)
	}
	h.log.Infof("✅ Retried %d attachments for deal %d", len(p.Attachments), p.DealID)
	return nil
}

func (h *Handlers) HandleActivity(ctx context.Context, t *asynq.Task) error {
	var p ActivityPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	if err := h.activity.Insert(ctx, &p.Event); err != nil {
		return fmt.Errorf("retry activity %s: %w", p.Event.EventID, err)
	}
	h.log.Infof("✅ Retried activity %s", p.Event.EventType)
	return nil
}

func (h *Handlers) HandleLedger(ctx context.Context, t *asynq.Task) error {
	var p LedgerPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	if _, err := h.ledger.Record(ctx, p.DealID, p.CustomerID, p.Amount, p.Label); err != nil {
		return fmt.Errorf("retry ledger for deal %d: %w", p.DealID, err)
	}
	h.log.Infof("💰 Retried ledger entry for customer %d on deal %d", p.CustomerID, p.DealID)
	return nil
}

// Server runs the retry worker until ctx is cancelled
type Server struct {
	cfg config.Redis
	log *zap.SugaredLogger
}

func NewServer(cfg config.Redis, log *zap.SugaredLogger) *Server {
	return &Server{cfg: cfg, log: logger.OrGlobal(log)}
}

func (s *Server) Run(ctx context.Context, g *errgroup.Group, handlers *Handlers) {
	g.Go(func() error {
		worker := asynq.NewServer(RedisOpt(s.cfg), asynq.Config{
			BaseContext: func() context.Context { return ctx },
			Queues:      map[string]int{QueueName: 1},
			Concurrency: 2,
		})

		if err := worker.Start(handlers.Mux()); err != nil {
			return fmt.Errorf("asynqServer.Start: %w", err)
		}
		s.log.Infof("🔁 Retry worker started (redis %s, db %d)", s.cfg.Addr, s.cfg.DB)

		<-ctx.Done()
		worker.Shutdown()
		s.log.Infof("Retry worker stopped")
		return nil
	})
}
