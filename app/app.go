package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/app/controller"
	"dealdesk/app/router"
	"dealdesk/booking"
	"dealdesk/config"
	"dealdesk/outbox"
	"dealdesk/repository"
	"dealdesk/service"
)

// App holds everything main needs to serve requests and replay retries
type App struct {
	Handler http.Handler
	// nil when no Redis is configured
	RetryHandlers *outbox.Handlers

	closers []io.Closer
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg config.Config, conn *sqlx.DB, log *zap.SugaredLogger) (*App, error) {
	vehicleRepo := repository.NewVehicleRepository(conn, log)
	customerRepo := repository.NewCustomerRepository(conn, log)
	dealRepo := repository.NewDealRepository(conn, log)
	ledgerRepo := repository.NewLedgerRepository(conn, log)
	activityRepo := repository.NewActivityRepository(conn, log)
	bookingRepo := repository.NewBookingRepository(conn, log)
	catalogRepo := repository.NewCatalogRepository(conn, log)
	billRepo := repository.NewBillRepository(conn, log)

	a := &App{}

	var retry outbox.Enqueuer
	if cfg.RetryEnabled() {
		client := outbox.NewClient(cfg.Redis, log)
		a.closers = append(a.closers, client)
		retry = client
		a.RetryHandlers = outbox.NewHandlers(vehicleRepo, dealRepo, activityRepo, ledgerRepo, log)
		log.Infof("🔁 Retry outbox enabled (redis %s)", cfg.Redis.Addr)
	} else {
		retry = outbox.NewLogOnly(log)
		log.Warnf("⚠️ REDIS_ADDR not set, failed side steps will only be logged")
	}

	// Attachments are optional: without Drive credentials uploads are skipped
	var uploader service.AttachmentUploaderInterface
	if cfg.Drive.CredentialsPath != "" {
		driveService, err := service.NewDriveService(ctx, cfg.Drive.CredentialsPath, cfg.Drive.AttachmentsFolderID, log)
		if err != nil {
			return nil, err
		}
		uploader = driveService
	} else {
		log.Warnf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, deal attachments are disabled")
	}

	documentService, err := service.NewDocumentService(
		billRepo,
		service.NewChromePDFRenderer(cfg.Document.ChromePath),
		cfg.Company,
		cfg.Document,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize documents: %w", err)
	}

	sessions := service.NewSessionStore(cfg.Sessions.TTL)
	dealService := service.NewDealService(vehicleRepo, customerRepo, dealRepo, ledgerRepo, activityRepo, uploader, retry, log)
	bookingService := service.NewBookingService(bookingRepo, activityRepo, booking.ReferenceGenerator{}, retry, log)
	catalogService := service.NewCatalogService(catalogRepo, log)

	a.Handler = router.SetupRoutes(&router.Controllers{
		Deal:        controller.NewDealController(dealService),
		DealForm:    controller.NewDealFormController(sessions, dealService),
		BookingForm: controller.NewBookingFormController(sessions, bookingService, catalogService),
		Bill:        controller.NewBillController(documentService),
	})
	return a, nil
}

// Close releases the retry queue client
func (a *App) Close() error {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}
