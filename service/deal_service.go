package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dealdesk/logger"
	"dealdesk/metrics"
	"dealdesk/models"
	"dealdesk/outbox"
	"dealdesk/pricing"
	"dealdesk/repository"
)

// Best-effort steps of a deal submission
const (
	StepPriceSync   = "price_sync"
	StepUpload      = "upload"
	StepAttachments = "attachments"
	StepActivity    = "activity"
	StepLedger      = "ledger"
)

const (
	dealRedirectAfterMs = 1500
	dealCreatedMessage  = "Deal created successfully"
)

// SubmitResult is returned once the deal record exists
type SubmitResult struct {
	Deal            *models.DealRecord `json:"deal"`
	Notification    Notification       `json:"notification"`
	Redirect        string             `json:"redirect"`
	RedirectAfterMs int                `json:"redirectAfterMs"`

	// steps that failed and were logged (and queued for retry when enabled)
	Warnings []string `json:"warnings,omitempty"`
}

// DealService persists deals assembled by a DealFormController
type DealService struct {
	vehicles  repository.VehicleRepositoryInterface
	customers repository.CustomerRepositoryInterface
	deals     repository.DealRepositoryInterface
	ledger    repository.LedgerRepositoryInterface
	activity  repository.ActivityRepositoryInterface
	uploader  AttachmentUploaderInterface
	retry     outbox.Enqueuer
	log       *zap.SugaredLogger
}

// NewDealService creates a new DealService. uploader may be nil when no storage is configured.
func NewDealService(
	vehicles repository.VehicleRepositoryInterface,
	customers repository.CustomerRepositoryInterface,
	deals repository.DealRepositoryInterface,
	ledger repository.LedgerRepositoryInterface,
	activity repository.ActivityRepositoryInterface,
	uploader AttachmentUploaderInterface,
	retry outbox.Enqueuer,
	log *zap.SugaredLogger,
) *DealService {
	log = logger.OrGlobal(log)
	if retry == nil {
		retry = outbox.NewLogOnly(log)
	}
	return &DealService{
		vehicles:  vehicles,
		customers: customers,
		deals:     deals,
		ledger:    ledger,
		activity:  activity,
		uploader:  uploader,
		retry:     retry,
		log:       log,
	}
}

func (s *DealService) Vehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *DealService) Customer(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *DealService) GetDeal(ctx context.Context, id int64) (*models.DealRecord, error) {
	return s.deals.GetByID(ctx, id)
}

// Preview evaluates a complete form without any session: the amount is
// computed against the stored vehicle the form points at.
func (s *DealService) Preview(ctx context.Context, dealType models.DealType, fields json.RawMessage) (*pricing.Preview, error) {
	form, err := pricing.DecodeForm(dealType, fields)
	if err != nil {
		return nil, err
	}

	var vehicle *models.Vehicle
	if carID := pricing.CarID(form); carID != nil {
		vehicle, err = s.vehicles.GetByID(ctx, *carID)
		if err != nil {
			return nil, err
		}
	}

	amount, err := pricing.Amount(form, vehicle)
	if err != nil {
		return nil, err
	}
	missing := pricing.MissingFields(form)
	if missing == nil {
		missing = []string{}
	}
	return &pricing.Preview{
		DealType:      dealType,
		Form:          form,
		Vehicle:       vehicle,
		Amount:        amount,
		MissingFields: missing,
		IsValid:       len(missing) == 0,
	}, nil
}

// Submit persists the deal held by ctrl. Only the trade-in vehicle and the deal
// record itself are fatal; every later step is logged and reported as a warning.
func (s *DealService) Submit(ctx context.Context, ctrl *pricing.DealFormController, files []UploadFile) (*SubmitResult, error) {
	form := ctrl.Form()
	dealType := form.DealType()

	missing := pricing.MissingFields(form)
	if len(missing) > 0 {
		metrics.DealsSubmitted.WithLabelValues(string(dealType), metrics.ResultInvalid).Inc()
		return nil, &ValidationError{Missing: missing}
	}

	s.log.Infof("📦 Submitting %s deal", dealType)
	var warnings []string

	// 1. sale price sync-back
	if vehicleID, price, ok := ctrl.PriceSync(); ok {
		if err := s.vehicles.UpdateSalePrice(ctx, vehicleID, price); err != nil {
			s.bestEffortFailed(StepPriceSync, err)
			warnings = append(warnings, StepPriceSync)
			s.enqueue(ctx, StepPriceSync, func(ctx context.Context) error {
				return s.retry.EnqueuePriceSync(ctx, outbox.PriceSyncPayload{VehicleID: vehicleID, Price: price})
			})
		} else {
			s.log.Infof("💰 Vehicle %d sale price set to %v", vehicleID, price)
		}
	}

	rec, err := pricing.BuildDealRecord(form, ctrl.Vehicle())
	if err != nil {
		metrics.DealsSubmitted.WithLabelValues(string(dealType), metrics.ResultFailed).Inc()
		return nil, err
	}

	// 2. trade-in vehicle
	if exchange, ok := form.(*pricing.ExchangeForm); ok {
		tradeIn := pricing.TradeInVehicle(exchange)
		if err := s.vehicles.Create(ctx, &tradeIn); err != nil {
			s.log.Errorf("❌ Trade-in vehicle creation failed, deal not created: %v", err)
			metrics.DealsSubmitted.WithLabelValues(string(dealType), metrics.ResultFailed).Inc()
			return nil, blocking(fmt.Errorf("%w: %w", ErrTradeInVehicle, err))
		}
		s.log.Infof("✅ Trade-in vehicle %d registered", tradeIn.ID)
		rec.CarTakenFromClient = &tradeIn.ID
	}

	// 3. deal record
	if err := s.deals.Create(ctx, &rec); err != nil {
		s.log.Errorf("❌ Deal creation failed: %v", err)
		metrics.DealsSubmitted.WithLabelValues(string(dealType), metrics.ResultFailed).Inc()
		return nil, blocking(err)
	}
	s.log.Infof("✅ Deal %d created (%s, amount %v)", rec.ID, dealType, rec.Amount)

	// 4. attachments
	warnings = append(warnings, s.attachFiles(ctx, &rec, files)...)

	// 5 and 6 are independent of each other; both finish before returning
	var g errgroup.Group
	var activityFailed, ledgerFailed bool
	g.Go(func() error {
		activityFailed = !s.logDealActivity(ctx, &rec, ctrl)
		return nil
	})
	g.Go(func() error {
		ledgerFailed = !s.recordBalance(ctx, &rec, form)
		return nil
	})
	_ = g.Wait()
	if activityFailed {
		warnings = append(warnings, StepActivity)
	}
	if ledgerFailed {
		warnings = append(warnings, StepLedger)
	}

	metrics.DealsSubmitted.WithLabelValues(string(dealType), metrics.ResultSuccess).Inc()
	return &SubmitResult{
		Deal:            &rec,
		Notification:    Notification{Type: NotificationSuccess, Message: dealCreatedMessage},
		Redirect:        fmt.Sprintf("/deals/%d", rec.ID),
		RedirectAfterMs: dealRedirectAfterMs,
		Warnings:        warnings,
	}, nil
}

// attachFiles uploads files and links the successful ones to rec
func (s *DealService) attachFiles(ctx context.Context, rec *models.DealRecord, files []UploadFile) []string {
	if len(files) == 0 {
		return nil
	}
	if s.uploader == nil {
		s.log.Warnf("⚠️ %d attachments dropped for deal %d: no storage configured", len(files), rec.ID)
		metrics.BestEffortFailures.WithLabelValues(StepUpload).Inc()
		return []string{StepUpload}
	}

	var warnings []string
	results := s.uploader.UploadMany(ctx, rec.ID, files)
	for _, r := range results {
		if r.Err != nil {
			s.bestEffortFailed(StepUpload, r.Err)
			warnings = append(warnings, StepUpload)
			break
		}
	}

	attachments := Attachments(results)
	if len(attachments) == 0 {
		return warnings
	}
	if err := s.deals.UpdateAttachments(ctx, rec.ID, attachments); err != nil {
		s.bestEffortFailed(StepAttachments, err)
		s.enqueue(ctx, StepAttachments, func(ctx context.Context) error {
			return s.retry.EnqueueAttachments(ctx, outbox.AttachmentsPayload{DealID: rec.ID, Attachments: attachments})
		})
		return append(warnings, StepAttachments)
	}
	rec.Attachments = attachments
	s.log.Infof("📎 %d attachments linked to deal %d", len(attachments), rec.ID)
	return warnings
}

// dealActivity is the payload of a deal_created event
type dealActivity struct {
	Deal     *models.DealRecord `json:"deal"`
	Customer *models.Customer   `json:"customer,omitempty"`
	Car      *models.Vehicle    `json:"car,omitempty"`
}

func (s *DealService) logDealActivity(ctx context.Context, rec *models.DealRecord, ctrl *pricing.DealFormController) bool {
	event, err := newActivityEvent(models.ActivityDealCreated, "deal", rec.ID, dealActivity{
		Deal:     rec,
		Customer: ctrl.Customer(),
		Car:      ctrl.EffectiveVehicle(),
	})
	if err != nil {
		s.bestEffortFailed(StepActivity, err)
		return false
	}
	if err := s.activity.Insert(ctx, event); err != nil {
		s.bestEffortFailed(StepActivity, err)
		s.enqueue(ctx, StepActivity, func(ctx context.Context) error {
			return s.retry.EnqueueActivity(ctx, outbox.ActivityPayload{Event: *event})
		})
		return false
	}
	return true
}

// recordBalance books the selling price on the customer's account
func (s *DealService) recordBalance(ctx context.Context, rec *models.DealRecord, form pricing.DealForm) bool {
	customerID := pricing.CustomerID(form)
	price, ok := pricing.SellingPrice(form)
	if customerID == nil || !ok || price <= 0 {
		return true
	}

	label := fmt.Sprintf("%s: %s", pricing.DealTypeLabel(rec.DealType), rec.Title)
	entry, err := s.ledger.Record(ctx, rec.ID, *customerID, price, label)
	if err != nil {
		s.bestEffortFailed(StepLedger, err)
		s.enqueue(ctx, StepLedger, func(ctx context.Context) error {
			return s.retry.EnqueueLedger(ctx, outbox.LedgerPayload{
				DealID:     rec.ID,
				CustomerID: *customerID,
				Amount:     price,
				Label:      label,
			})
		})
		return false
	}
	if entry != nil {
		s.log.Infof("💰 Customer %d balance updated by %v for deal %d", *customerID, price, rec.ID)
	}
	return true
}

func (s *DealService) bestEffortFailed(step string, err error) {
	s.log.Warnf("⚠️ Best-effort step %s failed: %v", step, err)
	metrics.BestEffortFailures.WithLabelValues(step).Inc()
}

// enqueue hands a failed step to the retry queue. The request context may be
// cancelled by then, so the queue gets its own.
func (s *DealService) enqueue(ctx context.Context, step string, fn func(context.Context) error) {
	if err := fn(context.WithoutCancel(ctx)); err != nil {
		s.log.Errorf("❌ Could not queue %s for retry: %v", step, err)
	}
}
