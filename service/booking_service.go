package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dealdesk/booking"
	"dealdesk/logger"
	"dealdesk/metrics"
	"dealdesk/models"
	"dealdesk/outbox"
	"dealdesk/repository"
)

const (
	BookingStateConfirmed      = "confirmed"
	bookingConfirmationDelayMs = 2000
	bookingCreatedMessage      = "Booking confirmed"
)

// ConfirmResult is returned once the booking and all of its service lines are stored
type ConfirmResult struct {
	Reference           string                      `json:"reference"`
	Booking             *models.Booking             `json:"booking"`
	Services            []models.BookingServiceLine `json:"services"`
	State               string                      `json:"state"`
	ConfirmationDelayMs int                         `json:"confirmationDelayMs"`
	Notification        Notification                `json:"notification"`
}

// BookingService confirms booking forms
type BookingService struct {
	bookings   repository.BookingRepositoryInterface
	activity   repository.ActivityRepositoryInterface
	references booking.ReferenceGenerator
	retry      outbox.Enqueuer
	log        *zap.SugaredLogger
}

func NewBookingService(
	bookings repository.BookingRepositoryInterface,
	activity repository.ActivityRepositoryInterface,
	references booking.ReferenceGenerator,
	retry outbox.Enqueuer,
	log *zap.SugaredLogger,
) *BookingService {
	log = logger.OrGlobal(log)
	if retry == nil {
		retry = outbox.NewLogOnly(log)
	}
	return &BookingService{
		bookings:   bookings,
		activity:   activity,
		references: references,
		retry:      retry,
		log:        log,
	}
}

func (s *BookingService) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return s.bookings.GetByReference(ctx, reference)
}

// Confirm validates form, then stores the booking with its service lines
func (s *BookingService) Confirm(ctx context.Context, form *booking.Form) (*ConfirmResult, error) {
	typeLabel := string(models.BookingTypeFullTrip)
	if form.BookingType != nil {
		typeLabel = string(*form.BookingType)
	}

	validation := form.Validate()
	if !validation.IsValid {
		metrics.BookingsConfirmed.WithLabelValues(typeLabel, metrics.ResultInvalid).Inc()
		return nil, &ValidationError{Missing: validation.MissingFields}
	}

	reference := s.references.Generate(form.BookingType)
	b, lines := form.Build(reference)

	if err := s.bookings.CreateWithServices(ctx, &b, lines); err != nil {
		s.log.Errorf("❌ Booking %s failed: %v", reference, err)
		metrics.BookingsConfirmed.WithLabelValues(typeLabel, metrics.ResultFailed).Inc()
		return nil, blocking(err)
	}
	s.log.Infof("✅ Booking %s confirmed (%d services, total %v)", reference, len(lines), b.TotalPrice)
	metrics.BookingsConfirmed.WithLabelValues(typeLabel, metrics.ResultSuccess).Inc()

	s.logBookingActivity(ctx, &b, lines)

	return &ConfirmResult{
		Reference:           reference,
		Booking:             &b,
		Services:            lines,
		State:               BookingStateConfirmed,
		ConfirmationDelayMs: bookingConfirmationDelayMs,
		Notification:        Notification{Type: NotificationSuccess, Message: fmt.Sprintf("%s: %s", bookingCreatedMessage, reference)},
	}, nil
}

func (s *BookingService) logBookingActivity(ctx context.Context, b *models.Booking, lines []models.BookingServiceLine) {
	event, err := newActivityEvent(models.ActivityBookingConfirmed, "booking", b.ID, map[string]any{
		"booking":  b,
		"services": lines,
	})
	if err != nil {
		s.log.Warnf("⚠️ Best-effort step %s failed: %v", StepActivity, err)
		metrics.BestEffortFailures.WithLabelValues(StepActivity).Inc()
		return
	}
	if err := s.activity.Insert(ctx, event); err != nil {
		s.log.Warnf("⚠️ Best-effort step %s failed: %v", StepActivity, err)
		metrics.BestEffortFailures.WithLabelValues(StepActivity).Inc()
		if err := s.retry.EnqueueActivity(context.WithoutCancel(ctx), outbox.ActivityPayload{Event: *event}); err != nil {
			s.log.Errorf("❌ Could not queue %s for retry: %v", StepActivity, err)
		}
	}
}
