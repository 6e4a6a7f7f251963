package service

import (
	"context"
	"encoding/json"

	"dealdesk/booking"
	"dealdesk/models"
	"dealdesk/pricing"
)

// DealServiceInterface defines the contract for deal operations
type DealServiceInterface interface {
	Vehicle(ctx context.Context, id int64) (*models.Vehicle, error)
	Customer(ctx context.Context, id int64) (*models.Customer, error)
	GetDeal(ctx context.Context, id int64) (*models.DealRecord, error)
	Preview(ctx context.Context, dealType models.DealType, fields json.RawMessage) (*pricing.Preview, error)
	Submit(ctx context.Context, ctrl *pricing.DealFormController, files []UploadFile) (*SubmitResult, error)
}

// BookingServiceInterface defines the contract for booking operations
type BookingServiceInterface interface {
	GetByReference(ctx context.Context, reference string) (*models.Booking, error)
	Confirm(ctx context.Context, form *booking.Form) (*ConfirmResult, error)
}

type CatalogServiceInterface interface {
	Destination(ctx context.Context, id int64) (*models.Destination, error)
	Destinations(ctx context.Context) ([]models.Destination, error)
	Offering(ctx context.Context, category models.ServiceCategory, id int64) (*models.ServiceOffering, error)
	Offerings(ctx context.Context, category models.ServiceCategory) ([]models.ServiceOffering, error)
}

// DocumentServiceInterface defines the contract for bill rendering
type DocumentServiceInterface interface {
	RenderHTML(ctx context.Context, id int64, lang string) (string, error)
	RenderPDF(ctx context.Context, id int64, lang string) ([]byte, error)
}

var (
	_ DealServiceInterface     = (*DealService)(nil)
	_ BookingServiceInterface  = (*BookingService)(nil)
	_ CatalogServiceInterface  = (*CatalogService)(nil)
	_ DocumentServiceInterface = (*DocumentService)(nil)
)
