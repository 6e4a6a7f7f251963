package repository

import (
	"context"

	"dealdesk/models"
)

// VehicleRepositoryInterface defines the contract for vehicle repository operations
type VehicleRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Vehicle, error)
	Create(ctx context.Context, v *models.Vehicle) error
	UpdateSalePrice(ctx context.Context, id int64, price float64) error
}

type CustomerRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
}

// DealRepositoryInterface defines the contract for deal repository operations
type DealRepositoryInterface interface {
	Create(ctx context.Context, d *models.DealRecord) error
	GetByID(ctx context.Context, id int64) (*models.DealRecord, error)
	UpdateAttachments(ctx context.Context, id int64, attachments models.Attachments) error
}

// LedgerRepositoryInterface records balance movements; a nil entry with nil error means it was already recorded
type LedgerRepositoryInterface interface {
	Record(ctx context.Context, dealID, customerID int64, amount float64, label string) (*models.LedgerEntry, error)
}

type ActivityRepositoryInterface interface {
	Insert(ctx context.Context, e *models.ActivityEvent) error
}

// BookingRepositoryInterface defines the contract for booking repository operations
type BookingRepositoryInterface interface {
	CreateWithServices(ctx context.Context, b *models.Booking, lines []models.BookingServiceLine) error
	GetByReference(ctx context.Context, ref string) (*models.Booking, error)
}

// CatalogRepositoryInterface defines the contract for destination and offering lookups
type CatalogRepositoryInterface interface {
	GetOffering(ctx context.Context, category models.ServiceCategory, id int64) (*models.ServiceOffering, error)
	ListOfferings(ctx context.Context, category models.ServiceCategory) ([]models.ServiceOffering, error)
	GetDestination(ctx context.Context, id int64) (*models.Destination, error)
	ListDestinations(ctx context.Context) ([]models.Destination, error)
}

type BillRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Bill, error)
}
