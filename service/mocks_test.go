package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealdesk/models"
	"dealdesk/outbox"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) UpdateSalePrice(ctx context.Context, id int64, price float64) error {
	return m.Called(ctx, id, price).Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, d *models.DealRecord) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDealRepository) GetByID(ctx context.Context, id int64) (*models.DealRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DealRecord), args.Error(1)
}

func (m *MockDealRepository) UpdateAttachments(ctx context.Context, id int64, attachments models.Attachments) error {
	return m.Called(ctx, id, attachments).Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Record(ctx context.Context, dealID, customerID int64, amount float64, label string) (*models.LedgerEntry, error) {
	args := m.Called(ctx, dealID, customerID, amount, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Insert(ctx context.Context, e *models.ActivityEvent) error {
	return m.Called(ctx, e).Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithServices(ctx context.Context, b *models.Booking, lines []models.BookingServiceLine) error {
	return m.Called(ctx, b, lines).Error(0)
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, ref string) (*models.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetOffering(ctx context.Context, category models.ServiceCategory, id int64) (*models.ServiceOffering, error) {
	args := m.Called(ctx, category, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceOffering), args.Error(1)
}

func (m *MockCatalogRepository) ListOfferings(ctx context.Context, category models.ServiceCategory) ([]models.ServiceOffering, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceOffering), args.Error(1)
}

func (m *MockCatalogRepository) GetDestination(ctx context.Context, id int64) (*models.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Destination), args.Error(1)
}

func (m *MockCatalogRepository) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Destination), args.Error(1)
}

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) GetByID(ctx context.Context, id int64) (*models.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadMany(ctx context.Context, dealID int64, files []UploadFile) []UploadResult {
	return m.Called(ctx, dealID, files).Get(0).([]UploadResult)
}

type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	args := m.Called(ctx, html)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueuePriceSync(ctx context.Context, p outbox.PriceSyncPayload) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockEnqueuer) EnqueueAttachments(ctx context.Context, p outbox.AttachmentsPayload) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockEnqueuer) EnqueueActivity(ctx context.Context, p outbox.ActivityPayload) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockEnqueuer) EnqueueLedger(ctx context.Context, p outbox.LedgerPayload) error {
	return m.Called(ctx, p).Error(0)
}
