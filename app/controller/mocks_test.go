package controller_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"dealdesk/booking"
	"dealdesk/models"
	"dealdesk/pricing"
	"dealdesk/service"
)

type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) Vehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockDealService) Customer(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockDealService) GetDeal(ctx context.Context, id int64) (*models.DealRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DealRecord), args.Error(1)
}

func (m *MockDealService) Preview(ctx context.Context, dealType models.DealType, fields json.RawMessage) (*pricing.Preview, error) {
	args := m.Called(ctx, dealType, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Preview), args.Error(1)
}

func (m *MockDealService) Submit(ctx context.Context, ctrl *pricing.DealFormController, files []service.UploadFile) (*service.SubmitResult, error) {
	args := m.Called(ctx, ctrl, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Confirm(ctx context.Context, form *booking.Form) (*service.ConfirmResult, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConfirmResult), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Destination(ctx context.Context, id int64) (*models.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Destination), args.Error(1)
}

func (m *MockCatalogService) Destinations(ctx context.Context) ([]models.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Destination), args.Error(1)
}

func (m *MockCatalogService) Offering(ctx context.Context, category models.ServiceCategory, id int64) (*models.ServiceOffering, error) {
	args := m.Called(ctx, category, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceOffering), args.Error(1)
}

func (m *MockCatalogService) Offerings(ctx context.Context, category models.ServiceCategory) ([]models.ServiceOffering, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceOffering), args.Error(1)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) RenderHTML(ctx context.Context, id int64, lang string) (string, error) {
	args := m.Called(ctx, id, lang)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) RenderPDF(ctx context.Context, id int64, lang string) ([]byte, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
