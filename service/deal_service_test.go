package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"dealdesk/models"
	"dealdesk/outbox"
	"dealdesk/pricing"
)

type dealServiceDeps struct {
	vehicles  *MockVehicleRepository
	customers *MockCustomerRepository
	deals     *MockDealRepository
	ledger    *MockLedgerRepository
	activity  *MockActivityRepository
	uploader  *MockUploader
	retry     *MockEnqueuer
}

func newDealService(t *testing.T) (*DealService, *dealServiceDeps) {
	t.Helper()
	d := &dealServiceDeps{
		vehicles:  new(MockVehicleRepository),
		customers: new(MockCustomerRepository),
		deals:     new(MockDealRepository),
		ledger:    new(MockLedgerRepository),
		activity:  new(MockActivityRepository),
		uploader:  new(MockUploader),
		retry:     new(MockEnqueuer),
	}
	svc := NewDealService(d.vehicles, d.customers, d.deals, d.ledger, d.activity, d.uploader, d.retry, zaptest.NewLogger(t).Sugar())
	return svc, d
}

func withDealID(id int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*models.DealRecord).ID = id
	}
}

func saleController(t *testing.T) *pricing.DealFormController {
	t.Helper()
	ctrl, err := pricing.NewDealFormController(models.DealTypeUsedSale)
	require.NoError(t, err)
	ctrl.SelectCustomer(&models.Customer{ID: 3, Name: "Dana"})
	ctrl.SelectVehicle(&models.Vehicle{ID: 7, Manufacturer: "Mazda", Name: "3", Year: 2020, BuyPrice: 40000, SalePrice: 42000})
	require.NoError(t, ctrl.EditSellingPrice("45000"))
	return ctrl
}

func TestSubmit_SaleEndToEnd(t *testing.T) {
	svc, d := newDealService(t)
	ctrl := saleController(t)

	d.vehicles.On("UpdateSalePrice", mock.Anything, int64(7), 45000.0).Return(nil).Once()
	d.deals.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.DealRecord) bool {
		return rec.Amount == 5000 &&
			rec.SellingPrice != nil && *rec.SellingPrice == 45000 &&
			rec.LossAmount == nil &&
			rec.Status == models.DealStatusActive
	})).Run(withDealID(11)).Return(nil).Once()
	d.activity.On("Insert", mock.Anything, mock.MatchedBy(func(e *models.ActivityEvent) bool {
		return e.EventType == models.ActivityDealCreated && e.EntityID == 11 && e.EventID != ""
	})).Return(nil).Once()
	d.ledger.On("Record", mock.Anything, int64(11), int64(3), 45000.0, mock.AnythingOfType("string")).
		Return(&models.LedgerEntry{ID: 1}, nil).Once()

	result, err := svc.Submit(context.Background(), ctrl, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(11), result.Deal.ID)
	assert.Equal(t, 5000.0, result.Deal.Amount)
	assert.Equal(t, "/deals/11", result.Redirect)
	assert.Equal(t, 1500, result.RedirectAfterMs)
	assert.Equal(t, NotificationSuccess, result.Notification.Type)
	assert.Empty(t, result.Warnings)

	d.vehicles.AssertExpectations(t)
	d.deals.AssertExpectations(t)
	d.activity.AssertExpectations(t)
	d.ledger.AssertExpectations(t)
	d.uploader.AssertNotCalled(t, "UploadMany", mock.Anything, mock.Anything, mock.Anything)
}

func exchangeController(t *testing.T) *pricing.DealFormController {
	t.Helper()
	ctrl, err := pricing.NewDealFormController(models.DealTypeExchange)
	require.NoError(t, err)
	ctrl.SelectCustomer(&models.Customer{ID: 3, Name: "Dana"})
	ctrl.SelectVehicle(&models.Vehicle{ID: 8, Manufacturer: "Kia", Name: "Sportage", Year: 2022, BuyPrice: 60000, SalePrice: 80000})
	require.NoError(t, ctrl.ApplyFields(json.RawMessage(`{
		"oldCar": {"manufacturer": "Kia", "name": "Rio", "year": 2015, "purchasePrice": "30000", "marketPrice": "28000"},
		"oldCarEvaluation": "29000",
		"additionalAmount": "51000"
	}`)))
	return ctrl
}

func TestSubmit_ExchangeCreatesTradeInFirst(t *testing.T) {
	svc, d := newDealService(t)
	ctrl := exchangeController(t)

	var order []string
	d.vehicles.On("Create", mock.Anything, mock.MatchedBy(func(v *models.Vehicle) bool {
		return v.Status == models.VehicleStatusReceivedFromClient && v.BuyPrice == 30000 && v.SalePrice == 28000
	})).Run(func(args mock.Arguments) {
		order = append(order, "trade_in")
		args.Get(1).(*models.Vehicle).ID = 21
	}).Return(nil).Once()
	d.deals.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.DealRecord) bool {
		return rec.CarTakenFromClient != nil && *rec.CarTakenFromClient == 21 && rec.Amount == 20000
	})).Run(func(args mock.Arguments) {
		order = append(order, "deal")
		args.Get(1).(*models.DealRecord).ID = 12
	}).Return(nil).Once()
	d.activity.On("Insert", mock.Anything, mock.Anything).Return(nil)
	d.ledger.On("Record", mock.Anything, int64(12), int64(3), 80000.0, mock.Anything).Return(&models.LedgerEntry{ID: 2}, nil)

	result, err := svc.Submit(context.Background(), ctrl, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"trade_in", "deal"}, order)
	assert.Equal(t, 20000.0, result.Deal.Amount)
	d.vehicles.AssertNotCalled(t, "UpdateSalePrice", mock.Anything, mock.Anything, mock.Anything)
	d.vehicles.AssertExpectations(t)
	d.deals.AssertExpectations(t)
}

func TestSubmit_TradeInFailureAbortsDeal(t *testing.T) {
	svc, d := newDealService(t)
	ctrl := exchangeController(t)

	d.vehicles.On("Create", mock.Anything, mock.Anything).Return(errors.New("vehicles insert rejected")).Once()

	result, err := svc.Submit(context.Background(), ctrl, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var blockingErr *BlockingError
	require.ErrorAs(t, err, &blockingErr)
	assert.ErrorIs(t, err, ErrTradeInVehicle)
	d.deals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_DealCreationFailureSurfacesBackendMessage(t *testing.T) {
	svc, d := newDealService(t)
	ctrl := saleController(t)

	d.vehicles.On("UpdateSalePrice", mock.Anything, int64(7), 45000.0).Return(nil)
	d.deals.On("Create", mock.Anything, mock.Anything).Return(errors.New("car already sold")).Once()

	_, err := svc.Submit(context.Background(), ctrl, nil)

	var blockingErr *BlockingError
	require.ErrorAs(t, err, &blockingErr)
	assert.Equal(t, "car already sold", blockingErr.Message)
	d.activity.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmit_MissingFieldsWriteNothing(t *testing.T) {
	svc, d := newDealService(t)
	ctrl, err := pricing.NewDealFormController(models.DealTypeNewSale)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), ctrl, nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{
		pricing.FieldCustomer, pricing.FieldCar, pricing.FieldTitle, pricing.FieldSellingPrice,
	}, validationErr.Missing)
	d.vehicles.AssertNotCalled(t, "UpdateSalePrice", mock.Anything, mock.Anything, mock.Anything)
	d.deals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_BestEffortFailuresAreQueued(t *testing.T) {
	svc, d := newDealService(t)
	ctrl := saleController(t)

	d.vehicles.On("UpdateSalePrice", mock.Anything, int64(7), 45000.0).Return(errors.New("timeout"))
	d.deals.On("Create", mock.Anything, mock.Anything).Run(withDealID(13)).Return(nil)
	d.activity.On("Insert", mock.Anything, mock.Anything).Return(errors.New("activity table locked"))
	d.ledger.On("Record", mock.Anything, int64(13), int64(3), 45000.0, mock.Anything).Return(nil, errors.New("ledger down"))

	d.retry.On("EnqueuePriceSync", mock.Anything, outbox.PriceSyncPayload{VehicleID: 7, Price: 45000}).Return(nil).Once()
	d.retry.On("EnqueueActivity", mock.Anything, mock.MatchedBy(func(p outbox.ActivityPayload) bool {
		return p.Event.EntityID == 13
	})).Return(nil).Once()
	d.retry.On("EnqueueLedger", mock.Anything, mock.MatchedBy(func(p outbox.LedgerPayload) bool {
		return p.DealID == 13 && p.CustomerID == 3 && p.Amount == 45000
	})).Return(nil).Once()

	result, err := svc.Submit(context.Background(), ctrl, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(13), result.Deal.ID)
	assert.ElementsMatch(t, []string{StepPriceSync, StepActivity, StepLedger}, result.Warnings)
	d.retry.AssertExpectations(t)
}

func TestSubmit_LinksUploadedAttachments(t *testing.T) {
	svc, d := newDealService(t)
	ctrl, err := pricing.NewDealFormController(models.DealTypeFinancingAssistanceIntermediary)
	require.NoError(t, err)
	ctrl.SelectCustomer(&models.Customer{ID: 5, Name: "Omar"})
	ctrl.SelectVehicle(&models.Vehicle{ID: 9, Manufacturer: "Honda", Name: "Civic", Year: 2018})
	require.NoError(t, ctrl.ApplyFields(json.RawMessage(`{"commission":"1200"}`)))

	files := []UploadFile{
		{FileName: "driver_license_front.jpg", Data: []byte("a")},
		{FileName: "transfer.pdf", Data: []byte("b")},
	}
	d.deals.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.DealRecord) bool {
		return rec.Amount == 1200
	})).Run(withDealID(14)).Return(nil)
	d.uploader.On("UploadMany", mock.Anything, int64(14), files).Return([]UploadResult{
		{FileName: "driver_license_front.jpg", AttachmentType: models.AttachmentDriverLicense, URL: "https://drive.google.com/uc?id=a"},
		{FileName: "transfer.pdf", AttachmentType: models.AttachmentTransferDocument, Err: errors.New("quota exceeded")},
	})
	d.deals.On("UpdateAttachments", mock.Anything, int64(14), mock.MatchedBy(func(a models.Attachments) bool {
		return len(a) == 1 && a[0].Type == models.AttachmentDriverLicense
	})).Return(nil).Once()
	d.activity.On("Insert", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Submit(context.Background(), ctrl, files)
	require.NoError(t, err)

	assert.Len(t, result.Deal.Attachments, 1)
	assert.Equal(t, []string{StepUpload}, result.Warnings)
	d.deals.AssertExpectations(t)
	// financing deals carry no selling price, so no balance movement
	d.ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPreview_StatelessProfit(t *testing.T) {
	svc, d := newDealService(t)
	d.vehicles.On("GetByID", mock.Anything, int64(4)).Return(&models.Vehicle{ID: 4, BuyPrice: 50000, SalePrice: 61000}, nil)

	preview, err := svc.Preview(context.Background(), models.DealTypeNewSale,
		json.RawMessage(`{"carId":4,"sellingPrice":"60000","lossAmount":"2000"}`))
	require.NoError(t, err)

	assert.Equal(t, 8000.0, preview.Amount)
	assert.False(t, preview.IsValid)
	assert.Equal(t, []string{pricing.FieldCustomer, pricing.FieldTitle}, preview.MissingFields)
}

func TestPreview_UnknownDealType(t *testing.T) {
	svc, _ := newDealService(t)

	_, err := svc.Preview(context.Background(), "lease", nil)
	assert.ErrorIs(t, err, pricing.ErrUnknownDealType)
}
