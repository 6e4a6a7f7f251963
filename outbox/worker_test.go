package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"dealdesk/models"
)

type MockVehicleRepository struct{ mock.Mock }

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

type MockDealRepository struct{ mock.Mock }

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

type MockActivityRepository struct{ mock.Mock }

func (m *MockActivityRepository) Insert(ctx context.Context, e *models.ActivityEvent) error {
	return m.Called(ctx, e).Error(0)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Record(ctx context.Context, dealID, customerID int64, amount float64, label string) (*models.LedgerEntry, error) {
	args := m.Called(ctx, dealID, customerID, amount, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

type handlerDeps struct {
	vehicles *MockVehicleRepository
	deals    *MockDealRepository
	activity *MockActivityRepository
	ledger   *MockLedgerRepository
}

func newHandlers(t *testing.T) (*Handlers, handlerDeps) {
	d := handlerDeps{
		vehicles: new(MockVehicleRepository),
		deals:    new(MockDealRepository),
		activity: new(MockActivityRepository),
		ledger:   new(MockLedgerRepository),
	}
	return NewHandlers(d.vehicles, d.deals, d.activity, d.ledger, zaptest.NewLogger(t).Sugar()), d
}

func task(t *testing.T, taskType string, payload any) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(taskType, data)
}

func TestHandlePriceSync(t *testing.T) {
	h, d := newHandlers(t)
	d.vehicles.On("UpdateSalePrice", mock.Anything, int64(7), 45000.0).Return(nil).Once()

	err := h.HandlePriceSync(context.Background(), task(t, TypeVehiclePriceSync, PriceSyncPayload{VehicleID: 7, Price: 45000}))
	require.NoError(t, err)
	d.vehicles.AssertExpectations(t)
}

func TestHandleAttachments(t *testing.T) {
	h, d := newHandlers(t)
	d.deals.On("UpdateAttachments", mock.Anything, int64(12), mock.MatchedBy(func(a models.Attachments) bool {
		return len(a) == 1 && a[0].URL == "https://drive.google.com/uc?id=abc"
	})).Return(nil).Once()

	payload := AttachmentsPayload{DealID: 12, Attachments: models.Attachments{
		{Name: "id_card.jpg", Type: "id", URL: "https://drive.google.com/uc?id=abc"},
	}}
	require.NoError(t, h.HandleAttachments(context.Background(), task(t, TypeDealAttachments, payload)))
	d.deals.AssertExpectations(t)
}

func TestHandleActivity(t *testing.T) {
	h, d := newHandlers(t)
	d.activity.On("Insert", mock.Anything, mock.MatchedBy(func(e *models.ActivityEvent) bool {
		return e.EventID == "evt-1" && e.EventType == models.ActivityDealCreated && e.EntityID == 12
	})).Return(nil).Once()

	payload := ActivityPayload{Event: models.ActivityEvent{
		EventID:    "evt-1",
		EventType:  models.ActivityDealCreated,
		EntityType: "deal",
		EntityID:   12,
		Payload:    json.RawMessage(`{"dealId":12}`),
	}}
	require.NoError(t, h.HandleActivity(context.Background(), task(t, TypeActivityLog, payload)))
	d.activity.AssertExpectations(t)
}

func TestHandleLedger(t *testing.T) {
	h, d := newHandlers(t)

	t.Run("records the entry", func(t *testing.T) {
		d.ledger.On("Record", mock.Anything, int64(12), int64(3), 45000.0, "Used car sale: Mazda 3").
			Return(&models.LedgerEntry{ID: 1}, nil).Once()

		err := h.HandleLedger(context.Background(), task(t, TypeLedgerRecord, LedgerPayload{
			DealID: 12, CustomerID: 3, Amount: 45000, Label: "Used car sale: Mazda 3",
		}))
		require.NoError(t, err)
	})

	t.Run("repository failure is retried", func(t *testing.T) {
		d.ledger.On("Record", mock.Anything, int64(13), int64(3), 100.0, "x").
			Return(nil, errors.New("connection reset")).Once()

		err := h.HandleLedger(context.Background(), task(t, TypeLedgerRecord, LedgerPayload{
			DealID: 13, CustomerID: 3, Amount: 100, Label: "x",
		}))
		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})
}

func TestMalformedPayloadIsNotRetried(t *testing.T) {
	h, d := newHandlers(t)

	err := h.HandlePriceSync(context.Background(), asynq.NewTask(TypeVehiclePriceSync, []byte("{not json")))

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	d.vehicles.AssertNotCalled(t, "UpdateSalePrice", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogOnlyDropsTasks(t *testing.T) {
	l := NewLogOnly(zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	assert.NoError(t, l.EnqueuePriceSync(ctx, PriceSyncPayload{VehicleID: 1, Price: 10}))
	assert.NoError(t, l.EnqueueAttachments(ctx, AttachmentsPayload{DealID: 1}))
	assert.NoError(t, l.EnqueueActivity(ctx, ActivityPayload{}))
	assert.NoError(t, l.EnqueueLedger(ctx, LedgerPayload{DealID: 1}))
}
