package pricing

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestAmount_SaleSubtractsBuyPriceAndLoss(t *testing.T) {
	form := &SaleForm{Type: models.DealTypeUsedSale, SellingPrice: "60000", LossAmount: "2000"}
	amount, err := Amount(form, &models.Vehicle{BuyPrice: 50000})

	require.NoError(t, err)
	assert.Equal(t, 8000.0, amount)
}

func TestAmount_ExchangeIgnoresDisplayOnlyFields(t *testing.T) {
	form := &ExchangeForm{
		SellingPrice:     "80000",
		LossAmount:       "0",
		OldCar:           OldCar{PurchasePrice: "30000", MarketPrice: "35000"},
		OldCarEvaluation: "32000",
		AdditionalAmount: "48000",
	}
	amount, err := Amount(form, &models.Vehicle{BuyPrice: 60000})

	require.NoError(t, err)
	assert.Equal(t, 20000.0, amount)
}

func TestAmount_CommissionTypesUseEnteredFigure(t *testing.T) {
	vehicle := &models.Vehicle{BuyPrice: 99999}

	amount, err := Amount(&CompanyCommissionForm{Amount: "1500"}, vehicle)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, amount)

	amount, err = Amount(&IntermediaryForm{ProfitCommission: "2500"}, vehicle)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, amount)

	amount, err = Amount(&FinancingAssistanceForm{Commission: "700"}, vehicle)
	require.NoError(t, err)
	assert.Equal(t, 700.0, amount)
}

func TestNewForm_UnknownType(t *testing.T) {
	_, err := NewForm("lease")
	assert.True(t, errors.Is(err, ErrUnknownDealType))
}

func TestNewForm_EveryTypeHasAForm(t *testing.T) {
	for _, dt := range models.AllDealTypes {
		form, err := NewForm(dt)
		require.NoError(t, err, dt)
		assert.Equal(t, dt, form.DealType())
	}
}

func TestMissingFields(t *testing.T) {
	tests := []struct {
		name string
		form DealForm
		want []string
	}{
		{
			name: "empty sale",
			form: &SaleForm{Type: models.DealTypeNewSale},
			want: []string{FieldCustomer, FieldCar, FieldTitle, FieldSellingPrice},
		},
		{
			name: "sale with zero price",
			form: &SaleForm{Type: models.DealTypeNewSale, CustomerID: int64Ptr(1), CarID: int64Ptr(2), Title: "x", SellingPrice: "0"},
			want: []string{FieldSellingPrice},
		},
		{
			name: "complete sale",
			form: &SaleForm{Type: models.DealTypeNewSale, CustomerID: int64Ptr(1), CarID: int64Ptr(2), Title: "x", SellingPrice: "10"},
			want: nil,
		},
		{
			name: "exchange without old car",
			form: &ExchangeForm{CustomerID: int64Ptr(1), CarID: int64Ptr(2), Title: "x"},
			want: []string{FieldOldCarManufacturer, FieldOldCarName, FieldOldCarYear, FieldOldCarPurchasePrice},
		},
		{
			name: "company commission",
			form: &CompanyCommissionForm{Title: "x", CommissionDate: "31/12/2024"},
			want: []string{FieldCompanyName, FieldCommissionDate, FieldAmount},
		},
		{
			name: "intermediary",
			form: &IntermediaryForm{CarID: int64Ptr(3), Title: "x", ProfitCommission: "10"},
			want: []string{FieldSeller, FieldBuyer},
		},
		{
			name: "financing assistance",
			form: &FinancingAssistanceForm{CustomerID: int64Ptr(1), Commission: "-5"},
			want: []string{FieldCar, FieldTitle, FieldFinancingCommission},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingFields(tt.form))
		})
	}
}

func TestBuildDealRecord_SaleWithEmptyLoss(t *testing.T) {
	form := &SaleForm{
		Type:         models.DealTypeNewSale,
		CustomerID:   int64Ptr(7),
		CarID:        int64Ptr(9),
		Title:        "Sale",
		SellingPrice: "45000",
	}
	rec, err := BuildDealRecord(form, &models.Vehicle{ID: 9, BuyPrice: 40000})

	require.NoError(t, err)
	assert.Equal(t, models.DealStatusActive, rec.Status)
	assert.Equal(t, 5000.0, rec.Amount)
	require.NotNil(t, rec.SellingPrice)
	assert.Equal(t, 45000.0, *rec.SellingPrice)
	assert.Nil(t, rec.LossAmount)
	assert.Equal(t, int64(7), *rec.CustomerID)
}

func TestBuildDealRecord_IntermediaryHasNoCustomer(t *testing.T) {
	form := &IntermediaryForm{SellerID: int64Ptr(1), BuyerID: int64Ptr(2), CarID: int64Ptr(3), Title: "x", ProfitCommission: "900"}
	rec, err := BuildDealRecord(form, nil)

	require.NoError(t, err)
	assert.Nil(t, rec.CustomerID)
	assert.Nil(t, rec.SellingPrice)
	assert.Equal(t, 900.0, rec.Amount)
	assert.Equal(t, int64(1), *rec.SellerID)
	assert.Equal(t, int64(2), *rec.BuyerID)
}

func TestBuildDealRecord_CompanyCommissionDate(t *testing.T) {
	form := &CompanyCommissionForm{Title: "x", CompanyName: " Acme ", CommissionDate: "2024-03-05", Amount: "1200"}
	rec, err := BuildDealRecord(form, nil)

	require.NoError(t, err)
	assert.Equal(t, "Acme", *rec.CompanyName)
	assert.Equal(t, "2024-03-05", rec.CommissionDate.Format("2006-01-02"))
	assert.Equal(t, 1200.0, rec.Amount)
}

func TestTradeInVehicle(t *testing.T) {
	v := TradeInVehicle(&ExchangeForm{OldCar: OldCar{Manufacturer: "Kia", Name: "Rio", Year: 2015, PurchasePrice: "30000"}})

	assert.Equal(t, models.VehicleStatusReceivedFromClient, v.Status)
	assert.Equal(t, 30000.0, v.BuyPrice)
	assert.Equal(t, 0.0, v.SalePrice)
	assert.Equal(t, 2015, v.Year)
}

func TestDecodeForm(t *testing.T) {
	form, err := DecodeForm(models.DealTypeExchange, json.RawMessage(`{"sellingPrice":"100","oldCar":{"year":2010}}`))
	require.NoError(t, err)

	ex, ok := form.(*ExchangeForm)
	require.True(t, ok)
	assert.Equal(t, "100", ex.SellingPrice)
	assert.Equal(t, 2010, ex.OldCar.Year)
}
