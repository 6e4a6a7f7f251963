package pricing

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/models"
)

func newSaleController(t *testing.T) *DealFormController {
	t.Helper()
	c, err := NewDealFormController(models.DealTypeUsedSale)
	require.NoError(t, err)
	return c
}

func sellingPrice(c *DealFormController) string {
	field, _ := sellingPriceField(c.Form())
	return *field
}

func TestSelectVehicle_AutoFillsSellingPrice(t *testing.T) {
	c := newSaleController(t)
	c.SelectVehicle(&models.Vehicle{ID: 1, SalePrice: 52000})

	assert.Equal(t, "52000", sellingPrice(c))
}

func TestAutoFill_IsIdempotent(t *testing.T) {
	c := newSaleController(t)
	v := &models.Vehicle{ID: 1, SalePrice: 52000}
	c.SelectVehicle(v)
	first := sellingPrice(c)

	for i := 0; i < 5; i++ {
		c.SelectVehicle(v)
		c.SelectCustomer(&models.Customer{ID: 3, Name: "Dana"})
		assert.Equal(t, first, sellingPrice(c))
	}
}

func TestAutoFill_RespectsManualEdit(t *testing.T) {
	c := newSaleController(t)
	v := &models.Vehicle{ID: 1, SalePrice: 52000}
	c.SelectVehicle(v)
	require.NoError(t, c.EditSellingPrice("49900"))

	c.SelectCustomer(&models.Customer{ID: 3, Name: "Dana"})
	require.NoError(t, c.ApplyFields(json.RawMessage(`{"notes":"paid in cash","lossAmount":"100"}`)))
	c.SelectVehicle(v)

	assert.Equal(t, "49900", sellingPrice(c))
}

func TestAutoFill_VehicleChangeOverwritesEdit(t *testing.T) {
	c := newSaleController(t)
	c.SelectVehicle(&models.Vehicle{ID: 1, SalePrice: 52000})
	require.NoError(t, c.EditSellingPrice("49900"))

	c.SelectVehicle(&models.Vehicle{ID: 2, SalePrice: 61000})

	assert.Equal(t, "61000", sellingPrice(c))
	assert.Nil(t, c.PendingSellingPriceOverride())
}

func TestSetDealType_ResetsMarkerAndKeepsCommonFields(t *testing.T) {
	c := newSaleController(t)
	c.SelectCustomer(&models.Customer{ID: 3, Name: "Dana"})
	c.SelectVehicle(&models.Vehicle{ID: 1, SalePrice: 52000})
	require.NoError(t, c.EditSellingPrice("49900"))

	require.NoError(t, c.SetDealType(models.DealTypeExchange))

	ex, ok := c.Form().(*ExchangeForm)
	require.True(t, ok)
	assert.Equal(t, "52000", ex.SellingPrice)
	assert.Equal(t, int64(3), *ex.CustomerID)
	assert.Equal(t, int64(1), *ex.CarID)
}

func TestSetDealType_KeepsLossAmountBetweenSaleForms(t *testing.T) {
	c, err := NewDealFormController(models.DealTypeNewSale)
	require.NoError(t, err)
	c.SelectVehicle(&models.Vehicle{ID: 1, BuyPrice: 40000, SalePrice: 42000})
	require.NoError(t, c.ApplyFields([]byte(`{"lossAmount": "1500", "notes": "scratch on door"}`)))

	require.NoError(t, c.SetDealType(models.DealTypeUsedSale))

	sale, ok := c.Form().(*SaleForm)
	require.True(t, ok)
	assert.Equal(t, models.DealTypeUsedSale, sale.DealType())
	assert.Equal(t, "1500", sale.LossAmount)
	assert.Equal(t, "scratch on door", sale.Notes)
	preview, err := c.Preview()
	require.NoError(t, err)
	assert.Equal(t, 500.0, preview.Amount)

	require.NoError(t, c.SetDealType(models.DealTypeExchange))
	ex, ok := c.Form().(*ExchangeForm)
	require.True(t, ok)
	assert.Equal(t, "1500", ex.LossAmount)
}

func TestSetDealType_Unknown(t *testing.T) {
	c := newSaleController(t)
	err := c.SetDealType("barter")
	assert.True(t, errors.Is(err, ErrUnknownDealType))
}

func TestEditSellingPrice_KeepsVehicleSnapshotReadOnly(t *testing.T) {
	c := newSaleController(t)
	v := &models.Vehicle{ID: 1, BuyPrice: 40000, SalePrice: 42000}
	c.SelectVehicle(v)

	require.NoError(t, c.EditSellingPrice("45000"))

	assert.Equal(t, 42000.0, v.SalePrice)
	assert.Equal(t, 42000.0, c.Vehicle().SalePrice)
	require.NotNil(t, c.PendingSellingPriceOverride())
	assert.Equal(t, 45000.0, *c.PendingSellingPriceOverride())
	assert.Equal(t, 45000.0, c.EffectiveVehicle().SalePrice)
}

func TestEditSellingPrice_WithinEpsilonHasNoOverride(t *testing.T) {
	c := newSaleController(t)
	c.SelectVehicle(&models.Vehicle{ID: 1, SalePrice: 42000})

	require.NoError(t, c.EditSellingPrice("42000.0005"))
	assert.Nil(t, c.PendingSellingPriceOverride())

	require.NoError(t, c.EditSellingPrice("not a number"))
	assert.Nil(t, c.PendingSellingPriceOverride())
}

func TestEditSellingPrice_CommissionTypeRejected(t *testing.T) {
	c, err := NewDealFormController(models.DealTypeCompanyCommission)
	require.NoError(t, err)

	err = c.EditSellingPrice("100")
	assert.True(t, errors.Is(err, ErrNoSellingPrice))
}

func TestApplyFields_IgnoresManagedKeys(t *testing.T) {
	c := newSaleController(t)
	c.SelectVehicle(&models.Vehicle{ID: 1, SalePrice: 52000})

	require.NoError(t, c.ApplyFields(json.RawMessage(`{"carId":99,"sellingPrice":"1","title":"Custom"}`)))

	sale := c.Form().(*SaleForm)
	assert.Equal(t, int64(1), *sale.CarID)
	assert.Equal(t, "52000", sale.SellingPrice)
	assert.Equal(t, "Custom", sale.Title)
}

func TestApplyFields_InvalidJSON(t *testing.T) {
	c := newSaleController(t)
	assert.Error(t, c.ApplyFields(json.RawMessage(`[1,2]`)))
}

func TestTitle_SynthesizedUntilUserTypesOne(t *testing.T) {
	c := newSaleController(t)
	c.SelectVehicle(&models.Vehicle{ID: 1, Manufacturer: "Mazda", Name: "3", Year: 2020})
	assert.Equal(t, "Used car sale: Mazda 3 2020", c.Form().(*SaleForm).Title)

	c.SelectCustomer(&models.Customer{ID: 3, Name: "Dana"})
	assert.Equal(t, "Used car sale: Mazda 3 2020 - Dana", c.Form().(*SaleForm).Title)

	require.NoError(t, c.ApplyFields(json.RawMessage(`{"title":"Dana's Mazda"}`)))
	c.SelectCustomer(&models.Customer{ID: 4, Name: "Noa"})
	assert.Equal(t, "Dana's Mazda", c.Form().(*SaleForm).Title)
}

func TestPriceSync(t *testing.T) {
	c := newSaleController(t)
	_, _, ok := c.PriceSync()
	assert.False(t, ok)

	c.SelectVehicle(&models.Vehicle{ID: 5, BuyPrice: 40000, SalePrice: 42000})
	_, _, ok = c.PriceSync()
	assert.False(t, ok, "auto-filled price equals the vehicle price")

	require.NoError(t, c.EditSellingPrice("45000"))
	id, price, ok := c.PriceSync()
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, 45000.0, price)
}

func TestPreview_EndToEndSale(t *testing.T) {
	c := newSaleController(t)
	c.SelectCustomer(&models.Customer{ID: 11, Name: "X"})
	c.SelectVehicle(&models.Vehicle{ID: 5, BuyPrice: 40000, SalePrice: 43000})
	require.NoError(t, c.EditSellingPrice("45000"))

	p, err := c.Preview()
	require.NoError(t, err)

	assert.True(t, p.IsValid)
	assert.Empty(t, p.MissingFields)
	assert.Equal(t, 5000.0, p.Amount)
	assert.Equal(t, 45000.0, p.Vehicle.SalePrice)
}
