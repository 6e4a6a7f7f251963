package pricing

import (
	"encoding/json"
	"fmt"

	"dealdesk/models"
	"dealdesk/utils"
)

// autoFillMarker remembers the last price the controller itself wrote into the
// selling price field and for which vehicle
type autoFillMarker struct {
	vehicleID *int64
	price     string
}

// DealFormController owns the in-memory state of one deal form.
// The selected vehicle is kept as a read-only snapshot; a user-edited price that
// differs from it is held in pendingSellingPriceOverride until submit.
type DealFormController struct {
	form     DealForm
	vehicle  *models.Vehicle
	customer *models.Customer

	marker                      autoFillMarker
	pendingSellingPriceOverride *float64
	lastAutoTitle               string
}

// NewDealFormController starts an empty form of type t
func NewDealFormController(t models.DealType) (*DealFormController, error) {
	form, err := NewForm(t)
	if err != nil {
		return nil, err
	}
	return &DealFormController{form: form}, nil
}

func (c *DealFormController) Form() DealForm             { return c.form }
func (c *DealFormController) Vehicle() *models.Vehicle   { return c.vehicle }
func (c *DealFormController) Customer() *models.Customer { return c.customer }

// PendingSellingPriceOverride is the edited price waiting to be written to the vehicle
func (c *DealFormController) PendingSellingPriceOverride() *float64 {
	return c.pendingSellingPriceOverride
}

// SetDealType swaps the form for one of type t, keeping the fields both share.
// The auto-fill marker is reset so the new form picks up the vehicle price.
func (c *DealFormController) SetDealType(t models.DealType) error {
	if t == c.form.DealType() {
		return nil
	}
	next, err := NewForm(t)
	if err != nil {
		return err
	}
	commonOf(c.form).applyTo(next)
	c.form = next
	c.marker = autoFillMarker{}
	c.pendingSellingPriceOverride = nil
	c.refresh()
	return nil
}

// SelectVehicle stores a snapshot of v and runs auto-fill. nil clears the selection.
func (c *DealFormController) SelectVehicle(v *models.Vehicle) {
	if v == nil {
		c.vehicle = nil
		setCarID(c.form, nil)
		c.pendingSellingPriceOverride = nil
		c.refresh()
		return
	}
	snapshot := *v
	c.vehicle = &snapshot
	id := snapshot.ID
	setCarID(c.form, &id)
	c.refresh()
}

// SelectCustomer stores a snapshot of cust and runs auto-fill
func (c *DealFormController) SelectCustomer(cust *models.Customer) {
	if cust == nil {
		c.customer = nil
		setCustomerID(c.form, nil)
		c.refresh()
		return
	}
	snapshot := *cust
	c.customer = &snapshot
	id := snapshot.ID
	setCustomerID(c.form, &id)
	c.refresh()
}

// EditSellingPrice records a price typed by the user
func (c *DealFormController) EditSellingPrice(value string) error {
	field, ok := sellingPriceField(c.form)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSellingPrice, c.form.DealType())
	}
	*field = value
	c.updateOverride(value)
	return nil
}

// managedKeys are owned by the select/edit operations and ignored by ApplyFields
var managedKeys = []string{"customerId", "carId", "sellingPrice"}

// ApplyFields merges a JSON object of form fields into the current form.
// Keys that belong to the selection operations are ignored.
func (c *DealFormController) ApplyFields(raw json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}
	for _, k := range managedKeys {
		delete(fields, k)
	}
	cleaned, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode form fields: %w", err)
	}
	if err := json.Unmarshal(cleaned, c.form); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}
	c.refresh()
	return nil
}

// refresh re-evaluates the derived state after any input change.
// Repeated calls without user edits leave the form unchanged.
func (c *DealFormController) refresh() {
	c.autoFillSellingPrice()
	c.autoFillTitle()
}

func (c *DealFormController) autoFillSellingPrice() {
	field, ok := sellingPriceField(c.form)
	if !ok || c.vehicle == nil {
		return
	}

	vehicleChanged := c.marker.vehicleID == nil || *c.marker.vehicleID != c.vehicle.ID
	untouched := *field == c.marker.price
	if !vehicleChanged && !untouched {
		return
	}

	price := utils.FormatAmount(c.vehicle.SalePrice)
	*field = price
	id := c.vehicle.ID
	c.marker = autoFillMarker{vehicleID: &id, price: price}
	c.pendingSellingPriceOverride = nil
}

func (c *DealFormController) updateOverride(value string) {
	v, ok := utils.ParseAmount(value)
	if !ok || c.vehicle == nil || !utils.PriceDiffers(v, c.vehicle.SalePrice) {
		c.pendingSellingPriceOverride = nil
		return
	}
	c.pendingSellingPriceOverride = &v
}

// autoFillTitle replaces the title only while it is empty or still the one it generated
func (c *DealFormController) autoFillTitle() {
	title := titleField(c.form)
	if title == nil {
		return
	}
	if *title != "" && *title != c.lastAutoTitle {
		return
	}
	generated := SynthesizeTitle(c.form.DealType(), c.customer, c.vehicle)
	if generated == "" {
		return
	}
	*title = generated
	c.lastAutoTitle = generated
}

// EffectiveVehicle is the vehicle as the preview sees it, with any pending price applied
func (c *DealFormController) EffectiveVehicle() *models.Vehicle {
	if c.vehicle == nil {
		return nil
	}
	v := *c.vehicle
	if c.pendingSellingPriceOverride != nil {
		v.SalePrice = *c.pendingSellingPriceOverride
	}
	return &v
}

// PriceSync returns the sale price to persist onto the selected vehicle at submit.
// ok is false when there is no vehicle, no positive selling price, or no divergence.
func (c *DealFormController) PriceSync() (vehicleID int64, price float64, ok bool) {
	field, has := sellingPriceField(c.form)
	if !has || c.vehicle == nil {
		return 0, 0, false
	}
	v, parsed := utils.ParseAmount(*field)
	if !parsed || v <= 0 || !utils.PriceDiffers(v, c.vehicle.SalePrice) {
		return 0, 0, false
	}
	return c.vehicle.ID, v, true
}

// Preview is the live view of a form
type Preview struct {
	DealType                    models.DealType  `json:"dealType"`
	Form                        DealForm         `json:"form"`
	Vehicle                     *models.Vehicle  `json:"vehicle,omitempty"`
	Customer                    *models.Customer `json:"customer,omitempty"`
	Amount                      float64          `json:"amount"`
	PendingSellingPriceOverride *float64         `json:"pendingSellingPriceOverride,omitempty"`
	MissingFields               []string         `json:"missingFields"`
	IsValid                     bool             `json:"isValid"`
}

// Preview evaluates the form as it stands
func (c *DealFormController) Preview() (Preview, error) {
	amount, err := Amount(c.form, c.vehicle)
	if err != nil {
		return Preview{}, err
	}
	missing := MissingFields(c.form)
	if missing == nil {
		missing = []string{}
	}
	return Preview{
		DealType:                    c.form.DealType(),
		Form:                        c.form,
		Vehicle:                     c.EffectiveVehicle(),
		Customer:                    c.customer,
		Amount:                      amount,
		PendingSellingPriceOverride: c.pendingSellingPriceOverride,
		MissingFields:               missing,
		IsValid:                     len(missing) == 0,
	}, nil
}
