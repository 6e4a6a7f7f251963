package pricing

import (
	"fmt"
	"strings"
	"time"

	"dealdesk/models"
	"dealdesk/utils"
)

// Missing field labels reported before submit
const (
	FieldCustomer            = "Customer"
	FieldCar                 = "Car"
	FieldTitle               = "Title"
	FieldSellingPrice        = "Selling price"
	FieldOldCarManufacturer  = "Old car manufacturer"
	FieldOldCarName          = "Old car name"
	FieldOldCarYear          = "Old car year"
	FieldOldCarPurchasePrice = "Old car purchase price"
	FieldCompanyName         = "Company name"
	FieldCommissionDate      = "Commission date"
	FieldAmount              = "Amount"
	FieldSeller              = "Seller"
	FieldBuyer               = "Buyer"
	FieldProfitCommission    = "Profit commission"
	FieldFinancingCommission = "Commission"
)

const commissionDateLayout = "2006-01-02"

// Amount computes the profit or commission of a form.
// For sale and exchange deals it is selling price minus the car's buy price minus
// the loss amount; commission deals carry the entered figure as is.
func Amount(form DealForm, vehicle *models.Vehicle) (float64, error) {
	var buyPrice float64
	if vehicle != nil {
		buyPrice = vehicle.BuyPrice
	}

	switch f := form.(type) {
	case *SaleForm:
		return utils.AmountOrZero(f.SellingPrice) - buyPrice - utils.AmountOrZero(f.LossAmount), nil
	case *ExchangeForm:
		// the old car's prices, evaluation and additional amount never enter the profit
		return utils.AmountOrZero(f.SellingPrice) - buyPrice - utils.AmountOrZero(f.LossAmount), nil
	case *CompanyCommissionForm:
		return utils.AmountOrZero(f.Amount), nil
	case *IntermediaryForm:
		return utils.AmountOrZero(f.ProfitCommission), nil
	case *FinancingAssistanceForm:
		return utils.AmountOrZero(f.Commission), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrUnknownDealType, form)
}

// MissingFields lists every field that blocks submission, in form order
func MissingFields(form DealForm) []string {
	var missing []string
	need := func(ok bool, label string) {
		if !ok {
			missing = append(missing, label)
		}
	}

	switch f := form.(type) {
	case *SaleForm:
		need(f.CustomerID != nil, FieldCustomer)
		need(f.CarID != nil, FieldCar)
		need(strings.TrimSpace(f.Title) != "", FieldTitle)
		need(positive(f.SellingPrice), FieldSellingPrice)
	case *ExchangeForm:
		need(f.CustomerID != nil, FieldCustomer)
		need(f.CarID != nil, FieldCar)
		need(strings.TrimSpace(f.Title) != "", FieldTitle)
		need(strings.TrimSpace(f.OldCar.Manufacturer) != "", FieldOldCarManufacturer)
		need(strings.TrimSpace(f.OldCar.Name) != "", FieldOldCarName)
		need(f.OldCar.Year > 0, FieldOldCarYear)
		need(positive(f.OldCar.PurchasePrice), FieldOldCarPurchasePrice)
	case *CompanyCommissionForm:
		need(strings.TrimSpace(f.Title) != "", FieldTitle)
		need(strings.TrimSpace(f.CompanyName) != "", FieldCompanyName)
		_, err := parseCommissionDate(f.CommissionDate)
		need(err == nil, FieldCommissionDate)
		need(positive(f.Amount), FieldAmount)
	case *IntermediaryForm:
		need(f.SellerID != nil, FieldSeller)
		need(f.BuyerID != nil, FieldBuyer)
		need(f.CarID != nil, FieldCar)
		need(strings.TrimSpace(f.Title) != "", FieldTitle)
		need(positive(f.ProfitCommission), FieldProfitCommission)
	case *FinancingAssistanceForm:
		need(f.CustomerID != nil, FieldCustomer)
		need(f.CarID != nil, FieldCar)
		need(strings.TrimSpace(f.Title) != "", FieldTitle)
		need(positive(f.Commission), FieldFinancingCommission)
	}
	return missing
}

// BuildDealRecord turns a complete form into the record handed to persistence.
// CarTakenFromClient is left for the caller to fill once the trade-in exists.
func BuildDealRecord(form DealForm, vehicle *models.Vehicle) (models.DealRecord, error) {
	amount, err := Amount(form, vehicle)
	if err != nil {
		return models.DealRecord{}, err
	}

	rec := models.DealRecord{
		DealType:    form.DealType(),
		Status:      models.DealStatusActive,
		Amount:      amount,
		Attachments: models.Attachments{},
	}

	switch f := form.(type) {
	case *SaleForm:
		rec.CustomerID, rec.CarID, rec.Title, rec.Notes = f.CustomerID, f.CarID, f.Title, f.Notes
		rec.SellingPrice = optionalAmount(f.SellingPrice)
		rec.LossAmount = optionalAmount(f.LossAmount)
	case *ExchangeForm:
		rec.CustomerID, rec.CarID, rec.Title, rec.Notes = f.CustomerID, f.CarID, f.Title, f.Notes
		rec.SellingPrice = optionalAmount(f.SellingPrice)
		rec.LossAmount = optionalAmount(f.LossAmount)
	case *CompanyCommissionForm:
		rec.Title, rec.Notes = f.Title, f.Notes
		name := strings.TrimSpace(f.CompanyName)
		rec.CompanyName = &name
		date, err := parseCommissionDate(f.CommissionDate)
		if err != nil {
			return models.DealRecord{}, fmt.Errorf("%w: commission date: %v", ErrInvalidFields, err)
		}
		rec.CommissionDate = &date
	case *IntermediaryForm:
		rec.SellerID, rec.BuyerID, rec.CarID, rec.Title, rec.Notes = f.SellerID, f.BuyerID, f.CarID, f.Title, f.Notes
	case *FinancingAssistanceForm:
		rec.CustomerID, rec.CarID, rec.Title, rec.Notes = f.CustomerID, f.CarID, f.Title, f.Notes
	}

	return rec, nil
}

// TradeInVehicle builds the inventory record for the car handed in on an exchange
func TradeInVehicle(f *ExchangeForm) models.Vehicle {
	return models.Vehicle{
		Manufacturer: strings.TrimSpace(f.OldCar.Manufacturer),
		Name:         strings.TrimSpace(f.OldCar.Name),
		Year:         f.OldCar.Year,
		Status:       models.VehicleStatusReceivedFromClient,
		BuyPrice:     utils.AmountOrZero(f.OldCar.PurchasePrice),
		SalePrice:    utils.AmountOrZero(f.OldCar.MarketPrice),
	}
}

func positive(s string) bool {
	v, ok := utils.ParseAmount(s)
	return ok && v > 0
}

func optionalAmount(s string) *float64 {
	v, ok := utils.ParseAmount(s)
	if !ok {
		return nil
	}
	return &v
}

func parseCommissionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(commissionDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
