package pricing

import (
	"encoding/json"
	"errors"
	"fmt"

	"dealdesk/models"
	"dealdesk/utils"
)

var (
	ErrUnknownDealType = errors.New("unknown deal type")
	ErrNoSellingPrice  = errors.New("deal type has no selling price field")
	ErrInvalidFields   = errors.New("invalid form fields")
)

// DealForm is the set of fields the user fills in for one deal type.
// The concrete forms below are the only implementations.
type DealForm interface {
	DealType() models.DealType
	dealForm()
}

// SaleForm covers new_sale, used_sale, new_used_sale and new_used_sale_tax_inclusive
type SaleForm struct {
	Type         models.DealType `json:"-"`
	CustomerID   *int64          `json:"customerId,omitempty"`
	CarID        *int64          `json:"carId,omitempty"`
	Title        string          `json:"title"`
	SellingPrice string          `json:"sellingPrice"`
	LossAmount   string          `json:"lossAmount"`
	Notes        string          `json:"notes"`
}

// OldCar describes the vehicle a customer hands in on an exchange
type OldCar struct {
	Manufacturer  string `json:"manufacturer"`
	Name          string `json:"name"`
	Year          int    `json:"year"`
	PurchasePrice string `json:"purchasePrice"`
	MarketPrice   string `json:"marketPrice"`
}

// ExchangeForm sells a car while taking the customer's old one in trade.
// OldCarEvaluation and AdditionalAmount are shown to the user only.
type ExchangeForm struct {
	CustomerID       *int64 `json:"customerId,omitempty"`
	CarID            *int64 `json:"carId,omitempty"`
	Title            string `json:"title"`
	SellingPrice     string `json:"sellingPrice"`
	LossAmount       string `json:"lossAmount"`
	Notes            string `json:"notes"`
	OldCar           OldCar `json:"oldCar"`
	OldCarEvaluation string `json:"oldCarEvaluation"`
	AdditionalAmount string `json:"additionalAmount"`
}

type CompanyCommissionForm struct {
	Title          string `json:"title"`
	CompanyName    string `json:"companyName"`
	CommissionDate string `json:"commissionDate"`
	Amount         string `json:"amount"`
	Notes          string `json:"notes"`
}

type IntermediaryForm struct {
	SellerID         *int64 `json:"sellerId,omitempty"`
	BuyerID          *int64 `json:"buyerId,omitempty"`
	CarID            *int64 `json:"carId,omitempty"`
	Title            string `json:"title"`
	ProfitCommission string `json:"profitCommission"`
	Notes            string `json:"notes"`
}

type FinancingAssistanceForm struct {
	CustomerID *int64 `json:"customerId,omitempty"`
	CarID      *int64 `json:"carId,omitempty"`
	Title      string `json:"title"`
	Commission string `json:"commission"`
	Notes      string `json:"notes"`
}

func (f *SaleForm) DealType() models.DealType                { return f.Type }
func (f *ExchangeForm) DealType() models.DealType            { return models.DealTypeExchange }
func (f *CompanyCommissionForm) DealType() models.DealType   { return models.DealTypeCompanyCommission }
func (f *IntermediaryForm) DealType() models.DealType        { return models.DealTypeIntermediary }
func (f *FinancingAssistanceForm) DealType() models.DealType { return models.DealTypeFinancingAssistanceIntermediary }

func (*SaleForm) dealForm()                {}
func (*ExchangeForm) dealForm()            {}
func (*CompanyCommissionForm) dealForm()   {}
func (*IntermediaryForm) dealForm()        {}
func (*FinancingAssistanceForm) dealForm() {}

// NewForm returns an empty form for t
func NewForm(t models.DealType) (DealForm, error) {
	switch {
	case t.IsSale():
		return &SaleForm{Type: t}, nil
	case t == models.DealTypeExchange:
		return &ExchangeForm{}, nil
	case t == models.DealTypeCompanyCommission:
		return &CompanyCommissionForm{}, nil
	case t == models.DealTypeIntermediary:
		return &IntermediaryForm{}, nil
	case t == models.DealTypeFinancingAssistanceIntermediary:
		return &FinancingAssistanceForm{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDealType, t)
}

// DecodeForm builds a form of type t from its JSON fields
func DecodeForm(t models.DealType, raw json.RawMessage) (DealForm, error) {
	form, err := NewForm(t)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return form, nil
	}
	if err := json.Unmarshal(raw, form); err != nil {
		return nil, fmt.Errorf("%w: %s form: %v", ErrInvalidFields, t, err)
	}
	return form, nil
}

// common holds the fields that survive a deal type change
type common struct {
	customerID *int64
	carID      *int64
	title      string
	notes      string
	lossAmount string
}

func commonOf(f DealForm) common {
	switch f := f.(type) {
	case *SaleForm:
		return common{customerID: f.CustomerID, carID: f.CarID, title: f.Title, notes: f.Notes, lossAmount: f.LossAmount}
	case *ExchangeForm:
		return common{customerID: f.CustomerID, carID: f.CarID, title: f.Title, notes: f.Notes, lossAmount: f.LossAmount}
	case *CompanyCommissionForm:
		return common{title: f.Title, notes: f.Notes}
	case *IntermediaryForm:
		return common{carID: f.CarID, title: f.Title, notes: f.Notes}
	case *FinancingAssistanceForm:
		return common{customerID: f.CustomerID, carID: f.CarID, title: f.Title, notes: f.Notes}
	}
	return common{}
}

func (c common) applyTo(f DealForm) {
	switch f := f.(type) {
	case *SaleForm:
		f.CustomerID, f.CarID, f.Title, f.Notes = c.customerID, c.carID, c.title, c.notes
		f.LossAmount = c.lossAmount
	case *ExchangeForm:
		f.CustomerID, f.CarID, f.Title, f.Notes = c.customerID, c.carID, c.title, c.notes
		f.LossAmount = c.lossAmount
	case *CompanyCommissionForm:
		f.Title, f.Notes = c.title, c.notes
	case *IntermediaryForm:
		f.CarID, f.Title, f.Notes = c.carID, c.title, c.notes
	case *FinancingAssistanceForm:
		f.CustomerID, f.CarID, f.Title, f.Notes = c.customerID, c.carID, c.title, c.notes
	}
}

// sellingPriceField returns the selling price field of forms that have one
func sellingPriceField(f DealForm) (*string, bool) {
	switch f := f.(type) {
	case *SaleForm:
		return &f.SellingPrice, true
	case *ExchangeForm:
		return &f.SellingPrice, true
	}
	return nil, false
}

func setCarID(f DealForm, id *int64) {
	switch f := f.(type) {
	case *SaleForm:
		f.CarID = id
	case *ExchangeForm:
		f.CarID = id
	case *IntermediaryForm:
		f.CarID = id
	case *FinancingAssistanceForm:
		f.CarID = id
	}
}

func setCustomerID(f DealForm, id *int64) {
	switch f := f.(type) {
	case *SaleForm:
		f.CustomerID = id
	case *ExchangeForm:
		f.CustomerID = id
	case *FinancingAssistanceForm:
		f.CustomerID = id
	}
}

func titleField(f DealForm) *string {
	switch f := f.(type) {
	case *SaleForm:
		return &f.Title
	case *ExchangeForm:
		return &f.Title
	case *CompanyCommissionForm:
		return &f.Title
	case *IntermediaryForm:
		return &f.Title
	case *FinancingAssistanceForm:
		return &f.Title
	}
	return nil
}

// CarID returns the selected car of f, nil when none or when f has no car
func CarID(f DealForm) *int64 {
	return commonOf(f).carID
}

// CustomerID returns the selected customer of f
func CustomerID(f DealForm) *int64 {
	return commonOf(f).customerID
}

// SellingPrice returns the parsed selling price of forms that have one
func SellingPrice(f DealForm) (float64, bool) {
	field, ok := sellingPriceField(f)
	if !ok {
		return 0, false
	}
	return utils.ParseAmount(*field)
}
