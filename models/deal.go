package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DealType selects the form fields a deal carries and the formula for its amount
type DealType string

const (
	DealTypeNewSale                         DealType = "new_sale"
	DealTypeUsedSale                        DealType = "used_sale"
	DealTypeNewUsedSale                     DealType = "new_used_sale"
	DealTypeNewUsedSaleTaxInclusive         DealType = "new_used_sale_tax_inclusive"
	DealTypeExchange                        DealType = "exchange"
	DealTypeCompanyCommission               DealType = "company_commission"
	DealTypeIntermediary                    DealType = "intermediary"
	DealTypeFinancingAssistanceIntermediary DealType = "financing_assistance_intermediary"
)

// AllDealTypes lists every supported deal type
var AllDealTypes = []DealType{
	DealTypeNewSale,
	DealTypeUsedSale,
	DealTypeNewUsedSale,
	DealTypeNewUsedSaleTaxInclusive,
	DealTypeExchange,
	DealTypeCompanyCommission,
	DealTypeIntermediary,
	DealTypeFinancingAssistanceIntermediary,
}

// IsSale reports whether t is one of the four plain sale variants
func (t DealType) IsSale() bool {
	switch t {
	case DealTypeNewSale, DealTypeUsedSale, DealTypeNewUsedSale, DealTypeNewUsedSaleTaxInclusive:
		return true
	}
	return false
}

// Valid reports whether t is a known deal type
func (t DealType) Valid() bool {
	for _, known := range AllDealTypes {
		if t == known {
			return true
		}
	}
	return false
}

const DealStatusActive = "active"

// DealRecord represents a deal row as persisted
type DealRecord struct {
	ID                 int64       `json:"id" db:"id"`
	DealType           DealType    `json:"dealType" db:"deal_type"`
	Status             string      `json:"status" db:"status"`
	CustomerID         *int64      `json:"customerId" db:"customer_id"`
	SellingPrice       *float64    `json:"sellingPrice" db:"selling_price"`
	Amount             float64     `json:"amount" db:"amount"`
	LossAmount         *float64    `json:"lossAmount" db:"loss_amount"`
	CarID              *int64      `json:"carId" db:"car_id"`
	CarTakenFromClient *int64      `json:"carTakenFromClient,omitempty" db:"car_taken_from_client"`
	SellerID           *int64      `json:"sellerId,omitempty" db:"seller_id"`
	BuyerID            *int64      `json:"buyerId,omitempty" db:"buyer_id"`
	CompanyName        *string     `json:"companyName,omitempty" db:"company_name"`
	CommissionDate     *time.Time  `json:"commissionDate,omitempty" db:"commission_date"`
	Title              string      `json:"title" db:"title"`
	Notes              string      `json:"notes,omitempty" db:"notes"`
	Attachments        Attachments `json:"attachments" db:"attachments"`
	CreatedAt          time.Time   `json:"createdAt" db:"created_at"`
}

// Attachment kinds detected from uploaded file names
const (
	AttachmentCarLicense       = "car_license"
	AttachmentDriverLicense    = "driver_license"
	AttachmentTransferDocument = "transfer_document"
	AttachmentOther            = "other"
)

// Attachment is one uploaded file linked to a deal
type Attachment struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Attachments is stored as a jsonb array
type Attachments []Attachment

// Value implements driver.Valuer
func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *Attachments) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = Attachments{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("attachments: unsupported scan type %T", src)
	}
}
