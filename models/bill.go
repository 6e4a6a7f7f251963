package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Normalized bill types
const (
	BillTypeGeneral           = "general"
	BillTypeReceiptOnly       = "receipt_only"
	BillTypeTaxInvoice        = "tax_invoice"
	BillTypeTaxInvoiceReceipt = "tax_invoice_receipt"
)

// Bill represents a billing document as stored
type Bill struct {
	ID            int64     `json:"id" db:"id"`
	BillType      string    `json:"billType" db:"bill_type"`
	Number        string    `json:"number" db:"number"`
	IssuedAt      time.Time `json:"issuedAt" db:"issued_at"`
	CustomerName  string    `json:"customerName" db:"customer_name"`
	CustomerTaxID string    `json:"customerTaxId,omitempty" db:"customer_tax_id"`
	Items         BillItems `json:"items" db:"items"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
}

// BillItem is one line of a bill
type BillItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// BillItems is stored as a jsonb array
type BillItems []BillItem

// Value implements driver.Valuer
func (b BillItems) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner
func (b *BillItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*b = BillItems{}
		return nil
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("bill items: unsupported scan type %T", src)
	}
}
