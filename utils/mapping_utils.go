package utils

import (
	"strings"

	"dealdesk/models"
)

var billTypeSynonyms = map[string]string{
	"general":             models.BillTypeGeneral,
	"general_bill":        models.BillTypeGeneral,
	"receipt":             models.BillTypeReceiptOnly,
	"receipt_only":        models.BillTypeReceiptOnly,
	"tax_invoice":         models.BillTypeTaxInvoice,
	"tax":                 models.BillTypeTaxInvoice,
	"tax_invoice_receipt": models.BillTypeTaxInvoiceReceipt,
	"tax_receipt":         models.BillTypeTaxInvoiceReceipt,
	"invoice_receipt":     models.BillTypeTaxInvoiceReceipt,
}

// NormalizeBillType maps a stored bill_type onto one of the four document variants.
// Input is trimmed and lowercased before lookup. known is false when the value
// was not recognized and general was used instead.
func NormalizeBillType(billType string) (normalized string, known bool) {
	key := strings.ToLower(strings.TrimSpace(billType))
	if v, ok := billTypeSynonyms[key]; ok {
		return v, true
	}
	return models.BillTypeGeneral, false
}

// IsTaxBearing reports whether the normalized bill type carries VAT
func IsTaxBearing(billType string) bool {
	return billType == models.BillTypeTaxInvoice || billType == models.BillTypeTaxInvoiceReceipt
}

// IsRTL reports whether documents in lang are laid out right-to-left
func IsRTL(lang string) bool {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "he", "ar":
		return true
	}
	return false
}

// BookingReferencePrefix returns the two-letter reference code of a booking type
func BookingReferencePrefix(t models.BookingType) string {
	switch t {
	case models.BookingTypeFullTrip:
		return "FT"
	case models.BookingTypeGuidesOnly:
		return "GU"
	case models.BookingTypeParamedicsOnly:
		return "PM"
	case models.BookingTypeSecurityOnly:
		return "SC"
	case models.BookingTypeEntertainmentOnly:
		return "EN"
	case models.BookingTypeTransportationOnly:
		return "TR"
	case models.BookingTypeEducationOnly:
		return "ED"
	}
	return "BK"
}
