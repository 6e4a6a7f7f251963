package pricing

import (
	"strings"

	"dealdesk/models"
)

var dealTypeLabels = map[models.DealType]string{
	models.DealTypeNewSale:                         "New car sale",
	models.DealTypeUsedSale:                        "Used car sale",
	models.DealTypeNewUsedSale:                     "New/used car sale",
	models.DealTypeNewUsedSaleTaxInclusive:         "New/used car sale (tax inclusive)",
	models.DealTypeExchange:                        "Exchange",
	models.DealTypeCompanyCommission:               "Company commission",
	models.DealTypeIntermediary:                    "Intermediary",
	models.DealTypeFinancingAssistanceIntermediary: "Financing assistance",
}

// DealTypeLabel returns the display label of t
func DealTypeLabel(t models.DealType) string {
	if l, ok := dealTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// SynthesizeTitle builds "<type>: <car> - <customer>" from whatever is selected.
// It returns "" when neither a car nor a customer is known.
func SynthesizeTitle(t models.DealType, customer *models.Customer, vehicle *models.Vehicle) string {
	var parts []string
	if vehicle != nil {
		if name := strings.TrimSpace(vehicle.DisplayName()); name != "" {
			parts = append(parts, name)
		}
	}
	if customer != nil && strings.TrimSpace(customer.Name) != "" {
		parts = append(parts, strings.TrimSpace(customer.Name))
	}
	if len(parts) == 0 {
		return ""
	}
	return DealTypeLabel(t) + ": " + strings.Join(parts, " - ")
}
