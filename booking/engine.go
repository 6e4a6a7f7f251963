package booking

import (
	"github.com/samber/lo"

	"dealdesk/models"
)

// Selection is one chosen service offering
type Selection struct {
	Type     models.ServiceCategory `json:"type"`
	ID       int64                  `json:"id"`
	Name     string                 `json:"name"`
	Quantity int                    `json:"quantity"`
	RateType string                 `json:"rateType"`
	Cost     float64                `json:"cost"`
	Hours    *int                   `json:"hours,omitempty"`
	Days     *int                   `json:"days,omitempty"`

	Offering models.ServiceOffering `json:"offering"`
}

// NewSelection picks an offering with its default rate
func NewSelection(category models.ServiceCategory, offering models.ServiceOffering) Selection {
	days := 1
	sel := Selection{
		Type:     category,
		ID:       offering.ID,
		Name:     offering.Name,
		Quantity: 1,
		RateType: models.RateDaily,
		Days:     &days,
		Offering: offering,
	}

	switch category {
	case models.CategoryEntertainment:
		sel.RateType = models.RateFixed
		sel.Cost = valueOr(offering.Price, 0)
	case models.CategoryTravelCompanies:
		sel.Cost = travelPrice(offering)
	default:
		sel.Cost = valueOr(offering.DailyRate, 0)
	}
	return sel
}

// Toggle removes (category, offering.ID) when present and appends it otherwise
func Toggle(selections []Selection, category models.ServiceCategory, offering models.ServiceOffering) []Selection {
	_, idx, found := lo.FindIndexOf(selections, func(s Selection) bool {
		return s.Type == category && s.ID == offering.ID
	})
	if found {
		out := make([]Selection, 0, len(selections)-1)
		out = append(out, selections[:idx]...)
		return append(out, selections[idx+1:]...)
	}
	out := make([]Selection, 0, len(selections)+1)
	out = append(out, selections...)
	return append(out, NewSelection(category, offering))
}

// RateCost is the cost of an offering at a rate tier
func RateCost(offering models.ServiceOffering, rateType string) (float64, error) {
	daily := valueOr(offering.DailyRate, 0)
	switch rateType {
	case models.RateHourly:
		return valueOr(offering.HourlyRate, 0), nil
	case models.RateDaily:
		return daily, nil
	case models.RateRegional:
		return daily * regionalMultiplier, nil
	case models.RateOvernight:
		return daily * overnightMultiplier, nil
	}
	return 0, ErrUnknownRateType
}

// UnitPrice resolves the per-unit price of a selection for the total
func UnitPrice(s Selection) float64 {
	switch s.Type {
	case models.CategoryEntertainment:
		return valueOr(s.Offering.Price, 0)
	case models.CategoryTravelCompanies:
		return travelPrice(s.Offering)
	}
	return s.Cost
}

// LineCost is unit price x quantity x billed hours or days, each floored at 1
func LineCost(s Selection) float64 {
	var periods int
	if s.RateType == models.RateHourly {
		periods = max(valueOr(s.Hours, 1), 1)
	} else {
		periods = max(valueOr(s.Days, 1), 1)
	}
	return UnitPrice(s) * float64(s.Quantity) * float64(periods)
}

// ComputeTotal sums the destination base cost and every selection line
func ComputeTotal(selections []Selection, students, crew int, pricing *models.DestinationPricing) float64 {
	var base float64
	if pricing != nil {
		base = valueOr(pricing.Student, 0)*float64(students) + valueOr(pricing.Crew, 0)*float64(crew)
	}
	return base + lo.SumBy(selections, LineCost)
}

// ShouldShowServiceCategory decides whether a service section is offered.
// bookingType is nil for the legacy flow without an explicit type.
func ShouldShowServiceCategory(bookingType *models.BookingType, destination *models.Destination, category models.ServiceCategory) bool {
	if bookingType == nil {
		return true
	}
	if *bookingType == models.BookingTypeFullTrip && destination != nil {
		return lo.Contains(destination.Requirements, category)
	}
	cfg, ok := typeConfigs[*bookingType]
	if !ok || len(cfg.RequiredServices) == 0 {
		return true
	}
	return lo.Contains(cfg.RequiredServices, category)
}

func travelPrice(o models.ServiceOffering) float64 {
	if o.PricingData != nil && o.PricingData.DefaultPrice != nil {
		return *o.PricingData.DefaultPrice
	}
	return DefaultTravelPrice
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
