package booking

import (
	"errors"

	"github.com/samber/lo"

	"dealdesk/models"
)

var (
	ErrUnknownBookingType    = errors.New("unknown booking type")
	ErrUnknownCategory       = errors.New("unknown service category")
	ErrUnknownRateType       = errors.New("unknown rate type")
	ErrRateNotSwitchable     = errors.New("service category has fixed pricing")
	ErrSelectionIndex        = errors.New("selection index out of range")
	ErrDestinationNotAllowed = errors.New("booking type does not take a destination")
	ErrCategoryHidden        = errors.New("service category is not offered for this booking")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrNegativeParticipants  = errors.New("participant counts must not be negative")
)

// DefaultTravelPrice is used when a travel company has no default_price
const DefaultTravelPrice = 100.0

// Rate multipliers relative to the daily rate
const (
	regionalMultiplier  = 1.5
	overnightMultiplier = 2.0
)

// TypeConfig is the static configuration of a booking type
type TypeConfig struct {
	RequiredServices    []models.ServiceCategory
	AllowsDestination   bool
	RequiresDestination bool
}

var typeConfigs = map[models.BookingType]TypeConfig{
	models.BookingTypeFullTrip: {
		AllowsDestination:   true,
		RequiresDestination: true,
	},
	models.BookingTypeGuidesOnly: {
		RequiredServices: []models.ServiceCategory{models.CategoryGuides},
	},
	models.BookingTypeParamedicsOnly: {
		RequiredServices: []models.ServiceCategory{models.CategoryParamedics},
	},
	models.BookingTypeSecurityOnly: {
		RequiredServices: []models.ServiceCategory{models.CategorySecurity},
	},
	models.BookingTypeEntertainmentOnly: {
		RequiredServices: []models.ServiceCategory{models.CategoryEntertainment},
	},
	models.BookingTypeTransportationOnly: {
		RequiredServices:  []models.ServiceCategory{models.CategoryTravelCompanies},
		AllowsDestination: true,
	},
	models.BookingTypeEducationOnly: {
		AllowsDestination: true,
	},
}

// ConfigFor returns the configuration of t
func ConfigFor(t models.BookingType) (TypeConfig, error) {
	cfg, ok := typeConfigs[t]
	if !ok {
		return TypeConfig{}, ErrUnknownBookingType
	}
	return cfg, nil
}

// PersistableCategories are the categories written as booking service lines
var PersistableCategories = []models.ServiceCategory{
	models.CategoryParamedics,
	models.CategoryGuides,
	models.CategorySecurity,
	models.CategoryEntertainment,
	models.CategoryTravelCompanies,
}

var categoryLabels = map[models.ServiceCategory]string{
	models.CategoryParamedics:      "Paramedics",
	models.CategoryGuides:          "Guides",
	models.CategorySecurity:        "Security",
	models.CategoryEntertainment:   "Entertainment",
	models.CategoryTravelCompanies: "Transportation",
}

// CategoryLabel is the missing-field label of a service category
func CategoryLabel(c models.ServiceCategory) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// hasRateTiers reports whether a category prices by hourly/daily/regional/overnight rate
func hasRateTiers(c models.ServiceCategory) bool {
	return !lo.Contains([]models.ServiceCategory{models.CategoryEntertainment, models.CategoryTravelCompanies}, c)
}

func validRateType(r string) bool {
	return lo.Contains([]string{models.RateHourly, models.RateDaily, models.RateRegional, models.RateOvernight}, r)
}
