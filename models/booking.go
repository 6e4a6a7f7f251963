package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BookingType selects which service categories a booking requires
type BookingType string

const (
	BookingTypeFullTrip           BookingType = "full_trip"
	BookingTypeGuidesOnly         BookingType = "guides_only"
	BookingTypeParamedicsOnly     BookingType = "paramedics_only"
	BookingTypeSecurityOnly       BookingType = "security_only"
	BookingTypeEntertainmentOnly  BookingType = "entertainment_only"
	BookingTypeTransportationOnly BookingType = "transportation_only"
	BookingTypeEducationOnly      BookingType = "education_only"
)

// ServiceCategory names a kind of ancillary service offering
type ServiceCategory string

const (
	CategoryParamedics      ServiceCategory = "paramedics"
	CategoryGuides          ServiceCategory = "guides"
	CategorySecurity        ServiceCategory = "security_companies"
	CategoryEntertainment   ServiceCategory = "external_entertainment_companies"
	CategoryTravelCompanies ServiceCategory = "travel_companies"
)

// AllServiceCategories in display order
var AllServiceCategories = []ServiceCategory{
	CategoryParamedics,
	CategoryGuides,
	CategorySecurity,
	CategoryEntertainment,
	CategoryTravelCompanies,
}

// Valid reports whether c is a known category
func (c ServiceCategory) Valid() bool {
	for _, known := range AllServiceCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Rate types for a selected service
const (
	RateHourly    = "hourly"
	RateDaily     = "daily"
	RateRegional  = "regional"
	RateOvernight = "overnight"
	RateFixed     = "fixed"
)

// PricingData is the jsonb pricing blob of a travel company
type PricingData struct {
	DefaultPrice *float64 `json:"default_price,omitempty"`
}

// Value implements driver.Valuer
func (p PricingData) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *PricingData) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = PricingData{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("pricing data: unsupported scan type %T", src)
	}
}

// ServiceOffering is one bookable provider of a category
type ServiceOffering struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	HourlyRate  *float64     `json:"hourlyRate,omitempty" db:"hourly_rate"`
	DailyRate   *float64     `json:"dailyRate,omitempty" db:"daily_rate"`
	Price       *float64     `json:"price,omitempty" db:"price"`
	PricingData *PricingData `json:"pricingData,omitempty" db:"pricing_data"`
}

// DestinationPricing holds per-participant base prices
type DestinationPricing struct {
	Student *float64 `json:"student,omitempty"`
	Crew    *float64 `json:"crew,omitempty"`
}

// Destination is a trip destination with its declared service requirements
type Destination struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Pricing      DestinationPricing `json:"pricing"`
	Requirements []ServiceCategory  `json:"requirements"`
}

// Booking represents a confirmed booking row
type Booking struct {
	ID               int64       `json:"id" db:"id"`
	Reference        string      `json:"reference" db:"reference"`
	BookingType      BookingType `json:"bookingType" db:"booking_type"`
	DestinationID    *int64      `json:"destinationId,omitempty" db:"destination_id"`
	TripDate         time.Time   `json:"tripDate" db:"trip_date"`
	NumberOfStudents int         `json:"numberOfStudents" db:"number_of_students"`
	NumberOfCrew     int         `json:"numberOfCrew" db:"number_of_crew"`
	SchoolID         *string     `json:"schoolId,omitempty" db:"school_id"`
	UserID           *string     `json:"userId,omitempty" db:"user_id"`
	TotalPrice       float64     `json:"totalPrice" db:"total_price"`
	Status           string      `json:"status" db:"status"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}

const BookingStatusPending = "pending"

// BookingServiceLine is one selected service persisted against a booking
type BookingServiceLine struct {
	ID          int64           `json:"id" db:"id"`
	BookingID   int64           `json:"bookingId" db:"booking_id"`
	ServiceType ServiceCategory `json:"serviceType" db:"service_type"`
	ServiceID   int64           `json:"serviceId" db:"service_id"`
	Name        string          `json:"name" db:"name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	RateType    string          `json:"rateType" db:"rate_type"`
	Cost        float64         `json:"cost" db:"cost"`
	Hours       *int            `json:"hours,omitempty" db:"hours"`
	Days        *int            `json:"days,omitempty" db:"days"`
}
