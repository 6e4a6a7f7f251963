package models

import (
	"encoding/json"
	"time"
)

// CreateDealFormRequest is the body of POST /deal-forms
type CreateDealFormRequest struct {
	DealType DealType `json:"dealType" validate:"required"`
}

type SetDealTypeRequest struct {
	DealType DealType `json:"dealType" validate:"required"`
}

// SelectEntityRequest selects a vehicle or customer by id; a null id clears the selection
type SelectEntityRequest struct {
	ID *int64 `json:"id" validate:"omitempty,gt=0"`
}

type SellingPriceRequest struct {
	SellingPrice string `json:"sellingPrice"`
}

// DealPreviewRequest is the body of POST /deals/preview
type DealPreviewRequest struct {
	DealType DealType        `json:"dealType" validate:"required"`
	Fields   json.RawMessage `json:"fields"`
}

// CreateBookingFormRequest is the body of POST /booking-forms. A missing bookingType starts a legacy full trip.
type CreateBookingFormRequest struct {
	BookingType *BookingType `json:"bookingType"`
}

type SetBookingTypeRequest struct {
	BookingType BookingType `json:"bookingType" validate:"required"`
}

type SetDestinationRequest struct {
	DestinationID *int64 `json:"destinationId" validate:"omitempty,gt=0"`
}

type SetTripRequest struct {
	TripDate *time.Time `json:"tripDate"`
}

type SetParticipantsRequest struct {
	NumberOfStudents int `json:"numberOfStudents" validate:"gte=0"`
	NumberOfCrew     int `json:"numberOfCrew" validate:"gte=0"`
}

type AdminTargetRequest struct {
	AdminOverride  bool   `json:"adminOverride"`
	TargetSchoolID string `json:"targetSchoolId"`
	TargetUserID   string `json:"targetUserId"`
}

type ToggleServiceRequest struct {
	Category   ServiceCategory `json:"category" validate:"required"`
	OfferingID int64           `json:"offeringId" validate:"required,gt=0"`
}

type SetRateTypeRequest struct {
	RateType string `json:"rateType" validate:"required,oneof=hourly daily regional overnight"`
}

type UpdateSelectionRequest struct {
	Quantity *int `json:"quantity" validate:"omitempty,gte=1"`
	Hours    *int `json:"hours" validate:"omitempty,gte=0"`
	Days     *int `json:"days" validate:"omitempty,gte=0"`
}
