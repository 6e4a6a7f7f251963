package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dealdesk/booking"
	"dealdesk/models"
	"dealdesk/service"
)

// BookingFormController handles HTTP requests for booking form sessions
type BookingFormController struct {
	sessions *service.SessionStore
	bookings service.BookingServiceInterface
	catalog  service.CatalogServiceInterface
}

// NewBookingFormController creates a new BookingFormController
func NewBookingFormController(
	sessions *service.SessionStore,
	bookings service.BookingServiceInterface,
	catalog service.CatalogServiceInterface,
) *BookingFormController {
	return &BookingFormController{
		sessions: sessions,
		bookings: bookings,
		catalog:  catalog,
	}
}

// BookingFormResponse is the state of a booking form session with everything derived from it
type BookingFormResponse struct {
	ID                string                   `json:"id"`
	BookingType       *models.BookingType      `json:"bookingType"`
	Destination       *models.Destination      `json:"destination"`
	TripDate          *time.Time               `json:"tripDate"`
	NumberOfStudents  int                      `json:"numberOfStudents"`
	NumberOfCrew      int                      `json:"numberOfCrew"`
	AdminOverride     bool                     `json:"adminOverride"`
	TargetSchoolID    string                   `json:"targetSchoolId,omitempty"`
	TargetUserID      string                   `json:"targetUserId,omitempty"`
	Selections        []booking.Selection      `json:"selections"`
	VisibleCategories []models.ServiceCategory `json:"visibleCategories"`
	Total             float64                  `json:"total"`
	Validation        booking.Validation       `json:"validation"`
}

// Create handles POST /booking-forms
// Example request:
// {"bookingType": "guides_only"}
func (c *BookingFormController) Create(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 CreateBookingForm: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateBookingFormRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sess, err := c.sessions.NewBookingForm(req.BookingType)
	if err != nil {
		writeError(w, err)
		return
	}
	c.respond(w, http.StatusCreated, sess)
}

// Get handles GET /booking-forms/{id}
func (c *BookingFormController) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.BookingForm(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	c.respond(w, http.StatusOK, sess)
}

// SetType handles PUT /booking-forms/{id}/type
func (c *BookingFormController) SetType(w http.ResponseWriter, r *http.Request) {
	var req models.SetBookingTypeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(f *booking.Form) error {
		return f.SetBookingType(req.BookingType)
	})
}

// SetDestination handles PUT /booking-forms/{id}/destination
func (c *BookingFormController) SetDestination(w http.ResponseWriter, r *http.Request) {
	var req models.SetDestinationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var destination *models.Destination
	if req.DestinationID != nil {
		d, err := c.catalog.Destination(r.Context(), *req.DestinationID)
		if err != nil {
			writeError(w, err)
			return
		}
		destination = d
	}
	c.update(w, r, func(f *booking.Form) error {
		return f.SetDestination(destination)
	})
}

// SetTrip handles PUT /booking-forms/{id}/trip
func (c *BookingFormController) SetTrip(w http.ResponseWriter, r *http.Request) {
	var req models.SetTripRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(f *booking.Form) error {
		f.SetTripDate(req.TripDate)
		return nil
	})
}

// SetParticipants handles PUT /booking-forms/{id}/participants
func (c *BookingFormController) SetParticipants(w http.ResponseWriter, r *http.Request) {
	var req models.SetParticipantsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(f *booking.Form) error {
		return f.SetParticipants(req.NumberOfStudents, req.NumberOfCrew)
	})
}

// SetAdminTarget handles PUT /booking-forms/{id}/admin-target
func (c *BookingFormController) SetAdminTarget(w http.ResponseWriter, r *http.Request) {
	var req models.AdminTargetRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(f *booking.Form) error {
		f.SetAdminTarget(req.AdminOverride, req.TargetSchoolID, req.TargetUserID)
		return nil
	})
}

// ToggleService handles POST /booking-forms/{id}/services/toggle
// Example request:
// {"category": "guides", "offeringId": 3}
func (c *BookingFormController) ToggleService(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleServiceRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !req.Category.Valid() {
		writeError(w, booking.ErrUnknownCategory)
		return
	}

	offering, err := c.catalog.Offering(r.Context(), req.Category, req.OfferingID)
	if err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(f *booking.Form) error {
		return f.ToggleService(req.Category, *offering)
	})
}

// SetRateType handles PUT /booking-forms/{id}/services/{index}/rate
func (c *BookingFormController) SetRateType(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.SetRateTypeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(f *booking.Form) error {
		return f.SetRateType(index, req.RateType)
	})
}

// UpdateSelection handles PUT /booking-forms/{id}/services/{index}
// Example request:
// {"quantity": 2, "days": 3}
func (c *BookingFormController) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.UpdateSelectionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(f *booking.Form) error {
		return f.UpdateSelection(index, booking.SelectionUpdate{
			Quantity: req.Quantity,
			Hours:    req.Hours,
			Days:     req.Days,
		})
	})
}

// Confirm handles POST /booking-forms/{id}/confirm
// Example response:
// {"reference": "GU12345607", "state": "confirmed", "confirmationDelayMs": 2000, ...}
func (c *BookingFormController) Confirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	zap.S().Infof("📥 ConfirmBooking: Received %s request for form %s", r.Method, id)

	sess, err := c.sessions.BookingForm(id)
	if err != nil {
		writeError(w, err)
		return
	}

	form, err := sess.Begin()
	if err != nil {
		writeError(w, err)
		return
	}
	defer sess.End()

	result, err := c.bookings.Confirm(r.Context(), form)
	if err != nil {
		zap.S().Warnf("❌ ConfirmBooking: form %s: %v", id, err)
		writeError(w, err)
		return
	}

	c.sessions.DeleteBookingForm(id)
	writeJSON(w, http.StatusCreated, result)
}

// GetBooking handles GET /bookings/{reference}
func (c *BookingFormController) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := c.bookings.GetByReference(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// ListDestinations handles GET /destinations
func (c *BookingFormController) ListDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := c.catalog.Destinations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, destinations)
}

// ListOfferings handles GET /offerings/{category}
func (c *BookingFormController) ListOfferings(w http.ResponseWriter, r *http.Request) {
	category := models.ServiceCategory(chi.URLParam(r, "category"))
	if !category.Valid() {
		writeError(w, booking.ErrUnknownCategory)
		return
	}
	offerings, err := c.catalog.Offerings(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerings)
}

func (c *BookingFormController) update(w http.ResponseWriter, r *http.Request, fn func(*booking.Form) error) {
	sess, err := c.sessions.BookingForm(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sess.Update(fn); err != nil {
		writeError(w, err)
		return
	}
	c.respond(w, http.StatusOK, sess)
}

func (c *BookingFormController) respond(w http.ResponseWriter, status int, sess *service.BookingFormSession) {
	var resp BookingFormResponse
	_ = sess.View(func(f *booking.Form) error {
		selections := f.Selections
		if selections == nil {
			selections = []booking.Selection{}
		}
		resp = BookingFormResponse{
			ID:                sess.ID,
			BookingType:       f.BookingType,
			Destination:       f.Destination,
			TripDate:          f.TripDate,
			NumberOfStudents:  f.NumberOfStudents,
			NumberOfCrew:      f.NumberOfCrew,
			AdminOverride:     f.AdminOverride,
			TargetSchoolID:    f.TargetSchoolID,
			TargetUserID:      f.TargetUserID,
			Selections:        selections,
			VisibleCategories: f.VisibleCategories(),
			Total:             f.Total(),
			Validation:        f.Validate(),
		}
		return nil
	})
	writeJSON(w, status, resp)
}
