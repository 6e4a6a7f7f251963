package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"dealdesk/booking"
	"dealdesk/pricing"
	"dealdesk/repository"
	"dealdesk/service"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Type          string   `json:"type"`
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.S().Errorf("❌ Error encoding response: %v", err)
	}
}

// writeError maps err onto a status code and the danger notification body
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := ErrorResponse{Type: service.NotificationDanger, Message: service.GenericFailureMessage}

	var validationErr *service.ValidationError
	var blockingErr *service.BlockingError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
		body.Message = "Please fill in all required fields"
		body.MissingFields = validationErr.Missing
	case errors.As(err, &blockingErr):
		status = http.StatusBadGateway
		body.Message = blockingErr.Message
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
		body.Message = err.Error()
	case errors.Is(err, service.ErrSubmitInFlight):
		status = http.StatusConflict
		body.Message = err.Error()
	case isBadInput(err):
		status = http.StatusBadRequest
		body.Message = err.Error()
	default:
		zap.S().Errorf("❌ Unhandled error: %v", err)
	}

	writeJSON(w, status, body)
}

func isBadInput(err error) bool {
	for _, target := range []error{
		pricing.ErrUnknownDealType,
		pricing.ErrNoSellingPrice,
		pricing.ErrInvalidFields,
		booking.ErrUnknownBookingType,
		booking.ErrUnknownCategory,
		booking.ErrUnknownRateType,
		booking.ErrRateNotSwitchable,
		booking.ErrSelectionIndex,
		booking.ErrDestinationNotAllowed,
		booking.ErrCategoryHidden,
		booking.ErrInvalidQuantity,
		booking.ErrNegativeParticipants,
		errBadRequest,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var errBadRequest = errors.New("invalid request")

// readJSON decodes and validates the request body into dest
func readJSON(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// int64Param parses a positive id from the route
func int64Param(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
	}
	return id, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
	}
	return n, nil
}
