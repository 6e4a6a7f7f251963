package service

import (
	"errors"
	"strings"
)

var (
	ErrSubmitInFlight   = errors.New("a submission for this form is already in progress")
	ErrTradeInVehicle   = errors.New("failed to register the trade-in vehicle")
	ErrSessionNotFound  = errors.New("form session not found or expired")
	ErrVehicleRequired  = errors.New("vehicle is required")
	ErrCustomerRequired = errors.New("customer is required")
)

// GenericFailureMessage is shown when the backend gives no usable message
const GenericFailureMessage = "Something went wrong. Please try again."

// ValidationError lists every missing or invalid field. Nothing was written.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// BlockingError is a fatal failure of the primary write. Message is safe to show the user.
type BlockingError struct {
	Message string
	Err     error
}

func (e *BlockingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *BlockingError) Unwrap() error { return e.Err }

// blocking wraps err with the backend message when there is one
func blocking(err error) *BlockingError {
	msg := GenericFailureMessage
	if err != nil {
		if root := rootMessage(err); root != "" {
			msg = root
		}
	}
	return &BlockingError{Message: msg, Err: err}
}

// rootMessage returns the message of the innermost wrapped error
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return strings.TrimSpace(err.Error())
		}
		err = next
	}
}

// Notification is the toast shown to the user
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const (
	NotificationSuccess = "success"
	NotificationDanger  = "danger"
)
