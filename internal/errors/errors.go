package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application. The donation
// gates each have their own sentinel so the HTTP layer can report a precise
// machine code without inspecting messages.
var (
	ErrNotFound            = New(ErrCodeNotFound, "resource not found")
	ErrValidation          = New(ErrCodeValidation, "validation error")
	ErrCampaignInactive    = New(ErrCodeCampaignInactive, "campaign is not accepting donations")
	ErrSignupNotOpen       = New(ErrCodeSignupNotOpen, "signup has not opened yet")
	ErrSignupClosed        = New(ErrCodeSignupClosed, "signup window has closed")
	ErrCampaignEnded       = New(ErrCodeCampaignEnded, "campaign has ended")
	ErrAmountOutOfRange    = New(ErrCodeAmountOutOfRange, "amount is outside the allowed range")
	ErrAmountNotPreset     = New(ErrCodeAmountNotPreset, "amount does not match a preset")
	ErrUpfrontNotAvailable = New(ErrCodeUpfrontNotAvailable, "upfront billing is not available")
	ErrHTTPClient          = New(ErrCodeHTTPClient, "http client error")
	ErrIntegration         = New(ErrCodeIntegration, "upstream provider error")
	ErrInternal            = New(ErrCodeInternal, "internal error")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:            http.StatusNotFound,
		ErrValidation:          http.StatusBadRequest,
		ErrCampaignInactive:    http.StatusBadRequest,
		ErrSignupNotOpen:       http.StatusBadRequest,
		ErrSignupClosed:        http.StatusBadRequest,
		ErrCampaignEnded:       http.StatusBadRequest,
		ErrAmountOutOfRange:    http.StatusBadRequest,
		ErrAmountNotPreset:     http.StatusBadRequest,
		ErrUpfrontNotAvailable: http.StatusBadRequest,
		ErrHTTPClient:          http.StatusBadGateway,
		ErrIntegration:         http.StatusBadGateway,
		ErrInternal:            http.StatusInternalServerError,
	}

	// sentinelPriority fixes the resolution order when an error carries
	// more than one mark. A transport failure wrapped as an upstream error
	// carries both ErrHTTPClient and ErrIntegration; the outer, more
	// specific meaning must win, so the broad transport and internal
	// sentinels come last.
	sentinelPriority = []*InternalError{
		ErrNotFound,
		ErrCampaignInactive,
		ErrSignupNotOpen,
		ErrSignupClosed,
		ErrCampaignEnded,
		ErrAmountOutOfRange,
		ErrAmountNotPreset,
		ErrUpfrontNotAvailable,
		ErrValidation,
		ErrIntegration,
		ErrHTTPClient,
		ErrInternal,
	}
)

const (
	ErrCodeNotFound            = "not_found"
	ErrCodeValidation          = "invalid_input"
	ErrCodeCampaignInactive    = "campaign_inactive"
	ErrCodeSignupNotOpen       = "signup_not_open"
	ErrCodeSignupClosed        = "signup_closed"
	ErrCodeCampaignEnded       = "campaign_ended"
	ErrCodeAmountOutOfRange    = "amount_out_of_range"
	ErrCodeAmountNotPreset     = "amount_not_preset"
	ErrCodeUpfrontNotAvailable = "upfront_not_available"
	ErrCodeHTTPClient          = "http_client_error"
	ErrCodeIntegration         = "upstream_error"
	ErrCodeInternal            = "internal_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func New(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsIntegration checks if an error is an upstream provider error
func IsIntegration(err error) bool {
	return errors.Is(err, ErrIntegration)
}

// HTTPStatusFromErr maps an error to its HTTP status; unrecognised errors
// are internal faults.
func HTTPStatusFromErr(err error) int {
	for _, sentinel := range sentinelPriority {
		if errors.Is(err, sentinel) {
			return statusCodeMap[sentinel]
		}
	}
	return http.StatusInternalServerError
}

// CodeFromErr returns the machine code for an error; unrecognised errors
// report as internal.
func CodeFromErr(err error) string {
	for _, sentinel := range sentinelPriority {
		if errors.Is(err, sentinel) {
			return sentinel.Code
		}
	}
	return ErrCodeInternal
}
