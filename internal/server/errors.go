package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	agentdomain "github.com/smallbiznis/lodgera/internal/agent/domain"
	availabilitydomain "github.com/smallbiznis/lodgera/internal/availability/domain"
	commissiondomain "github.com/smallbiznis/lodgera/internal/commission/domain"
	customerdomain "github.com/smallbiznis/lodgera/internal/customer/domain"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	resourcedomain "github.com/smallbiznis/lodgera/internal/resource/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type      string                              `json:"type"`
	Message   string                              `json:"message"`
	Errors    []ValidationError                   `json:"errors,omitempty"`
	Conflicts []reservationdomain.ConflictSummary `json:"conflicts,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var conflictErr *reservationdomain.ConflictError
	if errors.As(err, &conflictErr) {
		return http.StatusConflict, errorPayload{
			Type:      "reservation_conflict",
			Message:   conflictErr.Error(),
			Conflicts: conflictErr.Conflicts,
		}
	}

	var transitionErr *reservationdomain.TransitionError
	if errors.As(err, &transitionErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{{
				Field:   "status",
				Code:    "invalid_transition",
				Message: transitionErr.Error(),
			}},
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isReservationValidationError(err),
		isAvailabilityValidationError(err),
		isResourceValidationError(err),
		isAgentValidationError(err),
		isCustomerValidationError(err),
		errors.Is(err, commissiondomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isReservationValidationError(err error) bool {
	switch {
	case errors.Is(err, reservationdomain.ErrInvalidGuestName),
		errors.Is(err, reservationdomain.ErrInvalidResourceIDs),
		errors.Is(err, reservationdomain.ErrTooManyResources),
		errors.Is(err, reservationdomain.ErrInvalidDates),
		errors.Is(err, reservationdomain.ErrCheckInPast),
		errors.Is(err, reservationdomain.ErrCheckInTooFar),
		errors.Is(err, reservationdomain.ErrInvalidGuests),
		errors.Is(err, reservationdomain.ErrCapacityExceeded),
		errors.Is(err, reservationdomain.ErrResourceInactive),
		errors.Is(err, reservationdomain.ErrInvalidStatus),
		errors.Is(err, reservationdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isAvailabilityValidationError(err error) bool {
	switch {
	case errors.Is(err, availabilitydomain.ErrInvalidResourceIDs),
		errors.Is(err, availabilitydomain.ErrInvalidDates),
		errors.Is(err, availabilitydomain.ErrInvalidExcludeID):
		return true
	default:
		return false
	}
}

func isResourceValidationError(err error) bool {
	switch {
	case errors.Is(err, resourcedomain.ErrInvalidName),
		errors.Is(err, resourcedomain.ErrInvalidAmount),
		errors.Is(err, resourcedomain.ErrInvalidMaxGuests),
		errors.Is(err, resourcedomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isAgentValidationError(err error) bool {
	switch {
	case errors.Is(err, agentdomain.ErrInvalidName),
		errors.Is(err, agentdomain.ErrInvalidEmail),
		errors.Is(err, agentdomain.ErrInvalidRole),
		errors.Is(err, agentdomain.ErrInvalidID),
		errors.Is(err, agentdomain.ErrInactive):
		return true
	default:
		return false
	}
}

func isCustomerValidationError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrKindMismatch):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, reservationdomain.ErrNotFound),
		errors.Is(err, resourcedomain.ErrNotFound),
		errors.Is(err, agentdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, commissiondomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "invalid_request" {
		return "request"
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
