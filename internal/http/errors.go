package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/httpx"
)

const (
	ErrorCodeUnauthenticated = "unauthenticated"
	ErrorCodeForbidden       = "forbidden"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeConflict        = "conflict"
	ErrorCodeInvalidOTP      = "invalid_otp"
	ErrorCodeValidation      = "validation_error"
	ErrorCodeServerError     = "server_error"
)

// APIError is the wire shape of every non-2xx response.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	ErrUnauthenticated = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "missing, invalid or expired access token",
	}

	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "you do not have access to this resource",
	}

	ErrAccountDisabled = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "this account has been disabled",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "an account with this email already exists",
	}

	ErrInvalidOTP = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidOTP,
		Description: "the code is invalid or has expired",
	}

	ErrInvalidResetTicket = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidOTP,
		Description: "the reset ticket is invalid or has expired",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "incorrect email or password",
	}

	ErrBadRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "the request is malformed or missing required fields",
	}

	ErrWeakPassword = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "password must be at least 8 characters",
	}

	ErrSelfDelete = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "you cannot delete your own account",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unexpected error occurred",
	}
)

// writeServiceError maps service and store sentinels onto API errors.
// Anything unmapped is a 500; the handler is expected to have logged it.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, store.ErrNotFound):
		apiErr = ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		apiErr = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeConflict, Description: "a resource with these details already exists"}
	case errors.Is(err, service.ErrInvalidOTP):
		apiErr = ErrInvalidOTP
	case errors.Is(err, service.ErrInvalidResetTicket):
		apiErr = ErrInvalidResetTicket
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = ErrInvalidCredentials
	case errors.Is(err, service.ErrAccountDisabled):
		apiErr = ErrAccountDisabled
	case errors.Is(err, service.ErrEmailTaken):
		apiErr = ErrEmailTaken
	case errors.Is(err, service.ErrWeakPassword):
		apiErr = ErrWeakPassword
	case errors.Is(err, service.ErrForbidden):
		apiErr = ErrForbidden
	case errors.Is(err, service.ErrValidation):
		apiErr = ErrBadRequest
	case errors.Is(err, service.ErrSelfDelete):
		apiErr = ErrSelfDelete
	case errors.Is(err, service.ErrOAuthExchange):
		apiErr = &APIError{StatusCode: http.StatusBadGateway, Code: ErrorCodeServerError, Description: "identity provider exchange failed"}
	default:
		apiErr = ErrServerError
	}
	apiErr.WriteError(w)
}
