package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ServiceErrorBadInput      = "BAKERY_BAD_INPUT"
	ServiceErrorUnknownSKU    = "BAKERY_UNKNOWN_SKU"
	ServiceErrorCartEmpty     = "BAKERY_CART_EMPTY"
	ServiceErrorSpamDetected  = "BAKERY_SPAM_DETECTED"
	ServiceErrorNotFound      = "BAKERY_NOT_FOUND"
	ServiceErrorConflict      = "BAKERY_CONFLICT"
	ServiceErrorUnauthorized  = "BAKERY_UNAUTHORIZED"
	ServiceErrorInternal      = "BAKERY_INTERNAL_ERROR"
	ServiceErrorStoreDisabled = "BAKERY_STORE_UNAVAILABLE"
)

var (
	ErrNotFound         = errors.New("core: record not found")
	ErrConflict         = errors.New("core: record already exists")
	ErrStoreUnavailable = errors.New("core: store not configured")
)

func serviceErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureServiceErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return newServiceError(err.Error(), goerrors.CategoryNotFound, ServiceErrorNotFound)
	case errors.Is(err, ErrConflict):
		return newServiceError(err.Error(), goerrors.CategoryConflict, ServiceErrorConflict)
	case errors.Is(err, ErrStoreUnavailable):
		return newServiceError(err.Error(), goerrors.CategoryOperation, ServiceErrorStoreDisabled)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "already exists"), strings.Contains(msg, "unique constraint"), strings.Contains(msg, "duplicate key"):
		return newServiceError(err.Error(), goerrors.CategoryConflict, ServiceErrorConflict)
	case strings.Contains(msg, "not found"):
		return newServiceError(err.Error(), goerrors.CategoryNotFound, ServiceErrorNotFound)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newServiceError(err.Error(), goerrors.CategoryBadInput, ServiceErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	if mapped != nil && mapped.Category == goerrors.CategoryInternal {
		mapped.TextCode = ServiceErrorInternal
	}
	return ensureServiceErrorEnvelope(mapped)
}

func newServiceError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureServiceErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureServiceErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = ServiceHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultServiceTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultServiceTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ServiceErrorBadInput
	case goerrors.CategoryNotFound:
		return ServiceErrorNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ServiceErrorUnauthorized
	case goerrors.CategoryConflict:
		return ServiceErrorConflict
	default:
		return ServiceErrorInternal
	}
}

// ServiceHTTPStatus maps an error category onto a response status.
func ServiceHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryOperation:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MapError converts any error into the service envelope.
func MapError(err error) *goerrors.Error {
	return serviceErrorMapper(err)
}

func badInput(message string, textCode string) *goerrors.Error {
	return newServiceError(message, goerrors.CategoryBadInput, textCode)
}

func notFound(message string) *goerrors.Error {
	return newServiceError(message, goerrors.CategoryNotFound, ServiceErrorNotFound)
}
