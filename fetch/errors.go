package fetch

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	goerrors "github.com/kbukum/gofetch/errors"
)

// ErrorCode classifies request errors.
type ErrorCode int

const (
	// ErrCodeInvalidRequest indicates the request could not be built
	// (missing URL, unencodable payload, no default client).
	ErrCodeInvalidRequest ErrorCode = iota
	// ErrCodeTimeout indicates the timeout won the race against the network call.
	ErrCodeTimeout
	// ErrCodeHTTPStatus indicates a response with a non-2xx status.
	ErrCodeHTTPStatus
	// ErrCodeNetwork indicates a transport failure, including abort.
	ErrCodeNetwork
	// ErrCodeDecode indicates the response body could not be decoded.
	ErrCodeDecode
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeInvalidRequest:
		return "invalid_request"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeHTTPStatus:
		return "http_status"
	case ErrCodeNetwork:
		return "network"
	case ErrCodeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// ErrAborted is the cause of requests cancelled through a CancelToken.
var ErrAborted = errors.New("fetch: request aborted")

// errTimeout is the context cause installed by the timeout timer.
var errTimeout = errors.New("fetch: timeout")

// Error is a structured request error with classification.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// StatusCode is the HTTP status code (0 unless Code is ErrCodeHTTPStatus).
	StatusCode int
	// Message describes the error.
	Message string
	// Response is the raw response for HTTP status errors.
	Response Response
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidRequest, Message: msg}
}

// NewTimeoutError creates a timeout error for the given limit.
func NewTimeoutError(d time.Duration) *Error {
	return &Error{
		Code:    ErrCodeTimeout,
		Message: fmt.Sprintf("request timed out after %s", d),
		Err:     errTimeout,
	}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *Error {
	return &Error{Code: ErrCodeNetwork, Message: err.Error(), Err: err}
}

// NewHTTPStatusError creates an error for a non-2xx response.
func NewHTTPStatusError(resp Response) *Error {
	status := resp.StatusCode()
	return &Error{
		Code:       ErrCodeHTTPStatus,
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with status %d", status),
		Response:   resp,
	}
}

// NewDecodeError wraps a body decoding failure.
func NewDecodeError(mode ResponseType, err error) *Error {
	return &Error{
		Code:    ErrCodeDecode,
		Message: fmt.Sprintf("decode %s body: %v", mode, err),
		Err:     err,
	}
}

// AppError maps the error onto the shared application error taxonomy.
func (e *Error) AppError() *goerrors.AppError {
	switch e.Code {
	case ErrCodeInvalidRequest:
		return goerrors.Validation(e.Message).WithCause(e)
	case ErrCodeTimeout:
		return goerrors.Timeout("fetch").WithCause(e)
	case ErrCodeNetwork:
		if errors.Is(e.Err, ErrAborted) {
			return goerrors.Cancelled("fetch").WithCause(e)
		}
		return goerrors.ConnectionFailed("upstream").WithCause(e)
	case ErrCodeHTTPStatus:
		return goerrors.FromStatus(e.StatusCode, e.Message).WithCause(e)
	case ErrCodeDecode:
		return goerrors.ExternalServiceError("upstream", e).WithDetail("reason", "decode")
	default:
		return goerrors.ExternalServiceError("upstream", e)
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsInvalidRequest checks if an error is an invalid request error.
func IsInvalidRequest(err error) bool { return hasCode(err, ErrCodeInvalidRequest) }

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsHTTPStatus checks if an error is a non-2xx status error.
func IsHTTPStatus(err error) bool { return hasCode(err, ErrCodeHTTPStatus) }

// IsNetwork checks if an error is a transport error.
func IsNetwork(err error) bool { return hasCode(err, ErrCodeNetwork) }

// IsDecode checks if an error is a body decoding error.
func IsDecode(err error) bool { return hasCode(err, ErrCodeDecode) }

// IsAborted checks if an error was caused by a cancelled CancelToken.
func IsAborted(err error) bool {
	return IsNetwork(err) && errors.Is(err, ErrAborted)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsNotFound checks if an error is a 404 status error.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// IsAuth checks if an error is a 401 or 403 status error.
func IsAuth(err error) bool {
	s := StatusCode(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}

// IsServerError checks if an error is a 5xx status error.
func IsServerError(err error) bool { return StatusCode(err) >= 500 }
