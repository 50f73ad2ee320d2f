package hubspot

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors. Every typed error below matches exactly one of these with errors.Is.
var (
	// ErrConfiguration indicates missing or contradictory authentication setup
	ErrConfiguration = errors.New("hubspot: configuration error")
	// ErrMissingInterpolation indicates a path placeholder was left unresolved
	ErrMissingInterpolation = errors.New("hubspot: interpolation not resolved")
	// ErrInvalidParameter indicates a parameter could not be encoded
	ErrInvalidParameter = errors.New("hubspot: invalid parameter")
	// ErrRequest indicates a non-success HTTP outcome or a transport failure
	ErrRequest = errors.New("hubspot: request failed")
	// ErrAuthentication indicates the API rejected the request with an auth-shaped body
	ErrAuthentication = errors.New("hubspot: authentication failed")
	// ErrAPI indicates a domain-level failure reported by a caller
	ErrAPI = errors.New("hubspot: api error")
	// ErrUnexpectedResponse indicates a success response whose body is not JSON
	ErrUnexpectedResponse = errors.New("hubspot: unexpected response body")
)

// ConfigurationError is returned before any network I/O when the configuration
// cannot authenticate the request.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("hubspot: configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("hubspot: configuration error: '%s' %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MissingInterpolationError is returned when a resolved path still contains a placeholder.
type MissingInterpolationError struct {
	Path string
}

func (e *MissingInterpolationError) Error() string {
	return fmt.Sprintf("hubspot: interpolation not resolved in path %q", e.Path)
}

func (e *MissingInterpolationError) Is(target error) bool {
	return target == ErrMissingInterpolation
}

// InvalidParameterError is returned when a parameter value does not fit its key.
type InvalidParameterError struct {
	Key    string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("hubspot: invalid parameter %q: %s", e.Key, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// RequestError carries the raw outcome of a failed request. StatusCode is zero
// when the request never produced a response.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("hubspot: %s %s failed: %v", e.Method, e.URL, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("hubspot: %s %s: %v (status %d)\nResponse body: %s", e.Method, e.URL, e.Err, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("hubspot: %s %s failed with status %d\nResponse body: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *RequestError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AuthenticationError is a failure whose body carried the engagement/message/status triple.
type AuthenticationError struct {
	StatusCode int
	Status     string
	Message    string
	Engagement any
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("status: %s message: %s engagement_info: %v", e.Status, e.Message, e.Engagement)
}

func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// APIError is reserved for domain-level failures raised by callers of the connection.
type APIError struct {
	Message string
	Err     error
}

// NewAPIError creates an APIError with a formatted message.
func NewAPIError(format string, args ...any) *APIError {
	return &APIError{Message: fmt.Sprintf(format, args...)}
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hubspot: %s: %v", e.Message, e.Err)
	}
	return "hubspot: " + e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Kind classifies an error returned by this package.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindMissingInterpolation
	KindInvalidParameter
	KindRequest
	KindAuthentication
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindMissingInterpolation:
		return "missing_interpolation"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindRequest:
		return "request"
	case KindAuthentication:
		return "authentication"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// KindOf reports which member of the taxonomy err belongs to.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrMissingInterpolation):
		return KindMissingInterpolation
	case errors.Is(err, ErrInvalidParameter):
		return KindInvalidParameter
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, ErrRequest):
		return KindRequest
	case errors.Is(err, ErrAPI):
		return KindAPI
	default:
		return KindUnknown
	}
}

// IsConfigurationError checks if the error is a configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsMissingInterpolation checks if the error is an unresolved placeholder error.
func IsMissingInterpolation(err error) bool {
	return errors.Is(err, ErrMissingInterpolation)
}

// IsInvalidParameter checks if the error is a parameter encoding error.
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

// IsAuthenticationError checks if the error is an authentication error.
func IsAuthenticationError(err error) bool {
	var e *AuthenticationError
	return errors.As(err, &e)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var e *RequestError
	return errors.As(err, &e) && e.IsNotFound()
}
