package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"skyflyBff/internal/platform/rest"
	"skyflyBff/internal/shared/auth"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// CredentialErrors maps token problems to 401.
var CredentialErrors = []ErrorMapping{
	{Error: auth.ErrMissingToken, Status: http.StatusUnauthorized, Message: auth.CredentialMessage},
	{Error: auth.ErrInvalidToken, Status: http.StatusUnauthorized, Message: auth.CredentialMessage},
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper starts with the credential mappings already registered.
func NewErrorMapper() *ErrorMapper {
	m := &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: rest.UnexpectedErrorMessage,
	}
	m.mappings = append(m.mappings, CredentialErrors...)
	return m
}

func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}

	// Context errors win over registered mappings.
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// Respond writes err as a normalized failure object.
func (m *ErrorMapper) Respond(c echo.Context, err error) error {
	info := m.Map(err)
	return c.JSON(info.Status, rest.Failure{Status: false, Message: info.Message})
}

// RespondResult relays the remote body byte for byte, or writes the
// normalized failure. Both answer 200; callers read the status field.
func RespondResult(c echo.Context, result rest.Result) error {
	if !result.IsOk() {
		return c.JSON(http.StatusOK, result.Failure())
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, result.Body())
}
