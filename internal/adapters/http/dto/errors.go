// Package dto holds the JSON shapes of the blog API and the helpers that move
// between them and the domain: strict body binding, resource rendering and
// the error envelope.
package dto

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/blog-service/internal/domain"
	"github.com/jsamuelsen/blog-service/internal/platform/logging"
)

// ContextKeyTraceID is the gin context key a trace id may be stored under.
const ContextKeyTraceID = "trace_id"

// Request id locations, read when no trace is active. They match the
// request id middleware.
const (
	contextKeyRequestID = "request_id"
	headerRequestID     = "X-Request-ID"
)

// ErrorResponse is the envelope of every error body.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail describes one failure.
type ErrorDetail struct {
	// Code is machine readable, one of the ErrorCode constants.
	Code string `json:"code"`

	Message string `json:"message"`

	// Details maps field names to what is wrong with them.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes.
const (
	ErrorCodeNotFound         = "NOT_FOUND"
	ErrorCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrorCodeValidation       = "VALIDATION_ERROR"
	ErrorCodeBadRequest       = "BAD_REQUEST"
	ErrorCodeBodyTooLarge     = "BODY_TOO_LARGE"
	ErrorCodeUnavailable      = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout          = "TIMEOUT"
	ErrorCodeInternal         = "INTERNAL_ERROR"
)

const (
	msgInternal    = "an internal error occurred"
	msgUnavailable = "the blog store is temporarily unavailable"
	msgValidation  = "request validation failed"
	msgBadRequest  = "request body must be a JSON object of the expected shape"
	msgTimeout     = "the request did not complete in time"
)

// NewErrorResponse creates an error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response carrying field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	resp := NewErrorResponse(code, message)
	resp.Error.Details = details

	return resp
}

// WithTraceID sets the trace id and returns the response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapError turns any error produced while serving a request into a status
// and envelope. Unknown errors become a 500 with a generic message.
func MapError(err error) (int, *ErrorResponse) {
	var (
		fieldSetErr   *FieldSetError
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, NewErrorResponse(ErrorCodeBodyTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit))

	case errors.Is(err, ErrBinding):
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, msgBadRequest)

	case errors.As(err, &fieldSetErr):
		return http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation, msgValidation, fieldSetErr.Details())

	case IsValidationError(err):
		return http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation, msgValidation, ValidationErrors(err))

	case errors.As(err, &validationErr):
		resp := NewErrorResponse(ErrorCodeValidation, validationErr.Error())
		if validationErr.Field != "" {
			resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
		}

		return http.StatusBadRequest, resp

	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, notFoundErr.Error())

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, "resource not found")

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, msgTimeout)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, msgUnavailable)

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, msgInternal)
	}
}

// HandleError writes the envelope for err and aborts the handler chain.
// A server-side failure after the request deadline passed is reported as a
// timeout. Server-side failures are logged with the trace id so they can be
// matched with the response the client saw.
func HandleError(c *gin.Context, err error) {
	status, resp := MapError(err)
	if status >= http.StatusInternalServerError && errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) {
		status, resp = http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, msgTimeout)
	}

	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			"error", err.Error(),
			"status", status,
			"trace_id", resp.TraceID,
		)
	}

	c.AbortWithStatusJSON(status, resp)
}

// GetTraceID returns the id a client can quote when reporting a failure. A
// trace id stored on the gin context wins, then the active OpenTelemetry
// trace, then the request id.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyTraceID); ok {
		if s, ok := v.(string); ok {
			return s
		}

		return ""
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	if id := c.GetString(contextKeyRequestID); id != "" {
		return id
	}

	return c.GetHeader(headerRequestID)
}
