package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// HTTPHandler translates application errors into HTTP responses with a
// stable JSON shape.
type HTTPHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewHTTPHandler(logger Logger) *HTTPHandler {
	return &HTTPHandler{logger: logger}
}

// errorResponse is the wire shape for all error replies.
type errorResponse struct {
	Error struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
		Details string    `json:"details,omitempty"`
	} `json:"error"`
}

// Respond normalizes err to a StandardError, logs it, and writes the mapped
// HTTP status and JSON body.
func (h *HTTPHandler) Respond(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := h.normalizeError(err)
	status := StatusFor(stdErr.Code)

	fields := map[string]interface{}{
		"code":    stdErr.Code,
		"details": stdErr.Details,
		"path":    r.URL.Path,
		"method":  r.Method,
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(stdErr.Message, fields)
	} else {
		h.logger.Warn(stdErr.Message, fields)
	}

	var body errorResponse
	body.Error.Code = stdErr.Code
	body.Error.Message = stdErr.Message
	body.Error.Details = stdErr.Details

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *HTTPHandler) normalizeError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// StatusFor maps error codes to HTTP statuses.
func StatusFor(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeUnreadableTable, ErrCodeCartEmpty:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeAuthorizationDeclined:
		return http.StatusPaymentRequired
	case ErrCodeIntentNotFound, ErrCodeLeadNotFound, ErrCodePolicyNotFound:
		return http.StatusNotFound
	case ErrCodeQuoteComputationFailed, ErrCodeRemotePricingUnavailable:
		return http.StatusBadGateway
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed, ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
