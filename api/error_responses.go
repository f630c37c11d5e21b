package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrorCodeComposerNotFound  ErrorCode = "COMPOSER_NOT_FOUND"
	ErrorCodeDictionaryMissing ErrorCode = "DICTIONARY_NOT_FOUND"
	ErrorCodeJobNotFound       ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeJobNotCancellable ErrorCode = "JOB_NOT_CANCELLABLE"
	ErrorCodeComposerExists    ErrorCode = "COMPOSER_ALREADY_EXISTS"
	ErrorCodeDictionaryExists  ErrorCode = "DICTIONARY_ALREADY_EXISTS"
	ErrorCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON       ErrorCode = "INVALID_JSON"
	ErrorCodeUnknownReading    ErrorCode = "UNKNOWN_READING"
	ErrorCodeNothingOverridden ErrorCode = "NOTHING_OVERRIDDEN"
	ErrorCodeCursorOutOfRange  ErrorCode = "CURSOR_OUT_OF_RANGE"
	ErrorCodeNothingToDelete   ErrorCode = "NOTHING_TO_DELETE"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodePersistenceFailed  ErrorCode = "PERSISTENCE_FAILED"
	ErrorCodeJobExecutionFailed ErrorCode = "JOB_EXECUTION_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendComposerNotFoundError sends a standardized composer not found error
func SendComposerNotFoundError(c *gin.Context, composerName string) {
	SendError(c, http.StatusNotFound, ErrorCodeComposerNotFound,
		"Composer '"+composerName+"' not found")
}

// SendDictionaryNotFoundError sends a standardized dictionary not found error
func SendDictionaryNotFoundError(c *gin.Context, dictionaryName string) {
	SendError(c, http.StatusNotFound, ErrorCodeDictionaryMissing,
		"Dictionary '"+dictionaryName+"' not found")
}

// SendJobNotFoundError sends a standardized job not found error
func SendJobNotFoundError(c *gin.Context, jobID string) {
	SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
		"Job '"+jobID+"' not found")
}

// SendComposerExistsError sends a standardized composer already exists error
func SendComposerExistsError(c *gin.Context, composerName string) {
	SendError(c, http.StatusConflict, ErrorCodeComposerExists,
		"Composer '"+composerName+"' already exists")
}

// SendDictionaryExistsError sends a standardized dictionary already exists error
func SendDictionaryExistsError(c *gin.Context, dictionaryName string) {
	SendError(c, http.StatusConflict, ErrorCodeDictionaryExists,
		"Dictionary '"+dictionaryName+"' already exists")
}

// SendUnknownReadingError sends a standardized unknown reading error with
// nearby known readings as suggestions.
func SendUnknownReadingError(c *gin.Context, reading string, suggestions []string) {
	details := make([]ErrorDetail, len(suggestions))
	for i, suggestion := range suggestions {
		details[i] = ErrorDetail{
			Field:   "reading",
			Message: suggestion,
			Code:    "SUGGESTION",
		}
	}
	SendError(c, http.StatusUnprocessableEntity, ErrorCodeUnknownReading,
		"Reading '"+reading+"' has no candidates in the dictionary", details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendPersistenceError sends a standardized persistence error
func SendPersistenceError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed,
		"Persistence operation failed ("+operation+"): "+err.Error())
}

// SendJobExecutionError sends a standardized job execution error
func SendJobExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed,
		"Failed to start "+operation+" job: "+err.Error())
}
