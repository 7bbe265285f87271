// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Catalog fetch failures. All are surfaced to users as a load error and
	// never block matching against the last-known-good catalog.
	ErrCodeCatalogFetchFailed  ErrorCode = "CATALOG_FETCH_FAILED"
	ErrCodeCatalogHTTPStatus   ErrorCode = "CATALOG_HTTP_STATUS"
	ErrCodeCatalogNotOK        ErrorCode = "CATALOG_NOT_OK"
	ErrCodeCatalogDecodeFailed ErrorCode = "CATALOG_DECODE_FAILED"
	ErrCodeCatalogTimeout      ErrorCode = "CATALOG_TIMEOUT"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidPreferences ErrorCode = "INVALID_PREFERENCES"
	ErrCodeInvalidStepAction  ErrorCode = "INVALID_STEP_ACTION"
	ErrCodeUnknownOption      ErrorCode = "UNKNOWN_OPTION"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeAnchorNotFound     ErrorCode = "ANCHOR_NOT_FOUND"

	ErrCodeResponseValidationFailed ErrorCode = "RESPONSE_VALIDATION_FAILED"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another *StandardError by code so callers can compare against
// sentinel values built with New.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata returns e after setting key.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// New creates a StandardError with the given code and message.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
	}
}

// As extracts a *StandardError from err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first StandardError in err's chain,
// or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := As(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewCatalogFetchFailedError wraps a transport error from the catalog endpoint.
func NewCatalogFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogFetchFailed,
		Message:   "Failed to fetch",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCatalogHTTPStatusError reports a non-2xx response.
func NewCatalogHTTPStatusError(status int) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogHTTPStatus,
		Message:   fmt.Sprintf("HTTP %d", status),
		Details:   fmt.Sprintf("status: %d", status),
		Retryable: status >= 500,
		Metadata:  map[string]interface{}{"status": status},
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogNotOKError reports a payload whose ok flag is false.
func NewCatalogNotOKError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogNotOK,
		Message:   "API returned ok=false",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogDecodeFailedError reports a body that is not the expected JSON.
func NewCatalogDecodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogDecodeFailed,
		Message:   "Catalog response could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCatalogTimeoutError reports a fetch cut off by the transport deadline.
func NewCatalogTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogTimeout,
		Message:   "Catalog request timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Catalog snapshot cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid job input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidPreferencesError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPreferences,
		Message:   "Invalid preferences",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidStepActionError reports an action sent to a step that does not accept it.
func NewInvalidStepActionError(step, action string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidStepAction,
		Message:   "Action not allowed in current step",
		Details:   fmt.Sprintf("step: %s, action: %s", step, action),
		Retryable: false,
		Metadata:  map[string]interface{}{"step": step, "action": action},
		Timestamp: time.Now().UTC(),
	}
}

func NewUnknownOptionError(step, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownOption,
		Message:   "Unknown option for step",
		Details:   fmt.Sprintf("step: %s, value: %s", step, value),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Questionnaire session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAnchorNotFoundError(anchorID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnchorNotFound,
		Message:   "Anchor item not found in catalog",
		Details:   fmt.Sprintf("anchorId: %s", anchorID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewResponseValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseValidationFailed,
		Message:   "Response payload failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. BPMN mapping and retry policy
// ==========================

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeCatalogFetchFailed:       "CATALOG_UNAVAILABLE",
	ErrCodeCatalogHTTPStatus:        "CATALOG_UNAVAILABLE",
	ErrCodeCatalogTimeout:           "CATALOG_UNAVAILABLE",
	ErrCodeCatalogNotOK:             "CATALOG_REJECTED",
	ErrCodeCatalogDecodeFailed:      "CATALOG_REJECTED",
	ErrCodeInvalidInput:             "INVALID_INPUT",
	ErrCodeInvalidPreferences:       "INVALID_PREFERENCES",
	ErrCodeInvalidStepAction:        "INVALID_STEP_ACTION",
	ErrCodeUnknownOption:            "INVALID_STEP_ACTION",
	ErrCodeSessionNotFound:          "SESSION_NOT_FOUND",
	ErrCodeAnchorNotFound:           "ANCHOR_NOT_FOUND",
	ErrCodeResponseValidationFailed: "RESPONSE_VALIDATION_FAILED",
}

// GetRetryCount returns how many job retries the code deserves.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCacheUnavailable:
		return 3
	case ErrCodeCatalogFetchFailed, ErrCodeCatalogTimeout, ErrCodeCatalogHTTPStatus:
		return 1
	default:
		return 0
	}
}

// ConvertToBPMNError maps a StandardError to its workflow representation.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.HasPrefix(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "STEP") || strings.Contains(codeStr, "OPTION") || strings.Contains(codeStr, "SESSION"):
		return "QUESTIONNAIRE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "ANCHOR"):
		return "SIMILARITY"
	default:
		return "OTHER"
	}
}
