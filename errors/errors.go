package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"strings"
)

// AppError is the error every vidscribe component returns. Code is stable
// and machine-readable; Message is meant for the user.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Retryable reports whether the failure may be transient.
func (e *AppError) Retryable() bool { return e.Code.Retryable() }

// WithCause sets the cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// WithDetails merges details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// New returns an AppError without details or cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// build creates an AppError with details from alternating keys and values.
// Empty string values are left out.
func build(code ErrorCode, message string, cause error, kv ...string) *AppError {
	e := &AppError{Code: code, Message: message, Cause: cause}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			e.WithDetail(kv[i], kv[i+1])
		}
	}
	return e
}

// NotFound reports a missing input file.
func NotFound(resource, path string) *AppError {
	msg := resource + " not found"
	if path != "" {
		msg += ": " + path
	}
	return build(ErrCodeNotFound, msg, nil, "resource", resource, "path", path)
}

// InvalidInput reports a rejected request field.
func InvalidInput(field, reason string) *AppError {
	return build(ErrCodeInvalidInput, "Invalid input: "+reason, nil, "field", field)
}

// Validation reports one or more failed validation rules in message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// ExtractionFailed reports an ffmpeg or ffprobe failure. The tool's stderr
// is appended to the message and kept under the "stderr" detail.
func ExtractionFailed(stderr string, cause error) *AppError {
	stderr = strings.TrimSpace(stderr)
	msg := "Error extracting audio"
	if stderr != "" {
		msg += ": " + stderr
	}
	return build(ErrCodeExtractionFailed, msg, cause, "stderr", stderr)
}

// TranscriptionFailed reports a whisper model that failed to load or run.
func TranscriptionFailed(model string, cause error) *AppError {
	return build(ErrCodeTranscriptionFailed, fmt.Sprintf("Transcription with model %q failed", model), cause, "model", model)
}

// Unauthorized reports a missing or rejected API key.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason)
}

// ConnectionFailed reports a transport failure reaching service.
func ConnectionFailed(service string, cause error) *AppError {
	return build(ErrCodeConnectionFailed, "Unable to connect to "+service+".", cause, "service", service)
}

// Timeout reports an operation that ran past its deadline.
func Timeout(operation string, cause error) *AppError {
	return build(ErrCodeTimeout, operation+" timed out", cause, "operation", operation)
}

// ExternalServiceError reports an error status or an unreadable response.
func ExternalServiceError(service string, cause error) *AppError {
	return build(ErrCodeExternalService, "The "+service+" service returned an error.", cause, "service", service)
}

// PipelineFailed wraps the failure of stage. The cause's message is
// embedded so one line describes the whole failure.
func PipelineFailed(stage string, cause error) *AppError {
	msg := "pipeline failed during " + stage
	if appErr, ok := AsAppError(cause); ok {
		msg += ": " + appErr.Message
	} else if cause != nil {
		msg += ": " + cause.Error()
	}
	return build(ErrCodePipelineFailed, msg, cause, "stage", stage)
}

// Internal reports an unexpected local failure.
func Internal(cause error) *AppError {
	return build(ErrCodeInternal, "An unexpected error occurred.", cause)
}

// AsAppError returns the outermost AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	found := false
	walk(err, func(e *AppError) { found = found || e.Code == code })
	return found
}

// RootCode returns the code of the innermost AppError in err's chain, or
// "" when there is none.
func RootCode(err error) ErrorCode {
	var code ErrorCode
	walk(err, func(e *AppError) { code = e.Code })
	return code
}

// walk calls fn for every AppError in err's Unwrap chain, outermost first.
func walk(err error, fn func(*AppError)) {
	for ; err != nil; err = stderrors.Unwrap(err) {
		if e, ok := err.(*AppError); ok {
			fn(e)
		}
	}
}
