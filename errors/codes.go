package errors

// ErrorCode classifies a failure for callers, metrics and span attributes.
type ErrorCode string

const (
	// Bad input: a missing file or a rejected request or config value.
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ffmpeg and the local whisper model.
	ErrCodeExtractionFailed    ErrorCode = "EXTRACTION_FAILED"
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"

	// The Deepgram API.
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	ErrCodeTimeout          ErrorCode = "TIMEOUT"
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// ErrCodePipelineFailed is the outer code of every failed run.
	ErrCodePipelineFailed ErrorCode = "PIPELINE_FAILED"
	// ErrCodeInternal covers filesystem and encoding failures.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Retryable reports whether a later attempt may succeed. vidscribe never
// retries on its own; the flag is informational.
func (c ErrorCode) Retryable() bool {
	switch c {
	case ErrCodeConnectionFailed, ErrCodeTimeout, ErrCodeExternalService:
		return true
	}
	return false
}
