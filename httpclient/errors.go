package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/vidscribe/errors"
)

// Kind says where an exchange failed.
type Kind int

const (
	// KindTimeout is a deadline hit by the caller's context or the client.
	KindTimeout Kind = iota + 1
	// KindTransport covers refused connections, DNS failures, resets and
	// cancellation by the caller.
	KindTransport
	// KindStatus is a response outside 2xx.
	KindStatus
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	}
	return "unknown"
}

// Error reports a failed exchange. StatusCode and Body are set for KindStatus.
type Error struct {
	Kind       Kind
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("httpclient: HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("httpclient: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// checkStatus returns nil for 2xx and a KindStatus error otherwise.
func checkStatus(code int, body []byte) *Error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &Error{Kind: KindStatus, StatusCode: code, Body: body}
}

const maxErrorBody = 512

// ToAppError translates a client error for the named service. Rejected
// credentials (401, 403) become UNAUTHORIZED, KindTimeout TIMEOUT and
// KindTransport CONNECTION_FAILED. Any other status is an
// EXTERNAL_SERVICE_ERROR carrying the status code and a truncated body.
// Errors that are not *Error pass through unchanged.
func ToAppError(err error, service string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	switch e.Kind {
	case KindTimeout:
		return apperrors.Timeout(service+" request", err)
	case KindTransport:
		return apperrors.ConnectionFailed(service, err)
	}

	var appErr *apperrors.AppError
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		appErr = apperrors.Unauthorized(fmt.Sprintf("%s rejected the credentials (HTTP %d).", service, e.StatusCode)).
			WithCause(err)
	} else {
		appErr = apperrors.ExternalServiceError(service, err)
	}
	appErr.WithDetail("status_code", e.StatusCode)
	if len(e.Body) > 0 {
		body := string(e.Body)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody] + "..."
		}
		appErr.WithDetail("body", body)
	}
	return appErr
}
