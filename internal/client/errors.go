package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Local precondition failures. They fail the single call that hit them,
// never the connection.
var (
	// ErrNotConnected means the account has no live WebSocket session.
	ErrNotConnected = errors.New("connection is not established")

	// ErrNoSession means the account has not completed the session
	// handshake yet.
	ErrNoSession = errors.New("no session key available")

	// ErrConnectionClosed fails every pending request when a session is
	// torn down before the response arrived.
	ErrConnectionClosed = errors.New("connection closed while awaiting response")

	// ErrMultipartParams means a multipart call was attempted with no
	// parts to send.
	ErrMultipartParams = errors.New("multipart call requires params")

	// ErrUnknownAccount means the account number is not configured.
	ErrUnknownAccount = errors.New("unknown account")
)

// FailureKind classifies a non-success status code from the backend.
type FailureKind string

const (
	KindInvalidVerifyKey  FailureKind = "invalid verify key"
	KindAccountNotFound   FailureKind = "account not found"
	KindInvalidSession    FailureKind = "invalid session"
	KindUnverifiedSession FailureKind = "unverified session"
	KindUnknownTarget     FailureKind = "unknown target"
	KindFileNotFound      FailureKind = "file not found"
	KindPermissionDenied  FailureKind = "permission denied"
	KindAccountMuted      FailureKind = "account muted"
	KindMessageTooLong    FailureKind = "message too long"
	KindInvalidOperation  FailureKind = "invalid operation"

	// KindRemote covers unmapped status codes and transport-level
	// failures (reported with a synthetic code 500).
	KindRemote FailureKind = "remote error"
)

// codeKinds is the fixed status-code table of the protocol.
var codeKinds = map[int]FailureKind{
	1:   KindInvalidVerifyKey,
	2:   KindAccountNotFound,
	3:   KindInvalidSession,
	4:   KindUnverifiedSession,
	5:   KindUnknownTarget,
	6:   KindFileNotFound,
	10:  KindPermissionDenied,
	20:  KindAccountMuted,
	30:  KindMessageTooLong,
	400: KindInvalidOperation,
	500: KindRemote,
}

// kindForCode maps a status code to its failure kind, defaulting to
// KindRemote for codes outside the table.
func kindForCode(code int) FailureKind {
	if kind, ok := codeKinds[code]; ok {
		return kind
	}
	return KindRemote
}

// APIError is a failure reported by the backend, or a transport failure
// wrapped as one. Branch on Kind (or the Code) to handle specific cases:
//
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) && apiErr.Kind == client.KindInvalidSession { … }
type APIError struct {
	Kind    FailureKind
	Code    int
	Message string
	Content string
	cause   error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Code, e.Kind, e.Message)
	}
	return fmt.Sprintf("api error %d (%s)", e.Code, e.Kind)
}

func (e *APIError) Unwrap() error { return e.cause }

// newAPIError builds the typed error for a backend status code.
func newAPIError(code int, msg, content string) *APIError {
	return &APIError{
		Kind:    kindForCode(code),
		Code:    code,
		Message: msg,
		Content: content,
	}
}

// remoteError wraps a transport failure as a backend error with a
// synthetic 500 status.
func remoteError(err error) *APIError {
	return &APIError{
		Kind:    KindRemote,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		cause:   err,
	}
}

// MalformedResponseError reports an HTTP body that could not be treated as
// a protocol response: empty, or not JSON. The raw response is kept for
// diagnostics.
type MalformedResponseError struct {
	Reason     string
	StatusCode int
	Headers    http.Header
	Content    []byte
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s (http status %d, %d bytes)", e.Reason, e.StatusCode, len(e.Content))
}
