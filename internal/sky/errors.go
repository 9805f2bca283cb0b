package sky

import (
	"errors"
	"fmt"
)

// UpstreamError is returned by every provider when the remote call fails:
// network errors, non-2xx responses and bodies missing the expected fields.
type UpstreamError struct {
	Provider   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err wraps an *UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// MalformedRequestError reports a client-submitted body that is missing
// fields or has fields of the wrong type.
type MalformedRequestError struct {
	Field string
	Err   error
}

func (e *MalformedRequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed request: field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed request: %v", e.Err)
}

func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err wraps a *MalformedRequestError.
func IsMalformed(err error) bool {
	var me *MalformedRequestError
	return errors.As(err, &me)
}
