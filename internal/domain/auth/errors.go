package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for the authorization domain. Callers classify with
// errors.Is/errors.As; HTTP mapping lives in the transport layer.
var (
	// ErrAuthenticationRequired means no valid session was presented.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrAuthorizationDenied means the caller is authenticated but lacks
	// the role or permission for the operation.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrNotFound means the requested admin record does not exist.
	ErrNotFound = errors.New("admin record not found")

	// ErrLastAdmin rejects a removal that would leave the directory empty.
	ErrLastAdmin = errors.New("cannot remove the last admin")

	// ErrUpstreamTimeout marks an outbound call that hit its deadline.
	// Callers treat it as failed-but-retryable, never fatal.
	ErrUpstreamTimeout = errors.New("upstream timeout")
)

// ValidationError reports malformed input (bad Steam ID, bad role, bad
// token shape).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageUnavailableError means the directory backend is unreachable or
// misconfigured (including credential rejections). It is deliberately
// distinct from "this user is not an admin": operators must be able to tell
// a broken directory from a denied request.
type StorageUnavailableError struct {
	Backend string
	Status  int
	Err     error
}

func (e *StorageUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s directory unavailable: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s directory unavailable (status %d)", e.Backend, e.Status)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// IsStorageUnavailable reports whether err is a StorageUnavailableError.
func IsStorageUnavailable(err error) bool {
	var target *StorageUnavailableError
	return errors.As(err, &target)
}

// UpstreamError reports a non-auth failure from an upstream dependency
// (identity provider, profile API, directory backend).
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: upstream error: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: upstream error (status %d)", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
