package httpx

import (
	"errors"
	"net/http"

	"github.com/gamevault/authcore/internal/domain/auth"
)

// classifyError maps a domain error onto an HTTP status and a stable error
// code. A broken directory backend is always 503, never a 403: clients must
// be able to tell "denied" from "cannot answer".
func classifyError(err error) (int, string) {
	var verr *auth.ValidationError
	var serr *auth.StorageUnavailableError
	var uerr *auth.UpstreamError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, auth.ErrAuthenticationRequired):
		return http.StatusUnauthorized, "authentication_required"
	case errors.Is(err, auth.ErrAuthorizationDenied):
		return http.StatusForbidden, "authorization_denied"
	case errors.Is(err, auth.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, auth.ErrLastAdmin):
		return http.StatusConflict, "last_admin"
	case errors.As(err, &serr):
		return http.StatusServiceUnavailable, "directory_unavailable"
	case errors.Is(err, auth.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, "upstream_timeout"
	case errors.As(err, &uerr):
		return http.StatusBadGateway, "upstream_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// WriteDomainError writes err with its mapped status and code.
func WriteDomainError(w http.ResponseWriter, err error) {
	code, errCode := classifyError(err)
	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: err})
}
