package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/gamevault/authcore/internal/domain/auth"
	"github.com/gamevault/authcore/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.String("request_id", requestID),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WithViewer returns a middleware that resolves the session cookie into a
// Viewer and stores it in the request context. Every request gets a viewer;
// absence of a cookie yields the anonymous one. Valid sessions get their
// cookie reissued so active users never see a mid-session expiry.
func WithViewer(resolver *service.Resolver, cookies CookieManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var raw string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				raw = cookie.Value
			}

			viewer := resolver.Resolve(r.Context(), raw)
			if viewer.Authenticated && viewer.User != nil {
				if fresh, err := resolver.IssueSession(*viewer.User); err == nil {
					cookies.Set(w, r, SessionCookieName, fresh, SessionCookieTTL)
				}
			}

			ctx := SetViewerInContext(r.Context(), viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission returns a middleware gating a route on a single
// permission. Anonymous callers get 401; an unresolved admin status gets
// 503 so a directory outage is never reported as a denial; everything else
// without the permission gets 403.
func RequirePermission(perm auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := ViewerFromContext(r.Context())

			if !viewer.Authenticated {
				WriteDomainError(w, auth.ErrAuthenticationRequired)
				return
			}
			if viewer.AdminError != "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusServiceUnavailable,
					ErrCode: "directory_unavailable",
					Err:     errors.New(viewer.AdminError),
				})
				return
			}
			if !viewer.HasPermission(perm) {
				WriteDomainError(w, auth.ErrAuthorizationDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
