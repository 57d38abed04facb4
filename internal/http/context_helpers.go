package httpx

import (
	"context"

	"github.com/gamevault/authcore/internal/domain/auth"
)

type contextKey struct{ name string }

var viewerKey = contextKey{"viewer"}

// SetViewerInContext stores the resolved viewer in the context.
func SetViewerInContext(ctx context.Context, viewer auth.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// ViewerFromContext retrieves the viewer, defaulting to anonymous when the
// middleware did not run.
func ViewerFromContext(ctx context.Context) auth.Viewer {
	if viewer, ok := ctx.Value(viewerKey).(auth.Viewer); ok {
		return viewer
	}
	return auth.AnonymousViewer()
}
