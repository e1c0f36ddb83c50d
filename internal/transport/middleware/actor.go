package middleware

import (
	"net/http"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/pkg/logger"
)

// CurrentUserFunc returns the signed-in account id, or "".
type CurrentUserFunc func() string

// Actor tags the request context and logger with whoever is signed in when the request arrives.
func Actor(current CurrentUserFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if actorID := current(); actorID != "" {
				ctx = internal.ContextWithActorID(ctx, actorID)
				ctx = logger.With(ctx, "actorID", actorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSignedIn answers 401 NOT_SIGNED_IN unless someone is signed in.
func RequireSignedIn(current CurrentUserFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if current() == "" {
				logger.From(r.Context()).Debug("access denied: not signed in", "path", r.URL.Path)
				writeAppError(w, internal.ErrNotSignedIn())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
