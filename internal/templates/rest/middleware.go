package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-kit/kit/log/level"

	"github.com/geoirb/doc-templater/internal/auth"
	"github.com/geoirb/doc-templater/internal/response"
)

type userIDKey struct{}

// authenticate resolves the session cookie to a user and puts its id
// into the request context. Every template route requires it.
func (h *handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := h.sessions.Token(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "authentication required", "")
			return
		}

		user, err := h.auth.User(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				response.Error(w, http.StatusUnauthorized, "authentication required", "")
				return
			}
			level.Error(h.logger).Log("msg", "resolve session user", "err", err)
			response.Error(w, http.StatusInternalServerError, "internal error", "")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, user.ID)))
	})
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
