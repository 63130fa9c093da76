package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/metrics"
)

type contextKey string

const sessionUserKey contextKey = "sessionUser"

// recordDuration feeds the request-duration histogram, labeled by the chi
// route pattern rather than the raw path so cardinality stays bounded.
func (s *Server) recordDuration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

// requireSession guards admin routes with the bearer-token session lookup.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.errs.Respond(w, r, apperrors.NewUnauthorizedError("missing bearer token"))
			return
		}

		username, err := s.store.SessionUser(r.Context(), token)
		if err != nil {
			s.errs.Respond(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionUserKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
