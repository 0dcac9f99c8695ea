package middleware

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/mobicorp/spaceplanner-backend/api/responses"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
)

// Inbound ids come from browsers and tunnels; anything outside this shape is replaced.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// RequestID reuses a well-formed X-Request-Id header or mints a UUID, echoes it on the
// response and scopes the logger and context with it.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(responses.RequestIDHeader)
			if !requestIDPattern.MatchString(reqID) {
				reqID = uuid.NewString()
			}
			w.Header().Set(responses.RequestIDHeader, reqID)

			ctx := WithRequestID(r.Context(), reqID)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
