package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mobicorp/spaceplanner-backend/api/responses"
	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
)

// PanicWriter answers a request whose handler panicked.
type PanicWriter func(w http.ResponseWriter, r *http.Request, err error)

// Recoverer turns handler panics into the standard internal error envelope.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return RecoverWith(logg, func(w http.ResponseWriter, r *http.Request, err error) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
	})
}

// RecoverWith is Recoverer with a caller-supplied response, for routes whose contract is
// not the standard envelope.
func RecoverWith(logg *logger.Logger, write PanicWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if logg != nil {
					fields := map[string]any{"panic": rec, "method": r.Method, "path": r.URL.Path}
					if rc := chi.RouteContext(ctx); rc != nil && rc.RoutePattern() != "" {
						fields["route"] = rc.RoutePattern()
					}
					ctx = logg.WithFields(ctx, fields)
					logg.Error(ctx, "panic.recovered", err)
				}
				write(w, r.WithContext(ctx), err)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
