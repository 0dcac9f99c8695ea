package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/mobicorp/spaceplanner-backend/api/responses"
	"github.com/mobicorp/spaceplanner-backend/pkg/config"
	pkgerrors "github.com/mobicorp/spaceplanner-backend/pkg/errors"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
)

const (
	envHeader    = "X-SpacePlanner-Env"
	rootBanner   = "SpacePlanner API OK"
	readyTimeout = 2 * time.Second
)

// ReadinessCheck is one dependency probed by HealthReady.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Root answers the plain-text liveness banner.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteText(w, http.StatusOK, rootBanner)
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, c.Name+" not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
