package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/hardikraval/medlocate-backend/api/responses"
	"github.com/hardikraval/medlocate-backend/pkg/config"
	"github.com/hardikraval/medlocate-backend/pkg/db"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/logger"
)

const envHeader = "X-MedLocate-Env"

const readinessTimeout = 5 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports whether the API can reach its backing services.
func HealthReady(cfg *config.Config, logg *logger.Logger, database, cache db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var err error
		checks := map[string]string{}
		if database != nil {
			if pingErr := database.Ping(ctx); pingErr != nil {
				err = multierr.Append(err, pingErr)
				checks["database"] = "down"
			} else {
				checks["database"] = "up"
			}
		}
		if cache != nil {
			if pingErr := cache.Ping(ctx); pingErr != nil {
				err = multierr.Append(err, pingErr)
				checks["redis"] = "down"
			} else {
				checks["redis"] = "up"
			}
		}

		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check").WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
