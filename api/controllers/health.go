package controllers

import (
	"net/http"

	"github.com/greenbasket/farmmarket-backend/api/responses"
	"github.com/greenbasket/farmmarket-backend/pkg/config"
	"github.com/greenbasket/farmmarket-backend/pkg/db"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FarmMarket-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database so load balancers only route to instances
// that can serve traffic.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FarmMarket-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
