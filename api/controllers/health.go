package controllers

import (
	"context"
	"net/http"

	"github.com/greenhollow/leafmarket-pricing/api/responses"
	"github.com/greenhollow/leafmarket-pricing/pkg/config"
	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
	"github.com/greenhollow/leafmarket-pricing/pkg/logger"
)

const envHeader = "X-LeafMarket-Env"

// Pinger is the readiness surface a backing dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every supplied dependency
// answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
