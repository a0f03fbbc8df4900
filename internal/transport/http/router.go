// Package httptransport assembles the HTTP API from the per-feature handlers.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	certhandler "certgate/internal/certificate/handler"
	deliveryhandler "certgate/internal/delivery/handler"
	"certgate/internal/platform/middleware"
	"certgate/pkg/platform/httputil"
	"certgate/pkg/platform/middleware/metadata"
	"certgate/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by feature handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// statically assert the feature handlers satisfy Registrar.
var (
	_ Registrar = (*certhandler.Handler)(nil)
	_ Registrar = (*deliveryhandler.Handler)(nil)
)

// NewRouter wires the shared middleware chain, the operational endpoints, and
// every feature handler.
func NewRouter(logger *slog.Logger, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
