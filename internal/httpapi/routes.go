package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dotacast/draft-relay/internal/gsi"
	"github.com/dotacast/draft-relay/internal/hub"
	"github.com/dotacast/draft-relay/internal/metrics"
	"github.com/dotacast/draft-relay/internal/session"
	"github.com/dotacast/draft-relay/internal/ws"
)

func SetupRoutes(gate gsi.TokenGate, reg *session.Registry, h *hub.Hub, publicDir string, log *zap.Logger, met *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Post("/gsi", IngestGSI(gate, reg, log, met))
	r.Get("/ws", ws.Handler(h, reg, log, met))
	r.Get("/draft", DraftPage(publicDir))
	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(publicDir))))
	r.Get("/healthz", Healthz)
	r.Handle("/metrics", met.Handler())
	return r
}
