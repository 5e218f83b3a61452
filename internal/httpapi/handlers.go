package httpapi

import (
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dotacast/draft-relay/internal/gsi"
	"github.com/dotacast/draft-relay/internal/metrics"
	"github.com/dotacast/draft-relay/internal/session"
)

// IngestGSI is the ingestion gateway: it decodes a game-state push, runs the
// token gate, and hands draft data to the registry. The game client ignores
// response bodies and retries on its own cadence, so every outcome answers
// 200 with nothing in it — errors stay on our side of the wire.
func IngestGSI(gate gsi.TokenGate, reg *session.Registry, log *zap.Logger, met *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var p gsi.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			met.PushesTotal.WithLabelValues(metrics.ResultIgnored).Inc()
			log.Debug("undecodable push", zap.String("remote", r.RemoteAddr), zap.Error(err))
			w.WriteHeader(http.StatusOK)
			return
		}

		if !gate.Allow(&p) {
			met.PushesTotal.WithLabelValues(metrics.ResultBadToken).Inc()
			log.Warn("push with invalid token", zap.String("remote", r.RemoteAddr))
			w.WriteHeader(http.StatusOK)
			return
		}

		log.Debug("gsi push", zap.String("remote", r.RemoteAddr), zap.String("game_state", p.GameState()))

		// The game client opens a fresh ephemeral port per POST, so the
		// source identity uses the host only.
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		reg.Inbox() <- session.Push{Source: p.Source(host), Payload: &p}
		w.WriteHeader(http.StatusOK)
	}
}

// DraftPage serves the overlay page viewers load in a browser source.
func DraftPage(publicDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(publicDir, "draft.html"))
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
