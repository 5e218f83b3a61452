package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dotacast/draft-relay/internal/draft"
	"github.com/dotacast/draft-relay/internal/hub"
	"github.com/dotacast/draft-relay/internal/metrics"
	"github.com/dotacast/draft-relay/internal/session"
	"github.com/dotacast/draft-relay/pkg/types"
)

// Handler upgrades viewer connections, registers them with the hub, and
// answers RequestDraft messages with a catch-up payload built from the
// registry's current snapshot.
func Handler(h *hub.Hub, reg *session.Registry, log *zap.Logger, met *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// Overlay pages are typically served from OBS or a local
			// browser source, not this host.
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		viewerID := uuid.NewString()
		out := make(chan []byte, 16)

		h.Inbox() <- hub.Join{ViewerID: viewerID, Outbox: out}
		defer func() { h.Inbox() <- hub.Leave{ViewerID: viewerID} }()

		// Writer goroutine: drains the outbox until the hub closes it.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for frame := range out {
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, frame)
				cancel()
			}
		}()

		// Reader loop. Viewers are mostly passive; the only message they
		// send is RequestDraft after a connect or reload.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				log.Debug("bad viewer message", zap.String("viewer_id", viewerID), zap.Error(err))
				continue
			}

			switch cm.Type {
			case types.TypeRequestDraft:
				respondCatchup(r.Context(), h, reg, met, viewerID)
			default:
				log.Debug("unknown viewer message", zap.String("viewer_id", viewerID), zap.String("type", cm.Type))
			}
		}
	}
}

// respondCatchup sends the full current draft to one viewer. When no draft is
// in progress nothing is sent at all; the viewer keeps waiting for live
// events. The reply wait is bounded by ctx so a registry that has already
// shut down cannot strand the connection goroutine.
func respondCatchup(ctx context.Context, h *hub.Hub, reg *session.Registry, met *metrics.Metrics, viewerID string) {
	reply := make(chan *draft.Snapshot, 1)
	reg.Inbox() <- session.Current{Reply: reply}

	var snap *draft.Snapshot
	select {
	case snap = <-reply:
	case <-ctx.Done():
		return
	}

	init := draft.BuildInit(snap)
	if init == nil {
		return
	}
	frame, err := types.Frame(types.TypeInitDraft, init)
	if err != nil {
		return
	}
	h.Inbox() <- hub.SendTo{ViewerID: viewerID, Frame: frame}
	met.CatchupsTotal.Inc()
}
