// Package hub fans out wire frames to connected viewers. It is a single
// goroutine loop fed by a typed message inbox; registration, broadcast, and
// catch-up replies are all serialized through it, so frames reach every
// viewer in the order they were published.
package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/dotacast/draft-relay/internal/metrics"
)

type Msg interface{ isHubMsg() }

// Join registers a viewer's outbox. Frames are delivered by buffered channel;
// a viewer that stops draining its outbox gets dropped rather than blocking
// everyone else.
type Join struct {
	ViewerID string
	Outbox   chan []byte
}

type Leave struct{ ViewerID string }

// Publish delivers each frame, in order, to every connected viewer.
type Publish struct{ Frames [][]byte }

// SendTo delivers one frame to a single viewer (catch-up replies).
type SendTo struct {
	ViewerID string
	Frame    []byte
}

type Shutdown struct{}

// GetView reflects internal state without data races. Test-only.
type GetView struct{ Reply chan View }

type View struct{ NumViewers int }

func (Join) isHubMsg()     {}
func (Leave) isHubMsg()    {}
func (Publish) isHubMsg()  {}
func (SendTo) isHubMsg()   {}
func (Shutdown) isHubMsg() {}
func (GetView) isHubMsg()  {}

type Hub struct {
	inbox   chan Msg
	viewers map[string]chan []byte
	log     *zap.Logger
	met     *metrics.Metrics
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context, log *zap.Logger, met *metrics.Metrics) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan Msg, 64),
		viewers: make(map[string]chan []byte),
		log:     log,
		met:     met,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Join:
				h.viewers[msg.ViewerID] = msg.Outbox
				h.log.Info("viewer joined", zap.String("viewer_id", msg.ViewerID))

			case Leave:
				if ch, ok := h.viewers[msg.ViewerID]; ok {
					close(ch)
					delete(h.viewers, msg.ViewerID)
					h.log.Info("viewer left", zap.String("viewer_id", msg.ViewerID))
				}

			case Publish:
				for _, frame := range msg.Frames {
					h.broadcast(frame)
				}

			case SendTo:
				if ch, ok := h.viewers[msg.ViewerID]; ok {
					h.send(msg.ViewerID, ch, msg.Frame)
				}

			case GetView:
				msg.Reply <- View{NumViewers: len(h.viewers)}

			case Shutdown:
				h.shutdown()
				return
			}
			h.met.ConnectedViewers.Set(float64(len(h.viewers)))
		}
	}
}

func (h *Hub) broadcast(frame []byte) {
	for id, ch := range h.viewers {
		h.send(id, ch, frame)
	}
}

// send is best-effort: a full outbox means the viewer is too slow, so it is
// closed and dropped instead of stalling delivery to the rest.
func (h *Hub) send(id string, ch chan []byte, frame []byte) {
	select {
	case ch <- frame:
	default:
		close(ch)
		delete(h.viewers, id)
		h.log.Warn("dropping slow viewer", zap.String("viewer_id", id))
	}
}

func (h *Hub) shutdown() {
	for id, ch := range h.viewers {
		close(ch)
		delete(h.viewers, id)
	}
	h.cancel()
}
