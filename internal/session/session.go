// Package session owns the draft session state: the latest normalized
// snapshot, which doubles as the previous snapshot when the next push is
// diffed. All ingestion and catch-up reads go through
// one goroutine loop, so a push is normalized, diffed, stored, and handed to
// the hub atomically with respect to every other push and every catch-up
// read. Change detection depends on that: two interleaved ingests would diff
// against a torn "previous".
package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/dotacast/draft-relay/internal/draft"
	"github.com/dotacast/draft-relay/internal/gsi"
	"github.com/dotacast/draft-relay/internal/hub"
	"github.com/dotacast/draft-relay/internal/metrics"
	"github.com/dotacast/draft-relay/pkg/types"
)

type Msg interface{ isSessionMsg() }

// Push is one authenticated telemetry push. Reply is optional; when set, the
// registry reports what the push produced.
type Push struct {
	Source  string
	Payload *gsi.Payload
	Reply   chan Result
}

type Result struct {
	Accepted bool
	Events   []draft.Event
	Clock    *draft.Clock
}

// Current asks for the latest snapshot; nil means no draft in progress.
type Current struct {
	Reply chan *draft.Snapshot
}

type Shutdown struct{}

// GetView reflects internal state without data races. Test-only.
type GetView struct{ Reply chan View }

type View struct {
	Source   string
	Snapshot *draft.Snapshot
}

func (Push) isSessionMsg()     {}
func (Current) isSessionMsg()  {}
func (Shutdown) isSessionMsg() {}
func (GetView) isSessionMsg()  {}

// Registry is the single writer for draft session state. One draft session
// lives from the first accepted draft-phase push until telemetry moves to a
// non-draft game state.
type Registry struct {
	inbox  chan Msg
	hub    *hub.Hub
	log    *zap.Logger
	met    *metrics.Metrics
	ctx    context.Context
	cancel context.CancelFunc

	// Bound telemetry source identity. The first authenticated draft push
	// binds it; pushes from any other identity are dropped until the
	// session resets, so ingestion and catch-up can never read from two
	// different game clients.
	source string

	// Latest snapshot; serves as the previous snapshot when the next push
	// is diffed, just before being replaced.
	cur *draft.Snapshot
}

func NewRegistry(parent context.Context, h *hub.Hub, log *zap.Logger, met *metrics.Metrics) *Registry {
	ctx, cancel := context.WithCancel(parent)
	r := &Registry{
		inbox:  make(chan Msg, 64),
		hub:    h,
		log:    log,
		met:    met,
		ctx:    ctx,
		cancel: cancel,
	}
	go r.loop()
	return r
}

func (r *Registry) Inbox() chan<- Msg { return r.inbox }

func (r *Registry) loop() {
	for {
		select {
		case <-r.ctx.Done():
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Push:
				res := r.handlePush(msg)
				if msg.Reply != nil {
					msg.Reply <- res
				}

			case Current:
				msg.Reply <- r.cur

			case GetView:
				msg.Reply <- View{Source: r.source, Snapshot: r.cur}

			case Shutdown:
				r.cancel()
				return
			}
		}
	}
}

// handlePush runs the normalize->diff->store->publish pipeline for one push.
// Any panic while computing is caught here: the push becomes a no-op and the
// stored snapshot is left as it was, since nothing is written until the
// pipeline has succeeded.
func (r *Registry) handlePush(msg Push) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.met.PushesTotal.WithLabelValues(metrics.ResultError).Inc()
			r.log.Error("push processing fault", zap.Any("panic", rec), zap.String("source", msg.Source))
			res = Result{}
		}
	}()

	// Once bound, only the bound source may advance or end the session.
	// Without this, a second game client on the same token idling at a menu
	// or post-game screen would keep resetting a live draft.
	if r.source != "" && r.source != msg.Source {
		r.met.PushesTotal.WithLabelValues(metrics.ResultWrongSource).Inc()
		r.log.Warn("dropping push from unbound source",
			zap.String("source", msg.Source), zap.String("bound", r.source))
		return Result{}
	}

	state := msg.Payload.GameState()
	if state != "" && state != gsi.StateHeroSelection {
		// Telemetry moved past the draft phase: the session is over.
		r.endSession(state)
		r.met.PushesTotal.WithLabelValues(metrics.ResultIgnored).Inc()
		return Result{}
	}
	if state == "" || msg.Payload.Draft == nil {
		// No game-state tag, or a draft-phase tag without draft data:
		// malformed push, skip it and keep prior state.
		r.met.PushesTotal.WithLabelValues(metrics.ResultIgnored).Inc()
		r.log.Debug("push without draft data", zap.String("source", msg.Source), zap.String("game_state", state))
		return Result{}
	}

	if r.source == "" {
		r.source = msg.Source
		r.log.Info("bound telemetry source", zap.String("source", r.source))
	}

	snap, ok := draft.Normalize(msg.Payload.Draft)
	if !ok {
		r.met.PushesTotal.WithLabelValues(metrics.ResultIgnored).Inc()
		return Result{}
	}

	events, clock := draft.Diff(r.cur, snap)
	r.cur = &snap

	frames := r.frames(events, clock)
	if len(frames) > 0 {
		r.hub.Inbox() <- hub.Publish{Frames: frames}
	}

	r.met.PushesTotal.WithLabelValues(metrics.ResultOK).Inc()
	r.met.SelectionsTotal.Add(float64(len(events)))
	for _, ev := range events {
		r.log.Info("new selection",
			zap.String("team", string(ev.Team)),
			zap.String("kind", string(ev.Kind)),
			zap.Int("slot", ev.Slot),
			zap.String("hero", ev.Hero))
	}
	return Result{Accepted: true, Events: events, Clock: clock}
}

// frames renders this push's events as wire frames, clock first so viewers
// see the turn state before the selections it accompanies.
func (r *Registry) frames(events []draft.Event, clock *draft.Clock) [][]byte {
	frames := make([][]byte, 0, len(events)+1)
	if clock != nil {
		frame, err := types.Frame(types.TypeUpdateDraftState, types.DraftState{
			ActiveTeam:     string(clock.ActiveTeam),
			ActiveTime:     clock.TimeRemaining,
			RadiantReserve: draft.FormatReserve(clock.RadiantReserve),
			DireReserve:    draft.FormatReserve(clock.DireReserve),
		})
		if err == nil {
			frames = append(frames, frame)
		}
	}
	for _, ev := range events {
		frame, err := types.Frame(types.TypeNewSelection, types.Selection{
			Team: string(ev.Team),
			Kind: string(ev.Kind),
			ID:   ev.Slot,
			Hero: ev.Hero,
		})
		if err == nil {
			frames = append(frames, frame)
		}
	}
	return frames
}

func (r *Registry) endSession(state string) {
	if r.cur == nil && r.source == "" {
		return
	}
	r.log.Info("draft session ended", zap.String("game_state", state), zap.String("source", r.source))
	r.cur = nil
	r.source = ""
}
