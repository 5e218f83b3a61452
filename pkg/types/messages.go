// Package types defines the wire protocol between the relay and its viewer
// clients. Every frame is a JSON envelope {type, data}; the data shape is one
// of the structs below, keyed by the Type tag.
package types

import "encoding/json"

// Server -> viewer message types.
const (
	TypeInitDraft        = "InitDraft"
	TypeUpdateDraftState = "UpdateDraftState"
	TypeNewSelection     = "NewSelection"
)

// Viewer -> server message types.
const (
	TypeRequestDraft = "RequestDraft"
)

// ClientMessage is what a viewer may send. RequestDraft carries no payload.
type ClientMessage struct {
	Type string `json:"type"`
}

// ServerMessage is the envelope for every frame pushed to viewers.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// InitDraft is the full catch-up payload sent to a single viewer on request,
// reconstructing everything incremental events would have told it.
type InitDraft struct {
	FirstPick    string   `json:"first_pick"`
	RadiantBans  []string `json:"radiant_bans"`
	RadiantPicks []string `json:"radiant_picks"`
	DireBans     []string `json:"dire_bans"`
	DirePicks    []string `json:"dire_picks"`
}

// DraftState is broadcast whenever a push with an active team is processed.
// Reserve times are preformatted M:SS strings for direct display.
type DraftState struct {
	ActiveTeam     string `json:"active_team"`
	ActiveTime     int    `json:"active_time"`
	RadiantReserve string `json:"radiant_reserve"`
	DireReserve    string `json:"dire_reserve"`
}

// Selection is broadcast once per newly filled pick or ban slot.
type Selection struct {
	Team string `json:"team"` // "radiant" | "dire"
	Kind string `json:"type"` // "pick" | "ban"
	ID   int    `json:"id"`   // slot index within the team's picks or bans
	Hero string `json:"hero"`
}

// Frame marshals one envelope ready for the hub.
func Frame(msgType string, data any) ([]byte, error) {
	return json.Marshal(ServerMessage{Type: msgType, Data: data})
}
