// Package draft is the pure core of the relay: it normalizes loosely-typed
// GSI draft blocks into snapshots, diffs consecutive snapshots into discrete
// selection events, and rebuilds catch-up payloads for late viewers. Nothing
// in this package does I/O.
package draft

import (
	"fmt"

	"github.com/dotacast/draft-relay/internal/gsi"
)

type Team string

const (
	TeamRadiant Team = "radiant"
	TeamDire    Team = "dire"
)

type Kind string

const (
	KindPick Kind = "pick"
	KindBan  Kind = "ban"
)

// Selection is one filled slot in a team's pick or ban sequence. Slot indexes
// are assigned upstream and never reordered here, only filtered.
type Selection struct {
	Slot int
	Hero string
}

type TeamState struct {
	Picks []Selection
	Bans  []Selection
}

// Snapshot is one normalized view of the draft, immutable once produced.
// ActiveTeam is empty when no team is on the clock.
type Snapshot struct {
	ActiveTeam     Team
	TimeRemaining  int
	RadiantReserve int
	DireReserve    int
	FirstPick      Team
	Radiant        TeamState
	Dire           TeamState
}

func teamFromNum(n int) Team {
	switch n {
	case gsi.TeamNumRadiant:
		return TeamRadiant
	case gsi.TeamNumDire:
		return TeamDire
	default:
		return ""
	}
}

// FormatReserve renders banked reserve seconds as M:SS for display,
// e.g. 65 -> "1:05", 600 -> "10:00".
func FormatReserve(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
