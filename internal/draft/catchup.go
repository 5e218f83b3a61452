package draft

import "github.com/dotacast/draft-relay/pkg/types"

// BuildInit reconstructs the full catch-up payload a reconnecting viewer
// needs, structurally what replaying every selection event from an empty
// draft would have produced. Returns nil when there is no draft in progress;
// the hub must send nothing in that case.
func BuildInit(s *Snapshot) *types.InitDraft {
	if s == nil {
		return nil
	}
	return &types.InitDraft{
		FirstPick:    string(s.FirstPick),
		RadiantBans:  heroes(s.Radiant.Bans),
		RadiantPicks: heroes(s.Radiant.Picks),
		DireBans:     heroes(s.Dire.Bans),
		DirePicks:    heroes(s.Dire.Picks),
	}
}

func heroes(sels []Selection) []string {
	out := make([]string, 0, len(sels))
	for _, sel := range sels {
		out = append(out, sel.Hero)
	}
	return out
}
