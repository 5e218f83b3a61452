package draft

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/dotacast/draft-relay/internal/gsi"
)

// Slot keys look like pick0_class / ban3_class. Anything else in a team
// block (ids, the home marker) is not a slot.
var slotKey = regexp.MustCompile(`^(pick|ban)(\d+)_class$`)

// Normalize converts one GSI draft block into a Snapshot. The second return
// is false when there is no draft data to normalize.
func Normalize(b *gsi.DraftBlock) (Snapshot, bool) {
	if b == nil {
		return Snapshot{}, false
	}

	s := Snapshot{
		ActiveTeam:     teamFromNum(b.ActiveTeam),
		TimeRemaining:  b.TimeRemaining,
		RadiantReserve: b.RadiantBonus,
		DireReserve:    b.DireBonus,
		FirstPick:      TeamDire,
		Radiant:        normalizeTeam(b.Radiant),
		Dire:           normalizeTeam(b.Dire),
	}
	if b.Radiant.HomeTeam() {
		s.FirstPick = TeamRadiant
	}
	return s, true
}

// normalizeTeam scans a flat team block for filled slots. Empty-string values
// are unfilled slots and are skipped; so is anything that isn't a string,
// since a malformed field must not invent a selection.
func normalizeTeam(tb gsi.TeamBlock) TeamState {
	ts := TeamState{Picks: []Selection{}, Bans: []Selection{}}
	for key, raw := range tb {
		m := slotKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		hero, ok := raw.(string)
		if !ok || hero == "" {
			continue
		}
		slot, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		sel := Selection{Slot: slot, Hero: hero}
		if m[1] == "pick" {
			ts.Picks = append(ts.Picks, sel)
		} else {
			ts.Bans = append(ts.Bans, sel)
		}
	}
	sort.Slice(ts.Picks, func(i, j int) bool { return ts.Picks[i].Slot < ts.Picks[j].Slot })
	sort.Slice(ts.Bans, func(i, j int) bool { return ts.Bans[i].Slot < ts.Bans[j].Slot })
	return ts
}
