package draft

// Event is one slot transitioning from empty to filled between two
// consecutive snapshots.
type Event struct {
	Team Team
	Kind Kind
	Slot int
	Hero string
}

// Clock summarizes turn/timer state for a push whose snapshot has a team on
// the clock.
type Clock struct {
	ActiveTeam     Team
	TimeRemaining  int
	RadiantReserve int
	DireReserve    int
}

// Diff reports every slot newly filled in cur relative to prev, plus the
// clock when a team is active. A nil prev means this is the first snapshot of
// the session: selections already present then are not changes, so no events
// are emitted and catch-up is the recovery path for them. Events come out in
// a fixed order (radiant picks, radiant bans, dire picks, dire bans,
// ascending slot within each group) so consumers see a deterministic stream.
func Diff(prev *Snapshot, cur Snapshot) ([]Event, *Clock) {
	var clock *Clock
	if cur.ActiveTeam != "" {
		clock = &Clock{
			ActiveTeam:     cur.ActiveTeam,
			TimeRemaining:  cur.TimeRemaining,
			RadiantReserve: cur.RadiantReserve,
			DireReserve:    cur.DireReserve,
		}
	}
	if prev == nil {
		return nil, clock
	}

	events := []Event{}
	events = appendNewFills(events, TeamRadiant, KindPick, prev.Radiant.Picks, cur.Radiant.Picks)
	events = appendNewFills(events, TeamRadiant, KindBan, prev.Radiant.Bans, cur.Radiant.Bans)
	events = appendNewFills(events, TeamDire, KindPick, prev.Dire.Picks, cur.Dire.Picks)
	events = appendNewFills(events, TeamDire, KindBan, prev.Dire.Bans, cur.Dire.Bans)
	return events, clock
}

// appendNewFills emits one event per slot filled in cur but not in prev.
// A slot filled in both never re-fires, even if the hero value changed:
// the upstream source does not retract selections, so a changed value on an
// already-filled slot is noise, not a new selection.
func appendNewFills(events []Event, team Team, kind Kind, prev, cur []Selection) []Event {
	seen := make(map[int]bool, len(prev))
	for _, sel := range prev {
		seen[sel.Slot] = true
	}
	for _, sel := range cur {
		if seen[sel.Slot] {
			continue
		}
		events = append(events, Event{Team: team, Kind: kind, Slot: sel.Slot, Hero: sel.Hero})
	}
	return events
}
