package gsi

// Game-state tags carried in map.game_state. Only the hero-selection state
// carries draft data we care about; the rest are listed so callers can log
// transitions meaningfully.
const (
	StateInit          = "DOTA_GAMERULES_STATE_INIT"
	StateWaitForLoad   = "DOTA_GAMERULES_STATE_WAIT_FOR_PLAYERS_TO_LOAD"
	StateHeroSelection = "DOTA_GAMERULES_STATE_HERO_SELECTION"
	StateStrategyTime  = "DOTA_GAMERULES_STATE_STRATEGY_TIME"
	StateTeamShowcase  = "DOTA_GAMERULES_STATE_TEAM_SHOWCASE"
	StatePreGame       = "DOTA_GAMERULES_STATE_PRE_GAME"
	StateInProgress    = "DOTA_GAMERULES_STATE_GAME_IN_PROGRESS"
	StatePostGame      = "DOTA_GAMERULES_STATE_POST_GAME"
	StateLast          = "DOTA_GAMERULES_STATE_LAST"
	StateDisconnect    = "DOTA_GAMERULES_STATE_DISCONNECT"
)

// GSI team numbers as they appear in draft.activeteam.
const (
	TeamNumRadiant = 2
	TeamNumDire    = 3
)

// Payload is one game-state-integration push. The game client sends the
// whole thing as JSON; blocks we never consume are simply not modeled.
type Payload struct {
	Auth     *Auth       `json:"auth"`
	Provider *Provider   `json:"provider"`
	Map      *Map        `json:"map"`
	Draft    *DraftBlock `json:"draft"`
}

type Auth struct {
	Token string `json:"token"`
}

type Provider struct {
	Name      string `json:"name"`
	AppID     int    `json:"appid"`
	Version   int    `json:"version"`
	Timestamp int64  `json:"timestamp"`
}

type Map struct {
	Name      string `json:"name"`
	MatchID   string `json:"matchid"`
	GameState string `json:"game_state"`
}

// DraftBlock is the draft section of a push. Team blocks are flat,
// loosely-typed key/value maps (pick0_class, ban3_class, home_team, ...)
// whose schema belongs to the game client, so they stay untyped here and
// are normalized by the draft package.
type DraftBlock struct {
	ActiveTeam    int       `json:"activeteam"`
	Pick          bool      `json:"pick"`
	TimeRemaining int       `json:"activeteam_time_remaining"`
	RadiantBonus  int       `json:"radiant_bonus_time"`
	DireBonus     int       `json:"dire_bonus_time"`
	Radiant       TeamBlock `json:"team2"`
	Dire          TeamBlock `json:"team3"`
}

type TeamBlock map[string]any

// HomeTeam reports whether this team's block carries the home marker.
func (t TeamBlock) HomeTeam() bool {
	v, _ := t["home_team"].(bool)
	return v
}

// InDraft reports whether this push carries hero-selection draft data.
func (p *Payload) InDraft() bool {
	return p.Map != nil && p.Map.GameState == StateHeroSelection && p.Draft != nil
}

// GameState returns the push's game-state tag, or "" when the map block is
// missing (e.g. the menu screen pushes).
func (p *Payload) GameState() string {
	if p.Map == nil {
		return ""
	}
	return p.Map.GameState
}

// Source identifies the telemetry source this push came from. The provider
// name plus the sender address is stable for one game client across a
// session, which is all the registry needs to bind to a single source.
func (p *Payload) Source(remoteAddr string) string {
	name := ""
	if p.Provider != nil {
		name = p.Provider.Name
	}
	return name + "@" + remoteAddr
}
