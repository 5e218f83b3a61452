package gsi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGate(t *testing.T) {
	gate := NewTokenGate("hello1234")

	cases := []struct {
		name    string
		payload *Payload
		want    bool
	}{
		{"matching token", &Payload{Auth: &Auth{Token: "hello1234"}}, true},
		{"wrong token", &Payload{Auth: &Auth{Token: "nope"}}, false},
		{"missing auth block", &Payload{}, false},
		{"nil payload", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, gate.Allow(tc.payload))
		})
	}
}

func TestPayload_InDraft(t *testing.T) {
	p := &Payload{
		Map:   &Map{GameState: StateHeroSelection},
		Draft: &DraftBlock{},
	}
	assert.True(t, p.InDraft())

	assert.False(t, (&Payload{Map: &Map{GameState: StateInProgress}, Draft: &DraftBlock{}}).InDraft())
	assert.False(t, (&Payload{Map: &Map{GameState: StateHeroSelection}}).InDraft())
	assert.False(t, (&Payload{Draft: &DraftBlock{}}).InDraft())
}

func TestPayload_DecodeRealShape(t *testing.T) {
	body := `{
		"auth": {"token": "hello1234"},
		"provider": {"name": "Dota 2", "appid": 570, "timestamp": 1700000000},
		"map": {"matchid": "12345", "game_state": "DOTA_GAMERULES_STATE_HERO_SELECTION"},
		"draft": {
			"activeteam": 2,
			"pick": true,
			"activeteam_time_remaining": 27,
			"radiant_bonus_time": 130,
			"dire_bonus_time": 130,
			"team2": {
				"home_team": true,
				"pick0_id": 1,
				"pick0_class": "npc_dota_hero_antimage",
				"ban0_id": 0,
				"ban0_class": ""
			},
			"team3": {
				"home_team": false,
				"pick0_id": 0,
				"pick0_class": ""
			}
		}
	}`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	require.True(t, p.InDraft())
	assert.Equal(t, TeamNumRadiant, p.Draft.ActiveTeam)
	assert.Equal(t, 27, p.Draft.TimeRemaining)
	assert.True(t, p.Draft.Radiant.HomeTeam())
	assert.False(t, p.Draft.Dire.HomeTeam())
	assert.Equal(t, "npc_dota_hero_antimage", p.Draft.Radiant["pick0_class"])
	assert.Equal(t, "Dota 2@127.0.0.1", p.Source("127.0.0.1"))
}
