package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotacast/draft-relay/internal/gsi"
)

func TestNormalize_NilBlock(t *testing.T) {
	_, ok := Normalize(nil)
	assert.False(t, ok)
}

func TestNormalize_SlotScan(t *testing.T) {
	cases := []struct {
		name      string
		block     gsi.TeamBlock
		wantPicks []Selection
		wantBans  []Selection
	}{
		{
			name:      "empty strings are unfilled slots",
			block:     gsi.TeamBlock{"pick0_class": "", "ban0_class": "", "ban1_class": ""},
			wantPicks: []Selection{},
			wantBans:  []Selection{},
		},
		{
			name: "filled slots keep index and hero",
			block: gsi.TeamBlock{
				"pick0_class": "npc_dota_hero_antimage",
				"pick1_class": "",
				"ban0_class":  "npc_dota_hero_axe",
			},
			wantPicks: []Selection{{Slot: 0, Hero: "npc_dota_hero_antimage"}},
			wantBans:  []Selection{{Slot: 0, Hero: "npc_dota_hero_axe"}},
		},
		{
			name: "slots come out in ascending index order",
			block: gsi.TeamBlock{
				"pick4_class": "npc_dota_hero_lion",
				"pick0_class": "npc_dota_hero_antimage",
				"pick2_class": "npc_dota_hero_lina",
			},
			wantPicks: []Selection{
				{Slot: 0, Hero: "npc_dota_hero_antimage"},
				{Slot: 2, Hero: "npc_dota_hero_lina"},
				{Slot: 4, Hero: "npc_dota_hero_lion"},
			},
			wantBans: []Selection{},
		},
		{
			name: "non-slot and non-string fields are ignored",
			block: gsi.TeamBlock{
				"home_team":   true,
				"pick0_id":    float64(1),
				"pick0_class": float64(12),
				"ban0_class":  "npc_dota_hero_pudge",
			},
			wantPicks: []Selection{},
			wantBans:  []Selection{{Slot: 0, Hero: "npc_dota_hero_pudge"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap, ok := Normalize(&gsi.DraftBlock{Radiant: tc.block, Dire: gsi.TeamBlock{}})
			require.True(t, ok)
			assert.Equal(t, tc.wantPicks, snap.Radiant.Picks)
			assert.Equal(t, tc.wantBans, snap.Radiant.Bans)
		})
	}
}

func TestNormalize_FirstPickFromHomeMarker(t *testing.T) {
	snap, ok := Normalize(&gsi.DraftBlock{
		Radiant: gsi.TeamBlock{"home_team": true},
		Dire:    gsi.TeamBlock{},
	})
	require.True(t, ok)
	assert.Equal(t, TeamRadiant, snap.FirstPick)

	snap, ok = Normalize(&gsi.DraftBlock{
		Radiant: gsi.TeamBlock{},
		Dire:    gsi.TeamBlock{"home_team": true},
	})
	require.True(t, ok)
	assert.Equal(t, TeamDire, snap.FirstPick)
}

func TestNormalize_ClockFields(t *testing.T) {
	snap, ok := Normalize(&gsi.DraftBlock{
		ActiveTeam:    gsi.TeamNumDire,
		TimeRemaining: 25,
		RadiantBonus:  130,
		DireBonus:     90,
		Radiant:       gsi.TeamBlock{},
		Dire:          gsi.TeamBlock{},
	})
	require.True(t, ok)
	assert.Equal(t, TeamDire, snap.ActiveTeam)
	assert.Equal(t, 25, snap.TimeRemaining)
	assert.Equal(t, 130, snap.RadiantReserve)
	assert.Equal(t, 90, snap.DireReserve)
}

func TestNormalize_NoActiveTeam(t *testing.T) {
	snap, ok := Normalize(&gsi.DraftBlock{Radiant: gsi.TeamBlock{}, Dire: gsi.TeamBlock{}})
	require.True(t, ok)
	assert.Equal(t, Team(""), snap.ActiveTeam)
}

func TestFormatReserve(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{65, "1:05"},
		{5, "0:05"},
		{600, "10:00"},
		{0, "0:00"},
		{-3, "0:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatReserve(tc.secs), "secs=%d", tc.secs)
	}
}
