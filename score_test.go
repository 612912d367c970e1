package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterScore_KnownValues(t *testing.T) {
	s := NewScorer(nil, memStats{
		"even": {Attack: 10, Defense: 10, Speed: 10, HP: 20, Magic: 10},
	})
	c := CharacterRecord{ID: "even"}

	b := s.Breakdown(c, balancedWeights)
	assert.InDelta(t, 10.0/3, b.Damage, 1e-9)
	assert.InDelta(t, 15.0, b.Survival, 1e-9)
	assert.InDelta(t, 20.0, b.Utility, 1e-9)
	assert.InDelta(t, 50.0, b.Synergy, 1e-9)
	assert.InDelta(t, 100.0, b.Versatility, 1e-9)
	assert.InDelta(t, 5.25, b.Total, 1e-9)
	assert.InDelta(t, 5.25, s.CharacterScore(c, balancedWeights), 1e-9)
}

func TestCharacterScore_MissingStatsIsFinite(t *testing.T) {
	s := NewScorer(memBuilds{}, memStats{})
	c := CharacterRecord{ID: "ghost"}

	got := s.CharacterScore(c, balancedWeights)
	require.False(t, math.IsNaN(got) || math.IsInf(got, 0), "score %v", got)
	// damage/survival/utility 0, synergy 50, versatility 100
	assert.InDelta(t, (50*0.15+100*0.10)/5, got, 1e-9)
	assert.Equal(t, RoleHybrid, ClassifyRole(s.Stats(c)))
}

func TestSynergyPotential(t *testing.T) {
	many := make([]Ability, 20)
	for i := range many {
		many[i] = Ability{Tag: TagHeal}
	}
	tests := []struct {
		name string
		c    CharacterRecord
		want float64
	}{
		{"neutral", CharacterRecord{}, 50},
		{"physical earns no element bonus", CharacterRecord{Element: ElemPhysical}, 50},
		{"elemental", CharacterRecord{Element: ElemIce}, 65},
		{"support tags", CharacterRecord{Abilities: []Ability{{Tag: TagHeal}, {Tag: TagBuff}, {Tag: TagDebuff}, {Tag: TagOther}}}, 65},
		{"capped", CharacterRecord{Element: ElemFire, Abilities: many}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, synergyPotential(tt.c), 1e-9)
		})
	}
}

func TestVersatility(t *testing.T) {
	assert.InDelta(t, 100.0, versatility(DerivedStats{}), 1e-9)
	// values 10, 20, 30, 40: population variance 125
	assert.InDelta(t, 100-math.Sqrt(125), versatility(DerivedStats{Attack: 10, Defense: 20, Speed: 30, Magic: 40}), 1e-9)
	assert.InDelta(t, versatilityFloor, versatility(DerivedStats{Attack: 1000}), 1e-9)
}

func TestTeamScore(t *testing.T) {
	s := NewScorer(nil, memStats{
		"even": {Attack: 10, Defense: 10, Speed: 10, HP: 20, Magic: 10},
	})

	assert.Equal(t, 0.0, s.TeamScore(nil, balancedWeights))
	assert.Equal(t, 0.0, s.TeamScore(Team{}, balancedWeights))

	// one hybrid, no element: 5.25 + 1/4*20
	assert.InDelta(t, 10.25, s.TeamScore(Team{{ID: "even"}}, balancedWeights), 1e-9)

	// same stats with an element: + 1/4*15, and +15 synergy in the member score
	withElem := Team{{ID: "even", Element: ElemFire}}
	member := s.CharacterScore(withElem[0], balancedWeights)
	assert.InDelta(t, member+5+3.75, s.TeamScore(withElem, balancedWeights), 1e-9)
}

func TestTeamScore_DiversityBonus(t *testing.T) {
	f := rosterFixture()
	s := f.scorer()
	w := balancedWeights
	cat := f.catalog

	sum := 0.0
	team := Team{cat[0], cat[1], cat[3], cat[4]} // tank, attacker, support, hybrid
	for _, c := range team {
		sum += s.CharacterScore(c, w)
	}
	// 4 roles -> 20, 4 elements -> 15
	want := (sum + 20 + 15) / 4
	assert.InDelta(t, want, s.TeamScore(team, w), 1e-9)
}

func TestSanitizeStats(t *testing.T) {
	got := sanitizeStats(DerivedStats{Attack: -5, Defense: math.NaN(), Speed: math.Inf(1), HP: 10})
	assert.Equal(t, DerivedStats{HP: 10}, got)
}
