package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileWeights(t *testing.T) {
	table := DefaultProfiles()

	w, err := table.Weights("")
	require.NoError(t, err)
	assert.Equal(t, balancedWeights, w)

	w, err = table.Weights(ProfileBossFight)
	require.NoError(t, err)
	assert.Equal(t, Weights{Damage: 0.50, Survivability: 0.30, Utility: 0.10, Synergy: 0.10, Versatility: 0.10}, w)

	w, err = table.Weights(ProfileExploration)
	require.NoError(t, err)
	assert.Equal(t, balancedWeights, w)

	_, err = table.Weights("raid")
	assert.True(t, errors.Is(err, ErrUnknownProfile))
}

func TestProfilesAreFullyExplicit(t *testing.T) {
	for name, w := range DefaultProfiles() {
		for field, v := range map[string]float64{
			"damage": w.Damage, "survivability": w.Survivability, "utility": w.Utility,
			"synergy": w.Synergy, "versatility": w.Versatility,
		} {
			if v <= 0 {
				t.Errorf("profile %s: %s weight is %v", name, field, v)
			}
		}
	}
}

func TestDefaultProfilesReturnsCopy(t *testing.T) {
	a := DefaultProfiles()
	a[ProfileBalanced] = Weights{}
	b := DefaultProfiles()
	assert.Equal(t, balancedWeights, b[ProfileBalanced])
}

func TestParseProfileOverrides(t *testing.T) {
	data := []byte(`
boss_fight:
  versatility: 0
raid:
  damage: 0.7
`)
	table, err := ParseProfileOverrides(DefaultProfiles(), data)
	require.NoError(t, err)

	boss := table[ProfileBossFight]
	assert.Equal(t, 0.0, boss.Versatility)
	assert.Equal(t, 0.50, boss.Damage)

	raid, err := table.Weights("raid")
	require.NoError(t, err)
	want := balancedWeights
	want.Damage = 0.7
	assert.Equal(t, want, raid)
}

func TestParseProfileOverrides_Errors(t *testing.T) {
	_, err := ParseProfileOverrides(DefaultProfiles(), []byte("balanced: [1, 2"))
	assert.Error(t, err)

	_, err = ParseProfileOverrides(DefaultProfiles(), []byte("balanced:\n  damage: -1\n"))
	assert.ErrorContains(t, err, "negative damage")

	for _, v := range []string{".nan", ".inf", "-.inf"} {
		_, err = ParseProfileOverrides(DefaultProfiles(), []byte("balanced:\n  utility: "+v+"\n"))
		assert.ErrorContains(t, err, "non-finite utility", v)
	}
}

func TestLoadProfiles(t *testing.T) {
	table, err := LoadProfiles("")
	require.NoError(t, err)
	assert.Len(t, table, 6)

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("survival:\n  synergy: 0.2\n"), 0o644))
	table, err = LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, table[ProfileSurvival].Synergy)

	_, err = LoadProfiles(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
