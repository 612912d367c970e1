//go:build !lambda

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_OptimizeText(t *testing.T) {
	out, err := runCLI(t, "optimize", "data.json", filepath.Join("testdata", "archive.json"),
		"--profile", "boss_fight", "--require", "lyra")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile: boss_fight")
	assert.Contains(t, out, "Lyra")
	assert.Contains(t, out, "#1 ")
}

func TestCLI_OptimizeJSON(t *testing.T) {
	out, err := runCLI(t, "optimize", "data.json", "--json", "--forbid", "kael,sera", "--element", "water")
	require.NoError(t, err)

	var res struct {
		Recommendations []struct {
			Team []string `json:"team"`
		} `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotEmpty(t, res.Recommendations)
	for _, r := range res.Recommendations {
		assert.NotContains(t, r.Team, "kael")
		assert.NotContains(t, r.Team, "sera")
		assert.Contains(t, r.Team, "lyra", "lyra is the only water character")
	}
}

func TestCLI_OptimizeNoTeam(t *testing.T) {
	out, err := runCLI(t, "optimize", "data.json", "--min-level", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "No optimal team found")
}

func TestCLI_OptimizeErrors(t *testing.T) {
	_, err := runCLI(t, "optimize", "data.json", "--profile", "raid")
	assert.ErrorIs(t, err, ErrUnknownProfile)

	_, err = runCLI(t, "optimize", "missing.json")
	assert.Error(t, err)

	_, err = runCLI(t, "optimize")
	assert.Error(t, err)
}

func TestCLI_SaveAndListParties(t *testing.T) {
	db := filepath.Join(t.TempDir(), "parties.db")
	_, err := runCLI(t, "optimize", "data.json", "--save", db, "--name", "weekly boss", "--profile", "boss_fight")
	require.NoError(t, err)

	out, err := runCLI(t, "parties", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "weekly boss")

	store, err := OpenPartyStore(db)
	require.NoError(t, err)
	parties, err := store.ListParties(context.Background())
	store.Close()
	require.NoError(t, err)
	require.Len(t, parties, 1)

	out, err = runCLI(t, "parties", "show", parties[0].ID, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "weekly boss"`)

	_, err = runCLI(t, "parties", "delete", parties[0].ID, "--db", db)
	require.NoError(t, err)
	_, err = runCLI(t, "parties", "delete", parties[0].ID, "--db", db)
	assert.ErrorIs(t, err, ErrPartyNotFound)
}

func TestCLI_Profiles(t *testing.T) {
	out, err := runCLI(t, "profiles")
	require.NoError(t, err)
	for _, name := range []string{"balanced", "boss_fight", "exploration", "speed_run", "survival", "elemental"} {
		assert.Contains(t, out, name)
	}
}
