package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *PartyStore {
	t.Helper()
	s, err := OpenPartyStore(filepath.Join(t.TempDir(), "parties.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPartyStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := Party{
		Name:      "boss team",
		Profile:   ProfileBossFight,
		Algorithm: AlgoGreedy,
		Members:   []string{"sera", "volt", "lyra", "brann"},
		Score:     42.5,
	}
	id, err := s.SaveParty(ctx, in)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	got, err := s.GetParty(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Profile, got.Profile)
	assert.Equal(t, in.Algorithm, got.Algorithm)
	assert.Equal(t, in.Members, got.Members)
	assert.InDelta(t, in.Score, got.Score, 1e-9)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}

func TestPartyStore_Overwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveParty(ctx, Party{Name: "a", Members: []string{"x", "y", "z"}})
	require.NoError(t, err)
	_, err = s.SaveParty(ctx, Party{ID: id, Name: "b", Members: []string{"q"}})
	require.NoError(t, err)

	got, err := s.GetParty(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, []string{"q"}, got.Members)
}

func TestPartyStore_ListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	older, err := s.SaveParty(ctx, Party{Name: "old", Members: []string{"a"}, CreatedAt: base})
	require.NoError(t, err)
	newer, err := s.SaveParty(ctx, Party{Name: "new", Members: []string{"b"}, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	list, err := s.ListParties(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].ID)
	assert.Equal(t, older, list[1].ID)

	require.NoError(t, s.DeleteParty(ctx, older))
	_, err = s.GetParty(ctx, older)
	assert.True(t, errors.Is(err, ErrPartyNotFound))

	err = s.DeleteParty(ctx, older)
	assert.True(t, errors.Is(err, ErrPartyNotFound))

	list, err = s.ListParties(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPartyStore_RejectsEmpty(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SaveParty(context.Background(), Party{Name: "none"})
	assert.Error(t, err)
}

func TestPartyFromRecommendation(t *testing.T) {
	f := rosterFixture()
	o := f.optimizer(DefaultConfig())
	res := recommend(t, o, ProfileBalanced, Constraints{})
	best, ok := res.Best()
	require.True(t, ok)

	p := PartyFromRecommendation("mine", res.Profile, best)
	assert.Equal(t, best.Team.IDs(), p.Members)
	assert.Equal(t, best.Algorithm, p.Algorithm)

	var sink PartySink = openTestStore(t)
	id, err := sink.SaveParty(context.Background(), p)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
