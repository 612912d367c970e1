package main

import "context"

// Catalog enumerates the read-only character records.
type Catalog interface {
	AllCharacters() []CharacterRecord
}

// BuildStore returns the player's saved build for a character, if any.
type BuildStore interface {
	LoadBuild(id string) (Build, bool)
}

// StatsProvider computes derived stats for a character at a given build.
// ok is false when the character or build cannot be resolved.
type StatsProvider interface {
	CalculateStats(id string, level int, attributes map[string]int) (DerivedStats, bool)
}

// PartySink persists a team the player picked.
type PartySink interface {
	SaveParty(ctx context.Context, p Party) (string, error)
}

// buildLevel returns the saved level for id, or 1 when nothing is saved.
func buildLevel(builds BuildStore, id string) int {
	if builds == nil {
		return 1
	}
	b, ok := builds.LoadBuild(id)
	if !ok || b.Level < 1 {
		return 1
	}
	return b.Level
}

func loadBuildOrDefault(builds BuildStore, id string) Build {
	if builds == nil {
		return defaultBuild()
	}
	b, ok := builds.LoadBuild(id)
	if !ok {
		return defaultBuild()
	}
	if b.Level < 1 {
		b.Level = 1
	}
	return b
}
