package main

import (
	"errors"
	"fmt"
)

// ErrContradictoryConstraints means no team can satisfy the constraints,
// independent of how good the search is.
var ErrContradictoryConstraints = errors.New("contradictory constraints")

// Constraints restrict the candidate pool and the shape of a valid team.
// Nil level bounds are unbounded on that side.
type Constraints struct {
	Required  []string
	Forbidden []string
	Elements  []Element
	MinLevel  *int
	MaxLevel  *int
}

func (c *Constraints) isForbidden(id string) bool {
	for _, f := range c.Forbidden {
		if f == id {
			return true
		}
	}
	return false
}

func (c *Constraints) levelOK(level int) bool {
	if c.MinLevel != nil && level < *c.MinLevel {
		return false
	}
	if c.MaxLevel != nil && level > *c.MaxLevel {
		return false
	}
	return true
}

// FilterPool drops forbidden and out-of-bounds characters, keeping catalog order.
func FilterPool(all []CharacterRecord, builds BuildStore, c Constraints) []CharacterRecord {
	pool := make([]CharacterRecord, 0, len(all))
	for _, ch := range all {
		if c.isForbidden(ch.ID) {
			continue
		}
		if !c.levelOK(buildLevel(builds, ch.ID)) {
			continue
		}
		pool = append(pool, ch)
	}
	return pool
}

// IsValidTeam reports whether team contains every required id and covers
// every required element. Empty teams are never valid.
func (c *Constraints) IsValidTeam(team Team) bool {
	if len(team) == 0 {
		return false
	}
	for _, id := range c.Required {
		if !team.contains(id) {
			return false
		}
	}
	for _, e := range c.Elements {
		if !team.hasElement(e) {
			return false
		}
	}
	return true
}

// requiredInPool returns the required characters present in pool, in
// Required order, without repeats.
func (c *Constraints) requiredInPool(pool []CharacterRecord) Team {
	var team Team
	for _, id := range c.Required {
		if team.contains(id) {
			continue
		}
		for _, ch := range pool {
			if ch.ID == id {
				team = append(team, ch)
				break
			}
		}
	}
	return team
}

// Check reports constraint sets that can never be satisfied. It is only a
// diagnostic; the ranker's validity filter handles these cases anyway.
func (c *Constraints) Check(all []CharacterRecord, builds BuildStore, teamSize int) error {
	if c.MinLevel != nil && c.MaxLevel != nil && *c.MinLevel > *c.MaxLevel {
		return fmt.Errorf("%w: min level %d above max level %d", ErrContradictoryConstraints, *c.MinLevel, *c.MaxLevel)
	}
	known := make(map[string]bool, len(all))
	for _, ch := range all {
		known[ch.ID] = true
	}
	distinct := make(map[string]bool, len(c.Required))
	for _, id := range c.Required {
		distinct[id] = true
		switch {
		case !known[id]:
			return fmt.Errorf("%w: required character %q is not in the catalog", ErrContradictoryConstraints, id)
		case c.isForbidden(id):
			return fmt.Errorf("%w: character %q is both required and forbidden", ErrContradictoryConstraints, id)
		case !c.levelOK(buildLevel(builds, id)):
			return fmt.Errorf("%w: required character %q is level %d, outside the level bounds", ErrContradictoryConstraints, id, buildLevel(builds, id))
		}
	}
	if teamSize > 0 && len(distinct) > teamSize {
		return fmt.Errorf("%w: %d required characters exceed team size %d", ErrContradictoryConstraints, len(distinct), teamSize)
	}
	return nil
}
