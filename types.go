package main

import "encoding/json"

type Element int

const (
	ElemNone Element = iota // neutral
	ElemFire
	ElemWater
	ElemIce
	ElemLightning
	ElemEarth
	ElemLight
	ElemDark
	ElemVoid
	ElemPhysical
)

var elementNames = [...]string{
	ElemNone:      "",
	ElemFire:      "fire",
	ElemWater:     "water",
	ElemIce:       "ice",
	ElemLightning: "lightning",
	ElemEarth:     "earth",
	ElemLight:     "light",
	ElemDark:      "dark",
	ElemVoid:      "void",
	ElemPhysical:  "physical",
}

func (e Element) String() string {
	if e < 0 || int(e) >= len(elementNames) {
		return ""
	}
	return elementNames[e]
}

func (e Element) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }

func parseElement(s string) (Element, bool) {
	switch s {
	case "", "none", "neutral":
		return ElemNone, true
	case "fire":
		return ElemFire, true
	case "water":
		return ElemWater, true
	case "ice":
		return ElemIce, true
	case "lightning":
		return ElemLightning, true
	case "earth":
		return ElemEarth, true
	case "light":
		return ElemLight, true
	case "dark":
		return ElemDark, true
	case "void":
		return ElemVoid, true
	case "physical":
		return ElemPhysical, true
	}
	return ElemNone, false
}

type Role int

const (
	RoleHybrid Role = iota
	RoleTank
	RoleSupport
	RoleAttacker
)

// allRoles is the fixed reporting order for role distributions.
var allRoles = [...]Role{RoleTank, RoleSupport, RoleAttacker, RoleHybrid}

func (r Role) String() string {
	switch r {
	case RoleTank:
		return "tank"
	case RoleSupport:
		return "support"
	case RoleAttacker:
		return "attacker"
	}
	return "hybrid"
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

type AbilityTag int

const (
	TagOther AbilityTag = iota
	TagHeal
	TagBuff
	TagDebuff
)

func parseAbilityTag(s string) AbilityTag {
	switch s {
	case "heal":
		return TagHeal
	case "buff":
		return TagBuff
	case "debuff":
		return TagDebuff
	}
	return TagOther
}

func (t AbilityTag) isSupport() bool {
	return t == TagHeal || t == TagBuff || t == TagDebuff
}

// Ability is one tagged capability of a character.
type Ability struct {
	Name string
	Tag  AbilityTag
}

// CharacterRecord is an immutable catalog entry.
type CharacterRecord struct {
	ID        string
	Name      string
	Element   Element
	Abilities []Ability
}

// Build is the player's saved progression for one character.
type Build struct {
	Level      int
	Attributes map[string]int
}

// defaultBuild is used for characters the player has never saved a build for.
func defaultBuild() Build {
	return Build{Level: 1}
}

// DerivedStats are computed on demand from a record and a build; never cached.
type DerivedStats struct {
	Attack     float64 `json:"attack"`
	Defense    float64 `json:"defense"`
	Speed      float64 `json:"speed"`
	HP         float64 `json:"hp"`
	CritRate   float64 `json:"critRate"`
	CritDamage float64 `json:"critDamage"`
	Magic      float64 `json:"magic"`
}

// Team is an ordered list of distinct characters.
type Team []CharacterRecord

// IDs returns member ids in team order.
func (t Team) IDs() []string {
	ids := make([]string, len(t))
	for i, c := range t {
		ids[i] = c.ID
	}
	return ids
}

func (t Team) contains(id string) bool {
	for _, c := range t {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (t Team) hasElement(e Element) bool {
	for _, c := range t {
		if c.Element == e {
			return true
		}
	}
	return false
}

func cloneTeam(t Team) Team {
	if t == nil {
		return nil
	}
	c := make(Team, len(t))
	copy(c, t)
	return c
}

// dedupTeam drops repeated ids, keeping the first occurrence.
func dedupTeam(t Team) Team {
	seen := make(map[string]bool, len(t))
	out := make(Team, 0, len(t))
	for _, c := range t {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

// Synergy is a named element-pair bonus present in a team.
type Synergy struct {
	Name  string `json:"name"`
	Bonus string `json:"bonus"`
}

// TeamAnalysis is the human-facing report for a finalized team.
type TeamAnalysis struct {
	OverallScore      float64      `json:"overallScore"`
	Strengths         []string     `json:"strengths"`
	Weaknesses        []string     `json:"weaknesses"`
	RoleDistribution  map[Role]int `json:"roleDistribution"`
	ElementalCoverage []Element    `json:"elementalCoverage"`
	Synergies         []Synergy    `json:"synergies"`
}

// Recommendation is one strategy's team with its score and analysis.
type Recommendation struct {
	Algorithm string       `json:"algorithm"`
	Team      Team         `json:"-"`
	TeamIDs   []string     `json:"team"`
	Analysis  TeamAnalysis `json:"analysis"`
	Score     float64      `json:"score"`
}
