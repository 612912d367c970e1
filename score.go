package main

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	roleBonusMax    = 20.0
	elementBonusMax = 15.0
	roleKinds       = 4
	elementBonusDiv = 4

	synergyBase       = 50.0
	synergyElemental  = 15.0
	synergyPerSupport = 5.0
	synergyCap        = 100.0

	versatilityFloor = 20.0
)

// Scorer evaluates characters and teams against a weight vector. Stats are
// resolved on every call; nothing is cached between calls.
type Scorer struct {
	builds BuildStore
	stats  StatsProvider
}

// NewScorer creates a scorer over the given collaborators.
func NewScorer(builds BuildStore, stats StatsProvider) *Scorer {
	return &Scorer{builds: builds, stats: stats}
}

// ScoreBreakdown holds the per-category values behind a character score.
type ScoreBreakdown struct {
	Damage      float64 `json:"damage"`
	Survival    float64 `json:"survival"`
	Utility     float64 `json:"utility"`
	Synergy     float64 `json:"synergy"`
	Versatility float64 `json:"versatility"`
	Total       float64 `json:"total"`
}

// Stats returns derived stats for the character's saved build. Missing stats
// come back as all zero.
func (s *Scorer) Stats(c CharacterRecord) DerivedStats {
	if s.stats == nil {
		return DerivedStats{}
	}
	b := loadBuildOrDefault(s.builds, c.ID)
	ds, ok := s.stats.CalculateStats(c.ID, b.Level, b.Attributes)
	if !ok {
		if Verbose {
			logf("[verbose/score] no stats for %s at level %d, scoring as zero", c.ID, b.Level)
		}
		return DerivedStats{}
	}
	return sanitizeStats(ds)
}

// sanitizeStats clamps negative and non-finite values to zero.
func sanitizeStats(ds DerivedStats) DerivedStats {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0
		}
		return v
	}
	return DerivedStats{
		Attack:     fix(ds.Attack),
		Defense:    fix(ds.Defense),
		Speed:      fix(ds.Speed),
		HP:         fix(ds.HP),
		CritRate:   fix(ds.CritRate),
		CritDamage: fix(ds.CritDamage),
		Magic:      fix(ds.Magic),
	}
}

// Breakdown computes every category score and the weighted total.
func (s *Scorer) Breakdown(c CharacterRecord, w Weights) ScoreBreakdown {
	return breakdown(c, s.Stats(c), w)
}

func breakdown(c CharacterRecord, ds DerivedStats, w Weights) ScoreBreakdown {
	b := ScoreBreakdown{
		Damage:      (ds.Attack + ds.CritRate + ds.CritDamage) / 3,
		Survival:    (ds.HP + ds.Defense) / 2,
		Utility:     ds.Speed + ds.Magic,
		Synergy:     synergyPotential(c),
		Versatility: versatility(ds),
	}
	b.Total = (b.Damage*w.Damage +
		b.Survival*w.Survivability +
		b.Utility*w.Utility +
		b.Synergy*w.Synergy +
		b.Versatility*w.Versatility) / 5
	return b
}

// CharacterScore is the weighted score of a single character.
func (s *Scorer) CharacterScore(c CharacterRecord, w Weights) float64 {
	return s.Breakdown(c, w).Total
}

func synergyPotential(c CharacterRecord) float64 {
	v := synergyBase
	if c.Element != ElemNone && c.Element != ElemPhysical {
		v += synergyElemental
	}
	for _, a := range c.Abilities {
		if a.Tag.isSupport() {
			v += synergyPerSupport
		}
	}
	return math.Min(v, synergyCap)
}

// versatility rewards an even spread across attack, defense, speed and magic.
func versatility(ds DerivedStats) float64 {
	xs := []float64{ds.Attack, ds.Defense, ds.Speed, ds.Magic}
	v := stat.PopVariance(xs, nil)
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	return math.Max(versatilityFloor, 100-math.Sqrt(v))
}

// TeamScore is the mean of member scores plus role and element diversity
// bonuses. An empty team scores zero.
func (s *Scorer) TeamScore(team Team, w Weights) float64 {
	if len(team) == 0 {
		return 0
	}
	total := 0.0
	roles := make(map[Role]bool, roleKinds)
	elems := make(map[Element]bool, len(team))
	for _, c := range team {
		ds := s.Stats(c)
		total += breakdown(c, ds, w).Total
		roles[ClassifyRole(ds)] = true
		if c.Element != ElemNone {
			elems[c.Element] = true
		}
	}
	total += float64(len(roles)) / roleKinds * roleBonusMax
	total += float64(len(elems)) / elementBonusDiv * elementBonusMax
	return total / float64(len(team))
}
