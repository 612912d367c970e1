package main

import "fmt"

type elementPair struct {
	a, b  Element
	name  string
	bonus string
}

var synergyTable = []elementPair{
	{ElemFire, ElemLightning, "Overload", "Fire and lightning trigger explosive area damage"},
	{ElemWater, ElemIce, "Freeze", "Water and ice immobilise enemies"},
	{ElemLight, ElemDark, "Eclipse", "Light and dark amplify each other's burst damage"},
	{ElemWater, ElemLightning, "Electro-Charged", "Water conducts lightning for damage over time"},
	{ElemFire, ElemIce, "Melt", "Fire and ice multiply elemental reaction damage"},
	{ElemEarth, ElemVoid, "Gravity Well", "Earth and void pull enemies together"},
}

// AnalyzeTeam builds the strengths, weaknesses and synergy report for a team.
func AnalyzeTeam(team Team, profile CriteriaProfile, s *Scorer, w Weights) TeamAnalysis {
	a := TeamAnalysis{
		OverallScore:     s.TeamScore(team, w),
		Strengths:        []string{},
		Weaknesses:       []string{},
		RoleDistribution: make(map[Role]int, len(allRoles)),
		Synergies:        []Synergy{},
	}

	var totalSpeed float64
	for _, c := range team {
		ds := s.Stats(c)
		a.RoleDistribution[ClassifyRole(ds)]++
		totalSpeed += ds.Speed
		if c.Element != ElemNone && !containsElement(a.ElementalCoverage, c.Element) {
			a.ElementalCoverage = append(a.ElementalCoverage, c.Element)
		}
	}
	if a.ElementalCoverage == nil {
		a.ElementalCoverage = []Element{}
	}

	distinctRoles := len(a.RoleDistribution)
	switch {
	case distinctRoles >= 3:
		a.Strengths = append(a.Strengths, "Good role diversity")
	case distinctRoles <= 1:
		a.Weaknesses = append(a.Weaknesses, "Limited role diversity")
	}
	switch n := len(a.ElementalCoverage); {
	case n >= 3:
		a.Strengths = append(a.Strengths, "Excellent elemental coverage")
	case n <= 1:
		a.Weaknesses = append(a.Weaknesses, "Limited elemental options")
	}

	attackers := a.RoleDistribution[RoleAttacker]
	supports := a.RoleDistribution[RoleSupport]
	tanks := a.RoleDistribution[RoleTank]

	switch profile {
	case ProfileBossFight:
		if attackers >= 2 {
			a.Strengths = append(a.Strengths, "High damage potential")
		}
		if supports == 0 {
			a.Weaknesses = append(a.Weaknesses, "Lacks healing support")
		}
	case ProfileSurvival:
		if tanks >= 1 && supports >= 1 {
			a.Strengths = append(a.Strengths, "Durable frontline with sustain")
		}
		if tanks == 0 {
			a.Weaknesses = append(a.Weaknesses, "No dedicated tank")
		}
	case ProfileSpeedRun:
		if len(team) > 0 && totalSpeed/float64(len(team)) >= 100 {
			a.Strengths = append(a.Strengths, "Fast turn order")
		}
		if attackers == 0 {
			a.Weaknesses = append(a.Weaknesses, "Low burst damage")
		}
	case ProfileElemental:
		if len(a.ElementalCoverage) >= 2 && hasAnySynergy(a.ElementalCoverage) {
			a.Strengths = append(a.Strengths, "Strong elemental reactions")
		}
	case ProfileExploration:
		if supports >= 1 {
			a.Strengths = append(a.Strengths, "Self-sufficient for long outings")
		}
	}

	for _, p := range synergyTable {
		if containsElement(a.ElementalCoverage, p.a) && containsElement(a.ElementalCoverage, p.b) {
			a.Synergies = append(a.Synergies, Synergy{Name: p.name, Bonus: p.bonus})
		}
	}
	if n := len(a.Synergies); n > 0 {
		a.Strengths = append(a.Strengths, fmt.Sprintf("%d elemental synerg%s", n, pluralY(n)))
	}
	return a
}

func containsElement(es []Element, e Element) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}

func hasAnySynergy(es []Element) bool {
	for _, p := range synergyTable {
		if containsElement(es, p.a) && containsElement(es, p.b) {
			return true
		}
	}
	return false
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
