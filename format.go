package main

import (
	"fmt"
	"math"
	"strings"
)

// MemberDetail holds the per-character breakdown for formatted output.
type MemberDetail struct {
	ID        string
	Name      string
	Element   Element
	Role      Role
	Level     int
	Breakdown ScoreBreakdown
}

// memberDetails resolves each team member's role, level and score breakdown.
func memberDetails(team Team, s *Scorer, w Weights) []MemberDetail {
	out := make([]MemberDetail, len(team))
	for i, c := range team {
		ds := s.Stats(c)
		out[i] = MemberDetail{
			ID:        c.ID,
			Name:      c.Name,
			Element:   c.Element,
			Role:      ClassifyRole(ds),
			Level:     buildLevel(s.builds, c.ID),
			Breakdown: breakdown(c, ds, w),
		}
	}
	return out
}

// displayScore clamps a score to [0,100] for presentation only.
func displayScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func elementLabel(e Element) string {
	if e == ElemNone {
		return "neutral"
	}
	return e.String()
}

// FormatResult renders a human-readable report of all recommendations.
func FormatResult(res *Result, s *Scorer, w Weights) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile: %s  (pool %d characters)\n", res.Profile, res.PoolSize)
	if len(res.Recommendations) == 0 {
		b.WriteString("No optimal team found")
		switch res.Diagnostic {
		case DiagEmptyPool:
			b.WriteString(": no characters left after filtering")
		case DiagContradictory:
			b.WriteString(": constraints are contradictory")
		case DiagNoValidTeam:
			b.WriteString(": no strategy produced a team meeting the constraints")
		}
		b.WriteString("\n")
		if res.Detail != "" {
			fmt.Fprintf(&b, "  %s\n", res.Detail)
		}
		return b.String()
	}

	for i, r := range res.Recommendations {
		fmt.Fprintf(&b, "\n#%d %s  score %.1f\n", i+1, r.Algorithm, displayScore(r.Score))
		for _, m := range memberDetails(r.Team, s, w) {
			fmt.Fprintf(&b, "  %-16s Lv%-3d %-9s %-8s  dmg %6.1f  surv %6.1f  util %6.1f  syn %5.1f  vers %5.1f  => %.2f\n",
				m.Name, m.Level, elementLabel(m.Element), m.Role,
				m.Breakdown.Damage, m.Breakdown.Survival, m.Breakdown.Utility,
				m.Breakdown.Synergy, m.Breakdown.Versatility, m.Breakdown.Total)
		}
		a := r.Analysis
		var roles []string
		for _, role := range allRoles {
			if n := a.RoleDistribution[role]; n > 0 {
				roles = append(roles, fmt.Sprintf("%s×%d", role, n))
			}
		}
		fmt.Fprintf(&b, "  roles: %s\n", strings.Join(roles, ", "))
		if len(a.ElementalCoverage) > 0 {
			elems := make([]string, len(a.ElementalCoverage))
			for j, e := range a.ElementalCoverage {
				elems[j] = e.String()
			}
			fmt.Fprintf(&b, "  elements: %s\n", strings.Join(elems, ", "))
		}
		for _, st := range a.Strengths {
			fmt.Fprintf(&b, "  + %s\n", st)
		}
		for _, wk := range a.Weaknesses {
			fmt.Fprintf(&b, "  - %s\n", wk)
		}
		for _, sy := range a.Synergies {
			fmt.Fprintf(&b, "  * %s: %s\n", sy.Name, sy.Bonus)
		}
	}
	return b.String()
}

// FormatParty renders a saved party on one line.
func FormatParty(p Party) string {
	return fmt.Sprintf("%s  %-20s %-11s %-24s %6.1f  %s  [%s]",
		p.ID, p.Name, p.Profile, p.Algorithm, displayScore(p.Score),
		p.CreatedAt.Format("2006-01-02 15:04"), strings.Join(p.Members, ", "))
}
