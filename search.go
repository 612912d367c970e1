package main

import (
	"context"
	"math"
	"math/rand"
	"sort"
)

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer searches a character catalog for the best-scoring teams.
type Optimizer struct {
	catalog  Catalog
	builds   BuildStore
	scorer   *Scorer
	profiles ProfileTable
	cfg      Config
}

// NewOptimizer wires the optimizer to its collaborators. A nil profile table
// means the built-in profiles.
func NewOptimizer(catalog Catalog, builds BuildStore, stats StatsProvider, profiles ProfileTable, cfg Config) *Optimizer {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	if cfg.TeamSize < 1 {
		cfg.TeamSize = 1
	}
	if cfg.Population < 2 {
		cfg.Population = 2
	}
	if cfg.TournamentSize < 1 {
		cfg.TournamentSize = 1
	}
	return &Optimizer{
		catalog:  catalog,
		builds:   builds,
		scorer:   NewScorer(builds, stats),
		profiles: profiles,
		cfg:      cfg,
	}
}

// Scorer exposes the scoring model the optimizer ranks with.
func (o *Optimizer) Scorer() *Scorer { return o.scorer }

// ── Helpers ─────────────────────────────────────────────────────────

// seedRequired returns the required characters present in pool, capped at
// the team size.
func (o *Optimizer) seedRequired(pool []CharacterRecord, c Constraints) Team {
	team := c.requiredInPool(pool)
	if len(team) > o.cfg.TeamSize {
		team = team[:o.cfg.TeamSize]
	}
	return team
}

type scoredChar struct {
	char  CharacterRecord
	score float64
	role  Role
}

// rankPool scores every pool member individually and sorts descending.
// Equal scores keep pool order.
func (o *Optimizer) rankPool(pool []CharacterRecord, w Weights) []scoredChar {
	ranked := make([]scoredChar, len(pool))
	for i, ch := range pool {
		ds := o.scorer.Stats(ch)
		ranked[i] = scoredChar{
			char:  ch,
			score: breakdown(ch, ds, w).Total,
			role:  ClassifyRole(ds),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	return ranked
}

// ── Greedy ──────────────────────────────────────────────────────────

// GreedyTeam grows the team one member at a time, always adding the
// candidate that maximises the resulting team score. The first candidate in
// pool order wins ties.
func (o *Optimizer) GreedyTeam(ctx context.Context, pool []CharacterRecord, c Constraints, w Weights) (Team, error) {
	team := o.seedRequired(pool, c)
	for len(team) < o.cfg.TeamSize {
		bestIdx := -1
		bestScore := math.Inf(-1)
		trial := make(Team, len(team)+1)
		copy(trial, team)
		for i, ch := range pool {
			if team.contains(ch.ID) {
				continue
			}
			trial[len(team)] = ch
			if s := o.scorer.TeamScore(trial, w); s > bestScore {
				bestScore = s
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		team = append(team, pool[bestIdx])
		if Verbose {
			logf("[verbose/greedy] +%s -> %.2f", pool[bestIdx].ID, bestScore)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return team, nil
}

// ── Weighted scoring ────────────────────────────────────────────────

// WeightedTeam takes the required members, then the best individual scores.
func (o *Optimizer) WeightedTeam(ctx context.Context, pool []CharacterRecord, c Constraints, w Weights) (Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	team := o.seedRequired(pool, c)
	for _, sc := range o.rankPool(pool, w) {
		if len(team) >= o.cfg.TeamSize {
			break
		}
		if team.contains(sc.char.ID) {
			continue
		}
		team = append(team, sc.char)
	}
	return team, nil
}

// ── Role balanced ───────────────────────────────────────────────────

// quotaOrder is the order roles are filled in role-balanced selection.
var quotaOrder = [...]Role{RoleAttacker, RoleSupport, RoleTank, RoleHybrid}

// RoleBalancedTeam fills the configured role quota with the best-scoring
// character of each role. Slots a role cannot fill are backfilled with the
// best remaining characters so small pools still yield full teams.
func (o *Optimizer) RoleBalancedTeam(ctx context.Context, pool []CharacterRecord, c Constraints, w Weights) (Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ranked := o.rankPool(pool, w)
	roleOf := make(map[string]Role, len(ranked))
	for _, sc := range ranked {
		roleOf[sc.char.ID] = sc.role
	}

	quota := make(map[Role]int, len(o.cfg.RoleQuota))
	for r, n := range o.cfg.RoleQuota {
		quota[r] = n
	}
	team := o.seedRequired(pool, c)
	for _, ch := range team {
		if r := roleOf[ch.ID]; quota[r] > 0 {
			quota[r]--
		}
	}

	for _, role := range quotaOrder {
		for quota[role] > 0 && len(team) < o.cfg.TeamSize {
			picked := false
			for _, sc := range ranked {
				if sc.role != role || team.contains(sc.char.ID) {
					continue
				}
				team = append(team, sc.char)
				quota[role]--
				picked = true
				break
			}
			if !picked {
				break
			}
		}
	}

	// Backfill: slots the quota could not fill take the best remaining
	// characters of any role, so small or one-sided pools still give full teams.
	for _, sc := range ranked {
		if len(team) >= o.cfg.TeamSize {
			break
		}
		if !team.contains(sc.char.ID) {
			team = append(team, sc.char)
		}
	}
	return team, nil
}

// ── Genetic ─────────────────────────────────────────────────────────

// GeneticTeam evolves random teams with tournament selection, single-point
// crossover and swap mutation, and returns the fittest individual of the
// last generation. rng is the only source of randomness.
func (o *Optimizer) GeneticTeam(ctx context.Context, pool []CharacterRecord, c Constraints, w Weights, rng *rand.Rand) (Team, error) {
	if len(pool) == 0 {
		return nil, nil
	}
	required := o.seedRequired(pool, c)
	size := o.cfg.TeamSize

	pop := make([]Team, o.cfg.Population)
	for i := range pop {
		pop[i] = repairTeam(randomTeam(pool, size, rng), required, pool, size, rng)
	}

	for gen := 0; gen < o.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fitness := o.fitness(pop, w)
		next := make([]Team, 0, len(pop))
		for i := 0; i < len(pop)/2; i++ {
			p1 := tournamentSelect(pop, fitness, o.cfg.TournamentSize, rng)
			p2 := tournamentSelect(pop, fitness, o.cfg.TournamentSize, rng)
			c1, c2 := crossoverTeams(p1, p2, rng)
			for _, child := range []Team{c1, c2} {
				if rng.Float64() < o.cfg.MutationRate {
					child = mutateTeam(child, pool, rng)
				}
				next = append(next, repairTeam(child, required, pool, size, rng))
			}
		}
		pop = next
		if Verbose {
			best, score := fittest(pop, o.fitness(pop, w))
			logf("[verbose/genetic] gen %d best=%.2f %v", gen, score, best.IDs())
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	best, _ := fittest(pop, o.fitness(pop, w))
	return best, nil
}

func (o *Optimizer) fitness(pop []Team, w Weights) []float64 {
	f := make([]float64, len(pop))
	for i, t := range pop {
		f[i] = o.scorer.TeamScore(t, w)
	}
	return f
}

func fittest(pop []Team, fitness []float64) (Team, float64) {
	bestIdx := 0
	for i := 1; i < len(pop); i++ {
		if fitness[i] > fitness[bestIdx] {
			bestIdx = i
		}
	}
	return cloneTeam(pop[bestIdx]), fitness[bestIdx]
}

// randomTeam samples up to size distinct characters from pool.
func randomTeam(pool []CharacterRecord, size int, rng *rand.Rand) Team {
	n := min(size, len(pool))
	perm := rng.Perm(len(pool))
	t := make(Team, n)
	for i := 0; i < n; i++ {
		t[i] = pool[perm[i]]
	}
	return t
}

func tournamentSelect(pop []Team, fitness []float64, k int, rng *rand.Rand) Team {
	best := rng.Intn(len(pop))
	for i := 1; i < k; i++ {
		if j := rng.Intn(len(pop)); fitness[j] > fitness[best] {
			best = j
		}
	}
	return pop[best]
}

// crossoverTeams swaps the tails of two parents at a random cut point and
// drops repeated members from each child.
func crossoverTeams(a, b Team, rng *rand.Rand) (Team, Team) {
	n := min(len(a), len(b))
	if n == 0 {
		return cloneTeam(a), cloneTeam(b)
	}
	cut := rng.Intn(n + 1)
	c1 := make(Team, 0, len(b))
	c1 = append(c1, a[:cut]...)
	c1 = append(c1, b[cut:]...)
	c2 := make(Team, 0, len(a))
	c2 = append(c2, b[:cut]...)
	c2 = append(c2, a[cut:]...)
	return dedupTeam(c1), dedupTeam(c2)
}

// mutateTeam replaces one random member with a random non-member.
func mutateTeam(t Team, pool []CharacterRecord, rng *rand.Rand) Team {
	if len(t) == 0 {
		return t
	}
	var outside []CharacterRecord
	for _, ch := range pool {
		if !t.contains(ch.ID) {
			outside = append(outside, ch)
		}
	}
	if len(outside) == 0 {
		return t
	}
	m := cloneTeam(t)
	m[rng.Intn(len(m))] = outside[rng.Intn(len(outside))]
	return m
}

// repairTeam puts back required members that crossover or mutation dropped,
// replacing non-required members from the end when the team is full, then
// tops the team up with random non-members.
func repairTeam(t Team, required Team, pool []CharacterRecord, size int, rng *rand.Rand) Team {
	t = dedupTeam(t)
	for _, r := range required {
		if t.contains(r.ID) {
			continue
		}
		if len(t) < size {
			t = append(t, r)
			continue
		}
		for i := len(t) - 1; i >= 0; i-- {
			if !required.contains(t[i].ID) {
				t[i] = r
				break
			}
		}
	}
	want := min(size, len(pool))
	if len(t) >= want {
		return t
	}
	for _, i := range rng.Perm(len(pool)) {
		if len(t) >= want {
			break
		}
		if !t.contains(pool[i].ID) {
			t = append(t, pool[i])
		}
	}
	return t
}
