package main

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Algorithm names as reported in recommendations.
const (
	AlgoGreedy       = "Greedy Optimization"
	AlgoGenetic      = "Genetic Algorithm"
	AlgoWeighted     = "Weighted Scoring"
	AlgoRoleBalanced = "Role-Balanced Selection"
)

type Diagnostic string

const (
	DiagOK            Diagnostic = "ok"
	DiagEmptyPool     Diagnostic = "empty_pool"
	DiagContradictory Diagnostic = "contradictory_constraints"
	DiagNoValidTeam   Diagnostic = "no_valid_team"
)

// Result is the outcome of one optimization request. An empty
// Recommendations list is a normal outcome; Diagnostic says why.
type Result struct {
	Profile         CriteriaProfile  `json:"profile"`
	PoolSize        int              `json:"poolSize"`
	Recommendations []Recommendation `json:"recommendations"`
	Diagnostic      Diagnostic       `json:"diagnostic"`
	Detail          string           `json:"detail,omitempty"`
	Elapsed         time.Duration    `json:"-"`
	TimeMs          int64            `json:"timeMs"`
}

// Best returns the top recommendation, if any.
func (r *Result) Best() (Recommendation, bool) {
	if len(r.Recommendations) == 0 {
		return Recommendation{}, false
	}
	return r.Recommendations[0], true
}

type strategyFunc func(ctx context.Context, pool []CharacterRecord, c Constraints, w Weights) (Team, error)

type strategy struct {
	name string
	run  strategyFunc
}

func (o *Optimizer) strategies() []strategy {
	return []strategy{
		{AlgoGreedy, o.GreedyTeam},
		{AlgoGenetic, func(ctx context.Context, pool []CharacterRecord, c Constraints, w Weights) (Team, error) {
			return o.GeneticTeam(ctx, pool, c, w, rand.New(rand.NewSource(o.cfg.Seed)))
		}},
		{AlgoWeighted, o.WeightedTeam},
		{AlgoRoleBalanced, o.RoleBalancedTeam},
	}
}

// Recommend runs every strategy over the filtered pool, drops invalid teams,
// and returns the best MaxResults recommendations by team score. The only
// error is cancellation of ctx.
func (o *Optimizer) Recommend(ctx context.Context, profile CriteriaProfile, c Constraints) (*Result, error) {
	start := time.Now()
	if profile == "" {
		profile = ProfileBalanced
	}
	w, err := o.profiles.Weights(profile)
	if err != nil {
		logf("[init] %v, falling back to %s", err, ProfileBalanced)
		profile = ProfileBalanced
		w = balancedWeights
	}

	var all []CharacterRecord
	if o.catalog != nil {
		all = o.catalog.AllCharacters()
	}
	pool := FilterPool(all, o.builds, c)
	res := &Result{Profile: profile, PoolSize: len(pool), Diagnostic: DiagOK}
	logf("[init] profile=%s catalog=%d pool=%d", profile, len(all), len(pool))

	if cerr := c.Check(all, o.builds, o.cfg.TeamSize); cerr != nil {
		res.Diagnostic = DiagContradictory
		res.Detail = cerr.Error()
		logf("[constraints] %v", cerr)
	}
	if len(pool) == 0 {
		if res.Diagnostic == DiagOK {
			res.Diagnostic = DiagEmptyPool
		}
		return o.finish(res, start), nil
	}

	strats := o.strategies()
	teams := make([]Team, len(strats))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range strats {
		i, s := i, s
		g.Go(func() error {
			t, err := s.run(gctx, pool, c, w)
			if err != nil {
				return err
			}
			teams[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, s := range strats {
		t := teams[i]
		if !c.IsValidTeam(t) {
			logf("[%s] discarded invalid team %v", s.name, t.IDs())
			continue
		}
		score := o.scorer.TeamScore(t, w)
		analysis := AnalyzeTeam(t, profile, o.scorer, w)
		res.Recommendations = append(res.Recommendations, Recommendation{
			Algorithm: s.name,
			Team:      t,
			TeamIDs:   t.IDs(),
			Analysis:  analysis,
			Score:     score,
		})
		logf("[%s] score=%.2f team=%v", s.name, score, t.IDs())
	}

	sort.SliceStable(res.Recommendations, func(i, j int) bool {
		return res.Recommendations[i].Score > res.Recommendations[j].Score
	})
	if n := o.cfg.MaxResults; n > 0 && len(res.Recommendations) > n {
		res.Recommendations = res.Recommendations[:n]
	}
	if len(res.Recommendations) == 0 && res.Diagnostic == DiagOK {
		res.Diagnostic = DiagNoValidTeam
	}
	return o.finish(res, start), nil
}

func (o *Optimizer) finish(res *Result, start time.Time) *Result {
	if res.Recommendations == nil {
		res.Recommendations = []Recommendation{}
	}
	res.Elapsed = time.Since(start)
	res.TimeMs = res.Elapsed.Milliseconds()
	logf("[done] recommendations=%d diagnostic=%s elapsed=%v", len(res.Recommendations), res.Diagnostic, res.Elapsed)
	return res
}

// IsCancelled reports whether err came from a cancelled or expired context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
