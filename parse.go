package main

import (
	"context"
	"fmt"
)

// Request is one optimization request as received from the CLI or the
// Lambda handler.
type Request struct {
	Profile   string   `json:"profile"`
	Required  []string `json:"required"`
	Forbidden []string `json:"forbidden"`
	Elements  []string `json:"elements"`
	MinLevel  *int     `json:"minLevel"`
	MaxLevel  *int     `json:"maxLevel"`
}

// Constraints converts the request into optimizer constraints.
func (r *Request) Constraints() (Constraints, error) {
	c := Constraints{
		Required:  r.Required,
		Forbidden: r.Forbidden,
		MinLevel:  r.MinLevel,
		MaxLevel:  r.MaxLevel,
	}
	for _, name := range r.Elements {
		e, ok := parseElement(name)
		if !ok || e == ElemNone {
			return Constraints{}, fmt.Errorf("unknown element %q", name)
		}
		c.Elements = append(c.Elements, e)
	}
	return c, nil
}

// runOptimize validates the request and runs the optimizer.
func runOptimize(ctx context.Context, opt *Optimizer, req Request) (*Result, Weights, error) {
	profile := CriteriaProfile(req.Profile)
	w, err := opt.profiles.Weights(profile)
	if err != nil {
		return nil, Weights{}, err
	}
	c, err := req.Constraints()
	if err != nil {
		return nil, Weights{}, err
	}
	res, err := opt.Recommend(ctx, profile, c)
	if err != nil {
		return nil, Weights{}, err
	}
	return res, w, nil
}

// saveBest stores the top recommendation of res in sink under name.
func saveBest(ctx context.Context, sink PartySink, res *Result, name string) (string, error) {
	best, ok := res.Best()
	if !ok {
		return "", fmt.Errorf("nothing to save: %s", res.Diagnostic)
	}
	return sink.SaveParty(ctx, PartyFromRecommendation(name, res.Profile, best))
}

// warnUnknownIDs logs constraint ids that are not in the catalog.
func warnUnknownIDs(gd *GameData, req Request) {
	for _, ids := range [][]string{req.Required, req.Forbidden} {
		for _, id := range ids {
			if _, ok := gd.Character(id); !ok {
				logf("[request] unknown character id %q", id)
			}
		}
	}
}
