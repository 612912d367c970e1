package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned when a criteria profile name is not recognised.
var ErrUnknownProfile = errors.New("unknown criteria profile")

type CriteriaProfile string

const (
	ProfileBalanced    CriteriaProfile = "balanced"
	ProfileBossFight   CriteriaProfile = "boss_fight"
	ProfileExploration CriteriaProfile = "exploration"
	ProfileSpeedRun    CriteriaProfile = "speed_run"
	ProfileSurvival    CriteriaProfile = "survival"
	ProfileElemental   CriteriaProfile = "elemental"
)

// Weights is the relative importance of each score category.
type Weights struct {
	Damage        float64 `yaml:"damage" json:"damage"`
	Survivability float64 `yaml:"survivability" json:"survivability"`
	Utility       float64 `yaml:"utility" json:"utility"`
	Synergy       float64 `yaml:"synergy" json:"synergy"`
	Versatility   float64 `yaml:"versatility" json:"versatility"`
}

var balancedWeights = Weights{
	Damage:        0.30,
	Survivability: 0.25,
	Utility:       0.20,
	Synergy:       0.15,
	Versatility:   0.10,
}

// Every row is spelled out in full. Weights a profile does not tune carry the
// balanced value.
var defaultProfiles = map[CriteriaProfile]Weights{
	ProfileBalanced:    balancedWeights,
	ProfileExploration: balancedWeights,
	ProfileBossFight:   {Damage: 0.50, Survivability: 0.30, Utility: 0.10, Synergy: 0.10, Versatility: 0.10},
	ProfileSurvival:    {Damage: 0.15, Survivability: 0.50, Utility: 0.25, Synergy: 0.10, Versatility: 0.10},
	ProfileSpeedRun:    {Damage: 0.60, Survivability: 0.25, Utility: 0.05, Synergy: 0.10, Versatility: 0.25},
	ProfileElemental:   {Damage: 0.20, Survivability: 0.25, Utility: 0.10, Synergy: 0.40, Versatility: 0.30},
}

// ProfileTable maps profile names to weights.
type ProfileTable map[CriteriaProfile]Weights

// DefaultProfiles returns a fresh copy of the built-in profile table.
func DefaultProfiles() ProfileTable {
	t := make(ProfileTable, len(defaultProfiles))
	for k, v := range defaultProfiles {
		t[k] = v
	}
	return t
}

// Weights resolves a profile. The empty name means balanced.
func (t ProfileTable) Weights(p CriteriaProfile) (Weights, error) {
	if p == "" {
		p = ProfileBalanced
	}
	w, ok := t[p]
	if !ok {
		return Weights{}, fmt.Errorf("%w: %q", ErrUnknownProfile, string(p))
	}
	return w, nil
}

// Names lists profile names in sorted order.
func (t ProfileTable) Names() []CriteriaProfile {
	names := make([]CriteriaProfile, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// profileOverride uses pointers so a YAML row can set a subset of weights.
type profileOverride struct {
	Damage        *float64 `yaml:"damage"`
	Survivability *float64 `yaml:"survivability"`
	Utility       *float64 `yaml:"utility"`
	Synergy       *float64 `yaml:"synergy"`
	Versatility   *float64 `yaml:"versatility"`
}

// ParseProfileOverrides applies YAML overrides on top of base. Unknown profile
// names add new profiles; their unset weights come from balanced.
func ParseProfileOverrides(base ProfileTable, data []byte) (ProfileTable, error) {
	var raw map[string]profileOverride
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	out := make(ProfileTable, len(base)+len(raw))
	for k, v := range base {
		out[k] = v
	}
	for name, ov := range raw {
		p := CriteriaProfile(name)
		w, ok := out[p]
		if !ok {
			w = balancedWeights
		}
		set := func(dst *float64, v *float64, field string) error {
			if v == nil {
				return nil
			}
			if math.IsNaN(*v) || math.IsInf(*v, 0) {
				return fmt.Errorf("profile %q: non-finite %s weight %v", name, field, *v)
			}
			if *v < 0 {
				return fmt.Errorf("profile %q: negative %s weight %v", name, field, *v)
			}
			*dst = *v
			return nil
		}
		for _, f := range []struct {
			dst   *float64
			v     *float64
			field string
		}{
			{&w.Damage, ov.Damage, "damage"},
			{&w.Survivability, ov.Survivability, "survivability"},
			{&w.Utility, ov.Utility, "utility"},
			{&w.Synergy, ov.Synergy, "synergy"},
			{&w.Versatility, ov.Versatility, "versatility"},
		} {
			if err := set(f.dst, f.v, f.field); err != nil {
				return nil, err
			}
		}
		out[p] = w
	}
	return out, nil
}

// LoadProfiles reads a YAML override file on top of the built-in table.
func LoadProfiles(path string) (ProfileTable, error) {
	if path == "" {
		return DefaultProfiles(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return ParseProfileOverrides(DefaultProfiles(), data)
}
