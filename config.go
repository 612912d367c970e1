package main

import (
	"fmt"
	"io"
	"os"
)

// Config holds search tuning parameters. Adjust these to trade speed for
// solution quality.
type Config struct {
	// TeamSize is the target number of members per team.
	TeamSize int
	// MaxResults caps the number of recommendations returned.
	MaxResults int
	// Population is the number of individuals per genetic generation.
	Population int
	// Generations is the number of genetic generations.
	Generations int
	// TournamentSize is how many individuals each tournament samples.
	TournamentSize int
	// MutationRate is the per-child probability of a member swap.
	MutationRate float64
	// Seed feeds the genetic algorithm's random source.
	Seed int64
	// RoleQuota is the target role mix for role-balanced selection.
	RoleQuota map[Role]int
}

// DefaultConfig returns the standard search parameters.
func DefaultConfig() Config {
	return Config{
		TeamSize:       4,
		MaxResults:     4,
		Population:     20,
		Generations:    10,
		TournamentSize: 3,
		MutationRate:   0.1,
		Seed:           1,
		RoleQuota: map[Role]int{
			RoleAttacker: 2,
			RoleSupport:  1,
			RoleTank:     1,
		},
	}
}

// Verbose controls whether detailed search progress is printed.
var Verbose bool

// logOut receives progress lines. Tests swap it for io.Discard.
var logOut io.Writer = os.Stderr

func logw() io.Writer { return logOut }

func logf(format string, args ...any) {
	fmt.Fprintf(logw(), format+"\n", args...)
}
