//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type optimizeFlags struct {
	profile   string
	profiles  string
	required  []string
	forbidden []string
	elements  []string
	minLevel  int
	maxLevel  int
	seed      int64
	jsonOut   bool
	saveDB    string
	partyName string
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "party-optimizer",
		Short:         "Find the strongest party for a scenario from your character roster",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&Verbose, "verbose", false, "Print detailed search progress to stderr")
	root.AddCommand(newOptimizeCmd(), newProfilesCmd(), newPartiesCmd())
	return root
}

func newOptimizeCmd() *cobra.Command {
	var f optimizeFlags
	cmd := &cobra.Command{
		Use:   "optimize <data.json> [archive.json]",
		Short: "Rank candidate teams for a criteria profile",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive := ""
			if len(args) == 2 {
				archive = args[1]
			}
			req := Request{
				Profile:   f.profile,
				Required:  f.required,
				Forbidden: f.forbidden,
				Elements:  f.elements,
			}
			if cmd.Flags().Changed("min-level") {
				req.MinLevel = &f.minLevel
			}
			if cmd.Flags().Changed("max-level") {
				req.MaxLevel = &f.maxLevel
			}
			return runOptimizeCmd(cmd.Context(), cmd.OutOrStdout(), args[0], archive, req, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.profile, "profile", "p", string(ProfileBalanced), "Criteria profile")
	fl.StringVar(&f.profiles, "profiles", "", "YAML file overriding profile weights")
	fl.StringSliceVar(&f.required, "require", nil, "Character ids every team must include")
	fl.StringSliceVar(&f.forbidden, "forbid", nil, "Character ids to exclude")
	fl.StringSliceVar(&f.elements, "element", nil, "Elements every team must cover")
	fl.IntVar(&f.minLevel, "min-level", 1, "Minimum saved build level")
	fl.IntVar(&f.maxLevel, "max-level", 0, "Maximum saved build level")
	fl.Int64Var(&f.seed, "seed", DefaultConfig().Seed, "Genetic algorithm seed")
	fl.BoolVar(&f.jsonOut, "json", false, "Output results as JSON")
	fl.StringVar(&f.saveDB, "save", "", "Save the top team to this party database")
	fl.StringVar(&f.partyName, "name", "", "Name for the saved party")
	fl.DurationVar(&f.timeout, "timeout", 0, "Abort the search after this long")
	return cmd
}

func runOptimizeCmd(ctx context.Context, out io.Writer, dataPath, archivePath string, req Request, f optimizeFlags) error {
	gd, arch, err := LoadRawData(dataPath, archivePath)
	if err != nil {
		return err
	}
	profiles, err := LoadProfiles(f.profiles)
	if err != nil {
		return err
	}
	fmt.Fprintf(logw(), "Loaded %d characters\n", len(gd.chars))
	warnUnknownIDs(gd, req)

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cfg := DefaultConfig()
	cfg.Seed = f.seed
	opt := NewOptimizer(gd, arch, gd, profiles, cfg)
	res, w, err := runOptimize(ctx, opt, req)
	if err != nil {
		return err
	}

	if f.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, FormatResult(res, opt.Scorer(), w))
	}

	if f.saveDB == "" {
		return nil
	}
	store, err := OpenPartyStore(f.saveDB)
	if err != nil {
		return err
	}
	defer store.Close()
	name := f.partyName
	if name == "" {
		name = fmt.Sprintf("%s %s", res.Profile, time.Now().Format("2006-01-02"))
	}
	id, err := saveBest(ctx, store, res, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(logw(), "saved party %s\n", id)
	return nil
}

func newProfilesCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List criteria profiles and their weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := LoadProfiles(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %7s %7s %7s %7s %7s\n", "Profile", "Damage", "Surv", "Util", "Synergy", "Vers")
			for _, name := range t.Names() {
				w := t[name]
				fmt.Fprintf(out, "%-12s %7.2f %7.2f %7.2f %7.2f %7.2f\n",
					name, w.Damage, w.Survivability, w.Utility, w.Synergy, w.Versatility)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "profiles", "", "YAML file overriding profile weights")
	return cmd
}

func newPartiesCmd() *cobra.Command {
	var dbPath string
	withStore := func(fn func(ctx context.Context, s *PartyStore, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := OpenPartyStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			return fn(cmd.Context(), s, cmd.OutOrStdout(), args)
		}
	}
	cmd := &cobra.Command{
		Use:   "parties",
		Short: "Manage saved parties",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "parties.db", "Party database path")
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved parties",
			Args:  cobra.NoArgs,
			RunE: withStore(func(ctx context.Context, s *PartyStore, out io.Writer, _ []string) error {
				ps, err := s.ListParties(ctx)
				if err != nil {
					return err
				}
				for _, p := range ps {
					fmt.Fprintln(out, FormatParty(p))
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one saved party as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(ctx context.Context, s *PartyStore, out io.Writer, args []string) error {
				p, err := s.GetParty(ctx, args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}),
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a saved party",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(ctx context.Context, s *PartyStore, _ io.Writer, args []string) error {
				return s.DeleteParty(ctx, args[0])
			}),
		},
	)
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
