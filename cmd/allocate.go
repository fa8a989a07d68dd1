package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mati2251/ddhondt/apportion"
)

const (
	demoSeed    = 42
	demoSeats   = 30
	demoParties = 5
)

type allocateOptions struct {
	method       string
	seats        int
	threshold    float64
	firstDivisor float64
	tieBreak     string
	selector     string
	votes        []string
	profile      string
	output       string
	quotients    bool
	demo         bool
}

func newAllocateCmd() *cobra.Command {
	opts := &allocateOptions{}
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate seats for one set of votes",
		Example: `  ddhondt allocate --seats 3 --votes A=100,B=50
  ddhondt allocate --method sainte-lague --first-divisor 1.4 --profile votes.yaml
  ddhondt allocate --demo --quotients`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, cfg, err := opts.build(cmd.Flags().Changed)
			if err != nil {
				return err
			}

			res, err := apportion.Allocate(in, cfg)
			switch {
			case errors.Is(err, apportion.ErrNoEligibleParties):
				runLog.WithField("threshold", cfg.ThresholdPct).Warnf("no seats allocated: %v", err)
			case err != nil:
				return err
			}
			runLog.WithFields(logrus.Fields{
				"method":  cfg.Method,
				"seats":   cfg.Seats,
				"parties": in.Len(),
			}).Info("allocation computed")

			report := newAllocationReport(in, cfg, res, opts.quotients)
			return writeFormatted(cmd.OutOrStdout(), opts.output, report, report.writeTable)
		},
	}

	cmd.Flags().StringVar(&opts.method, "method", "dhondt", "Apportionment method (dhondt, sainte-lague, modified-sainte-lague)")
	cmd.Flags().IntVar(&opts.seats, "seats", 0, "Total number of seats")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "Electoral threshold in percent of valid votes")
	cmd.Flags().Float64Var(&opts.firstDivisor, "first-divisor", 0, "First divisor of the Sainte-Laguë sequence (0 = method default)")
	cmd.Flags().StringVar(&opts.tieBreak, "tie-break", "full-name", "Name tie-break (full-name, first-rune)")
	cmd.Flags().StringVar(&opts.selector, "selector", "flat", "Quotient selection (flat, incremental)")
	cmd.Flags().StringSliceVar(&opts.votes, "votes", nil, "Party votes as NAME=VOTES, comma separated or repeated")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "YAML allocation profile")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&opts.quotients, "quotients", false, "List the winning quotient of every seat")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "Use five generated parties and 30 seats")
	cmd.MarkFlagsMutuallyExclusive("demo", "profile")
	return cmd
}

// build merges demo data or a profile with flags. Flags win when set
// explicitly; profile values win over flag defaults.
func (o *allocateOptions) build(changed func(string) bool) (*apportion.Input, apportion.Config, error) {
	var p Profile
	switch {
	case o.demo:
		p = demoProfile()
	case o.profile != "":
		var err error
		if p, err = loadProfile(o.profile); err != nil {
			return nil, apportion.Config{}, err
		}
	}

	if changed("method") || p.Method == "" {
		p.Method = o.method
	}
	if changed("seats") || p.Seats == 0 {
		p.Seats = o.seats
	}
	if changed("threshold") {
		p.Threshold = o.threshold
	}
	if changed("first-divisor") {
		p.FirstDivisor = o.firstDivisor
	}
	if changed("tie-break") || p.TieBreak == "" {
		p.TieBreak = o.tieBreak
	}
	if changed("selector") || p.Selector == "" {
		p.Selector = o.selector
	}

	cfg, err := p.config()
	if err != nil {
		return nil, apportion.Config{}, err
	}

	in := apportion.NewInput()
	for _, party := range p.Parties {
		in.Set(party.Name, party.Votes)
	}
	for _, pair := range o.votes {
		name, votes, err := parseVotePair(pair)
		if err != nil {
			return nil, apportion.Config{}, err
		}
		in.Set(name, votes)
	}
	return in, cfg, nil
}

func (p Profile) config() (apportion.Config, error) {
	method, err := apportion.ParseMethod(p.Method)
	if err != nil {
		return apportion.Config{}, err
	}
	tieBreak, err := apportion.ParseTieBreak(p.TieBreak)
	if err != nil {
		return apportion.Config{}, err
	}
	selector, err := apportion.ParseSelector(p.Selector)
	if err != nil {
		return apportion.Config{}, err
	}
	return apportion.Config{
		Seats:        p.Seats,
		ThresholdPct: p.Threshold,
		Method:       method,
		FirstDivisor: p.FirstDivisor,
		TieBreak:     tieBreak,
		Selector:     selector,
	}, nil
}

// parseVotePair parses NAME=VOTES. The last '=' separates the name.
func parseVotePair(s string) (string, int, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return "", 0, fmt.Errorf("invalid votes %q: expected NAME=VOTES", s)
	}
	name := strings.TrimSpace(s[:i])
	if name == "" {
		return "", 0, fmt.Errorf("invalid votes %q: empty party name", s)
	}
	votes, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return "", 0, fmt.Errorf("invalid votes %q: %w", s, err)
	}
	return name, votes, nil
}

// demoProfile reproduces the calculator's starting data: five parties with
// seeded random votes between 500 and 10000.
func demoProfile() Profile {
	rng := rand.New(rand.NewSource(demoSeed))
	p := Profile{Seats: demoSeats}
	for i := 0; i < demoParties; i++ {
		p.Parties = append(p.Parties, apportion.Party{
			Name:  fmt.Sprintf("Partia %c", 'A'+i),
			Votes: 500 + rng.Intn(9501),
		})
	}
	return p
}
