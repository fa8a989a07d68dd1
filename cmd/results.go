package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mati2251/ddhondt/apportion"
)

const voteThreshold = 5

type resultsOptions struct {
	method            string
	threshold         float64
	nationalThreshold float64
	firstDivisor      float64
	tieBreak          string
	district          string
	output            string
	quotients         bool
	cassandra         cassandraConfig
}

func newResultsCmd() *cobra.Command {
	opts := &resultsOptions{}
	cmd := &cobra.Command{
		Use:   "results <election file>",
		Short: "Allocate district mandates from the votes stored in Cassandra",
		Long: `Reads the votes of every district of the election, drops parties below the
national threshold and allocates each district's mandates independently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			election, err := loadElection(args[0])
			if err != nil {
				return err
			}

			selected := election.Districts
			if opts.district != "" {
				d, _, ok := parseArgToItem(opts.district, election.Districts)
				if !ok {
					return fmt.Errorf("invalid district: %s", opts.district)
				}
				selected = []District{d}
			}

			cfg, err := Profile{Method: opts.method, FirstDivisor: opts.firstDivisor, Threshold: opts.threshold, TieBreak: opts.tieBreak}.config()
			if err != nil {
				return err
			}

			ccfg, err := opts.cassandra.resolve()
			if err != nil {
				return err
			}
			source, err := newVoteSource(ccfg)
			if err != nil {
				return err
			}
			defer source.Close()

			report, err := computeResults(cmd.Context(), election, selected, source, cfg, opts.nationalThreshold, opts.quotients)
			if err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), opts.output, report, report.writeTable)
		},
	}

	cmd.Flags().StringVar(&opts.method, "method", "dhondt", "Apportionment method (dhondt, sainte-lague, modified-sainte-lague)")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "District threshold in percent of the district's remaining votes")
	cmd.Flags().Float64Var(&opts.nationalThreshold, "national-threshold", voteThreshold, "National threshold in percent of all valid votes")
	cmd.Flags().Float64Var(&opts.firstDivisor, "first-divisor", 0, "First divisor of the Sainte-Laguë sequence (0 = method default)")
	cmd.Flags().StringVar(&opts.tieBreak, "tie-break", "full-name", "Name tie-break (full-name, first-rune)")
	cmd.Flags().StringVar(&opts.district, "district", "", "Only report this district (id or name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&opts.quotients, "quotients", false, "List the winning quotient of every seat")

	cmd.Flags().StringSliceVar(&opts.cassandra.Hosts, "hosts", nil, "Cassandra contact points (env CASSANDRA_HOSTS)")
	cmd.Flags().StringVar(&opts.cassandra.Keyspace, "keyspace", "", "Cassandra keyspace (env CASSANDRA_KEYSPACE)")
	cmd.Flags().StringVar(&opts.cassandra.Consistency, "consistency", "", "Read consistency (env CASSANDRA_CONSISTENCY)")
	cmd.Flags().DurationVar(&opts.cassandra.Timeout, "timeout", 0, "Cassandra request timeout (env CASSANDRA_TIMEOUT)")
	return cmd
}

type partyTotal struct {
	Name           string  `json:"name" yaml:"name"`
	Votes          int     `json:"votes" yaml:"votes"`
	SharePct       float64 `json:"share_pct" yaml:"share_pct"`
	PassedNational bool    `json:"passed_national" yaml:"passed_national"`
	Seats          int     `json:"seats" yaml:"seats"`
}

type districtResult struct {
	DistrictID int              `json:"district_id" yaml:"district_id"`
	Name       string           `json:"name" yaml:"name"`
	Mandates   int              `json:"mandates" yaml:"mandates"`
	Allocation allocationReport `json:"allocation" yaml:"allocation"`
}

type electionReport struct {
	ElectionID           string           `json:"election_id" yaml:"election_id"`
	Method               string           `json:"method" yaml:"method"`
	NationalThresholdPct float64          `json:"national_threshold_pct" yaml:"national_threshold_pct"`
	TotalVotes           int              `json:"total_votes" yaml:"total_votes"`
	Parties              []partyTotal     `json:"parties" yaml:"parties"`
	Districts            []districtResult `json:"districts" yaml:"districts"`
}

// computeResults reads every district (the national threshold needs all of
// them) and allocates the selected ones.
func computeResults(ctx context.Context, e Election, selected []District, source VoteSource, cfg apportion.Config, nationalThreshold float64, withQuotients bool) (electionReport, error) {
	tallies := make(map[int]map[int]int, len(e.Districts))
	national := apportion.NewInput()
	for _, d := range e.Districts {
		votes, err := source.DistrictVotes(ctx, d.DistrictID)
		if err != nil {
			return electionReport{}, fmt.Errorf("failed to read district %s: %w", d.Name, err)
		}
		tallies[d.DistrictID] = votes

		for _, p := range d.Parties {
			sofar, _ := national.Votes(p.PartyName)
			national.Set(p.PartyName, sofar+votes[p.PartyID])
		}
	}

	passed, total := apportion.Filter(national.Parties(), nationalThreshold)
	passedSet := make(map[string]bool, len(passed))
	for _, p := range passed {
		passedSet[p.Name] = true
	}

	report := electionReport{
		ElectionID:           e.ElectionID,
		Method:               cfg.Method.String(),
		NationalThresholdPct: nationalThreshold,
		TotalVotes:           total,
	}
	index := make(map[string]int, national.Len())
	for _, p := range national.Parties() {
		row := partyTotal{Name: p.Name, Votes: p.Votes, PassedNational: passedSet[p.Name]}
		if total > 0 && p.Votes > 0 {
			row.SharePct = float64(p.Votes) / float64(total) * 100
		}
		if !row.PassedNational {
			runLog.WithFields(logrus.Fields{
				"party": p.Name,
				"votes": p.Votes,
			}).Info("party did not pass the national threshold")
		}
		index[p.Name] = len(report.Parties)
		report.Parties = append(report.Parties, row)
	}

	for _, d := range selected {
		in := apportion.NewInput()
		for _, p := range d.Parties {
			if passedSet[p.PartyName] {
				in.Set(p.PartyName, tallies[d.DistrictID][p.PartyID])
			}
		}

		dcfg := cfg
		dcfg.Seats = d.Mandates
		res, err := apportion.Allocate(in, dcfg)
		if err != nil && !errors.Is(err, apportion.ErrNoEligibleParties) {
			return electionReport{}, fmt.Errorf("district %s: %w", d.Name, err)
		}
		if err != nil {
			runLog.WithField("district", d.Name).Warnf("no mandates allocated: %v", err)
		}

		for name, seats := range res.Seats {
			report.Parties[index[name]].Seats += seats
		}
		report.Districts = append(report.Districts, districtResult{
			DistrictID: d.DistrictID,
			Name:       d.Name,
			Mandates:   d.Mandates,
			Allocation: newAllocationReport(in, dcfg, res, withQuotients),
		})
	}
	return report, nil
}

func (r electionReport) writeTable(w io.Writer) error {
	fmt.Fprintf(w, "Election %s, %s, national threshold %g%%\n", r.ElectionID, methodLabel(r.Method), r.NationalThresholdPct)
	fmt.Fprintf(w, "Total votes: %s\n\n", humanize.Comma(int64(r.TotalVotes)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTY\tVOTES\tSHARE\tSEATS\t")
	for _, p := range r.Parties {
		seats := fmt.Sprint(p.Seats)
		if !p.PassedNational {
			seats = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f%%\t%s\t\n", p.Name, humanize.Comma(int64(p.Votes)), p.SharePct, seats)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, d := range r.Districts {
		fmt.Fprintf(w, "\nDistrict %d (%s), %d mandates\n", d.DistrictID, d.Name, d.Mandates)
		if err := d.Allocation.writeTable(w); err != nil {
			return err
		}
	}
	return nil
}
