package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/mati2251/ddhondt/apportion"
)

const barWidth = 30

type partyRow struct {
	Name     string  `json:"name" yaml:"name"`
	Votes    int     `json:"votes" yaml:"votes"`
	SharePct float64 `json:"share_pct" yaml:"share_pct"`
	Eligible bool    `json:"eligible" yaml:"eligible"`
	Seats    int     `json:"seats" yaml:"seats"`
}

type allocationReport struct {
	Method       string               `json:"method" yaml:"method"`
	Seats        int                  `json:"seats" yaml:"seats"`
	ThresholdPct float64              `json:"threshold_pct" yaml:"threshold_pct"`
	FirstDivisor float64              `json:"first_divisor,omitempty" yaml:"first_divisor,omitempty"`
	TotalVotes   int                  `json:"total_votes" yaml:"total_votes"`
	Parties      []partyRow           `json:"parties" yaml:"parties"`
	Quotients    []apportion.Quotient `json:"quotients,omitempty" yaml:"quotients,omitempty"`
}

// newAllocationReport lists every input party, eligible or not, in input order.
func newAllocationReport(in *apportion.Input, cfg apportion.Config, res apportion.Result, withQuotients bool) allocationReport {
	r := allocationReport{
		Method:       cfg.Method.String(),
		Seats:        cfg.Seats,
		ThresholdPct: cfg.ThresholdPct,
		TotalVotes:   res.TotalVotes,
	}
	if cfg.Method != apportion.LargestDivisor {
		r.FirstDivisor = cfg.Method.FirstDivisor(cfg.FirstDivisor)
	}
	for _, p := range in.Parties() {
		seats, eligible := res.Seats[p.Name]
		row := partyRow{Name: p.Name, Votes: p.Votes, Eligible: eligible, Seats: seats}
		if res.TotalVotes > 0 && p.Votes > 0 {
			row.SharePct = float64(p.Votes) / float64(res.TotalVotes) * 100
		}
		r.Parties = append(r.Parties, row)
	}
	if withQuotients {
		r.Quotients = res.Winners
	}
	return r
}

func writeFormatted(w io.Writer, format string, v any, table func(io.Writer) error) error {
	switch strings.ToLower(format) {
	case "", "table":
		return table(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (table, json, yaml)", format)
	}
}

func (r allocationReport) writeTable(w io.Writer) error {
	header := fmt.Sprintf("%s, %d seats, threshold %g%%", methodLabel(r.Method), r.Seats, r.ThresholdPct)
	if r.FirstDivisor != 0 {
		header += fmt.Sprintf(", first divisor %g", r.FirstDivisor)
	}
	fmt.Fprintln(w, header)
	fmt.Fprintf(w, "Valid votes: %s\n\n", humanize.Comma(int64(r.TotalVotes)))

	maxVotes := 0
	for _, p := range r.Parties {
		if p.Votes > maxVotes {
			maxVotes = p.Votes
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTY\tVOTES\tSHARE\tSEATS\t")
	for _, p := range r.Parties {
		seats := fmt.Sprint(p.Seats)
		if !p.Eligible {
			seats = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f%%\t%s\t%s\n",
			p.Name, humanize.Comma(int64(p.Votes)), p.SharePct, seats, bar(p.Votes, maxVotes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Quotients) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SEAT\tPARTY\tDIVISOR\tQUOTIENT\t")
		for i, q := range r.Quotients {
			fmt.Fprintf(tw, "%d\t%s\t%g\t%.4f\t\n", i+1, q.Party, q.Divisor, q.Score)
		}
		return tw.Flush()
	}
	return nil
}

// bar renders votes as a horizontal bar scaled to the largest party.
func bar(votes, maxVotes int) string {
	if votes <= 0 || maxVotes <= 0 {
		return ""
	}
	n := votes * barWidth / maxVotes
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func methodLabel(method string) string {
	switch method {
	case apportion.LargestDivisor.String():
		return "D'Hondt"
	case apportion.OddDivisor.String():
		return "Sainte-Laguë"
	case apportion.ModifiedOddDivisor.String():
		return "Modified Sainte-Laguë"
	default:
		return method
	}
}
