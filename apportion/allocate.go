package apportion

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Selector chooses how winning quotients are found. Both produce identical results.
type Selector int

const (
	// Flat generates every quotient and sorts them.
	Flat Selector = iota
	// Incremental keeps one quotient per party in a heap.
	Incremental
)

func (s Selector) String() string {
	switch s {
	case Flat:
		return "flat"
	case Incremental:
		return "incremental"
	default:
		return fmt.Sprintf("Selector(%d)", int(s))
	}
}

// ParseSelector maps a selector name to a Selector.
func ParseSelector(s string) (Selector, error) {
	switch s {
	case "", "flat", "sort":
		return Flat, nil
	case "incremental", "heap":
		return Incremental, nil
	default:
		return 0, fmt.Errorf("%w: unknown selector %q", ErrInvalidConfiguration, s)
	}
}

// Config parameterises one allocation.
type Config struct {
	Seats int
	// ThresholdPct is the minimum vote share in percent (5 = 5%).
	ThresholdPct float64
	Method       Method
	// FirstDivisor overrides the first odd divisor; zero keeps the method default.
	FirstDivisor float64
	TieBreak     TieBreak
	Selector     Selector
}

// Result is the outcome of one allocation.
type Result struct {
	// Seats maps every eligible party to its seat count. It is never nil.
	Seats map[string]int
	// Winners lists the awarded quotients in award order.
	Winners []Quotient
	// Eligible lists the parties that reached the threshold, in input order.
	Eligible []Party
	// TotalVotes is the valid vote total the threshold was measured against.
	TotalVotes int
}

// Allocate distributes cfg.Seats among the parties of in.
//
// Degenerate inputs yield an empty Seats map together with an error:
// ErrInvalidConfiguration for a bad configuration, ErrNoVotes when no valid
// votes were cast and ErrNoEligibleParties when nobody reached the threshold.
// Callers that only need the mapping can ignore the error.
func Allocate(in *Input, cfg Config) (Result, error) {
	res := Result{Seats: make(map[string]int)}

	if cfg.Seats <= 0 {
		return res, fmt.Errorf("%w: seat count %d must be positive", ErrInvalidConfiguration, cfg.Seats)
	}
	if !cfg.TieBreak.valid() {
		return res, fmt.Errorf("%w: unknown tie-break %d", ErrInvalidConfiguration, int(cfg.TieBreak))
	}
	if cfg.Selector != Flat && cfg.Selector != Incremental {
		return res, fmt.Errorf("%w: unknown selector %d", ErrInvalidConfiguration, int(cfg.Selector))
	}
	divisors, err := Divisors(cfg.Method, cfg.Seats, cfg.FirstDivisor)
	if err != nil {
		return res, err
	}

	eligible, total := Filter(in.Parties(), cfg.ThresholdPct)
	res.TotalVotes = total
	if total <= 0 {
		logrus.WithField("parties", in.Len()).Debug("no valid votes, nothing to allocate")
		return res, ErrNoVotes
	}
	if len(eligible) == 0 {
		logrus.WithFields(logrus.Fields{
			"threshold": cfg.ThresholdPct,
			"total":     total,
		}).Debug("no party reached the threshold")
		return res, fmt.Errorf("%w: threshold %v%%", ErrNoEligibleParties, cfg.ThresholdPct)
	}
	res.Eligible = eligible

	switch cfg.Selector {
	case Incremental:
		res.Winners = SelectIncremental(eligible, divisors, cfg.Seats, cfg.TieBreak)
	default:
		res.Winners = Rank(Quotients(eligible, divisors), cfg.Seats, cfg.TieBreak)
	}

	for _, p := range eligible {
		res.Seats[p.Name] = 0
	}
	for _, q := range res.Winners {
		res.Seats[q.Party]++
	}

	logrus.WithFields(logrus.Fields{
		"method":   cfg.Method,
		"seats":    cfg.Seats,
		"eligible": len(eligible),
	}).Debug("allocation complete")
	return res, nil
}

// AllocateLargestDivisor distributes seats with the D'Hondt method.
// Degenerate input yields an empty map.
func AllocateLargestDivisor(votes map[string]int, seats int, thresholdPct float64) map[string]int {
	res, _ := Allocate(FromMap(votes), Config{
		Seats:        seats,
		ThresholdPct: thresholdPct,
		Method:       LargestDivisor,
	})
	return res.Seats
}

// AllocateOddDivisor distributes seats with the Sainte-Laguë method starting
// at firstDivisor (1.0 standard, e.g. 1.4 modified). Degenerate input,
// including a non-positive first divisor, yields an empty map.
func AllocateOddDivisor(votes map[string]int, seats int, thresholdPct, firstDivisor float64) map[string]int {
	if firstDivisor <= 0 {
		return map[string]int{}
	}
	res, _ := Allocate(FromMap(votes), Config{
		Seats:        seats,
		ThresholdPct: thresholdPct,
		Method:       OddDivisor,
		FirstDivisor: firstDivisor,
	})
	return res.Seats
}
