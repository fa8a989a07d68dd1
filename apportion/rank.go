package apportion

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// TieBreak selects how party names break ties left after score and votes.
type TieBreak int

const (
	// FullName compares whole names lexicographically by code point.
	FullName TieBreak = iota
	// FirstRune compares only the first character of each name, so names
	// sharing a first character fall through to input order.
	FirstRune
)

func (t TieBreak) String() string {
	switch t {
	case FullName:
		return "full-name"
	case FirstRune:
		return "first-rune"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// ParseTieBreak maps a tie-break name to a TieBreak.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full-name", "name", "full":
		return FullName, nil
	case "first-rune", "first-char", "first":
		return FirstRune, nil
	default:
		return 0, fmt.Errorf("%w: unknown tie-break %q", ErrInvalidConfiguration, s)
	}
}

func (t TieBreak) valid() bool {
	return t == FullName || t == FirstRune
}

func (t TieBreak) compareNames(a, b string) int {
	if t == FirstRune {
		ra, rb := firstRune(a), firstRune(b)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// firstRune returns the first character of s, or 0 for an empty name.
func firstRune(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// Less reports whether a wins a seat ahead of b.
// Order by: score → votes → name → generation order.
func (t TieBreak) Less(a, b Quotient) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Votes != b.Votes {
		return a.Votes > b.Votes
	}
	if c := t.compareNames(a.Party, b.Party); c != 0 {
		return c < 0
	}
	return a.order < b.order
}

// Rank orders quotients best first and returns at most seats of them.
// The argument is not modified.
func Rank(quotients []Quotient, seats int, t TieBreak) []Quotient {
	if seats <= 0 || len(quotients) == 0 {
		return nil
	}
	ranked := make([]Quotient, len(quotients))
	copy(ranked, quotients)
	sort.Slice(ranked, func(i, j int) bool {
		return t.Less(ranked[i], ranked[j])
	})
	if len(ranked) > seats {
		ranked = ranked[:seats]
	}
	return ranked
}
