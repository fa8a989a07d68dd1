package apportion

import (
	"sort"
	"strings"
)

// Party is a named vote count.
type Party struct {
	Name  string `json:"name" yaml:"name"`
	Votes int    `json:"votes" yaml:"votes"`
}

// Input is an ordered set of parties keyed by name. The order matters only
// for ties that survive every ranking key.
type Input struct {
	parties []Party
	index   map[string]int
}

// NewInput returns an empty input.
func NewInput() *Input {
	return &Input{index: make(map[string]int)}
}

// FromMap builds an input from a name to votes mapping, ordered by name.
func FromMap(votes map[string]int) *Input {
	names := make([]string, 0, len(votes))
	for name := range votes {
		names = append(names, name)
	}
	sort.Strings(names)

	in := NewInput()
	for _, name := range names {
		in.Set(name, votes[name])
	}
	return in
}

// Set records votes for a party. The name is trimmed and blank names are
// ignored. Setting an existing name replaces its votes and keeps its position.
func (in *Input) Set(name string, votes int) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if i, ok := in.index[name]; ok {
		in.parties[i].Votes = votes
		return
	}
	in.index[name] = len(in.parties)
	in.parties = append(in.parties, Party{Name: name, Votes: votes})
}

// Votes returns the votes recorded for name.
func (in *Input) Votes(name string) (int, bool) {
	if in == nil {
		return 0, false
	}
	i, ok := in.index[strings.TrimSpace(name)]
	if !ok {
		return 0, false
	}
	return in.parties[i].Votes, true
}

// Len returns the number of parties.
func (in *Input) Len() int {
	if in == nil {
		return 0
	}
	return len(in.parties)
}

// Parties returns a copy of the parties in input order.
func (in *Input) Parties() []Party {
	if in == nil {
		return nil
	}
	out := make([]Party, len(in.parties))
	copy(out, in.parties)
	return out
}
