package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Candidate struct {
	CandidateID int    `json:"candidate_id"`
	Name        string `json:"name"`
}

type Party struct {
	PartyID    int         `json:"party_id"`
	PartyName  string      `json:"party_name"`
	Candidates []Candidate `json:"candidates"`
}

type District struct {
	DistrictID int     `json:"district_id"`
	Name       string  `json:"name"`
	Mandates   int     `json:"mandates"`
	Parties    []Party `json:"parties"`
}

type Election struct {
	ElectionID string     `json:"election_id"`
	Districts  []District `json:"districts"`
}

type Identifiable interface {
	GetID() int
	GetName() string
}

func (d District) GetID() int      { return d.DistrictID }
func (d District) GetName() string { return d.Name }

func (p Party) GetID() int      { return p.PartyID }
func (p Party) GetName() string { return p.PartyName }

func (c Candidate) GetID() int      { return c.CandidateID }
func (c Candidate) GetName() string { return c.Name }

func parseArgToItem[T Identifiable](arg string, items []T) (T, int, bool) {
	var zero T
	id, err := strconv.Atoi(arg)
	if err == nil {
		for _, item := range items {
			if item.GetID() == id {
				return item, id, true
			}
		}
	} else {
		for _, item := range items {
			if item.GetName() == arg {
				return item, item.GetID(), true
			}
		}
	}

	return zero, -1, false
}

func loadElection(path string) (Election, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Election{}, fmt.Errorf("failed to read election file: %w", err)
	}

	var election Election
	if err := json.Unmarshal(data, &election); err != nil {
		return Election{}, fmt.Errorf("invalid election JSON: %w", err)
	}
	if err := election.validate(); err != nil {
		return Election{}, fmt.Errorf("validation error: %w", err)
	}
	return election, nil
}

func (e Election) validate() error {
	if len(e.Districts) == 0 {
		return fmt.Errorf("no districts found")
	}

	for _, d := range e.Districts {
		if d.Mandates <= 0 {
			return fmt.Errorf("district %d has no mandates", d.DistrictID)
		}
		if len(d.Parties) == 0 {
			return fmt.Errorf("district %d has no parties", d.DistrictID)
		}
		seen := make(map[int]bool, len(d.Parties))
		for _, p := range d.Parties {
			if strings.TrimSpace(p.PartyName) == "" {
				return fmt.Errorf("party %d in district %d has no name", p.PartyID, d.DistrictID)
			}
			if seen[p.PartyID] {
				return fmt.Errorf("party %d listed twice in district %d", p.PartyID, d.DistrictID)
			}
			seen[p.PartyID] = true
			if len(p.Candidates) == 0 {
				return fmt.Errorf("party %s in district %d has no candidates", p.PartyName, d.DistrictID)
			}
		}
	}
	return nil
}
