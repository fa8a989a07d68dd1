package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mati2251/ddhondt/apportion"
)

// Profile is an allocation described in YAML:
//
//	method: sainte-lague
//	seats: 30
//	threshold: 5
//	first_divisor: 1.4
//	tie_break: full-name
//	parties:
//	  - name: Partia A
//	    votes: 5825
type Profile struct {
	Method       string            `yaml:"method"`
	Seats        int               `yaml:"seats"`
	Threshold    float64           `yaml:"threshold"`
	FirstDivisor float64           `yaml:"first_divisor"`
	TieBreak     string            `yaml:"tie_break"`
	Selector     string            `yaml:"selector"`
	Parties      []apportion.Party `yaml:"parties"`
}

// loadProfile parses a profile with strict field checking, so typos fail.
func loadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (Profile, error) {
	var p Profile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("failed to parse profile YAML: %w", err)
	}
	return p, nil
}
