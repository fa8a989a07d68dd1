package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mati2251/ddhondt/apportion"
)

func TestParseProfile(t *testing.T) {
	p, err := parseProfile([]byte(testProfile))
	require.NoError(t, err)

	assert.Equal(t, "sainte-lague", p.Method)
	assert.Equal(t, 5, p.Seats)
	assert.Equal(t, []apportion.Party{{Name: "A", Votes: 60}, {Name: "B", Votes: 40}}, p.Parties)
}

func TestParseProfile_UnknownFieldFails(t *testing.T) {
	_, err := parseProfile([]byte("seats: 3\nthreshhold: 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshhold")
}

func TestParseProfile_Empty(t *testing.T) {
	p, err := parseProfile(nil)
	require.NoError(t, err)
	assert.Equal(t, Profile{}, p)
}

func TestProfileConfig(t *testing.T) {
	cfg, err := Profile{Method: "modified-sainte-lague", Seats: 7, Threshold: 3, TieBreak: "first-rune", Selector: "heap"}.config()
	require.NoError(t, err)
	assert.Equal(t, apportion.Config{
		Seats:        7,
		ThresholdPct: 3,
		Method:       apportion.ModifiedOddDivisor,
		TieBreak:     apportion.FirstRune,
		Selector:     apportion.Incremental,
	}, cfg)

	_, err = Profile{Method: "dhondt", TieBreak: "dice"}.config()
	assert.ErrorIs(t, err, apportion.ErrInvalidConfiguration)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 100))
	assert.Equal(t, "", bar(5, 0))
	assert.Len(t, []rune(bar(100, 100)), barWidth)
	assert.Len(t, []rune(bar(50, 100)), barWidth/2)
	assert.Len(t, []rune(bar(1, 1000000)), 1)
}
