package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mati2251/ddhondt/apportion"
)

type fakeSource struct {
	votes  map[int]map[int]int
	err    error
	reads  []int
	closed bool
}

func (f *fakeSource) DistrictVotes(_ context.Context, districtID int) (map[int]int, error) {
	f.reads = append(f.reads, districtID)
	if f.err != nil {
		return nil, f.err
	}
	return f.votes[districtID], nil
}

func (f *fakeSource) Close() { f.closed = true }

func withFakeSource(t *testing.T, src *fakeSource) {
	t.Helper()
	orig := newVoteSource
	newVoteSource = func(cassandraConfig) (VoteSource, error) { return src, nil }
	t.Cleanup(func() { newVoteSource = orig })
}

func testParties() []Party {
	return []Party{
		{PartyID: 1, PartyName: "Alpha", Candidates: []Candidate{{CandidateID: 1, Name: "Anna"}}},
		{PartyID: 2, PartyName: "Beta", Candidates: []Candidate{{CandidateID: 1, Name: "Bartek"}}},
		{PartyID: 3, PartyName: "Gamma", Candidates: []Candidate{{CandidateID: 1, Name: "Grzegorz"}}},
	}
}

func testElection() Election {
	return Election{
		ElectionID: "sejm-test",
		Districts: []District{
			{DistrictID: 1, Name: "Warszawa", Mandates: 5, Parties: testParties()},
			{DistrictID: 2, Name: "Krakow", Mandates: 3, Parties: testParties()},
		},
	}
}

// Alpha 800, Beta 550, Gamma 30 nationally; Gamma is below 5%.
func testSource() *fakeSource {
	return &fakeSource{votes: map[int]map[int]int{
		1: {1: 600, 2: 300, 3: 20},
		2: {1: 200, 2: 250, 3: 10},
	}}
}

func totalsByName(r electionReport) map[string]partyTotal {
	out := make(map[string]partyTotal, len(r.Parties))
	for _, p := range r.Parties {
		out[p.Name] = p
	}
	return out
}

func TestComputeResults_NationalThresholdThenDistricts(t *testing.T) {
	e := testElection()
	src := testSource()

	r, err := computeResults(context.Background(), e, e.Districts, src, apportion.Config{}, 5, false)
	require.NoError(t, err)

	assert.Equal(t, 1380, r.TotalVotes)
	totals := totalsByName(r)
	assert.Equal(t, 5, totals["Alpha"].Seats)
	assert.Equal(t, 3, totals["Beta"].Seats)
	assert.False(t, totals["Gamma"].PassedNational)
	assert.Equal(t, 0, totals["Gamma"].Seats)

	require.Len(t, r.Districts, 2)
	assert.Equal(t, map[string]int{"Alpha": 4, "Beta": 1}, seatsByName(r.Districts[0].Allocation))
	assert.Equal(t, map[string]int{"Alpha": 1, "Beta": 2}, seatsByName(r.Districts[1].Allocation))
}

func TestComputeResults_NoNationalThresholdKeepsSmallParty(t *testing.T) {
	e := testElection()

	r, err := computeResults(context.Background(), e, e.Districts, testSource(), apportion.Config{}, 0, false)
	require.NoError(t, err)

	totals := totalsByName(r)
	assert.True(t, totals["Gamma"].PassedNational)
	assert.Len(t, r.Districts[0].Allocation.Parties, 3)
}

func TestComputeResults_SelectedDistrictStillUsesNationalTotals(t *testing.T) {
	e := testElection()
	src := testSource()

	r, err := computeResults(context.Background(), e, e.Districts[1:], src, apportion.Config{}, 5, false)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, src.reads)
	require.Len(t, r.Districts, 1)
	assert.Equal(t, "Krakow", r.Districts[0].Name)
	assert.Equal(t, 1380, r.TotalVotes)
	assert.Equal(t, 1, totalsByName(r)["Alpha"].Seats)
}

func TestComputeResults_SourceError(t *testing.T) {
	e := testElection()
	src := &fakeSource{err: errors.New("unavailable")}

	_, err := computeResults(context.Background(), e, e.Districts, src, apportion.Config{}, 5, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Warszawa")
}

func TestComputeResults_NoVotesYieldsEmptyDistricts(t *testing.T) {
	e := testElection()
	src := &fakeSource{votes: map[int]map[int]int{}}

	r, err := computeResults(context.Background(), e, e.Districts, src, apportion.Config{}, 5, false)
	require.NoError(t, err)
	for _, d := range r.Districts {
		assert.Zero(t, d.Allocation.TotalVotes)
		assert.Empty(t, d.Allocation.Parties)
	}
}

func TestResultsCmd_JSON(t *testing.T) {
	src := testSource()
	withFakeSource(t, src)
	data, err := json.Marshal(testElection())
	require.NoError(t, err)
	path := writeFile(t, "election.json", string(data))

	out, _, err := executeCmd(t, "results", path, "-o", "json", "--method", "sainte-lague")
	require.NoError(t, err)

	var r electionReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "sejm-test", r.ElectionID)
	assert.Equal(t, "sainte-lague", r.Method)
	assert.Equal(t, 5.0, r.NationalThresholdPct)
	assert.True(t, src.closed)

	seats := 0
	for _, p := range r.Parties {
		seats += p.Seats
	}
	assert.Equal(t, 8, seats)
}

func TestResultsCmd_DistrictByName(t *testing.T) {
	withFakeSource(t, testSource())
	data, _ := json.Marshal(testElection())
	path := writeFile(t, "election.json", string(data))

	out, _, err := executeCmd(t, "results", path, "--district", "Krakow")
	require.NoError(t, err)
	assert.Contains(t, out, "District 2 (Krakow), 3 mandates")
	assert.NotContains(t, out, "Warszawa")
}

func TestResultsCmd_UnknownDistrict(t *testing.T) {
	withFakeSource(t, testSource())
	data, _ := json.Marshal(testElection())
	path := writeFile(t, "election.json", string(data))

	_, _, err := executeCmd(t, "results", path, "--district", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid district")
}

func TestResultsCmd_InvalidElectionFile(t *testing.T) {
	path := writeFile(t, "election.json", `{"election_id": "x", "districts": []}`)

	_, _, err := executeCmd(t, "results", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no districts found")
}
