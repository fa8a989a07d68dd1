package apportion

// ValidVotes sums the votes of all parties, counting negative values as zero.
func ValidVotes(parties []Party) int {
	total := 0
	for _, p := range parties {
		if p.Votes > 0 {
			total += p.Votes
		}
	}
	return total
}

// Filter returns, in input order, the parties whose share of the valid votes
// is at least thresholdPct percent, together with the valid vote total.
//
// A party exactly at the threshold is kept. A non-positive (or NaN) threshold
// keeps every party with a non-negative count, including parties with zero
// votes. Parties with negative counts never qualify. When the valid total is
// zero no party qualifies.
func Filter(parties []Party, thresholdPct float64) ([]Party, int) {
	total := ValidVotes(parties)
	if total <= 0 {
		return nil, 0
	}

	fraction := 0.0
	if thresholdPct > 0 {
		fraction = thresholdPct / 100
	}

	var eligible []Party
	for _, p := range parties {
		if float64(p.Votes)/float64(total) >= fraction {
			eligible = append(eligible, p)
		}
	}
	return eligible, total
}
