package apportion

// Quotient is one candidate seat: a party's votes divided by one of its divisors.
type Quotient struct {
	Score float64 `json:"score" yaml:"score"`
	Party string  `json:"party" yaml:"party"`
	// Votes is the party's vote count, the second ranking key.
	Votes int `json:"votes" yaml:"votes"`
	// Divisor is the value Votes was divided by.
	Divisor float64 `json:"divisor" yaml:"divisor"`
	// Index is the 0-based position of Divisor in the party's sequence.
	Index int `json:"index" yaml:"index"`

	order int
}

// Quotients emits, for every party and every divisor, the pair
// (votes/divisor, party) in party order then divisor order. Negative vote
// counts contribute a zero numerator.
func Quotients(parties []Party, divisors []float64) []Quotient {
	out := make([]Quotient, 0, len(parties)*len(divisors))
	for pi, p := range parties {
		for i := range divisors {
			out = append(out, newQuotient(p, divisors, pi, i))
		}
	}
	return out
}

func newQuotient(p Party, divisors []float64, partyIndex, i int) Quotient {
	votes := p.Votes
	if votes < 0 {
		votes = 0
	}
	return Quotient{
		Score:   float64(votes) / divisors[i],
		Party:   p.Name,
		Votes:   votes,
		Divisor: divisors[i],
		Index:   i,
		order:   partyIndex*len(divisors) + i,
	}
}
