package apportion

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the divisor sequence.
type Method int

const (
	// LargestDivisor is the D'Hondt method: 1, 2, 3, ...
	LargestDivisor Method = iota
	// OddDivisor is the Sainte-Laguë method: f, f+2, f+4, ... with f = 1 unless set.
	OddDivisor
	// ModifiedOddDivisor is OddDivisor with the first divisor defaulting to 1.4.
	ModifiedOddDivisor
)

// ModifiedFirstDivisor is the first divisor used by ModifiedOddDivisor when
// none is configured.
const ModifiedFirstDivisor = 1.4

func (m Method) String() string {
	switch m {
	case LargestDivisor:
		return "dhondt"
	case OddDivisor:
		return "sainte-lague"
	case ModifiedOddDivisor:
		return "modified-sainte-lague"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a method name to a Method. Matching ignores case.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dhondt", "d'hondt", "d-hondt", "largest-divisor", "jefferson":
		return LargestDivisor, nil
	case "sainte-lague", "sainte-laguë", "saintelague", "odd-divisor", "webster":
		return OddDivisor, nil
	case "modified-sainte-lague", "modified-sainte-laguë", "modified-odd-divisor":
		return ModifiedOddDivisor, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidConfiguration, s)
	}
}

// FirstDivisor resolves the configured first divisor for m. Zero selects the
// method default; LargestDivisor always starts at 1.
func (m Method) FirstDivisor(configured float64) float64 {
	switch m {
	case LargestDivisor:
		return 1
	case ModifiedOddDivisor:
		if configured == 0 {
			return ModifiedFirstDivisor
		}
	default:
		if configured == 0 {
			return 1
		}
	}
	return configured
}

// step is the distance between consecutive divisors.
func (m Method) step() float64 {
	if m == LargestDivisor {
		return 1
	}
	return 2
}

// Divisors returns the seats divisors a party's votes are divided by, in order.
// The sequence is strictly increasing and strictly positive.
func Divisors(m Method, seats int, firstDivisor float64) ([]float64, error) {
	if m < LargestDivisor || m > ModifiedOddDivisor {
		return nil, fmt.Errorf("%w: unknown method %d", ErrInvalidConfiguration, int(m))
	}
	first := m.FirstDivisor(firstDivisor)
	if math.IsNaN(first) || math.IsInf(first, 0) || first <= 0 {
		return nil, fmt.Errorf("%w: first divisor %v must be positive", ErrInvalidConfiguration, first)
	}
	if seats <= 0 {
		return nil, nil
	}

	step := m.step()
	divisors := make([]float64, seats)
	for i := range divisors {
		divisors[i] = first + step*float64(i)
	}
	return divisors, nil
}
