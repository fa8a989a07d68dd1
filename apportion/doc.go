// Package apportion distributes a fixed number of seats among parties in
// proportion to their votes using highest-averages (divisor) methods.
//
// Two methods are provided:
//   - LargestDivisor (D'Hondt): divisors 1, 2, 3, ...
//   - OddDivisor (Sainte-Laguë): divisors f, f+2, f+4, ... where f is the
//     first divisor, 1.0 by default. ModifiedOddDivisor defaults f to 1.4.
//
// An allocation runs in four steps: parties below the electoral threshold
// are dropped (Filter), every remaining party gets one quotient per seat
// (Divisors, Quotients), all quotients are ranked with a deterministic
// tie-break chain (Rank) and the best Seats of them are tallied per party.
//
// Ranking order, most significant key first:
//  1. quotient, descending
//  2. the party's votes, descending
//  3. the party's name, ascending (FullName) or only its first character (FirstRune)
//  4. generation order: input order of the party, then divisor index
//
// Everything is computed per call; nothing is shared between calls, so
// Allocate is safe for concurrent use on independent inputs.
//
// Example:
//
//	seats := apportion.AllocateLargestDivisor(map[string]int{"A": 100, "B": 50}, 3, 0)
//	// seats == map[string]int{"A": 2, "B": 1}
package apportion
