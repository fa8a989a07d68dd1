package apportion

import "container/heap"

// quotientHeap holds each party's best unawarded quotient.
// Ordering follows TieBreak.Less, so the root is the next seat winner.
type quotientHeap struct {
	items []Quotient
	tb    TieBreak
}

// Len implements heap.Interface
func (h *quotientHeap) Len() int {
	return len(h.items)
}

// Less implements heap.Interface
func (h *quotientHeap) Less(i, j int) bool {
	return h.tb.Less(h.items[i], h.items[j])
}

// Swap implements heap.Interface
func (h *quotientHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// Push implements heap.Interface
func (h *quotientHeap) Push(x interface{}) {
	h.items = append(h.items, x.(Quotient))
}

// Pop implements heap.Interface
func (h *quotientHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[0 : n-1]
	return item
}

// SelectIncremental awards seats one at a time from a heap holding one
// active quotient per party, advancing the winner to its next divisor.
// It returns the same sequence as Rank(Quotients(parties, divisors), seats, t)
// without materialising every quotient.
func SelectIncremental(parties []Party, divisors []float64, seats int, t TieBreak) []Quotient {
	if seats <= 0 || len(parties) == 0 || len(divisors) == 0 {
		return nil
	}

	h := &quotientHeap{items: make([]Quotient, 0, len(parties)), tb: t}
	for pi, p := range parties {
		h.items = append(h.items, newQuotient(p, divisors, pi, 0))
	}
	heap.Init(h)

	winners := make([]Quotient, 0, seats)
	for len(winners) < seats && h.Len() > 0 {
		best := heap.Pop(h).(Quotient)
		winners = append(winners, best)

		next := best.Index + 1
		if next < len(divisors) {
			pi := best.order / len(divisors)
			heap.Push(h, newQuotient(parties[pi], divisors, pi, next))
		}
	}
	return winners
}
