package engine

import "container/heap"

// priceHeap tracks distinct price levels for one side of the book. The less
// function decides the ordering (descending for bids, ascending for asks) so
// the best price is always on top. A membership index keeps pushes idempotent
// per price level. Manipulate through container/heap plus the helpers below.
type priceHeap struct {
	prices []float64
	less   func(a, b float64) bool
	member map[float64]bool
}

func newPriceHeap(less func(a, b float64) bool) *priceHeap {
	return &priceHeap{
		less:   less,
		member: make(map[float64]bool),
	}
}

func (h *priceHeap) Len() int           { return len(h.prices) }
func (h *priceHeap) Less(i, j int) bool { return h.less(h.prices[i], h.prices[j]) }
func (h *priceHeap) Swap(i, j int)      { h.prices[i], h.prices[j] = h.prices[j], h.prices[i] }

func (h *priceHeap) Push(x any) {
	p := x.(float64)
	if !h.member[p] {
		h.member[p] = true
		h.prices = append(h.prices, p)
	}
}

func (h *priceHeap) Pop() any {
	n := len(h.prices)
	p := h.prices[n-1]
	h.prices = h.prices[:n-1]
	delete(h.member, p)
	return p
}

// peek returns the best price without removing it.
func (h *priceHeap) peek() (float64, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}

// removePrice drops one price level from the heap. O(n) scan, but levels are
// few and removal only happens when a level empties.
func (h *priceHeap) removePrice(p float64) {
	for i := range h.prices {
		if h.prices[i] == p {
			heap.Remove(h, i)
			return
		}
	}
}

// sorted returns all tracked prices best-first without disturbing the heap.
func (h *priceHeap) sorted() []float64 {
	out := make([]float64, len(h.prices))
	copy(out, h.prices)
	// insertion sort; level counts stay small
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && h.less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
